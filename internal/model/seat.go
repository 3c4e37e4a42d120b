package model

import "time"

// Seat describes a physical seat in a room.  Seats are uniquely
// identified by their room, row label and seat number; the triple is
// enforced unique by the schema.  Seats are created once through the
// bulk provisioner and never mutated afterwards.
//
// Fields:
//  ID         – primary key identifier.
//  RoomID     – room to which this seat belongs.
//  RowLabel   – letter or string designating the row (A, B, … AA, AB).
//  SeatNumber – number of the seat within the row (1-based).
//  SeatType   – type of seat (standard, vip, accessible).
//  CreatedAt  – creation timestamp.
type Seat struct {
	ID         uint64    `json:"id"`          // seats.id
	RoomID     uint64    `json:"room_id"`     // seats.room_id
	RowLabel   string    `json:"row_label"`   // seats.row_label
	SeatNumber uint32    `json:"seat_number"` // seats.seat_number
	SeatType   string    `json:"seat_type"`   // seats.seat_type
	CreatedAt  time.Time `json:"created_at"`  // seats.created_at
}
