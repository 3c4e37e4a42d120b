package model

import "time"

// Screening represents a scheduled showing of a movie in a specific
// room at a specific time.  Price is in cents and must be positive.
// The available seat universe of a screening is exactly the seats of
// its room.
//
// Fields:
//  ID            – primary key identifier.
//  MovieID       – movie being shown.
//  RoomID        – room the screening takes place in.
//  ScreeningTime – when the screening starts (UTC).
//  Price         – ticket price in cents (> 0).
//  CreatedAt     – creation timestamp.
type Screening struct {
	ID            uint64    `json:"id"`             // screenings.id
	MovieID       uint64    `json:"movie_id"`       // screenings.movie_id
	RoomID        uint64    `json:"room_id"`        // screenings.room_id
	ScreeningTime time.Time `json:"screening_time"` // screenings.screening_time
	Price         uint32    `json:"price_cents"`    // screenings.price_cents
	CreatedAt     time.Time `json:"created_at"`     // screenings.created_at
}
