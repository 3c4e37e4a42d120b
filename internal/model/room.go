package model

import "time"

// Room represents a single auditorium within a cinema.  The owning
// cinema is fixed at creation time and never changes.
type Room struct {
	ID        uint64    `json:"id"`         // rooms.id
	CinemaID  uint64    `json:"cinema_id"`  // rooms.cinema_id
	Name      string    `json:"name"`       // rooms.name
	CreatedAt time.Time `json:"created_at"` // rooms.created_at
}
