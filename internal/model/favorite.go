package model

import "time"

// Favorite marks a cinema as a favorite of a user.  The
// (user_id, cinema_id) pair is unique.
type Favorite struct {
	ID        uint64    `json:"id"`         // favorites.id
	UserID    uint64    `json:"user_id"`    // favorites.user_id
	CinemaID  uint64    `json:"cinema_id"`  // favorites.cinema_id
	CreatedAt time.Time `json:"created_at"` // favorites.created_at
}
