package model

import "time"

// Review represents a user review for a movie.  Reviews are soft
// deleted; IsDeleted rows are excluded from listings and summaries.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – author of the review.
//  MovieID   – movie being reviewed.
//  Rating    – star rating from 1 to 5.
//  Title     – optional headline.
//  Comment   – optional body text.
//  Likes     – number of like reactions.
//  Dislikes  – number of dislike reactions.
//  IsDeleted – soft delete flag.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Review struct {
	ID        uint64    `json:"id"`                // reviews.id
	UserID    uint64    `json:"user_id"`           // reviews.user_id
	MovieID   uint64    `json:"movie_id"`          // reviews.movie_id
	Rating    uint8     `json:"rating"`            // reviews.rating (1..5)
	Title     *string   `json:"title,omitempty"`   // reviews.title (nullable)
	Comment   *string   `json:"comment,omitempty"` // reviews.comment (nullable)
	Likes     uint32    `json:"likes"`             // reviews.likes
	Dislikes  uint32    `json:"dislikes"`          // reviews.dislikes
	IsDeleted bool      `json:"-"`                 // reviews.is_deleted
	CreatedAt time.Time `json:"created_at"`        // reviews.created_at
	UpdatedAt time.Time `json:"updated_at"`        // reviews.updated_at
}
