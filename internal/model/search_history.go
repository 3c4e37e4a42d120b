package model

import "time"

// SearchHistory records a search performed by an authenticated user.
// SearchType distinguishes what was searched (movie, cinema, general).
type SearchHistory struct {
	ID         uint64    `json:"id"`           // search_history.id
	UserID     uint64    `json:"user_id"`      // search_history.user_id
	Query      string    `json:"search_query"` // search_history.search_query
	SearchType string    `json:"search_type"`  // search_history.search_type
	CreatedAt  time.Time `json:"created_at"`   // search_history.created_at
}
