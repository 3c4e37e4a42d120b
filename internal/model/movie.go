package model

import "time"

// Movie represents a film that can be screened.  Genres are stored
// as a JSON array.  Only the fields the API serves are modelled;
// financial metadata from the v1 schema was dropped.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – movie title.
//  Description     – optional synopsis.
//  DurationMinutes – running time, must be positive.
//  Genres          – optional list of genre names.
//  Rating          – optional certification (e.g. PG-13).
//  Director        – optional director name.
//  ReleaseDate     – optional release date.
//  Language        – optional original language.
//  ImageURL        – optional poster URL.
//  TrailerURL      – optional trailer URL.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Movie struct {
	ID              uint64     `json:"id"`                     // movies.id
	Title           string     `json:"title"`                  // movies.title
	Description     *string    `json:"description,omitempty"`  // movies.description (nullable)
	DurationMinutes uint32     `json:"duration_minutes"`       // movies.duration_minutes
	Genres          []string   `json:"genres,omitempty"`       // movies.genres (JSON)
	Rating          *string    `json:"rating,omitempty"`       // movies.rating (nullable)
	Director        *string    `json:"director,omitempty"`     // movies.director (nullable)
	ReleaseDate     *time.Time `json:"release_date,omitempty"` // movies.release_date (nullable)
	Language        *string    `json:"language,omitempty"`     // movies.language (nullable)
	ImageURL        *string    `json:"image_url,omitempty"`    // movies.image_url (nullable)
	TrailerURL      *string    `json:"trailer_url,omitempty"`  // movies.trailer_url (nullable)
	CreatedAt       time.Time  `json:"created_at"`             // movies.created_at
	UpdatedAt       time.Time  `json:"updated_at"`             // movies.updated_at
}
