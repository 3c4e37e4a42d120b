package model

import "time"

// CastMember represents one actor credit of a movie.  Credits are
// plain content records maintained by admins; Position orders the
// billing, lowest first.
//
// Fields:
//  ID              – primary key identifier.
//  MovieID         – movie this credit belongs to.
//  ActorName       – real name of the actor.
//  CharacterName   – name of the played character.
//  Role            – role description (e.g. lead, supporting, cameo).
//  ProfileImageURL – optional headshot URL.
//  IsLead          – lead billing flag.
//  Position        – display order within the movie's cast list.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type CastMember struct {
	ID              uint64    `json:"id"`                          // cast_members.id
	MovieID         uint64    `json:"movie_id"`                    // cast_members.movie_id
	ActorName       string    `json:"actor_name"`                  // cast_members.actor_name
	CharacterName   string    `json:"character_name"`              // cast_members.character_name
	Role            string    `json:"role"`                        // cast_members.role
	ProfileImageURL *string   `json:"profile_image_url,omitempty"` // cast_members.profile_image_url (nullable)
	IsLead          bool      `json:"is_lead"`                     // cast_members.is_lead
	Position        uint32    `json:"position"`                    // cast_members.position
	CreatedAt       time.Time `json:"created_at"`                  // cast_members.created_at
	UpdatedAt       time.Time `json:"updated_at"`                  // cast_members.updated_at
}
