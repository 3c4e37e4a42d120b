package model

import "time"

// User represents an application user record as stored in the
// `users` table.  The password is stored as a bcrypt hash and never
// serialized.  IsAdmin gates the admin-only endpoints.
//
// Fields:
//  ID                    – primary key identifier of the user.
//  Email                 – unique email address.
//  FullName              – display name.
//  PasswordHash          – bcrypt hashed password.
//  IsActive              – whether the account is active.
//  IsAdmin               – whether the user may call admin endpoints.
//  DateOfBirth           – optional date of birth.
//  ProfilePictureURL     – optional avatar URL.
//  DarkMode              – UI preference.
//  NotificationsEnabled  – notification preference.
//  NewsletterSubscribed  – newsletter preference.
//  CreatedAt             – timestamp of creation.
//  UpdatedAt             – timestamp of last update.
type User struct {
	ID                   uint64     `json:"id"`                            // users.id
	Email                string     `json:"email"`                         // users.email
	FullName             string     `json:"full_name"`                     // users.full_name
	PasswordHash         string     `json:"-"`                             // users.password_hash
	IsActive             bool       `json:"is_active"`                     // users.is_active
	IsAdmin              bool       `json:"is_admin"`                      // users.is_admin
	DateOfBirth          *time.Time `json:"date_of_birth,omitempty"`       // users.date_of_birth (nullable)
	ProfilePictureURL    *string    `json:"profile_picture_url,omitempty"` // users.profile_picture_url (nullable)
	DarkMode             bool       `json:"dark_mode"`                     // users.dark_mode
	NotificationsEnabled bool       `json:"notifications_enabled"`         // users.notifications_enabled
	NewsletterSubscribed bool       `json:"newsletter_subscribed"`         // users.newsletter_subscribed
	CreatedAt            time.Time  `json:"created_at"`                    // users.created_at
	UpdatedAt            time.Time  `json:"updated_at"`                    // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and carries expiry and revocation
// metadata.  The plain token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
