package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// ErrTokenNotFound is returned when a refresh token is unknown,
// expired or revoked.
var ErrTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepo stores hashed refresh tokens.  Only the SHA-256
// hash of a token ever reaches the database; lookups take the hash.
type RefreshTokenRepo struct{ db *sql.DB }

func NewRefreshTokenRepo(db *sql.DB) *RefreshTokenRepo { return &RefreshTokenRepo{db: db} }

// Store saves a refresh token hash for the user.
func (r *RefreshTokenRepo) Store(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	const q = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, userID, tokenHash, expiresAt)
	return err
}

// Lookup returns the live token with the given hash. Expired and
// revoked tokens are treated as absent.
func (r *RefreshTokenRepo) Lookup(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	const q = `SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
			   FROM refresh_tokens
			   WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > NOW()
			   LIMIT 1`
	var t model.RefreshToken
	err := r.db.QueryRowContext(ctx, q, tokenHash).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.RevokedAt, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Revoke marks one token as revoked. Revoking an already revoked or
// unknown token reports ErrTokenNotFound.
func (r *RefreshTokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	const q = `UPDATE refresh_tokens SET revoked_at = NOW()
			   WHERE token_hash = ? AND revoked_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, tokenHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// RevokeAllForUser revokes every live token of a user, used on
// password change.
func (r *RefreshTokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	const q = `UPDATE refresh_tokens SET revoked_at = NOW()
			   WHERE user_id = ? AND revoked_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, userID)
	return err
}
