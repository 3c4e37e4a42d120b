package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// ErrCastNotFound is returned when a cast member lookup matches no row.
var ErrCastNotFound = errors.New("cast member not found")

// CastRepo encapsulates all database queries related to movie cast
// credits.
type CastRepo struct{ db *sql.DB }

func NewCastRepo(db *sql.DB) *CastRepo { return &CastRepo{db: db} }

const castColumns = `id, movie_id, actor_name, character_name, role,
					 profile_image_url, is_lead, position, created_at, updated_at`

// Create inserts a cast credit and populates ID and timestamps.
func (r *CastRepo) Create(ctx context.Context, cm *model.CastMember) error {
	const q = `INSERT INTO cast_members
			   (movie_id, actor_name, character_name, role, profile_image_url, is_lead, position)
			   VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		cm.MovieID, cm.ActorName, cm.CharacterName, cm.Role, cm.ProfileImageURL, cm.IsLead, cm.Position)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cm.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at, updated_at FROM cast_members WHERE id = ?`, cm.ID).
		Scan(&cm.CreatedAt, &cm.UpdatedAt)
}

// GetByID fetches a cast credit by id.
func (r *CastRepo) GetByID(ctx context.Context, id uint64) (*model.CastMember, error) {
	const q = `SELECT ` + castColumns + ` FROM cast_members WHERE id = ?`
	var cm model.CastMember
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&cm.ID, &cm.MovieID, &cm.ActorName, &cm.CharacterName, &cm.Role,
		&cm.ProfileImageURL, &cm.IsLead, &cm.Position, &cm.CreatedAt, &cm.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCastNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// ListByMovie returns the cast of a movie in billing order.
func (r *CastRepo) ListByMovie(ctx context.Context, movieID uint64) ([]*model.CastMember, error) {
	const q = `SELECT ` + castColumns + ` FROM cast_members
			   WHERE movie_id = ? ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cast []*model.CastMember
	for rows.Next() {
		var cm model.CastMember
		if err := rows.Scan(
			&cm.ID, &cm.MovieID, &cm.ActorName, &cm.CharacterName, &cm.Role,
			&cm.ProfileImageURL, &cm.IsLead, &cm.Position, &cm.CreatedAt, &cm.UpdatedAt); err != nil {
			return nil, err
		}
		cast = append(cast, &cm)
	}
	return cast, rows.Err()
}

// Update rewrites a cast credit.
func (r *CastRepo) Update(ctx context.Context, cm *model.CastMember) error {
	const q = `UPDATE cast_members
			   SET actor_name = ?, character_name = ?, role = ?, profile_image_url = ?,
				   is_lead = ?, position = ?, updated_at = CURRENT_TIMESTAMP
			   WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		cm.ActorName, cm.CharacterName, cm.Role, cm.ProfileImageURL, cm.IsLead, cm.Position, cm.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, cm.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a cast credit. Credits reference no tickets, so a
// hard delete is safe.
func (r *CastRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cast_members WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCastNotFound
	}
	return nil
}
