package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// ErrRoomNotFound is returned when a room cannot be found.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo encapsulates all database queries related to rooms.
type RoomRepo struct{ db *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a new room under its cinema and populates the ID.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (cinema_id, name) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.CinemaID, rm.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM rooms WHERE id = ?`, rm.ID).
		Scan(&rm.CreatedAt)
}

// GetByID fetches a room by id.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, cinema_id, name, created_at FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rm.ID, &rm.CinemaID, &rm.Name, &rm.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// ListByCinema returns the rooms of a cinema ordered by id.
func (r *RoomRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]*model.Room, error) {
	const q = `SELECT id, cinema_id, name, created_at FROM rooms WHERE cinema_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, cinemaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Room
	for rows.Next() {
		rm := new(model.Room)
		if err := rows.Scan(&rm.ID, &rm.CinemaID, &rm.Name, &rm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// UpdateName renames a room. The owning cinema never changes.
func (r *RoomRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	const q = `UPDATE rooms SET name = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// Delete removes a room with its seats and screenings. It refuses
// with ErrConflict when tickets reference any of the room's screenings.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var exists uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}
	if err != nil {
		return err
	}

	var tickets int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets t
		 JOIN screenings sc ON sc.id = t.screening_id
		 WHERE sc.room_id = ?`, id).Scan(&tickets)
	if err != nil {
		return err
	}
	if tickets > 0 {
		return ErrConflict
	}

	steps := []string{
		`DELETE FROM screenings WHERE room_id = ?`,
		`DELETE FROM seats WHERE room_id = ?`,
		`DELETE FROM rooms WHERE id = ?`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
