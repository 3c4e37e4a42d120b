package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// ErrSeatNotFound is returned when a seat cannot be found.
var ErrSeatNotFound = errors.New("seat not found")

// SeatRepo reads seats. Seat creation goes through the bulk
// provisioner, so this repository carries no insert path.
type SeatRepo struct{ db *sql.DB }

func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// GetByID fetches a seat by id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, room_id, row_label, seat_number, seat_type, created_at
			   FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.RoomID, &s.RowLabel, &s.SeatNumber, &s.SeatType, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeatNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByRoom returns the seats of a room in row-major order.
func (r *SeatRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error) {
	const q = `SELECT id, room_id, row_label, seat_number, seat_type, created_at
			   FROM seats WHERE room_id = ?
			   ORDER BY row_label, seat_number`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.RoomID, &s.RowLabel, &s.SeatNumber, &s.SeatType, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteByRoom removes every seat of a room so it can be provisioned
// again. It refuses with ErrConflict while tickets reference any of
// the room's seats.
func (r *SeatRepo) DeleteByRoom(ctx context.Context, roomID uint64) error {
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

	var tickets int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets t
		 JOIN seats s ON s.id = t.seat_id
		 WHERE s.room_id = ?`, roomID).Scan(&tickets)
	if err != nil {
		return err
	}
	if tickets > 0 {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM seats WHERE room_id = ?`, roomID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
