package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// ErrScreeningNotFound is returned when a screening cannot be found.
var ErrScreeningNotFound = errors.New("screening not found")

// Showtime is a screening joined with its room and cinema for the
// public showtime listings.
type Showtime struct {
	model.Screening
	RoomName   string `json:"room_name"`   // rooms.name
	CinemaID   uint64 `json:"cinema_id"`   // rooms.cinema_id
	CinemaName string `json:"cinema_name"` // cinemas.name
}

// ScreeningFilter narrows List. Zero values mean "no filter".
type ScreeningFilter struct {
	MovieID  uint64
	CinemaID uint64
	Day      time.Time // matches the calendar day when non-zero
}

// ScreeningRepo encapsulates all database queries related to screenings.
type ScreeningRepo struct{ db *sql.DB }

func NewScreeningRepo(db *sql.DB) *ScreeningRepo { return &ScreeningRepo{db: db} }

const screeningColumns = `id, movie_id, room_id, screening_time, price_cents, created_at`

// Create inserts a new screening and populates ID and CreatedAt.
// Foreign key violations on movie or room surface as the driver error.
func (r *ScreeningRepo) Create(ctx context.Context, sc *model.Screening) error {
	const q = `INSERT INTO screenings (movie_id, room_id, screening_time, price_cents)
			   VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, sc.MovieID, sc.RoomID, sc.ScreeningTime, sc.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	sc.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM screenings WHERE id = ?`, sc.ID).
		Scan(&sc.CreatedAt)
}

// GetByID fetches a screening by id.
func (r *ScreeningRepo) GetByID(ctx context.Context, id uint64) (*model.Screening, error) {
	const q = `SELECT ` + screeningColumns + ` FROM screenings WHERE id = ?`
	var sc model.Screening
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&sc.ID, &sc.MovieID, &sc.RoomID, &sc.ScreeningTime, &sc.Price, &sc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScreeningNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// List returns upcoming screenings matching the filter, soonest first.
func (r *ScreeningRepo) List(ctx context.Context, f ScreeningFilter) ([]*Showtime, error) {
	q := `SELECT sc.id, sc.movie_id, sc.room_id, sc.screening_time, sc.price_cents,
				 sc.created_at, rm.name, rm.cinema_id, c.name
		  FROM screenings sc
		  JOIN rooms rm ON rm.id = sc.room_id
		  JOIN cinemas c ON c.id = rm.cinema_id
		  WHERE sc.screening_time > NOW()`
	var args []interface{}
	if f.MovieID != 0 {
		q += ` AND sc.movie_id = ?`
		args = append(args, f.MovieID)
	}
	if f.CinemaID != 0 {
		q += ` AND rm.cinema_id = ?`
		args = append(args, f.CinemaID)
	}
	if !f.Day.IsZero() {
		q += ` AND DATE(sc.screening_time) = DATE(?)`
		args = append(args, f.Day)
	}
	q += ` ORDER BY sc.screening_time, sc.id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Showtime
	for rows.Next() {
		st := new(Showtime)
		err := rows.Scan(&st.ID, &st.MovieID, &st.RoomID, &st.ScreeningTime, &st.Price,
			&st.CreatedAt, &st.RoomName, &st.CinemaID, &st.CinemaName)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Update changes the schedule fields of a screening.
func (r *ScreeningRepo) Update(ctx context.Context, sc *model.Screening) error {
	const q = `UPDATE screenings SET movie_id = ?, room_id = ?, screening_time = ?, price_cents = ?
			   WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, sc.MovieID, sc.RoomID, sc.ScreeningTime, sc.Price, sc.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreeningNotFound
	}
	return nil
}

// Delete removes a screening. It refuses with ErrConflict when
// tickets reference it; tickets are never deleted.
func (r *ScreeningRepo) Delete(ctx context.Context, id uint64) error {
	var tickets int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets WHERE screening_id = ?`, id).Scan(&tickets)
	if err != nil {
		return err
	}
	if tickets > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM screenings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreeningNotFound
	}
	return nil
}
