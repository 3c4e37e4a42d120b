package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// ErrTicketNotFound is returned when a ticket cannot be found.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketView is a ticket joined with its screening, movie and seat
// for listings. The booking engine works on bare model.Ticket rows;
// this read model exists only for the HTTP surface.
type TicketView struct {
	model.Ticket
	MovieTitle    string    `json:"movie_title"`    // movies.title
	ScreeningTime time.Time `json:"screening_time"` // screenings.screening_time
	RowLabel      string    `json:"row_label"`      // seats.row_label
	SeatNumber    uint32    `json:"seat_number"`    // seats.seat_number
	RoomName      string    `json:"room_name"`      // rooms.name
	CinemaName    string    `json:"cinema_name"`    // cinemas.name
}

// TicketRepo serves the read side of tickets. All writes go through
// the booking engine's transactional store.
type TicketRepo struct{ db *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketViewQuery = `SELECT t.id, t.user_id, t.screening_id, t.seat_id, t.price_cents,
								t.status, t.booking_ref, t.payment_ref, t.booked_at, t.confirmed_at,
								m.title, sc.screening_time, s.row_label, s.seat_number, rm.name, c.name
						 FROM tickets t
						 JOIN screenings sc ON sc.id = t.screening_id
						 JOIN movies m ON m.id = sc.movie_id
						 JOIN seats s ON s.id = t.seat_id
						 JOIN rooms rm ON rm.id = sc.room_id
						 JOIN cinemas c ON c.id = rm.cinema_id`

// GetByID fetches one ticket view by id.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*TicketView, error) {
	rows, err := r.db.QueryContext(ctx, ticketViewQuery+` WHERE t.id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	views, err := scanTicketViews(rows)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrTicketNotFound
	}
	return views[0], nil
}

// ListByUser returns the caller's tickets, newest booking first.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]*TicketView, error) {
	q := ticketViewQuery + ` WHERE t.user_id = ? ORDER BY t.booked_at DESC, t.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketViews(rows)
}

// ListAll returns every ticket, optionally filtered by status, with
// limit/offset pagination. Admin only.
func (r *TicketRepo) ListAll(ctx context.Context, status model.TicketStatus, limit, offset int) ([]*TicketView, error) {
	q := ticketViewQuery
	var args []interface{}
	if status != "" {
		q += ` WHERE t.status = ?`
		args = append(args, string(status))
	}
	q += ` ORDER BY t.booked_at DESC, t.id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTicketViews(rows)
}

func scanTicketViews(rows *sql.Rows) ([]*TicketView, error) {
	var out []*TicketView
	for rows.Next() {
		var (
			v           TicketView
			status      string
			paymentRef  sql.NullString
			confirmedAt sql.NullTime
		)
		err := rows.Scan(&v.ID, &v.UserID, &v.ScreeningID, &v.SeatID, &v.Price,
			&status, &v.BookingRef, &paymentRef, &v.BookedAt, &confirmedAt,
			&v.MovieTitle, &v.ScreeningTime, &v.RowLabel, &v.SeatNumber, &v.RoomName, &v.CinemaName)
		if err != nil {
			return nil, err
		}
		v.Status = model.TicketStatus(status)
		if paymentRef.Valid {
			ref := paymentRef.String
			v.PaymentRef = &ref
		}
		if confirmedAt.Valid {
			at := confirmedAt.Time
			v.ConfirmedAt = &at
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
