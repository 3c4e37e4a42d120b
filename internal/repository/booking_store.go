package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-ticket-selling/internal/booking"
	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// BookingStore is the SQL implementation of the booking core's
// persistence boundary (booking.Store).  All mutations run inside a
// transaction created by InTx; the conflict checks lock the relevant
// rows with SELECT ... FOR UPDATE so that two concurrent bookings for
// the same seat serialize on the database instead of racing.  The
// schema additionally carries a unique index over
// (screening_id, seat_id, status) restricted to holding statuses as a
// second line of defense.
type BookingStore struct {
	db *sql.DB
}

// NewBookingStore returns a BookingStore bound to the given database.
func NewBookingStore(db *sql.DB) *BookingStore { return &BookingStore{db: db} }

var _ booking.Store = (*BookingStore)(nil)

// ScreeningByID loads a screening outside any transaction.  Returns
// (nil, nil) when the screening does not exist.
func (s *BookingStore) ScreeningByID(ctx context.Context, id uint64) (*model.Screening, error) {
	return scanScreening(s.db.QueryRowContext(ctx, screeningByIDQuery, id))
}

// SeatsByRoom lists every seat of a room ordered by row label then
// seat number.
func (s *BookingStore) SeatsByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error) {
	const q = `SELECT id, room_id, row_label, seat_number, seat_type, created_at
			   FROM seats
			   WHERE room_id = ?
			   ORDER BY row_label, seat_number`
	rows, err := s.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSeats(rows)
}

// HeldSeatIDs returns the seat ids of tickets for the screening whose
// status marks them as holding a seat.
func (s *BookingStore) HeldSeatIDs(ctx context.Context, screeningID uint64) ([]uint64, error) {
	const q = `SELECT seat_id FROM tickets
			   WHERE screening_id = ? AND status IN ('booked','confirmed')`
	rows, err := s.db.QueryContext(ctx, q, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

// InTx begins a transaction, runs fn and commits when fn returns nil.
// Any error rolls the transaction back and is returned unchanged so
// booking error kinds survive the round trip.
func (s *BookingStore) InTx(ctx context.Context, fn func(booking.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&bookingTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

const screeningByIDQuery = `SELECT id, movie_id, room_id, screening_time, price_cents, created_at
							FROM screenings WHERE id = ?`

// bookingTx implements booking.Tx over a live *sql.Tx.
type bookingTx struct {
	tx *sql.Tx
}

func (t *bookingTx) ScreeningByID(ctx context.Context, id uint64) (*model.Screening, error) {
	return scanScreening(t.tx.QueryRowContext(ctx, screeningByIDQuery, id))
}

func (t *bookingTx) RoomByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, cinema_id, name, created_at FROM rooms WHERE id = ?`
	var r model.Room
	err := t.tx.QueryRowContext(ctx, q, id).Scan(&r.ID, &r.CinemaID, &r.Name, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SeatsByIDs loads the given seats and locks their rows for the
// remainder of the transaction.
func (t *bookingTx) SeatsByIDs(ctx context.Context, seatIDs []uint64) ([]model.Seat, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}
	q := `SELECT id, room_id, row_label, seat_number, seat_type, created_at
		  FROM seats
		  WHERE id IN (` + placeholders(len(seatIDs)) + `)
		  FOR UPDATE`
	rows, err := t.tx.QueryContext(ctx, q, idArgs(seatIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSeats(rows)
}

func (t *bookingTx) RoomSeatCount(ctx context.Context, roomID uint64) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM seats WHERE room_id = ?`, roomID).Scan(&n)
	return n, err
}

// HeldSeatIDsAmong returns, locked, the subset of seatIDs already
// carrying a holding-status ticket for the screening.
func (t *bookingTx) HeldSeatIDsAmong(ctx context.Context, screeningID uint64, seatIDs []uint64) ([]uint64, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}
	q := `SELECT seat_id FROM tickets
		  WHERE screening_id = ? AND status IN ('booked','confirmed')
			AND seat_id IN (` + placeholders(len(seatIDs)) + `)
		  ORDER BY seat_id
		  FOR UPDATE`
	args := append([]interface{}{screeningID}, idArgs(seatIDs)...)
	rows, err := t.tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (t *bookingTx) InsertTickets(ctx context.Context, tickets []*model.Ticket) error {
	const q = `INSERT INTO tickets
			   (user_id, screening_id, seat_id, price_cents, status, booking_ref, booked_at)
			   VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, tk := range tickets {
		res, err := t.tx.ExecContext(ctx, q,
			tk.UserID, tk.ScreeningID, tk.SeatID, tk.Price, string(tk.Status), tk.BookingRef, tk.BookedAt)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		tk.ID = uint64(id)
	}
	return nil
}

func (t *bookingTx) InsertSeats(ctx context.Context, seats []*model.Seat) error {
	const q = `INSERT INTO seats (room_id, row_label, seat_number, seat_type) VALUES (?, ?, ?, ?)`
	for _, s := range seats {
		res, err := t.tx.ExecContext(ctx, q, s.RoomID, s.RowLabel, s.SeatNumber, s.SeatType)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
	}
	return nil
}

func (t *bookingTx) TicketByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	const q = `SELECT id, user_id, screening_id, seat_id, price_cents, status,
					  booking_ref, payment_ref, booked_at, confirmed_at
			   FROM tickets WHERE id = ?`
	return scanTicket(t.tx.QueryRowContext(ctx, q, id))
}

func (t *bookingTx) UpdateTicket(ctx context.Context, tk *model.Ticket) error {
	const q = `UPDATE tickets SET status = ?, payment_ref = ?, confirmed_at = ? WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, string(tk.Status), tk.PaymentRef, tk.ConfirmedAt, tk.ID)
	return err
}

// rowScanner lets scan helpers accept both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanScreening(row rowScanner) (*model.Screening, error) {
	var sc model.Screening
	err := row.Scan(&sc.ID, &sc.MovieID, &sc.RoomID, &sc.ScreeningTime, &sc.Price, &sc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func scanTicket(row rowScanner) (*model.Ticket, error) {
	var (
		tk          model.Ticket
		status      string
		paymentRef  sql.NullString
		confirmedAt sql.NullTime
	)
	err := row.Scan(&tk.ID, &tk.UserID, &tk.ScreeningID, &tk.SeatID, &tk.Price, &status,
		&tk.BookingRef, &paymentRef, &tk.BookedAt, &confirmedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	tk.Status = model.TicketStatus(status)
	if paymentRef.Valid {
		ref := paymentRef.String
		tk.PaymentRef = &ref
	}
	if confirmedAt.Valid {
		at := confirmedAt.Time
		tk.ConfirmedAt = &at
	}
	return &tk, nil
}

func scanSeats(rows *sql.Rows) ([]model.Seat, error) {
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

func scanIDs(rows *sql.Rows) ([]uint64, error) {
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []uint64) []interface{} {
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
