package booking

import (
	"context"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// Store is the persistence boundary of the booking core.  The SQL
// implementation lives in internal/repository; tests use the
// in-memory store from the bookingtest package.
//
// Single-row lookups return (nil, nil) when no row exists so that the
// engine can map absence onto its own NotFound errors without pulling
// database sentinels into this package.
type Store interface {
	// ScreeningByID loads a screening outside any transaction.
	ScreeningByID(ctx context.Context, id uint64) (*model.Screening, error)
	// SeatsByRoom lists every seat of a room ordered by row label
	// then seat number.
	SeatsByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error)
	// HeldSeatIDs returns the seat ids of tickets for the screening
	// whose status holds the seat.
	HeldSeatIDs(ctx context.Context, screeningID uint64) ([]uint64, error)
	// InTx runs fn inside a single database transaction.  The
	// transaction commits when fn returns nil and rolls back
	// otherwise; every mutation of the booking core happens through
	// InTx so that each operation is all-or-nothing.
	InTx(ctx context.Context, fn func(Tx) error) error
}

// Tx exposes the statements the engine needs inside a transaction.
// Implementations must make SeatsByIDs and HeldSeatIDsAmong acquire
// row locks (SELECT ... FOR UPDATE) so that two concurrent bookings
// for the same seat serialize instead of both passing the conflict
// check.
type Tx interface {
	ScreeningByID(ctx context.Context, id uint64) (*model.Screening, error)
	RoomByID(ctx context.Context, id uint64) (*model.Room, error)
	// SeatsByIDs loads and locks the given seats.  Missing ids are
	// simply absent from the result.
	SeatsByIDs(ctx context.Context, seatIDs []uint64) ([]model.Seat, error)
	// RoomSeatCount reports how many seats a room already has.
	RoomSeatCount(ctx context.Context, roomID uint64) (int, error)
	// HeldSeatIDsAmong returns, locked, the subset of seatIDs that
	// already carry a holding-status ticket for the screening.
	HeldSeatIDsAmong(ctx context.Context, screeningID uint64, seatIDs []uint64) ([]uint64, error)
	// InsertTickets inserts all tickets and populates their IDs.
	InsertTickets(ctx context.Context, tickets []*model.Ticket) error
	// InsertSeats inserts all seats and populates their IDs.
	InsertSeats(ctx context.Context, seats []*model.Seat) error
	TicketByID(ctx context.Context, id uint64) (*model.Ticket, error)
	// UpdateTicket persists status, payment_ref and confirmed_at.
	UpdateTicket(ctx context.Context, t *model.Ticket) error
}
