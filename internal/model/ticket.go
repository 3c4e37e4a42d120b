package model

import "time"

// TicketStatus enumerates the lifecycle states of a ticket.  The zero
// value is intentionally invalid so that an unset status is never
// mistaken for a real one.  Statuses are stored lowercase in the
// `tickets.status` column.
type TicketStatus string

const (
	// TicketPending is the schema default carried over from the v1
	// schema.  Booking never produces it; it can only be set by an
	// admin and behaves like an unpaid placeholder that does not
	// hold a seat.
	TicketPending TicketStatus = "pending"
	// TicketBooked is the state created by a successful booking.  A
	// booked ticket holds its seat.
	TicketBooked TicketStatus = "booked"
	// TicketConfirmed means payment was accepted.  A confirmed ticket
	// still holds its seat.
	TicketConfirmed TicketStatus = "confirmed"
	// TicketCancelled is terminal.  The row is kept but the seat is
	// released.
	TicketCancelled TicketStatus = "cancelled"
)

// ParseTicketStatus validates a raw status string.  It returns the
// typed status and true when the string names a known state.
func ParseTicketStatus(s string) (TicketStatus, bool) {
	switch TicketStatus(s) {
	case TicketPending, TicketBooked, TicketConfirmed, TicketCancelled:
		return TicketStatus(s), true
	}
	return "", false
}

// transitions encodes the allowed status changes as a table.  Absence
// of an entry means the transition is invalid.  Cancelled has no
// outgoing edges.
var transitions = map[TicketStatus]map[TicketStatus]bool{
	TicketPending:   {TicketConfirmed: true, TicketCancelled: true},
	TicketBooked:    {TicketConfirmed: true, TicketCancelled: true},
	TicketConfirmed: {TicketCancelled: true},
}

// CanTransition reports whether a ticket in status from may move to
// status to.
func (from TicketStatus) CanTransition(to TicketStatus) bool {
	return transitions[from][to]
}

// Holding reports whether a ticket in this status occupies its seat
// for availability purposes.  Pending and cancelled tickets do not
// block a seat.
func (s TicketStatus) Holding() bool {
	return s == TicketBooked || s == TicketConfirmed
}

// HoldingStatuses lists the statuses that occupy a seat, in the order
// used by SQL IN clauses.
func HoldingStatuses() []TicketStatus {
	return []TicketStatus{TicketBooked, TicketConfirmed}
}

// Ticket represents a booked seat for a screening.  Tickets are
// created by the booking engine and are never physically deleted;
// cancellation is a status change.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who booked the ticket.
//  ScreeningID – screening the ticket is for.
//  SeatID      – seat occupied by the ticket.
//  Price       – price in cents snapshotted from the screening at booking time.
//  Status      – lifecycle state (see TicketStatus).
//  BookingRef  – opaque reference shared by tickets created in one booking.
//  PaymentRef  – external payment reference recorded on confirmation.
//  BookedAt    – when the ticket was created.
//  ConfirmedAt – when payment was confirmed (nil until then).
type Ticket struct {
	ID          uint64       `json:"id"`                     // tickets.id
	UserID      uint64       `json:"user_id"`                // tickets.user_id
	ScreeningID uint64       `json:"screening_id"`           // tickets.screening_id
	SeatID      uint64       `json:"seat_id"`                // tickets.seat_id
	Price       uint32       `json:"price_cents"`            // tickets.price_cents
	Status      TicketStatus `json:"status"`                 // tickets.status
	BookingRef  string       `json:"booking_ref"`            // tickets.booking_ref
	PaymentRef  *string      `json:"payment_ref,omitempty"`  // tickets.payment_ref (nullable)
	BookedAt    time.Time    `json:"booked_at"`              // tickets.booked_at
	ConfirmedAt *time.Time   `json:"confirmed_at,omitempty"` // tickets.confirmed_at (nullable)
}
