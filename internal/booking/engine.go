package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// Engine implements the ticket lifecycle state machine on top of a
// Store.  All mutations run inside a single transaction supplied by
// the store, so each operation either fully applies or not at all.
type Engine struct {
	store Store
	now   func() time.Time
	// newRef generates the booking reference shared by the tickets
	// of one Book call.
	newRef func() string
}

// NewEngine returns an Engine bound to the given store.
func NewEngine(store Store) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{
		store:  store,
		now:    time.Now,
		newRef: uuid.NewString,
	}
}

// NewEngineAt returns an Engine that reads the current time from the
// given function instead of time.Now.  Used by tests to pin "now" for
// the past-screening boundary checks.
func NewEngineAt(store Store, now func() time.Time) *Engine {
	e := NewEngine(store)
	e.now = now
	return e
}

// Book creates one ticket per requested seat for a screening.  The
// preconditions are checked in order, each failing fast with a
// distinct error kind:
//
//  1. the screening exists (NotFound),
//  2. its start time is strictly in the future (InvalidState),
//  3. every seat exists (NotFound) and belongs to the screening's
//     room (InvalidState),
//  4. none of the seats already carries a holding-status ticket for
//     this screening (Conflict, reporting the offending seat ids).
//
// On success all tickets are created with status booked and the price
// snapshotted from the screening.  The whole operation runs inside a
// single transaction; the seat rows and any holding tickets are
// locked during the conflict check, so two concurrent Book calls for
// the same seat cannot both succeed.
func (e *Engine) Book(ctx context.Context, userID, screeningID uint64, seatIDs []uint64) ([]*model.Ticket, error) {
	if len(seatIDs) == 0 {
		return nil, invalidArgumentf("seat_ids must not be empty")
	}
	seatIDs = dedup(seatIDs)

	var tickets []*model.Ticket
	err := e.store.InTx(ctx, func(tx Tx) error {
		screening, err := tx.ScreeningByID(ctx, screeningID)
		if err != nil {
			return err
		}
		if screening == nil {
			return notFoundf("screening with id %d not found", screeningID)
		}
		now := e.now().UTC()
		if !screening.ScreeningTime.After(now) {
			return invalidStatef("cannot book tickets for past screenings")
		}

		seats, err := tx.SeatsByIDs(ctx, seatIDs)
		if err != nil {
			return err
		}
		byID := make(map[uint64]model.Seat, len(seats))
		for _, s := range seats {
			byID[s.ID] = s
		}
		for _, id := range seatIDs {
			seat, ok := byID[id]
			if !ok {
				return notFoundf("seat with id %d not found", id)
			}
			if seat.RoomID != screening.RoomID {
				return invalidStatef("seat %d does not belong to the screening's room", id)
			}
		}

		held, err := tx.HeldSeatIDsAmong(ctx, screeningID, seatIDs)
		if err != nil {
			return err
		}
		if len(held) > 0 {
			return seatConflict(held)
		}

		ref := e.newRef()
		tickets = make([]*model.Ticket, 0, len(seatIDs))
		for _, id := range seatIDs {
			tickets = append(tickets, &model.Ticket{
				UserID:      userID,
				ScreeningID: screeningID,
				SeatID:      id,
				Price:       screening.Price,
				Status:      model.TicketBooked,
				BookingRef:  ref,
				BookedAt:    now,
			})
		}
		return tx.InsertTickets(ctx, tickets)
	})
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// CancelTicket moves a ticket owned by userID to cancelled.  The row
// is kept; availability queries simply stop counting the seat as
// held.  Cancelling an already cancelled ticket fails with
// InvalidState, so a second cancel never changes anything.
func (e *Engine) CancelTicket(ctx context.Context, ticketID, userID uint64) (*model.Ticket, error) {
	var ticket *model.Ticket
	err := e.store.InTx(ctx, func(tx Tx) error {
		t, err := e.ownedTicket(ctx, tx, ticketID, userID)
		if err != nil {
			return err
		}
		if t.Status == model.TicketCancelled {
			return invalidStatef("ticket %d is already cancelled", ticketID)
		}
		t.Status = model.TicketCancelled
		if err := tx.UpdateTicket(ctx, t); err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// ConfirmPayment moves a ticket owned by userID to confirmed and
// stamps confirmed_at.  Booked tickets confirm directly; pending
// tickets (legacy admin-set state) confirm as well.  Any other
// current status fails with InvalidState reporting that status.  The
// payment reference is stored verbatim; no payment processing
// happens here.
func (e *Engine) ConfirmPayment(ctx context.Context, ticketID, userID uint64, paymentRef string) (*model.Ticket, error) {
	var ticket *model.Ticket
	err := e.store.InTx(ctx, func(tx Tx) error {
		t, err := e.ownedTicket(ctx, tx, ticketID, userID)
		if err != nil {
			return err
		}
		if !t.Status.CanTransition(model.TicketConfirmed) {
			return invalidStatef("cannot confirm payment for ticket with status: %s", t.Status)
		}
		now := e.now().UTC()
		t.Status = model.TicketConfirmed
		t.ConfirmedAt = &now
		if paymentRef != "" {
			t.PaymentRef = &paymentRef
		}
		if err := tx.UpdateTicket(ctx, t); err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// AdminSetStatus force-sets a ticket's status.  Only pending,
// confirmed and cancelled may be assigned this way; anything else,
// including "booked", fails with InvalidArgument.  When the new
// status is confirmed and the ticket has no confirmation timestamp
// yet, one is stamped.  Role enforcement happens in the HTTP layer.
func (e *Engine) AdminSetStatus(ctx context.Context, ticketID uint64, newStatus string) (*model.Ticket, error) {
	status, ok := model.ParseTicketStatus(newStatus)
	if !ok || status == model.TicketBooked {
		return nil, invalidArgumentf("invalid status %q, must be one of: pending, confirmed, cancelled", newStatus)
	}
	var ticket *model.Ticket
	err := e.store.InTx(ctx, func(tx Tx) error {
		t, err := tx.TicketByID(ctx, ticketID)
		if err != nil {
			return err
		}
		if t == nil {
			return notFoundf("ticket with id %d not found", ticketID)
		}
		t.Status = status
		if status == model.TicketConfirmed && t.ConfirmedAt == nil {
			now := e.now().UTC()
			t.ConfirmedAt = &now
		}
		if err := tx.UpdateTicket(ctx, t); err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// ownedTicket loads a ticket and verifies ownership.
func (e *Engine) ownedTicket(ctx context.Context, tx Tx, ticketID, userID uint64) (*model.Ticket, error) {
	t, err := tx.TicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFoundf("ticket with id %d not found", ticketID)
	}
	if t.UserID != userID {
		return nil, forbiddenf("ticket %d belongs to another user", ticketID)
	}
	return t, nil
}

// dedup removes duplicate seat ids while preserving order.  A zero
// id is kept; no seat has id 0, so it fails the existence check with
// NotFound like any other unknown seat.
func dedup(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
