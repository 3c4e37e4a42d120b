package booking

import (
	"context"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// AvailableSeats returns the seats of the screening's room that are
// not currently held by a booked or confirmed ticket, ordered by row
// label then seat number.
//
// The result is a snapshot at the instant of the two reads.  No locks
// are taken, so it is advisory: a seat reported as available may be
// gone by the time a subsequent Book call runs.  Book re-checks under
// row locks.
func (e *Engine) AvailableSeats(ctx context.Context, screeningID uint64) ([]model.Seat, error) {
	screening, err := e.store.ScreeningByID(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	if screening == nil {
		return nil, notFoundf("screening with id %d not found", screeningID)
	}

	seats, err := e.store.SeatsByRoom(ctx, screening.RoomID)
	if err != nil {
		return nil, err
	}
	heldIDs, err := e.store.HeldSeatIDs(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	held := make(map[uint64]struct{}, len(heldIDs))
	for _, id := range heldIDs {
		held[id] = struct{}{}
	}

	available := make([]model.Seat, 0, len(seats))
	for _, s := range seats {
		if _, ok := held[s.ID]; !ok {
			available = append(available, s)
		}
	}
	return available, nil
}
