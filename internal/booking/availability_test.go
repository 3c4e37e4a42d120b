package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-selling/internal/booking"
	"github.com/iliyamo/cinema-ticket-selling/internal/booking/bookingtest"
	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

func TestAvailableSeatsUnknownScreening(t *testing.T) {
	eng := booking.NewEngine(bookingtest.New())

	_, err := eng.AvailableSeats(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindNotFound))
}

func TestAvailableSeatsOrdering(t *testing.T) {
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	// Seed out of order; the result must come back row-major.
	store.AddSeat(model.Seat{RoomID: room.ID, RowLabel: "B", SeatNumber: 2})
	store.AddSeat(model.Seat{RoomID: room.ID, RowLabel: "A", SeatNumber: 1})
	store.AddSeat(model.Seat{RoomID: room.ID, RowLabel: "B", SeatNumber: 1})
	store.AddSeat(model.Seat{RoomID: room.ID, RowLabel: "A", SeatNumber: 2})
	screening := store.AddScreening(model.Screening{
		MovieID:       1,
		RoomID:        room.ID,
		ScreeningTime: time.Now().UTC().Add(time.Hour),
		Price:         1000,
	})
	eng := booking.NewEngine(store)

	available, err := eng.AvailableSeats(context.Background(), screening.ID)
	require.NoError(t, err)
	require.Len(t, available, 4)
	got := make([]string, 0, len(available))
	for _, s := range available {
		got = append(got, s.RowLabel+string(rune('0'+s.SeatNumber)))
	}
	assert.Equal(t, []string{"A1", "A2", "B1", "B2"}, got)
}

// Available seats plus holding tickets always partition the room:
// len(available) + len(holding tickets) == len(all seats).
func TestAvailabilityPartitionsRoom(t *testing.T) {
	store, eng, screening, seats := fixture(t)
	ctx := context.Background()

	check := func(wantHeld int) {
		t.Helper()
		available, err := eng.AvailableSeats(ctx, screening.ID)
		require.NoError(t, err)
		held, err := store.HeldSeatIDs(ctx, screening.ID)
		require.NoError(t, err)
		assert.Equal(t, wantHeld, len(held))
		assert.Equal(t, len(seats), len(available)+len(held))
	}

	check(0)

	tickets, err := eng.Book(ctx, 1, screening.ID, []uint64{seats[0].ID, seats[1].ID, seats[2].ID})
	require.NoError(t, err)
	check(3)

	_, err = eng.ConfirmPayment(ctx, tickets[0].ID, 1, "")
	require.NoError(t, err)
	check(3)

	_, err = eng.CancelTicket(ctx, tickets[1].ID, 1)
	require.NoError(t, err)
	check(2)
}

// Pending tickets do not hold seats; only booked and confirmed do.
func TestPendingTicketDoesNotHoldSeat(t *testing.T) {
	store, eng, screening, seats := fixture(t)
	store.AddTicket(model.Ticket{
		UserID:      1,
		ScreeningID: screening.ID,
		SeatID:      seats[0].ID,
		Status:      model.TicketPending,
	})

	available, err := eng.AvailableSeats(context.Background(), screening.ID)
	require.NoError(t, err)
	assert.Len(t, available, len(seats))
}
