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

// fixture builds a room with ten seats and one future screening at
// 1500 cents, matching the layout used across the engine tests.
func fixture(t *testing.T) (*bookingtest.Store, *booking.Engine, model.Screening, []model.Seat) {
	t.Helper()
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	seats := make([]model.Seat, 0, 10)
	for n := 1; n <= 10; n++ {
		seats = append(seats, store.AddSeat(model.Seat{
			RoomID:     room.ID,
			RowLabel:   "A",
			SeatNumber: uint32(n),
			SeatType:   booking.DefaultSeatType,
		}))
	}
	screening := store.AddScreening(model.Screening{
		MovieID:       1,
		RoomID:        room.ID,
		ScreeningTime: time.Now().UTC().Add(24 * time.Hour),
		Price:         1500,
	})
	return store, booking.NewEngine(store), screening, seats
}

func TestBookCreatesBookedTicketsWithSnapshotPrice(t *testing.T) {
	_, eng, screening, seats := fixture(t)

	tickets, err := eng.Book(context.Background(), 1, screening.ID, []uint64{seats[0].ID, seats[1].ID})
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	for _, tk := range tickets {
		assert.Equal(t, model.TicketBooked, tk.Status)
		assert.Equal(t, uint32(1500), tk.Price)
		assert.Equal(t, uint64(1), tk.UserID)
		assert.NotZero(t, tk.ID)
		assert.NotEmpty(t, tk.BookingRef)
	}
	// Tickets of one booking share a reference.
	assert.Equal(t, tickets[0].BookingRef, tickets[1].BookingRef)
}

func TestBookConflictReportsOffendingSeats(t *testing.T) {
	_, eng, screening, seats := fixture(t)

	_, err := eng.Book(context.Background(), 1, screening.ID, []uint64{seats[0].ID, seats[1].ID})
	require.NoError(t, err)

	_, err = eng.Book(context.Background(), 2, screening.ID, []uint64{seats[0].ID})
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindConflict))
	var be *booking.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, []uint64{seats[0].ID}, be.SeatIDs)
}

func TestBookIsAllOrNothing(t *testing.T) {
	store, eng, screening, seats := fixture(t)

	_, err := eng.Book(context.Background(), 1, screening.ID, []uint64{seats[1].ID})
	require.NoError(t, err)
	before := store.TicketCount()

	// seats[0] is free, seats[1] is held: the whole request must fail
	// and create zero tickets.
	_, err = eng.Book(context.Background(), 2, screening.ID, []uint64{seats[0].ID, seats[1].ID})
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindConflict))
	assert.Equal(t, before, store.TicketCount())
}

func TestBookUnknownScreening(t *testing.T) {
	store, eng, _, seats := fixture(t)

	_, err := eng.Book(context.Background(), 1, 999, []uint64{seats[0].ID})
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindNotFound))
	assert.Equal(t, 0, store.TicketCount())
}

func TestBookUnknownSeat(t *testing.T) {
	_, eng, screening, _ := fixture(t)

	_, err := eng.Book(context.Background(), 1, screening.ID, []uint64{999})
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindNotFound))
}

func TestBookSeatFromAnotherRoom(t *testing.T) {
	store, eng, screening, _ := fixture(t)
	other := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 2"})
	foreign := store.AddSeat(model.Seat{RoomID: other.ID, RowLabel: "A", SeatNumber: 1})

	_, err := eng.Book(context.Background(), 1, screening.ID, []uint64{foreign.ID})
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindInvalidState))
}

func TestBookEmptySeatList(t *testing.T) {
	_, eng, screening, _ := fixture(t)

	_, err := eng.Book(context.Background(), 1, screening.ID, nil)
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindInvalidArgument))
}

func TestBookPastScreeningBoundary(t *testing.T) {
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	seat := store.AddSeat(model.Seat{RoomID: room.ID, RowLabel: "A", SeatNumber: 1})

	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	eng := booking.NewEngineAt(store, func() time.Time { return now })

	cases := []struct {
		name      string
		startsAt  time.Time
		wantError bool
	}{
		{"one hour ago", now.Add(-time.Hour), true},
		{"exactly now", now, true},
		{"one second ahead", now.Add(time.Second), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			screening := store.AddScreening(model.Screening{
				MovieID:       1,
				RoomID:        room.ID,
				ScreeningTime: tc.startsAt,
				Price:         1000,
			})
			_, err := eng.Book(context.Background(), 1, screening.ID, []uint64{seat.ID})
			if tc.wantError {
				require.Error(t, err)
				assert.True(t, booking.IsKind(err, booking.KindInvalidState))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCancelTicket(t *testing.T) {
	_, eng, screening, seats := fixture(t)
	ctx := context.Background()

	tickets, err := eng.Book(ctx, 1, screening.ID, []uint64{seats[0].ID})
	require.NoError(t, err)
	id := tickets[0].ID

	cancelled, err := eng.CancelTicket(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, model.TicketCancelled, cancelled.Status)

	// Second cancel is rejected and changes nothing.
	_, err = eng.CancelTicket(ctx, id, 1)
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindInvalidState))
}

func TestCancelTicketOwnership(t *testing.T) {
	_, eng, screening, seats := fixture(t)
	ctx := context.Background()

	tickets, err := eng.Book(ctx, 1, screening.ID, []uint64{seats[0].ID})
	require.NoError(t, err)

	_, err = eng.CancelTicket(ctx, tickets[0].ID, 2)
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindForbidden))

	_, err = eng.CancelTicket(ctx, 999, 1)
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindNotFound))
}

func TestCancelledSeatBecomesAvailableAgain(t *testing.T) {
	_, eng, screening, seats := fixture(t)
	ctx := context.Background()

	tickets, err := eng.Book(ctx, 1, screening.ID, []uint64{seats[0].ID, seats[1].ID})
	require.NoError(t, err)

	available, err := eng.AvailableSeats(ctx, screening.ID)
	require.NoError(t, err)
	assert.Len(t, available, 8)

	_, err = eng.CancelTicket(ctx, tickets[0].ID, 1)
	require.NoError(t, err)

	available, err = eng.AvailableSeats(ctx, screening.ID)
	require.NoError(t, err)
	assert.Len(t, available, 9)
	ids := make(map[uint64]bool, len(available))
	for _, s := range available {
		ids[s.ID] = true
	}
	assert.True(t, ids[seats[0].ID], "cancelled seat should be available again")
	assert.False(t, ids[seats[1].ID], "still-booked seat should stay held")
}

func TestConfirmPayment(t *testing.T) {
	store, eng, screening, seats := fixture(t)
	ctx := context.Background()

	tickets, err := eng.Book(ctx, 1, screening.ID, []uint64{seats[0].ID})
	require.NoError(t, err)
	id := tickets[0].ID

	confirmed, err := eng.ConfirmPayment(ctx, id, 1, "pay_12345")
	require.NoError(t, err)
	assert.Equal(t, model.TicketConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt)
	require.NotNil(t, confirmed.PaymentRef)
	assert.Equal(t, "pay_12345", *confirmed.PaymentRef)

	// A confirmed ticket still holds its seat.
	available, err := eng.AvailableSeats(ctx, screening.ID)
	require.NoError(t, err)
	assert.Len(t, available, 9)

	// Double confirmation is rejected.
	_, err = eng.ConfirmPayment(ctx, id, 1, "pay_12345")
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindInvalidState))

	stored, ok := store.Ticket(id)
	require.True(t, ok)
	assert.Equal(t, model.TicketConfirmed, stored.Status)
}

func TestConfirmPaymentCancelledTicket(t *testing.T) {
	_, eng, screening, seats := fixture(t)
	ctx := context.Background()

	tickets, err := eng.Book(ctx, 1, screening.ID, []uint64{seats[0].ID})
	require.NoError(t, err)
	_, err = eng.CancelTicket(ctx, tickets[0].ID, 1)
	require.NoError(t, err)

	_, err = eng.ConfirmPayment(ctx, tickets[0].ID, 1, "")
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindInvalidState))
}

func TestAdminSetStatus(t *testing.T) {
	_, eng, screening, seats := fixture(t)
	ctx := context.Background()

	tickets, err := eng.Book(ctx, 1, screening.ID, []uint64{seats[0].ID})
	require.NoError(t, err)
	id := tickets[0].ID

	updated, err := eng.AdminSetStatus(ctx, id, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, model.TicketConfirmed, updated.Status)
	require.NotNil(t, updated.ConfirmedAt)
	first := *updated.ConfirmedAt

	// Re-confirming does not move the original confirmation stamp.
	updated, err = eng.AdminSetStatus(ctx, id, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, first, *updated.ConfirmedAt)

	updated, err = eng.AdminSetStatus(ctx, id, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, model.TicketCancelled, updated.Status)

	_, err = eng.AdminSetStatus(ctx, id, "booked")
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindInvalidArgument))

	_, err = eng.AdminSetStatus(ctx, id, "shipped")
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindInvalidArgument))

	_, err = eng.AdminSetStatus(ctx, 999, "cancelled")
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindNotFound))
}

func TestBookDeduplicatesSeatIDs(t *testing.T) {
	_, eng, screening, seats := fixture(t)

	tickets, err := eng.Book(context.Background(), 1, screening.ID, []uint64{seats[0].ID, seats[0].ID})
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}
