package booking_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-selling/internal/booking"
	"github.com/iliyamo/cinema-ticket-selling/internal/booking/bookingtest"
	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

func TestRowLabel(t *testing.T) {
	cases := map[int]string{
		0:  "A",
		1:  "B",
		25: "Z",
		26: "AA",
		27: "AB",
		51: "AZ",
		52: "BA",
		-1: "",
	}
	for idx, want := range cases {
		assert.Equal(t, want, booking.RowLabel(idx), "index %d", idx)
	}
}

func TestBulkCreateSeatsGrid(t *testing.T) {
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	eng := booking.NewEngine(store)

	seats, err := eng.BulkCreateSeats(context.Background(), room.ID, 3, 2, "")
	require.NoError(t, err)
	require.Len(t, seats, 6)

	got := make([]string, 0, len(seats))
	for _, s := range seats {
		got = append(got, fmt.Sprintf("%s%d", s.RowLabel, s.SeatNumber))
		assert.Equal(t, booking.DefaultSeatType, s.SeatType)
		assert.Equal(t, room.ID, s.RoomID)
		assert.NotZero(t, s.ID)
	}
	// Row-major creation order: all of A, then B, then C.
	assert.Equal(t, []string{"A1", "A2", "B1", "B2", "C1", "C2"}, got)
}

func TestBulkCreateSeatsSeatType(t *testing.T) {
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	eng := booking.NewEngine(store)

	seats, err := eng.BulkCreateSeats(context.Background(), room.ID, 1, 3, "vip")
	require.NoError(t, err)
	for _, s := range seats {
		assert.Equal(t, "vip", s.SeatType)
	}
}

func TestBulkCreateSeatsBeyondZ(t *testing.T) {
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	eng := booking.NewEngine(store)

	seats, err := eng.BulkCreateSeats(context.Background(), room.ID, 28, 1, "")
	require.NoError(t, err)
	require.Len(t, seats, 28)
	assert.Equal(t, "Z", seats[25].RowLabel)
	assert.Equal(t, "AA", seats[26].RowLabel)
	assert.Equal(t, "AB", seats[27].RowLabel)
}

func TestBulkCreateSeatsValidation(t *testing.T) {
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	eng := booking.NewEngine(store)
	ctx := context.Background()

	_, err := eng.BulkCreateSeats(ctx, room.ID, 0, 5, "")
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindInvalidArgument))

	_, err = eng.BulkCreateSeats(ctx, room.ID, 5, -1, "")
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindInvalidArgument))

	_, err = eng.BulkCreateSeats(ctx, 999, 2, 2, "")
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindNotFound))
}

func TestBulkCreateSeatsRejectsOversizedGrid(t *testing.T) {
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	eng := booking.NewEngine(store)
	ctx := context.Background()

	// One over the cap fails, the cap itself is fine.
	_, err := eng.BulkCreateSeats(ctx, room.ID, booking.MaxSeatsPerRoom+1, 1, "")
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindInvalidArgument))

	// Absurd factors must not sneak past via integer overflow.
	_, err = eng.BulkCreateSeats(ctx, room.ID, 1<<31, 1<<31, "")
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindInvalidArgument))

	seats, err := eng.BulkCreateSeats(ctx, room.ID, 40, 50, "")
	require.NoError(t, err)
	assert.Len(t, seats, booking.MaxSeatsPerRoom)
}

func TestBulkCreateSeatsRejectsPopulatedRoom(t *testing.T) {
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	eng := booking.NewEngine(store)
	ctx := context.Background()

	_, err := eng.BulkCreateSeats(ctx, room.ID, 2, 2, "")
	require.NoError(t, err)

	_, err = eng.BulkCreateSeats(ctx, room.ID, 2, 2, "")
	require.Error(t, err)
	assert.True(t, booking.IsKind(err, booking.KindConflict))
}
