package handler_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-selling/internal/booking"
	"github.com/iliyamo/cinema-ticket-selling/internal/booking/bookingtest"
	"github.com/iliyamo/cinema-ticket-selling/internal/handler"
	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

func TestBulkCreateSeatsProvisionsGrid(t *testing.T) {
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	h := handler.NewSeatHandler(booking.NewEngine(store), nil, nil)

	c, rec := request(http.MethodPost, "/v1/rooms/1/seats/bulk", `{"rows": 3, "seats_per_row": 4, "seat_type": "vip"}`, 9)
	c.Set("is_admin", true)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(room.ID, 10))
	require.NoError(t, h.BulkCreate(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody(t, rec)
	assert.Equal(t, float64(12), resp["count"])
	seats, ok := resp["seats"].([]interface{})
	require.True(t, ok)
	require.Len(t, seats, 12)
	first, ok := seats[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "A", first["row_label"])
	assert.Equal(t, "vip", first["seat_type"])
}

func TestBulkCreateSeatsRefusesPopulatedRoom(t *testing.T) {
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	store.AddSeat(model.Seat{RoomID: room.ID, RowLabel: "A", SeatNumber: 1, SeatType: booking.DefaultSeatType})
	h := handler.NewSeatHandler(booking.NewEngine(store), nil, nil)

	c, rec := request(http.MethodPost, "/v1/rooms/1/seats/bulk", `{"rows": 2, "seats_per_row": 2}`, 9)
	c.Set("is_admin", true)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(room.ID, 10))
	require.NoError(t, h.BulkCreate(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBulkCreateSeatsUnknownRoom(t *testing.T) {
	store := bookingtest.New()
	h := handler.NewSeatHandler(booking.NewEngine(store), nil, nil)

	c, rec := request(http.MethodPost, "/v1/rooms/99/seats/bulk", `{"rows": 2, "seats_per_row": 2}`, 9)
	c.Set("is_admin", true)
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.BulkCreate(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkCreateSeatsRejectsBadDimensions(t *testing.T) {
	store := bookingtest.New()
	room := store.AddRoom(model.Room{CinemaID: 1, Name: "Room 1"})
	h := handler.NewSeatHandler(booking.NewEngine(store), nil, nil)

	c, rec := request(http.MethodPost, "/v1/rooms/1/seats/bulk", `{"rows": 0, "seats_per_row": 5}`, 9)
	c.Set("is_admin", true)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(room.ID, 10))
	require.NoError(t, h.BulkCreate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailableSeatsShrinksAfterBooking(t *testing.T) {
	_, eng, screening, seats := fixture(t)
	sh := handler.NewScreeningHandler(eng, nil, nil, nil)
	th := newTicketHandler(eng)

	c, rec := request(http.MethodGet, "/v1/screenings/1/available-seats", "", 0)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(screening.ID, 10))
	require.NoError(t, sh.AvailableSeats(c))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, float64(10), resp["count"])

	body := `{"screening_id": ` + strconv.FormatUint(screening.ID, 10) +
		`, "seat_ids": [` + strconv.FormatUint(seats[0].ID, 10) + `]}`
	c, rec = request(http.MethodPost, "/v1/tickets/book", body, 7)
	require.NoError(t, th.Book(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = request(http.MethodGet, "/v1/screenings/1/available-seats", "", 0)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(screening.ID, 10))
	require.NoError(t, sh.AvailableSeats(c))
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody(t, rec)
	assert.Equal(t, float64(9), resp["count"])
}

func TestAvailableSeatsUnknownScreening(t *testing.T) {
	store := bookingtest.New()
	h := handler.NewScreeningHandler(booking.NewEngine(store), nil, nil, nil)

	c, rec := request(http.MethodGet, "/v1/screenings/42/available-seats", "", 0)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.AvailableSeats(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
