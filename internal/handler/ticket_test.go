package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-selling/internal/booking"
	"github.com/iliyamo/cinema-ticket-selling/internal/booking/bookingtest"
	"github.com/iliyamo/cinema-ticket-selling/internal/handler"
	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// fixture builds an engine over the in-memory store with one room,
// ten seats and a future screening at 1500 cents.
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

// newTicketHandler wires a handler with the broker disabled so Book
// never spawns a publishing goroutine.
func newTicketHandler(eng *booking.Engine) *handler.TicketHandler {
	return handler.NewTicketHandler(eng, nil, "")
}

// request builds an echo context for a JSON request authenticated as
// userID. A zero userID leaves the context anonymous.
func request(method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", userID)
		c.Set("is_admin", false)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestBookReturnsCreatedBooking(t *testing.T) {
	_, eng, screening, seats := fixture(t)
	h := newTicketHandler(eng)

	body := `{"screening_id": ` + strconv.FormatUint(screening.ID, 10) +
		`, "seat_ids": [` + strconv.FormatUint(seats[0].ID, 10) + `, ` + strconv.FormatUint(seats[1].ID, 10) + `]}`
	c, rec := request(http.MethodPost, "/v1/tickets/book", body, 7)
	require.NoError(t, h.Book(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody(t, rec)
	assert.NotEmpty(t, resp["booking_ref"])
	assert.Equal(t, float64(3000), resp["total_cents"])
	tickets, ok := resp["tickets"].([]interface{})
	require.True(t, ok)
	assert.Len(t, tickets, 2)
}

func TestBookSeatConflictReportsSeatIDs(t *testing.T) {
	_, eng, screening, seats := fixture(t)
	h := newTicketHandler(eng)

	body := `{"screening_id": ` + strconv.FormatUint(screening.ID, 10) +
		`, "seat_ids": [` + strconv.FormatUint(seats[0].ID, 10) + `]}`
	c, rec := request(http.MethodPost, "/v1/tickets/book", body, 7)
	require.NoError(t, h.Book(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = request(http.MethodPost, "/v1/tickets/book", body, 8)
	require.NoError(t, h.Book(c))
	require.Equal(t, http.StatusConflict, rec.Code)

	resp := decodeBody(t, rec)
	ids, ok := resp["seat_ids"].([]interface{})
	require.True(t, ok)
	require.Len(t, ids, 1)
	assert.Equal(t, float64(seats[0].ID), ids[0])
}

func TestBookUnknownScreening(t *testing.T) {
	_, eng, _, seats := fixture(t)
	h := newTicketHandler(eng)

	body := `{"screening_id": 999, "seat_ids": [` + strconv.FormatUint(seats[0].ID, 10) + `]}`
	c, rec := request(http.MethodPost, "/v1/tickets/book", body, 7)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookRejectsInvalidBody(t *testing.T) {
	_, eng, _, _ := fixture(t)
	h := newTicketHandler(eng)

	c, rec := request(http.MethodPost, "/v1/tickets/book", `{"screening_id": "nope"}`, 7)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = request(http.MethodPost, "/v1/tickets/book", `{"seat_ids": [1]}`, 7)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookRequiresAuthenticatedUser(t *testing.T) {
	_, eng, screening, seats := fixture(t)
	h := newTicketHandler(eng)

	body := `{"screening_id": ` + strconv.FormatUint(screening.ID, 10) +
		`, "seat_ids": [` + strconv.FormatUint(seats[0].ID, 10) + `]}`
	c, rec := request(http.MethodPost, "/v1/tickets/book", body, 0)
	require.NoError(t, h.Book(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelOwnTicket(t *testing.T) {
	store, eng, screening, seats := fixture(t)
	h := newTicketHandler(eng)
	ticket := store.AddTicket(model.Ticket{
		UserID:      7,
		ScreeningID: screening.ID,
		SeatID:      seats[0].ID,
		Price:       1500,
		Status:      model.TicketBooked,
		BookingRef:  "ref-1",
		BookedAt:    time.Now().UTC(),
	})

	c, rec := request(http.MethodDelete, "/v1/tickets/1", "", 7)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(ticket.ID, 10))
	require.NoError(t, h.Cancel(c))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, ok := store.Ticket(ticket.ID)
	require.True(t, ok)
	assert.Equal(t, model.TicketCancelled, stored.Status)
}

func TestCancelSomeoneElsesTicketIsForbidden(t *testing.T) {
	store, eng, screening, seats := fixture(t)
	h := newTicketHandler(eng)
	ticket := store.AddTicket(model.Ticket{
		UserID:      7,
		ScreeningID: screening.ID,
		SeatID:      seats[0].ID,
		Price:       1500,
		Status:      model.TicketBooked,
		BookingRef:  "ref-1",
		BookedAt:    time.Now().UTC(),
	})

	c, rec := request(http.MethodDelete, "/v1/tickets/1", "", 8)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(ticket.ID, 10))
	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	stored, ok := store.Ticket(ticket.ID)
	require.True(t, ok)
	assert.Equal(t, model.TicketBooked, stored.Status)
}

func TestConfirmPaymentStoresReference(t *testing.T) {
	store, eng, screening, seats := fixture(t)
	h := newTicketHandler(eng)
	ticket := store.AddTicket(model.Ticket{
		UserID:      7,
		ScreeningID: screening.ID,
		SeatID:      seats[0].ID,
		Price:       1500,
		Status:      model.TicketBooked,
		BookingRef:  "ref-1",
		BookedAt:    time.Now().UTC(),
	})

	c, rec := request(http.MethodPost, "/v1/tickets/1/confirm-payment", `{"payment_ref": "pay_123"}`, 7)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(ticket.ID, 10))
	require.NoError(t, h.ConfirmPayment(c))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, ok := store.Ticket(ticket.ID)
	require.True(t, ok)
	assert.Equal(t, model.TicketConfirmed, stored.Status)
	require.NotNil(t, stored.PaymentRef)
	assert.Equal(t, "pay_123", *stored.PaymentRef)
}

func TestAdminSetStatusRejectsBooked(t *testing.T) {
	store, eng, screening, seats := fixture(t)
	h := newTicketHandler(eng)
	ticket := store.AddTicket(model.Ticket{
		UserID:      7,
		ScreeningID: screening.ID,
		SeatID:      seats[0].ID,
		Price:       1500,
		Status:      model.TicketPending,
		BookingRef:  "ref-1",
		BookedAt:    time.Now().UTC(),
	})

	c, rec := request(http.MethodPut, "/v1/tickets/1/status", `{"status": "booked"}`, 9)
	c.Set("is_admin", true)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(ticket.ID, 10))
	require.NoError(t, h.AdminSetStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminSetStatusCancelled(t *testing.T) {
	store, eng, screening, seats := fixture(t)
	h := newTicketHandler(eng)
	ticket := store.AddTicket(model.Ticket{
		UserID:      7,
		ScreeningID: screening.ID,
		SeatID:      seats[0].ID,
		Price:       1500,
		Status:      model.TicketBooked,
		BookingRef:  "ref-1",
		BookedAt:    time.Now().UTC(),
	})

	c, rec := request(http.MethodPut, "/v1/tickets/1/status", `{"status": "cancelled"}`, 9)
	c.Set("is_admin", true)
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(ticket.ID, 10))
	require.NoError(t, h.AdminSetStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, ok := store.Ticket(ticket.ID)
	require.True(t, ok)
	assert.Equal(t, model.TicketCancelled, stored.Status)
}
