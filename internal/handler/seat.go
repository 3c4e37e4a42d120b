package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/booking"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
)

// SeatHandler serves seat listings and the bulk provisioner.
type SeatHandler struct {
	Engine *booking.Engine
	Seats  *repository.SeatRepo
	Rooms  *repository.RoomRepo
}

func NewSeatHandler(e *booking.Engine, s *repository.SeatRepo, r *repository.RoomRepo) *SeatHandler {
	return &SeatHandler{Engine: e, Seats: s, Rooms: r}
}

type bulkSeatsReq struct {
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seats_per_row"`
	SeatType    string `json:"seat_type"`
}

// List handles GET /v1/rooms/:id/seats: the seats of a room in
// row-major order.
func (h *SeatHandler) List(c echo.Context) error {
	roomID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		return repoError(c, err)
	}
	seats, err := h.Seats.ListByRoom(ctx, roomID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"room_id": roomID, "seats": seats, "count": len(seats)})
}

// BulkCreate handles POST /v1/rooms/:id/seats/bulk (admin): creates a
// rectangular grid of rows x seats_per_row seats in one transaction.
func (h *SeatHandler) BulkCreate(c echo.Context) error {
	roomID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req bulkSeatsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	seats, err := h.Engine.BulkCreateSeats(c.Request().Context(), roomID, req.Rows, req.SeatsPerRow, strings.TrimSpace(req.SeatType))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"room_id": roomID, "seats": seats, "count": len(seats)})
}

// DeleteAll handles DELETE /v1/rooms/:id/seats (admin): clears a
// room's seats so it can be provisioned again. Refused while tickets
// reference any of them.
func (h *SeatHandler) DeleteAll(c echo.Context) error {
	roomID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		return repoError(c, err)
	}
	if err := h.Seats.DeleteByRoom(ctx, roomID); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
