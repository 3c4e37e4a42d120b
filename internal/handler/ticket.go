package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/booking"
	"github.com/iliyamo/cinema-ticket-selling/internal/model"
	"github.com/iliyamo/cinema-ticket-selling/internal/queue"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
	"github.com/iliyamo/cinema-ticket-selling/internal/service"
)

// TicketHandler serves ticket booking and lifecycle endpoints. All
// state changes go through the booking engine; this layer only binds
// requests, checks identity and publishes events.
type TicketHandler struct {
	Engine  *booking.Engine
	Tickets *repository.TicketRepo
	AMQPURL string
}

func NewTicketHandler(e *booking.Engine, t *repository.TicketRepo, amqpURL string) *TicketHandler {
	return &TicketHandler{Engine: e, Tickets: t, AMQPURL: amqpURL}
}

type bookReq struct {
	ScreeningID uint64   `json:"screening_id"`
	SeatIDs     []uint64 `json:"seat_ids"`
}
type confirmPaymentReq struct {
	PaymentRef string `json:"payment_ref"`
}
type setStatusReq struct {
	Status string `json:"status"`
}

// Book handles POST /v1/tickets/book: one ticket per requested seat,
// all or nothing. On success a ticket.booked event is published in
// the background.
func (h *TicketHandler) Book(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ScreeningID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "screening_id required"})
	}

	tickets, err := h.Engine.Book(c.Request().Context(), uid, req.ScreeningID, req.SeatIDs)
	if err != nil {
		return bookingError(c, err)
	}
	go h.publishBooked(tickets)

	var total uint64
	for _, t := range tickets {
		total += uint64(t.Price)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"booking_ref": tickets[0].BookingRef,
		"tickets":     tickets,
		"total_cents": total,
	})
}

// My handles GET /v1/tickets/my: the caller's tickets, newest first.
func (h *TicketHandler) My(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tickets, err := h.Tickets.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}

// Get handles GET /v1/tickets/:id. Owners and admins only.
func (h *TicketHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	ticket, err := h.Tickets.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	if ticket.UserID != uid && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, ticket)
}

// Cancel handles DELETE /v1/tickets/:id: moves an owned ticket to
// cancelled. The row stays; the seat becomes available again.
func (h *TicketHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	ticket, err := h.Engine.CancelTicket(c.Request().Context(), id, uid)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// ConfirmPayment handles POST /v1/tickets/:id/confirm-payment:
// records that an owned ticket was paid. No payment processing
// happens; the reference is stored verbatim.
func (h *TicketHandler) ConfirmPayment(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	var req confirmPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ticket, err := h.Engine.ConfirmPayment(c.Request().Context(), id, uid, strings.TrimSpace(req.PaymentRef))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// AdminList handles GET /v1/tickets (admin) with an optional
// ?status= filter and limit/offset pagination.
func (h *TicketHandler) AdminList(c echo.Context) error {
	var status model.TicketStatus
	if v := strings.TrimSpace(c.QueryParam("status")); v != "" {
		parsed, ok := model.ParseTicketStatus(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
		}
		status = parsed
	}
	limit, offset := parsePage(c, 50, 500)
	tickets, err := h.Tickets.ListAll(c.Request().Context(), status, limit, offset)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets, "limit": limit, "offset": offset})
}

// AdminSetStatus handles PUT /v1/tickets/:id/status (admin):
// force-sets a ticket's status to pending, confirmed or cancelled.
func (h *TicketHandler) AdminSetStatus(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	var req setStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ticket, err := h.Engine.AdminSetStatus(c.Request().Context(), id, strings.TrimSpace(req.Status))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// publishBooked enriches the fresh tickets with their joined views
// and publishes one ticket.booked event for the booking. Best
// effort; failures only log. Publishing is skipped entirely when no
// broker URL is configured.
func (h *TicketHandler) publishBooked(tickets []*model.Ticket) {
	if h.AMQPURL == "" || len(tickets) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.TicketBookedEvent{
		BookingRef:  tickets[0].BookingRef,
		UserID:      tickets[0].UserID,
		ScreeningID: tickets[0].ScreeningID,
		BookedAt:    tickets[0].BookedAt.UTC().Format(time.RFC3339),
	}
	for _, t := range tickets {
		ev.TotalCents += uint64(t.Price)
		view, err := h.Tickets.GetByID(ctx, t.ID)
		if err != nil {
			log.Printf("ticket-event: load ticket %d failed: %v", t.ID, err)
			continue
		}
		ev.MovieTitle = view.MovieTitle
		ev.CinemaName = view.CinemaName
		ev.RoomName = view.RoomName
		ev.ScreeningTime = view.ScreeningTime.UTC().Format(time.RFC3339)
		ev.SeatLabels = append(ev.SeatLabels, fmt.Sprintf("%s%d", view.RowLabel, view.SeatNumber))
	}
	if err := service.PublishTicketBooked(ctx, h.AMQPURL, ev); err != nil {
		log.Printf("ticket-event: publish failed: %v", err)
	}
}
