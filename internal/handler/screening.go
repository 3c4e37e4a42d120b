package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/booking"
	"github.com/iliyamo/cinema-ticket-selling/internal/model"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
)

// ScreeningHandler serves public screening browsing, seat
// availability and the admin screening CRUD.
type ScreeningHandler struct {
	Engine     *booking.Engine
	Screenings *repository.ScreeningRepo
	Movies     *repository.MovieRepo
	Rooms      *repository.RoomRepo
}

func NewScreeningHandler(e *booking.Engine, sc *repository.ScreeningRepo, m *repository.MovieRepo, r *repository.RoomRepo) *ScreeningHandler {
	return &ScreeningHandler{Engine: e, Screenings: sc, Movies: m, Rooms: r}
}

type screeningReq struct {
	MovieID       uint64  `json:"movie_id"`
	RoomID        uint64  `json:"room_id"`
	ScreeningTime string  `json:"screening_time"` // RFC 3339
	PriceCents    *uint32 `json:"price_cents"`
}

// List handles GET /v1/screenings with optional ?movie_id=,
// ?cinema_id= and ?date= filters. Only upcoming screenings are
// returned.
func (h *ScreeningHandler) List(c echo.Context) error {
	var filter repository.ScreeningFilter
	if v := strings.TrimSpace(c.QueryParam("movie_id")); v != "" {
		id, ok := parseQueryID(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie_id"})
		}
		filter.MovieID = id
	}
	if v := strings.TrimSpace(c.QueryParam("cinema_id")); v != "" {
		id, ok := parseQueryID(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema_id"})
		}
		filter.CinemaID = id
	}
	if v := strings.TrimSpace(c.QueryParam("date")); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		filter.Day = day
	}
	showtimes, err := h.Screenings.List(c.Request().Context(), filter)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"screenings": showtimes})
}

// Get handles GET /v1/screenings/:id.
func (h *ScreeningHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	screening, err := h.Screenings.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, screening)
}

// AvailableSeats handles GET /v1/screenings/:id/available-seats: the
// seats of the screening's room not currently held by a booked or
// confirmed ticket.
func (h *ScreeningHandler) AvailableSeats(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	seats, err := h.Engine.AvailableSeats(c.Request().Context(), id)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"screening_id": id, "available_seats": seats, "count": len(seats)})
}

// Create handles POST /v1/screenings (admin).
func (h *ScreeningHandler) Create(c echo.Context) error {
	var req screeningReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	screening, err := h.screeningFromReq(c, &req, nil)
	if err != nil {
		return err // response already written
	}
	if screening == nil {
		return nil
	}
	if err := h.Screenings.Create(c.Request().Context(), screening); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, screening)
}

// Update handles PATCH /v1/screenings/:id (admin).
func (h *ScreeningHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	var req screeningReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	existing, err := h.Screenings.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	screening, herr := h.screeningFromReq(c, &req, existing)
	if herr != nil {
		return herr
	}
	if screening == nil {
		return nil
	}
	if err := h.Screenings.Update(c.Request().Context(), screening); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, screening)
}

// Delete handles DELETE /v1/screenings/:id (admin). Refused while
// tickets reference the screening.
func (h *ScreeningHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	if err := h.Screenings.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// screeningFromReq validates the request against an optional existing
// record (nil means create). On validation failure the response is
// written and (nil, err) is returned; the caller passes err through.
func (h *ScreeningHandler) screeningFromReq(c echo.Context, req *screeningReq, existing *model.Screening) (*model.Screening, error) {
	screening := &model.Screening{}
	if existing != nil {
		*screening = *existing
	}
	if req.MovieID != 0 {
		screening.MovieID = req.MovieID
	}
	if req.RoomID != 0 {
		screening.RoomID = req.RoomID
	}
	if req.PriceCents != nil {
		screening.Price = *req.PriceCents
	}
	if req.ScreeningTime != "" {
		at, err := time.Parse(time.RFC3339, req.ScreeningTime)
		if err != nil {
			return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "screening_time must be RFC 3339"})
		}
		screening.ScreeningTime = at.UTC()
	}
	if screening.MovieID == 0 || screening.RoomID == 0 || screening.ScreeningTime.IsZero() {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id, room_id and screening_time required"})
	}
	if screening.Price == 0 {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be positive"})
	}

	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, screening.MovieID); err != nil {
		return nil, repoError(c, err)
	}
	if _, err := h.Rooms.GetByID(ctx, screening.RoomID); err != nil {
		return nil, repoError(c, err)
	}
	return screening, nil
}
