package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
)

// RoomHandler serves room lookup and the admin room CRUD.
type RoomHandler struct {
	Rooms   *repository.RoomRepo
	Cinemas *repository.CinemaRepo
}

func NewRoomHandler(r *repository.RoomRepo, c *repository.CinemaRepo) *RoomHandler {
	return &RoomHandler{Rooms: r, Cinemas: c}
}

type roomReq struct {
	CinemaID uint64 `json:"cinema_id"`
	Name     string `json:"name"`
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Create handles POST /v1/rooms (admin). The owning cinema is fixed
// here and cannot be changed later.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.CinemaID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cinema_id and name required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Cinemas.GetByID(ctx, req.CinemaID); err != nil {
		return repoError(c, err)
	}
	room := &model.Room{CinemaID: req.CinemaID, Name: req.Name}
	if err := h.Rooms.Create(ctx, room); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// Update handles PATCH /v1/rooms/:id (admin). Only the name is
// mutable.
func (h *RoomHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if err := h.Rooms.UpdateName(c.Request().Context(), id, req.Name); err != nil {
		return repoError(c, err)
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /v1/rooms/:id (admin). Refused while tickets
// reference the room's screenings.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
