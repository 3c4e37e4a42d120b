package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
)

// CastHandler serves the public movie-cast listing and the admin cast
// credit CRUD.
type CastHandler struct {
	Casts  *repository.CastRepo
	Movies *repository.MovieRepo
}

func NewCastHandler(cr *repository.CastRepo, m *repository.MovieRepo) *CastHandler {
	return &CastHandler{Casts: cr, Movies: m}
}

type castReq struct {
	MovieID         uint64  `json:"movie_id"`
	ActorName       *string `json:"actor_name"`
	CharacterName   *string `json:"character_name"`
	Role            *string `json:"role"`
	ProfileImageURL *string `json:"profile_image_url"`
	IsLead          *bool   `json:"is_lead"`
	Position        *uint32 `json:"position"`
}

// ListByMovie handles GET /v1/movies/:id/cast: the movie's credits in
// billing order.
func (h *CastHandler) ListByMovie(c echo.Context) error {
	movieID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		return repoError(c, err)
	}
	cast, err := h.Casts.ListByMovie(ctx, movieID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movie_id": movieID, "cast": cast})
}

// Get handles GET /v1/casts/:id.
func (h *CastHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cast id"})
	}
	cm, err := h.Casts.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, cm)
}

// Create handles POST /v1/casts (admin).
func (h *CastHandler) Create(c echo.Context) error {
	var req castReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id required"})
	}
	actor := trimmedString(req.ActorName)
	character := trimmedString(req.CharacterName)
	if actor == "" || character == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "actor_name and character_name required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, req.MovieID); err != nil {
		return repoError(c, err)
	}
	cm := &model.CastMember{
		MovieID:         req.MovieID,
		ActorName:       actor,
		CharacterName:   character,
		Role:            trimmedString(req.Role),
		ProfileImageURL: trimmedOrNil(req.ProfileImageURL),
	}
	if req.IsLead != nil {
		cm.IsLead = *req.IsLead
	}
	if req.Position != nil {
		cm.Position = *req.Position
	}
	if err := h.Casts.Create(ctx, cm); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, cm)
}

// Update handles PATCH /v1/casts/:id (admin). Absent fields keep
// their current values.
func (h *CastHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cast id"})
	}
	var req castReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	cm, err := h.Casts.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	if req.ActorName != nil {
		if trimmedString(req.ActorName) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "actor_name must not be empty"})
		}
		cm.ActorName = trimmedString(req.ActorName)
	}
	if req.CharacterName != nil {
		if trimmedString(req.CharacterName) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "character_name must not be empty"})
		}
		cm.CharacterName = trimmedString(req.CharacterName)
	}
	if req.Role != nil {
		cm.Role = trimmedString(req.Role)
	}
	if req.ProfileImageURL != nil {
		cm.ProfileImageURL = trimmedOrNil(req.ProfileImageURL)
	}
	if req.IsLead != nil {
		cm.IsLead = *req.IsLead
	}
	if req.Position != nil {
		cm.Position = *req.Position
	}
	if err := h.Casts.Update(ctx, cm); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, cm)
}

// Delete handles DELETE /v1/casts/:id (admin).
func (h *CastHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cast id"})
	}
	if err := h.Casts.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// trimmedString dereferences and trims, mapping nil to "".
func trimmedString(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
