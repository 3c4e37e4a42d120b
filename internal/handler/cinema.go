package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
)

// CinemaHandler serves public cinema browsing and the admin CRUD.
type CinemaHandler struct {
	Cinemas  *repository.CinemaRepo
	Rooms    *repository.RoomRepo
	Movies   *repository.MovieRepo
	Searches *repository.SearchHistoryRepo
}

func NewCinemaHandler(c *repository.CinemaRepo, r *repository.RoomRepo, m *repository.MovieRepo, s *repository.SearchHistoryRepo) *CinemaHandler {
	return &CinemaHandler{Cinemas: c, Rooms: r, Movies: m, Searches: s}
}

type cinemaReq struct {
	Name         *string  `json:"name"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	Longitude    *float64 `json:"longitude"`
	Latitude     *float64 `json:"latitude"`
	ImageURL     *string  `json:"image_url"`
	Phone        *string  `json:"phone"`
	HasParking   *bool    `json:"has_parking"`
	IsAccessible *bool    `json:"is_accessible"`
	Amenities    []string `json:"amenities"`
}

// List handles GET /v1/cinemas with an optional ?city= filter.
func (h *CinemaHandler) List(c echo.Context) error {
	cinemas, err := h.Cinemas.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("city")))
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cinemas": cinemas})
}

// Search handles GET /v1/cinemas/search?q=. Authenticated searches
// are recorded in the caller's search history.
func (h *CinemaHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q parameter required"})
	}
	ctx := c.Request().Context()
	cinemas, err := h.Cinemas.Search(ctx, q)
	if err != nil {
		return repoError(c, err)
	}
	recordSearch(ctx, c, h.Searches, q, "cinema")
	return c.JSON(http.StatusOK, echo.Map{"query": q, "cinemas": cinemas})
}

// Get handles GET /v1/cinemas/:id.
func (h *CinemaHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	cinema, err := h.Cinemas.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, cinema)
}

// GetRooms handles GET /v1/cinemas/:id/rooms.
func (h *CinemaHandler) GetRooms(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Cinemas.GetByID(ctx, id); err != nil {
		return repoError(c, err)
	}
	rooms, err := h.Rooms.ListByCinema(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cinema_id": id, "rooms": rooms})
}

// GetMovies handles GET /v1/cinemas/:id/movies: the movies with an
// upcoming screening at this cinema.
func (h *CinemaHandler) GetMovies(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Cinemas.GetByID(ctx, id); err != nil {
		return repoError(c, err)
	}
	movies, err := h.Movies.ListByCinema(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cinema_id": id, "movies": movies})
}

// Create handles POST /v1/cinemas (admin).
func (h *CinemaHandler) Create(c echo.Context) error {
	var req cinemaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" ||
		req.Address == nil || strings.TrimSpace(*req.Address) == "" ||
		req.City == nil || strings.TrimSpace(*req.City) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, address and city required"})
	}
	cinema := &model.Cinema{
		Name:      strings.TrimSpace(*req.Name),
		Address:   strings.TrimSpace(*req.Address),
		City:      strings.TrimSpace(*req.City),
		Longitude: req.Longitude,
		Latitude:  req.Latitude,
		ImageURL:  req.ImageURL,
		Phone:     req.Phone,
		Amenities: req.Amenities,
	}
	if req.HasParking != nil {
		cinema.HasParking = *req.HasParking
	}
	if req.IsAccessible != nil {
		cinema.IsAccessible = *req.IsAccessible
	}
	if err := h.Cinemas.Create(c.Request().Context(), cinema); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, cinema)
}

// Update handles PATCH /v1/cinemas/:id (admin). Absent fields keep
// their current values.
func (h *CinemaHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	var req cinemaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	cinema, err := h.Cinemas.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	if req.Name != nil {
		cinema.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		cinema.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		cinema.City = strings.TrimSpace(*req.City)
	}
	if req.Longitude != nil {
		cinema.Longitude = req.Longitude
	}
	if req.Latitude != nil {
		cinema.Latitude = req.Latitude
	}
	if req.ImageURL != nil {
		cinema.ImageURL = req.ImageURL
	}
	if req.Phone != nil {
		cinema.Phone = req.Phone
	}
	if req.HasParking != nil {
		cinema.HasParking = *req.HasParking
	}
	if req.IsAccessible != nil {
		cinema.IsAccessible = *req.IsAccessible
	}
	if req.Amenities != nil {
		cinema.Amenities = req.Amenities
	}
	if cinema.Name == "" || cinema.Address == "" || cinema.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, address and city must not be empty"})
	}
	if err := h.Cinemas.Update(ctx, cinema); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, cinema)
}

// Delete handles DELETE /v1/cinemas/:id (admin). Refused while
// tickets reference the cinema's screenings.
func (h *CinemaHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	if err := h.Cinemas.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
