package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
)

// MovieHandler serves public movie browsing and the admin CRUD.
type MovieHandler struct {
	Movies     *repository.MovieRepo
	Screenings *repository.ScreeningRepo
	Searches   *repository.SearchHistoryRepo
}

func NewMovieHandler(m *repository.MovieRepo, sc *repository.ScreeningRepo, s *repository.SearchHistoryRepo) *MovieHandler {
	return &MovieHandler{Movies: m, Screenings: sc, Searches: s}
}

type movieReq struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	DurationMinutes *uint32  `json:"duration_minutes"`
	Genres          []string `json:"genres"`
	Rating          *string  `json:"rating"`
	Director        *string  `json:"director"`
	ReleaseDate     *string  `json:"release_date"` // YYYY-MM-DD
	Language        *string  `json:"language"`
	ImageURL        *string  `json:"image_url"`
	TrailerURL      *string  `json:"trailer_url"`
}

// List handles GET /v1/movies with limit/offset pagination.
func (h *MovieHandler) List(c echo.Context) error {
	limit, offset := parsePage(c, 50, 200)
	movies, err := h.Movies.List(c.Request().Context(), limit, offset)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies, "limit": limit, "offset": offset})
}

// Search handles GET /v1/movies/search?q=. Authenticated searches
// are recorded in the caller's search history.
func (h *MovieHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q parameter required"})
	}
	ctx := c.Request().Context()
	movies, err := h.Movies.Search(ctx, q)
	if err != nil {
		return repoError(c, err)
	}
	recordSearch(ctx, c, h.Searches, q, "movie")
	return c.JSON(http.StatusOK, echo.Map{"query": q, "movies": movies})
}

// Get handles GET /v1/movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	movie, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, movie)
}

// Showtimes handles GET /v1/movies/:id/showtimes: the movie's
// upcoming screenings with room and cinema attached. Optional
// ?cinema_id= and ?date=YYYY-MM-DD filters.
func (h *MovieHandler) Showtimes(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, id); err != nil {
		return repoError(c, err)
	}
	filter := repository.ScreeningFilter{MovieID: id}
	if v := strings.TrimSpace(c.QueryParam("cinema_id")); v != "" {
		cid, ok := parseQueryID(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema_id"})
		}
		filter.CinemaID = cid
	}
	if v := strings.TrimSpace(c.QueryParam("date")); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		filter.Day = day
	}
	showtimes, err := h.Screenings.List(ctx, filter)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movie_id": id, "showtimes": showtimes})
}

// Create handles POST /v1/movies (admin).
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	if req.DurationMinutes == nil || *req.DurationMinutes == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration_minutes must be positive"})
	}
	movie := &model.Movie{
		Title:           strings.TrimSpace(*req.Title),
		Description:     req.Description,
		DurationMinutes: *req.DurationMinutes,
		Genres:          req.Genres,
		Rating:          req.Rating,
		Director:        req.Director,
		Language:        req.Language,
		ImageURL:        req.ImageURL,
		TrailerURL:      req.TrailerURL,
	}
	if req.ReleaseDate != nil && *req.ReleaseDate != "" {
		rd, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "release_date must be YYYY-MM-DD"})
		}
		movie.ReleaseDate = &rd
	}
	if err := h.Movies.Create(c.Request().Context(), movie); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, movie)
}

// Update handles PATCH /v1/movies/:id (admin). Absent fields keep
// their current values.
func (h *MovieHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title must not be empty"})
		}
		movie.Title = title
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration_minutes must be positive"})
		}
		movie.DurationMinutes = *req.DurationMinutes
	}
	if req.Genres != nil {
		movie.Genres = req.Genres
	}
	if req.Rating != nil {
		movie.Rating = req.Rating
	}
	if req.Director != nil {
		movie.Director = req.Director
	}
	if req.ReleaseDate != nil {
		if *req.ReleaseDate == "" {
			movie.ReleaseDate = nil
		} else {
			rd, err := time.Parse("2006-01-02", *req.ReleaseDate)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "release_date must be YYYY-MM-DD"})
			}
			movie.ReleaseDate = &rd
		}
	}
	if req.Language != nil {
		movie.Language = req.Language
	}
	if req.ImageURL != nil {
		movie.ImageURL = req.ImageURL
	}
	if req.TrailerURL != nil {
		movie.TrailerURL = req.TrailerURL
	}
	if err := h.Movies.Update(ctx, movie); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, movie)
}

// Delete handles DELETE /v1/movies/:id (admin). Refused while
// tickets reference the movie's screenings.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
