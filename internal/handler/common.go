// Package handler contains the HTTP handlers of the API. Handlers
// bind and validate requests, call into repositories or the booking
// engine, and translate errors into status codes.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/booking"
	"github.com/iliyamo/cinema-ticket-selling/internal/model"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
)

// getUserID extracts the authenticated user id stored by the JWT
// middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get("user_id").(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errors.New("missing user_id in context")
}

// isAdmin reports whether the JWT middleware flagged the caller as
// admin.
func isAdmin(c echo.Context) bool {
	admin, _ := c.Get("is_admin").(bool)
	return admin
}

// parseID parses a numeric, non-zero path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

// parseQueryID parses a numeric, non-zero query parameter value.
func parseQueryID(v string) (uint64, bool) {
	id, err := strconv.ParseUint(v, 10, 64)
	return id, err == nil && id != 0
}

// parsePage reads limit/offset query params with bounds applied.
func parsePage(c echo.Context, defLimit, maxLimit int) (limit, offset int) {
	limit = defLimit
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 {
		limit = n
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if n, err := strconv.Atoi(c.QueryParam("offset")); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}

// bookingError maps a booking engine error onto an HTTP response.
// Conflicts additionally report the offending seat ids.
func bookingError(c echo.Context, err error) error {
	var be *booking.Error
	if !errors.As(err, &be) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	switch be.Kind {
	case booking.KindNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": be.Message})
	case booking.KindForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": be.Message})
	case booking.KindConflict:
		body := echo.Map{"error": be.Message}
		if len(be.SeatIDs) > 0 {
			body["seat_ids"] = be.SeatIDs
		}
		return c.JSON(http.StatusConflict, body)
	case booking.KindInvalidState, booking.KindInvalidArgument:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": be.Message})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// repoError maps the repository sentinels onto an HTTP response.
func repoError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrCinemaNotFound),
		errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrSeatNotFound),
		errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrScreeningNotFound),
		errors.Is(err, repository.ErrTicketNotFound),
		errors.Is(err, repository.ErrReviewNotFound),
		errors.Is(err, repository.ErrCastNotFound),
		errors.Is(err, repository.ErrFavoriteNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict with existing records"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
}

// recordSearch appends a search history entry when the caller is
// authenticated. Failures are logged, never surfaced: history must
// not break the search itself.
func recordSearch(ctx context.Context, c echo.Context, repo *repository.SearchHistoryRepo, query, searchType string) {
	if repo == nil {
		return
	}
	uid, err := getUserID(c)
	if err != nil {
		return // anonymous search
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	h := &model.SearchHistory{UserID: uid, Query: query, SearchType: searchType}
	if err := repo.Add(ctx, h); err != nil {
		log.Printf("search-history: record failed: %v", err)
	}
}
