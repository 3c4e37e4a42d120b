package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
)

// SearchHandler serves the caller's search history. Entries are
// written by the public search endpoints via recordSearch.
type SearchHandler struct {
	Searches *repository.SearchHistoryRepo
}

func NewSearchHandler(s *repository.SearchHistoryRepo) *SearchHandler {
	return &SearchHandler{Searches: s}
}

// ListMine handles GET /v1/users/me/searches.
func (h *SearchHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	limit, _ := parsePage(c, 20, 100)
	searches, err := h.Searches.ListByUser(c.Request().Context(), uid, limit)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"searches": searches})
}

// Clear handles DELETE /v1/users/me/searches.
func (h *SearchHandler) Clear(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Searches.Clear(c.Request().Context(), uid); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
