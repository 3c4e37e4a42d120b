package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
)

// StatsHandler serves the admin dashboard aggregates.
type StatsHandler struct {
	Stats *repository.StatsRepo
}

func NewStatsHandler(s *repository.StatsRepo) *StatsHandler { return &StatsHandler{Stats: s} }

// Get handles GET /v1/admin/stats.
func (h *StatsHandler) Get(c echo.Context) error {
	stats, err := h.Stats.Load(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
