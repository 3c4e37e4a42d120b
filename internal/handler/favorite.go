package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
)

// FavoriteHandler serves the user/cinema favorite endpoints.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
	Cinemas   *repository.CinemaRepo
}

func NewFavoriteHandler(f *repository.FavoriteRepo, c *repository.CinemaRepo) *FavoriteHandler {
	return &FavoriteHandler{Favorites: f, Cinemas: c}
}

// Add handles POST /v1/cinemas/:id/favorite.
func (h *FavoriteHandler) Add(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	cinemaID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}

	ctx := c.Request().Context()
	if _, err := h.Cinemas.GetByID(ctx, cinemaID); err != nil {
		return repoError(c, err)
	}
	fav := &model.Favorite{UserID: uid, CinemaID: cinemaID}
	if err := h.Favorites.Add(ctx, fav); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, fav)
}

// Remove handles DELETE /v1/cinemas/:id/favorite.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	cinemaID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	if err := h.Favorites.Remove(c.Request().Context(), uid, cinemaID); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Check handles GET /v1/cinemas/:id/favorite.
func (h *FavoriteHandler) Check(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	cinemaID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cinema id"})
	}
	fav, err := h.Favorites.IsFavorite(c.Request().Context(), uid, cinemaID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cinema_id": cinemaID, "is_favorite": fav})
}

// ListMine handles GET /v1/users/me/favorites.
func (h *FavoriteHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	favorites, err := h.Favorites.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"favorites": favorites})
}
