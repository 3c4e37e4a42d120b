package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
)

// ReviewHandler serves movie review listings and the review CRUD.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
	Movies  *repository.MovieRepo
}

func NewReviewHandler(r *repository.ReviewRepo, m *repository.MovieRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: r, Movies: m}
}

type reviewReq struct {
	Rating  *uint8  `json:"rating"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}
type reactReq struct {
	ReactionType string `json:"reaction_type"` // "like" or "dislike"
}

// ListByMovie handles GET /v1/movies/:id/reviews.
func (h *ReviewHandler) ListByMovie(c echo.Context) error {
	movieID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		return repoError(c, err)
	}
	limit, offset := parsePage(c, 20, 100)
	reviews, err := h.Reviews.ListByMovie(ctx, movieID, limit, offset)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"movie_id": movieID, "reviews": reviews})
}

// Summary handles GET /v1/movies/:id/reviews/summary.
func (h *ReviewHandler) Summary(c echo.Context) error {
	movieID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		return repoError(c, err)
	}
	summary, err := h.Reviews.Summary(ctx, movieID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Create handles POST /v1/movies/:id/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating == nil || *req.Rating < 1 || *req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		return repoError(c, err)
	}
	review := &model.Review{
		UserID:  uid,
		MovieID: movieID,
		Rating:  *req.Rating,
		Title:   trimmedOrNil(req.Title),
		Comment: trimmedOrNil(req.Comment),
	}
	if err := h.Reviews.Create(ctx, review); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

// Update handles PUT /v1/reviews/:id. Owner only.
func (h *ReviewHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	review, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	if review.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
		}
		review.Rating = *req.Rating
	}
	if req.Title != nil {
		review.Title = trimmedOrNil(req.Title)
	}
	if req.Comment != nil {
		review.Comment = trimmedOrNil(req.Comment)
	}
	if err := h.Reviews.Update(ctx, review); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

// React handles POST /v1/reviews/:id/react: records a like or
// dislike on a review. Reactions are anonymous counters; reacting to
// your own review is allowed, repeated reactions all count.
func (h *ReviewHandler) React(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	var req reactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	reaction := strings.ToLower(strings.TrimSpace(req.ReactionType))
	if reaction != "like" && reaction != "dislike" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reaction_type must be 'like' or 'dislike'"})
	}
	review, err := h.Reviews.React(c.Request().Context(), id, reaction == "like")
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

// Delete handles DELETE /v1/reviews/:id. Owner or admin; the row is
// soft deleted and disappears from listings and summaries.
func (h *ReviewHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	if err := h.Reviews.SoftDelete(c.Request().Context(), id, uid, isAdmin(c)); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// trimmedOrNil maps empty or whitespace strings to nil.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
