package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// ErrReviewNotFound is returned when a review cannot be found or is
// soft deleted.
var ErrReviewNotFound = errors.New("review not found")

// ReviewSummary aggregates the live reviews of a movie.
type ReviewSummary struct {
	MovieID       uint64  `json:"movie_id"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// ReviewRepo encapsulates all database queries related to reviews.
// Reviews are soft deleted; every read excludes deleted rows.
type ReviewRepo struct{ db *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewColumns = `id, user_id, movie_id, rating, title, comment,
					   likes, dislikes, is_deleted, created_at, updated_at`

// Create inserts a new review and populates ID and timestamps.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const q = `INSERT INTO reviews (user_id, movie_id, rating, title, comment)
			   VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rv.UserID, rv.MovieID, rv.Rating, rv.Title, rv.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at, updated_at FROM reviews WHERE id = ?`, rv.ID).
		Scan(&rv.CreatedAt, &rv.UpdatedAt)
}

// GetByID fetches a live review by id.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ? AND is_deleted = FALSE`
	var rv model.Review
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rv.ID, &rv.UserID, &rv.MovieID, &rv.Rating, &rv.Title, &rv.Comment,
		&rv.Likes, &rv.Dislikes, &rv.IsDeleted, &rv.CreatedAt, &rv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// ListByMovie returns the live reviews of a movie, newest first.
func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uint64, limit, offset int) ([]*model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews
			   WHERE movie_id = ? AND is_deleted = FALSE
			   ORDER BY created_at DESC, id DESC
			   LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, movieID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Review
	for rows.Next() {
		rv := new(model.Review)
		err := rows.Scan(&rv.ID, &rv.UserID, &rv.MovieID, &rv.Rating, &rv.Title, &rv.Comment,
			&rv.Likes, &rv.Dislikes, &rv.IsDeleted, &rv.CreatedAt, &rv.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Summary returns the review count and average rating of a movie.
// A movie without reviews yields a zero summary, not an error.
func (r *ReviewRepo) Summary(ctx context.Context, movieID uint64) (*ReviewSummary, error) {
	const q = `SELECT COUNT(*), COALESCE(AVG(rating), 0)
			   FROM reviews WHERE movie_id = ? AND is_deleted = FALSE`
	s := &ReviewSummary{MovieID: movieID}
	if err := r.db.QueryRowContext(ctx, q, movieID).Scan(&s.ReviewCount, &s.AverageRating); err != nil {
		return nil, err
	}
	return s, nil
}

// Update changes rating, title and comment of a review owned by the
// given user. ErrForbidden when the review belongs to someone else.
func (r *ReviewRepo) Update(ctx context.Context, rv *model.Review) error {
	existing, err := r.GetByID(ctx, rv.ID)
	if err != nil {
		return err
	}
	if existing.UserID != rv.UserID {
		return ErrForbidden
	}
	const q = `UPDATE reviews
			   SET rating = ?, title = ?, comment = ?, updated_at = CURRENT_TIMESTAMP
			   WHERE id = ? AND is_deleted = FALSE`
	_, err = r.db.ExecContext(ctx, q, rv.Rating, rv.Title, rv.Comment, rv.ID)
	return err
}

// React increments the like or dislike counter of a live review and
// returns the updated row. The increment runs server side so
// concurrent reactions never lose counts.
func (r *ReviewRepo) React(ctx context.Context, id uint64, like bool) (*model.Review, error) {
	column := "dislikes"
	if like {
		column = "likes"
	}
	q := `UPDATE reviews SET ` + column + ` = ` + column + ` + 1, updated_at = CURRENT_TIMESTAMP
		  WHERE id = ? AND is_deleted = FALSE`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrReviewNotFound
	}
	return r.GetByID(ctx, id)
}

// SoftDelete marks a review deleted. Admins may delete any review;
// other callers only their own.
func (r *ReviewRepo) SoftDelete(ctx context.Context, id, userID uint64, isAdmin bool) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && existing.UserID != userID {
		return ErrForbidden
	}
	const q = `UPDATE reviews SET is_deleted = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q, id)
	return err
}
