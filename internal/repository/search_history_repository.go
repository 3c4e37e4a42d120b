package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// SearchHistoryRepo records searches of authenticated users.
type SearchHistoryRepo struct{ db *sql.DB }

func NewSearchHistoryRepo(db *sql.DB) *SearchHistoryRepo { return &SearchHistoryRepo{db: db} }

// Add appends a search entry. Failures here should not break the
// search itself; callers log and move on.
func (r *SearchHistoryRepo) Add(ctx context.Context, h *model.SearchHistory) error {
	const q = `INSERT INTO search_history (user_id, search_query, search_type) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.UserID, h.Query, h.SearchType)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// ListByUser returns the user's most recent searches.
func (r *SearchHistoryRepo) ListByUser(ctx context.Context, userID uint64, limit int) ([]*model.SearchHistory, error) {
	const q = `SELECT id, user_id, search_query, search_type, created_at
			   FROM search_history
			   WHERE user_id = ?
			   ORDER BY created_at DESC, id DESC
			   LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.SearchHistory
	for rows.Next() {
		h := new(model.SearchHistory)
		if err := rows.Scan(&h.ID, &h.UserID, &h.Query, &h.SearchType, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Clear deletes all search history of a user.
func (r *SearchHistoryRepo) Clear(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM search_history WHERE user_id = ?`, userID)
	return err
}
