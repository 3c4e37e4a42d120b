package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// ErrFavoriteNotFound is returned when removing a favorite that does
// not exist.
var ErrFavoriteNotFound = errors.New("favorite not found")

// FavoriteCinema is a favorite joined with the cinema it points to.
type FavoriteCinema struct {
	model.Favorite
	Cinema *model.Cinema `json:"cinema"`
}

// FavoriteRepo encapsulates the user/cinema favorite relation.
type FavoriteRepo struct{ db *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add marks a cinema as favorite. Adding the same cinema twice maps
// the unique key violation to ErrConflict.
func (r *FavoriteRepo) Add(ctx context.Context, f *model.Favorite) error {
	const q = `INSERT INTO favorites (user_id, cinema_id) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, f.UserID, f.CinemaID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM favorites WHERE id = ?`, f.ID).
		Scan(&f.CreatedAt)
}

// Remove drops a favorite.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, cinemaID uint64) error {
	const q = `DELETE FROM favorites WHERE user_id = ? AND cinema_id = ?`
	res, err := r.db.ExecContext(ctx, q, userID, cinemaID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// IsFavorite reports whether the user has favorited the cinema.
func (r *FavoriteRepo) IsFavorite(ctx context.Context, userID, cinemaID uint64) (bool, error) {
	const q = `SELECT 1 FROM favorites WHERE user_id = ? AND cinema_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, userID, cinemaID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns the user's favorite cinemas, newest first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]*FavoriteCinema, error) {
	const q = `SELECT f.id, f.user_id, f.cinema_id, f.created_at,
					  c.id, c.name, c.address, c.city, c.longitude, c.latitude,
					  c.image_url, c.phone, c.has_parking, c.is_accessible,
					  c.amenities, c.created_at
			   FROM favorites f
			   JOIN cinemas c ON c.id = f.cinema_id
			   WHERE f.user_id = ?
			   ORDER BY f.created_at DESC, f.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*FavoriteCinema
	for rows.Next() {
		fc := new(FavoriteCinema)
		var (
			c         model.Cinema
			amenities sql.NullString
		)
		err := rows.Scan(&fc.ID, &fc.UserID, &fc.CinemaID, &fc.CreatedAt,
			&c.ID, &c.Name, &c.Address, &c.City, &c.Longitude, &c.Latitude,
			&c.ImageURL, &c.Phone, &c.HasParking, &c.IsAccessible,
			&amenities, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		if amenities.Valid && amenities.String != "" {
			if err := unmarshalStrings(amenities.String, &c.Amenities); err != nil {
				return nil, err
			}
		}
		fc.Cinema = &c
		out = append(out, fc)
	}
	return out, rows.Err()
}
