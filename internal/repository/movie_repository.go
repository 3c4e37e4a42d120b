package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// ErrMovieNotFound is returned when a movie cannot be found.
var ErrMovieNotFound = errors.New("movie not found")

// MovieRepo encapsulates all database queries related to movies.
type MovieRepo struct{ db *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = `id, title, description, duration_minutes, genres, rating,
					  director, release_date, language, image_url, trailer_url,
					  created_at, updated_at`

// Create inserts a new movie and populates ID and timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	genres, err := jsonOrNull(m.Genres)
	if err != nil {
		return err
	}
	const q = `INSERT INTO movies
			   (title, description, duration_minutes, genres, rating, director,
				release_date, language, image_url, trailer_url)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		m.Title, m.Description, m.DurationMinutes, genres, m.Rating, m.Director,
		m.ReleaseDate, m.Language, m.ImageURL, m.TrailerURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at, updated_at FROM movies WHERE id = ?`, m.ID).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

// GetByID fetches a movie by id.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	m, err := scanMovie(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	return m, err
}

// List returns movies ordered by id with limit/offset pagination.
func (r *MovieRepo) List(ctx context.Context, limit, offset int) ([]*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies ORDER BY id LIMIT ? OFFSET ?`
	return r.queryMovies(ctx, q, limit, offset)
}

// Search matches movies by title, director or genre substring.
func (r *MovieRepo) Search(ctx context.Context, term string) ([]*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies
			   WHERE title LIKE ? OR director LIKE ? OR genres LIKE ?
			   ORDER BY id`
	like := "%" + term + "%"
	return r.queryMovies(ctx, q, like, like, like)
}

// ListByCinema returns the distinct movies with an upcoming screening
// at the given cinema.
func (r *MovieRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]*model.Movie, error) {
	const q = `SELECT DISTINCT m.id, m.title, m.description, m.duration_minutes, m.genres,
					  m.rating, m.director, m.release_date, m.language, m.image_url,
					  m.trailer_url, m.created_at, m.updated_at
			   FROM movies m
			   JOIN screenings sc ON sc.movie_id = m.id
			   JOIN rooms rm ON rm.id = sc.room_id
			   WHERE rm.cinema_id = ? AND sc.screening_time > NOW()
			   ORDER BY m.id`
	return r.queryMovies(ctx, q, cinemaID)
}

// Update overwrites the mutable fields of a movie.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	genres, err := jsonOrNull(m.Genres)
	if err != nil {
		return err
	}
	const q = `UPDATE movies
			   SET title = ?, description = ?, duration_minutes = ?, genres = ?,
				   rating = ?, director = ?, release_date = ?, language = ?,
				   image_url = ?, trailer_url = ?, updated_at = CURRENT_TIMESTAMP
			   WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		m.Title, m.Description, m.DurationMinutes, genres, m.Rating, m.Director,
		m.ReleaseDate, m.Language, m.ImageURL, m.TrailerURL, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes a movie with its screenings and reviews. Tickets are
// never deleted, so the delete is refused with ErrConflict when any
// ticket references a screening of this movie.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var exists uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM movies WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMovieNotFound
	}
	if err != nil {
		return err
	}

	var tickets int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets t
		 JOIN screenings sc ON sc.id = t.screening_id
		 WHERE sc.movie_id = ?`, id).Scan(&tickets)
	if err != nil {
		return err
	}
	if tickets > 0 {
		return ErrConflict
	}

	steps := []string{
		`DELETE FROM screenings WHERE movie_id = ?`,
		`DELETE FROM reviews WHERE movie_id = ?`,
		`DELETE FROM cast_members WHERE movie_id = ?`,
		`DELETE FROM movies WHERE id = ?`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (r *MovieRepo) queryMovies(ctx context.Context, q string, args ...interface{}) ([]*model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Movie
	for rows.Next() {
		m, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMovie(scan func(dest ...interface{}) error) (*model.Movie, error) {
	var (
		m      model.Movie
		genres sql.NullString
	)
	err := scan(&m.ID, &m.Title, &m.Description, &m.DurationMinutes, &genres,
		&m.Rating, &m.Director, &m.ReleaseDate, &m.Language, &m.ImageURL,
		&m.TrailerURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if genres.Valid && genres.String != "" {
		if err := json.Unmarshal([]byte(genres.String), &m.Genres); err != nil {
			return nil, err
		}
	}
	return &m, nil
}
