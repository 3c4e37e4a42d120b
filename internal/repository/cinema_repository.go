package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// ErrCinemaNotFound is returned when a cinema cannot be found.
var ErrCinemaNotFound = errors.New("cinema not found")

// CinemaRepo encapsulates all database queries related to cinemas.
type CinemaRepo struct{ db *sql.DB }

func NewCinemaRepo(db *sql.DB) *CinemaRepo { return &CinemaRepo{db: db} }

const cinemaColumns = `id, name, address, city, longitude, latitude, image_url,
					   phone, has_parking, is_accessible, amenities, created_at`

// Create inserts a new cinema and populates its ID and CreatedAt.
func (r *CinemaRepo) Create(ctx context.Context, c *model.Cinema) error {
	amenities, err := jsonOrNull(c.Amenities)
	if err != nil {
		return err
	}
	const q = `INSERT INTO cinemas
			   (name, address, city, longitude, latitude, image_url, phone,
				has_parking, is_accessible, amenities)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		c.Name, c.Address, c.City, c.Longitude, c.Latitude, c.ImageURL, c.Phone,
		c.HasParking, c.IsAccessible, amenities)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM cinemas WHERE id = ?`, c.ID).
		Scan(&c.CreatedAt)
}

// GetByID fetches a cinema by id, returning ErrCinemaNotFound when absent.
func (r *CinemaRepo) GetByID(ctx context.Context, id uint64) (*model.Cinema, error) {
	const q = `SELECT ` + cinemaColumns + ` FROM cinemas WHERE id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	c, err := scanCinema(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCinemaNotFound
	}
	return c, err
}

// List returns all cinemas ordered by id, optionally filtered by city.
func (r *CinemaRepo) List(ctx context.Context, city string) ([]*model.Cinema, error) {
	q := `SELECT ` + cinemaColumns + ` FROM cinemas`
	var args []interface{}
	if city != "" {
		q += ` WHERE city = ?`
		args = append(args, city)
	}
	q += ` ORDER BY id`
	return r.queryCinemas(ctx, q, args...)
}

// Search matches cinemas whose name, address or city contains the term.
func (r *CinemaRepo) Search(ctx context.Context, term string) ([]*model.Cinema, error) {
	const q = `SELECT ` + cinemaColumns + ` FROM cinemas
			   WHERE name LIKE ? OR address LIKE ? OR city LIKE ?
			   ORDER BY id`
	like := "%" + term + "%"
	return r.queryCinemas(ctx, q, like, like, like)
}

// Update overwrites the mutable fields of a cinema.
func (r *CinemaRepo) Update(ctx context.Context, c *model.Cinema) error {
	amenities, err := jsonOrNull(c.Amenities)
	if err != nil {
		return err
	}
	const q = `UPDATE cinemas
			   SET name = ?, address = ?, city = ?, longitude = ?, latitude = ?,
				   image_url = ?, phone = ?, has_parking = ?, is_accessible = ?,
				   amenities = ?
			   WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		c.Name, c.Address, c.City, c.Longitude, c.Latitude,
		c.ImageURL, c.Phone, c.HasParking, c.IsAccessible, amenities, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCinemaNotFound
	}
	return nil
}

// Delete removes a cinema together with its rooms, seats, screenings
// and favorites. Tickets are never deleted; when any ticket references
// a screening of this cinema the delete is refused with ErrConflict.
func (r *CinemaRepo) Delete(ctx context.Context, id uint64) error {
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
	err = tx.QueryRowContext(ctx, `SELECT id FROM cinemas WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCinemaNotFound
	}
	if err != nil {
		return err
	}

	var tickets int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets t
		 JOIN screenings sc ON sc.id = t.screening_id
		 JOIN rooms rm ON rm.id = sc.room_id
		 WHERE rm.cinema_id = ?`, id).Scan(&tickets)
	if err != nil {
		return err
	}
	if tickets > 0 {
		return ErrConflict
	}

	steps := []string{
		`DELETE sc FROM screenings sc JOIN rooms rm ON rm.id = sc.room_id WHERE rm.cinema_id = ?`,
		`DELETE s FROM seats s JOIN rooms rm ON rm.id = s.room_id WHERE rm.cinema_id = ?`,
		`DELETE FROM rooms WHERE cinema_id = ?`,
		`DELETE FROM favorites WHERE cinema_id = ?`,
		`DELETE FROM cinemas WHERE id = ?`,
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

func (r *CinemaRepo) queryCinemas(ctx context.Context, q string, args ...interface{}) ([]*model.Cinema, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Cinema
	for rows.Next() {
		c, err := scanCinema(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCinema(scan func(dest ...interface{}) error) (*model.Cinema, error) {
	var (
		c         model.Cinema
		amenities sql.NullString
	)
	err := scan(&c.ID, &c.Name, &c.Address, &c.City, &c.Longitude, &c.Latitude,
		&c.ImageURL, &c.Phone, &c.HasParking, &c.IsAccessible, &amenities, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if amenities.Valid && amenities.String != "" {
		if err := json.Unmarshal([]byte(amenities.String), &c.Amenities); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

// unmarshalStrings decodes a JSON array column into a string slice.
func unmarshalStrings(raw string, dst *[]string) error {
	return json.Unmarshal([]byte(raw), dst)
}

// jsonOrNull marshals a string slice for a JSON column, mapping an
// empty slice to SQL NULL.
func jsonOrNull(values []string) (interface{}, error) {
	if len(values) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
