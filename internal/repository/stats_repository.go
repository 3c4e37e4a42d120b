package repository

import (
	"context"
	"database/sql"
	"time"
)

// Stats is the admin dashboard aggregate. Revenue counts only
// holding tickets (booked or confirmed); cancelled tickets keep their
// rows but contribute nothing.
type Stats struct {
	Movies         int            `json:"movies"`
	Cinemas        int            `json:"cinemas"`
	Users          int            `json:"users"`
	TicketsSold    int            `json:"tickets_sold"`
	RevenueCents   uint64         `json:"revenue_cents"`
	PopularMovies  []PopularMovie `json:"popular_movies"`
	RecentBookings []RecentBooking `json:"recent_bookings"`
}

// PopularMovie ranks movies by tickets sold.
type PopularMovie struct {
	MovieID uint64 `json:"movie_id"`
	Title   string `json:"title"`
	Tickets int    `json:"tickets"`
}

// RecentBooking is one row of the latest-bookings feed.
type RecentBooking struct {
	TicketID   uint64    `json:"ticket_id"`
	BookingRef string    `json:"booking_ref"`
	MovieTitle string    `json:"movie_title"`
	UserEmail  string    `json:"user_email"`
	PriceCents uint32    `json:"price_cents"`
	Status     string    `json:"status"`
	BookedAt   time.Time `json:"booked_at"`
}

// StatsRepo computes the admin dashboard numbers.
type StatsRepo struct{ db *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// Load gathers all dashboard aggregates in one call.
func (r *StatsRepo) Load(ctx context.Context) (*Stats, error) {
	var s Stats

	counts := []struct {
		q    string
		dest *int
	}{
		{`SELECT COUNT(*) FROM movies`, &s.Movies},
		{`SELECT COUNT(*) FROM cinemas`, &s.Cinemas},
		{`SELECT COUNT(*) FROM users`, &s.Users},
		{`SELECT COUNT(*) FROM tickets WHERE status IN ('booked','confirmed')`, &s.TicketsSold},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.q).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	const revenueQ = `SELECT COALESCE(SUM(price_cents), 0) FROM tickets
					  WHERE status IN ('booked','confirmed')`
	if err := r.db.QueryRowContext(ctx, revenueQ).Scan(&s.RevenueCents); err != nil {
		return nil, err
	}

	const popularQ = `SELECT m.id, m.title, COUNT(*) AS n
					  FROM tickets t
					  JOIN screenings sc ON sc.id = t.screening_id
					  JOIN movies m ON m.id = sc.movie_id
					  WHERE t.status IN ('booked','confirmed')
					  GROUP BY m.id, m.title
					  ORDER BY n DESC, m.id
					  LIMIT 5`
	rows, err := r.db.QueryContext(ctx, popularQ)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var pm PopularMovie
		if err := rows.Scan(&pm.MovieID, &pm.Title, &pm.Tickets); err != nil {
			return nil, err
		}
		s.PopularMovies = append(s.PopularMovies, pm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const recentQ = `SELECT t.id, t.booking_ref, m.title, u.email, t.price_cents,
							t.status, t.booked_at
					 FROM tickets t
					 JOIN screenings sc ON sc.id = t.screening_id
					 JOIN movies m ON m.id = sc.movie_id
					 JOIN users u ON u.id = t.user_id
					 ORDER BY t.booked_at DESC, t.id DESC
					 LIMIT 10`
	recent, err := r.db.QueryContext(ctx, recentQ)
	if err != nil {
		return nil, err
	}
	defer recent.Close()
	for recent.Next() {
		var rb RecentBooking
		err := recent.Scan(&rb.TicketID, &rb.BookingRef, &rb.MovieTitle, &rb.UserEmail,
			&rb.PriceCents, &rb.Status, &rb.BookedAt)
		if err != nil {
			return nil, err
		}
		s.RecentBookings = append(s.RecentBookings, rb)
	}
	if err := recent.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}
