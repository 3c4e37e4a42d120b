// Package queue defines the message payloads exchanged over the
// broker and the background consumer that processes them.
package queue

// TicketBookedEvent is published once per successful booking call.
// It carries enough denormalized detail for downstream consumers to
// log or notify without querying the primary database.
type TicketBookedEvent struct {
	BookingRef    string   `json:"booking_ref"`
	UserID        uint64   `json:"user_id"`
	ScreeningID   uint64   `json:"screening_id"`
	MovieTitle    string   `json:"movie_title"`
	CinemaName    string   `json:"cinema_name"`
	RoomName      string   `json:"room_name"`
	ScreeningTime string   `json:"screening_time"`
	SeatLabels    []string `json:"seats"`
	TotalCents    uint64   `json:"total_cents"`
	BookedAt      string   `json:"booked_at"`
}
