// Package bookingtest provides an in-memory implementation of the
// booking store for tests.  It mirrors the transactional semantics of
// the SQL store: mutations made inside InTx are discarded when the
// callback returns an error.
package bookingtest

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/cinema-ticket-selling/internal/booking"
	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// Store holds all state in maps keyed by id.  Use the Add* helpers to
// seed fixtures; ids are assigned sequentially per entity.
type Store struct {
	mu sync.Mutex

	rooms      map[uint64]model.Room
	seats      map[uint64]model.Seat
	screenings map[uint64]model.Screening
	tickets    map[uint64]model.Ticket

	nextRoom      uint64
	nextSeat      uint64
	nextScreening uint64
	nextTicket    uint64
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		rooms:      map[uint64]model.Room{},
		seats:      map[uint64]model.Seat{},
		screenings: map[uint64]model.Screening{},
		tickets:    map[uint64]model.Ticket{},
	}
}

// AddRoom seeds a room and returns it with its assigned id.
func (s *Store) AddRoom(r model.Room) model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRoom++
	r.ID = s.nextRoom
	s.rooms[r.ID] = r
	return r
}

// AddSeat seeds a seat and returns it with its assigned id.
func (s *Store) AddSeat(seat model.Seat) model.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeat++
	seat.ID = s.nextSeat
	s.seats[seat.ID] = seat
	return seat
}

// AddScreening seeds a screening and returns it with its assigned id.
func (s *Store) AddScreening(sc model.Screening) model.Screening {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextScreening++
	sc.ID = s.nextScreening
	s.screenings[sc.ID] = sc
	return sc
}

// AddTicket seeds a ticket and returns it with its assigned id.
func (s *Store) AddTicket(t model.Ticket) model.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTicket++
	t.ID = s.nextTicket
	s.tickets[t.ID] = t
	return t
}

// Ticket returns the current state of a ticket, for assertions.
func (s *Store) Ticket(id uint64) (model.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	return t, ok
}

// TicketCount returns the number of ticket rows, for atomicity
// assertions.
func (s *Store) TicketCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}

// ScreeningByID implements booking.Store.
func (s *Store) ScreeningByID(ctx context.Context, id uint64) (*model.Screening, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc, ok := s.screenings[id]; ok {
		return &sc, nil
	}
	return nil, nil
}

// SeatsByRoom implements booking.Store.
func (s *Store) SeatsByRoom(ctx context.Context, roomID uint64) ([]model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Seat
	for _, seat := range s.seats {
		if seat.RoomID == roomID {
			out = append(out, seat)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RowLabel != out[j].RowLabel {
			return out[i].RowLabel < out[j].RowLabel
		}
		return out[i].SeatNumber < out[j].SeatNumber
	})
	return out, nil
}

// HeldSeatIDs implements booking.Store.
func (s *Store) HeldSeatIDs(ctx context.Context, screeningID uint64) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uint64
	for _, t := range s.tickets {
		if t.ScreeningID == screeningID && t.Status.Holding() {
			out = append(out, t.SeatID)
		}
	}
	return out, nil
}

// InTx implements booking.Store.  The whole store is locked for the
// duration of the callback and mutations are rolled back when it
// returns an error.
func (s *Store) InTx(ctx context.Context, fn func(booking.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	savedSeats := make(map[uint64]model.Seat, len(s.seats))
	for k, v := range s.seats {
		savedSeats[k] = v
	}
	savedTickets := make(map[uint64]model.Ticket, len(s.tickets))
	for k, v := range s.tickets {
		savedTickets[k] = v
	}
	savedNextSeat, savedNextTicket := s.nextSeat, s.nextTicket

	if err := fn(&tx{s: s}); err != nil {
		s.seats = savedSeats
		s.tickets = savedTickets
		s.nextSeat, s.nextTicket = savedNextSeat, savedNextTicket
		return err
	}
	return nil
}

// tx operates directly on the store; the store mutex is already held
// by InTx.
type tx struct {
	s *Store
}

func (t *tx) ScreeningByID(ctx context.Context, id uint64) (*model.Screening, error) {
	if sc, ok := t.s.screenings[id]; ok {
		return &sc, nil
	}
	return nil, nil
}

func (t *tx) RoomByID(ctx context.Context, id uint64) (*model.Room, error) {
	if r, ok := t.s.rooms[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (t *tx) SeatsByIDs(ctx context.Context, seatIDs []uint64) ([]model.Seat, error) {
	var out []model.Seat
	for _, id := range seatIDs {
		if seat, ok := t.s.seats[id]; ok {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (t *tx) RoomSeatCount(ctx context.Context, roomID uint64) (int, error) {
	n := 0
	for _, seat := range t.s.seats {
		if seat.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (t *tx) HeldSeatIDsAmong(ctx context.Context, screeningID uint64, seatIDs []uint64) ([]uint64, error) {
	want := make(map[uint64]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		want[id] = struct{}{}
	}
	var out []uint64
	for _, tk := range t.s.tickets {
		if tk.ScreeningID != screeningID || !tk.Status.Holding() {
			continue
		}
		if _, ok := want[tk.SeatID]; ok {
			out = append(out, tk.SeatID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (t *tx) InsertTickets(ctx context.Context, tickets []*model.Ticket) error {
	for _, tk := range tickets {
		t.s.nextTicket++
		tk.ID = t.s.nextTicket
		t.s.tickets[tk.ID] = *tk
	}
	return nil
}

func (t *tx) InsertSeats(ctx context.Context, seats []*model.Seat) error {
	for _, seat := range seats {
		t.s.nextSeat++
		seat.ID = t.s.nextSeat
		t.s.seats[seat.ID] = *seat
	}
	return nil
}

func (t *tx) TicketByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	if tk, ok := t.s.tickets[id]; ok {
		return &tk, nil
	}
	return nil, nil
}

func (t *tx) UpdateTicket(ctx context.Context, tk *model.Ticket) error {
	if _, ok := t.s.tickets[tk.ID]; !ok {
		return nil
	}
	t.s.tickets[tk.ID] = *tk
	return nil
}
