package booking

import (
	"context"

	"github.com/iliyamo/cinema-ticket-selling/internal/model"
)

// DefaultSeatType is used when a bulk provisioning request does not
// name a seat type.
const DefaultSeatType = "standard"

// MaxSeatsPerRoom bounds a single provisioning request. Real rooms
// top out far below this; anything larger is a bad request, not a
// bigger room.
const MaxSeatsPerRoom = 2000

// RowLabel converts a zero-based row index to its alphabetical label:
// 0 -> A, 25 -> Z, 26 -> AA, 27 -> AB and so on (bijective base 26).
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var buf []byte
	for {
		buf = append(buf, byte('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(buf)-1; j < k; j, k = j+1, k-1 {
		buf[j], buf[k] = buf[k], buf[j]
	}
	return string(buf)
}

// BulkCreateSeats generates a rectangular seat grid for a room in one
// transaction: rows labelled A, B, C, ... with seats numbered
// 1..seatsPerRow in each row.  Seats are created and returned in
// row-major order (all of row A, then row B, ...).
//
// The room must exist (NotFound) and must not already contain seats:
// re-provisioning a populated room would duplicate
// (room, row, number) triples, so it fails with Conflict instead.
func (e *Engine) BulkCreateSeats(ctx context.Context, roomID uint64, rows, seatsPerRow int, seatType string) ([]*model.Seat, error) {
	if rows <= 0 || seatsPerRow <= 0 {
		return nil, invalidArgumentf("rows and seats_per_row must be positive")
	}
	if rows > MaxSeatsPerRoom || seatsPerRow > MaxSeatsPerRoom || rows*seatsPerRow > MaxSeatsPerRoom {
		return nil, invalidArgumentf("grid exceeds the per-room maximum of %d seats", MaxSeatsPerRoom)
	}
	if seatType == "" {
		seatType = DefaultSeatType
	}

	var seats []*model.Seat
	err := e.store.InTx(ctx, func(tx Tx) error {
		room, err := tx.RoomByID(ctx, roomID)
		if err != nil {
			return err
		}
		if room == nil {
			return notFoundf("room with id %d not found", roomID)
		}
		existing, err := tx.RoomSeatCount(ctx, roomID)
		if err != nil {
			return err
		}
		if existing > 0 {
			return &Error{
				Kind:    KindConflict,
				Message: "room already has seats; delete the room's seats before re-provisioning",
			}
		}

		now := e.now().UTC()
		seats = make([]*model.Seat, 0, rows*seatsPerRow)
		for r := 0; r < rows; r++ {
			label := RowLabel(r)
			for n := 1; n <= seatsPerRow; n++ {
				seats = append(seats, &model.Seat{
					RoomID:     roomID,
					RowLabel:   label,
					SeatNumber: uint32(n),
					SeatType:   seatType,
					CreatedAt:  now,
				})
			}
		}
		return tx.InsertSeats(ctx, seats)
	})
	if err != nil {
		return nil, err
	}
	return seats, nil
}
