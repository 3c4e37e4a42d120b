package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicketStatus(t *testing.T) {
	for _, valid := range []string{"pending", "booked", "confirmed", "cancelled"} {
		s, ok := ParseTicketStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, TicketStatus(valid), s)
	}
	for _, invalid := range []string{"", "BOOKED", "refunded", "held"} {
		_, ok := ParseTicketStatus(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestTicketStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to TicketStatus
		ok       bool
	}{
		{TicketBooked, TicketConfirmed, true},
		{TicketBooked, TicketCancelled, true},
		{TicketPending, TicketConfirmed, true},
		{TicketPending, TicketCancelled, true},
		{TicketConfirmed, TicketCancelled, true},
		{TicketCancelled, TicketConfirmed, false},
		{TicketCancelled, TicketBooked, false},
		{TicketConfirmed, TicketBooked, false},
		{TicketConfirmed, TicketConfirmed, false},
		{TicketBooked, TicketBooked, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestHoldingStatuses(t *testing.T) {
	assert.True(t, TicketBooked.Holding())
	assert.True(t, TicketConfirmed.Holding())
	assert.False(t, TicketPending.Holding())
	assert.False(t, TicketCancelled.Holding())
	assert.Equal(t, []TicketStatus{TicketBooked, TicketConfirmed}, HoldingStatuses())
}
