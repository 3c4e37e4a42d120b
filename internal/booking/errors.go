// Package booking implements the booking consistency core: seat
// availability computation, the ticket lifecycle engine and the bulk
// seat provisioner.  It is independent of the HTTP layer; handlers
// translate its error kinds into status codes.
package booking

import (
	"errors"
	"fmt"
)

// Kind classifies a booking failure.  Every precondition failure is
// surfaced synchronously with one of these kinds; nothing is
// silently swallowed.
type Kind int

const (
	// KindNotFound means a referenced entity does not exist.
	KindNotFound Kind = iota + 1
	// KindForbidden means the caller does not own the resource or
	// lacks the required role.
	KindForbidden
	// KindInvalidState means the operation is not valid given the
	// current entity state (past screening, already cancelled, ...).
	KindInvalidState
	// KindConflict means the operation lost a contention race, e.g.
	// a requested seat is already held.
	KindConflict
	// KindInvalidArgument means an input value is malformed, e.g. an
	// unrecognized status string or a non-positive grid dimension.
	KindInvalidArgument
)

// Error is the error type returned by all booking operations.  It
// carries a machine-distinguishable kind, a human-readable message
// naming the offending ids, and for seat conflicts the list of seat
// ids that were already held.
type Error struct {
	Kind    Kind
	Message string
	SeatIDs []uint64
}

func (e *Error) Error() string { return e.Message }

// IsKind reports whether err is a booking Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == kind
}

func notFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func invalidStatef(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func invalidArgumentf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func seatConflict(seatIDs []uint64) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: fmt.Sprintf("seats %v are already booked", seatIDs),
		SeatIDs: seatIDs,
	}
}
