// Package repository implements data access against MySQL using
// hand-written SQL.  Sentinel errors defined here are shared across
// repositories so handlers can map failure scenarios onto HTTP
// responses without inspecting SQL details.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or delete cannot proceed
// because of conflicting state, such as favoriting a cinema twice.
// Handlers translate this into 409.
var ErrConflict = errors.New("conflict")
