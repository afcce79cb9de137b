// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConflict signals that a candidate reservation overlaps
// an existing active one, while ErrForbidden indicates that the
// current user is not authorized to act on someone else's resource.
package repository

import "errors"

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot be performed because of
// conflicting state: a candidate slot overlapping an active
// reservation, or finalizing a reservation that is already
// finalized. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")
