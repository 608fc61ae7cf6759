// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.  For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrNotFound signals that the addressed row does not
// exist.  Seat conflicts are reported with the typed
// *booking.ConflictError so the offending table and seat can be named
// in the response.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when the addressed row does not exist.
// Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned by UserRepo.Create when the email is
// already registered.  Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrEmptySelection is returned by ReservationRepo.Create when the
// submitted seat map contains no selected seat.
var ErrEmptySelection = errors.New("no seats selected")
