package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, end date before start date, unknown
// visibility level).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when the acting user exists but may not perform
// the operation, e.g. a participant trying to rename someone else's trip.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write collides with existing state, such as
// inviting a user who is already on the trip.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")
