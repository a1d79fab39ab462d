package domain

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation marks missing or malformed user input (no photo for the current
// angle, empty damage notes). It blocks one transition and is fixed by the user.
var ErrValidation = errors.New("validation error")

// ErrBusinessRejection marks a deliberate refusal such as a flagged identity
// document. It is not a technical failure and must not be retried blindly.
var ErrBusinessRejection = errors.New("business rejection")

// ErrCollaboratorFailure wraps network or service errors from identity
// verification, claims, reviews or status persistence. State is unchanged and
// the caller may retry.
var ErrCollaboratorFailure = errors.New("collaborator failure")

// ErrConfiguration marks an invalid fee or contract configuration.
var ErrConfiguration = errors.New("configuration error")

// ErrInvalidTransition is returned for events that are undefined in the
// current lifecycle state.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrConflict is returned when a booking changed underneath a status update.
var ErrConflict = errors.New("conflict")

// ErrIneligible is returned when a renter may not book a listing.
var ErrIneligible = errors.New("not eligible")

var ErrUnauthorized = errors.New("unauthorized")
