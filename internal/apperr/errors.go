package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict.
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrRoutingAmbiguous is returned by the RDV routing engine when the order
// information is insufficient to determine a recipient. Callers either
// surface it to the user or fall back to a manually specified target.
var ErrRoutingAmbiguous = errors.New("routing ambiguous")
