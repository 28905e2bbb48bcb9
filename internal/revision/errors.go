package revision

import "errors"

var (
	// ErrBusy is returned when an operation is already in flight.
	// Callers treat it as a silent no-op.
	ErrBusy = errors.New("operation already in flight")
	// ErrEmptyInput is returned when there is no text to clean.
	ErrEmptyInput = errors.New("nothing to clean")
	// ErrInvalidPattern wraps regexp compile failures.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrMalformedToken is returned when a share token does not decode.
	ErrMalformedToken = errors.New("malformed share token")
	// ErrNothingToCopy is returned when there is no cleaned text yet.
	ErrNothingToCopy = errors.New("no cleaned text")
)
