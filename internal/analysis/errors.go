package analysis

import "errors"

var (
	// ErrNotFound indicates a missing submission record.
	ErrNotFound = errors.New("submission not found")

	// ErrInFlight rejects a submission while another one is running for the
	// same session.
	ErrInFlight = errors.New("a submission is already in flight")
)
