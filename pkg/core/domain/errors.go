package domain

import "errors"

var (
	// ErrNotFound is returned when a record id is not part of the content store.
	ErrNotFound = errors.New("record not found")
	// ErrValidation marks client input that failed a required-field check.
	ErrValidation = errors.New("validation failed")
	// ErrBusy is returned while another operation for the same record is in flight.
	ErrBusy = errors.New("operation already pending")
	// ErrUnsupportedStat is returned for an unknown stat kind or a decrement of anything but likes.
	ErrUnsupportedStat = errors.New("unsupported stat operation")
	// ErrInvalidRecord marks a content dataset that breaks a load-time invariant.
	ErrInvalidRecord = errors.New("invalid content record")
)
