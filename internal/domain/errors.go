package domain

import "errors"

var (
	// ErrInvalidFormat returned when a date or slot label does not match the expected format.
	// For catalog labels this is a configuration defect and must never be defaulted.
	ErrInvalidFormat = errors.New("domain: invalid format")
)
