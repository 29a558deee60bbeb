package intake

import "errors"

var (
	// ErrMissingRequiredField is returned when name or phone is empty after trimming
	ErrMissingRequiredField = errors.New("missing required field: name and phone")
)
