package derive

import "errors"

var (
	// ErrInvalidEvent is returned when a raw event lacks an id, a label or any time.
	// It halts normalization of the whole batch.
	ErrInvalidEvent = errors.New("derive: invalid event")

	// ErrInvalidUnit is returned when a unit lacks an id or a title.
	ErrInvalidUnit = errors.New("derive: invalid unit")

	// ErrInvalidPrecision is returned for unknown precision names.
	ErrInvalidPrecision = errors.New("derive: invalid precision")

	// ErrInvalidCertainty is returned for unknown certainty names.
	ErrInvalidCertainty = errors.New("derive: invalid certainty")
)
