package chrono

import (
	"errors"
	"fmt"
)

// Sentinel errors for the chrono package.
// Use errors.Is to check: errors.Is(err, chrono.ErrSamplingExhausted)
var (
	ErrInvalidArchetype     = errors.New("chrono: invalid archetype")
	ErrInvalidMode          = errors.New("chrono: invalid mode")
	ErrInvalidConfig        = errors.New("chrono: invalid session config")
	ErrInsufficientEvents   = errors.New("chrono: not enough candidate events")
	ErrSamplingExhausted    = errors.New("chrono: sampling attempts exhausted")
	ErrNoArchetypeAvailable = errors.New("chrono: no question archetype has enough events")
	ErrNoQuestion           = errors.New("chrono: could not generate a question")
	ErrNoActiveQuestion     = errors.New("chrono: no active question")
	ErrAlreadyAnswered      = errors.New("chrono: question already answered")
	ErrInvalidOption        = errors.New("chrono: option index out of range")
)

// SamplingError reports a rejection-sampling loop that ran out of attempts.
// It matches ErrSamplingExhausted under errors.Is and carries the context
// needed to diagnose why no candidate set was accepted.
type SamplingError struct {
	Archetype     Archetype
	PoolSize      int
	ExclusionSize int
	Attempts      int
	Constraint    string
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("%v: %s after %d attempts (pool=%d, excluded=%d, constraint=%s)",
		ErrSamplingExhausted, e.Archetype, e.Attempts, e.PoolSize, e.ExclusionSize, e.Constraint)
}

// Unwrap returns ErrSamplingExhausted.
func (e *SamplingError) Unwrap() error {
	return ErrSamplingExhausted
}
