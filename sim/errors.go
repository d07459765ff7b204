package sim

import "errors"

var (
	// ErrInvalidBody is returned when a body descriptor or registry is malformed
	ErrInvalidBody = errors.New("invalid body")

	// ErrInvalidTuning is returned when a tuning parameter is out of range
	ErrInvalidTuning = errors.New("invalid tuning")

	// ErrUnknownBody is returned when a target refers to a body outside the registry
	ErrUnknownBody = errors.New("unknown body")

	// ErrNumericDegeneracy is returned when a position or velocity is no longer finite.
	// The simulation cannot recover from this without a restart.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)
