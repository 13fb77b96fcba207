package registry

import "errors"

var (
	// ErrTimerNotRunning indicates a stop for an id with no running timer.
	ErrTimerNotRunning = errors.New("timer not running")
	// ErrNegativeDuration indicates a sample below zero.
	ErrNegativeDuration = errors.New("negative duration")
	// ErrSampleOverflow indicates a sample above MaxSampleTime.
	ErrSampleOverflow = errors.New("sample exceeds maximum")
)

// ErrorKind classifies recording errors for the errors counter.
type ErrorKind string

const (
	InvalidState    ErrorKind = "invalid_state"
	InvalidValue    ErrorKind = "invalid_value"
	InvalidOverflow ErrorKind = "invalid_overflow"
)

func kindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrTimerNotRunning):
		return InvalidState
	case errors.Is(err, ErrSampleOverflow):
		return InvalidOverflow
	default:
		return InvalidValue
	}
}
