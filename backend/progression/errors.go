package progression

import "errors"

var (
	// ErrInvalidState is returned when an operation is invoked outside its
	// legal state: double-submitting an answered quiz, advancing past a
	// gating quiz, retreating from the first lesson.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrInvalidInput is returned for out-of-range selections and other
	// caller contract violations.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable signals that the persistence layer is not
	// reachable. Progress keeps flowing in memory; only durability is lost.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrSessionNotFound is returned for unknown or expired session tokens.
	ErrSessionNotFound = errors.New("session not found")
)
