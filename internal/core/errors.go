package core

import "errors"

// Sentinel errors for the narrow failure surface of the simulation core.
// Callers match them with errors.Is.
var (
	// ErrInvalidParameter flags a probability outside [0,1], a non-positive
	// lattice size, or an unsupported connectivity. Raised before any grid
	// allocation; parameters are never silently clamped.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrStateMismatch flags a resume snapshot whose grid shape does not
	// match the configured lattice size.
	ErrStateMismatch = errors.New("state mismatch")

	// ErrOutOfRange flags an out-of-bounds starting coordinate handed to the
	// flood-fill engine. This is a caller bug, surfaced instead of silently
	// returning a zero burn size.
	ErrOutOfRange = errors.New("coordinate out of range")
)
