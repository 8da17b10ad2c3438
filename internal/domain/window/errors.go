package window

import "errors"

var (
	// ErrUnknownWindow means the id is neither in the registry nor the catalog
	ErrUnknownWindow = errors.New("unknown window")

	// ErrInvalidTransition means the command does not apply in the current state
	ErrInvalidTransition = errors.New("invalid window transition")

	// ErrInvalidSnapshot means a snapshot cannot be restored
	ErrInvalidSnapshot = errors.New("invalid registry snapshot")
)
