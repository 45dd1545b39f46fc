package core

import "errors"

// All failures in the engine are caller-contract violations; nothing is
// retried or recovered internally. Translating these into host-visible
// results is the caller's job.
var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidPlayer      = errors.New("invalid player ID")
	ErrInvalidAction      = errors.New("action index out of range")
	ErrGameOver           = errors.New("game is over")
	ErrIllegalMove        = errors.New("move is not legal for player")
	ErrUndoUnsupported    = errors.New("undo is not supported")
)
