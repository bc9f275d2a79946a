package game

import "errors"

var (
	// ErrIllegalAction rejects an action before any state is mutated.
	ErrIllegalAction = errors.New("illegal action")
	// ErrInvalidCardReference aborts the current resolution.
	ErrInvalidCardReference = errors.New("invalid card reference")
	// ErrEmptyPoolDraw is recoverable: the drawing player simply goes short.
	ErrEmptyPoolDraw = errors.New("empty pool draw")
)
