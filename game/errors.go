package game

import "errors"

// Invariant violations. None of these are expected during a well-formed game;
// callers propagate them after capturing whatever diagnostics they need.
var (
	ErrAlreadyMarked   = errors.New("already marked")
	ErrAllStationsFull = errors.New("all stations full")
	ErrEmptyDeck       = errors.New("draw from empty deck")
	ErrNoStartNode     = errors.New("no start node")
)

// Construction and guard errors.
var (
	ErrInvalidMap   = errors.New("invalid map")
	ErrUnknownNode  = errors.New("unknown node")
	ErrStationFull  = errors.New("station full")
	ErrUnknownCard  = errors.New("unknown card")
	ErrInvalidCards = errors.New("invalid card supply")
)
