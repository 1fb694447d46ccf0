package engine

import (
	"errors"

	"metro/experiments/metrics"
	"metro/game"
)

// MaxTurns caps a game whose card supply can never fill the board.
const MaxTurns = 10000

var ErrTurnLimit = errors.New("turn limit reached")

type State int

const (
	Playing State = iota
	Finished
)

func (s State) String() string {
	if s == Finished {
		return "finished"
	}
	return "playing"
}

type Runner interface {
	// Run plays turns until every station is full and returns the final score
	Run() (game.ScoreBreakdown, metrics.GameMetric, error)
}
