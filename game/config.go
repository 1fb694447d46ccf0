package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Config holds everything needed to set up one game.
type Config struct {
	Map           Map
	Cards         CardSupply
	Deterministic bool   // deal in supply order, never shuffle
	Seed          uint64 // PRNG seed for shuffles and random decisions
	LogTurns      bool   // log every turn at debug level
}

func DefaultConfig() Config {
	return Config{
		Map:   MetroCity,
		Cards: GamewrightCards,
	}
}

// NewRand returns the PRNG a game configured by c should use.
func (c Config) NewRand() *rand.Rand {
	return rand.New(rand.NewSource(c.Seed))
}

// Setup builds the board and the deck for a new game. rng shuffles the deck
// unless the config is deterministic.
func (c Config) Setup(rng *rand.Rand) (*Board, *Deck, error) {
	board, err := NewBoard(c.Map)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build board: %w", err)
	}
	cards, err := c.Cards.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build deck: %w", err)
	}
	if c.Deterministic {
		rng = nil
	}
	return board, NewDeck(cards, rng), nil
}
