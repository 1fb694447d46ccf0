package engine

import (
	"fmt"

	"metro/experiments/metrics"
	"metro/game"
	"metro/player"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Engine plays one solitaire game: each turn draws a card, asks the player
// where to play it and applies that choice to the board.
type Engine struct {
	Board    *game.Board
	Deck     *game.Deck
	Player   player.Decider
	State    State
	Turn     int
	logTurns bool
	metrics  metrics.Collector
}

type Option func(e *Engine)

func WithMetrics() Option {
	return func(e *Engine) {
		e.metrics = metrics.NewCollector()
	}
}

// LocalEngine sets up a new game from cfg. rng shuffles the deck; when it is
// nil a shuffled game draws from a source seeded with cfg.Seed.
func LocalEngine(cfg game.Config, p player.Decider, rng *rand.Rand, options ...Option) (*Engine, error) {
	if rng == nil && !cfg.Deterministic {
		rng = cfg.NewRand()
	}
	board, deck, err := cfg.Setup(rng)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		Board:    board,
		Deck:     deck,
		Player:   p,
		logTurns: cfg.LogTurns,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	if board.StationsFull() {
		e.State = Finished
	}
	return e, nil
}

// Run executes the entire game loop. On failure the board and deck are
// logged before the error is returned.
func (e *Engine) Run() (game.ScoreBreakdown, metrics.GameMetric, error) {
	e.metrics.Start()
	log.Debug().Str("player", e.Player.Name()).Msg("game is starting")

	for e.State == Playing {
		if err := e.Step(); err != nil {
			e.dump(err)
			return game.ScoreBreakdown{}, e.metrics.Complete(), fmt.Errorf("turn %d: %w", e.Turn, err)
		}
	}

	score := e.Board.ScoreBreakdown()
	log.Debug().Stringer("state", e.State).Int("turns", e.Turn).Int("score", score.Total).Msg("game is over")
	return score, e.metrics.Complete(), nil
}

// Step plays a single turn. It does nothing once the game is finished.
func (e *Engine) Step() error {
	if e.State == Finished {
		return nil
	}
	if e.Turn >= MaxTurns {
		return ErrTurnLimit
	}
	e.Turn++

	if e.logTurns {
		log.Debug().
			Int("turn", e.Turn).
			Int("stations", len(e.availableStations())).
			Int("boxes", e.Board.RemainingBoxes()).
			Int("path_nodes", e.Board.NumRemainingPathNodes()).
			Int("transfers", len(e.Board.AvailableTransfers())).
			Msg("turn is starting")
	}

	err := e.Deck.Draw(func(card game.Card) error {
		e.metrics.AddTurn(card)
		return e.play(card)
	})
	if err != nil {
		return err
	}

	if e.Board.StationsFull() {
		e.State = Finished
	}
	if e.logTurns {
		log.Debug().Int("turn", e.Turn).Interface("score", e.Board.ScoreBreakdown()).Msg("turn is over")
	}
	return nil
}

func (e *Engine) play(card game.Card) error {
	switch card.Kind {
	case game.NumberCard:
		s, err := e.Player.HandleNumber(e.Board, card)
		if err != nil {
			return err
		}
		return e.advance(card, s)
	case game.SkipCard:
		s, err := e.Player.HandleSkip(e.Board, card)
		if err != nil {
			return err
		}
		return e.advance(card, s, game.WithSkip())
	case game.ReshuffleCard:
		s, err := e.Player.HandleReshuffle(e.Board, card)
		if err != nil {
			return err
		}
		return e.advance(card, s)
	case game.TransferCard:
		choice, err := e.Player.HandleTransfer(e.Board, card)
		if err != nil {
			return err
		}
		return e.transfer(card, choice)
	case game.FreeCard:
		choice, err := e.Player.HandleFree(e.Board, card)
		if err != nil {
			return err
		}
		return e.free(card, choice)
	default:
		panic(fmt.Sprintf("unknown card kind %v", card.Kind))
	}
}

func (e *Engine) advance(card game.Card, s *game.Station, opts ...game.AdvanceOption) error {
	marked, err := e.Board.AdvanceStationPath(card.Number, s, opts...)
	if err != nil {
		return err
	}
	e.metrics.AddMarked(marked)
	if e.logTurns {
		log.Debug().Int("turn", e.Turn).Stringer("card", card).Str("station", s.Name).
			Int("marked", marked).Int("requested", card.Number).Msg("advanced station")
	}
	return nil
}

func (e *Engine) transfer(card game.Card, choice player.TransferChoice) error {
	if choice.Transfer == nil {
		if e.logTurns {
			log.Debug().Int("turn", e.Turn).Stringer("card", card).Str("station", choice.Station.Name).Msg("no transfer left; boxed station")
		}
		return e.Board.MarkBox(choice.Station, 0)
	}
	if err := e.Board.MarkTransfer(choice.Transfer, choice.Station); err != nil {
		return err
	}
	e.metrics.AddTransfer()
	if e.logTurns {
		log.Debug().Int("turn", e.Turn).Stringer("card", card).Int("node", int(choice.Transfer.Node)).
			Str("station", choice.Station.Name).Msg("scored transfer")
	}
	return nil
}

func (e *Engine) free(card game.Card, choice player.FreeChoice) error {
	if choice.Pass {
		e.metrics.AddPass()
		return nil
	}
	if err := e.Board.MarkNode(choice.Node); err != nil {
		return err
	}
	e.metrics.AddMarked(1)
	if e.logTurns {
		log.Debug().Int("turn", e.Turn).Stringer("card", card).Int("node", int(choice.Node)).Msg("marked node")
	}
	return nil
}

func (e *Engine) availableStations() []*game.Station {
	stations, _ := e.Board.AvailableStations()
	return stations
}

func (e *Engine) dump(err error) {
	log.Error().
		Err(err).
		Int("turn", e.Turn).
		Str("player", e.Player.Name()).
		Interface("board", e.Board.Snapshot()).
		Stringer("deck", cards(e.Deck.Cards())).
		Stringer("discard", cards(e.Deck.Discard())).
		Msg("turn failed")
}

type cards []game.Card

func (c cards) String() string {
	return fmt.Sprint([]game.Card(c))
}

var _ Runner = (*Engine)(nil)
