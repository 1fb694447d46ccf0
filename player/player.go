package player

import (
	"errors"
	"fmt"

	"metro/game"

	"golang.org/x/exp/rand"
)

// ErrUnresolved is returned when every resolver in a chain defers.
var ErrUnresolved = errors.New("no resolver produced a choice")

// Decider chooses what to do with each drawn card.
type Decider interface {
	Name() string
	HandleNumber(v View, card game.Card) (*game.Station, error)
	HandleSkip(v View, card game.Card) (*game.Station, error)
	HandleReshuffle(v View, card game.Card) (*game.Station, error)
	HandleTransfer(v View, card game.Card) (TransferChoice, error)
	HandleFree(v View, card game.Card) (FreeChoice, error)
}

type Option func(p *Player)

// WithNumber sets the chain for number and reshuffle cards. Skip cards fall
// back to it unless they have a chain of their own.
func WithNumber(chain ...Resolver[*game.Station]) Option {
	return func(p *Player) {
		p.number = chain
	}
}

func WithSkip(chain ...Resolver[*game.Station]) Option {
	return func(p *Player) {
		p.skip = chain
	}
}

func WithTransfer(chain ...Resolver[TransferChoice]) Option {
	return func(p *Player) {
		p.transfer = chain
	}
}

// WithFree sets the chain for free cards. Without one a free card is passed.
func WithFree(chain ...Resolver[FreeChoice]) Option {
	return func(p *Player) {
		p.free = chain
	}
}

// WithRand sets the source for random choices.
func WithRand(rng *rand.Rand) Option {
	return func(p *Player) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// Player resolves each card kind through an ordered chain of resolvers; the
// first resolver that produces a choice wins. A Player is used by one game at
// a time.
type Player struct {
	name     string
	rng      *rand.Rand
	number   []Resolver[*game.Station]
	skip     []Resolver[*game.Station]
	transfer []Resolver[TransferChoice]
	free     []Resolver[FreeChoice]
	stats    map[string]int
}

func New(name string, options ...Option) *Player {
	p := &Player{
		name:  name,
		rng:   rand.New(rand.NewSource(1)),
		free:  []Resolver[FreeChoice]{PassFree},
		stats: make(map[string]int),
	}
	for _, option := range options {
		option(p)
	}
	if len(p.number) == 0 {
		panic("player needs a number card chain")
	}
	if len(p.transfer) == 0 {
		panic("player needs a transfer card chain")
	}
	return p
}

func (p *Player) Name() string {
	return p.name
}

// Statistics counts, per card kind and resolver, how many decisions each resolver made.
func (p *Player) Statistics() map[string]int {
	out := make(map[string]int, len(p.stats))
	for k, v := range p.stats {
		out[k] = v
	}
	return out
}

func (p *Player) HandleNumber(v View, card game.Card) (*game.Station, error) {
	return resolve(p, "number", p.number, v, card)
}

func (p *Player) HandleSkip(v View, card game.Card) (*game.Station, error) {
	if len(p.skip) == 0 {
		return p.HandleNumber(v, card)
	}
	return resolve(p, "skip", p.skip, v, card)
}

// HandleReshuffle places a reshuffle card like a number card; the reshuffle
// itself happens in the deck.
func (p *Player) HandleReshuffle(v View, card game.Card) (*game.Station, error) {
	return p.HandleNumber(v, card)
}

func (p *Player) HandleTransfer(v View, card game.Card) (TransferChoice, error) {
	return resolve(p, "transfer", p.transfer, v, card)
}

func (p *Player) HandleFree(v View, card game.Card) (FreeChoice, error) {
	return resolve(p, "free", p.free, v, card)
}

// resolve starts a fresh turn and walks the chain in order.
func resolve[C any](p *Player, kind string, chain []Resolver[C], v View, card game.Card) (C, error) {
	var zero C
	t, err := newTurn(v, p.rng)
	if err != nil {
		return zero, err
	}
	for _, r := range chain {
		if choice, ok := r.Resolve(t, card); ok {
			p.stats[kind+"/"+r.Name]++
			return choice, nil
		}
	}
	return zero, fmt.Errorf("%s card %s: %w", kind, card, ErrUnresolved)
}
