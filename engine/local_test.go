package engine

import (
	"testing"

	"metro/game"
	"metro/player"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var twoLines = game.Map{
	{Name: "red", NumBoxes: 1, HighValue: 3, LowValue: 1, Path: []game.NodeID{1, 2, 3, 6}},
	{Name: "blue", NumBoxes: 2, HighValue: 5, LowValue: 2, Path: []game.NodeID{4, 3, 5}},
}

func supply(ids ...string) game.CardSupply {
	s := make(game.CardSupply, len(ids))
	for i, id := range ids {
		s[i] = game.CardCount{Card: id, Count: 1}
	}
	return s
}

func newEngine(t *testing.T, cfg game.Config, profile string) *Engine {
	t.Helper()
	rng := rand.New(rand.NewSource(cfg.Seed))
	p, err := player.ForProfile(profile, rng)
	require.NoError(t, err)
	e, err := LocalEngine(cfg, p, rng, WithMetrics())
	require.NoError(t, err)
	return e
}

func TestRun(t *testing.T) {
	t.Run("completing a station with a skip", func(t *testing.T) {
		e := newEngine(t, game.Config{
			Map:           twoLines,
			Cards:         supply("n2", "transfer", "skip2"),
			Deterministic: true,
		}, player.MaxFit)

		score, metric, err := e.Run()
		require.NoError(t, err)
		require.Equal(t, game.ScoreBreakdown{
			Total:                 9,
			CompletedStationScore: 5,
			TransferScore:         4,
			EmptyNodeScore:        0,
			NumEmptyNodes:         1,
		}, score)
		require.Equal(t, Finished, e.State)
		require.Equal(t, 3, e.Turn)
		require.Equal(t, 3, metric.Turns)
		require.Equal(t, 5, metric.NodesMarked)
		require.Equal(t, 1, metric.Transfers)
		require.True(t, e.Board.NodesMarked([]game.NodeID{1, 2, 3, 4, 5}))
		require.False(t, e.Board.NodeMarked(6))
	})

	t.Run("stopping a number card at a marked node", func(t *testing.T) {
		e := newEngine(t, game.Config{
			Map:           twoLines,
			Cards:         supply("n2", "transfer", "n2"),
			Deterministic: true,
		}, player.MaxFit)

		score, _, err := e.Run()
		require.NoError(t, err)
		require.Equal(t, game.ScoreBreakdown{
			Total:                 4,
			CompletedStationScore: 0,
			TransferScore:         4,
			EmptyNodeScore:        0,
			NumEmptyNodes:         2,
		}, score)
		require.True(t, e.Board.NodeMarked(4))
		require.False(t, e.Board.NodeMarked(5))
	})

	t.Run("failing on an exhausted deck", func(t *testing.T) {
		e := newEngine(t, game.Config{
			Map:           twoLines,
			Cards:         supply("n2"),
			Deterministic: true,
		}, player.MaxFit)

		_, _, err := e.Run()
		require.ErrorIs(t, err, game.ErrEmptyDeck)
		require.ErrorContains(t, err, "turn 2")
		require.Equal(t, Playing, e.State)
	})

	t.Run("failing when the player cannot decide", func(t *testing.T) {
		cfg := game.Config{Map: twoLines, Cards: supply("n5", "n5", "n5"), Deterministic: true}
		p := player.New("picky", player.WithNumber(player.PerfectFit), player.WithTransfer(player.FirstTransfer))
		e, err := LocalEngine(cfg, p, nil)
		require.NoError(t, err)

		_, _, err = e.Run()
		require.ErrorIs(t, err, player.ErrUnresolved)
		require.ErrorContains(t, err, "turn 1")
	})

	t.Run("rejecting a broken config", func(t *testing.T) {
		_, err := LocalEngine(game.Config{Map: game.Map{}, Cards: supply("n2")}, nil, nil)
		require.ErrorIs(t, err, game.ErrInvalidMap)

		_, err = LocalEngine(game.Config{Map: twoLines, Cards: supply("joker")}, nil, nil)
		require.ErrorIs(t, err, game.ErrUnknownCard)
	})
}

func TestStepAfterFinish(t *testing.T) {
	e := newEngine(t, game.Config{
		Map:           twoLines,
		Cards:         supply("n2", "transfer", "skip2"),
		Deterministic: true,
	}, player.MaxFit)

	_, _, err := e.Run()
	require.NoError(t, err)
	require.NoError(t, e.Step())
	require.Equal(t, 3, e.Turn, "A finished game takes no more turns")
}

func TestAllProfilesFinish(t *testing.T) {
	maps := map[string]game.Map{"metro-city": game.MetroCity, "tube-town": game.TubeTown}
	decks := map[string]game.CardSupply{"gamewright": game.GamewrightCards, "ozaku": game.OzakuCards}

	for _, profile := range player.Profiles() {
		for mapName, m := range maps {
			for deckName, cards := range decks {
				for seed := uint64(1); seed <= 5; seed++ {
					e := newEngine(t, game.Config{Map: m, Cards: cards, Seed: seed}, profile)

					score, metric, err := e.Run()
					require.NoError(t, err, "%s on %s with %s, seed %d", profile, mapName, deckName, seed)
					require.True(t, e.Board.StationsFull())
					require.Equal(t, e.Board.ScoreBreakdown(), score)
					require.Equal(t, e.Turn, metric.Turns)
				}
			}
		}
	}
}

func TestLocalEngineSeed(t *testing.T) {
	p, err := player.ForProfile(player.MaxFit, nil)
	require.NoError(t, err)

	t.Run("shuffling from the configured seed", func(t *testing.T) {
		cfg := game.DefaultConfig()
		cfg.Seed = 3

		e, err := LocalEngine(cfg, p, nil)
		require.NoError(t, err)
		_, deck, err := cfg.Setup(cfg.NewRand())
		require.NoError(t, err)
		require.Equal(t, deck.Cards(), e.Deck.Cards())

		again, err := LocalEngine(cfg, p, nil)
		require.NoError(t, err)
		require.Equal(t, e.Deck.Cards(), again.Deck.Cards())
	})

	t.Run("dealing in supply order when deterministic", func(t *testing.T) {
		cfg := game.DefaultConfig()
		cfg.Seed = 3
		cfg.Deterministic = true

		e, err := LocalEngine(cfg, p, nil)
		require.NoError(t, err)
		cards, err := cfg.Cards.Build()
		require.NoError(t, err)
		require.Equal(t, cards, e.Deck.Cards())
	})
}

func TestStateString(t *testing.T) {
	require.Equal(t, "playing", Playing.String())
	require.Equal(t, "finished", Finished.String())
}
