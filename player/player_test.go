package player

import (
	"testing"

	"metro/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newBoard(t *testing.T, m game.Map, marked ...game.NodeID) *game.Board {
	t.Helper()
	b, err := game.NewBoard(m)
	require.NoError(t, err)
	for _, id := range marked {
		require.NoError(t, b.MarkNode(id))
	}
	return b
}

func stationNamed(b *game.Board, name string) *game.Station {
	for _, s := range b.Stations {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func TestNumberChain(t *testing.T) {
	m := game.Map{
		{Name: "a", NumBoxes: 2, HighValue: 1, Path: []game.NodeID{1, 2, 3}},
		{Name: "b", NumBoxes: 2, HighValue: 9, Path: []game.NodeID{4, 5}},
	}

	t.Run("preferring the most valuable completion", func(t *testing.T) {
		b := newBoard(t, m)
		p, err := ForProfile(MaxFit, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		s, err := p.HandleNumber(b, game.NewNumberCard(3))
		require.NoError(t, err)
		require.Same(t, stationNamed(b, "b"), s)
		require.Equal(t, map[string]int{"number/complete-path-now": 1}, p.Statistics())
	})

	t.Run("following chain order", func(t *testing.T) {
		b := newBoard(t, m)
		p := New("custom", WithNumber(PerfectFit, CompletePathNow), WithTransfer(FirstTransfer))

		s, err := p.HandleNumber(b, game.NewNumberCard(3))
		require.NoError(t, err)
		require.Same(t, stationNamed(b, "a"), s)
		require.Equal(t, map[string]int{"number/perfect-fit": 1}, p.Statistics())
	})

	t.Run("failing when every resolver defers", func(t *testing.T) {
		b := newBoard(t, m)
		p := New("picky", WithNumber(PerfectFit), WithTransfer(FirstTransfer))

		_, err := p.HandleNumber(b, game.NewNumberCard(7))
		require.ErrorIs(t, err, ErrUnresolved)
		require.Empty(t, p.Statistics())
	})

	t.Run("skip cards falling back to the number chain", func(t *testing.T) {
		b := newBoard(t, m)
		p := New("custom", WithNumber(FirstStation), WithTransfer(FirstTransfer))

		s, err := p.HandleSkip(b, game.NewSkipCard(2))
		require.NoError(t, err)
		require.Same(t, stationNamed(b, "a"), s)
		require.Equal(t, map[string]int{"number/first-station": 1}, p.Statistics())
	})

	t.Run("reporting a full board", func(t *testing.T) {
		b := newBoard(t, m)
		for _, s := range b.Stations {
			for i := 0; i < s.NumBoxes; i++ {
				require.NoError(t, b.MarkBox(s, 0))
			}
		}
		p, err := ForProfile(MaxFit, nil)
		require.NoError(t, err)

		_, err = p.HandleNumber(b, game.NewNumberCard(2))
		require.ErrorIs(t, err, game.ErrAllStationsFull)
	})
}

func TestMaximizePlacement(t *testing.T) {
	b := newBoard(t, game.Map{
		{Name: "short", NumBoxes: 2, HighValue: 9, Path: []game.NodeID{1, 2, 3, 4}},
		{Name: "long", NumBoxes: 2, HighValue: 1, Path: []game.NodeID{5, 6, 7, 8}},
	}, 3)
	p := New("placement", WithNumber(MaximizePlacement), WithTransfer(FirstTransfer))

	s, err := p.HandleNumber(b, game.NewNumberCard(5))
	require.NoError(t, err)
	require.Same(t, stationNamed(b, "long"), s, "The run on short stops at node 3")
}

func TestSkipReach(t *testing.T) {
	tail := []game.Node{{ID: 1}, {ID: 2, Marked: true}, {ID: 3}, {ID: 4}}

	require.Equal(t, 0, skipReach(tail, 0))
	require.Equal(t, 3, skipReach(tail, 2))
	require.Equal(t, 4, skipReach(tail, 3))
	require.Equal(t, 4, skipReach(tail, 9))
}

func TestTransferChain(t *testing.T) {
	m := game.Map{
		{Name: "red", NumBoxes: 1, HighValue: 3, Path: []game.NodeID{1, 2, 3, 6}},
		{Name: "blue", NumBoxes: 2, HighValue: 5, Path: []game.NodeID{4, 3, 5, 1}},
		{Name: "green", NumBoxes: 2, HighValue: 5, Path: []game.NodeID{1, 7}},
	}

	t.Run("taking the most valuable transfer", func(t *testing.T) {
		b := newBoard(t, m)
		p, err := ForProfile(MaxFit, rand.New(rand.NewSource(4)))
		require.NoError(t, err)

		choice, err := p.HandleTransfer(b, game.NewTransferCard())
		require.NoError(t, err)
		require.Equal(t, game.NodeID(1), choice.Transfer.Node)
		require.NotNil(t, choice.Station)
	})

	t.Run("spending a box when no transfer is open", func(t *testing.T) {
		b := newBoard(t, m, 1, 3)
		p, err := ForProfile(MaxFit, rand.New(rand.NewSource(4)))
		require.NoError(t, err)

		choice, err := p.HandleTransfer(b, game.NewTransferCard())
		require.NoError(t, err)
		require.Nil(t, choice.Transfer)
		require.NotNil(t, choice.Station)
		require.Equal(t, map[string]int{"transfer/random-transfer": 1}, p.Statistics())
	})

	t.Run("closing holes first", func(t *testing.T) {
		b := newBoard(t, m, 2, 6)
		p, err := ForProfile(HoleCloser, rand.New(rand.NewSource(4)))
		require.NoError(t, err)

		choice, err := p.HandleTransfer(b, game.NewTransferCard())
		require.NoError(t, err)
		require.Equal(t, game.NodeID(3), choice.Transfer.Node, "Node 3 sits between two marked nodes on red")
		require.Equal(t, map[string]int{"transfer/close-hole-transfer": 1}, p.Statistics())
	})
}

func TestFreeChain(t *testing.T) {
	holes := game.Map{
		{Name: "c", NumBoxes: 2, HighValue: 5, Path: []game.NodeID{11, 12, 13, 14, 15}},
		{Name: "d", NumBoxes: 2, HighValue: 2, Path: []game.NodeID{13, 16}},
	}

	t.Run("closing a hole", func(t *testing.T) {
		b := newBoard(t, holes, 12, 14)
		p, err := ForProfile(MaxFit, rand.New(rand.NewSource(2)))
		require.NoError(t, err)

		choice, err := p.HandleFree(b, game.NewFreeCard())
		require.NoError(t, err)
		require.Equal(t, FreeChoice{Node: 13}, choice)
		require.Equal(t, map[string]int{"free/close-a-hole": 1}, p.Statistics())
	})

	t.Run("completing a path before closing holes", func(t *testing.T) {
		m := append(game.Map{}, holes...)
		m = append(m, game.Route{Name: "e", NumBoxes: 1, HighValue: 1, Path: []game.NodeID{20, 21}})
		b := newBoard(t, m, 12, 14, 20)
		p, err := ForProfile(MaxFit, rand.New(rand.NewSource(2)))
		require.NoError(t, err)

		choice, err := p.HandleFree(b, game.NewFreeCard())
		require.NoError(t, err)
		require.Equal(t, FreeChoice{Node: 21}, choice)
		require.Equal(t, map[string]int{"free/complete-path-now-free": 1}, p.Statistics())
	})

	t.Run("passing by default", func(t *testing.T) {
		b := newBoard(t, holes)
		p, err := ForProfile(FirstAvailable, nil)
		require.NoError(t, err)

		choice, err := p.HandleFree(b, game.NewFreeCard())
		require.NoError(t, err)
		require.True(t, choice.Pass)
		require.Equal(t, map[string]int{"free/pass": 1}, p.Statistics())
	})
}

func TestTurnCache(t *testing.T) {
	b := newBoard(t, game.Map{{Name: "a", NumBoxes: 2, HighValue: 1, Path: []game.NodeID{1, 2, 3}}})
	s := b.Stations[0]

	turn, err := newTurn(b, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, turn.TailPath(s), 3)

	require.NoError(t, b.MarkNode(1))
	require.Len(t, turn.TailPath(s), 3, "A turn keeps what it read")

	next, err := newTurn(b, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, next.TailPath(s), 2, "A new turn reads the board again")
	require.Equal(t, []game.NodeID{2, 3}, nodeIDs(next.NextUnmarkedLink(s)))
}

func TestProfiles(t *testing.T) {
	require.Equal(t, []string{FirstAvailable, HoleCloser, MaxFit, Random, RandomMaxTransfers}, Profiles())

	for _, name := range Profiles() {
		p, err := ForProfile(name, nil)
		require.NoError(t, err)
		require.Equal(t, name, p.Name())
	}

	_, err := ForProfile("clairvoyant", nil)
	require.Error(t, err)
}

func TestNewPanicsWithoutChains(t *testing.T) {
	require.Panics(t, func() { New("empty") })
	require.Panics(t, func() { New("numbers only", WithNumber(FirstStation)) })
}

func TestChainsOverMarkedGaps(t *testing.T) {
	m := game.Map{
		{Name: "gap", NumBoxes: 2, HighValue: 9, Path: []game.NodeID{1, 2, 3}},
		{Name: "plain", NumBoxes: 2, HighValue: 1, Path: []game.NodeID{5, 6, 7, 8, 9}},
	}

	t.Run("number cards only complete untouched tails", func(t *testing.T) {
		b := newBoard(t, m, 2)
		p, err := ForProfile(MaxFit, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		s, err := p.HandleNumber(b, game.NewNumberCard(3))
		require.NoError(t, err)
		require.Same(t, stationNamed(b, "plain"), s, "A number card would stop at node 2 on gap")
		require.Equal(t, map[string]int{"number/maximize-placement": 1}, p.Statistics())
	})

	t.Run("skip cards complete through the gap", func(t *testing.T) {
		b := newBoard(t, m, 2)
		p, err := ForProfile(MaxFit, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		s, err := p.HandleSkip(b, game.NewSkipCard(2))
		require.NoError(t, err)
		require.Same(t, stationNamed(b, "gap"), s)
		require.Equal(t, map[string]int{"skip/complete-path-now-skip": 1}, p.Statistics())
	})

	t.Run("skip cards reaching furthest", func(t *testing.T) {
		b := newBoard(t, m, 2)
		p, err := ForProfile(MaxFit, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		s, err := p.HandleSkip(b, game.NewSkipCard(1))
		require.NoError(t, err)
		require.Same(t, stationNamed(b, "gap"), s, "One skip reaches node 3 on gap but only node 6 on plain")
		require.Equal(t, map[string]int{"skip/maximize-skip-reach": 1}, p.Statistics())
	})

	t.Run("reshuffle cards using the number chain", func(t *testing.T) {
		b := newBoard(t, m, 2)
		p, err := ForProfile(MaxFit, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		s, err := p.HandleReshuffle(b, game.NewReshuffleCard(6))
		require.NoError(t, err)
		require.Same(t, stationNamed(b, "plain"), s, "Gap is worth more but its tail is not untouched")
		require.Equal(t, map[string]int{"number/complete-path-now": 1}, p.Statistics())
	})
}

func TestFreeOnOpenPath(t *testing.T) {
	b := newBoard(t, game.Map{{Name: "plain", NumBoxes: 2, HighValue: 1, Path: []game.NodeID{5, 6, 7}}})
	p, err := ForProfile(MaxFit, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	choice, err := p.HandleFree(b, game.NewFreeCard())
	require.NoError(t, err)
	require.Equal(t, FreeChoice{Node: 5}, choice)
	require.Equal(t, map[string]int{"free/any-incomplete-path-free": 1}, p.Statistics())
}
