package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigSetup(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, MetroCity, cfg.Map)
	require.Equal(t, GamewrightCards, cfg.Cards)

	board, deck, err := cfg.Setup(cfg.NewRand())
	require.NoError(t, err)
	require.Len(t, board.Stations, len(MetroCity))
	require.Equal(t, 16, deck.Size())

	_, again, err := cfg.Setup(cfg.NewRand())
	require.NoError(t, err)
	require.Equal(t, deck.Cards(), again.Cards(), "The same seed deals the same deck")
}
