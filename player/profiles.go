package player

import (
	"fmt"
	"sort"

	"metro/game"

	"golang.org/x/exp/rand"
)

const (
	FirstAvailable     = "first-available"
	Random             = "random"
	RandomMaxTransfers = "random-max-transfers"
	MaxFit             = "max-fit"
	HoleCloser         = "hole-closer"
)

var profiles = map[string]func() []Option{
	// Always the first open station and the first open transfer.
	FirstAvailable: func() []Option {
		return []Option{
			WithNumber(FirstStation),
			WithTransfer(FirstTransfer),
		}
	},
	Random: func() []Option {
		return []Option{
			WithNumber(RandomStation),
			WithTransfer(RandomTransfer),
		}
	},
	RandomMaxTransfers: func() []Option {
		return []Option{
			WithNumber(RandomStation),
			WithTransfer(MaxTransferValue, RandomTransfer),
		}
	},
	MaxFit: func() []Option {
		return maxFit()
	},
	HoleCloser: func() []Option {
		return append(maxFit(), WithTransfer(CloseHoleTransfer, MaxTransferValue, RandomTransfer))
	},
}

func maxFit() []Option {
	return []Option{
		WithNumber(CompletePathNow, PerfectFit, MaximizePlacement, AnyIncompletePath, RandomStation),
		WithSkip(CompletePathNowSkip, MaximizeSkipReach, AnyIncompletePath, RandomStation),
		WithTransfer(MaxTransferValue, RandomTransfer),
		WithFree(CompletePathNowFree, CloseAHole, AnyIncompletePathFree, PassFree),
	}
}

// Profiles lists the names ForProfile accepts.
func Profiles() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForProfile returns a new player configured with the named strategy profile.
func ForProfile(name string, rng *rand.Rand) (*Player, error) {
	build, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q (have %v)", name, Profiles())
	}
	return New(name, append(build(), WithRand(rng))...), nil
}

var _ Decider = (*Player)(nil)

// compile-time check that the board satisfies the view the player reads from
var _ View = (*game.Board)(nil)
