package player

import (
	"metro/game"
	"metro/utils"
)

// Resolver is one heuristic in a fallback chain. Resolve returns false to
// defer to the next resolver.
type Resolver[C any] struct {
	Name    string
	Resolve func(t *Turn, card game.Card) (C, bool)
}

// TransferChoice pays for a transfer card with a box of Station. A nil
// Transfer spends the box without marking anything.
type TransferChoice struct {
	Transfer *game.Transfer
	Station  *game.Station
}

// FreeChoice marks Node, unless Pass is set.
type FreeChoice struct {
	Node game.NodeID
	Pass bool
}

func highValue(s *game.Station) int { return s.HighValue }

func transferValue(t *game.Transfer) int { return t.Value() }

// Number card resolvers.

// CompletePathNow picks the most valuable station whose untouched tail the
// card can mark in full.
var CompletePathNow = Resolver[*game.Station]{
	Name: "complete-path-now",
	Resolve: func(t *Turn, card game.Card) (*game.Station, bool) {
		candidates := utils.Filter(t.IncompleteStations(), func(s *game.Station) bool {
			tail := t.TailPath(s)
			return countUnmarked(tail) == len(tail) && card.Number >= len(tail)
		})
		return utils.MaxBy(candidates, highValue)
	},
}

// PerfectFit picks the first station whose next unmarked run is exactly the card's length.
var PerfectFit = Resolver[*game.Station]{
	Name: "perfect-fit",
	Resolve: func(t *Turn, card game.Card) (*game.Station, bool) {
		for _, s := range t.IncompleteStations() {
			if len(t.NextUnmarkedLink(s)) == card.Number {
				return s, true
			}
		}
		return nil, false
	},
}

// MaximizePlacement picks the station with the longest next unmarked run.
var MaximizePlacement = Resolver[*game.Station]{
	Name: "maximize-placement",
	Resolve: func(t *Turn, _ game.Card) (*game.Station, bool) {
		return utils.MaxBy(t.IncompleteStations(), func(s *game.Station) int {
			return len(t.NextUnmarkedLink(s))
		})
	},
}

var AnyIncompletePath = Resolver[*game.Station]{
	Name: "any-incomplete-path",
	Resolve: func(t *Turn, _ game.Card) (*game.Station, bool) {
		s := t.AnyIncompleteStation()
		return s, s != nil
	},
}

var RandomStation = Resolver[*game.Station]{
	Name: "random-station",
	Resolve: func(t *Turn, _ game.Card) (*game.Station, bool) {
		s := t.AnyStation()
		return s, s != nil
	},
}

var FirstStation = Resolver[*game.Station]{
	Name: "first-station",
	Resolve: func(t *Turn, _ game.Card) (*game.Station, bool) {
		stations := t.AvailableStations()
		if len(stations) == 0 {
			return nil, false
		}
		return stations[0], true
	},
}

// Skip card resolvers.

// CompletePathNowSkip picks the most valuable station whose remaining
// unmarked nodes the card can reach by skipping over marked ones.
var CompletePathNowSkip = Resolver[*game.Station]{
	Name: "complete-path-now-skip",
	Resolve: func(t *Turn, card game.Card) (*game.Station, bool) {
		candidates := utils.Filter(t.IncompleteStations(), func(s *game.Station) bool {
			return card.Number >= countUnmarked(t.TailPath(s))
		})
		return utils.MaxBy(candidates, highValue)
	},
}

// MaximizeSkipReach picks the station where the card reaches furthest along the tail.
var MaximizeSkipReach = Resolver[*game.Station]{
	Name: "maximize-skip-reach",
	Resolve: func(t *Turn, card game.Card) (*game.Station, bool) {
		return utils.MaxBy(t.IncompleteStations(), func(s *game.Station) int {
			return skipReach(t.TailPath(s), card.Number)
		})
	},
}

// skipReach is the tail index of the first unmarked node a skip of n would
// leave behind, or the tail length if it would mark every unmarked node.
func skipReach(tail []game.Node, n int) int {
	for i, node := range tail {
		if node.Marked {
			continue
		}
		if n == 0 {
			return i
		}
		n--
	}
	return len(tail)
}

// Transfer card resolvers.

// MaxTransferValue takes the most valuable open transfer and pays with a random station.
var MaxTransferValue = Resolver[TransferChoice]{
	Name: "max-transfer-value",
	Resolve: func(t *Turn, _ game.Card) (TransferChoice, bool) {
		best, ok := utils.MaxBy(t.AvailableTransfers(), transferValue)
		if !ok {
			return TransferChoice{}, false
		}
		return TransferChoice{Transfer: best, Station: t.AnyStation()}, true
	},
}

// CloseHoleTransfer takes the most valuable open transfer that fills a hole.
var CloseHoleTransfer = Resolver[TransferChoice]{
	Name: "close-hole-transfer",
	Resolve: func(t *Turn, _ game.Card) (TransferChoice, bool) {
		holes := utils.Filter(t.AvailableTransfers(), func(tr *game.Transfer) bool {
			return t.IsHole(tr.Node)
		})
		best, ok := utils.MaxBy(holes, transferValue)
		if !ok {
			return TransferChoice{}, false
		}
		return TransferChoice{Transfer: best, Station: t.AnyStation()}, true
	},
}

// RandomTransfer always resolves; with no open transfer it only spends a box.
var RandomTransfer = Resolver[TransferChoice]{
	Name: "random-transfer",
	Resolve: func(t *Turn, _ game.Card) (TransferChoice, bool) {
		tr, _ := utils.Sample(t.rng, t.AvailableTransfers())
		return TransferChoice{Transfer: tr, Station: t.AnyStation()}, true
	},
}

var FirstTransfer = Resolver[TransferChoice]{
	Name: "first-transfer",
	Resolve: func(t *Turn, _ game.Card) (TransferChoice, bool) {
		var tr *game.Transfer
		if transfers := t.AvailableTransfers(); len(transfers) > 0 {
			tr = transfers[0]
		}
		return TransferChoice{Transfer: tr, Station: t.AvailableStations()[0]}, true
	},
}

// Free card resolvers.

// CompletePathNowFree marks the last missing node of the most valuable station.
var CompletePathNowFree = Resolver[FreeChoice]{
	Name: "complete-path-now-free",
	Resolve: func(t *Turn, _ game.Card) (FreeChoice, bool) {
		candidates := utils.Filter(t.IncompleteStations(), func(s *game.Station) bool {
			return countUnmarked(t.TailPath(s)) == 1
		})
		s, ok := utils.MaxBy(candidates, highValue)
		if !ok {
			return FreeChoice{}, false
		}
		return FreeChoice{Node: t.TailPath(s)[0].ID}, true
	},
}

// CloseAHole marks a random unmarked transfer node boxed in by marked nodes.
var CloseAHole = Resolver[FreeChoice]{
	Name: "close-a-hole",
	Resolve: func(t *Turn, _ game.Card) (FreeChoice, bool) {
		var holes []game.NodeID
		seen := make(map[game.NodeID]bool)
		for _, s := range t.IncompleteStations() {
			for _, node := range t.TailPath(s) {
				if node.Marked || node.Transfer == nil || seen[node.ID] {
					continue
				}
				if t.IsHole(node.ID) {
					seen[node.ID] = true
					holes = append(holes, node.ID)
				}
			}
		}
		id, ok := utils.Sample(t.rng, holes)
		if !ok {
			return FreeChoice{}, false
		}
		return FreeChoice{Node: id}, true
	},
}

// AnyIncompletePathFree marks the first unmarked node of a random incomplete station.
var AnyIncompletePathFree = Resolver[FreeChoice]{
	Name: "any-incomplete-path-free",
	Resolve: func(t *Turn, _ game.Card) (FreeChoice, bool) {
		s := t.AnyIncompleteStation()
		if s == nil {
			return FreeChoice{}, false
		}
		return FreeChoice{Node: t.TailPath(s)[0].ID}, true
	},
}

var PassFree = Resolver[FreeChoice]{
	Name: "pass",
	Resolve: func(*Turn, game.Card) (FreeChoice, bool) {
		return FreeChoice{Pass: true}, true
	},
}
