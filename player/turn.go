package player

import (
	"metro/game"
	"metro/utils"

	"golang.org/x/exp/rand"
)

// View is the read-only part of the board a decision is made from.
type View interface {
	AvailableStations() ([]*game.Station, error)
	AvailableTransfers() []*game.Transfer
	NodeStates(ids ...game.NodeID) []game.Node
}

// Turn is the state of a single decision. It memoizes the stations, transfers
// and tail paths it reads from the view, so it must not outlive the turn.
type Turn struct {
	view       View
	rng        *rand.Rand
	stations   []*game.Station
	transfers  []*game.Transfer
	incomplete []*game.Station
	tails      map[*game.Station][]game.Node
}

func newTurn(view View, rng *rand.Rand) (*Turn, error) {
	stations, err := view.AvailableStations()
	if err != nil {
		return nil, err
	}
	return &Turn{
		view:     view,
		rng:      rng,
		stations: stations,
		tails:    make(map[*game.Station][]game.Node, len(stations)),
	}, nil
}

// AvailableStations are the stations with at least one free box, in map order.
func (t *Turn) AvailableStations() []*game.Station {
	return t.stations
}

func (t *Turn) AvailableTransfers() []*game.Transfer {
	if t.transfers == nil {
		t.transfers = t.view.AvailableTransfers()
		if t.transfers == nil {
			t.transfers = []*game.Transfer{}
		}
	}
	return t.transfers
}

// TailPath is the station's path from its first unmarked node onwards.
func (t *Turn) TailPath(s *game.Station) []game.Node {
	if tail, ok := t.tails[s]; ok {
		return tail
	}
	nodes := t.view.NodeStates(s.Path...)
	i := 0
	for i < len(nodes) && nodes[i].Marked {
		i++
	}
	tail := nodes[i:]
	t.tails[s] = tail
	return tail
}

// NextUnmarkedLink is the run of unmarked nodes at the start of the tail path.
func (t *Turn) NextUnmarkedLink(s *game.Station) []game.Node {
	tail := t.TailPath(s)
	i := 0
	for i < len(tail) && !tail[i].Marked {
		i++
	}
	return tail[:i]
}

// IncompleteStations are the available stations whose path is not fully marked.
func (t *Turn) IncompleteStations() []*game.Station {
	if t.incomplete == nil {
		t.incomplete = utils.Filter(t.stations, func(s *game.Station) bool {
			return len(t.TailPath(s)) > 0
		})
		if t.incomplete == nil {
			t.incomplete = []*game.Station{}
		}
	}
	return t.incomplete
}

func (t *Turn) AnyStation() *game.Station {
	s, _ := utils.Sample(t.rng, t.stations)
	return s
}

// AnyIncompleteStation returns nil if every available station's path is complete.
func (t *Turn) AnyIncompleteStation() *game.Station {
	s, _ := utils.Sample(t.rng, t.IncompleteStations())
	return s
}

// IsHole reports whether the node sits inside the tail path of some
// incomplete station with marked nodes on both sides of it.
func (t *Turn) IsHole(id game.NodeID) bool {
	for _, s := range t.IncompleteStations() {
		tail := t.TailPath(s)
		idx := utils.FindIndex(nodeIDs(tail), id)
		if idx <= 0 || idx == len(tail)-1 {
			continue
		}
		if tail[idx-1].Marked && tail[idx+1].Marked {
			return true
		}
	}
	return false
}

func nodeIDs(nodes []game.Node) []game.NodeID {
	ids := make([]game.NodeID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func countUnmarked(nodes []game.Node) int {
	count := 0
	for _, n := range nodes {
		if !n.Marked {
			count++
		}
	}
	return count
}
