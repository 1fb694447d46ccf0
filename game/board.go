package game

import "fmt"

// Board owns every station, node and transfer of one game.
type Board struct {
	Stations  []*Station
	Nodes     map[NodeID]*Node
	Transfers []*Transfer // in order of first appearance on the map
	nodeOrder []NodeID
}

// NewBoard builds a fresh board from a map. A node that occurs
// more than once across all paths, repeats within one path included, becomes
// a transfer worth two points per occurrence.
func NewBoard(m Map) (*Board, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	b := &Board{Nodes: make(map[NodeID]*Node)}
	hits := make(map[NodeID]int)
	for _, r := range m {
		path := make([]NodeID, len(r.Path))
		copy(path, r.Path)
		b.Stations = append(b.Stations, &Station{
			Name:      r.Name,
			Path:      path,
			HighValue: r.HighValue,
			LowValue:  r.LowValue,
			NumBoxes:  r.NumBoxes,
		})

		for _, id := range r.Path {
			if _, ok := b.Nodes[id]; !ok {
				b.Nodes[id] = &Node{ID: id}
				b.nodeOrder = append(b.nodeOrder, id)
			}
			hits[id]++
		}
	}

	for _, id := range b.nodeOrder {
		if hits[id] < 2 {
			continue
		}
		t := &Transfer{Node: id, HitCount: hits[id]}
		b.Nodes[id].Transfer = t
		b.Transfers = append(b.Transfers, t)
	}
	return b, nil
}

// NodeOrder returns node ids in order of first appearance on the map.
func (b *Board) NodeOrder() []NodeID {
	out := make([]NodeID, len(b.nodeOrder))
	copy(out, b.nodeOrder)
	return out
}

func (b *Board) NodeMarked(id NodeID) bool {
	n, ok := b.Nodes[id]
	return ok && n.Marked
}

func (b *Board) NodesMarked(ids []NodeID) bool {
	for _, id := range ids {
		if !b.NodeMarked(id) {
			return false
		}
	}
	return true
}

// NodeStates returns copies of the nodes with the given ids, in order.
func (b *Board) NodeStates(ids ...NodeID) []Node {
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := b.Nodes[id]; ok {
			out = append(out, *n)
		} else {
			out = append(out, Node{ID: id})
		}
	}
	return out
}

func (b *Board) StationPathCompleted(s *Station) bool {
	return b.NodesMarked(s.Path)
}

// AvailableStations returns the stations that still have a free box, in map order.
func (b *Board) AvailableStations() ([]*Station, error) {
	var available []*Station
	for _, s := range b.Stations {
		if !s.Full() {
			available = append(available, s)
		}
	}
	if len(available) == 0 {
		return nil, ErrAllStationsFull
	}
	return available, nil
}

// AvailableTransfers returns the transfers whose node is still unmarked.
func (b *Board) AvailableTransfers() []*Transfer {
	var available []*Transfer
	for _, t := range b.Transfers {
		if !b.NodeMarked(t.Node) {
			available = append(available, t)
		}
	}
	return available
}

func (b *Board) StationsFull() bool {
	for _, s := range b.Stations {
		if !s.Full() {
			return false
		}
	}
	return true
}

// RemainingBoxes is the number of unused boxes across all stations.
func (b *Board) RemainingBoxes() int {
	total := 0
	for _, s := range b.Stations {
		total += s.RemainingBoxes()
	}
	return total
}

func (b *Board) NumEmptyNodes() int {
	count := 0
	for _, n := range b.Nodes {
		if !n.Marked {
			count++
		}
	}
	return count
}

// NumRemainingPathNodes counts the distinct unmarked nodes that can still be
// reached through a station with a free box.
func (b *Board) NumRemainingPathNodes() int {
	seen := make(map[NodeID]bool)
	count := 0
	for _, s := range b.Stations {
		if s.Full() {
			continue
		}
		for _, id := range s.Path {
			if seen[id] {
				continue
			}
			seen[id] = true
			if !b.NodeMarked(id) {
				count++
			}
		}
	}
	return count
}

// CountStationPathTransfers counts the transfer nodes along a station's path.
func (b *Board) CountStationPathTransfers(s *Station) int {
	count := 0
	for _, id := range s.Path {
		if n, ok := b.Nodes[id]; ok && n.Transfer != nil {
			count++
		}
	}
	return count
}

func (b *Board) MarkNode(id NodeID) error {
	n, ok := b.Nodes[id]
	if !ok {
		return fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return n.mark()
}

// MarkTransfer marks the transfer's node, scores the transfer and spends one
// box of s (recorded as zero) to pay for the action. s does not need to be on
// the transfer's paths.
func (b *Board) MarkTransfer(t *Transfer, s *Station) error {
	if b.NodeMarked(t.Node) {
		return fmt.Errorf("transfer at node %d: %w", t.Node, ErrAlreadyMarked)
	}
	if s.Full() {
		return fmt.Errorf("station %s: %w", s.Name, ErrStationFull)
	}
	if err := b.MarkNode(t.Node); err != nil {
		return err
	}
	if err := t.markScored(); err != nil {
		return err
	}
	return s.markBox(0)
}

// MarkBox spends one box of s without marking anything.
func (b *Board) MarkBox(s *Station, value int) error {
	return s.markBox(value)
}

type advanceOptions struct {
	free bool
	skip bool
}

type AdvanceOption func(o *advanceOptions)

// WithFree advances without spending a box.
func WithFree() AdvanceOption {
	return func(o *advanceOptions) {
		o.free = true
	}
}

// WithSkip lets the advance pass over marked nodes instead of stopping at them.
func WithSkip() AdvanceOption {
	return func(o *advanceOptions) {
		o.skip = true
	}
}

// AdvanceStationPath marks up to n nodes of s, starting from the first
// unmarked node of its path, and returns how many were marked.
//
// Unless WithFree is given a box worth n is spent first, whatever the outcome.
// Without WithSkip the advance stops at the first marked node after the
// starting point; with it, marked nodes are passed over at no cost.
func (b *Board) AdvanceStationPath(n int, s *Station, opts ...AdvanceOption) (int, error) {
	if n < 1 {
		panic(fmt.Sprintf("advance count must be positive, got %d", n))
	}
	o := advanceOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.free {
		if err := s.markBox(n); err != nil {
			return 0, err
		}
	}

	if b.StationPathCompleted(s) {
		return 0, nil
	}

	i := 0
	for i < len(s.Path) && b.NodeMarked(s.Path[i]) {
		i++
	}
	if i == len(s.Path) {
		return 0, fmt.Errorf("station %s: %w", s.Name, ErrNoStartNode)
	}

	remaining := n
	if err := b.MarkNode(s.Path[i]); err != nil {
		return 0, err
	}
	remaining--

	for i++; remaining > 0 && i < len(s.Path); i++ {
		id := s.Path[i]
		if b.NodeMarked(id) {
			if o.skip {
				continue
			}
			break
		}
		if err := b.MarkNode(id); err != nil {
			return n - remaining, err
		}
		remaining--
	}

	return n - remaining, nil
}
