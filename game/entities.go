package game

import "fmt"

type NodeID int

// Node is a single spot on the board. Marking is one-way.
type Node struct {
	ID       NodeID
	Marked   bool
	Transfer *Transfer // nil unless two or more station paths share this node
}

func (n *Node) mark() error {
	if n.Marked {
		return fmt.Errorf("node %d: %w", n.ID, ErrAlreadyMarked)
	}
	n.Marked = true
	return nil
}

// Station is one route on the map. Every action taken against the station
// records a box value; the station is full once all of its boxes are used.
type Station struct {
	Name      string
	Path      []NodeID
	HighValue int // bonus when the whole path is marked
	LowValue  int
	NumBoxes  int
	Boxes     []int
}

func (s *Station) Full() bool {
	return len(s.Boxes) == s.NumBoxes
}

func (s *Station) RemainingBoxes() int {
	return s.NumBoxes - len(s.Boxes)
}

func (s *Station) markBox(value int) error {
	if s.Full() {
		return fmt.Errorf("station %s: %w", s.Name, ErrStationFull)
	}
	s.Boxes = append(s.Boxes, value)
	return nil
}

// Transfer is created for every node shared by more than one station path.
type Transfer struct {
	Node     NodeID
	HitCount int // number of path occurrences of Node across all stations
	Scored   bool
}

func (t *Transfer) Value() int {
	return 2 * t.HitCount
}

func (t *Transfer) markScored() error {
	if t.Scored {
		return fmt.Errorf("transfer at node %d: %w", t.Node, ErrAlreadyMarked)
	}
	t.Scored = true
	return nil
}
