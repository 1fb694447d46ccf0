package game

// ScoreBreakdown holds the components of a board's score.
type ScoreBreakdown struct {
	Total                 int `json:"total"`
	CompletedStationScore int `json:"completed_station_score"`
	TransferScore         int `json:"transfer_score"`
	EmptyNodeScore        int `json:"empty_node_score"`
	NumEmptyNodes         int `json:"num_empty_nodes"`
}

func (b *Board) Score() int {
	return b.CompletedStationScore() + b.TransferScore() + b.EmptyNodeScore()
}

func (b *Board) ScoreBreakdown() ScoreBreakdown {
	sb := ScoreBreakdown{
		CompletedStationScore: b.CompletedStationScore(),
		TransferScore:         b.TransferScore(),
		EmptyNodeScore:        b.EmptyNodeScore(),
		NumEmptyNodes:         b.NumEmptyNodes(),
	}
	sb.Total = sb.CompletedStationScore + sb.TransferScore + sb.EmptyNodeScore
	return sb
}

// CompletedStationScore sums the high value of every station whose whole path is marked.
func (b *Board) CompletedStationScore() int {
	total := 0
	for _, s := range b.Stations {
		if b.StationPathCompleted(s) {
			total += s.HighValue
		}
	}
	return total
}

func (b *Board) TransferScore() int {
	total := 0
	for _, t := range b.Transfers {
		if t.Scored {
			total += t.Value()
		}
	}
	return total
}

func (b *Board) EmptyNodeScore() int {
	return EmptyNodePenalty(b.NumEmptyNodes())
}

// EmptyNodePenalty is the (non-positive) score for leaving empty nodes on the board.
//
//	0-4: 0, 5: -1, 6: -2, 7: -3, then -1 per pair from 8-9: -4 up to 18-19: -9, 20+: -10
func EmptyNodePenalty(empty int) int {
	switch {
	case empty <= 4:
		return 0
	case empty <= 7:
		return -(empty - 4)
	case empty < 20:
		return -(4 + (empty-8)/2)
	default:
		return -10
	}
}

// StationSnapshot is a read-only copy of a station and the marks on its path.
type StationSnapshot struct {
	Name      string   `json:"name"`
	NumBoxes  int      `json:"num_boxes"`
	Boxes     []int    `json:"boxes"`
	Path      []NodeID `json:"path"`
	Marked    []bool   `json:"marked"`
	Completed bool     `json:"completed"`
}

// BoardSnapshot is a read-only copy of the board, for diagnostics.
type BoardSnapshot struct {
	Stations    []StationSnapshot `json:"stations"`
	MarkedNodes map[NodeID]bool   `json:"marked_nodes"`
	Score       ScoreBreakdown    `json:"score"`
}

func (b *Board) Snapshot() BoardSnapshot {
	snap := BoardSnapshot{
		Stations:    make([]StationSnapshot, 0, len(b.Stations)),
		MarkedNodes: make(map[NodeID]bool, len(b.Nodes)),
		Score:       b.ScoreBreakdown(),
	}
	for _, s := range b.Stations {
		ss := StationSnapshot{
			Name:      s.Name,
			NumBoxes:  s.NumBoxes,
			Boxes:     append([]int(nil), s.Boxes...),
			Path:      append([]NodeID(nil), s.Path...),
			Marked:    make([]bool, len(s.Path)),
			Completed: b.StationPathCompleted(s),
		}
		for i, id := range s.Path {
			ss.Marked[i] = b.NodeMarked(id)
		}
		snap.Stations = append(snap.Stations, ss)
	}
	for id, n := range b.Nodes {
		snap.MarkedNodes[id] = n.Marked
	}
	return snap
}
