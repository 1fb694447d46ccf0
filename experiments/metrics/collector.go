package metrics

import (
	"time"

	"metro/game"
)

type GameMetric struct {
	Turns       int
	Reshuffles  int
	NodesMarked int
	Transfers   int // transfers scored
	Passes      int // free cards with nothing to mark
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}

// Collector accumulates the metrics of one game. It is not safe for concurrent use.
type Collector interface {
	Start()
	AddTurn(card game.Card)
	AddMarked(n int)
	AddTransfer()
	AddPass()
	Complete() GameMetric
}

type collector struct {
	metric GameMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.metric = GameMetric{StartTime: time.Now()}
}

func (m *collector) AddTurn(card game.Card) {
	m.metric.Turns++
	if card.Reshuffle() {
		m.metric.Reshuffles++
	}
}

func (m *collector) AddMarked(n int) {
	m.metric.NodesMarked += n
}

func (m *collector) AddTransfer() {
	m.metric.Transfers++
	m.metric.NodesMarked++
}

func (m *collector) AddPass() {
	m.metric.Passes++
}

func (m *collector) Complete() GameMetric {
	m.metric.EndTime = time.Now()
	m.metric.Duration = m.metric.EndTime.Sub(m.metric.StartTime)
	return m.metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddTurn(card game.Card) {}
func (m *dummyCollector) AddMarked(n int)        {}
func (m *dummyCollector) AddTransfer()           {}
func (m *dummyCollector) AddPass()               {}
func (m *dummyCollector) Complete() GameMetric   { return GameMetric{} }
