package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarizes the search behind one decision. Episodes counts MCTS
// simulation cycles, genetic generations or hill-climbing probes.
type SearchMetric struct {
	Duration     time.Duration
	Episodes     int
	FullPlayouts int
	TreeSize     int
}

type MoveMetric struct {
	Step       int
	Action     string
	BudgetUsed int
	SearchMetric
}

type GameMetric struct {
	Agent      string
	Layout     string
	Seed       uint64
	Won        bool
	Lost       bool
	Score      float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start()
	AddEpisode()
	AddFullPlayout()
	SetTreeSize(size int)
	Complete() SearchMetric
}

type collector struct {
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	treeSize     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.treeSize.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) SetTreeSize(size int) {
	m.treeSize.Store(int32(size))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		TreeSize:     int(m.treeSize.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) SetTreeSize(int)        {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
