package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Strategy    string
	Depth       int
	Duration    time.Duration
	Options     int // options scored at the root
	Evaluations int
	Applies     int
}

type MoveMetric struct {
	Turn   int
	Player int // seat
	Score  float64
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // seat
	Winner         int // seat, -1 when the turn cap ended the game
	Scores         []int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	Turns          int
}

type Collector interface {
	Start(strategy string, depth int)
	AddOption()
	AddEvaluation()
	AddApply()
	Complete() SearchMetric
}

type collector struct {
	strategy    string
	depth       int
	startTime   time.Time
	options     atomic.Int32
	evaluations atomic.Int32
	applies     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string, depth int) {
	m.startTime = time.Now()
	m.strategy = strategy
	m.depth = depth
	m.options.Store(0)
	m.evaluations.Store(0)
	m.applies.Store(0)
}

func (m *collector) AddOption() {
	m.options.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddApply() {
	m.applies.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:    m.strategy,
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Options:     int(m.options.Load()),
		Evaluations: int(m.evaluations.Load()),
		Applies:     int(m.applies.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, depth int) {}
func (m *dummyCollector) AddOption()                       {}
func (m *dummyCollector) AddEvaluation()                   {}
func (m *dummyCollector) AddApply()                        {}
func (m *dummyCollector) Complete() SearchMetric           { return SearchMetric{} }
