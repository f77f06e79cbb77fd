package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RolloutMetric summarises one depth-charge throughput run.
type RolloutMetric struct {
	Goroutines   int
	Duration     time.Duration
	Rollouts     int
	StateChanges int
	TotalDepth   int
	MaxDepth     int
}

// Msecs is the elapsed time in milliseconds.
func (m RolloutMetric) Msecs() int64 {
	return m.Duration.Milliseconds()
}

func (m RolloutMetric) MeanDepth() float64 {
	if m.Rollouts == 0 {
		return 0
	}
	return float64(m.TotalDepth) / float64(m.Rollouts)
}

// RolloutsPerSecond is the throughput of the run.
func (m RolloutMetric) RolloutsPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Rollouts) / m.Duration.Seconds()
}

type MoveMetric struct {
	Step     int
	Role     int
	Player   string
	Move     int
	MoveText string
	Duration time.Duration
}

type GameMetric struct {
	Players    []string
	Goals      []int
	Terminal   bool
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(goroutines int)
	AddRollout(depth int)
	AddStateChanges(n int)
	Complete() RolloutMetric
}

type collector struct {
	goroutines   int
	startTime    time.Time
	rollouts     atomic.Int64
	stateChanges atomic.Int64
	totalDepth   atomic.Int64
	maxDepth     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
}

func (m *collector) AddRollout(depth int) {
	m.rollouts.Add(1)
	m.totalDepth.Add(int64(depth))
	for {
		cur := m.maxDepth.Load()
		if int64(depth) <= cur || m.maxDepth.CompareAndSwap(cur, int64(depth)) {
			return
		}
	}
}

func (m *collector) AddStateChanges(n int) {
	m.stateChanges.Add(int64(n))
}

func (m *collector) Complete() RolloutMetric {
	return RolloutMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Rollouts:     int(m.rollouts.Load()),
		StateChanges: int(m.stateChanges.Load()),
		TotalDepth:   int(m.totalDepth.Load()),
		MaxDepth:     int(m.maxDepth.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)    {}
func (m *dummyCollector) AddRollout(depth int)    {}
func (m *dummyCollector) AddStateChanges(n int)   {}
func (m *dummyCollector) Complete() RolloutMetric { return RolloutMetric{} }

// promCollector mirrors every observation into Prometheus series.
type promCollector struct {
	collector
	rollouts     prometheus.Counter
	stateChanges prometheus.Counter
	depth        prometheus.Histogram
}

// NewPrometheusCollector registers the rollout series on reg.
func NewPrometheusCollector(reg prometheus.Registerer) Collector {
	factory := promauto.With(reg)
	return &promCollector{
		rollouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "ggp_rollouts_total",
			Help: "Total completed depth charges",
		}),
		stateChanges: factory.NewCounter(prometheus.CounterOpts{
			Name: "ggp_state_changes_total",
			Help: "Total state transitions made by depth charges",
		}),
		depth: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ggp_rollout_depth",
			Help:    "Number of joint moves per depth charge",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

func (m *promCollector) AddRollout(depth int) {
	m.collector.AddRollout(depth)
	m.rollouts.Inc()
	m.depth.Observe(float64(depth))
}

func (m *promCollector) AddStateChanges(n int) {
	m.collector.AddStateChanges(n)
	m.stateChanges.Add(float64(n))
}
