package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/holo/internal/action"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	kinds map[action.Kind]*KindMetrics

	totalDispatches uint64
	totalErrors     uint64
	totalDuration   time.Duration
}

// KindMetrics holds metrics for one action kind.
type KindMetrics struct {
	Kind          action.Kind
	DispatchCount uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		kinds: make(map[action.Kind]*KindMetrics),
	}
}

// RecordDispatch records one dispatch.
func (m *Metrics) RecordDispatch(kind action.Kind, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration
	if err != nil {
		m.totalErrors++
	}

	km := m.kinds[kind]
	if km == nil {
		km = &KindMetrics{Kind: kind}
		m.kinds[kind] = km
	}
	km.DispatchCount++
	km.TotalDuration += duration
	km.LastDispatch = time.Now()
	if duration > km.MaxDuration {
		km.MaxDuration = duration
	}
	if err != nil {
		km.ErrorCount++
	}
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalErrors returns the number of dispatches that returned an error.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// AverageDuration returns the average dispatch duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.totalDispatches == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalDispatches)
}

// KindStats returns a copy of the metrics for one kind, or nil.
func (m *Metrics) KindStats(kind action.Kind) *KindMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	km := m.kinds[kind]
	if km == nil {
		return nil
	}
	c := *km
	return &c
}

// TopKinds returns the n most dispatched kinds.
func (m *Metrics) TopKinds(n int) []*KindMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*KindMetrics, 0, len(m.kinds))
	for _, km := range m.kinds {
		c := *km
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DispatchCount != out[j].DispatchCount {
			return out[i].DispatchCount > out[j].DispatchCount
		}
		return out[i].Kind < out[j].Kind
	})

	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kinds = make(map[action.Kind]*KindMetrics)
	m.totalDispatches = 0
	m.totalErrors = 0
	m.totalDuration = 0
}
