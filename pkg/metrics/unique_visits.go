package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type uniqueVisits struct {
	counter       prometheus.Gauge
	visitorsCache map[string]struct{}
	mu            sync.RWMutex
}

// Visits
const visitCountPerWeek = "calculator_visits_count_per_week"

var totalUniqueVisitPerWeekMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Subsystem: durationPlanner,
		Name:      visitCountPerWeek,
		Help:      "metrics to record the number of unique visitors of the calculator page per week",
	},
)

// UniqueVisitsPerWeek counts distinct visitors of the calculator page. The
// metrics server resets it weekly.
var UniqueVisitsPerWeek = &uniqueVisits{
	counter:       totalUniqueVisitPerWeekMetric,
	visitorsCache: make(map[string]struct{}),
}

func (v *uniqueVisits) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.visitorsCache = make(map[string]struct{})
	v.counter.Set(0)
}

func (v *uniqueVisits) IncreaseTotalUniqueVisit(visitor string) {
	if visitor == "" {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.visitorsCache[visitor]; exists {
		return
	}

	v.visitorsCache[visitor] = struct{}{}
	v.counter.Inc()
}

// Count returns the number of distinct visitors since the last reset.
func (v *uniqueVisits) Count() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.visitorsCache)
}
