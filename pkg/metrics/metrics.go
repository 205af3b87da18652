package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	durationPlanner = "duration_planner"

	// Estimation metrics
	estimationsTotal   = "estimations_total"
	estimatedTotalDays = "estimated_total_days"

	// Export metrics
	exportsTotal = "exports_total"

	// Labels
	estimationOutcomeLabel = "outcome"
	exportFormatLabel      = "format"

	OutcomeDefined    = "defined"
	OutcomeUndefined  = "undefined"
	OutcomeOutOfRange = "out_of_range"
	OutcomeFailed     = "failed"
)

var estimationsTotalLabels = []string{
	estimationOutcomeLabel,
}

var exportsTotalLabels = []string{
	exportFormatLabel,
}

/**
* Metrics definition
**/
var estimationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: durationPlanner,
		Name:      estimationsTotal,
		Help:      "number of duration estimations partitioned by outcome",
	},
	estimationsTotalLabels,
)

var estimatedTotalDaysMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: durationPlanner,
		Name:      estimatedTotalDays,
		Help:      "distribution of estimated total project durations in days",
		Buckets:   []float64{90, 180, 270, 365, 540, 730, 1095},
	},
)

var exportsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: durationPlanner,
		Name:      exportsTotal,
		Help:      "number of exported inputs and reports partitioned by format",
	},
	exportsTotalLabels,
)

// ObserveEstimation records one estimation outcome. totalDays is ignored unless
// the outcome is OutcomeDefined.
func ObserveEstimation(outcome string, totalDays float64) {
	estimationsTotalMetric.With(prometheus.Labels{estimationOutcomeLabel: outcome}).Inc()
	if outcome == OutcomeDefined {
		estimatedTotalDaysMetric.Observe(totalDays)
	}
}

func IncreaseExportsTotalMetric(format string) {
	exportsTotalMetric.With(prometheus.Labels{exportFormatLabel: format}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(estimationsTotalMetric)
	prometheus.MustRegister(estimatedTotalDaysMetric)
	prometheus.MustRegister(exportsTotalMetric)
	prometheus.MustRegister(totalUniqueVisitPerWeekMetric)
}
