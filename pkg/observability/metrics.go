package observability

import (
	"context"
	"time"

	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's prometheus collectors.
type Metrics struct {
	transitionsTotal  *prometheus.CounterVec
	stateEntries      *prometheus.CounterVec
	regionResolutions prometheus.Counter
	pathSearchSeconds prometheus.Histogram
	pathsFound        prometheus.Histogram
}

// NewMetrics creates and registers the collectors on the given registerer.
// Pass prometheus.DefaultRegisterer for the process-wide registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statewalk_transitions_total",
				Help: "Total number of transition executions by result",
			},
			[]string{"result"},
		),
		stateEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statewalk_state_entries_total",
				Help: "Total number of state activations",
			},
			[]string{"state"},
		),
		regionResolutions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "statewalk_region_resolutions_total",
				Help: "Total number of dependent search regions recomputed",
			},
		),
		pathSearchSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "statewalk_path_search_duration_seconds",
				Help: "Duration of path searches",
			},
		),
		pathsFound: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "statewalk_paths_found",
				Help:    "Number of candidate paths returned per search",
				Buckets: prometheus.LinearBuckets(0, 1, 10),
			},
		),
	}
	reg.MustRegister(
		m.transitionsTotal,
		m.stateEntries,
		m.regionResolutions,
		m.pathSearchSeconds,
		m.pathsFound,
	)
	return m
}

// Hooks returns lifecycle hooks that record the metrics. Join them with any
// user hooks on the engine.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(_ context.Context, e *domain.StateEvent) {
			m.stateEntries.WithLabelValues(e.StateName).Inc()
		},
		OnTransitionComplete: func(_ context.Context, e *domain.TransitionEvent) {
			result := "failure"
			if e.Success {
				result = "success"
			}
			m.transitionsTotal.WithLabelValues(result).Inc()
		},
		OnRegionResolved: func(_ context.Context, _ *domain.RegionEvent) {
			m.regionResolutions.Inc()
		},
	}
}

// ObservePathSearch records one path search.
func (m *Metrics) ObservePathSearch(elapsed time.Duration, found int) {
	m.pathSearchSeconds.Observe(elapsed.Seconds())
	m.pathsFound.Observe(float64(found))
}
