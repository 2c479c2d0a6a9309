package observability

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Hooks(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnTransitionComplete(ctx, &domain.TransitionEvent{Success: true})
	hooks.OnTransitionComplete(ctx, &domain.TransitionEvent{Success: true})
	hooks.OnTransitionComplete(ctx, &domain.TransitionEvent{Success: false})
	hooks.OnStateEnter(ctx, &domain.StateEvent{StateID: 1, StateName: "home"})
	hooks.OnRegionResolved(ctx, &domain.RegionEvent{})

	assert.Equal(t, float64(2), testutil.ToFloat64(m.transitionsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.transitionsTotal.WithLabelValues("failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.stateEntries.WithLabelValues("home")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.regionResolutions))
}

func TestMetrics_ObservePathSearch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObservePathSearch(50*time.Millisecond, 3)
	m.ObservePathSearch(10*time.Millisecond, 0)

	families, err := reg.Gather()
	assert.NoError(t, err)

	byName := make(map[string]uint64)
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if h := metric.GetHistogram(); h != nil {
				byName[f.GetName()] = h.GetSampleCount()
			}
		}
	}
	assert.Equal(t, uint64(2), byName["statewalk_path_search_duration_seconds"])
	assert.Equal(t, uint64(2), byName["statewalk_paths_found"])
}

func TestMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
