package region

import (
	"context"
	"testing"

	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLocator is a minimal state lookup for anchor fallbacks.
type stubLocator struct {
	states map[string]*domain.State
}

func (l *stubLocator) StateByName(name string) (*domain.State, bool) {
	s, ok := l.states[name]
	return s, ok
}

func (l *stubLocator) StateByID(id domain.StateID) (*domain.State, bool) {
	for _, s := range l.states {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

func foundObject(name, owner string) *domain.StateObject {
	obj := &domain.StateObject{Name: name, OwnerState: owner}
	obj.RecordMatch(domain.Match{StateName: owner, ObjectName: name})
	return obj
}

func anchorMatch(region domain.Region, score float64) domain.Match {
	return domain.Match{Region: region, Score: score, StateName: "login", ObjectName: "logo"}
}

func TestResolver_UpdateDependents(t *testing.T) {
	registry := NewDependencyRegistry()
	resolver := NewResolver(registry, nil)

	dependent := foundObject("field", "form")
	registry.Register(dependent, &domain.SearchRegionOnObject{
		TargetStateName:  "login",
		TargetObjectName: "logo",
		Adjust:           domain.RegionAdjustment{AddX: 5, AddY: -10, AddW: 20, AddH: 30},
	})

	resolver.UpdateDependents(context.Background(), &domain.ActionResult{
		Success: true,
		Matches: []domain.Match{anchorMatch(domain.Region{X: 100, Y: 200, W: 50, H: 40}, 0.9)},
	})

	got := dependent.CachedRegion()
	require.NotNil(t, got)
	assert.Equal(t, domain.Region{X: 105, Y: 190, W: 70, H: 70}, *got)
}

func TestResolver_AbsoluteDimensionsOverride(t *testing.T) {
	registry := NewDependencyRegistry()
	resolver := NewResolver(registry, nil)

	dependent := foundObject("field", "form")
	registry.Register(dependent, &domain.SearchRegionOnObject{
		TargetStateName:  "login",
		TargetObjectName: "logo",
		Adjust: domain.RegionAdjustment{
			AddW:      100, // absolute wins over the relative delta
			AbsoluteW: 300,
			AbsoluteH: 150,
		},
	})

	resolver.UpdateDependents(context.Background(), &domain.ActionResult{
		Matches: []domain.Match{anchorMatch(domain.Region{X: 10, Y: 10, W: 50, H: 40}, 0.9)},
	})

	got := dependent.CachedRegion()
	require.NotNil(t, got)
	assert.Equal(t, 300, got.W)
	assert.Equal(t, 150, got.H)
	assert.Equal(t, 10, got.X)
}

func TestResolver_BestScorePerAnchor(t *testing.T) {
	registry := NewDependencyRegistry()
	resolver := NewResolver(registry, nil)

	dependent := foundObject("field", "form")
	registry.Register(dependent, &domain.SearchRegionOnObject{
		TargetStateName:  "login",
		TargetObjectName: "logo",
	})

	resolver.UpdateDependents(context.Background(), &domain.ActionResult{
		Matches: []domain.Match{
			anchorMatch(domain.Region{X: 1, Y: 1, W: 10, H: 10}, 0.6),
			anchorMatch(domain.Region{X: 9, Y: 9, W: 10, H: 10}, 0.95),
			anchorMatch(domain.Region{X: 5, Y: 5, W: 10, H: 10}, 0.7),
		},
	})

	got := dependent.CachedRegion()
	require.NotNil(t, got)
	assert.Equal(t, 9, got.X, "the highest-score match positions the region")
}

func TestResolver_EqualScoresFirstSeenWins(t *testing.T) {
	registry := NewDependencyRegistry()
	resolver := NewResolver(registry, nil)

	dependent := foundObject("field", "form")
	registry.Register(dependent, &domain.SearchRegionOnObject{
		TargetStateName:  "login",
		TargetObjectName: "logo",
	})

	resolver.UpdateDependents(context.Background(), &domain.ActionResult{
		Matches: []domain.Match{
			anchorMatch(domain.Region{X: 1}, 0.8),
			anchorMatch(domain.Region{X: 2}, 0.8),
		},
	})

	got := dependent.CachedRegion()
	require.NotNil(t, got)
	assert.Equal(t, 1, got.X)
}

func TestResolver_FixedRegionNeverOverridden(t *testing.T) {
	registry := NewDependencyRegistry()
	resolver := NewResolver(registry, nil)

	fixed := domain.Region{X: 0, Y: 0, W: 800, H: 600}
	dependent := foundObject("field", "form")
	dependent.FixedRegion = &fixed
	registry.Register(dependent, &domain.SearchRegionOnObject{
		TargetStateName:  "login",
		TargetObjectName: "logo",
	})

	resolver.UpdateDependents(context.Background(), &domain.ActionResult{
		Matches: []domain.Match{anchorMatch(domain.Region{X: 50, Y: 50, W: 10, H: 10}, 0.9)},
	})

	assert.Nil(t, dependent.CachedRegion())
	assert.Equal(t, fixed, *dependent.EffectiveRegion())
}

func TestResolver_NeverFoundDependentSkipped(t *testing.T) {
	registry := NewDependencyRegistry()
	resolver := NewResolver(registry, nil)

	dependent := &domain.StateObject{Name: "field", OwnerState: "form"}
	registry.Register(dependent, &domain.SearchRegionOnObject{
		TargetStateName:  "login",
		TargetObjectName: "logo",
	})

	resolver.UpdateDependents(context.Background(), &domain.ActionResult{
		Matches: []domain.Match{anchorMatch(domain.Region{X: 50}, 0.9)},
	})

	assert.Nil(t, dependent.CachedRegion(), "no speculative region for an element never seen")
}

func TestResolver_LocationKindGetsCenter(t *testing.T) {
	registry := NewDependencyRegistry()
	resolver := NewResolver(registry, nil)

	dependent := foundObject("click-point", "form")
	dependent.Kind = domain.KindLocation
	registry.Register(dependent, &domain.SearchRegionOnObject{
		TargetStateName:  "login",
		TargetObjectName: "logo",
	})

	resolver.UpdateDependents(context.Background(), &domain.ActionResult{
		Matches: []domain.Match{anchorMatch(domain.Region{X: 100, Y: 100, W: 40, H: 20}, 0.9)},
	})

	assert.Equal(t, domain.Location{X: 120, Y: 110}, dependent.Location())
	assert.Nil(t, dependent.CachedRegion())
}

func TestResolver_NilResultNoOp(t *testing.T) {
	registry := NewDependencyRegistry()
	resolver := NewResolver(registry, nil)

	dependent := foundObject("field", "form")
	registry.Register(dependent, &domain.SearchRegionOnObject{
		TargetStateName:  "login",
		TargetObjectName: "logo",
	})

	resolver.UpdateDependents(context.Background(), nil)
	resolver.UpdateDependents(context.Background(), &domain.ActionResult{})

	assert.Nil(t, dependent.CachedRegion())
}

func TestResolver_UnattributedMatchesDropped(t *testing.T) {
	registry := NewDependencyRegistry()
	resolver := NewResolver(registry, nil)

	dependent := foundObject("field", "form")
	registry.Register(dependent, &domain.SearchRegionOnObject{
		TargetStateName:  "login",
		TargetObjectName: "logo",
	})

	resolver.UpdateDependents(context.Background(), &domain.ActionResult{
		Matches: []domain.Match{{Region: domain.Region{X: 50}, Score: 0.99}},
	})

	assert.Nil(t, dependent.CachedRegion())
}

func TestResolver_RegisterDependencies(t *testing.T) {
	registry := NewDependencyRegistry()
	resolver := NewResolver(registry, nil)

	withDep := &domain.StateObject{Name: "field", SearchRegionOn: &domain.SearchRegionOnObject{
		TargetStateName:  "login",
		TargetObjectName: "logo",
	}}
	without := &domain.StateObject{Name: "plain"}

	resolver.RegisterDependencies([]*domain.StateObject{withDep, nil, without})
	assert.Equal(t, 1, registry.Size())
}

func TestResolver_UpdateSearchRegionFallbacks(t *testing.T) {
	newLocator := func(anchor *domain.StateObject) *stubLocator {
		return &stubLocator{states: map[string]*domain.State{
			"login": {ID: 1, Name: "login", Objects: []*domain.StateObject{anchor}},
		}}
	}

	t.Run("anchor from match history", func(t *testing.T) {
		anchor := &domain.StateObject{Name: "logo", OwnerState: "login"}
		anchor.RecordMatch(domain.Match{
			Region: domain.Region{X: 30, Y: 30, W: 10, H: 10}, StateName: "login", ObjectName: "logo",
		})
		resolver := NewResolver(NewDependencyRegistry(), newLocator(anchor))

		dependent := foundObject("field", "form")
		dependent.SearchRegionOn = &domain.SearchRegionOnObject{
			TargetStateName:  "login",
			TargetObjectName: "logo",
			Adjust:           domain.RegionAdjustment{AddX: 1},
		}

		resolver.UpdateSearchRegion(context.Background(), dependent, nil)

		got := dependent.CachedRegion()
		require.NotNil(t, got)
		assert.Equal(t, 31, got.X)
	})

	t.Run("region-kind anchor uses its effective region", func(t *testing.T) {
		anchor := &domain.StateObject{
			Name: "panel", OwnerState: "login", Kind: domain.KindRegion,
			FixedRegion: &domain.Region{X: 5, Y: 5, W: 100, H: 100},
		}
		resolver := NewResolver(NewDependencyRegistry(), newLocator(anchor))

		dependent := foundObject("field", "form")
		dependent.SearchRegionOn = &domain.SearchRegionOnObject{
			TargetStateName:  "login",
			TargetObjectName: "panel",
			TargetKind:       domain.KindRegion,
		}

		resolver.UpdateSearchRegion(context.Background(), dependent, nil)

		got := dependent.CachedRegion()
		require.NotNil(t, got)
		assert.Equal(t, domain.Region{X: 5, Y: 5, W: 100, H: 100}, *got)
	})

	t.Run("unknown anchor is a no-op", func(t *testing.T) {
		resolver := NewResolver(NewDependencyRegistry(), &stubLocator{states: map[string]*domain.State{}})

		dependent := foundObject("field", "form")
		dependent.SearchRegionOn = &domain.SearchRegionOnObject{
			TargetStateName:  "gone",
			TargetObjectName: "logo",
		}

		resolver.UpdateSearchRegion(context.Background(), dependent, nil)
		assert.Nil(t, dependent.CachedRegion())
	})
}

func TestResolver_EmitsRegionResolvedEvent(t *testing.T) {
	registry := NewDependencyRegistry()

	var events []*domain.RegionEvent
	hooks := domain.LifecycleHooks{
		OnRegionResolved: func(_ context.Context, e *domain.RegionEvent) {
			events = append(events, e)
		},
	}
	resolver := NewResolver(registry, nil, WithResolverHooks(hooks))

	dependent := foundObject("field", "form")
	registry.Register(dependent, &domain.SearchRegionOnObject{
		TargetStateName:  "login",
		TargetObjectName: "logo",
	})

	resolver.UpdateDependents(context.Background(), &domain.ActionResult{
		Matches: []domain.Match{anchorMatch(domain.Region{X: 10, Y: 10, W: 10, H: 10}, 0.9)},
	})

	require.Len(t, events, 1)
	assert.Equal(t, "login", events[0].AnchorState)
	assert.Equal(t, "field", events[0].Dependent)
	assert.Equal(t, domain.Region{X: 10, Y: 10, W: 10, H: 10}, events[0].Region)
}
