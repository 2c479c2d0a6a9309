package region

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/aretw0/statewalk/pkg/ports"
)

// Resolver recomputes dependent search regions from fresh anchor matches. It
// owns no state of its own: it reads the registry and the match results and
// mutates the dependents' cached regions as a side effect.
//
// When two anchors race to update the same dependent the last writer wins;
// no ordering is guaranteed.
type Resolver struct {
	registry *DependencyRegistry
	states   ports.StateLocator
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the resolver's structured logger.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithResolverHooks registers lifecycle hooks (OnRegionResolved).
func WithResolverHooks(h domain.LifecycleHooks) ResolverOption {
	return func(r *Resolver) { r.hooks = h }
}

// NewResolver creates a resolver over the registry. The locator may be nil;
// it is only needed for anchor lookups that fall back to match history.
func NewResolver(registry *DependencyRegistry, states ports.StateLocator, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry: registry,
		states:   states,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterDependencies walks the objects and registers every declared
// search-region dependency. Called by the configuration layer after load.
func (r *Resolver) RegisterDependencies(objects []*domain.StateObject) {
	count := 0
	for _, obj := range objects {
		if obj == nil || obj.SearchRegionOn == nil {
			continue
		}
		r.registry.Register(obj, obj.SearchRegionOn)
		count++
	}
	if count > 0 {
		r.logger.Debug("registered region dependencies", "count", count)
	}
}

// UpdateDependents fans fresh matches out to every dependent registered on
// the matched anchors. For each anchor, the highest-score match is the
// authoritative position (first-seen wins ties). A nil result or an empty
// match set is a no-op.
func (r *Resolver) UpdateDependents(ctx context.Context, result *domain.ActionResult) {
	if result == nil || len(result.Matches) == 0 {
		return
	}

	best := bestPerAnchor(result.Matches)
	updated := 0
	for _, match := range best {
		deps := r.registry.DependentsOf(match.StateName, match.ObjectName)
		for _, dep := range deps {
			if r.updateDependent(ctx, dep, match) {
				updated++
			}
		}
	}
	if updated > 0 {
		r.logger.Debug("updated dependent regions", "count", updated)
	}
}

// UpdateSearchRegion recomputes one object's search region from its own
// declared anchor. The anchor position is taken from the supplied matches
// when present, otherwise from the anchor object's recorded match history.
// Missing anchors, nil arguments and unresolvable lookups are all no-ops.
func (r *Resolver) UpdateSearchRegion(ctx context.Context, obj *domain.StateObject, result *domain.ActionResult) {
	if obj == nil || obj.SearchRegionOn == nil {
		return
	}
	cfg := obj.SearchRegionOn
	anchor, ok := r.findAnchorMatch(cfg, result)
	if !ok {
		r.logger.Debug("anchor not resolvable",
			"dependent", obj.Name,
			"anchor_state", cfg.TargetStateName,
			"anchor_object", cfg.TargetObjectName,
		)
		return
	}
	r.updateDependent(ctx, DependentObject{Object: obj, Config: cfg}, anchor)
}

// updateDependent applies one anchor match to one dependent. The update is
// skipped when the dependent has an explicitly fixed region (declarative
// derivation never overrides an explicit region) or when the dependent has
// never been found (no speculative regions for never-seen elements).
func (r *Resolver) updateDependent(ctx context.Context, dep DependentObject, anchor domain.Match) bool {
	obj := dep.Object
	if obj == nil || dep.Config == nil {
		return false
	}
	if obj.HasFixedRegion() {
		return false
	}
	if obj.TimesFound() == 0 {
		return false
	}

	computed := dep.Config.Adjust.Apply(anchor.Region)
	if obj.Kind == domain.KindLocation {
		obj.SetLocation(computed.Center())
	} else {
		obj.SetCachedRegion(computed)
	}

	r.logger.Debug("resolved search region",
		"dependent", obj.Name,
		"anchor", anchor.StateName+":"+anchor.ObjectName,
		"region", computed.String(),
	)
	if r.hooks.OnRegionResolved != nil {
		r.hooks.OnRegionResolved(ctx, &domain.RegionEvent{
			EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventRegionResolved},
			AnchorState:  anchor.StateName,
			AnchorObject: anchor.ObjectName,
			Dependent:    obj.Name,
			Region:       computed,
		})
	}
	return true
}

// findAnchorMatch locates the anchor's position: the best supplied match
// attributed to the anchor, else the anchor object's last recorded match via
// the state locator.
func (r *Resolver) findAnchorMatch(cfg *domain.SearchRegionOnObject, result *domain.ActionResult) (domain.Match, bool) {
	if cfg.TargetStateName == "" || cfg.TargetObjectName == "" {
		return domain.Match{}, false
	}
	if result != nil {
		var best *domain.Match
		for i := range result.Matches {
			m := &result.Matches[i]
			if m.StateName != cfg.TargetStateName || m.ObjectName != cfg.TargetObjectName {
				continue
			}
			if best == nil || m.Score > best.Score {
				best = m
			}
		}
		if best != nil {
			return *best, true
		}
	}
	if r.states == nil {
		return domain.Match{}, false
	}
	state, ok := r.states.StateByName(cfg.TargetStateName)
	if !ok {
		return domain.Match{}, false
	}
	target := state.Object(cfg.TargetObjectName)
	if target == nil {
		return domain.Match{}, false
	}
	switch cfg.TargetKind {
	case domain.KindRegion:
		if fixed := target.EffectiveRegion(); fixed != nil {
			return domain.Match{Region: *fixed, StateName: state.Name, ObjectName: target.Name}, true
		}
	case domain.KindLocation:
		loc := target.Location()
		return domain.Match{
			Region:     domain.Region{X: loc.X, Y: loc.Y, W: 1, H: 1},
			StateName:  state.Name,
			ObjectName: target.Name,
		}, true
	}
	if last := target.LastMatch(); last != nil {
		return *last, true
	}
	return domain.Match{}, false
}

// bestPerAnchor reduces a match list to the highest-score match per anchor,
// preserving first-seen order among equal scores. Matches without anchor
// attribution are dropped.
func bestPerAnchor(matches []domain.Match) []domain.Match {
	type slot struct {
		index int
		match domain.Match
	}
	bySource := make(map[dependencyKey]slot)
	order := make([]dependencyKey, 0, len(matches))
	for _, m := range matches {
		if m.StateName == "" || m.ObjectName == "" {
			continue
		}
		key := dependencyKey{state: m.StateName, object: m.ObjectName}
		cur, seen := bySource[key]
		if !seen {
			bySource[key] = slot{index: len(order), match: m}
			order = append(order, key)
			continue
		}
		if m.Score > cur.match.Score {
			bySource[key] = slot{index: cur.index, match: m}
		}
	}
	out := make([]domain.Match, len(order))
	for _, key := range order {
		s := bySource[key]
		out[s.index] = s.match
	}
	return out
}
