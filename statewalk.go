package statewalk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/statewalk/internal/logging"
	"github.com/aretw0/statewalk/internal/runtime"
	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/aretw0/statewalk/pkg/observability"
	"github.com/aretw0/statewalk/pkg/ports"
	"github.com/aretw0/statewalk/pkg/region"
)

// Engine is the high-level entry point for the statewalk library. It wraps
// the navigation core and the region dependency system behind a simplified
// API for consumers.
type Engine struct {
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	performer ports.ActionPerformer
	verifier  ports.ArrivalVerifier
	store     ports.ActiveStateStore
	metrics   *observability.Metrics
	sessionID string
	strict    bool
	maxDepth  int

	states   *runtime.Repository
	graph    *runtime.JointTable
	memory   *runtime.StateMemory
	finder   *runtime.PathFinder
	executor *runtime.Executor
	registry *region.DependencyRegistry
	resolver *region.Resolver
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = e.hooks.Join(hooks) }
}

// WithActionPerformer injects the action-execution collaborator used by
// task-sequence transitions.
func WithActionPerformer(p ports.ActionPerformer) Option {
	return func(e *Engine) { e.performer = p }
}

// WithArrivalVerifier injects the per-state arrival check run after
// transitions marked RequireArrival.
func WithArrivalVerifier(v ports.ArrivalVerifier) Option {
	return func(e *Engine) { e.verifier = v }
}

// WithStateStore persists the active-state set under the session id after
// every execution.
func WithStateStore(store ports.ActiveStateStore, sessionID string) Option {
	return func(e *Engine) {
		e.store = store
		e.sessionID = sessionID
	}
}

// WithMetrics binds prometheus instrumentation to the engine lifecycle.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithStrictSequences requires every step of a task sequence to succeed
// instead of only the last one.
func WithStrictSequences(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

// WithMaxPathDepth caps path search depth; zero means unbounded.
func WithMaxPathDepth(depth int) Option {
	return func(e *Engine) { e.maxDepth = depth }
}

// New initializes an empty Engine. Register states and transitions (or use
// Load for a YAML definition), seed the active states, then navigate.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	hooks := e.hooks
	if e.metrics != nil {
		hooks = hooks.Join(e.metrics.Hooks())
	}

	e.states = runtime.NewRepository()
	e.graph = runtime.NewJointTable()
	e.memory = runtime.NewStateMemory()
	e.registry = region.NewDependencyRegistry()
	e.resolver = region.NewResolver(e.registry, e.states,
		region.WithResolverLogger(e.logger),
		region.WithResolverHooks(hooks),
	)
	e.finder = runtime.NewPathFinder(e.graph,
		runtime.WithPathLogger(e.logger),
		runtime.WithMaxDepth(e.maxDepth),
	)
	e.executor = runtime.NewExecutor(e.states, e.graph, e.memory,
		runtime.WithPerformer(e.performer),
		runtime.WithVerifier(e.verifier),
		runtime.WithHooks(hooks),
		runtime.WithExecutorLogger(e.logger),
		runtime.WithStrictSequences(e.strict),
		runtime.WithMatchSink(func(ctx context.Context, res *domain.ActionResult) {
			e.resolver.UpdateDependents(ctx, res)
		}),
	)
	return e, nil
}

// AddState registers a state and the region dependencies its objects
// declare. Identity clashes are configuration errors.
func (e *Engine) AddState(s *domain.State) error {
	if err := e.states.Add(s); err != nil {
		return fmt.Errorf("add state: %w", err)
	}
	for _, obj := range s.Objects {
		if obj != nil && obj.OwnerState == "" {
			obj.OwnerState = s.Name
		}
	}
	e.resolver.RegisterDependencies(s.Objects)
	return nil
}

// AddTransition records a transition on the state graph. The source state
// must already be registered.
func (e *Engine) AddTransition(t *domain.Transition) error {
	if t == nil {
		return fmt.Errorf("nil transition")
	}
	if _, ok := e.states.StateByID(t.From); !ok {
		return fmt.Errorf("transition source %d: %w", t.From, domain.ErrStateNotFound)
	}
	if len(t.Activate) == 0 {
		return fmt.Errorf("transition from %d activates no states", t.From)
	}
	e.graph.RecordTransition(t.From, t)
	return nil
}

// Activate seeds the active-state memory, e.g. with the application's known
// initial state.
func (e *Engine) Activate(ids ...domain.StateID) {
	for _, id := range ids {
		e.memory.Activate(id)
	}
}

// ActiveStates returns a sorted snapshot of the currently active states.
func (e *Engine) ActiveStates() []domain.StateID {
	return e.memory.Active()
}

// FindPaths computes all simple paths from the given start states to the
// target, sorted ascending by score. Absence of a path is a normal outcome:
// the result is empty, never an error.
func (e *Engine) FindPaths(startStates []domain.StateID, target domain.StateID) *domain.Paths {
	start := time.Now()
	paths := e.finder.FindPaths(startStates, target)
	if e.metrics != nil {
		e.metrics.ObservePathSearch(time.Since(start), paths.Len())
	}
	return paths
}

// Execute runs one path through the transition executor and persists the
// resulting active set when a store is configured. Errors are genuine
// automation failures; a path that simply failed returns a failed result
// with a nil error.
func (e *Engine) Execute(ctx context.Context, path *domain.Path) (*domain.ExecutionResult, error) {
	result, err := e.executor.Execute(ctx, path)
	if perr := e.persist(ctx); perr != nil && err == nil {
		err = perr
	}
	return result, err
}

// GoTo navigates from the currently active states to the target. It computes
// candidate paths, attempts them best-first, and re-plans after a failed
// attempt since the active set may have drifted mid-path.
//
// Distinct outcomes: domain.ErrNoPath when no chain connects the active
// states to the target, domain.ErrPathsExhausted when every candidate failed
// during execution. Collaborator errors propagate immediately.
func (e *Engine) GoTo(ctx context.Context, target domain.StateID) (*domain.ExecutionResult, error) {
	tried := make(map[string]struct{})
	var last *domain.ExecutionResult

	for {
		active := e.memory.Active()
		paths := e.FindPaths(active, target)
		if paths.IsEmpty() {
			if last != nil {
				return last, domain.ErrPathsExhausted
			}
			return nil, domain.ErrNoPath
		}

		var next *domain.Path
		for _, p := range paths.All() {
			if _, seen := tried[p.Key()]; !seen {
				next = p
				break
			}
		}
		if next == nil {
			return last, domain.ErrPathsExhausted
		}
		tried[next.Key()] = struct{}{}

		e.logger.Info("attempting path", "path", next.String(), "target", target)
		result, err := e.Execute(ctx, next)
		if err != nil {
			return result, err
		}
		if result.OK() {
			return result, nil
		}
		last = result
	}
}

// RestoreSession loads the persisted active set into memory.
func (e *Engine) RestoreSession(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	active, err := e.store.Load(ctx, e.sessionID)
	if err != nil {
		return err
	}
	e.memory.Replace(active)
	return nil
}

func (e *Engine) persist(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Save(ctx, e.sessionID, e.memory.Active()); err != nil {
		return fmt.Errorf("persist active states: %w", err)
	}
	return nil
}

// Resolver exposes the dynamic region resolver for the action-result
// pipeline (call UpdateDependents after each find completes).
func (e *Engine) Resolver() *region.Resolver { return e.resolver }

// Registry exposes the search-region dependency registry for the
// configuration layer.
func (e *Engine) Registry() *region.DependencyRegistry { return e.registry }

// States returns every registered state.
func (e *Engine) States() []*domain.State { return e.states.All() }

// StateByName resolves a state by name.
func (e *Engine) StateByName(name string) (*domain.State, bool) {
	return e.states.StateByName(name)
}

// StateByID resolves a state by id.
func (e *Engine) StateByID(id domain.StateID) (*domain.State, bool) {
	return e.states.StateByID(id)
}

// TransitionsOf returns the outgoing transitions of a state.
func (e *Engine) TransitionsOf(id domain.StateID) []*domain.Transition {
	return e.graph.TransitionsOf(id)
}

// Transitions returns every registered transition, grouped by source state
// in repository order. Used by introspection surfaces.
func (e *Engine) Transitions() []*domain.Transition {
	var out []*domain.Transition
	for _, s := range e.states.All() {
		out = append(out, e.graph.TransitionsOf(s.ID)...)
	}
	return out
}
