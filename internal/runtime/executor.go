package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/statewalk/pkg/domain"
	"github.com/aretw0/statewalk/pkg/ports"
)

// MatchSink receives the action results produced by task-sequence steps, so
// matches can flow into the dynamic region resolver.
type MatchSink func(ctx context.Context, result *domain.ActionResult)

// Executor walks a selected path edge by edge: it runs each edge's action
// sequence (or code function), applies the activation and exit sets to state
// memory, maintains hidden-state bookkeeping, and runs required arrival
// checks. A failure anywhere halts forward progress on that path; choosing
// the next candidate path is the caller's job.
type Executor struct {
	states    *Repository
	graph     *JointTable
	memory    *StateMemory
	performer ports.ActionPerformer
	verifier  ports.ArrivalVerifier
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	sink      MatchSink
	strict    bool
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithPerformer sets the action-execution collaborator.
func WithPerformer(p ports.ActionPerformer) ExecutorOption {
	return func(e *Executor) { e.performer = p }
}

// WithVerifier sets the arrival-verification collaborator. Nil means no
// arrival checks are declared.
func WithVerifier(v ports.ArrivalVerifier) ExecutorOption {
	return func(e *Executor) { e.verifier = v }
}

// WithHooks registers lifecycle hooks.
func WithHooks(h domain.LifecycleHooks) ExecutorOption {
	return func(e *Executor) { e.hooks = h }
}

// WithExecutorLogger sets the executor's structured logger.
func WithExecutorLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMatchSink registers the receiver for step action results.
func WithMatchSink(sink MatchSink) ExecutorOption {
	return func(e *Executor) { e.sink = sink }
}

// WithStrictSequences makes every step of a task sequence have to succeed.
// The default reproduces the historical behavior where only the last step's
// outcome decides the sequence.
func WithStrictSequences(strict bool) ExecutorOption {
	return func(e *Executor) { e.strict = strict }
}

// NewExecutor creates an executor over the repository, graph and memory.
func NewExecutor(states *Repository, graph *JointTable, memory *StateMemory, opts ...ExecutorOption) *Executor {
	e := &Executor{
		states: states,
		graph:  graph,
		memory: memory,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the path edge by edge. The returned error is non-nil only for
// genuine automation failures (a collaborator or code-defined transition
// returned an error); a path that simply did not work returns a failed
// result with a nil error.
func (e *Executor) Execute(ctx context.Context, path *domain.Path) (*domain.ExecutionResult, error) {
	result := &domain.ExecutionResult{Status: domain.ExecutionPending, FailedAt: -1}
	if path == nil || path.Len() == 0 {
		result.Status = domain.ExecutionFailed
		result.FailedAt = 0
		return result, nil
	}

	// Trivial path: the target is already a start state.
	if path.Len() == 1 {
		e.activate(ctx, path.States[0])
		result.Status = domain.ExecutionSucceeded
		result.Succeeded = append(result.Succeeded, path.States[0])
		return result, nil
	}

	for i := 0; i+1 < path.Len(); i++ {
		from, to := path.States[i], path.States[i+1]
		result.Status = domain.ExecutionExecuting

		if !e.memory.IsActive(from) {
			e.logger.Debug("source state not active, aborting path",
				"from", e.states.Name(from), "to", e.states.Name(to))
			result.Status = domain.ExecutionFailed
			result.FailedAt = i
			return result, nil
		}

		tr := e.graph.CheapestBetween(from, to)
		if tr == nil {
			// No static transition: the edge may be a dynamic return to a
			// state the from-state currently covers.
			start := time.Now()
			e.emitTransitionStart(ctx, domain.TransitionReturn, from, to)
			if !e.returnToCovered(ctx, from, to) {
				e.emitTransitionComplete(ctx, domain.TransitionReturn, from, to, false, time.Since(start))
				result.Status = domain.ExecutionFailed
				result.FailedAt = i
				return result, nil
			}
			e.emitTransitionComplete(ctx, domain.TransitionReturn, from, to, true, time.Since(start))
			result.Succeeded = append(result.Succeeded, to)
			continue
		}

		start := time.Now()
		e.emitTransitionStart(ctx, tr.Kind(), from, to)

		ok, err := e.runTransition(ctx, tr)
		if err != nil {
			e.emitTransitionComplete(ctx, tr.Kind(), from, to, false, time.Since(start))
			result.Status = domain.ExecutionFailed
			result.FailedAt = i
			return result, fmt.Errorf("transition %s->%s: %w", e.states.Name(from), e.states.Name(to), err)
		}
		if !ok {
			e.emitTransitionComplete(ctx, tr.Kind(), from, to, false, time.Since(start))
			e.logger.Info("transition failed",
				"from", e.states.Name(from), "to", e.states.Name(to), "edge", i)
			result.Status = domain.ExecutionFailed
			result.FailedAt = i
			return result, nil
		}

		e.applyActivation(ctx, tr, from, to)

		result.Status = domain.ExecutionVerifying
		verified, err := e.verifyArrival(ctx, tr, to)
		if err != nil {
			e.emitTransitionComplete(ctx, tr.Kind(), from, to, false, time.Since(start))
			result.Status = domain.ExecutionFailed
			result.FailedAt = i
			return result, fmt.Errorf("arrival verification for %s: %w", e.states.Name(to), err)
		}
		if !verified {
			e.emitTransitionComplete(ctx, tr.Kind(), from, to, false, time.Since(start))
			e.logger.Info("arrival verification failed", "state", e.states.Name(to))
			result.Status = domain.ExecutionFailed
			result.FailedAt = i
			return result, nil
		}

		e.emitTransitionComplete(ctx, tr.Kind(), from, to, true, time.Since(start))
		result.Succeeded = append(result.Succeeded, to)
	}

	result.Status = domain.ExecutionSucceeded
	return result, nil
}

// runTransition dispatches on the transition variant.
func (e *Executor) runTransition(ctx context.Context, tr *domain.Transition) (bool, error) {
	switch tr.Kind() {
	case domain.TransitionCode:
		if tr.Run == nil {
			return false, nil
		}
		return tr.Run(ctx)
	case domain.TransitionSequence:
		return e.runSequence(ctx, tr.Sequence)
	}
	return false, nil
}

// runSequence executes every step in order. A failing step does not abort the
// sequence; the last step's success flag decides the outcome unless strict
// mode requires all steps to succeed. Collaborator errors abort immediately.
func (e *Executor) runSequence(ctx context.Context, seq *domain.TaskSequence) (bool, error) {
	if seq == nil || len(seq.Steps) == 0 {
		return false, nil
	}
	if e.performer == nil {
		return false, fmt.Errorf("no action performer configured")
	}
	lastOK := false
	allOK := true
	for i, step := range seq.Steps {
		res, err := e.performer.Perform(ctx, step.Action, step.Targets)
		if err != nil {
			return false, fmt.Errorf("step %d (%s): %w", i, step.Action.Type, err)
		}
		ok := res != nil && res.Success
		lastOK = ok
		if !ok {
			allOK = false
			e.logger.Debug("sequence step failed", "step", i, "action", step.Action.Type)
		}
		if res != nil {
			e.recordMatches(step.Targets, res)
			if e.sink != nil {
				e.sink(ctx, res)
			}
		}
	}
	if e.strict {
		return allOK, nil
	}
	return lastOK, nil
}

// recordMatches attributes result matches back to the step's target objects,
// feeding each object's discovery history.
func (e *Executor) recordMatches(targets domain.ObjectCollection, res *domain.ActionResult) {
	for _, m := range res.Matches {
		for _, obj := range targets.Objects {
			if obj != nil && obj.Name == m.ObjectName && obj.OwnerState == m.StateName {
				obj.RecordMatch(m)
			}
		}
	}
}

// returnToCovered executes a dynamic edge of the hidden index: when the
// target is a state the from-state currently covers, exiting the covering
// state resurfaces everything it hid, including the target. Returns false
// when the target is not actually covered by the from-state.
func (e *Executor) returnToCovered(ctx context.Context, from, to domain.StateID) bool {
	fromState, ok := e.states.StateByID(from)
	if !ok || !containsID(fromState.Hidden, to) {
		return false
	}
	for _, id := range fromState.Hidden {
		e.activate(ctx, id)
	}
	e.exit(ctx, from)
	return true
}

// applyActivation switches on the transition's activation set (always
// including the path target), handles hidden-state coverage, and processes
// the exit sets.
func (e *Executor) applyActivation(ctx context.Context, tr *domain.Transition, from, to domain.StateID) {
	toActivate := make([]domain.StateID, 0, len(tr.Activate)+2)
	toActivate = append(toActivate, tr.Activate...)
	if !tr.ActivatesTarget(to) {
		toActivate = append(toActivate, to)
	}

	// An exiting source re-exposes whatever it was covering.
	fromState, _ := e.states.StateByID(from)
	if !tr.StaysVisible && fromState != nil {
		toActivate = append(toActivate, fromState.Hidden...)
	}

	for _, id := range toActivate {
		e.activate(ctx, id)
	}
	for _, id := range tr.Exit {
		e.exit(ctx, id)
	}
	if !tr.StaysVisible {
		e.exit(ctx, from)
	}
}

// activate marks a state active and hides any active state it covers.
// Already-active states are left untouched, which also breaks activation
// cycles between mutually-activating states.
func (e *Executor) activate(ctx context.Context, id domain.StateID) {
	if e.memory.IsActive(id) {
		return
	}
	e.memory.Activate(id)
	e.emitStateEnter(ctx, id)

	state, ok := e.states.StateByID(id)
	if !ok {
		return
	}
	for _, covered := range state.CanHide {
		if e.memory.IsActive(covered) {
			e.memory.Deactivate(covered)
			state.AddHidden(covered)
		}
	}
	e.graph.AddHidden(state)
}

// exit deactivates a state, drops its hidden-state edges and resets its
// coverage bookkeeping.
func (e *Executor) exit(ctx context.Context, id domain.StateID) {
	if !e.memory.IsActive(id) {
		return
	}
	if state, ok := e.states.StateByID(id); ok {
		e.graph.RemoveHidden(state)
		state.ResetHidden()
	}
	e.memory.Deactivate(id)
	e.emitStateExit(ctx, id)
}

// verifyArrival runs the per-state arrival check when the transition demands
// it and a verifier is configured.
func (e *Executor) verifyArrival(ctx context.Context, tr *domain.Transition, to domain.StateID) (bool, error) {
	if !tr.RequireArrival || e.verifier == nil {
		return true, nil
	}
	return e.verifier.VerifyArrival(ctx, to)
}

func (e *Executor) emitStateEnter(ctx context.Context, id domain.StateID) {
	if e.hooks.OnStateEnter == nil {
		return
	}
	e.hooks.OnStateEnter(ctx, &domain.StateEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStateEnter},
		StateID:   id,
		StateName: e.states.Name(id),
	})
}

func (e *Executor) emitStateExit(ctx context.Context, id domain.StateID) {
	if e.hooks.OnStateExit == nil {
		return
	}
	e.hooks.OnStateExit(ctx, &domain.StateEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStateExit},
		StateID:   id,
		StateName: e.states.Name(id),
	})
}

func (e *Executor) emitTransitionStart(ctx context.Context, kind domain.TransitionKind, from, to domain.StateID) {
	if e.hooks.OnTransitionStart == nil {
		return
	}
	e.hooks.OnTransitionStart(ctx, &domain.TransitionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTransitionStart},
		From:      from,
		To:        to,
		Kind:      kind,
	})
}

func (e *Executor) emitTransitionComplete(ctx context.Context, kind domain.TransitionKind, from, to domain.StateID, success bool, elapsed time.Duration) {
	if e.hooks.OnTransitionComplete == nil {
		return
	}
	e.hooks.OnTransitionComplete(ctx, &domain.TransitionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTransitionComplete},
		From:      from,
		To:        to,
		Kind:      kind,
		Success:   success,
		Duration:  elapsed,
	})
}
