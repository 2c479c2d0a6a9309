package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStateEnter         EventType = "state_enter"
	EventStateExit          EventType = "state_exit"
	EventTransitionStart    EventType = "transition_start"
	EventTransitionComplete EventType = "transition_complete"
	EventRegionResolved     EventType = "region_resolved"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StateEvent reports a state activating or exiting.
type StateEvent struct {
	EventBase
	StateID   StateID `json:"state_id"`
	StateName string  `json:"state_name,omitempty"`
}

// TransitionEvent reports the start or the outcome of one edge execution.
type TransitionEvent struct {
	EventBase
	From     StateID        `json:"from"`
	To       StateID        `json:"to"`
	Kind     TransitionKind `json:"kind"`
	Success  bool           `json:"success"`
	Duration time.Duration  `json:"duration,omitempty"`
}

// RegionEvent reports a dependent object's search region being recomputed
// from an anchor match.
type RegionEvent struct {
	EventBase
	AnchorState  string `json:"anchor_state"`
	AnchorObject string `json:"anchor_object"`
	Dependent    string `json:"dependent"`
	Region       Region `json:"region"`
}

// LifecycleHooks defines callbacks for engine observability. Any field may be
// nil; hooks run synchronously on the executing goroutine and should return
// quickly.
type LifecycleHooks struct {
	OnStateEnter         func(context.Context, *StateEvent)
	OnStateExit          func(context.Context, *StateEvent)
	OnTransitionStart    func(context.Context, *TransitionEvent)
	OnTransitionComplete func(context.Context, *TransitionEvent)
	OnRegionResolved     func(context.Context, *RegionEvent)
}

// Join returns hooks that invoke h's callbacks and then other's.
func (h LifecycleHooks) Join(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStateEnter:         joinHook(h.OnStateEnter, other.OnStateEnter),
		OnStateExit:          joinHook(h.OnStateExit, other.OnStateExit),
		OnTransitionStart:    joinHook(h.OnTransitionStart, other.OnTransitionStart),
		OnTransitionComplete: joinHook(h.OnTransitionComplete, other.OnTransitionComplete),
		OnRegionResolved:     joinHook(h.OnRegionResolved, other.OnRegionResolved),
	}
}

func joinHook[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
