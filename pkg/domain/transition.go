package domain

import "context"

// TransitionKind tags the two transition variants.
type TransitionKind string

const (
	// TransitionSequence is a declarative transition: an ordered TaskSequence
	// of action steps.
	TransitionSequence TransitionKind = "sequence"
	// TransitionCode is a code-defined transition: an opaque boolean function.
	TransitionCode TransitionKind = "code"
	// TransitionReturn is a dynamic return to a covered state: the covering
	// state exits and the states it hid resurface. Synthesized by the
	// executor from the hidden index, never registered on the graph.
	TransitionReturn TransitionKind = "return"
)

// TransitionFunc is the body of a code-defined transition. A returned error
// is treated as a genuine automation failure and propagates to the caller
// uncaught; a false result is a normal "did not work" outcome.
type TransitionFunc func(ctx context.Context) (bool, error)

// Transition is a directed hyper-edge of the state graph: it belongs to one
// source state and activates one or more target states. Exactly one of
// Sequence or Run is set; Kind reports which. Transitions are immutable once
// constructed.
type Transition struct {
	Name string
	From StateID

	// Activate lists every state this transition switches on (hyper-edge).
	Activate []StateID
	// Exit lists states deactivated as part of the transition.
	Exit []StateID

	// Score is the path cost of traversing this edge. Lower is preferred.
	Score int

	// StaysVisible reports whether the source state remains active after the
	// transition. When false the source exits and its hidden states resurface.
	StaysVisible bool

	// RequireArrival marks the transition for arrival verification: after the
	// targets activate, the per-state arrival check must pass or the whole
	// path execution fails.
	RequireArrival bool

	Sequence *TaskSequence
	Run      TransitionFunc
}

// Kind reports the transition variant. Sequence wins if both are set, but
// constructors should never produce that.
func (t *Transition) Kind() TransitionKind {
	if t.Sequence != nil {
		return TransitionSequence
	}
	return TransitionCode
}

// ActivatesTarget reports whether the transition switches on the given state.
func (t *Transition) ActivatesTarget(id StateID) bool {
	for _, a := range t.Activate {
		if a == id {
			return true
		}
	}
	return false
}

// TaskStep is one action of a declarative transition: an action configuration
// applied to a collection of target objects.
type TaskStep struct {
	Action  ActionConfig
	Targets ObjectCollection
}

// TaskSequence is the ordered list of steps realizing one declarative
// transition. A step's failure does not abort the sequence; the outcome of
// the whole sequence is the success flag of its last step.
type TaskSequence struct {
	Steps []TaskStep
}
