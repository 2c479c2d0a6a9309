package ports

import (
	"context"

	"github.com/aretw0/statewalk/pkg/domain"
)

// ArrivalVerifier is the per-state arrival check invoked after a transition
// activates its targets. A false result marks the path execution failed even
// though the transition itself succeeded; an error propagates uncaught.
//
// A nil verifier on the executor means no arrival checks are declared.
type ArrivalVerifier interface {
	VerifyArrival(ctx context.Context, state domain.StateID) (bool, error)
}

// VerifierFunc adapts a function to the ArrivalVerifier interface.
type VerifierFunc func(ctx context.Context, state domain.StateID) (bool, error)

// VerifyArrival implements ArrivalVerifier.
func (f VerifierFunc) VerifyArrival(ctx context.Context, state domain.StateID) (bool, error) {
	return f(ctx, state)
}
