package ports

import (
	"context"

	"github.com/aretw0/statewalk/pkg/domain"
)

// ActionPerformer executes one GUI action against a collection of target
// objects. It is the boundary to the pixel/pattern-matching layer: screen
// capture, template matching and input injection all live behind it.
//
// A nil-error return with Success=false is a normal "not found / not done"
// outcome. A non-nil error is a genuine automation failure (e.g. the target
// application crashed) and propagates uncaught through the executor.
type ActionPerformer interface {
	Perform(ctx context.Context, action domain.ActionConfig, targets domain.ObjectCollection) (*domain.ActionResult, error)
}

// PerformerFunc adapts a function to the ActionPerformer interface.
type PerformerFunc func(ctx context.Context, action domain.ActionConfig, targets domain.ObjectCollection) (*domain.ActionResult, error)

// Perform implements ActionPerformer.
func (f PerformerFunc) Perform(ctx context.Context, action domain.ActionConfig, targets domain.ObjectCollection) (*domain.ActionResult, error) {
	return f(ctx, action, targets)
}
