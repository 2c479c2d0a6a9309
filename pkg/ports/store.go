package ports

import (
	"context"

	"github.com/aretw0/statewalk/pkg/domain"
)

// ActiveStateStore persists the set of currently active states under a
// session id, so an automation run can resume where it left off. Load returns
// domain.ErrSessionNotFound for unknown sessions.
type ActiveStateStore interface {
	Save(ctx context.Context, sessionID string, active []domain.StateID) error
	Load(ctx context.Context, sessionID string) ([]domain.StateID, error)
	Clear(ctx context.Context, sessionID string) error
}
