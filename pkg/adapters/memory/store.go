// Package memory provides an in-memory ActiveStateStore, mainly for tests
// and single-process runs.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/statewalk/pkg/domain"
)

// Store implements ports.ActiveStateStore in memory. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string][]domain.StateID
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]domain.StateID)}
}

// Save persists a snapshot of the active set.
func (s *Store) Save(ctx context.Context, sessionID string, active []domain.StateID) error {
	snapshot := append([]domain.StateID(nil), active...)
	s.mu.Lock()
	s.data[sessionID] = snapshot
	s.mu.Unlock()
	return nil
}

// Load returns the stored active set, or domain.ErrSessionNotFound.
func (s *Store) Load(ctx context.Context, sessionID string) ([]domain.StateID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return append([]domain.StateID(nil), snapshot...), nil
}

// Clear removes the session. Clearing an unknown session is a no-op.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.data, sessionID)
	s.mu.Unlock()
	return nil
}
