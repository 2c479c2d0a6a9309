// Package redis provides an ActiveStateStore backed by Redis, so automation
// sessions can resume across process restarts.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/statewalk/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "statewalk:session:"

// Store implements ports.ActiveStateStore on a Redis client.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithPrefix overrides the key prefix (default "statewalk:session:").
func WithPrefix(prefix string) StoreOption {
	return func(s *Store) { s.prefix = prefix }
}

// WithTTL sets an expiry on saved sessions. Zero means no expiry.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.ttl = ttl }
}

// NewFromClient wraps an existing Redis client.
func NewFromClient(client *backend.Client, opts ...StoreOption) *Store {
	s := &Store{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save persists the active set as a JSON array under the session key.
func (s *Store) Save(ctx context.Context, sessionID string, active []domain.StateID) error {
	payload, err := json.Marshal(active)
	if err != nil {
		return fmt.Errorf("encode active states: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+sessionID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

// Load returns the stored active set, or domain.ErrSessionNotFound.
func (s *Store) Load(ctx context.Context, sessionID string) ([]domain.StateID, error) {
	payload, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis load: %w", err)
	}
	var active []domain.StateID
	if err := json.Unmarshal(payload, &active); err != nil {
		return nil, fmt.Errorf("decode active states: %w", err)
	}
	return active, nil
}

// Clear removes the session key. Clearing an unknown session is a no-op.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.prefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis clear: %w", err)
	}
	return nil
}
