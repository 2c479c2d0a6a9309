package domain

import "errors"

// ErrStateNotFound is returned when a state id or name is not registered.
var ErrStateNotFound = errors.New("state not found")

// ErrNoPath is returned when no transition chain connects the active states
// to the requested target. It is a normal outcome, distinct from a path that
// failed mid-execution.
var ErrNoPath = errors.New("no path to target state")

// ErrPathsExhausted is returned when every candidate path failed during
// execution. The caller should re-plan from the current active states.
var ErrPathsExhausted = errors.New("all paths to target failed")

// ErrSessionNotFound is returned when an active-state snapshot cannot be
// found in the store.
var ErrSessionNotFound = errors.New("session not found")
