// Package store records the step-by-step history of graph invocations.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested run ID has no recorded steps.
var ErrNotFound = errors.New("not found")

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Store records the running state after each node execution.
//
// It is an audit trail: the engine writes to it and never reads it back, so a
// recorded run is never resumed. Callers use LoadLatest and History to inspect
// what an invocation did.
//
// Implementations:
//   - MemStore: in-process maps
//   - SQLiteStore: single-file or in-memory SQLite database
//   - MySQLStore: MySQL/MariaDB
//
// Type parameter S is the state type to persist. SQL stores require it to be
// JSON-serializable.
type Store[S any] interface {
	// SaveStep records state after the node nodeID ran as step number step
	// (1-indexed) of run runID. Saving the same runID and step again replaces
	// the earlier record.
	SaveStep(ctx context.Context, runID string, step int, nodeID string, state S) error

	// LoadLatest returns the state with the highest step number for runID,
	// or ErrNotFound.
	LoadLatest(ctx context.Context, runID string) (state S, step int, err error)

	// History returns every recorded step of runID ordered by step number,
	// or ErrNotFound.
	History(ctx context.Context, runID string) ([]StepRecord[S], error)

	// Runs returns the IDs of all recorded runs in lexical order.
	Runs(ctx context.Context) ([]string, error)
}

// StepRecord is a single recorded execution step.
type StepRecord[S any] struct {
	// Step is the sequential step number (1-indexed).
	Step int

	// NodeID identifies which node produced this state.
	NodeID string

	// State is the running state after the node's partial state was merged.
	State S
}
