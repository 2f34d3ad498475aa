package store

import (
	"context"
	"sort"
	"sync"
)

// MemStore is an in-memory implementation of Store[S].
//
// Designed for tests, development and short-lived processes; history is lost
// when the process exits. MemStore is safe for concurrent use.
//
// States are stored as given. The engine hands every step its own copy, so
// records are not affected by later execution.
type MemStore[S any] struct {
	mu    sync.RWMutex
	steps map[string][]StepRecord[S] // runID -> steps ordered by step number
}

// NewMemStore creates a new in-memory store.
//
// Example:
//
//	history := store.NewMemStore[graph.State]()
//	compiled, _ := builder.Compile(graph.WithStore(history))
func NewMemStore[S any]() *MemStore[S] {
	return &MemStore[S]{
		steps: make(map[string][]StepRecord[S]),
	}
}

// SaveStep records a step, replacing an existing record with the same step number.
func (m *MemStore[S]) SaveStep(_ context.Context, runID string, step int, nodeID string, state S) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record := StepRecord[S]{Step: step, NodeID: nodeID, State: state}
	records := m.steps[runID]

	i := sort.Search(len(records), func(i int) bool { return records[i].Step >= step })
	if i < len(records) && records[i].Step == step {
		records[i] = record
		return nil
	}

	records = append(records, StepRecord[S]{})
	copy(records[i+1:], records[i:])
	records[i] = record
	m.steps[runID] = records
	return nil
}

// LoadLatest returns the highest-numbered step of runID.
func (m *MemStore[S]) LoadLatest(_ context.Context, runID string) (state S, step int, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.steps[runID]
	if len(records) == 0 {
		var zero S
		return zero, 0, ErrNotFound
	}
	latest := records[len(records)-1]
	return latest.State, latest.Step, nil
}

// History returns a copy of the recorded steps of runID.
func (m *MemStore[S]) History(_ context.Context, runID string) ([]StepRecord[S], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.steps[runID]
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	out := make([]StepRecord[S], len(records))
	copy(out, records)
	return out, nil
}

// Runs returns the recorded run IDs in lexical order.
func (m *MemStore[S]) Runs(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.steps))
	for id := range m.steps {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
