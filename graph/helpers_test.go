package graph

import (
	"context"
	"sync"
	"testing"

	"github.com/dshills/stategraph-go/graph/emit"
)

// setNode returns a node whose partial state sets key to value.
func setNode(key string, value any) NodeFunc {
	return func(ctx context.Context, s State) (State, error) {
		return NewState().With(key, value), nil
	}
}

// noopNode returns an empty partial state.
func noopNode() NodeFunc {
	return func(ctx context.Context, s State) (State, error) {
		return NewState(), nil
	}
}

// constRouter always returns key.
func constRouter(key RouteKey) RouterFunc {
	return func(ctx context.Context, s State) (RouteKey, error) {
		return key, nil
	}
}

// mockEmitter is a test implementation of emit.Emitter.
type mockEmitter struct {
	mu     sync.Mutex
	events []emit.Event
}

func (m *mockEmitter) Emit(event emit.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockEmitter) messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.Msg
	}
	return out
}

// mustBuild fails the test on any builder error.
func mustBuild(t *testing.T, errs ...error) {
	t.Helper()
	for _, err := range errs {
		if err != nil {
			t.Fatalf("builder error: %v", err)
		}
	}
}
