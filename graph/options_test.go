package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dshills/stategraph-go/graph/emit"
	"github.com/dshills/stategraph-go/graph/store"
)

// failingStore rejects every write.
type failingStore struct {
	store.MemStore[State]
	err error
}

func (f *failingStore) SaveStep(ctx context.Context, runID string, step int, nodeID string, state State) error {
	return f.err
}

func TestOptions_Apply(t *testing.T) {
	emitter := emit.NewNullEmitter()
	mem := store.NewMemStore[State]()

	cfg, err := engineConfig{}.apply([]Option{
		WithMaxSteps(10),
		nil,
		WithEmitter(emitter),
		WithStore(mem),
		WithRunID("run-1"),
		WithNodeTimeout(time.Second),
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if cfg.opts.MaxSteps != 10 {
		t.Errorf("MaxSteps = %d", cfg.opts.MaxSteps)
	}
	if cfg.opts.Emitter != emitter {
		t.Error("Emitter not set")
	}
	if cfg.opts.Store != store.Store[State](mem) {
		t.Error("Store not set")
	}
	if cfg.opts.RunID != "run-1" {
		t.Errorf("RunID = %q", cfg.opts.RunID)
	}
	if cfg.opts.NodeTimeout != time.Second {
		t.Errorf("NodeTimeout = %v", cfg.opts.NodeTimeout)
	}
}

func TestOptions_LaterOverridesEarlier(t *testing.T) {
	cfg, err := engineConfig{}.apply([]Option{WithMaxSteps(1), WithMaxSteps(5)})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if cfg.opts.MaxSteps != 5 {
		t.Errorf("MaxSteps = %d, want 5", cfg.opts.MaxSteps)
	}
}

func TestOptions_WithOptionsReplacesAll(t *testing.T) {
	cfg, err := engineConfig{}.apply([]Option{
		WithRunID("dropped"),
		WithOptions(Options{MaxSteps: 3}),
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if cfg.opts.RunID != "" || cfg.opts.MaxSteps != 3 {
		t.Errorf("opts = %+v", cfg.opts)
	}
}

func TestOptions_Invalid(t *testing.T) {
	for name, opt := range map[string]Option{
		"negative max steps":    WithMaxSteps(-1),
		"negative node timeout": WithNodeTimeout(-time.Second),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := engineConfig{}.apply([]Option{opt})
			var engineErr *EngineError
			if !errors.As(err, &engineErr) || engineErr.Code != CodeInvalidOption {
				t.Errorf("expected INVALID_OPTION, got %v", err)
			}
		})
	}
}

func TestOptions_InvalidAtInvoke(t *testing.T) {
	g := linearGraph(t)
	if _, err := g.Invoke(context.Background(), NewState(), WithMaxSteps(-2)); err == nil {
		t.Error("expected error for negative MaxSteps at Invoke")
	}
}

func TestOptions_InvokeOverrideDoesNotLeak(t *testing.T) {
	compileEmitter := &mockEmitter{}
	invokeEmitter := &mockEmitter{}
	g := linearGraph(t, WithEmitter(compileEmitter))

	if _, err := g.Invoke(context.Background(), NewState(), WithEmitter(invokeEmitter)); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if len(compileEmitter.events) != 0 || len(invokeEmitter.events) == 0 {
		t.Fatalf("override not applied: compile=%d invoke=%d", len(compileEmitter.events), len(invokeEmitter.events))
	}

	if _, err := g.Invoke(context.Background(), NewState()); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if len(compileEmitter.events) == 0 {
		t.Error("compile-time emitter not restored for the next invocation")
	}
}

// TestWithStore_RecordsEveryStep verifies history holds the post-merge state per step.
func TestWithStore_RecordsEveryStep(t *testing.T) {
	mem := store.NewMemStore[State]()
	g := linearGraph(t, WithStore(mem))
	ctx := context.Background()

	final, err := g.Invoke(ctx, NewState().With("path", ""), WithRunID("hist-1"))
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	history, err := mem.History(ctx, "hist-1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	if history[0].Step != 1 || history[0].NodeID != "a" || history[0].State.GetString("path") != "a" {
		t.Errorf("history[0] = %+v", history[0])
	}
	if history[1].Step != 2 || history[1].NodeID != "b" {
		t.Errorf("history[1] = %+v", history[1])
	}

	latest, step, err := mem.LoadLatest(ctx, "hist-1")
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}
	if step != 2 || !latest.Equal(final) {
		t.Errorf("latest = %v at step %d, final = %v", latest, step, final)
	}
}
