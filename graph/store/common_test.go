package store

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
)

type testState struct {
	Fruit       string `json:"fruit"`
	FinalResult string `json:"final_result"`
	Visits      int    `json:"visits"`
}

// storeFactories returns a constructor per backend. MySQL runs only when
// TEST_MYSQL_DSN is set.
func storeFactories(t *testing.T) map[string]func(t *testing.T) Store[testState] {
	t.Helper()
	return map[string]func(t *testing.T) Store[testState]{
		"memory": func(t *testing.T) Store[testState] {
			return NewMemStore[testState]()
		},
		"sqlite": func(t *testing.T) Store[testState] {
			st, err := NewSQLiteStore[testState](":memory:")
			if err != nil {
				t.Fatalf("NewSQLiteStore failed: %v", err)
			}
			t.Cleanup(func() { _ = st.Close() })
			return st
		},
		"mysql": func(t *testing.T) Store[testState] {
			dsn := os.Getenv("TEST_MYSQL_DSN")
			if dsn == "" {
				t.Skip("TEST_MYSQL_DSN not set")
			}
			st, err := NewMySQLStore[testState](dsn)
			if err != nil {
				t.Fatalf("NewMySQLStore failed: %v", err)
			}
			t.Cleanup(func() {
				_, _ = st.db.Exec("DELETE FROM graph_steps WHERE run_id LIKE 'test-%'")
				_ = st.Close()
			})
			return st
		},
	}
}

// TestStore_Contract runs the same behavioural checks against every backend.
func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("load latest of unknown run", func(t *testing.T) {
				st := newStore(t)
				_, _, err := st.LoadLatest(ctx, "test-missing")
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("expected ErrNotFound, got %v", err)
				}
				if _, err := st.History(ctx, "test-missing"); !errors.Is(err, ErrNotFound) {
					t.Errorf("expected ErrNotFound from History, got %v", err)
				}
			})

			t.Run("save and load latest", func(t *testing.T) {
				st := newStore(t)
				steps := []struct {
					node  string
					state testState
				}{
					{"input_fruit", testState{Fruit: "apple"}},
					{"review_fruit", testState{Fruit: "apple", Visits: 1}},
					{"confirm_fruit", testState{Fruit: "apple", FinalResult: "ok", Visits: 1}},
				}
				for i, s := range steps {
					if err := st.SaveStep(ctx, "test-run-1", i+1, s.node, s.state); err != nil {
						t.Fatalf("SaveStep %d failed: %v", i+1, err)
					}
				}

				state, step, err := st.LoadLatest(ctx, "test-run-1")
				if err != nil {
					t.Fatalf("LoadLatest failed: %v", err)
				}
				if step != 3 {
					t.Errorf("step = %d, want 3", step)
				}
				if state != steps[2].state {
					t.Errorf("state = %+v, want %+v", state, steps[2].state)
				}
			})

			t.Run("history is ordered by step", func(t *testing.T) {
				st := newStore(t)
				_ = st.SaveStep(ctx, "test-run-2", 2, "error", testState{FinalResult: "error"})
				_ = st.SaveStep(ctx, "test-run-2", 1, "input_fruit", testState{Fruit: "error"})

				history, err := st.History(ctx, "test-run-2")
				if err != nil {
					t.Fatalf("History failed: %v", err)
				}
				want := []StepRecord[testState]{
					{Step: 1, NodeID: "input_fruit", State: testState{Fruit: "error"}},
					{Step: 2, NodeID: "error", State: testState{FinalResult: "error"}},
				}
				if !reflect.DeepEqual(history, want) {
					t.Errorf("history = %+v, want %+v", history, want)
				}
			})

			t.Run("saving a step twice replaces it", func(t *testing.T) {
				st := newStore(t)
				_ = st.SaveStep(ctx, "test-run-3", 1, "input_fruit", testState{Fruit: "mango"})
				_ = st.SaveStep(ctx, "test-run-3", 1, "input_fruit", testState{Fruit: "apple"})

				history, err := st.History(ctx, "test-run-3")
				if err != nil {
					t.Fatalf("History failed: %v", err)
				}
				if len(history) != 1 || history[0].State.Fruit != "apple" {
					t.Errorf("expected single replaced record, got %+v", history)
				}
			})

			t.Run("runs are isolated and listed", func(t *testing.T) {
				st := newStore(t)
				_ = st.SaveStep(ctx, "test-run-b", 1, "n", testState{Visits: 2})
				_ = st.SaveStep(ctx, "test-run-a", 1, "n", testState{Visits: 1})

				state, _, err := st.LoadLatest(ctx, "test-run-a")
				if err != nil {
					t.Fatalf("LoadLatest failed: %v", err)
				}
				if state.Visits != 1 {
					t.Errorf("run a leaked state from run b: %+v", state)
				}

				runs, err := st.Runs(ctx)
				if err != nil {
					t.Fatalf("Runs failed: %v", err)
				}
				idxA, idxB := indexOf(runs, "test-run-a"), indexOf(runs, "test-run-b")
				if idxA < 0 || idxB < 0 || idxA > idxB {
					t.Errorf("runs = %v, want test-run-a before test-run-b", runs)
				}
			})
		})
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
