package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// TestSQLiteStore_FilePersistence verifies history survives reopening a file database.
func TestSQLiteStore_FilePersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	st, err := NewSQLiteStore[testState](path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if st.Path() != path {
		t.Errorf("Path() = %q, want %q", st.Path(), path)
	}
	if err := st.SaveStep(ctx, "run-001", 1, "input_fruit", testState{Fruit: "cherry"}); err != nil {
		t.Fatalf("SaveStep failed: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteStore[testState](path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	state, step, err := reopened.LoadLatest(ctx, "run-001")
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}
	if step != 1 || state.Fruit != "cherry" {
		t.Errorf("got step %d state %+v", step, state)
	}
}

// TestSQLiteStore_Closed verifies operations fail after Close and double close is safe.
func TestSQLiteStore_Closed(t *testing.T) {
	ctx := context.Background()
	st, err := NewSQLiteStore[testState](":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := st.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	if err := st.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}

	if err := st.SaveStep(ctx, "run", 1, "n", testState{}); !errors.Is(err, ErrClosed) {
		t.Errorf("SaveStep after Close: expected ErrClosed, got %v", err)
	}
	if _, _, err := st.LoadLatest(ctx, "run"); !errors.Is(err, ErrClosed) {
		t.Errorf("LoadLatest after Close: expected ErrClosed, got %v", err)
	}
	if _, err := st.Runs(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Runs after Close: expected ErrClosed, got %v", err)
	}
}

// TestSQLiteStore_UnmarshalableState verifies marshal failures surface as errors.
func TestSQLiteStore_UnmarshalableState(t *testing.T) {
	st, err := NewSQLiteStore[map[string]interface{}](":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer st.Close()

	bad := map[string]interface{}{"ch": make(chan int)}
	if err := st.SaveStep(context.Background(), "run", 1, "n", bad); err == nil {
		t.Error("expected marshal error for channel value")
	}
}
