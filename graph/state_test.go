package graph

import (
	"encoding/json"
	"testing"
)

// TestState_ZeroValue verifies the zero State is usable.
func TestState_ZeroValue(t *testing.T) {
	var s State

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("Get on empty state reported present")
	}
	if got := s.GetString("missing"); got != "" {
		t.Errorf("GetString() = %q, want empty", got)
	}

	s.Set("fruit", "apple")
	if got := s.GetString("fruit"); got != "apple" {
		t.Errorf("GetString() = %q, want apple", got)
	}
}

// TestState_Merge verifies key-wise overwrite that never clears fields.
func TestState_Merge(t *testing.T) {
	t.Run("overwrites mentioned keys only", func(t *testing.T) {
		running := NewState().With("a", 0).With("b", 2)
		running.Merge(NewState().With("a", 1))

		want := NewState().With("a", 1).With("b", 2)
		if !running.Equal(want) {
			t.Errorf("merged = %v, want %v", running, want)
		}
	})

	t.Run("empty partial changes nothing", func(t *testing.T) {
		running := NewState().With("fruit", "apple")
		running.Merge(NewState())

		if running.Len() != 1 || running.GetString("fruit") != "apple" {
			t.Errorf("merged = %v", running)
		}
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		partial := NewState().With("fruit", "error").With("final_result", "error")

		once := NewState().With("init_input", "mango")
		once.Merge(partial)

		twice := once.Clone()
		twice.Merge(partial)

		if !once.Equal(twice) {
			t.Errorf("once = %v, twice = %v", once, twice)
		}
	})

	t.Run("nil value is present", func(t *testing.T) {
		running := NewState().With("fruit", "apple")
		running.Merge(NewState().With("fruit", nil))

		v, ok := running.Get("fruit")
		if !ok || v != nil {
			t.Errorf("Get() = %v, %v; want nil, true", v, ok)
		}
	})
}

// TestState_KeyOrder verifies insertion order is kept and overwrites keep position.
func TestState_KeyOrder(t *testing.T) {
	s := NewState().With("init_input", "apple").With("fruit", "apple")
	s.Merge(NewState().With("final_result", "done").With("init_input", "APPLE"))

	want := []string{"init_input", "fruit", "final_result"}
	got := s.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if str := s.String(); str != "{init_input: APPLE, fruit: apple, final_result: done}" {
		t.Errorf("String() = %q", str)
	}
}

// TestState_CloneIsolation verifies clones and With never alias the original.
func TestState_CloneIsolation(t *testing.T) {
	original := NewState().With("fruit", "apple")

	clone := original.Clone()
	clone.Set("fruit", "banana")
	clone.Set("extra", true)

	derived := original.With("fruit", "cherry")

	if got := original.GetString("fruit"); got != "apple" {
		t.Errorf("original fruit = %q, want apple", got)
	}
	if original.Has("extra") {
		t.Error("original gained a key from its clone")
	}
	if got := derived.GetString("fruit"); got != "cherry" {
		t.Errorf("derived fruit = %q, want cherry", got)
	}

	m := original.Map()
	m["fruit"] = "mutated"
	if got := original.GetString("fruit"); got != "apple" {
		t.Errorf("Map() aliased state: fruit = %q", got)
	}
}

// TestStateFrom verifies map construction is deterministic.
func TestStateFrom(t *testing.T) {
	s := StateFrom(map[string]any{"user_confirmation": "yes", "init_input": "apple"})

	keys := s.Keys()
	if len(keys) != 2 || keys[0] != "init_input" || keys[1] != "user_confirmation" {
		t.Errorf("Keys() = %v, want sorted", keys)
	}
}

// TestState_Equal verifies value comparison ignores key order.
func TestState_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b State
		want bool
	}{
		{"both empty", NewState(), State{}, true},
		{"different order", NewState().With("a", 1).With("b", 2), NewState().With("b", 2).With("a", 1), true},
		{"different value", NewState().With("a", 1), NewState().With("a", 2), false},
		{"missing key", NewState().With("a", 1), NewState().With("a", 1).With("b", 2), false},
		{"deep values", NewState().With("l", []string{"x"}), NewState().With("l", []string{"x"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestState_JSON verifies JSON encoding keeps key order and decodes back.
func TestState_JSON(t *testing.T) {
	s := NewState().With("init_input", "apple").With("fruit", "apple").With("count", 2)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"init_input":"apple","fruit":"apple","count":2}` {
		t.Errorf("Marshal = %s", data)
	}

	var decoded State
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if keys := decoded.Keys(); keys[0] != "init_input" || keys[2] != "count" {
		t.Errorf("decoded keys = %v", keys)
	}
	if v, _ := decoded.Get("count"); v != float64(2) {
		t.Errorf("count = %#v, want float64(2)", v)
	}

	if err := json.Unmarshal([]byte(`["not", "an", "object"]`), &decoded); err == nil {
		t.Error("expected error decoding a JSON array")
	}
	if _, err := json.Marshal(NewState().With("ch", make(chan int))); err == nil {
		t.Error("expected error encoding a channel value")
	}
}
