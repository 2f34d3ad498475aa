package emit

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// TestLogEmitter_TextOutput verifies the text handler includes all event fields.
func TestLogEmitter_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewLogEmitter(&buf, false)

	emitter.Emit(Event{
		RunID:  "run-001",
		Step:   1,
		NodeID: "input_fruit",
		Msg:    "node_end",
		Meta:   map[string]interface{}{"graph": "fruit", "duration_ms": int64(3)},
	})

	output := buf.String()
	for _, want := range []string{
		"level=INFO",
		"msg=node_end",
		"run_id=run-001",
		"step=1",
		"node_id=input_fruit",
		"duration_ms=3",
		"graph=fruit",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
	if strings.Index(output, "duration_ms") > strings.Index(output, "graph=") {
		t.Errorf("expected meta keys in sorted order, got: %s", output)
	}
}

// TestLogEmitter_JSONOutput verifies JSON mode writes one parseable object per event.
func TestLogEmitter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewLogEmitter(&buf, true)

	emitter.Emit(Event{RunID: "run-001", Step: 0, Msg: "graph_start"})
	emitter.Emit(Event{RunID: "run-001", Step: 2, NodeID: "error", Msg: "node_end"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	var record map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &record); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	if record["msg"] != "node_end" {
		t.Errorf("msg = %v, want node_end", record["msg"])
	}
	if record["node_id"] != "error" {
		t.Errorf("node_id = %v, want error", record["node_id"])
	}
	if record["step"] != float64(2) {
		t.Errorf("step = %v, want 2", record["step"])
	}
}

// TestLogEmitter_Levels verifies error and warning events are logged at higher levels.
func TestLogEmitter_Levels(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"graph_error", "level=ERROR"},
		{"graph_warning", "level=WARN"},
		{"route", "level=INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogEmitter(&buf, false).Emit(Event{Msg: tt.msg})
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, buf.String())
			}
		})
	}
}

// TestNewSlogEmitter verifies events honour the supplied logger's level.
func TestNewSlogEmitter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	emitter := NewSlogEmitter(logger)

	emitter.Emit(Event{Msg: "node_start"})
	if buf.Len() != 0 {
		t.Errorf("expected INFO event to be filtered, got %q", buf.String())
	}

	emitter.Emit(Event{Msg: "graph_error", Meta: map[string]interface{}{"error": "boom"}})
	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("expected error event, got %q", buf.String())
	}
}
