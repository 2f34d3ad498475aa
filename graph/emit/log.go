package emit

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
)

// LogEmitter writes each event as one structured log record through log/slog.
//
// Text mode output:
//
//	time=... level=INFO msg=node_end run_id=run-001 step=1 node_id=input_fruit duration_ms=0 graph=fruit updated_keys=[fruit]
//
// JSON mode output:
//
//	{"time":"...","level":"INFO","msg":"node_end","run_id":"run-001","step":1,"node_id":"input_fruit",...}
//
// "graph_error" events are logged at ERROR level and "graph_warning" at WARN;
// everything else is INFO.
type LogEmitter struct {
	logger *slog.Logger
}

// NewLogEmitter creates a LogEmitter writing to writer (os.Stdout when nil).
// jsonMode selects slog's JSON handler instead of the text handler.
func NewLogEmitter(writer io.Writer, jsonMode bool) *LogEmitter {
	if writer == nil {
		writer = os.Stdout
	}
	var handler slog.Handler
	if jsonMode {
		handler = slog.NewJSONHandler(writer, nil)
	} else {
		handler = slog.NewTextHandler(writer, nil)
	}
	return &LogEmitter{logger: slog.New(handler)}
}

// NewSlogEmitter creates a LogEmitter that logs through an existing logger,
// so events share the host program's handler and level.
func NewSlogEmitter(logger *slog.Logger) *LogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEmitter{logger: logger}
}

// Emit logs the event. Meta entries are appended in key order.
func (l *LogEmitter) Emit(event Event) {
	attrs := make([]slog.Attr, 0, 3+len(event.Meta))
	if event.RunID != "" {
		attrs = append(attrs, slog.String("run_id", event.RunID))
	}
	attrs = append(attrs, slog.Int("step", event.Step))
	if event.NodeID != "" {
		attrs = append(attrs, slog.String("node_id", event.NodeID))
	}

	keys := make([]string, 0, len(event.Meta))
	for k := range event.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Meta[k]))
	}

	l.logger.LogAttrs(context.Background(), levelFor(event.Msg), event.Msg, attrs...)
}

func levelFor(msg string) slog.Level {
	switch msg {
	case "graph_error":
		return slog.LevelError
	case "graph_warning":
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
