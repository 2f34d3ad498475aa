// Package logging builds the fruitgraph event logger.
package logging

import (
	"io"
	"log/slog"
)

// New creates a logger writing to w in the given format ("text" or "json").
// It standardizes the "error" key to "err".
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
