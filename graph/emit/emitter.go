// Package emit delivers observability events produced while a graph runs.
package emit

// Emitter receives observability events from graph compilation and execution.
//
// The engine never logs on its own; everything it wants to report is an Event
// handed to an Emitter. Implementations decide where events go:
//   - LogEmitter: structured log lines through log/slog
//   - BufferedEmitter: in-memory per-run history, mostly for tests
//   - OTelEmitter: OpenTelemetry spans
//   - MultiEmitter: fan-out to several emitters
//   - NullEmitter: discard
//
// Emit must not block execution for long and must not panic. A CompiledGraph
// may be invoked from several goroutines, so implementations must be safe for
// concurrent use.
type Emitter interface {
	Emit(event Event)
}
