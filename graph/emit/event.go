package emit

// Event is one observation emitted during compilation or an invocation.
//
// Messages emitted by the engine:
//   - "graph_warning": non-fatal compile finding (Meta "warning")
//   - "graph_start", "graph_end", "graph_error": invocation boundaries
//     ("graph_end" carries "steps" and "duration_ms", "graph_error" carries "error")
//   - "node_start", "node_end": one node execution ("node_end" carries
//     "duration_ms" and "updated_keys")
//   - "route": a conditional edge decision (Meta "route_key" and "to")
//
// Every engine event carries Meta "graph" with the graph name.
type Event struct {
	// RunID identifies the invocation. Empty for compile-time events.
	RunID string

	// Step is the 1-indexed node execution count within the invocation.
	// Zero before the first node runs.
	Step int

	// NodeID is the node the event concerns. Empty for invocation-level events.
	NodeID string

	// Msg names the kind of event.
	Msg string

	// Meta holds event-specific structured data.
	Meta map[string]interface{}
}
