package emit

import "sync"

// BufferedEmitter stores events in memory, grouped by run ID.
//
// It is meant for tests and debugging: run a graph, then query what happened.
// Events are kept until Clear is called.
//
// Example:
//
//	emitter := emit.NewBufferedEmitter()
//	compiled, _ := builder.Compile(graph.WithEmitter(emitter))
//	_, _ = compiled.Invoke(ctx, initial, graph.WithRunID("run-001"))
//
//	routes := emitter.GetHistoryWithFilter("run-001", emit.HistoryFilter{Msg: "route"})
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event // runID -> events
}

// HistoryFilter selects events. Set fields are combined with AND; zero fields
// match everything.
type HistoryFilter struct {
	NodeID  string
	Msg     string
	MinStep *int
	MaxStep *int
}

// NewBufferedEmitter creates an empty BufferedEmitter.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{
		events: make(map[string][]Event),
	}
}

// Emit stores the event under its run ID.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events[event.RunID] = append(b.events[event.RunID], event)
}

// GetHistory returns a copy of the events for runID in emission order.
func (b *BufferedEmitter) GetHistory(runID string) []Event {
	return b.GetHistoryWithFilter(runID, HistoryFilter{})
}

// GetHistoryWithFilter returns the events for runID that match filter, in
// emission order. The result is never nil.
func (b *BufferedEmitter) GetHistoryWithFilter(runID string, filter HistoryFilter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]Event, 0, len(b.events[runID]))
	for _, event := range b.events[runID] {
		if filter.matches(event) {
			result = append(result, event)
		}
	}
	return result
}

// Runs returns the run IDs with at least one stored event, in no particular order.
func (b *BufferedEmitter) Runs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, len(b.events))
	for id := range b.events {
		out = append(out, id)
	}
	return out
}

// Clear removes the events of runID, or of every run when runID is empty.
func (b *BufferedEmitter) Clear(runID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if runID == "" {
		b.events = make(map[string][]Event)
		return
	}
	delete(b.events, runID)
}

func (f HistoryFilter) matches(event Event) bool {
	if f.NodeID != "" && event.NodeID != f.NodeID {
		return false
	}
	if f.Msg != "" && event.Msg != f.Msg {
		return false
	}
	if f.MinStep != nil && event.Step < *f.MinStep {
		return false
	}
	if f.MaxStep != nil && event.Step > *f.MaxStep {
		return false
	}
	return true
}
