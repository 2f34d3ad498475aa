package graph

import "fmt"

// validate checks the structural invariants a graph must hold before it can run.
//
// Only nodes reachable from START must have an outgoing edge. An unreachable
// node never runs, so its missing edge is reported by unreachableWarnings.
func (g *CompiledGraph) validate() error {
	if _, ok := g.edges[START]; !ok {
		return &GraphValidationError{
			Invariant: InvariantNoEntry,
			Message:   "no edge originates at START (call SetEntryPoint)",
		}
	}

	reachable := g.reachable()
	sources := append([]string{START}, g.order...)
	for _, from := range sources {
		e, ok := g.edges[from]
		if !ok {
			if !reachable[from] {
				continue
			}
			return &GraphValidationError{
				Invariant: InvariantDeadEnd,
				Node:      from,
				Message:   "node has no outgoing edge",
			}
		}

		for _, to := range e.destinations() {
			if to == END {
				continue
			}
			if _, ok := g.nodes[to]; !ok {
				return &GraphValidationError{
					Invariant: InvariantMissingDestination,
					Node:      from,
					Message:   "edge points at unregistered node " + to,
				}
			}
		}

		if !e.conditional() {
			continue
		}
		if len(e.routes) == 0 {
			return &GraphValidationError{
				Invariant: InvariantEmptyRouteMap,
				Node:      from,
				Message:   "conditional edge has no routes",
			}
		}
		if keyed, ok := e.router.(KeyedRouter); ok {
			for _, key := range keyed.Keys() {
				if _, mapped := e.routes[key]; !mapped {
					return &GraphValidationError{
						Invariant: InvariantUncoveredRoute,
						Node:      from,
						Message:   fmt.Sprintf("router key %q has no destination", key),
					}
				}
			}
		}
	}

	return nil
}

// reachable walks the graph breadth-first from START and returns every node
// it visits, START included.
func (g *CompiledGraph) reachable() map[string]bool {
	seen := map[string]bool{START: true}
	queue := []string{START}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		e, ok := g.edges[cur]
		if !ok {
			continue
		}
		for _, to := range e.destinations() {
			if to == END || seen[to] {
				continue
			}
			seen[to] = true
			queue = append(queue, to)
		}
	}
	return seen
}

// unreachableWarnings reports every registered node that START never leads to.
func (g *CompiledGraph) unreachableWarnings() []string {
	seen := g.reachable()

	var warnings []string
	for _, name := range g.order {
		if seen[name] {
			continue
		}
		w := "node " + name + " is unreachable from START"
		if _, ok := g.edges[name]; !ok {
			w += " and has no outgoing edge"
		}
		warnings = append(warnings, w)
	}
	return warnings
}
