package graph

import (
	"github.com/dshills/stategraph-go/graph/emit"
)

// CompiledGraph is the immutable, validated form of a Builder's definition.
//
// It is never modified after Compile returns, so any number of goroutines may
// call Invoke on the same CompiledGraph at once; each invocation owns its own
// running state.
type CompiledGraph struct {
	name     string
	order    []string
	nodes    map[string]Node
	edges    map[string]edge
	warnings []string
	cfg      engineConfig
}

// Compile validates the accumulated definition and returns a CompiledGraph.
//
// The definition is copied, so later changes to the Builder do not affect the
// result. opts become the default options of every invocation.
//
// Returns *GraphValidationError naming the violated invariant. Nodes that
// cannot be reached from START do not fail compilation; they are reported by
// Warnings and emitted as "graph_warning" events.
func (b *Builder) Compile(opts ...Option) (*CompiledGraph, error) {
	cfg, err := engineConfig{}.apply(opts)
	if err != nil {
		return nil, err
	}

	g := &CompiledGraph{
		name:  b.name,
		order: make([]string, len(b.order)),
		nodes: make(map[string]Node, len(b.nodes)),
		edges: make(map[string]edge, len(b.edges)),
		cfg:   cfg,
	}
	copy(g.order, b.order)
	for name, n := range b.nodes {
		g.nodes[name] = n
	}
	for from, e := range b.edges {
		if e.conditional() {
			routes := make(map[RouteKey]string, len(e.routes))
			for k, v := range e.routes {
				routes[k] = v
			}
			e.routes = routes
		}
		g.edges[from] = e
	}

	if err := g.validate(); err != nil {
		return nil, err
	}
	g.warnings = g.unreachableWarnings()

	if emitter := cfg.opts.Emitter; emitter != nil {
		for _, w := range g.warnings {
			emitter.Emit(emit.Event{
				Msg:  "graph_warning",
				Meta: map[string]interface{}{"graph": g.name, "warning": w},
			})
		}
	}

	return g, nil
}

// Name returns the graph name given to NewBuilder.
func (g *CompiledGraph) Name() string {
	return g.name
}

// Nodes returns the registered node names in registration order.
func (g *CompiledGraph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Edges lists every connection: START's edge first, then each node's edge in
// registration order. Conditional edges yield one entry per route key, sorted by key.
func (g *CompiledGraph) Edges() []EdgeInfo {
	sources := append([]string{START}, g.order...)
	out := make([]EdgeInfo, 0, len(g.edges))
	for _, from := range sources {
		e, ok := g.edges[from]
		if !ok {
			continue
		}
		if !e.conditional() {
			out = append(out, EdgeInfo{From: from, To: e.to})
			continue
		}
		for _, key := range sortedKeys(e.routes) {
			out = append(out, EdgeInfo{From: from, To: e.routes[key], Key: key, Conditional: true})
		}
	}
	return out
}

// Warnings returns non-fatal findings from Compile, such as unreachable nodes.
func (g *CompiledGraph) Warnings() []string {
	out := make([]string, len(g.warnings))
	copy(out, g.warnings)
	return out
}
