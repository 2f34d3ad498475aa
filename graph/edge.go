// Package graph provides a state-graph workflow engine.
//
// A Builder collects named nodes and the edges between them. Compile validates
// the definition and returns an immutable CompiledGraph, which Invoke runs from
// START to END against a shared, incrementally merged State.
package graph

import (
	"context"
	"sort"
)

// Reserved pseudo-node names marking the fixed entry and exit of every graph.
// They can appear in edges but are never bound to a Node.
const (
	START = "__start__"
	END   = "__end__"
)

// RouteKey names one outcome of a conditional edge's router.
type RouteKey string

// Router decides which outcome a conditional edge takes.
//
// Route is called with the running state after the source node's partial
// state has been merged, so it always sees the freshest values.
type Router interface {
	Route(ctx context.Context, state State) (RouteKey, error)
}

// RouterFunc is a function adapter that implements the Router interface.
type RouterFunc func(ctx context.Context, state State) (RouteKey, error)

// Route implements the Router interface for RouterFunc.
func (f RouterFunc) Route(ctx context.Context, state State) (RouteKey, error) {
	return f(ctx, state)
}

// KeyedRouter is a Router that declares the closed set of keys it can return.
// Compile checks that every declared key has a destination in the route map.
type KeyedRouter interface {
	Router
	Keys() []RouteKey
}

// Routes wraps fn in a KeyedRouter declaring keys as its possible outcomes.
//
// Example:
//
//	const (
//	    toConfirm RouteKey = "to_confirm_fruit"
//	    toError   RouteKey = "to_error"
//	)
//	router := graph.Routes(func(ctx context.Context, s graph.State) (graph.RouteKey, error) {
//	    if s.GetString("fruit") == "error" {
//	        return toError, nil
//	    }
//	    return toConfirm, nil
//	}, toConfirm, toError)
func Routes(fn RouterFunc, keys ...RouteKey) KeyedRouter {
	declared := make([]RouteKey, len(keys))
	copy(declared, keys)
	return &keyedRouter{fn: fn, keys: declared}
}

type keyedRouter struct {
	fn   RouterFunc
	keys []RouteKey
}

func (r *keyedRouter) Route(ctx context.Context, state State) (RouteKey, error) {
	return r.fn(ctx, state)
}

func (r *keyedRouter) Keys() []RouteKey {
	out := make([]RouteKey, len(r.keys))
	copy(out, r.keys)
	return out
}

// edge is the single outgoing connection of a source node.
// Exactly one of to or router is set.
type edge struct {
	to     string
	router Router
	routes map[RouteKey]string
}

func (e edge) conditional() bool {
	return e.router != nil
}

// destinations lists every node the edge can lead to, in route-key order for
// conditional edges.
func (e edge) destinations() []string {
	if !e.conditional() {
		return []string{e.to}
	}
	keys := sortedKeys(e.routes)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.routes[k])
	}
	return out
}

// EdgeInfo describes one connection of a compiled graph for introspection
// and rendering. Conditional edges produce one EdgeInfo per route key.
type EdgeInfo struct {
	From        string
	To          string
	Key         RouteKey
	Conditional bool
}

func sortedKeys(routes map[RouteKey]string) []RouteKey {
	keys := make([]RouteKey, 0, len(routes))
	for k := range routes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
