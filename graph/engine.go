package graph

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/stategraph-go/graph/emit"
)

// Invoke runs one invocation from START to END and returns the final state.
//
// Execution:
//  1. Copies initial into a private running state (initial is never mutated)
//  2. Resolves the entry node from START's edge
//  3. Runs the current node and merges its partial state into the running state
//  4. Resolves the next node: the fixed destination of a static edge, or the
//     route map entry for the key the router returns from the post-merge state
//  5. Repeats until END, returning the running state
//
// Errors returned by nodes and routers abort the invocation and are returned
// unchanged. A router key without a destination yields *UnmappedRouteError;
// exceeding WithMaxSteps yields *StepLimitExceededError. Context cancellation
// is checked between steps.
//
// opts override the options given to Compile for this invocation only.
//
// Example:
//
//	final, err := compiled.Invoke(ctx, graph.NewState().With("init_input", "apple"))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(final.GetString("final_result"))
func (g *CompiledGraph) Invoke(ctx context.Context, initial State, opts ...Option) (State, error) {
	cfg, err := g.cfg.apply(opts)
	if err != nil {
		return State{}, err
	}

	r := &run{
		graph: g,
		opts:  cfg.opts,
		runID: cfg.opts.RunID,
		start: time.Now(),
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}

	if r.opts.Metrics != nil {
		r.opts.Metrics.invocationStarted(g.name)
	}
	r.emit(0, "", "graph_start", nil)

	final, err := r.execute(ctx, initial.Clone())
	if err != nil {
		r.finish("error")
		r.emit(r.step, "", "graph_error", map[string]interface{}{"error": err.Error()})
		return State{}, err
	}

	r.finish("success")
	r.emit(r.step, "", "graph_end", map[string]interface{}{
		"steps":       r.step,
		"duration_ms": time.Since(r.start).Milliseconds(),
	})
	return final, nil
}

// run holds the bookkeeping of a single invocation.
type run struct {
	graph *CompiledGraph
	opts  Options
	runID string
	start time.Time
	step  int
}

func (r *run) execute(ctx context.Context, state State) (State, error) {
	current, err := r.next(ctx, START, state)
	if err != nil {
		return State{}, err
	}

	for current != END {
		if err := ctx.Err(); err != nil {
			return State{}, err
		}

		if r.opts.MaxSteps > 0 && r.step >= r.opts.MaxSteps {
			return State{}, &StepLimitExceededError{Limit: r.opts.MaxSteps, Node: current}
		}
		r.step++

		partial, err := r.runNode(ctx, current, state)
		if err != nil {
			return State{}, err
		}
		state.Merge(partial)

		if r.opts.Store != nil {
			if err := r.opts.Store.SaveStep(ctx, r.runID, r.step, current, state.Clone()); err != nil {
				return State{}, &EngineError{
					Message: "failed to save step: " + err.Error(),
					Code:    CodeStoreError,
					Cause:   err,
				}
			}
		}

		current, err = r.next(ctx, current, state)
		if err != nil {
			return State{}, err
		}
	}

	return state, nil
}

func (r *run) runNode(ctx context.Context, name string, state State) (State, error) {
	node := r.graph.nodes[name]

	r.emit(r.step, name, "node_start", nil)
	began := time.Now()

	// The node sees a copy so it cannot alter the running state behind the merge.
	partial, err := runWithTimeout(ctx, node, name, state.Clone(), r.opts.NodeTimeout)
	elapsed := time.Since(began)

	if err != nil {
		if r.opts.Metrics != nil {
			r.opts.Metrics.recordStep(r.graph.name, name, elapsed, "error")
		}
		return State{}, err
	}

	if r.opts.Metrics != nil {
		r.opts.Metrics.recordStep(r.graph.name, name, elapsed, "success")
	}
	r.emit(r.step, name, "node_end", map[string]interface{}{
		"duration_ms":  elapsed.Milliseconds(),
		"updated_keys": partial.Keys(),
	})
	return partial, nil
}

// next resolves the node that follows from, given the post-merge state.
func (r *run) next(ctx context.Context, from string, state State) (string, error) {
	e := r.graph.edges[from]
	if !e.conditional() {
		return e.to, nil
	}

	key, err := e.router.Route(ctx, state.Clone())
	if err != nil {
		return "", err
	}
	to, ok := e.routes[key]
	if !ok {
		return "", &UnmappedRouteError{From: from, Key: key}
	}

	if r.opts.Metrics != nil {
		r.opts.Metrics.recordRoute(r.graph.name, from, string(key))
	}
	r.emit(r.step, from, "route", map[string]interface{}{
		"route_key": string(key),
		"to":        to,
	})
	return to, nil
}

func (r *run) finish(status string) {
	if r.opts.Metrics != nil {
		r.opts.Metrics.invocationFinished(r.graph.name, status, time.Since(r.start))
	}
}

func (r *run) emit(step int, nodeID, msg string, meta map[string]interface{}) {
	if r.opts.Emitter == nil {
		return
	}
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["graph"] = r.graph.name
	r.opts.Emitter.Emit(emit.Event{
		RunID:  r.runID,
		Step:   step,
		NodeID: nodeID,
		Msg:    msg,
		Meta:   meta,
	})
}
