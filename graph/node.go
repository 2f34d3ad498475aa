package graph

import "context"

// Node is a named unit of computation in the workflow graph.
//
// Run receives the current running state and returns a partial state holding
// only the fields it wants to change. The engine merges the partial into the
// running state; it never inspects side effects the node performs.
//
// A returned error aborts the invocation and reaches the caller of Invoke
// unchanged. Recoverable domain conditions should be written into the state
// and routed with a conditional edge instead.
type Node interface {
	Run(ctx context.Context, state State) (State, error)
}

// NodeFunc is a function adapter that implements the Node interface.
//
// Example:
//
//	confirm := graph.NodeFunc(func(ctx context.Context, s graph.State) (graph.State, error) {
//	    msg := fmt.Sprintf("You selected %s", s.GetString("fruit"))
//	    return graph.NewState().With("final_result", msg), nil
//	})
type NodeFunc func(ctx context.Context, state State) (State, error)

// Run implements the Node interface for NodeFunc.
func (f NodeFunc) Run(ctx context.Context, state State) (State, error) {
	return f(ctx, state)
}
