package graph

import (
	"context"
	"fmt"
	"time"
)

// runWithTimeout runs node under a deadline of timeout. A zero timeout runs it
// directly on ctx.
//
// When the node's deadline passes and the parent context is still live, the
// node's own result is discarded and an EngineError with CodeNodeTimeout is
// returned instead.
func runWithTimeout(ctx context.Context, node Node, nodeID string, state State, timeout time.Duration) (State, error) {
	if timeout <= 0 {
		return node.Run(ctx, state)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	partial, err := node.Run(timeoutCtx, state)

	if timeoutCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		return State{}, &EngineError{
			Message: fmt.Sprintf("node %s exceeded timeout of %v", nodeID, timeout),
			Code:    CodeNodeTimeout,
			Cause:   context.DeadlineExceeded,
		}
	}
	return partial, err
}
