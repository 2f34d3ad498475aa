package fruit

import (
	"errors"
	"fmt"
	"io"

	"github.com/dshills/stategraph-go/graph"
)

// Graph names.
const (
	BasicGraph  = "basic"
	ReviewGraph = "review"
)

// NewBasicGraph compiles the workflow
//
//	START -> input_fruit -> (to_confirm_fruit: confirm_fruit | to_error: error) -> END
//
// Node trace lines go to w, which may be nil.
func NewBasicGraph(w io.Writer, opts ...graph.Option) (*graph.CompiledGraph, error) {
	wf := Workflow{W: w}
	b := graph.NewBuilder(BasicGraph)

	err := errors.Join(
		b.AddNode(NodeInputFruit, graph.NodeFunc(wf.InputFruit)),
		b.AddNode(NodeConfirmFruit, graph.NodeFunc(wf.ConfirmFruit)),
		b.AddNode(NodeError, graph.NodeFunc(wf.Error)),
		b.SetEntryPoint(NodeInputFruit),
		b.AddConditionalEdges(NodeInputFruit, wf.ContinueNext(ToConfirmFruit), map[graph.RouteKey]string{
			ToConfirmFruit: NodeConfirmFruit,
			ToError:        NodeError,
		}),
		b.SetFinishPoint(NodeConfirmFruit),
		b.SetFinishPoint(NodeError),
	)
	if err != nil {
		return nil, fmt.Errorf("build %s graph: %w", BasicGraph, err)
	}
	return b.Compile(opts...)
}

// NewReviewGraph compiles the workflow with a review step between input and
// confirmation:
//
//	START -> input_fruit -> (to_review_fruit: review_fruit | to_error: error)
//	review_fruit -> (to_confirm_fruit: confirm_fruit | to_error: error)
//	confirm_fruit, error -> END
func NewReviewGraph(w io.Writer, opts ...graph.Option) (*graph.CompiledGraph, error) {
	wf := Workflow{W: w}
	b := graph.NewBuilder(ReviewGraph)

	err := errors.Join(
		b.AddNode(NodeInputFruit, graph.NodeFunc(wf.InputFruit)),
		b.AddNode(NodeReviewFruit, graph.NodeFunc(wf.ReviewFruit)),
		b.AddNode(NodeConfirmFruit, graph.NodeFunc(wf.ConfirmFruit)),
		b.AddNode(NodeError, graph.NodeFunc(wf.Error)),
		b.SetEntryPoint(NodeInputFruit),
		b.AddConditionalEdges(NodeInputFruit, wf.ContinueNext(ToReviewFruit), map[graph.RouteKey]string{
			ToReviewFruit: NodeReviewFruit,
			ToError:       NodeError,
		}),
		b.AddConditionalEdges(NodeReviewFruit, wf.ReviewDecision(), map[graph.RouteKey]string{
			ToConfirmFruit: NodeConfirmFruit,
			ToError:        NodeError,
		}),
		b.SetFinishPoint(NodeConfirmFruit),
		b.SetFinishPoint(NodeError),
	)
	if err != nil {
		return nil, fmt.Errorf("build %s graph: %w", ReviewGraph, err)
	}
	return b.Compile(opts...)
}

// New compiles the graph called name.
func New(name string, w io.Writer, opts ...graph.Option) (*graph.CompiledGraph, error) {
	switch name {
	case BasicGraph:
		return NewBasicGraph(w, opts...)
	case ReviewGraph:
		return NewReviewGraph(w, opts...)
	default:
		return nil, fmt.Errorf("unknown graph %q (want %s or %s)", name, BasicGraph, ReviewGraph)
	}
}

// Input builds the initial state of an invocation. An empty confirmation is
// left unset.
func Input(initInput, confirmation string) graph.State {
	s := graph.NewState().With(FieldInitInput, initInput)
	if confirmation != "" {
		s.Set(FieldUserConfirmation, confirmation)
	}
	return s
}
