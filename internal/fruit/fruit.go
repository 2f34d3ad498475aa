// Package fruit implements the fruit selection workflows: a basic graph that
// validates a fruit name, and a review graph that additionally asks the user
// to confirm the selection.
package fruit

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/stategraph-go/graph"
)

// State fields.
const (
	FieldInitInput        = "init_input"
	FieldFruit            = "fruit"
	FieldFinalResult      = "final_result"
	FieldUserConfirmation = "user_confirmation"
)

// Node names.
const (
	NodeInputFruit   = "input_fruit"
	NodeReviewFruit  = "review_fruit"
	NodeConfirmFruit = "confirm_fruit"
	NodeError        = "error"
)

// Route keys.
const (
	ToConfirmFruit graph.RouteKey = "to_confirm_fruit"
	ToReviewFruit  graph.RouteKey = "to_review_fruit"
	ToError        graph.RouteKey = "to_error"
)

// ErrorValue marks an invalid selection in both the fruit and final_result fields.
const ErrorValue = "error"

// Valid lists the accepted fruit names.
var Valid = []string{"apple", "banana", "cherry"}

// Workflow holds the node and router functions. Each writes a trace line to W
// when it runs.
type Workflow struct {
	W io.Writer
}

func (wf Workflow) printf(format string, args ...any) {
	if wf.W == nil {
		return
	}
	fmt.Fprintf(wf.W, format+"\n", args...)
}

// InputFruit normalizes init_input and sets fruit to it when it is a valid
// fruit, or to "error" otherwise.
func (wf Workflow) InputFruit(ctx context.Context, s graph.State) (graph.State, error) {
	wf.printf("Node: %s", NodeInputFruit)
	input := strings.ToLower(strings.TrimSpace(s.GetString(FieldInitInput)))

	for _, name := range Valid {
		if input == name {
			return graph.NewState().With(FieldFruit, input), nil
		}
	}
	return graph.NewState().With(FieldFruit, ErrorValue), nil
}

// ReviewFruit asks the user to review the selection. It returns fruit unchanged.
func (wf Workflow) ReviewFruit(ctx context.Context, s graph.State) (graph.State, error) {
	fruit := s.GetString(FieldFruit)
	wf.printf("Node: %s", NodeReviewFruit)
	wf.printf("Review your selection: %s. Is this correct?", fruit)
	return graph.NewState().With(FieldFruit, fruit), nil
}

// ConfirmFruit records the confirmed selection in final_result.
func (wf Workflow) ConfirmFruit(ctx context.Context, s graph.State) (graph.State, error) {
	wf.printf("Node: %s", NodeConfirmFruit)
	result := fmt.Sprintf("You selected %s, which is a valid fruit.", s.GetString(FieldFruit))
	return graph.NewState().With(FieldFinalResult, result), nil
}

// Error sets final_result to "error".
func (wf Workflow) Error(ctx context.Context, s graph.State) (graph.State, error) {
	wf.printf("Node: %s", NodeError)
	return graph.NewState().With(FieldFinalResult, ErrorValue), nil
}

// ContinueNext routes a valid fruit to next and an invalid one to ToError.
func (wf Workflow) ContinueNext(next graph.RouteKey) graph.KeyedRouter {
	return graph.Routes(func(ctx context.Context, s graph.State) (graph.RouteKey, error) {
		wf.printf("Route: continue_next: %s", s)
		if s.GetString(FieldFruit) != ErrorValue {
			wf.printf("Route: continue_next -> %s", next)
			return next, nil
		}
		wf.printf("Route: continue_next -> %s", ToError)
		return ToError, nil
	}, next, ToError)
}

// ReviewDecision routes to ToConfirmFruit only when user_confirmation is "yes".
func (wf Workflow) ReviewDecision() graph.KeyedRouter {
	return graph.Routes(func(ctx context.Context, s graph.State) (graph.RouteKey, error) {
		wf.printf("Route: review_decision: %s", s)
		if s.GetString(FieldUserConfirmation) == "yes" {
			wf.printf("Route: review_decision -> %s", ToConfirmFruit)
			return ToConfirmFruit, nil
		}
		wf.printf("Route: review_decision -> %s", ToError)
		return ToError, nil
	}, ToConfirmFruit, ToError)
}
