package graph

import (
	"errors"
	"fmt"
)

// ErrMaxStepsExceeded is matched by StepLimitExceededError via errors.Is.
var ErrMaxStepsExceeded = errors.New("execution exceeded maximum steps limit")

// ErrUnmappedRoute is matched by UnmappedRouteError via errors.Is.
var ErrUnmappedRoute = errors.New("router returned a key with no mapped destination")

// Machine-readable error codes.
const (
	CodeDuplicateNode    = "DUPLICATE_NODE"
	CodeUnknownNode      = "UNKNOWN_NODE"
	CodeDuplicateEdge    = "DUPLICATE_EDGE"
	CodeGraphInvalid     = "GRAPH_INVALID"
	CodeUnmappedRoute    = "UNMAPPED_ROUTE"
	CodeMaxStepsExceeded = "MAX_STEPS_EXCEEDED"
	CodeInvalidNode      = "INVALID_NODE"
	CodeInvalidRouter    = "INVALID_ROUTER"
	CodeInvalidOption    = "INVALID_OPTION"
	CodeStoreError       = "STORE_ERROR"
	CodeNodeTimeout      = "NODE_TIMEOUT"
)

// Invariants reported by GraphValidationError.
const (
	// InvariantNoEntry: no edge originates at START.
	InvariantNoEntry = "no_entry"
	// InvariantDeadEnd: a registered node has no outgoing edge.
	InvariantDeadEnd = "dead_end"
	// InvariantMissingDestination: an edge points at an unregistered node.
	InvariantMissingDestination = "missing_destination"
	// InvariantEmptyRouteMap: a conditional edge has no routes.
	InvariantEmptyRouteMap = "empty_route_map"
	// InvariantUncoveredRoute: a keyed router can return a key absent from its route map.
	InvariantUncoveredRoute = "uncovered_route"
)

// EngineError represents an argument or infrastructure failure in engine operations.
type EngineError struct {
	Message string
	Code    string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// DuplicateNodeError is returned by AddNode when the name is taken or reserved.
type DuplicateNodeError struct {
	Name string
}

func (e *DuplicateNodeError) Error() string {
	if e.Name == START || e.Name == END {
		return CodeDuplicateNode + ": node name is reserved: " + e.Name
	}
	return CodeDuplicateNode + ": duplicate node ID: " + e.Name
}

// UnknownNodeError is returned when an edge names a node that was never added.
type UnknownNodeError struct {
	Name string
	// Role is "source" or "destination".
	Role string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("%s: unknown %s node: %s", CodeUnknownNode, e.Role, e.Name)
}

// DuplicateEdgeError is returned when a node already has an outgoing edge.
type DuplicateEdgeError struct {
	From string
}

func (e *DuplicateEdgeError) Error() string {
	return CodeDuplicateEdge + ": node already has an outgoing edge: " + e.From
}

// GraphValidationError is returned by Compile and names the violated invariant.
type GraphValidationError struct {
	Invariant string
	Node      string
	Message   string
}

func (e *GraphValidationError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s: %s (node %s): %s", CodeGraphInvalid, e.Invariant, e.Node, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", CodeGraphInvalid, e.Invariant, e.Message)
}

// UnmappedRouteError is returned by Invoke when a router produces a key that
// its route map has no destination for.
type UnmappedRouteError struct {
	From string
	Key  RouteKey
}

func (e *UnmappedRouteError) Error() string {
	return fmt.Sprintf("%s: route key %q from node %s has no destination", CodeUnmappedRoute, e.Key, e.From)
}

// Is lets errors.Is match ErrUnmappedRoute.
func (e *UnmappedRouteError) Is(target error) bool {
	return target == ErrUnmappedRoute
}

// StepLimitExceededError is returned by Invoke when WithMaxSteps is set and the
// invocation would run more nodes than allowed.
type StepLimitExceededError struct {
	Limit int
	// Node is the node that would have run next.
	Node string
}

func (e *StepLimitExceededError) Error() string {
	return fmt.Sprintf("%s: workflow exceeded MaxSteps limit of %d before node %s", CodeMaxStepsExceeded, e.Limit, e.Node)
}

// Is lets errors.Is match ErrMaxStepsExceeded.
func (e *StepLimitExceededError) Is(target error) bool {
	return target == ErrMaxStepsExceeded
}
