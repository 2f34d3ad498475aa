package graph

// Builder accumulates a graph definition: named nodes and the single outgoing
// edge of each source. Nothing is validated across declarations until Compile.
//
// Nodes must be added before edges that reference them. A Builder is not safe
// for concurrent use.
//
// Example:
//
//	b := graph.NewBuilder("fruit")
//	_ = b.AddNode("input_fruit", inputFruit)
//	_ = b.AddNode("confirm_fruit", confirmFruit)
//	_ = b.AddNode("error", errorNode)
//	_ = b.SetEntryPoint("input_fruit")
//	_ = b.AddConditionalEdges("input_fruit", continueNext, map[graph.RouteKey]string{
//	    "to_confirm_fruit": "confirm_fruit",
//	    "to_error":         "error",
//	})
//	_ = b.SetFinishPoint("confirm_fruit")
//	_ = b.SetFinishPoint("error")
//
//	compiled, err := b.Compile()
type Builder struct {
	name  string
	order []string
	nodes map[string]Node
	edges map[string]edge
}

// NewBuilder returns an empty Builder. name labels the graph in events and metrics.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:  name,
		nodes: make(map[string]Node),
		edges: make(map[string]edge),
	}
}

// AddNode registers node under name.
//
// Returns *DuplicateNodeError if name is already registered or is START/END,
// and *EngineError if name is empty or node is nil.
func (b *Builder) AddNode(name string, node Node) error {
	if name == "" {
		return &EngineError{Message: "node ID cannot be empty", Code: CodeInvalidNode}
	}
	if node == nil {
		return &EngineError{Message: "node cannot be nil: " + name, Code: CodeInvalidNode}
	}
	if name == START || name == END {
		return &DuplicateNodeError{Name: name}
	}
	if _, exists := b.nodes[name]; exists {
		return &DuplicateNodeError{Name: name}
	}

	b.nodes[name] = node
	b.order = append(b.order, name)
	return nil
}

// AddEdge registers an unconditional edge. from may be START and to may be END.
//
// Returns *UnknownNodeError if an endpoint was never added, and
// *DuplicateEdgeError if from already has an outgoing edge.
func (b *Builder) AddEdge(from, to string) error {
	if err := b.checkSource(from); err != nil {
		return err
	}
	if err := b.checkDestination(to); err != nil {
		return err
	}

	b.edges[from] = edge{to: to}
	return nil
}

// AddConditionalEdges registers a conditional edge: after from runs, router
// picks a RouteKey and routes maps it to the next node.
//
// The same checks as AddEdge apply to from and to every destination in routes.
// The route map is copied; later changes to it have no effect.
func (b *Builder) AddConditionalEdges(from string, router Router, routes map[RouteKey]string) error {
	if router == nil {
		return &EngineError{Message: "router cannot be nil for node: " + from, Code: CodeInvalidRouter}
	}
	if err := b.checkSource(from); err != nil {
		return err
	}

	copied := make(map[RouteKey]string, len(routes))
	for _, key := range sortedKeys(routes) {
		to := routes[key]
		if err := b.checkDestination(to); err != nil {
			return err
		}
		copied[key] = to
	}

	b.edges[from] = edge{router: router, routes: copied}
	return nil
}

// SetEntryPoint is shorthand for AddEdge(START, name).
func (b *Builder) SetEntryPoint(name string) error {
	return b.AddEdge(START, name)
}

// SetFinishPoint is shorthand for AddEdge(name, END).
func (b *Builder) SetFinishPoint(name string) error {
	return b.AddEdge(name, END)
}

func (b *Builder) checkSource(from string) error {
	if from != START {
		if _, ok := b.nodes[from]; !ok {
			return &UnknownNodeError{Name: from, Role: "source"}
		}
	}
	if _, exists := b.edges[from]; exists {
		return &DuplicateEdgeError{From: from}
	}
	return nil
}

func (b *Builder) checkDestination(to string) error {
	if to == END {
		return nil
	}
	if _, ok := b.nodes[to]; !ok {
		return &UnknownNodeError{Name: to, Role: "destination"}
	}
	return nil
}
