package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// DrawMermaid renders the graph as a Mermaid flowchart.
//
// START and END are drawn as circles and nodes as rectangles. Static edges are
// solid arrows; conditional edges are dotted arrows labelled with their route key.
// Rendering is read-only and has no effect on execution.
//
// Node IDs are positional (n0, n1, ... in registration order); names appear
// only in quoted labels.
func (g *CompiledGraph) DrawMermaid() string {
	ids := make(map[string]string, len(g.order)+2)
	ids[START] = "n_start"
	ids[END] = "n_end"
	for i, name := range g.order {
		ids[name] = "n" + strconv.Itoa(i)
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	fmt.Fprintf(&sb, "    %s((\"%s\"))\n", ids[START], START)
	for _, name := range g.order {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", ids[name], escapeMermaidLabel(name))
	}
	fmt.Fprintf(&sb, "    %s((\"%s\"))\n", ids[END], END)

	for _, e := range g.Edges() {
		from, to := ids[e.From], ids[e.To]
		if !e.Conditional {
			fmt.Fprintf(&sb, "    %s --> %s\n", from, to)
			continue
		}
		fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", from, escapeMermaidLabel(string(e.Key)), to)
	}

	sb.WriteString("    classDef terminal fill:#e1f5fe,stroke:#01579b,color:#000;\n")
	fmt.Fprintf(&sb, "    class %s,%s terminal;\n", ids[START], ids[END])
	return sb.String()
}

// escapeMermaidLabel makes s safe inside a double-quoted Mermaid label.
func escapeMermaidLabel(s string) string {
	r := strings.NewReplacer(
		"#", "#35;",
		"\"", "#quot;",
		"\n", " ",
		"\r", " ",
	)
	return r.Replace(s)
}
