package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/fsmx"
)

// Visualizer renders machine configs for external tools.
type Visualizer struct{}

// Edge represents a transition edge.
type Edge struct {
	From  string
	To    string
	Label string
}

// ExportDOT generates Graphviz DOT source. The active state is filled, the
// initial state gets an entry arrow, and transitions toward undefined states
// are drawn dashed.
func (v *Visualizer) ExportDOT(cfg *fsmx.Config, active string) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph FSM {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	if cfg.Initial != "" {
		buf.WriteString("  __start [shape=point];\n")
		fmt.Fprintf(&buf, "  __start -> %q;\n", cfg.Initial)
	}

	for _, name := range cfg.States.Names() {
		style := ""
		if name == active {
			style = ` style="rounded,filled" fillcolor=lightgreen`
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", name, name, style)
	}

	missing := map[string]bool{}
	for _, edge := range CollectEdges(cfg) {
		attrs := fmt.Sprintf("label=%q", edge.Label)
		if !cfg.States.Has(edge.To) {
			attrs += " style=dashed"
			if !missing[edge.To] {
				missing[edge.To] = true
				fmt.Fprintf(&buf, "  %q [label=%q style=dashed color=gray];\n", edge.To, edge.To)
			}
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", edge.From, edge.To, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the config to indented JSON, states in table order.
func (v *Visualizer) ExportJSON(cfg *fsmx.Config) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}

// CollectEdges lists every non-empty transition: states in table order,
// events sorted within a state.
func CollectEdges(cfg *fsmx.Config) []Edge {
	var edges []Edge
	for _, name := range cfg.States.Names() {
		def, _ := cfg.States.Get(name)
		for _, event := range def.Events() {
			target, ok := def.Target(event)
			if !ok {
				continue
			}
			edges = append(edges, Edge{From: name, To: target, Label: event})
		}
	}
	return edges
}
