package production

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MethodSource names "methods" for entries from a class methods table.
const MethodSource = "methods"

// CapabilityInfo describes one applied mixin.
type CapabilityInfo struct {
	Name     string   `json:"name"`
	Requires []string `json:"requires,omitempty"`
	Methods  []string `json:"methods,omitempty"`
}

// MethodInfo describes one entry of a class's merged method table.
type MethodInfo struct {
	Name       string   `json:"name"`
	Source     string   `json:"source"`
	Overridden []string `json:"overridden,omitempty"`
}

// Descriptor is the introspection view of a composed class.
type Descriptor struct {
	Name         string           `json:"name"`
	Version      string           `json:"version,omitempty"`
	Capabilities []CapabilityInfo `json:"capabilities"`
	Methods      []MethodInfo     `json:"methods"`
}

// DefaultVisualizer renders class descriptors.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source: the class node, one node per
// capability in application order, and the winning source of every method.
func (v *DefaultVisualizer) ExportDOT(d Descriptor) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Class {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	fmt.Fprintf(&buf, "  %q [shape=ellipse style=filled fillcolor=lightblue];\n", d.Name)

	prev := d.Name
	for i, c := range d.Capabilities {
		node := "mixin:" + c.Name
		fmt.Fprintf(&buf, "  %q [label=%q];\n", node, c.Name)
		fmt.Fprintf(&buf, "  %q -> %q [label=\"%d\"];\n", prev, node, i+1)
		prev = node
	}

	for _, m := range d.Methods {
		node := "method:" + m.Name
		style := ""
		if len(m.Overridden) > 0 {
			style = " style=filled fillcolor=orange"
		}
		fmt.Fprintf(&buf, "  %q [label=%q shape=plaintext%s];\n", node, m.Name+"()", style)
		from := d.Name
		if m.Source != MethodSource {
			from = "mixin:" + m.Source
		}
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", from, node)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the descriptor to JSON.
func (v *DefaultVisualizer) ExportJSON(d Descriptor) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
