package report

import (
	"fmt"
	"strings"

	"github.com/cwren/asmopt/optimizer"
)

// DumpCFGText renders each block's name, instructions, and successor
// edges in source order.
func DumpCFGText(c *optimizer.Context) string {
	var sb strings.Builder
	sb.WriteString("CFG:\n")
	for _, b := range c.CFG {
		fmt.Fprintf(&sb, "%s:\n", b.Name)
		for _, instr := range b.Instructions {
			fmt.Fprintf(&sb, "  %s %s\n", instr.Mnemonic, strings.Join(instr.Operands, ", "))
		}
		for _, e := range c.Edges {
			if e.Source == b.Name {
				fmt.Fprintf(&sb, "  -> %s\n", e.Target)
			}
		}
	}
	return sb.String()
}

// DumpCFGDot renders the CFG as a Graphviz "digraph cfg", one boxed node
// per block and one edge statement per CFGEdge.
func DumpCFGDot(c *optimizer.Context) string {
	var sb strings.Builder
	sb.WriteString("digraph cfg {\n")
	sb.WriteString("  node [shape=box];\n")
	for _, b := range c.CFG {
		var label strings.Builder
		fmt.Fprintf(&label, "%s:\\l", b.Name)
		for _, instr := range b.Instructions {
			fmt.Fprintf(&label, "%s %s\\l", instr.Mnemonic, strings.Join(instr.Operands, ", "))
		}
		fmt.Fprintf(&sb, "  %q [label=%q];\n", b.Name, label.String())
	}
	for _, e := range c.Edges {
		fmt.Fprintf(&sb, "  %q -> %q;\n", e.Source, e.Target)
	}
	sb.WriteString("}\n")
	return sb.String()
}
