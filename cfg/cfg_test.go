package cfg_test

import (
	"testing"

	"github.com/cwren/asmopt/cfg"
	"github.com/cwren/asmopt/ir"
	"github.com/cwren/asmopt/lexer"
)

func buildCFG(t *testing.T, source string) ([]cfg.Block, []cfg.Edge) {
	t.Helper()
	lines, _ := lexer.SplitLines(source)
	irLines := ir.Build(lines)
	return cfg.Build(irLines)
}

func TestSingleBlockSynthesized(t *testing.T) {
	blocks, edges := buildCFG(t, "mov rax, 0\nadd rax, 1\n")
	if len(blocks) != 1 || blocks[0].Name != "block0" {
		t.Fatalf("blocks = %+v, want one block0", blocks)
	}
	if len(edges) != 0 {
		t.Fatalf("edges = %+v, want none", edges)
	}
}

func TestLabelSplitsBlocksAndFallthrough(t *testing.T) {
	blocks, edges := buildCFG(t, "start:\nmov rax, 0\nnext:\nadd rax, 1\n")
	if len(blocks) != 2 || blocks[0].Name != "start" || blocks[1].Name != "next" {
		t.Fatalf("blocks = %+v", blocks)
	}
	if len(edges) != 1 || edges[0].Source != "start" || edges[0].Target != "next" {
		t.Fatalf("edges = %+v, want start->next fallthrough", edges)
	}
}

func TestConditionalJumpAddsBothEdges(t *testing.T) {
	blocks, edges := buildCFG(t, "top:\ncmp rax, 0\nje done\nnop\ndone:\nret\n")
	if len(blocks) != 3 {
		t.Fatalf("blocks = %+v, want 3", blocks)
	}
	var toDone, fallthroughEdge bool
	for _, e := range edges {
		if e.Source == "top" && e.Target == "done" {
			toDone = true
		}
		if e.Source == "top" && e.Target == blocks[1].Name {
			fallthroughEdge = true
		}
	}
	if !toDone || !fallthroughEdge {
		t.Fatalf("edges = %+v, want both a jump-target and a fallthrough edge from top", edges)
	}
}

func TestReturnAddsNoEdges(t *testing.T) {
	_, edges := buildCFG(t, "f:\nret\ng:\nnop\n")
	for _, e := range edges {
		if e.Source == "f" {
			t.Fatalf("return block produced an edge: %+v", e)
		}
	}
}
