package ir_test

import (
	"testing"

	"github.com/cwren/asmopt/ir"
)

func TestBuildClassifiesLineKinds(t *testing.T) {
	lines := []string{
		"",
		".text",
		"start:",
		"  mov rax, 0 ; zero it",
		"@weird thing that is not an instruction",
	}
	out := ir.Build(lines)
	if len(out) != len(lines) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(lines))
	}

	want := []ir.Kind{ir.KindBlank, ir.KindDirective, ir.KindLabel, ir.KindInstruction, ir.KindText}
	for i, k := range want {
		if out[i].Kind != k {
			t.Errorf("line %d: kind = %s, want %s", i, out[i].Kind, k)
		}
	}
}

func TestBuildLabelStripsTrailingColon(t *testing.T) {
	out := ir.Build([]string{"loop_top:"})
	if out[0].Text != "loop_top" {
		t.Fatalf("Text = %q, want loop_top", out[0].Text)
	}
}

func TestBuildDirectiveClassifiesDotPrefixedLabelLikeLine(t *testing.T) {
	// A line shaped like "name:" but starting with '.' classifies as a
	// directive, not a label: the '.' prefix check runs first.
	out := ir.Build([]string{".Lloop:"})
	if out[0].Kind != ir.KindDirective {
		t.Fatalf("Kind = %s, want directive", out[0].Kind)
	}
}

func TestBuildInstructionCapturesMnemonicAndOperands(t *testing.T) {
	out := ir.Build([]string{"add rax, rbx"})
	line := out[0]
	if line.Kind != ir.KindInstruction {
		t.Fatalf("Kind = %s, want instruction", line.Kind)
	}
	if line.Mnemonic != "add" {
		t.Fatalf("Mnemonic = %q, want add", line.Mnemonic)
	}
	if len(line.Operands) != 2 || line.Operands[0] != "rax" || line.Operands[1] != "rbx" {
		t.Fatalf("Operands = %v, want [rax rbx]", line.Operands)
	}
}

func TestBuildLineNumbersAreOneBased(t *testing.T) {
	out := ir.Build([]string{"nop", "nop"})
	if out[0].LineNo != 1 || out[1].LineNo != 2 {
		t.Fatalf("LineNo = %d, %d, want 1, 2", out[0].LineNo, out[1].LineNo)
	}
}
