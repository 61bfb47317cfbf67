package tools_test

import (
	"strings"
	"testing"

	"github.com/cwren/asmopt/tools"
)

func TestFormatDefaultIndentsInstructions(t *testing.T) {
	out := tools.FormatString("start:\nmov rax,0\nret\n")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "start:" {
		t.Fatalf("line 0 = %q, want start:", lines[0])
	}
	if !strings.HasPrefix(lines[1], "    mov") {
		t.Fatalf("line 1 = %q, want indented mov", lines[1])
	}
}

func TestFormatNormalizesOperandSpacing(t *testing.T) {
	out := tools.FormatString("mov rax,   0\n")
	if !strings.Contains(out, "mov") || !strings.Contains(out, "rax, 0") {
		t.Fatalf("out = %q, want normalized operand spacing", out)
	}
}

func TestFormatCompactSkipsAlignment(t *testing.T) {
	out := tools.FormatStringWithStyle("mov rax, 0\n", tools.FormatCompact)
	if strings.Contains(out, "    mov") {
		t.Fatalf("out = %q, want no indentation in compact style", out)
	}
}

func TestFormatPreservesComment(t *testing.T) {
	out := tools.FormatString("mov rax, 0 ; zero it\n")
	if !strings.Contains(out, "; zero it") {
		t.Fatalf("out = %q, want comment preserved", out)
	}
}

func TestFormatPreservesTrailingNewlineState(t *testing.T) {
	out := tools.FormatString("mov rax, 0")
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("out = %q, want no trailing newline (input had none)", out)
	}
}

func TestFormatBlankLinesPreserved(t *testing.T) {
	out := tools.FormatString("mov rax, 0\n\nret\n")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 || lines[1] != "" {
		t.Fatalf("lines = %v, want a blank middle line", lines)
	}
}
