// Package ir builds the tagged intermediate representation consumed by the
// CFG builder and the dump/report surface.
package ir

import (
	"strings"

	"github.com/cwren/asmopt/lexer"
)

// Kind classifies an IR line.
type Kind int

const (
	KindBlank Kind = iota
	KindDirective
	KindLabel
	KindInstruction
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindDirective:
		return "directive"
	case KindLabel:
		return "label"
	case KindInstruction:
		return "instruction"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Line is a single tagged IR record. LineNo is 1-based and matches the
// original line index + 1.
type Line struct {
	LineNo   int
	Kind     Kind
	Text     string
	Mnemonic string
	Operands []string
}

// Build converts original source lines into IR, in order.
func Build(lines []string) []Line {
	out := make([]Line, 0, len(lines))
	for i, raw := range lines {
		code, _ := lexer.SplitComment(raw)
		stripped := strings.TrimSpace(code)

		line := Line{LineNo: i + 1}
		switch {
		case stripped == "":
			line.Kind = KindBlank
			line.Text = ""
		case strings.HasPrefix(stripped, "."):
			line.Kind = KindDirective
			line.Text = stripped
		case strings.HasSuffix(stripped, ":"):
			line.Kind = KindLabel
			line.Text = strings.TrimSuffix(stripped, ":")
		default:
			if instr, ok := lexer.TokenizeInstruction(code); ok {
				line.Kind = KindInstruction
				line.Mnemonic = instr.Mnemonic
				line.Operands = lexer.SplitOperandList(instr.OperandsRaw)
				line.Text = stripped
			} else {
				line.Kind = KindText
				line.Text = stripped
			}
		}
		out = append(out, line)
	}
	return out
}
