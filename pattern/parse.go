package pattern

import (
	"strings"

	"github.com/cwren/asmopt/lexer"
)

type lineKind int

const (
	kindBlank lineKind = iota
	kindDirective
	kindLabel
	kindInstruction
	kindText
)

// parsedLine is the per-line view the engine dispatches against. Unlike
// package ir, it retains exact spacing so replacements can reproduce it.
type parsedLine struct {
	raw            string
	code           string
	comment        string
	trimmedComment string
	kind           lineKind
	strippedCode   string
	labelText      string
	instr          lexer.Instruction
	hasInstr       bool
	pair           lexer.OperandPair
}

func parseLine(raw string) parsedLine {
	code, comment := lexer.SplitComment(raw)
	p := parsedLine{
		raw:            raw,
		code:           code,
		comment:        comment,
		trimmedComment: lexer.TrimComment(comment),
	}
	p.strippedCode = strings.TrimSpace(code)

	if lexer.IsDirectiveOrLabel(code) {
		switch {
		case p.strippedCode == "":
			p.kind = kindBlank
		case strings.HasPrefix(p.strippedCode, "."):
			p.kind = kindDirective
		default:
			p.kind = kindLabel
			p.labelText = strings.TrimSuffix(p.strippedCode, ":")
		}
		return p
	}

	if instr, ok := lexer.TokenizeInstruction(code); ok {
		p.kind = kindInstruction
		p.instr = instr
		p.hasInstr = true
		p.pair = lexer.SplitOperandPair(instr.OperandsRaw)
		return p
	}

	p.kind = kindText
	return p
}

func parseAll(lines []string) []parsedLine {
	out := make([]parsedLine, len(lines))
	for i, raw := range lines {
		out[i] = parseLine(raw)
	}
	return out
}

// destSource returns the (destination, source) trimmed operands in the
// configured syntax: AT&T is (second, first); Intel is (first, second).
func destSource(p parsedLine, syntax lexer.Syntax) (dest, src string, ok bool) {
	if !p.hasInstr || !p.pair.HasSecond {
		return "", "", false
	}
	first := lexer.Trim(p.pair.First)
	second := lexer.Trim(p.pair.Second)
	if syntax == lexer.SyntaxATT {
		return second, first, true
	}
	return first, second, true
}

// serialize rebuilds a replacement code line for a 2-operand instruction,
// preserving indent/spacing/comma-spacing/suffix/comment.
func serialize(p parsedLine, mnemonic string, dest, src string, syntax lexer.Syntax) string {
	var operands string
	if syntax == lexer.SyntaxATT {
		operands = src + p.pair.PreSpace + "," + p.pair.PostSpace + dest
	} else {
		operands = dest + p.pair.PreSpace + "," + p.pair.PostSpace + src
	}
	out := p.instr.Indent + lexer.ReattachSuffix(mnemonic, p.instr.Suffix) + p.instr.Spacing + operands
	return appendComment(out, p.trimmedComment)
}

func appendComment(code, trimmedComment string) string {
	if trimmedComment == "" {
		return code
	}
	return code + " " + trimmedComment
}

// commentOnlyLine emits an indent-only line carrying a previously-dropped
// instruction's trailing comment, or "" if there was none.
func commentOnlyLine(p parsedLine) (string, bool) {
	if p.trimmedComment == "" {
		return "", false
	}
	return p.instr.Indent + p.trimmedComment, true
}
