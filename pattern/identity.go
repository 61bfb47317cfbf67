package pattern

import "github.com/cwren/asmopt/lexer"

// tryRedundantMov matches "mov d, s" with d, s equal registers.
func tryRedundantMov(p parsedLine, syntax lexer.Syntax) (ok bool) {
	if p.instr.BaseMnemonic != "mov" {
		return false
	}
	dest, src, ok := destSource(p, syntax)
	if !ok {
		return false
	}
	return lexer.IsRegister(dest, syntax) && lexer.IsRegister(src, syntax) && lexer.SameRegister(dest, src)
}

// tryRedundantLea matches "lea d, src" where src is a zero-displacement
// memory expression whose sole base equals d.
func tryRedundantLea(p parsedLine, syntax lexer.Syntax) bool {
	if p.instr.BaseMnemonic != "lea" {
		return false
	}
	dest, src, ok := destSource(p, syntax)
	if !ok || !lexer.IsRegister(dest, syntax) {
		return false
	}
	base, ok := lexer.ZeroDispSoleBase(src, syntax)
	return ok && lexer.SameRegister(base, stripATT(dest, syntax))
}

func stripATT(reg string, syntax lexer.Syntax) string {
	if syntax == lexer.SyntaxATT && len(reg) > 0 && reg[0] == '%' {
		return reg[1:]
	}
	return reg
}

func destIsRegister(p parsedLine, syntax lexer.Syntax) (dest, src string, ok bool) {
	dest, src, ok = destSource(p, syntax)
	if !ok || !lexer.IsRegister(dest, syntax) {
		return "", "", false
	}
	return dest, src, true
}

// tryImmediateIdentity covers the family of "mnemonic d, imm" identity
// removals keyed by base mnemonic and an expected immediate predicate.
func tryImmediateIdentity(p parsedLine, syntax lexer.Syntax, mnemonics []string, want func(int64) bool) bool {
	match := false
	for _, m := range mnemonics {
		if p.instr.BaseMnemonic == m {
			match = true
			break
		}
	}
	if !match {
		return false
	}
	dest, src, ok := destIsRegister(p, syntax)
	_ = dest
	if !ok {
		return false
	}
	v, ok := lexer.ParseImmediate(src, syntax)
	if !ok {
		return false
	}
	return want(v)
}

func tryMulByOne(p parsedLine, syntax lexer.Syntax) bool {
	return tryImmediateIdentity(p, syntax, []string{"imul"}, func(v int64) bool { return v == 1 })
}

func tryAddSubZero(p parsedLine, syntax lexer.Syntax) bool {
	return tryImmediateIdentity(p, syntax, []string{"add", "sub"}, func(v int64) bool { return v == 0 })
}

func tryShiftByZero(p parsedLine, syntax lexer.Syntax) bool {
	return tryImmediateIdentity(p, syntax, []string{"shl", "shr", "sal", "sar"}, func(v int64) bool { return v == 0 })
}

func tryOrZero(p parsedLine, syntax lexer.Syntax) bool {
	return tryImmediateIdentity(p, syntax, []string{"or"}, func(v int64) bool { return v == 0 })
}

func tryXorZero(p parsedLine, syntax lexer.Syntax) bool {
	return tryImmediateIdentity(p, syntax, []string{"xor"}, func(v int64) bool { return v == 0 })
}

func tryAndMinusOne(p parsedLine, syntax lexer.Syntax) bool {
	return tryImmediateIdentity(p, syntax, []string{"and"}, func(v int64) bool { return v == -1 })
}

// tryFallthroughJump matches an unconditional "jmp L" whose next
// non-ignored line is the label "L:" with exact textual equality.
func tryFallthroughJump(lines []parsedLine, i int) bool {
	p := lines[i]
	if p.instr.BaseMnemonic != "jmp" || len(p.instr.OperandsRaw) == 0 {
		return false
	}
	target := lexer.Trim(p.instr.OperandsRaw)
	j := i + 1
	for j < len(lines) && lines[j].kind == kindBlank {
		j++
	}
	if j >= len(lines) {
		return false
	}
	next := lines[j]
	// A '.'-prefixed label such as ".next:" parses as a directive.
	if next.kind != kindLabel && next.kind != kindDirective {
		return false
	}
	return next.strippedCode == target+":"
}
