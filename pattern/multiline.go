package pattern

import "github.com/cwren/asmopt/lexer"

// regMove reports whether p is a comment-bearing-or-not register-to-register
// mov and returns its (dest, src).
func regMove(p parsedLine, syntax lexer.Syntax) (dest, src string, ok bool) {
	if p.instr.BaseMnemonic != "mov" {
		return "", "", false
	}
	dest, src, ok = destSource(p, syntax)
	if !ok {
		return "", "", false
	}
	if !lexer.IsRegister(dest, syntax) || !lexer.IsRegister(src, syntax) {
		return "", "", false
	}
	return dest, src, true
}

// tryRedundantMovePair: "mov a, b" followed by "mov b, a".
func tryRedundantMovePair(lines []parsedLine, i int, syntax lexer.Syntax) (out []string, ok bool) {
	if i+1 >= len(lines) {
		return nil, false
	}
	a1, b1, ok1 := regMove(lines[i], syntax)
	b2, a2, ok2 := regMove(lines[i+1], syntax)
	if !ok1 || !ok2 {
		return nil, false
	}
	if !lexer.SameRegister(a1, a2) || !lexer.SameRegister(b1, b2) {
		return nil, false
	}
	out = []string{lines[i].raw}
	if c, has := commentOnlyLine(lines[i+1]); has {
		out = append(out, c)
	}
	return out, true
}

// tryDeadStoreMove: "mov d, s1" followed by "mov d, s2", both comment-free,
// same destination, different sources. Drops the first.
func tryDeadStoreMove(lines []parsedLine, i int, syntax lexer.Syntax) (out []string, ok bool) {
	if i+1 >= len(lines) {
		return nil, false
	}
	first, second := lines[i], lines[i+1]
	if first.trimmedComment != "" || second.trimmedComment != "" {
		return nil, false
	}
	d1, s1, ok1 := regMove(first, syntax)
	d2, s2, ok2 := regMove(second, syntax)
	if !ok1 || !ok2 {
		return nil, false
	}
	if !lexer.SameRegister(d1, d2) || lexer.SameRegister(s1, s2) {
		return nil, false
	}
	return []string{second.raw}, true
}

// tryScheduleSwapMove: "mov d1, s1" then "mov d2, s2", all four registers
// pairwise distinct, both comment-free. Reorders: emits second, then first.
func tryScheduleSwapMove(lines []parsedLine, i int, syntax lexer.Syntax) (out []string, ok bool) {
	if i+1 >= len(lines) {
		return nil, false
	}
	first, second := lines[i], lines[i+1]
	if first.trimmedComment != "" || second.trimmedComment != "" {
		return nil, false
	}
	d1, s1, ok1 := regMove(first, syntax)
	d2, s2, ok2 := regMove(second, syntax)
	if !ok1 || !ok2 {
		return nil, false
	}
	regs := []string{d1, s1, d2, s2}
	for a := 0; a < len(regs); a++ {
		for b := a + 1; b < len(regs); b++ {
			if lexer.SameRegister(regs[a], regs[b]) {
				return nil, false
			}
		}
	}
	return []string{second.raw, first.raw}, true
}

// tryLoadModifyStore: "mov r, M" ; "add r, imm" ; "mov M, r".
func tryLoadModifyStore(lines []parsedLine, i int, syntax lexer.Syntax) (outLine string, comments []string, ok bool) {
	if i+2 >= len(lines) {
		return "", nil, false
	}
	load, modify, store := lines[i], lines[i+1], lines[i+2]
	if load.instr.BaseMnemonic != "mov" || store.instr.BaseMnemonic != "mov" {
		return "", nil, false
	}
	loadDest, loadSrc, ok1 := destSource(load, syntax)
	storeDest, storeSrc, ok2 := destSource(store, syntax)
	if !ok1 || !ok2 {
		return "", nil, false
	}
	if !lexer.IsRegister(loadDest, syntax) || !lexer.IsRegister(storeSrc, syntax) {
		return "", nil, false
	}
	if !lexer.SameRegister(loadDest, storeSrc) {
		return "", nil, false
	}
	if lexer.Trim(loadSrc) != lexer.Trim(storeDest) {
		return "", nil, false
	}
	modMnemonic := modify.instr.BaseMnemonic
	if modMnemonic != "add" {
		return "", nil, false
	}
	modDest, modSrc, ok3 := destSource(modify, syntax)
	if !ok3 || !lexer.IsRegister(modDest, syntax) || !lexer.SameRegister(modDest, loadDest) {
		return "", nil, false
	}
	if _, ok := lexer.ParseImmediate(modSrc, syntax); !ok {
		return "", nil, false
	}

	var operands string
	if syntax == lexer.SyntaxATT {
		operands = modSrc + modify.pair.PreSpace + "," + modify.pair.PostSpace + lexer.Trim(loadSrc)
	} else {
		operands = lexer.Trim(loadSrc) + modify.pair.PreSpace + "," + modify.pair.PostSpace + modSrc
	}
	code := load.instr.Indent + lexer.ReattachSuffix("add", modify.instr.Suffix) + load.instr.Spacing + operands
	// Comments from all three lines follow on indent-only lines below.
	outLine = code

	for _, l := range []parsedLine{load, modify, store} {
		if l.trimmedComment == "" {
			continue
		}
		if c, has := commentOnlyLine(l); has {
			comments = append(comments, c)
		}
	}
	return outLine, comments, true
}

// tryInvertConditionalJump: "jcc L1" ; "jmp L2" ; "L1:" with the label
// immediately following. Emits "j!cc L2"; drops the unconditional jump;
// retains the label line (not consumed by this pattern).
func tryInvertConditionalJump(lines []parsedLine, i int) (out string, ok bool) {
	if i+2 >= len(lines) {
		return "", false
	}
	jcc, jmp, label := lines[i], lines[i+1], lines[i+2]
	if jcc.kind != kindInstruction || jmp.kind != kindInstruction || label.kind != kindLabel {
		return "", false
	}
	inverted, known := invertJump(jcc.instr.BaseMnemonic)
	if !known {
		return "", false
	}
	if jmp.instr.BaseMnemonic != "jmp" {
		return "", false
	}
	l1 := lexer.Trim(jcc.instr.OperandsRaw)
	if label.labelText != l1 {
		return "", false
	}
	l2 := lexer.Trim(jmp.instr.OperandsRaw)
	code := jcc.instr.Indent + lexer.ReattachSuffix(inverted, jcc.instr.Suffix) + jcc.instr.Spacing + l2
	return appendComment(code, jcc.trimmedComment), true
}
