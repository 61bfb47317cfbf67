package pattern

import "github.com/cwren/asmopt/lexer"

type replaceResult struct {
	mnemonic string
	dest     string
	src      string
}

func tryMovZeroToXor(p parsedLine, syntax lexer.Syntax) (replaceResult, bool) {
	if p.instr.BaseMnemonic != "mov" {
		return replaceResult{}, false
	}
	dest, src, ok := destIsRegister(p, syntax)
	if !ok {
		return replaceResult{}, false
	}
	if !lexer.IsImmediateZero(src, syntax) {
		return replaceResult{}, false
	}
	return replaceResult{mnemonic: "xor", dest: dest, src: dest}, true
}

func tryMulPowerOfTwoToShift(p parsedLine, syntax lexer.Syntax) (replaceResult, int64, bool) {
	if p.instr.BaseMnemonic != "imul" {
		return replaceResult{}, 0, false
	}
	dest, src, ok := destIsRegister(p, syntax)
	if !ok {
		return replaceResult{}, 0, false
	}
	v, ok := lexer.ParseImmediate(src, syntax)
	if !ok || !lexer.IsPowerOfTwo(v) {
		return replaceResult{}, 0, false
	}
	n := int64(lexer.Log2(v))
	shiftOperand := formatShiftAmount(n, syntax)
	return replaceResult{mnemonic: "shl", dest: dest, src: shiftOperand}, n, true
}

func formatShiftAmount(n int64, syntax lexer.Syntax) string {
	if syntax == lexer.SyntaxATT {
		return "$" + itoa(n)
	}
	return itoa(n)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

type incDecResult struct {
	mnemonic string
	dest     string
}

func tryAddOneToInc(p parsedLine, syntax lexer.Syntax) (incDecResult, bool) {
	return tryIncDec(p, syntax, "add", lexer.IsImmediateOne, "inc")
}

func trySubOneToDec(p parsedLine, syntax lexer.Syntax) (incDecResult, bool) {
	return tryIncDec(p, syntax, "sub", lexer.IsImmediateOne, "dec")
}

func tryAddMinusOneToDec(p parsedLine, syntax lexer.Syntax) (incDecResult, bool) {
	return tryIncDec(p, syntax, "add", lexer.IsImmediateMinusOne, "dec")
}

func trySubMinusOneToInc(p parsedLine, syntax lexer.Syntax) (incDecResult, bool) {
	return tryIncDec(p, syntax, "sub", lexer.IsImmediateMinusOne, "inc")
}

func tryIncDec(p parsedLine, syntax lexer.Syntax, wantMnemonic string, want func(string, lexer.Syntax) bool, result string) (incDecResult, bool) {
	if p.instr.BaseMnemonic != wantMnemonic {
		return incDecResult{}, false
	}
	dest, src, ok := destIsRegister(p, syntax)
	if !ok || !want(src, syntax) {
		return incDecResult{}, false
	}
	return incDecResult{mnemonic: result, dest: dest}, true
}

func serializeIncDec(p parsedLine, r incDecResult) string {
	out := p.instr.Indent + lexer.ReattachSuffix(r.mnemonic, p.instr.Suffix) + p.instr.Spacing + r.dest
	return appendComment(out, p.trimmedComment)
}

func trySubSelfToXor(p parsedLine, syntax lexer.Syntax) (replaceResult, bool) {
	return trySelfToOp(p, syntax, "sub", "xor")
}

func tryAndZeroToXor(p parsedLine, syntax lexer.Syntax) (replaceResult, bool) {
	if p.instr.BaseMnemonic != "and" {
		return replaceResult{}, false
	}
	dest, src, ok := destIsRegister(p, syntax)
	if !ok || !lexer.IsImmediateZero(src, syntax) {
		return replaceResult{}, false
	}
	return replaceResult{mnemonic: "xor", dest: dest, src: dest}, true
}

func tryCmpZeroToTest(p parsedLine, syntax lexer.Syntax) (replaceResult, bool) {
	if p.instr.BaseMnemonic != "cmp" {
		return replaceResult{}, false
	}
	dest, src, ok := destIsRegister(p, syntax)
	if !ok || !lexer.IsImmediateZero(src, syntax) {
		return replaceResult{}, false
	}
	return replaceResult{mnemonic: "test", dest: dest, src: dest}, true
}

func tryOrSelfToTest(p parsedLine, syntax lexer.Syntax) (replaceResult, bool) {
	return trySelfToOp(p, syntax, "or", "test")
}

func tryAndSelfToTest(p parsedLine, syntax lexer.Syntax) (replaceResult, bool) {
	return trySelfToOp(p, syntax, "and", "test")
}

func tryCmpSelfToTest(p parsedLine, syntax lexer.Syntax) (replaceResult, bool) {
	return trySelfToOp(p, syntax, "cmp", "test")
}

func trySelfToOp(p parsedLine, syntax lexer.Syntax, wantMnemonic, result string) (replaceResult, bool) {
	if p.instr.BaseMnemonic != wantMnemonic {
		return replaceResult{}, false
	}
	dest, src, ok := destIsRegister(p, syntax)
	if !ok || !lexer.IsRegister(src, syntax) || !lexer.SameRegister(dest, src) {
		return replaceResult{}, false
	}
	return replaceResult{mnemonic: result, dest: dest, src: dest}, true
}
