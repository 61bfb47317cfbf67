package pattern

import (
	"strings"

	"github.com/cwren/asmopt/lexer"
)

// tryBsfToTzcnt fires on AMD Zen targets when "bsf d, s" is immediately
// preceded by a zero-check ("test s, s" or "cmp s, 0") then a zero-branch
// ("jz L" or "je L").
func tryBsfToTzcnt(lines []parsedLine, i int, syntax lexer.Syntax, settings Settings) (out string, ok bool) {
	if !settings.AMDOptimizations || !isZenTarget(settings.TargetCPU) {
		return "", false
	}
	if i < 2 {
		return "", false
	}
	cur := lines[i]
	if cur.instr.BaseMnemonic != "bsf" {
		return "", false
	}
	dest, src, okDS := destSource(cur, syntax)
	if !okDS || !lexer.IsRegister(dest, syntax) || !lexer.IsRegister(src, syntax) {
		return "", false
	}

	check := lines[i-2]
	branch := lines[i-1]
	if !isZeroCheck(check, src, syntax) || !isZeroBranch(branch) {
		return "", false
	}

	code := cur.instr.Indent + lexer.ReattachSuffix("tzcnt", cur.instr.Suffix) + cur.instr.Spacing + serializeOperands(cur, dest, src, syntax)
	return appendComment(code, cur.trimmedComment), true
}

func serializeOperands(p parsedLine, dest, src string, syntax lexer.Syntax) string {
	if syntax == lexer.SyntaxATT {
		return src + p.pair.PreSpace + "," + p.pair.PostSpace + dest
	}
	return dest + p.pair.PreSpace + "," + p.pair.PostSpace + src
}

func isZeroCheck(p parsedLine, reg string, syntax lexer.Syntax) bool {
	if p.instr.BaseMnemonic == "test" {
		a, b, ok := destSource(p, syntax)
		return ok && lexer.IsRegister(a, syntax) && lexer.SameRegister(a, reg) && lexer.IsRegister(b, syntax) && lexer.SameRegister(b, reg)
	}
	if p.instr.BaseMnemonic == "cmp" {
		a, b, ok := destSource(p, syntax)
		return ok && lexer.IsRegister(a, syntax) && lexer.SameRegister(a, reg) && lexer.IsImmediateZero(b, syntax)
	}
	return false
}

func isZeroBranch(p parsedLine) bool {
	m := strings.ToLower(p.instr.BaseMnemonic)
	return m == "jz" || m == "je"
}

func isZenTarget(targetCPU string) bool {
	t := strings.ToLower(targetCPU)
	if !strings.HasPrefix(t, "zen") {
		return false
	}
	if len(t) == 3 {
		return true
	}
	next := t[3]
	return next >= '0' && next <= '9'
}
