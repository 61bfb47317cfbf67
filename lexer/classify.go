package lexer

import (
	"strconv"
	"strings"
)

// IsRegister reports whether a trimmed operand is a register under the
// given syntax. AT&T requires a leading '%'; Intel uses the operand as-is.
// No register-name table is consulted: anything shaped like a bare
// identifier qualifies.
func IsRegister(operand string, syntax Syntax) bool {
	op := operand
	if syntax == SyntaxATT {
		if !strings.HasPrefix(op, "%") {
			return false
		}
		op = op[1:]
	}
	if op == "" {
		return false
	}
	if strings.ContainsAny(op, "$*[(") {
		return false
	}
	for i := 0; i < len(op); i++ {
		c := op[i]
		if !(isLetter(c) || isDigit(c) || c == '_') {
			return false
		}
	}
	return true
}

// SameRegister compares two trimmed register operands case-insensitively.
func SameRegister(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ParseImmediate parses a trimmed operand as a signed integer immediate. In
// AT&T syntax a leading '$' is required and stripped first.
func ParseImmediate(operand string, syntax Syntax) (int64, bool) {
	s := operand
	if syntax == SyntaxATT {
		if !strings.HasPrefix(s, "$") {
			return 0, false
		}
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
		if s == "" {
			return 0, false
		}
	}

	var v int64
	var err error
	switch {
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		v, err = strconv.ParseInt(s[2:], 16, 64)
	case strings.HasSuffix(strings.ToLower(s), "h") && isHexDigits(s[:len(s)-1]):
		v, err = strconv.ParseInt(s[:len(s)-1], 16, 64)
	case syntax == SyntaxATT && len(s) > 1 && s[0] == '0' && isOctalDigits(s[1:]):
		v, err = strconv.ParseInt(s, 8, 64)
	case isDecimalDigits(s):
		v, err = strconv.ParseInt(s, 10, 64)
	default:
		return 0, false
	}
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// IsImmediateZero, IsImmediateOne and IsImmediateMinusOne are the classifier
// helpers used by the identity/replacement patterns.
func IsImmediateZero(operand string, syntax Syntax) bool {
	v, ok := ParseImmediate(operand, syntax)
	return ok && v == 0
}

func IsImmediateOne(operand string, syntax Syntax) bool {
	v, ok := ParseImmediate(operand, syntax)
	return ok && v == 1
}

func IsImmediateMinusOne(operand string, syntax Syntax) bool {
	v, ok := ParseImmediate(operand, syntax)
	return ok && v == -1
}

// IsPowerOfTwo reports whether n is a strictly positive power of two.
func IsPowerOfTwo(n int64) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns the base-2 logarithm of a positive power of two.
func Log2(n int64) int {
	shift := 0
	for n > 1 {
		n >>= 1
		shift++
	}
	return shift
}

// IsMemory reports whether a trimmed operand is shaped like a memory
// reference: Intel '[...]' or AT&T 'disp(base,...)'.
func IsMemory(operand string) bool {
	return strings.Contains(operand, "[") || strings.Contains(operand, "(")
}

// IsLabelOperand reports whether a trimmed operand is shaped like a jump
// target: an optional leading '*' (indirect call/jmp), then an identifier.
func IsLabelOperand(operand string) bool {
	s := strings.TrimPrefix(operand, "*")
	if s == "" {
		return false
	}
	if !(isLetter(s[0]) || s[0] == '_' || s[0] == '.') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(isLetter(c) || isDigit(c) || c == '_' || c == '.') {
			return false
		}
	}
	return true
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

func isOctalDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return true
}

func isDecimalDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
