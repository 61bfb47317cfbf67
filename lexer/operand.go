package lexer

import "strings"

// OperandPair is an operand list split on the first comma, retaining the
// exact whitespace on each side so replacements can reproduce it.
type OperandPair struct {
	First     string
	PreSpace  string
	PostSpace string
	Second    string
	HasSecond bool
}

// SplitOperandPair splits raw operand text on the first ',' and retains the
// whitespace immediately adjacent to the comma.
func SplitOperandPair(raw string) OperandPair {
	idx := strings.IndexByte(raw, ',')
	if idx < 0 {
		return OperandPair{First: raw}
	}
	first := raw[:idx]
	rest := raw[idx+1:]

	preEnd := len(first)
	for preEnd > 0 && isSpaceByte(first[preEnd-1]) {
		preEnd--
	}
	preSpace := first[preEnd:]
	first = first[:preEnd]

	postStart := 0
	for postStart < len(rest) && isSpaceByte(rest[postStart]) {
		postStart++
	}
	postSpace := rest[:postStart]
	second := rest[postStart:]

	return OperandPair{
		First:     first,
		PreSpace:  preSpace,
		PostSpace: postSpace,
		Second:    second,
		HasSecond: true,
	}
}

// Trim produces the operand with surrounding whitespace removed, for
// semantic comparisons.
func Trim(operand string) string {
	return strings.TrimSpace(operand)
}

// SplitOperandList splits a full operand string on commas into trimmed,
// non-empty tokens, as used by the IR builder.
func SplitOperandList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t'
}
