package lexer

import "strings"

// suffixBases are the base mnemonics eligible for AT&T size-suffix stripping.
var suffixBases = map[string]bool{
	"mov": true, "lea": true, "add": true, "sub": true, "xor": true,
	"and": true, "or": true, "cmp": true, "test": true,
	"shl": true, "shr": true, "sal": true, "sar": true,
}

var attSuffixes = "bwlq"

// Instruction is the tokenized form of a non-directive, non-label code line.
type Instruction struct {
	Indent       string
	Mnemonic     string // as written in source, case preserved
	BaseMnemonic string // lowercased, suffix stripped
	Suffix       byte   // one of b/w/l/q, or 0 if none
	Spacing      string // whitespace between mnemonic and operands
	OperandsRaw  string // everything after Spacing
}

// IsDirectiveOrLabel reports whether, after stripping leading whitespace, a
// line is empty, starts with '.', or ends with ':'.
func IsDirectiveOrLabel(code string) bool {
	trimmed := strings.TrimLeft(code, " \t")
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, ".") {
		return true
	}
	return strings.HasSuffix(strings.TrimRight(trimmed, " \t"), ":")
}

// TokenizeInstruction extracts indent/mnemonic/spacing/operands from a code
// line known not to be directive-or-label. It fails if the first non-space
// character is not a letter.
func TokenizeInstruction(code string) (Instruction, bool) {
	i := 0
	for i < len(code) && (code[i] == ' ' || code[i] == '\t') {
		i++
	}
	indent := code[:i]
	start := i
	if i >= len(code) || !isLetter(code[i]) {
		return Instruction{}, false
	}
	i++
	for i < len(code) && (isLetter(code[i]) || isDigit(code[i]) || code[i] == '.') {
		i++
	}
	mnemonic := code[start:i]
	spacingStart := i
	for i < len(code) && (code[i] == ' ' || code[i] == '\t') {
		i++
	}
	spacing := code[spacingStart:i]
	operands := code[i:]

	base, suffix := StripSuffix(mnemonic)
	return Instruction{
		Indent:       indent,
		Mnemonic:     mnemonic,
		BaseMnemonic: base,
		Suffix:       suffix,
		Spacing:      spacing,
		OperandsRaw:  operands,
	}, true
}

// StripSuffix splits a mnemonic into its lowercased base and a remembered
// AT&T size suffix, for the closed set of base mnemonics that carry one.
func StripSuffix(mnemonic string) (base string, suffix byte) {
	lower := strings.ToLower(mnemonic)
	if len(lower) >= 4 {
		last := lower[len(lower)-1]
		if strings.IndexByte(attSuffixes, last) >= 0 {
			candidate := lower[:len(lower)-1]
			if suffixBases[candidate] {
				return candidate, last
			}
		}
	}
	return lower, 0
}

// ReattachSuffix appends the remembered suffix to a replacement mnemonic,
// unless suffix is 0 (no suffix / Intel syntax).
func ReattachSuffix(mnemonic string, suffix byte) string {
	if suffix == 0 {
		return mnemonic
	}
	return mnemonic + string(suffix)
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
