// Package lexer implements the lexical model: splitting source text into
// lines, splitting each line into code and trailing comment, and tokenizing
// instruction lines into indent/mnemonic/spacing/operands.
package lexer

import "strings"

// SplitLines cuts input on '\n' and reports whether the final byte of the
// input was a newline. Per-line trailing carriage returns are preserved
// unchanged inside each returned line.
func SplitLines(input string) (lines []string, trailingNewline bool) {
	if input == "" {
		return nil, false
	}
	trailingNewline = strings.HasSuffix(input, "\n")
	body := input
	if trailingNewline {
		body = body[:len(body)-1]
	}
	lines = strings.Split(body, "\n")
	return lines, trailingNewline
}

// JoinLines reverses SplitLines.
func JoinLines(lines []string, trailingNewline bool) string {
	out := strings.Join(lines, "\n")
	if trailingNewline {
		out += "\n"
	}
	return out
}
