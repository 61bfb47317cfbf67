package lexer

import "strings"

// SplitComment splits a line into its code portion and trailing comment.
// The comment begins at the first occurrence of ';' or '#' anywhere in the
// line and includes that marker; if neither marker is present, comment is
// empty. Known sharp edge: a ';' or '#' inside a string or character
// literal is not distinguished from a real comment marker.
func SplitComment(line string) (code, comment string) {
	idx := strings.IndexAny(line, ";#")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], line[idx:]
}

// TrimComment returns the comment text with surrounding whitespace removed.
func TrimComment(comment string) string {
	return strings.TrimSpace(comment)
}
