// Package report implements the emitter/reporter: assembly re-emission and
// the plain-text report, IR dump, and CFG text/DOT dumps.
package report

import (
	"github.com/cwren/asmopt/lexer"
	"github.com/cwren/asmopt/optimizer"
)

// GenerateAssembly joins OptimizedLines (or OriginalLines if optimization
// was suppressed) with the session's original newline discipline.
func GenerateAssembly(c *optimizer.Context) string {
	lines := c.OptimizedLines
	if lines == nil {
		lines = c.OriginalLines
	}
	return lexer.JoinLines(lines, c.TrailingNewline)
}
