package report

import (
	"fmt"
	"strings"

	"github.com/cwren/asmopt/optimizer"
)

// GenerateReport formats the plain-text optimization report: a summary
// block, followed by one entry per audit event (omitted entirely when no
// events fired).
func GenerateReport(c *optimizer.Context) string {
	original, optimized, replacements, removals := c.GetStats()

	var sb strings.Builder
	sb.WriteString("Optimization Report\n")
	sb.WriteString("==================\n\n")
	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "  Original lines: %d\n", original)
	fmt.Fprintf(&sb, "  Optimized lines: %d\n", optimized)
	fmt.Fprintf(&sb, "  Replacements: %d\n", replacements)
	fmt.Fprintf(&sb, "  Removals: %d\n", removals)

	if len(c.Events) == 0 {
		return sb.String()
	}

	sb.WriteString("\nOptimizations Applied:\n")
	for _, e := range c.Events {
		fmt.Fprintf(&sb, "  Line %d: %s\n", e.LineNo, e.Pattern)
		fmt.Fprintf(&sb, "    Before: %s\n", e.OriginalText)
		fmt.Fprintf(&sb, "    After:  %s\n", e.OptimizedText)
	}
	return sb.String()
}
