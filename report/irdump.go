package report

import (
	"fmt"
	"strings"

	"github.com/cwren/asmopt/ir"
	"github.com/cwren/asmopt/optimizer"
)

// DumpIRText renders the IR as "LLLL: <kind> <text>" lines, with the
// zero-padded 4-digit line number; instruction lines additionally list the
// mnemonic and operands.
func DumpIRText(c *optimizer.Context) string {
	var sb strings.Builder
	sb.WriteString("IR:\n")
	for _, line := range c.IR {
		if line.Kind == ir.KindInstruction {
			fmt.Fprintf(&sb, "%04d: instr %s %s\n", line.LineNo, line.Mnemonic, strings.Join(line.Operands, ", "))
			continue
		}
		fmt.Fprintf(&sb, "%04d: %s %s\n", line.LineNo, line.Kind, line.Text)
	}
	return sb.String()
}
