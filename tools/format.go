package tools

import (
	"strings"

	"github.com/cwren/asmopt/ir"
	"github.com/cwren/asmopt/lexer"
)

// FormatStyle selects a column layout.
type FormatStyle int

const (
	FormatDefault  FormatStyle = iota // standard column layout
	FormatCompact                     // minimal whitespace
	FormatExpanded                    // extra whitespace for readability
)

// FormatOptions controls formatter layout.
type FormatOptions struct {
	Style             FormatStyle
	InstructionColumn int  // column instructions start at
	OperandColumn     int  // column operands start at
	CommentColumn     int  // column trailing comments start at
	AlignOperands     bool // pad to OperandColumn instead of a single tab
	AlignComments     bool // pad to CommentColumn instead of a single tab
}

// DefaultFormatOptions is the standard column layout.
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{
		Style:             FormatDefault,
		InstructionColumn: 4,
		OperandColumn:     12,
		CommentColumn:     40,
		AlignOperands:     true,
		AlignComments:     true,
	}
}

// CompactFormatOptions minimizes whitespace.
func CompactFormatOptions() *FormatOptions {
	opts := DefaultFormatOptions()
	opts.Style = FormatCompact
	opts.AlignOperands = false
	opts.AlignComments = false
	return opts
}

// ExpandedFormatOptions widens every column for readability.
func ExpandedFormatOptions() *FormatOptions {
	opts := DefaultFormatOptions()
	opts.Style = FormatExpanded
	opts.InstructionColumn = 8
	opts.OperandColumn = 20
	opts.CommentColumn = 50
	return opts
}

// Formatter deterministically re-indents assembly source.
type Formatter struct {
	options *FormatOptions
}

// NewFormatter creates a formatter with the given options, or the defaults
// if nil.
func NewFormatter(options *FormatOptions) *Formatter {
	if options == nil {
		options = DefaultFormatOptions()
	}
	return &Formatter{options: options}
}

// Format re-indents source according to the formatter's options. Blank
// lines, directives, and label lines pass through with minimal change;
// instruction lines get mnemonic/operand/comment columns applied.
func (f *Formatter) Format(source string) string {
	lines, trailing := lexer.SplitLines(source)
	irLines := ir.Build(lines)

	var out strings.Builder
	for i, line := range irLines {
		switch line.Kind {
		case ir.KindBlank:
			// preserved as-is
		case ir.KindLabel:
			out.WriteString(line.Text)
			out.WriteString(":")
			f.appendComment(&out, lines[i])
		case ir.KindDirective:
			out.WriteString(line.Text)
			f.appendComment(&out, lines[i])
		case ir.KindInstruction:
			f.formatInstruction(&out, line, lines[i])
		default:
			out.WriteString(line.Text)
		}
		out.WriteString("\n")
	}

	result := out.String()
	if !trailing && strings.HasSuffix(result, "\n") {
		result = strings.TrimSuffix(result, "\n")
	}
	return result
}

func (f *Formatter) formatInstruction(sb *strings.Builder, line ir.Line, rawLine string) {
	_, comment := lexer.SplitComment(rawLine)

	if f.options.Style != FormatCompact {
		f.padToColumn(sb, f.options.InstructionColumn)
	}
	sb.WriteString(line.Mnemonic)

	if len(line.Operands) > 0 {
		if f.options.Style == FormatCompact {
			sb.WriteString(" ")
		} else if f.options.AlignOperands {
			f.padToColumn(sb, f.options.OperandColumn)
		} else {
			sb.WriteString("\t")
		}
		sb.WriteString(formatOperands(line.Operands))
	}

	if comment != "" {
		comment = strings.TrimSpace(comment)
		if f.options.Style == FormatCompact {
			sb.WriteString(" ")
			sb.WriteString(comment)
		} else if f.options.AlignComments {
			f.padToColumn(sb, f.options.CommentColumn)
			sb.WriteString(comment)
		} else {
			sb.WriteString("\t")
			sb.WriteString(comment)
		}
	}
}

func (f *Formatter) appendComment(sb *strings.Builder, rawLine string) {
	_, comment := lexer.SplitComment(rawLine)
	if comment == "" {
		return
	}
	sb.WriteString(" ")
	sb.WriteString(strings.TrimSpace(comment))
}

func formatOperands(operands []string) string {
	trimmed := make([]string, len(operands))
	for i, op := range operands {
		trimmed[i] = strings.TrimSpace(op)
	}
	return strings.Join(trimmed, ", ")
}

// padToColumn pads sb with spaces until the current line reaches column,
// or a single space if it has already passed it.
func (f *Formatter) padToColumn(sb *strings.Builder, column int) {
	s := sb.String()
	current := len(s) - (strings.LastIndexByte(s, '\n') + 1)
	switch {
	case current < column:
		sb.WriteString(strings.Repeat(" ", column-current))
	case current > column:
		sb.WriteString(" ")
	}
}

// FormatString formats source with the default layout.
func FormatString(source string) string {
	return NewFormatter(DefaultFormatOptions()).Format(source)
}

// FormatStringWithStyle formats source with the given style's layout.
func FormatStringWithStyle(source string, style FormatStyle) string {
	var options *FormatOptions
	switch style {
	case FormatCompact:
		options = CompactFormatOptions()
	case FormatExpanded:
		options = ExpandedFormatOptions()
	default:
		options = DefaultFormatOptions()
	}
	return NewFormatter(options).Format(source)
}
