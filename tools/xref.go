package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwren/asmopt/cfg"
	"github.com/cwren/asmopt/ir"
	"github.com/cwren/asmopt/lexer"
)

// ReferenceType indicates how a symbol is used.
type ReferenceType int

const (
	RefDefinition ReferenceType = iota
	RefBranch
	RefCall
)

func (r ReferenceType) String() string {
	switch r {
	case RefDefinition:
		return "definition"
	case RefBranch:
		return "branch"
	case RefCall:
		return "call"
	default:
		return "unknown"
	}
}

// Reference is a single use of a symbol.
type Reference struct {
	Type ReferenceType
	Line int
}

// Symbol is a label and every reference to it.
type Symbol struct {
	Name       string
	Definition *Reference
	References []*Reference
	IsFunction bool // referenced by at least one call
}

// XRefGenerator builds a symbol cross-reference from assembly source.
type XRefGenerator struct {
	symbols map[string]*Symbol
}

// NewXRefGenerator creates an empty cross-reference generator.
func NewXRefGenerator() *XRefGenerator {
	return &XRefGenerator{symbols: make(map[string]*Symbol)}
}

// Generate builds the cross-reference table for source.
func (x *XRefGenerator) Generate(source string) map[string]*Symbol {
	lines, _ := lexer.SplitLines(source)
	irLines := ir.Build(lines)

	x.collectDefinitions(irLines)
	x.collectReferences(irLines)
	x.analyzeCallGraph()

	return x.symbols
}

func (x *XRefGenerator) collectDefinitions(lines []ir.Line) {
	for _, line := range lines {
		if line.Kind != ir.KindLabel {
			continue
		}
		sym := x.symbolFor(line.Text)
		sym.Definition = &Reference{Type: RefDefinition, Line: line.LineNo}
	}
}

func (x *XRefGenerator) collectReferences(lines []ir.Line) {
	for _, line := range lines {
		if line.Kind != ir.KindInstruction || len(line.Operands) == 0 {
			continue
		}
		if !cfg.IsJump(line.Mnemonic) && !strings.EqualFold(line.Mnemonic, "call") {
			continue
		}
		target := strings.TrimSpace(line.Operands[0])
		if !labelRefRe.MatchString(target) {
			continue
		}
		target = strings.TrimPrefix(target, "*")
		refType := RefBranch
		if strings.EqualFold(line.Mnemonic, "call") {
			refType = RefCall
		}
		sym := x.symbolFor(target)
		sym.References = append(sym.References, &Reference{Type: refType, Line: line.LineNo})
	}
}

func (x *XRefGenerator) analyzeCallGraph() {
	for _, sym := range x.symbols {
		for _, ref := range sym.References {
			if ref.Type == RefCall {
				sym.IsFunction = true
				break
			}
		}
	}
}

func (x *XRefGenerator) symbolFor(name string) *Symbol {
	if sym, ok := x.symbols[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name}
	x.symbols[name] = sym
	return sym
}

// GetSymbols returns every symbol found.
func (x *XRefGenerator) GetSymbols() map[string]*Symbol {
	return x.symbols
}

// GetUndefinedSymbols returns symbols referenced but never defined.
func (x *XRefGenerator) GetUndefinedSymbols() []*Symbol {
	return sortedSymbols(x.symbols, func(s *Symbol) bool {
		return s.Definition == nil && len(s.References) > 0
	})
}

// GetUnusedSymbols returns symbols defined but never referenced.
func (x *XRefGenerator) GetUnusedSymbols() []*Symbol {
	return sortedSymbols(x.symbols, func(s *Symbol) bool {
		return s.Definition != nil && len(s.References) == 0 && !isSpecialLabel(s.Name)
	})
}

func sortedSymbols(symbols map[string]*Symbol, keep func(*Symbol) bool) []*Symbol {
	var out []*Symbol
	for _, sym := range symbols {
		if keep(sym) {
			out = append(out, sym)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// XRefReport formats a symbol table as a text report.
type XRefReport struct {
	symbols []*Symbol
}

// NewXRefReport builds a report over symbols, sorted by name.
func NewXRefReport(symbols map[string]*Symbol) *XRefReport {
	all := make([]*Symbol, 0, len(symbols))
	for _, sym := range symbols {
		all = append(all, sym)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return &XRefReport{symbols: all}
}

// String renders the cross-reference report.
func (r *XRefReport) String() string {
	var sb strings.Builder
	sb.WriteString("Symbol Cross-Reference\n")
	sb.WriteString("======================\n\n")

	for _, sym := range r.symbols {
		fmt.Fprintf(&sb, "%-30s", sym.Name)
		if sym.IsFunction {
			sb.WriteString(" [function]\n")
		} else {
			sb.WriteString(" [label]\n")
		}

		if sym.Definition != nil {
			fmt.Fprintf(&sb, "  Defined:     line %d\n", sym.Definition.Line)
		} else {
			sb.WriteString("  Defined:     (undefined)\n")
		}

		if len(sym.References) == 0 {
			sb.WriteString("  Referenced:  (never)\n")
		} else {
			fmt.Fprintf(&sb, "  Referenced:  %d time(s)\n", len(sym.References))
			refsByType := make(map[ReferenceType][]*Reference)
			for _, ref := range sym.References {
				refsByType[ref.Type] = append(refsByType[ref.Type], ref)
			}
			for _, refType := range []ReferenceType{RefCall, RefBranch} {
				refs := refsByType[refType]
				if len(refs) == 0 {
					continue
				}
				lineNos := make([]string, len(refs))
				for i, ref := range refs {
					lineNos[i] = fmt.Sprintf("%d", ref.Line)
				}
				fmt.Fprintf(&sb, "    %-10s: line(s) %s\n", refType.String(), strings.Join(lineNos, ", "))
			}
		}
		sb.WriteString("\n")
	}

	defined, undefined, unused, functions := 0, 0, 0, 0
	for _, sym := range r.symbols {
		if sym.Definition != nil {
			defined++
		} else {
			undefined++
		}
		if len(sym.References) == 0 {
			unused++
		}
		if sym.IsFunction {
			functions++
		}
	}

	sb.WriteString("Summary\n")
	sb.WriteString("=======\n")
	fmt.Fprintf(&sb, "Total symbols:     %d\n", len(r.symbols))
	fmt.Fprintf(&sb, "Defined:           %d\n", defined)
	fmt.Fprintf(&sb, "Undefined:         %d\n", undefined)
	fmt.Fprintf(&sb, "Unused:            %d\n", unused)
	fmt.Fprintf(&sb, "Functions:         %d\n", functions)

	return sb.String()
}

// GenerateXRef is a convenience wrapper producing the formatted report text.
func GenerateXRef(source string) string {
	gen := NewXRefGenerator()
	symbols := gen.Generate(source)
	return NewXRefReport(symbols).String()
}
