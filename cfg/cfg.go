// Package cfg builds a control-flow graph from IR: basic blocks split at
// labels and after jumps/returns, connected by jump-target, fallthrough,
// and conditional-fallthrough edges.
package cfg

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cwren/asmopt/ir"
)

// Block is a maximal straight-line instruction sequence.
type Block struct {
	Name         string
	Instructions []ir.Line
}

// Edge is a directed edge between two block names.
type Edge struct {
	Source string
	Target string
}

var jumpMnemonics = map[string]bool{
	"jmp": true, "jmpq": true, "jmpl": true, "jmpw": true,
}

var conditionalJumpMnemonics = map[string]bool{
	"jo": true, "jno": true, "js": true, "jns": true,
	"je": true, "jz": true, "jne": true, "jnz": true,
	"jb": true, "jnae": true, "jc": true, "jnb": true, "jae": true, "jnc": true,
	"jbe": true, "jna": true, "ja": true, "jnbe": true,
	"jl": true, "jnge": true, "jge": true, "jnl": true,
	"jle": true, "jng": true, "jg": true, "jnle": true,
	"jp": true, "jpe": true, "jnp": true, "jpo": true,
	"jcxz": true, "jecxz": true, "jrcxz": true,
}

var labelOperandRe = regexp.MustCompile(`^\*?[A-Za-z_.][A-Za-z0-9_.]*$`)

// IsJump reports whether mnemonic (case-insensitive) is any jumping
// mnemonic, conditional or unconditional.
func IsJump(mnemonic string) bool {
	m := strings.ToLower(mnemonic)
	return jumpMnemonics[m] || conditionalJumpMnemonics[m]
}

// IsConditionalJump reports whether mnemonic is a conditional jump.
func IsConditionalJump(mnemonic string) bool {
	return conditionalJumpMnemonics[strings.ToLower(mnemonic)]
}

// IsReturn reports whether mnemonic starts with "ret" and has length >= 3.
func IsReturn(mnemonic string) bool {
	m := strings.ToLower(mnemonic)
	return len(m) >= 3 && strings.HasPrefix(m, "ret")
}

// Build segments ir into basic blocks and computes control-flow edges.
func Build(lines []ir.Line) ([]Block, []Edge) {
	var blocks []Block
	var currentLabel string
	haveLabel := false
	var currentInstrs []ir.Line

	finalize := func() {
		if !haveLabel && len(currentInstrs) == 0 {
			return
		}
		blocks = append(blocks, Block{Name: currentLabel, Instructions: currentInstrs})
		currentInstrs = nil
	}

	for _, line := range lines {
		switch line.Kind {
		case ir.KindLabel:
			if haveLabel || len(currentInstrs) > 0 {
				finalize()
			}
			currentLabel = line.Text
			haveLabel = true
		case ir.KindInstruction:
			currentInstrs = append(currentInstrs, line)
			if IsJump(line.Mnemonic) || IsReturn(line.Mnemonic) {
				finalize()
				currentLabel = ""
				haveLabel = false
			}
		default:
			// blank/directive/text are ignored for CFG purposes.
		}
	}
	finalize()

	if len(blocks) == 0 {
		blocks = append(blocks, Block{Name: "block0"})
	}
	for i := range blocks {
		if blocks[i].Name == "" {
			blocks[i].Name = fmt.Sprintf("block%d", i)
		}
	}

	byName := make(map[string]int, len(blocks))
	for i, b := range blocks {
		byName[b.Name] = i
	}

	var edges []Edge
	for i, b := range blocks {
		if len(b.Instructions) == 0 {
			if i+1 < len(blocks) {
				edges = append(edges, Edge{Source: b.Name, Target: blocks[i+1].Name})
			}
			continue
		}
		last := b.Instructions[len(b.Instructions)-1]
		switch {
		case IsJump(last.Mnemonic):
			target, ok := jumpTarget(last.Operands)
			if ok {
				if _, exists := byName[target]; exists {
					edges = append(edges, Edge{Source: b.Name, Target: target})
				}
			}
			if IsConditionalJump(last.Mnemonic) && i+1 < len(blocks) {
				edges = append(edges, Edge{Source: b.Name, Target: blocks[i+1].Name})
			}
		case IsReturn(last.Mnemonic):
			// no edges
		default:
			if i+1 < len(blocks) {
				edges = append(edges, Edge{Source: b.Name, Target: blocks[i+1].Name})
			}
		}
	}

	return blocks, edges
}

func jumpTarget(operands []string) (string, bool) {
	if len(operands) == 0 {
		return "", false
	}
	op := strings.TrimSpace(operands[0])
	if !labelOperandRe.MatchString(op) {
		return "", false
	}
	return strings.TrimPrefix(op, "*"), true
}
