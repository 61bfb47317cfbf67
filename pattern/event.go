// Package pattern implements the peephole pattern-matching engine: a fixed,
// ordered catalog of rewrite rules that inspect a sliding window of 1-3
// instructions and produce a replacement, a removal, a reorder, or a no-op.
package pattern

import "github.com/cwren/asmopt/lexer"

// Event is the audit record appended for every pattern that fires, in scan
// order. OptimizedText is the literal string "(removed)" for removals that
// leave no line behind; a removal that keeps the instruction's comment
// carries that indent+comment line instead.
// InputLines/OutputLines are the window sizes consumed/produced, used to
// attribute replacements/removals per §4.4.4.
type Event struct {
	LineNo        int
	Pattern       string
	OriginalText  string
	OptimizedText string
	InputLines    int
	OutputLines   int
}

// Stats mirrors the engine-level replacement/removal counters.
type Stats struct {
	Replacements int
	Removals     int
}

// ComputeStats attributes each event to a replacement or a removal per
// §4.4.4. load_modify_store is a documented special case that counts as
// both (a 3-line window collapsed to 1 line). An event that produces more
// lines than it consumed (hot_loop_align, 1 -> 2) counts as neither.
func ComputeStats(events []Event) Stats {
	var s Stats
	for _, e := range events {
		if e.Pattern == "load_modify_store" {
			s.Replacements++
			s.Removals++
			continue
		}
		switch {
		case e.OutputLines == e.InputLines:
			s.Replacements++
		case e.OutputLines < e.InputLines:
			s.Removals++
		}
	}
	return s
}

// Settings is the subset of session configuration the engine needs to
// dispatch context- and cache-aware patterns.
type Settings struct {
	Syntax           lexer.Syntax
	TargetCPU        string
	AMDOptimizations bool
	HotAlign         bool
}

// Removed is the literal marker used for removal events.
const Removed = "(removed)"
