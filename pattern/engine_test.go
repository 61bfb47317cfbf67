package pattern_test

import (
	"strings"
	"testing"

	"github.com/cwren/asmopt/lexer"
	"github.com/cwren/asmopt/pattern"
)

func run(lines []string) ([]string, []pattern.Event) {
	return pattern.Run(lines, pattern.Settings{Syntax: lexer.SyntaxIntel, TargetCPU: "generic", AMDOptimizations: true})
}

func TestAndZeroRewritesNotIdentity(t *testing.T) {
	out, events := run([]string{"and rax, 0"})
	if len(events) != 1 || events[0].Pattern != "and_zero_to_xor" {
		t.Fatalf("events = %+v, want and_zero_to_xor", events)
	}
	if strings.Join(out, "\n") != "xor rax, rax" {
		t.Fatalf("out = %v", out)
	}
}

func TestInvertConditionalJumpVerbatimTable(t *testing.T) {
	out, events := run([]string{"jnae L1", "jmp L2", "L1:"})
	if len(events) != 1 || events[0].Pattern != "invert_conditional_jump" {
		t.Fatalf("events = %+v", events)
	}
	if !strings.Contains(out[0], "jae L2") {
		t.Fatalf("out = %v, want jae L2 (verbatim table mapping, not jb)", out)
	}
}

func TestDeadStoreMoveDropsFirst(t *testing.T) {
	out, events := run([]string{"mov rax, rbx", "mov rax, rcx"})
	if len(events) != 1 || events[0].Pattern != "dead_store_move" {
		t.Fatalf("events = %+v", events)
	}
	if len(out) != 1 || out[0] != "mov rax, rcx" {
		t.Fatalf("out = %v, want only the second store", out)
	}
}

func TestScheduleSwapMoveReorders(t *testing.T) {
	out, events := run([]string{"mov rax, rbx", "mov rcx, rdx"})
	if len(events) != 1 || events[0].Pattern != "schedule_swap_move" {
		t.Fatalf("events = %+v", events)
	}
	if len(out) != 2 || out[0] != "mov rcx, rdx" || out[1] != "mov rax, rbx" {
		t.Fatalf("out = %v, want reordered pair", out)
	}
}

func TestLoadModifyStoreCollapsesToOne(t *testing.T) {
	out, events := run([]string{"mov rax, [rbx]", "add rax, 4", "mov [rbx], rax"})
	if len(events) != 1 || events[0].Pattern != "load_modify_store" {
		t.Fatalf("events = %+v", events)
	}
	if len(out) != 1 || out[0] != "add [rbx], 4" {
		t.Fatalf("out = %v, want single add", out)
	}
	stats := pattern.ComputeStats(events)
	if stats.Replacements != 1 || stats.Removals != 1 {
		t.Fatalf("stats = %+v, want both incremented per spec", stats)
	}
}

func TestMemoryOperandsNeverMatchRegisterPatterns(t *testing.T) {
	_, events := run([]string{"mov [rbx], 0"})
	if len(events) != 0 {
		t.Fatalf("events = %+v, want none (destination is memory, not register)", events)
	}
}
