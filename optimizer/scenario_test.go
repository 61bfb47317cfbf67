package optimizer_test

import (
	"strings"
	"testing"

	"github.com/cwren/asmopt/optimizer"
	"github.com/cwren/asmopt/report"
)

func newCtx(t *testing.T, input string) *optimizer.Context {
	t.Helper()
	ctx := optimizer.New("x86-64")
	ctx.ParseString(input)
	return ctx
}

func TestScenarioMovZeroToXor(t *testing.T) {
	ctx := newCtx(t, "mov rax, 0\n")
	if err := ctx.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	want := "xor rax, rax\n"
	if got := report.GenerateAssembly(ctx); got != want {
		t.Fatalf("assembly = %q, want %q", got, want)
	}
	if len(ctx.Events) != 1 || ctx.Events[0].Pattern != "mov_zero_to_xor" {
		t.Fatalf("events = %+v", ctx.Events)
	}
	orig, opt, repl, rem := ctx.GetStats()
	if orig != 1 || opt != 1 || repl != 1 || rem != 0 {
		t.Fatalf("stats = (%d,%d,%d,%d), want (1,1,1,0)", orig, opt, repl, rem)
	}
}

func TestScenarioRedundantMov(t *testing.T) {
	ctx := newCtx(t, "mov rax, rax\nmov rbx, rcx\n")
	if err := ctx.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	want := "mov rbx, rcx\n"
	if got := report.GenerateAssembly(ctx); got != want {
		t.Fatalf("assembly = %q, want %q", got, want)
	}
	orig, opt, repl, rem := ctx.GetStats()
	if orig != 2 || opt != 1 || repl != 0 || rem != 1 {
		t.Fatalf("stats = (%d,%d,%d,%d), want (2,1,0,1)", orig, opt, repl, rem)
	}
}

func TestScenarioMulPowerOfTwo(t *testing.T) {
	ctx := newCtx(t, "imul rax, 8\nimul rbx, 3\n")
	if err := ctx.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	want := "shl rax, 3\nimul rbx, 3\n"
	if got := report.GenerateAssembly(ctx); got != want {
		t.Fatalf("assembly = %q, want %q", got, want)
	}
	if len(ctx.Events) != 1 || ctx.Events[0].Pattern != "mul_power_of_2_to_shift" {
		t.Fatalf("events = %+v", ctx.Events)
	}
}

func TestScenarioRedundantMovePair(t *testing.T) {
	ctx := newCtx(t, "mov rax, rbx\nmov rbx, rax\n")
	if err := ctx.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	want := "mov rax, rbx\n"
	if got := report.GenerateAssembly(ctx); got != want {
		t.Fatalf("assembly = %q, want %q", got, want)
	}
	if len(ctx.Events) != 1 || ctx.Events[0].Pattern != "redundant_move_pair" {
		t.Fatalf("events = %+v", ctx.Events)
	}
}

func TestScenarioHotLoopAlign(t *testing.T) {
	ctx := newCtx(t, ".hot_loop:\n  add rax, 1\n")
	ctx.SetOption("hot_align", "1")
	if err := ctx.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	want := "    .align 64\n.hot_loop:\n  inc rax\n"
	if got := report.GenerateAssembly(ctx); got != want {
		t.Fatalf("assembly = %q, want %q", got, want)
	}
	var names []string
	for _, e := range ctx.Events {
		names = append(names, e.Pattern)
	}
	if !contains(names, "hot_loop_align") || !contains(names, "add_one_to_inc") {
		t.Fatalf("events = %v, want hot_loop_align and add_one_to_inc", names)
	}
}

func TestScenarioFallthroughJump(t *testing.T) {
	ctx := newCtx(t, "jmp .next\n.next:\nmov rax, 0\n")
	if err := ctx.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	want := ".next:\nxor rax, rax\n"
	if got := report.GenerateAssembly(ctx); got != want {
		t.Fatalf("assembly = %q, want %q", got, want)
	}
	var names []string
	for _, e := range ctx.Events {
		names = append(names, e.Pattern)
	}
	if !contains(names, "fallthrough_jump") || !contains(names, "mov_zero_to_xor") {
		t.Fatalf("events = %v", names)
	}
}

func TestScenarioBsfToTzcntZenOnly(t *testing.T) {
	input := "test rbx, rbx\njz .skip\nbsf rax, rbx\n.skip:\n"

	zen := newCtx(t, input)
	zen.SetTargetCPU("zen3")
	if err := zen.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if !strings.Contains(report.GenerateAssembly(zen), "tzcnt rax, rbx") {
		t.Fatalf("zen3 assembly = %q, want tzcnt", report.GenerateAssembly(zen))
	}

	generic := newCtx(t, input)
	generic.SetTargetCPU("generic")
	if err := generic.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if !strings.Contains(report.GenerateAssembly(generic), "bsf rax, rbx") {
		t.Fatalf("generic assembly = %q, want bsf unchanged", report.GenerateAssembly(generic))
	}
}

func TestRoundTripIdentityWhenSuppressed(t *testing.T) {
	input := "mov rax, 0\nmov rbx, rbx\n"
	ctx := newCtx(t, input)
	ctx.SetOptimizationLevel(0)
	if err := ctx.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if got := report.GenerateAssembly(ctx); got != input {
		t.Fatalf("assembly = %q, want unchanged %q", got, input)
	}
	if len(ctx.Events) != 0 {
		t.Fatalf("events = %+v, want none", ctx.Events)
	}
}

func TestStatsConsistency(t *testing.T) {
	ctx := newCtx(t, "mov rax, 0\nmov rbx, rbx\nadd rcx, 1\n")
	if err := ctx.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	_, _, repl, rem := ctx.GetStats()
	if repl+rem != len(ctx.Events) {
		t.Fatalf("replacements+removals = %d, want %d (len(events))", repl+rem, len(ctx.Events))
	}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
