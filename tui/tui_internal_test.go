package tui

import (
	"strings"
	"testing"

	"github.com/cwren/asmopt/service"
)

func newTestTUI(t *testing.T) *TUI {
	t.Helper()
	r := service.NewRegistry()
	sess := r.Create("x86-64")
	sess.LoadSource("mov rax, 0\n")
	return New(sess)
}

func TestRefreshViewsPopulatesPanels(t *testing.T) {
	tu := newTestTUI(t)
	if !strings.Contains(tu.OriginalView.GetText(true), "mov rax, 0") {
		t.Fatalf("OriginalView = %q", tu.OriginalView.GetText(true))
	}
}

func TestExecuteSetLevel(t *testing.T) {
	tu := newTestTUI(t)
	if err := tu.executeSet([]string{"level", "0"}); err != nil {
		t.Fatalf("executeSet: %v", err)
	}
	if err := tu.Session.Optimize(); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if got := tu.Session.Assembly(); got != "mov rax, 0\n" {
		t.Fatalf("Assembly = %q, want unchanged at level 0", got)
	}
}

func TestExecuteSetUnknown(t *testing.T) {
	tu := newTestTUI(t)
	if err := tu.executeSet([]string{"bogus", "1"}); err == nil {
		t.Fatalf("want error for unknown setting")
	}
}

func TestFormatEventsEmpty(t *testing.T) {
	tu := newTestTUI(t)
	if got := formatEvents(tu.Session); !strings.Contains(got, "no optimizations") {
		t.Fatalf("formatEvents = %q", got)
	}
}
