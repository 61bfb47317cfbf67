// Package tui implements a text-mode browser for an optimization session:
// source/optimized assembly side by side, the event log, and the CFG text
// dump, driven by a single-line command input.
package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/cwren/asmopt/optimizer"
	"github.com/cwren/asmopt/service"
)

// TUI is the text user interface for browsing one optimization session.
type TUI struct {
	Session *service.Session
	App     *tview.Application
	Pages   *tview.Pages

	MainLayout *tview.Flex
	LeftPanel  *tview.Flex
	RightPanel *tview.Flex

	OriginalView  *tview.TextView
	OptimizedView *tview.TextView
	EventsView    *tview.TextView
	CFGView       *tview.TextView
	OutputView    *tview.TextView
	CommandInput  *tview.InputField
}

// New creates a browser bound to sess.
func New(sess *service.Session) *TUI {
	t := &TUI{
		Session: sess,
		App:     tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	t.refreshViews()
	return t
}

func (t *TUI) initializeViews() {
	t.OriginalView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.OriginalView.SetBorder(true).SetTitle(" Original ")

	t.OptimizedView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.OptimizedView.SetBorder(true).SetTitle(" Optimized ")

	t.EventsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.EventsView.SetBorder(true).SetTitle(" Events ")

	t.CFGView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.CFGView.SetBorder(true).SetTitle(" CFG ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	t.LeftPanel = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.OriginalView, 0, 1, false).
		AddItem(t.OptimizedView, 0, 1, false)

	t.RightPanel = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.EventsView, 0, 1, false).
		AddItem(t.CFGView, 0, 1, false)

	mainContent := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(t.LeftPanel, 0, 1, false).
		AddItem(t.RightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 6, 0, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF5:
			t.executeCommand("optimize")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key == tcell.KeyEnter {
		cmd := t.CommandInput.GetText()
		if cmd != "" {
			t.executeCommand(cmd)
			t.CommandInput.SetText("")
		}
	}
}

// executeCommand interprets a single command line. Supported commands:
//
//	load <path>           parse a file into the session
//	optimize               run the optimization pass
//	set level <0-4>         set the optimization level
//	set cpu <name>          set the target CPU
//	set hot_align           enable hot-loop alignment
//	quit                    exit the browser
func (t *TUI) executeCommand(cmd string) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return
	}

	var err error
	switch fields[0] {
	case "load":
		if len(fields) < 2 {
			err = fmt.Errorf("usage: load <path>")
			break
		}
		var data []byte
		data, err = os.ReadFile(fields[1]) // #nosec G304 -- operator-supplied path
		if err == nil {
			t.Session.LoadSource(string(data))
		}
	case "optimize":
		err = t.Session.Optimize()
	case "set":
		err = t.executeSet(fields[1:])
	case "quit":
		t.App.Stop()
		return
	default:
		err = fmt.Errorf("unknown command: %s", fields[0])
	}

	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
	}
	t.RefreshAll()
}

func (t *TUI) executeSet(args []string) error {
	if len(args) == 0 || (len(args) < 2 && args[0] != "hot_align") {
		return fmt.Errorf("usage: set level <0-4> | set cpu <name> | set hot_align")
	}
	switch args[0] {
	case "level":
		level, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid level: %s", args[1])
		}
		t.Session.Configure(func(ctx *optimizer.Context) { ctx.SetOptimizationLevel(level) })
	case "cpu":
		t.Session.Configure(func(ctx *optimizer.Context) { ctx.SetTargetCPU(args[1]) })
	case "hot_align":
		t.Session.Configure(func(ctx *optimizer.Context) { ctx.SetOption("hot_align", "1") })
	default:
		return fmt.Errorf("unknown setting: %s", args[0])
	}
	return nil
}

// WriteOutput appends text to the output view.
func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

// refreshViews repopulates every panel from the session's current state.
func (t *TUI) refreshViews() {
	t.OriginalView.SetText(t.Session.OriginalSource())
	t.OptimizedView.SetText(t.Session.Assembly())
	t.EventsView.SetText(formatEvents(t.Session))
	t.CFGView.SetText(t.Session.CFGDump())
}

// RefreshAll repopulates every panel and redraws the screen. Only safe to
// call once the application is running (its screen is attached).
func (t *TUI) RefreshAll() {
	t.refreshViews()
	t.App.Draw()
}

func formatEvents(sess *service.Session) string {
	events := sess.Events()
	if len(events) == 0 {
		return "[gray]no optimizations applied[white]"
	}
	var sb strings.Builder
	for _, e := range events {
		fmt.Fprintf(&sb, "%4d %s\n", e.LineNo, e.Pattern)
	}
	return sb.String()
}

// Run starts the event loop; it blocks until the user quits.
func (t *TUI) Run() error {
	return t.App.SetRoot(t.Pages, true).EnableMouse(true).Run()
}
