// Package guiview implements a desktop before/after viewer for an
// optimization session: original assembly on the left, optimized assembly
// on the right, with an events list and a toolbar to load a file and run
// the optimizer.
package guiview

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/cwren/asmopt/service"
)

// GUI is the desktop viewer window for one session.
type GUI struct {
	Session *service.Session
	App     fyne.App
	Window  fyne.Window

	OriginalView  *widget.TextGrid
	OptimizedView *widget.TextGrid
	EventsList    *widget.List
	StatusLabel   *widget.Label
	Toolbar       *widget.Toolbar

	events []string
}

// Run opens the viewer window for sess and blocks until it is closed.
func Run(sess *service.Session) {
	g := newGUI(sess)
	g.Window.ShowAndRun()
}

func newGUI(sess *service.Session) *GUI {
	myApp := app.New()
	myWindow := myApp.NewWindow("Peephole Optimizer")

	g := &GUI{
		Session: sess,
		App:     myApp,
		Window:  myWindow,
	}

	g.initializeViews()
	g.buildLayout()
	g.setupToolbar()
	g.refreshViews()

	myWindow.Resize(fyne.NewSize(1200, 800))
	return g
}

func (g *GUI) initializeViews() {
	g.OriginalView = widget.NewTextGrid()
	g.OriginalView.SetText("No source loaded")

	g.OptimizedView = widget.NewTextGrid()
	g.OptimizedView.SetText("")

	g.EventsList = widget.NewList(
		func() int { return len(g.events) },
		func() fyne.CanvasObject { return widget.NewLabel("template") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(g.events[id])
		},
	)

	g.StatusLabel = widget.NewLabel("Ready")
}

func (g *GUI) buildLayout() {
	originalPanel := container.NewBorder(
		widget.NewLabel("Original"), nil, nil, nil,
		container.NewScroll(g.OriginalView),
	)
	optimizedPanel := container.NewBorder(
		widget.NewLabel("Optimized"), nil, nil, nil,
		container.NewScroll(g.OptimizedView),
	)
	eventsPanel := container.NewBorder(
		widget.NewLabel("Events"), nil, nil, nil,
		g.EventsList,
	)

	sourceSplit := container.NewHSplit(originalPanel, optimizedPanel)
	sourceSplit.SetOffset(0.5)

	mainSplit := container.NewVSplit(sourceSplit, eventsPanel)
	mainSplit.SetOffset(0.75)

	statusBar := container.NewBorder(nil, nil, nil, nil, g.StatusLabel)

	content := container.NewBorder(g.Toolbar, statusBar, nil, nil, mainSplit)
	g.Window.SetContent(content)
}

func (g *GUI) setupToolbar() {
	g.Toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), g.openFile),
		widget.NewToolbarAction(theme.MediaPlayIcon(), g.runOptimize),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), g.refreshViews),
	)
}

func (g *GUI) openFile() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.Window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		g.loadReader(reader)
	}, g.Window)
	d.Show()
}

func (g *GUI) loadReader(reader fyne.URIReadCloser) {
	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, readErr := reader.Read(buf)
		if n > 0 {
			sb.Write(buf[:n])
		}
		if readErr != nil {
			break
		}
	}

	g.Session.LoadSource(sb.String())
	g.StatusLabel.SetText("Loaded source")
	g.refreshViews()
}

func (g *GUI) runOptimize() {
	if err := g.Session.Optimize(); err != nil {
		dialog.ShowError(err, g.Window)
		return
	}
	g.StatusLabel.SetText("Optimized")
	g.refreshViews()
}

// refreshViews repopulates every panel from the session's current state.
func (g *GUI) refreshViews() {
	g.OriginalView.SetText(g.Session.OriginalSource())
	g.OptimizedView.SetText(g.Session.Assembly())

	_, _, replacements, removals := g.Session.Stats()
	g.StatusLabel.SetText(fmt.Sprintf("Replacements: %d  Removals: %d", replacements, removals))

	g.events = nil
	for _, e := range g.Session.Events() {
		g.events = append(g.events, fmt.Sprintf("%4d  %s", e.LineNo, e.Pattern))
	}
	g.EventsList.Refresh()
}
