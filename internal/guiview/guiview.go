// Package guiview is the desktop companion to the terminal monitor: the
// same register/stack/data/source panels rendered with Fyne instead of
// tcell, for users who want a windowed view rather than a TUI. Adapted
// from the teacher's debugger/gui.go, trimmed to this simulator's state
// surface (no byte-addressed memory view, no program console since the
// simulator has no guest stdout).
package guiview

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/faisaal99/mipssim/internal/display"
	"github.com/faisaal99/mipssim/internal/vm"
)

// GUI is the windowed debugger view over a single Interpreter.
type GUI struct {
	Interp *vm.Interpreter
	App    fyne.App
	Window fyne.Window

	SourceView   *widget.TextGrid
	RegisterView *widget.TextGrid
	StackView    *widget.TextGrid
	DataView     *widget.TextGrid
	StatusLabel  *widget.Label
	Toolbar      *widget.Toolbar

	Breakpoints map[int]bool
	lastErr     error
}

// Run builds and shows the window, blocking until the user closes it.
func Run(in *vm.Interpreter) {
	g := newGUI(in)
	g.Window.ShowAndRun()
}

func newGUI(in *vm.Interpreter) *GUI {
	a := app.New()
	w := a.NewWindow("MIPS Simulator")

	g := &GUI{
		Interp:      in,
		App:         a,
		Window:      w,
		Breakpoints: make(map[int]bool),
	}

	g.initializeViews()
	g.setupToolbar()
	g.buildLayout()
	g.refresh()

	w.Resize(fyne.NewSize(1200, 800))
	return g
}

func (g *GUI) initializeViews() {
	g.SourceView = widget.NewTextGrid()
	g.RegisterView = widget.NewTextGrid()
	g.StackView = widget.NewTextGrid()
	g.DataView = widget.NewTextGrid()
	g.StatusLabel = widget.NewLabel("Ready")
}

func (g *GUI) buildLayout() {
	sourcePanel := container.NewBorder(widget.NewLabel("Source"), nil, nil, nil, container.NewScroll(g.SourceView))
	registerPanel := container.NewBorder(widget.NewLabel("Registers"), nil, nil, nil, container.NewScroll(g.RegisterView))

	bottomTabs := container.NewAppTabs(
		container.NewTabItem("Stack", container.NewScroll(g.StackView)),
		container.NewTabItem("Data", container.NewScroll(g.DataView)),
	)

	rightPanel := container.NewVSplit(registerPanel, bottomTabs)
	rightPanel.SetOffset(0.5)

	mainSplit := container.NewHSplit(sourcePanel, rightPanel)
	mainSplit.SetOffset(0.55)

	statusBar := container.NewBorder(nil, nil, nil, nil, g.StatusLabel)
	content := container.NewBorder(g.Toolbar, statusBar, nil, nil, mainSplit)
	g.Window.SetContent(content)
}

func (g *GUI) setupToolbar() {
	g.Toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.MediaSkipNextIcon(), func() { g.step() }),
		widget.NewToolbarAction(theme.MediaPlayIcon(), func() { g.run() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() { g.reset() }),
	)
}

func (g *GUI) step() {
	if g.Interp.Halted {
		g.StatusLabel.SetText("already halted")
		g.refresh()
		return
	}
	_, err := g.Interp.Step()
	g.lastErr = err
	g.refresh()
}

func (g *GUI) run() {
	for {
		if g.Interp.Halted {
			break
		}
		done, err := g.Interp.Step()
		g.lastErr = err
		if err != nil {
			break
		}
		if done {
			break
		}
		if g.Breakpoints[g.Interp.CurrentLine()] {
			break
		}
	}
	g.refresh()
}

func (g *GUI) reset() {
	g.Interp.Reset()
	g.lastErr = nil
	g.refresh()
}

func (g *GUI) refresh() {
	g.SourceView.SetText(display.CurrentLine(g.Interp))
	g.RegisterView.SetText(display.Registers(g.Interp))
	g.StackView.SetText(display.Stack(g.Interp))
	g.DataView.SetText(display.DataMemory(g.Interp))

	status := fmt.Sprintf("line %d", g.Interp.CurrentLine())
	if g.Interp.Halted {
		status += " (halted)"
	}
	if g.lastErr != nil {
		status += ": " + g.lastErr.Error()
	}
	g.StatusLabel.SetText(status)

	breaks := make([]string, 0, len(g.Breakpoints))
	for line := range g.Breakpoints {
		breaks = append(breaks, fmt.Sprintf("line %d", line))
	}
	_ = strings.Join(breaks, ", ")
}
