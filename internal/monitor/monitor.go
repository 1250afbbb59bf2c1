// Package monitor is a text UI for watching a running program step by
// step: source, registers, stack, and data memory panels plus a command
// line, adapted from the teacher's debugger TUI to this simulator's much
// smaller state (32 registers, 100 stack cells, a handful of data
// entries, no disassembly or breakpoints -- this simulator steps whole
// source lines, it does not address individual bytes).
package monitor

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/faisaal99/mipssim/internal/decoder"
	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/faisaal99/mipssim/internal/vm"
)

// Monitor is the TUI application wrapping a running Interpreter.
type Monitor struct {
	Interp *vm.Interpreter

	App  *tview.Application
	Root *tview.Flex

	SourceView   *tview.TextView
	RegisterView *tview.TextView
	StackView    *tview.TextView
	DataView     *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField

	lastErr error
}

// New builds a Monitor over an already-constructed Interpreter.
func New(in *vm.Interpreter) *Monitor {
	m := &Monitor{
		Interp: in,
		App:    tview.NewApplication(),
	}
	m.initializeViews()
	m.buildLayout()
	m.setupKeyBindings()
	return m
}

func (m *Monitor) initializeViews() {
	m.SourceView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	m.SourceView.SetBorder(true).SetTitle(" Source ")

	m.RegisterView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	m.RegisterView.SetBorder(true).SetTitle(" Registers ")

	m.StackView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	m.StackView.SetBorder(true).SetTitle(" Stack ")

	m.DataView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	m.DataView.SetBorder(true).SetTitle(" Data Memory ")

	m.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	m.OutputView.SetBorder(true).SetTitle(" Output ")

	m.CommandInput = tview.NewInputField().SetLabel("> ")
	m.CommandInput.SetBorder(true).SetTitle(" Command ")
	m.CommandInput.SetDoneFunc(m.handleCommand)
}

func (m *Monitor) buildLayout() {
	leftPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.SourceView, 0, 2, false).
		AddItem(m.OutputView, 0, 1, false)

	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.RegisterView, 0, 2, false).
		AddItem(m.StackView, 0, 2, false).
		AddItem(m.DataView, 0, 1, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(leftPanel, 0, 2, false).
		AddItem(rightPanel, 0, 1, false)

	m.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(m.CommandInput, 3, 0, true)
}

func (m *Monitor) setupKeyBindings() {
	m.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF10:
			m.step()
			return nil
		case tcell.KeyF5:
			m.runToEnd()
			return nil
		case tcell.KeyCtrlC:
			m.App.Stop()
			return nil
		}
		return event
	})
}

func (m *Monitor) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := strings.TrimSpace(m.CommandInput.GetText())
	m.CommandInput.SetText("")
	switch cmd {
	case "step", "s":
		m.step()
	case "run", "r":
		m.runToEnd()
	case "quit", "q":
		m.App.Stop()
	case "":
	default:
		m.writeOutput(fmt.Sprintf("[red]unknown command:[white] %s\n", cmd))
	}
}

func (m *Monitor) step() {
	if m.Interp.Halted {
		m.writeOutput("[yellow]already halted[white]\n")
		m.refresh()
		return
	}
	done, err := m.Interp.Step()
	if err != nil {
		m.lastErr = err
		m.writeOutput(fmt.Sprintf("[red]error:[white] %s\n", err.Error()))
	} else if done {
		m.writeOutput("[green]halted[white]\n")
	}
	m.refresh()
}

func (m *Monitor) runToEnd() {
	for !m.Interp.Halted {
		done, err := m.Interp.Step()
		if err != nil {
			m.lastErr = err
			m.writeOutput(fmt.Sprintf("[red]error:[white] %s\n", err.Error()))
			break
		}
		if done {
			m.writeOutput("[green]halted[white]\n")
			break
		}
	}
	m.refresh()
}

func (m *Monitor) writeOutput(text string) {
	_, _ = m.OutputView.Write([]byte(text))
	m.OutputView.ScrollToEnd()
}

func (m *Monitor) refresh() {
	m.updateSourceView()
	m.updateRegisterView()
	m.updateStackView()
	m.updateDataView()
	m.App.Draw()
}

func (m *Monitor) updateSourceView() {
	m.SourceView.Clear()
	lines := m.Interp.Program.Lines
	pc := m.Interp.PC

	start := pc - 5
	if start < 0 {
		start = 0
	}
	end := pc + 10
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		marker := "  "
		color := "white"
		if i == pc {
			marker = "->"
			color = "yellow"
		}
		fmt.Fprintf(&b, "[%s]%s %4d: %s[white]\n", color, marker, i+1, lines[i])
	}
	m.SourceView.SetText(b.String())
}

func (m *Monitor) updateRegisterView() {
	m.RegisterView.Clear()
	dump := m.Interp.Reg.Dump()

	var b strings.Builder
	for row := 0; row < 8; row++ {
		var cols []string
		for col := 0; col < 4; col++ {
			idx := row*4 + col
			cols = append(cols, fmt.Sprintf("%-4s: 0x%08X", decoder.RegisterNames[idx], uint32(dump[idx])))
		}
		b.WriteString(strings.Join(cols, "  "))
		b.WriteString("\n")
	}
	m.RegisterView.SetText(b.String())
}

func (m *Monitor) updateStackView() {
	m.StackView.Clear()
	sp := m.Interp.Reg.Get(vm.RegSp)
	dump := m.Interp.Stack.Dump()

	var b strings.Builder
	for i, cell := range dump {
		addr := vm.StackBase + int32(4*i)
		marker := "  "
		if addr == sp {
			marker = "->"
		}
		fmt.Fprintf(&b, "%s 0x%08X: %d\n", marker, uint32(addr), cell)
	}
	m.StackView.SetText(b.String())
}

func (m *Monitor) updateDataView() {
	m.DataView.Clear()
	entries := m.Interp.Program.Data.Entries()

	var b strings.Builder
	for i, e := range entries {
		addr := loader.AddressOf(i)
		fmt.Fprintf(&b, "0x%08X %s: %d\n", uint32(addr), e.Label, e.Value)
	}
	m.DataView.SetText(b.String())
}

// Run starts the monitor application loop.
func (m *Monitor) Run() error {
	m.refresh()
	m.writeOutput("[green]mipssim monitor[white]\n")
	m.writeOutput("F10/step, F5/run, Ctrl-C/quit\n\n")
	return m.App.SetRoot(m.Root, true).SetFocus(m.CommandInput).Run()
}

// Stop stops the monitor application.
func (m *Monitor) Stop() {
	m.App.Stop()
}
