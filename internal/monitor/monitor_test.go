package monitor

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/faisaal99/mipssim/internal/vm"
)

func newTestMonitor(t *testing.T, src string) *Monitor {
	t.Helper()
	prog, err := loader.Load(strings.Split(src, "\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return New(vm.New(prog))
}

func TestMonitor_InitializesViews(t *testing.T) {
	m := newTestMonitor(t, ".text\nmain:\naddi $t0,$zero,1\nhalt")
	if m.SourceView == nil || m.RegisterView == nil || m.StackView == nil || m.DataView == nil {
		t.Fatal("expected all views to be initialized")
	}
	if m.CommandInput == nil {
		t.Fatal("expected command input to be initialized")
	}
}

func TestMonitor_StepUpdatesRegisterView(t *testing.T) {
	m := newTestMonitor(t, ".text\nmain:\naddi $t0,$zero,7\nhalt")
	m.step()
	if !strings.Contains(m.RegisterView.GetText(true), "t0") {
		t.Error("expected register view to contain t0")
	}
}

func TestMonitor_RunToEndHalts(t *testing.T) {
	m := newTestMonitor(t, ".text\nmain:\naddi $t0,$zero,7\nhalt")
	m.runToEnd()
	if !m.Interp.Halted {
		t.Error("expected interpreter to be halted after runToEnd")
	}
}

func TestMonitor_HandleCommandStepsOnS(t *testing.T) {
	m := newTestMonitor(t, ".text\nmain:\naddi $t0,$zero,7\nhalt")
	m.CommandInput.SetText("s")
	m.handleCommand(tcell.KeyEnter)
	if m.Interp.CurrentLine() != 4 {
		t.Errorf("expected PC to advance past the instruction, got line %d", m.Interp.CurrentLine())
	}
}

func TestMonitor_DataViewShowsEntries(t *testing.T) {
	m := newTestMonitor(t, ".data\nx: .word 5\n.text\nmain:\nhalt")
	m.refresh()
	if !strings.Contains(m.DataView.GetText(true), "x: 5") {
		t.Errorf("expected data view to show x: 5, got %q", m.DataView.GetText(true))
	}
}
