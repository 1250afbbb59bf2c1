package guiview

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/faisaal99/mipssim/internal/vm"
)

func newTestInterp(t *testing.T, src string) *vm.Interpreter {
	t.Helper()
	prog, err := loader.Load(strings.Split(src, "\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return vm.New(prog)
}

func newTestGUI(t *testing.T, in *vm.Interpreter) *GUI {
	t.Helper()
	testApp := test.NewApp()
	t.Cleanup(testApp.Quit)

	g := &GUI{
		Interp:      in,
		App:         testApp,
		Window:      testApp.NewWindow("test"),
		Breakpoints: make(map[int]bool),
	}
	g.initializeViews()
	g.setupToolbar()
	g.buildLayout()
	g.refresh()
	return g
}

func TestGUICreation(t *testing.T) {
	in := newTestInterp(t, ".text\nmain:\naddi $t0,$zero,42\nhalt")
	g := newTestGUI(t, in)

	if g.SourceView == nil {
		t.Error("SourceView not initialized")
	}
	if g.RegisterView == nil {
		t.Error("RegisterView not initialized")
	}
	if g.StackView == nil {
		t.Error("StackView not initialized")
	}
	if g.DataView == nil {
		t.Error("DataView not initialized")
	}
	if g.Toolbar == nil {
		t.Error("Toolbar not initialized")
	}
}

func TestGUIStepUpdatesStatus(t *testing.T) {
	in := newTestInterp(t, ".text\nmain:\naddi $t0,$zero,42\nhalt")
	g := newTestGUI(t, in)

	g.step()
	if !strings.Contains(g.StatusLabel.Text, "line") {
		t.Errorf("expected status to mention current line, got %q", g.StatusLabel.Text)
	}

	g.run()
	if !in.Halted {
		t.Error("expected interpreter to be halted after run")
	}
}

func TestGUIReset(t *testing.T) {
	in := newTestInterp(t, ".text\nmain:\naddi $t0,$zero,42\nhalt")
	g := newTestGUI(t, in)

	g.step()
	g.reset()
	if in.Halted {
		t.Error("expected halted to be false after reset")
	}
	if in.Reg.Get(8) != 0 {
		t.Error("expected registers to be cleared after reset")
	}
}
