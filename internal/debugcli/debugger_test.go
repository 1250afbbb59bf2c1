package debugcli_test

import (
	"strings"
	"testing"

	"github.com/faisaal99/mipssim/internal/debugcli"
	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/faisaal99/mipssim/internal/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugger(t *testing.T, src string) *debugcli.Debugger {
	t.Helper()
	prog, err := loader.Load(strings.Split(src, "\n"))
	require.NoError(t, err)
	in := vm.New(prog)
	return debugcli.NewDebugger(in, 100)
}

func TestDebugger_StepAdvancesAndHalts(t *testing.T) {
	d := newDebugger(t, ".text\nmain:\naddi $t0,$zero,1\nhalt")

	require.NoError(t, d.ExecuteCommand("step"))
	assert.Contains(t, d.GetOutput(), "line 4")

	require.NoError(t, d.ExecuteCommand("step"))
	assert.Contains(t, d.GetOutput(), "halted")
	assert.True(t, d.Interp.Halted)
}

func TestDebugger_BreakStopsRun(t *testing.T) {
	d := newDebugger(t, ".text\nmain:\naddi $t0,$zero,1\naddi $t1,$zero,2\nhalt")

	require.NoError(t, d.ExecuteCommand("break 4"))
	d.GetOutput()

	require.NoError(t, d.ExecuteCommand("run"))
	out := d.GetOutput()
	assert.Contains(t, out, "breakpoint hit at line 4")
	assert.False(t, d.Interp.Halted)
}

func TestDebugger_PrintRegister(t *testing.T) {
	d := newDebugger(t, ".text\nmain:\naddi $t0,$zero,5\nhalt")
	require.NoError(t, d.ExecuteCommand("step"))
	d.GetOutput()

	require.NoError(t, d.ExecuteCommand("print $t0"))
	assert.Contains(t, d.GetOutput(), "$t0 = 5")
}

func TestDebugger_UnknownCommand(t *testing.T) {
	d := newDebugger(t, ".text\nmain:\nhalt")
	err := d.ExecuteCommand("frobnicate")
	assert.Error(t, err)
}

func TestDebugger_Reset(t *testing.T) {
	d := newDebugger(t, ".text\nmain:\naddi $t0,$zero,5\nhalt")
	require.NoError(t, d.ExecuteCommand("step"))
	require.NoError(t, d.ExecuteCommand("reset"))
	assert.Equal(t, int32(0), d.Interp.Reg.Get(8))
	assert.False(t, d.Interp.Halted)
}
