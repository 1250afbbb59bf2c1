package display_test

import (
	"strings"
	"testing"

	"github.com/faisaal99/mipssim/internal/display"
	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/faisaal99/mipssim/internal/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterpreter(t *testing.T, src string) *vm.Interpreter {
	t.Helper()
	prog, err := loader.Load(strings.Split(src, "\n"))
	require.NoError(t, err)
	return vm.New(prog)
}

func TestPCAddress(t *testing.T) {
	in := newInterpreter(t, ".text\nmain:\nhalt")
	assert.Equal(t, uint32(4*in.PC), display.PCAddress(in))
}

func TestRegistersIncludesResetValues(t *testing.T) {
	in := newInterpreter(t, ".text\nmain:\nhalt")
	out := display.Registers(in)
	assert.Contains(t, out, "sp[29]: 0x00009DCC")
	assert.Contains(t, out, "gp[28]")
}

func TestStackAddressing(t *testing.T) {
	in := newInterpreter(t, ".text\nmain:\nhalt")
	out := display.Stack(in)
	assert.Contains(t, out, "0x00009C40: 0")
}

func TestDataMemoryAddressing(t *testing.T) {
	in := newInterpreter(t, ".data\nx: .word 7\n.text\nmain:\nhalt")
	out := display.DataMemory(in)
	assert.Contains(t, out, "x: 7")
}

func TestBanner(t *testing.T) {
	in := newInterpreter(t, ".text\nmain:\nhalt")
	assert.Equal(t, "Program halted successfully.\n", display.Banner(in, nil))
}
