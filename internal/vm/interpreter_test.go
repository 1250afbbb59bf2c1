package vm_test

import (
	"strings"
	"testing"

	"github.com/faisaal99/mipssim/internal/decoder"
	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/faisaal99/mipssim/internal/simerr"
	"github.com/faisaal99/mipssim/internal/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) *vm.Interpreter {
	t.Helper()
	lines := strings.Split(src, "\n")
	prog, err := loader.Load(lines)
	require.NoError(t, err)
	in := vm.New(prog)
	err = in.Run(0)
	require.NoError(t, err)
	require.True(t, in.Halted)
	return in
}

func TestInterpreter_MinimalHalt(t *testing.T) {
	in := run(t, ".text\nmain:\nhalt")
	dump := in.Reg.Dump()
	for i, v := range dump {
		switch i {
		case vm.RegSp:
			assert.Equal(t, vm.InitialSP, v)
		case decoder.RegGp:
			assert.Equal(t, vm.InitialGp, v)
		default:
			assert.Equal(t, int32(0), v, "register %d", i)
		}
	}
}

func TestInterpreter_DataRoundTrip(t *testing.T) {
	in := run(t, ".data\nx: .word 7\n.text\nmain:\nlw $t0, x\nsw $t0, x\nhalt")
	assert.Equal(t, int32(7), in.Reg.Get(decoder.RegT0))
	value, _, ok := in.Program.Data.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int32(7), value)
}

func TestInterpreter_ArithmeticChain(t *testing.T) {
	in := run(t, ".text\nmain:\naddi $t0,$zero,5\naddi $t1,$zero,3\nsub $t2,$t0,$t1\nhalt")
	assert.Equal(t, int32(2), in.Reg.Get(decoder.RegT2))
}

func TestInterpreter_BranchTaken(t *testing.T) {
	in := run(t, ".text\nmain:\naddi $t0,$zero,1\nbeq $t0,$t0,L\naddi $t0,$zero,99\nL:\nhalt")
	assert.Equal(t, int32(1), in.Reg.Get(decoder.RegT0))
}

func TestInterpreter_StackStoreLoad(t *testing.T) {
	in := run(t, ".text\nmain:\naddi $t0,$zero,42\nsw $t0,0($sp)\nlw $t1,0($sp)\nhalt")
	assert.Equal(t, int32(42), in.Reg.Get(decoder.RegT1))
	cell, err := in.Stack.Load(vm.InitialSP)
	require.NoError(t, err)
	assert.Equal(t, int32(42), cell)
}

func TestInterpreter_JumpLoopCountsDown(t *testing.T) {
	in := run(t, ".text\nmain:\naddi $t0,$zero,3\nL:\naddi $t0,$t0,-1\nbne $t0,$zero,L\nhalt")
	assert.Equal(t, int32(0), in.Reg.Get(decoder.RegT0))
}

func TestInterpreter_AddiZeroIsIdentity(t *testing.T) {
	in := run(t, ".text\nmain:\naddi $t0,$zero,9\naddi $t1,$t0,0\nhalt")
	assert.Equal(t, in.Reg.Get(decoder.RegT0), in.Reg.Get(decoder.RegT1))
}

func TestInterpreter_SubSameRegisterIsZero(t *testing.T) {
	in := run(t, ".text\nmain:\naddi $t0,$zero,9\nsub $t1,$t0,$t0\nhalt")
	assert.Equal(t, int32(0), in.Reg.Get(decoder.RegT1))
}

func TestInterpreter_BneSameRegisterIsNoop(t *testing.T) {
	in := run(t, ".text\nmain:\naddi $t0,$zero,1\nbne $t0,$t0,L\naddi $t0,$zero,5\nL:\nhalt")
	assert.Equal(t, int32(5), in.Reg.Get(decoder.RegT0))
}

func TestInterpreter_NorComputesComplement(t *testing.T) {
	in := run(t, ".text\nmain:\naddi $t0,$zero,5\nnor $t1,$t0,$t0\nhalt")
	assert.Equal(t, ^int32(5), in.Reg.Get(decoder.RegT1))
}

func TestInterpreter_MulWraps(t *testing.T) {
	in := run(t, ".text\nmain:\naddi $t0,$zero,2147483647\naddi $t1,$zero,2\nmul $t2,$t0,$t1\nhalt")
	assert.Equal(t, int32(-2), in.Reg.Get(decoder.RegT2))
}

func TestInterpreter_ProgramEndedWithoutHalt(t *testing.T) {
	lines := strings.Split(".text\nmain:\naddi $t0,$zero,1", "\n")
	prog, err := loader.Load(lines)
	require.NoError(t, err)
	in := vm.New(prog)
	err = in.Run(0)
	require.Error(t, err)
	se, ok := err.(*simerr.Error)
	require.True(t, ok)
	assert.Equal(t, simerr.KindTermination, se.Kind)
}

func TestInterpreter_WriteToZeroForbidden(t *testing.T) {
	lines := strings.Split(".text\nmain:\nadd $zero,$t0,$t1\nhalt", "\n")
	prog, err := loader.Load(lines)
	require.NoError(t, err)
	in := vm.New(prog)
	err = in.Run(0)
	require.Error(t, err)
	se, ok := err.(*simerr.Error)
	require.True(t, ok)
	assert.Equal(t, simerr.KindSemantic, se.Kind)
	assert.Equal(t, 3, se.Line)
}

func TestInterpreter_ReadOfAtForbidden(t *testing.T) {
	lines := strings.Split(".text\nmain:\nadd $t0,$at,$t1\nhalt", "\n")
	prog, err := loader.Load(lines)
	require.NoError(t, err)
	in := vm.New(prog)
	err = in.Run(0)
	require.Error(t, err)
}

func TestInterpreter_LwUnknownLabel(t *testing.T) {
	lines := strings.Split(".text\nmain:\nlw $t0, missing_label\nhalt", "\n")
	_, err := loader.Load(lines)
	// missing_label is resolved at decode time, not load time, so Load
	// itself succeeds; the failure surfaces when the interpreter steps.
	require.NoError(t, err)

	prog, _ := loader.Load(lines)
	in := vm.New(prog)
	err = in.Run(0)
	require.Error(t, err)
}

func TestInterpreter_SpBoundaryAccepted(t *testing.T) {
	in := run(t, ".text\nmain:\naddi $t0,$zero,40000\naddi $sp,$t0,0\nhalt")
	assert.Equal(t, int32(40000), in.Reg.Get(vm.RegSp))
}

func TestInterpreter_SpOutOfRangeRejected(t *testing.T) {
	lines := strings.Split(".text\nmain:\naddi $t0,$zero,39996\naddi $sp,$t0,0\nhalt", "\n")
	prog, err := loader.Load(lines)
	require.NoError(t, err)
	in := vm.New(prog)
	err = in.Run(0)
	require.Error(t, err)
}

func TestInterpreter_SpMisalignedRejected(t *testing.T) {
	lines := strings.Split(".text\nmain:\naddi $t0,$zero,40002\naddi $sp,$t0,0\nhalt", "\n")
	prog, err := loader.Load(lines)
	require.NoError(t, err)
	in := vm.New(prog)
	err = in.Run(0)
	require.Error(t, err)
}

func TestInterpreter_MaxStepsGuard(t *testing.T) {
	lines := strings.Split(".text\nmain:\nL:\naddi $t0,$zero,1\nj L", "\n")
	prog, err := loader.Load(lines)
	require.NoError(t, err)
	in := vm.New(prog)
	err = in.Run(5)
	require.Error(t, err)
	se, ok := err.(*simerr.Error)
	require.True(t, ok)
	assert.Equal(t, simerr.KindTermination, se.Kind)
}
