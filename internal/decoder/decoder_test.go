package decoder_test

import (
	"testing"

	"github.com/faisaal99/mipssim/internal/decoder"
	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_LabelLine(t *testing.T) {
	inst, err := decoder.Decode("L:", 1, "L:", nil, loader.NewDataMemory(nil))
	require.NoError(t, err)
	assert.True(t, inst.LabelLine)
}

func TestDecode_RFormat(t *testing.T) {
	inst, err := decoder.Decode("add $t0, $t1, $t2", 1, "", nil, loader.NewDataMemory(nil))
	require.NoError(t, err)
	assert.Equal(t, decoder.OpAdd, inst.Op)
	assert.Equal(t, decoder.RegT0, inst.Dest)
	assert.Equal(t, decoder.RegT1, inst.Src1)
	assert.Equal(t, decoder.RegT2, inst.Src2)
}

func TestDecode_RFormat_ZeroRegister(t *testing.T) {
	inst, err := decoder.Decode("sub $t0,$zero,$zero", 1, "", nil, loader.NewDataMemory(nil))
	require.NoError(t, err)
	assert.Equal(t, decoder.RegZero, inst.Src1)
	assert.Equal(t, decoder.RegZero, inst.Src2)
}

func TestDecode_IFormat(t *testing.T) {
	inst, err := decoder.Decode("addi $t0,$zero,5", 1, "", nil, loader.NewDataMemory(nil))
	require.NoError(t, err)
	assert.Equal(t, decoder.OpAddi, inst.Op)
	assert.Equal(t, int32(5), inst.Imm)
}

func TestDecode_IFormat_OutOfRange(t *testing.T) {
	_, err := decoder.Decode("addi $t0,$zero,2147483648", 1, "", nil, loader.NewDataMemory(nil))
	require.Error(t, err)
}

func TestDecode_MemOffsetForm(t *testing.T) {
	inst, err := decoder.Decode("lw $t0,0($sp)", 1, "", nil, loader.NewDataMemory(nil))
	require.NoError(t, err)
	assert.Equal(t, decoder.AddrOffset, inst.Addressing)
	assert.Equal(t, decoder.RegSp, inst.BaseReg)
	assert.Equal(t, int32(0), inst.Offset)
}

func TestDecode_MemOffsetForm_RejectsSentinel(t *testing.T) {
	_, err := decoder.Decode("lw $t0,-1($sp)", 1, "", nil, loader.NewDataMemory(nil))
	require.Error(t, err)
}

func TestDecode_MemLabelForm(t *testing.T) {
	dm := loader.NewDataMemory([]loader.DataEntry{{Label: "x", Value: 7}})
	inst, err := decoder.Decode("lw $t0, x", 1, "", nil, dm)
	require.NoError(t, err)
	assert.Equal(t, decoder.AddrLabel, inst.Addressing)
	assert.Equal(t, int32(7), inst.LabelValue)
	assert.Equal(t, 0, inst.DataIndex)
}

func TestDecode_MemLabelForm_UnknownLabel(t *testing.T) {
	_, err := decoder.Decode("lw $t0, missing", 1, "", nil, loader.NewDataMemory(nil))
	require.Error(t, err)
}

func TestDecode_BranchFormat(t *testing.T) {
	labels := map[string]int{"L": 4}
	inst, err := decoder.Decode("beq $t0,$t0,L", 1, "", labels, loader.NewDataMemory(nil))
	require.NoError(t, err)
	assert.Equal(t, decoder.OpBeq, inst.Op)
	assert.Equal(t, 4, inst.Target)
}

func TestDecode_JumpFormat(t *testing.T) {
	labels := map[string]int{"L": 9}
	inst, err := decoder.Decode("j L", 1, "", labels, loader.NewDataMemory(nil))
	require.NoError(t, err)
	assert.Equal(t, 9, inst.Target)
}

func TestDecode_Halt(t *testing.T) {
	inst, err := decoder.Decode("halt", 1, "", nil, loader.NewDataMemory(nil))
	require.NoError(t, err)
	assert.Equal(t, decoder.OpHalt, inst.Op)
}

func TestDecode_UnknownOpcode(t *testing.T) {
	_, err := decoder.Decode("nope $t0,$t1,$t2", 1, "", nil, loader.NewDataMemory(nil))
	require.Error(t, err)
}

func TestDecode_UnrecognisedRegister(t *testing.T) {
	_, err := decoder.Decode("add $xx,$t1,$t2", 1, "", nil, loader.NewDataMemory(nil))
	require.Error(t, err)
}

func TestDecode_TrailingContentRejected(t *testing.T) {
	_, err := decoder.Decode("add $t0,$t1,$t2 extra", 1, "", nil, loader.NewDataMemory(nil))
	require.Error(t, err)
}
