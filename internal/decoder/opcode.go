// Package decoder turns a single trimmed, comment-stripped program line
// into a decoded instruction: a tagged variant carrying only the
// operands its opcode actually uses, per the operand-slot redesign noted
// in the specification (the legacy overloaded r[0..2] triple is never
// reconstructed internally).
package decoder

// Opcode identifies a recognised mnemonic. The numeric values are the
// fixed opcode IDs from the instruction table.
type Opcode int

const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpAnd
	OpOr
	OpNor
	OpSlt
	OpAddi
	OpAndi
	OpOri
	OpSlti
	OpLw
	OpSw
	OpBeq
	OpBne
	OpJ
	OpHalt
)

// Format groups opcodes by operand syntax.
type Format int

const (
	FormatR Format = iota
	FormatI
	FormatMem
	FormatBranch
	FormatJump
	FormatHalt
)

type opcodeInfo struct {
	mnemonic string
	format   Format
}

var opcodeTable = [...]opcodeInfo{
	OpAdd:  {"add", FormatR},
	OpSub:  {"sub", FormatR},
	OpMul:  {"mul", FormatR},
	OpAnd:  {"and", FormatR},
	OpOr:   {"or", FormatR},
	OpNor:  {"nor", FormatR},
	OpSlt:  {"slt", FormatR},
	OpAddi: {"addi", FormatI},
	OpAndi: {"andi", FormatI},
	OpOri:  {"ori", FormatI},
	OpSlti: {"slti", FormatI},
	OpLw:   {"lw", FormatMem},
	OpSw:   {"sw", FormatMem},
	OpBeq:  {"beq", FormatBranch},
	OpBne:  {"bne", FormatBranch},
	OpJ:    {"j", FormatJump},
	OpHalt: {"halt", FormatHalt},
}

var mnemonicToOpcode = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		m[info.mnemonic] = Opcode(op)
	}
	return m
}()

// LookupOpcode resolves a mnemonic to its Opcode. ok is false for an
// unrecognised mnemonic.
func LookupOpcode(mnemonic string) (op Opcode, ok bool) {
	op, ok = mnemonicToOpcode[mnemonic]
	return
}

// FormatOf returns the operand format for an opcode.
func FormatOf(op Opcode) Format {
	return opcodeTable[op].format
}

func (op Opcode) String() string {
	return opcodeTable[op].mnemonic
}
