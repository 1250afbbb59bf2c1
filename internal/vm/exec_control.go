package vm

import "github.com/faisaal99/mipssim/internal/decoder"

// execBranch executes beq/bne. Src1/Src2 are readable like any ALU
// operand; $at is still forbidden, $zero always reads as 0.
func (in *Interpreter) execBranch(inst decoder.Instruction, lineNo int, raw string) error {
	if err := checkReadable(inst.Src1, lineNo, raw); err != nil {
		return err
	}
	if err := checkReadable(inst.Src2, lineNo, raw); err != nil {
		return err
	}

	a := in.Reg.Get(inst.Src1)
	b := in.Reg.Get(inst.Src2)

	taken := false
	switch inst.Op {
	case decoder.OpBeq:
		taken = a == b
	case decoder.OpBne:
		taken = a != b
	}

	if taken {
		in.PC = inst.Target
	} else {
		in.PC++
	}
	return nil
}

// execJump executes j: an unconditional transfer with no implicit
// increment, taken or not.
func (in *Interpreter) execJump(inst decoder.Instruction) error {
	in.PC = inst.Target
	return nil
}

// execHalt stops execution cleanly. The program counter is left pointing
// at the halt line.
func (in *Interpreter) execHalt() error {
	in.Halted = true
	return nil
}
