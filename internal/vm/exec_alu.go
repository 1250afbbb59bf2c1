package vm

import "github.com/faisaal99/mipssim/internal/decoder"

// execR executes an R-format instruction: add, sub, mul, and, or, nor, slt.
func (in *Interpreter) execR(inst decoder.Instruction, lineNo int, raw string) error {
	if err := checkReadable(inst.Src1, lineNo, raw); err != nil {
		return err
	}
	if err := checkReadable(inst.Src2, lineNo, raw); err != nil {
		return err
	}
	if err := checkWritable(inst.Dest, lineNo, raw); err != nil {
		return err
	}

	a := in.Reg.Get(inst.Src1)
	b := in.Reg.Get(inst.Src2)
	result := aluR(inst.Op, a, b)

	if inst.Op != decoder.OpSlt {
		if err := checkStackResult(inst.Dest, result, lineNo, raw); err != nil {
			return err
		}
	}

	in.Reg.Set(inst.Dest, result)
	in.PC++
	return nil
}

func aluR(op decoder.Opcode, a, b int32) int32 {
	switch op {
	case decoder.OpAdd:
		return a + b
	case decoder.OpSub:
		return a - b
	case decoder.OpMul:
		return a * b
	case decoder.OpAnd:
		return a & b
	case decoder.OpOr:
		return a | b
	case decoder.OpNor:
		return ^(a | b)
	case decoder.OpSlt:
		if a < b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// execI executes an I-format instruction: addi, andi, ori, slti.
func (in *Interpreter) execI(inst decoder.Instruction, lineNo int, raw string) error {
	if err := checkReadable(inst.Src1, lineNo, raw); err != nil {
		return err
	}
	if err := checkWritable(inst.Dest, lineNo, raw); err != nil {
		return err
	}

	a := in.Reg.Get(inst.Src1)
	result := aluI(inst.Op, a, inst.Imm)

	if inst.Op != decoder.OpSlti {
		if err := checkStackResult(inst.Dest, result, lineNo, raw); err != nil {
			return err
		}
	}

	in.Reg.Set(inst.Dest, result)
	in.PC++
	return nil
}

func aluI(op decoder.Opcode, a, imm int32) int32 {
	switch op {
	case decoder.OpAddi:
		return a + imm
	case decoder.OpAndi:
		return a & imm
	case decoder.OpOri:
		return a | imm
	case decoder.OpSlti:
		if a < imm {
			return 1
		}
		return 0
	default:
		return 0
	}
}
