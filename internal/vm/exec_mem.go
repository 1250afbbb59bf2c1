package vm

import "github.com/faisaal99/mipssim/internal/decoder"

// execMem executes lw/sw.
func (in *Interpreter) execMem(inst decoder.Instruction, lineNo int, raw string) error {
	switch inst.Op {
	case decoder.OpLw:
		return in.execLw(inst, lineNo, raw)
	case decoder.OpSw:
		return in.execSw(inst, lineNo, raw)
	}
	return nil
}

func (in *Interpreter) execLw(inst decoder.Instruction, lineNo int, raw string) error {
	if err := checkWritable(inst.MemReg, lineNo, raw); err != nil {
		return err
	}

	var value int32
	if inst.Addressing == decoder.AddrOffset {
		if err := checkReadable(inst.BaseReg, lineNo, raw); err != nil {
			return err
		}
		addr := in.Reg.Get(inst.BaseReg) + inst.Offset
		v, err := in.Stack.Load(addr)
		if err != nil {
			return lineError(err, lineNo, raw)
		}
		value = v
	} else {
		value = inst.LabelValue
	}

	if err := checkStackResult(inst.MemReg, value, lineNo, raw); err != nil {
		return err
	}

	in.Reg.Set(inst.MemReg, value)
	in.PC++
	return nil
}

func (in *Interpreter) execSw(inst decoder.Instruction, lineNo int, raw string) error {
	if err := checkReadable(inst.MemReg, lineNo, raw); err != nil {
		return err
	}
	value := in.Reg.Get(inst.MemReg)

	if inst.Addressing == decoder.AddrOffset {
		if err := checkReadable(inst.BaseReg, lineNo, raw); err != nil {
			return err
		}
		addr := in.Reg.Get(inst.BaseReg) + inst.Offset
		if err := in.Stack.Store(addr, value); err != nil {
			return lineError(err, lineNo, raw)
		}
	} else {
		in.Program.Data.SetValueAt(inst.DataIndex, value)
	}

	in.PC++
	return nil
}
