package vm

import "github.com/faisaal99/mipssim/internal/simerr"

// checkReadable enforces that $at is never read by user code. $zero is
// always readable (it yields 0).
func checkReadable(reg, lineNo int, raw string) error {
	if reg == RegAt {
		return simerr.New(simerr.KindSemantic, lineNo, raw, "read of $at is forbidden")
	}
	return nil
}

// checkWritable enforces that $zero is never written and $at is never
// written by user code.
func checkWritable(reg, lineNo int, raw string) error {
	if reg == RegZero {
		return simerr.New(simerr.KindSemantic, lineNo, raw, "write to $zero is forbidden")
	}
	if reg == RegAt {
		return simerr.New(simerr.KindSemantic, lineNo, raw, "write to $at is forbidden")
	}
	return nil
}

// checkStackResult enforces the stack-pointer invariant on a value about
// to be committed to $sp: it must land in [StackBase, StackTop] and be
// 4-byte aligned. The check runs before any state changes, so a violating
// ALU result or load never reaches the register file.
func checkStackResult(reg int, value int32, lineNo int, raw string) error {
	if reg != RegSp {
		return nil
	}
	if !ValidSP(value) {
		return simerr.New(simerr.KindSemantic, lineNo, raw, "$sp assignment outside [40000, 40396] or misaligned")
	}
	return nil
}
