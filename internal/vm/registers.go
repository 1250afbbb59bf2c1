package vm

import "github.com/faisaal99/mipssim/internal/decoder"

// Register index aliases re-exported for readability at call sites in
// this package; the canonical definitions live in decoder, since the
// decoder is what resolves "$name" operand syntax to these indices.
const (
	RegZero = decoder.RegZero
	RegAt   = decoder.RegAt
	RegSp   = decoder.RegSp

	NumRegisters = decoder.NumRegisters
)

const (
	// InitialSP is the reset value of $sp (register 29).
	InitialSP int32 = 40396
	// InitialGp is the reset value of $gp (register 28).
	InitialGp int32 = 100000000
)

// Registers is the 32-slot signed 32-bit register file.
type Registers struct {
	slots [NumRegisters]int32
}

// NewRegisters returns a register file with the fixed reset values:
// every slot zero except $sp = InitialSP and $gp = InitialGp.
func NewRegisters() *Registers {
	r := &Registers{}
	r.Reset()
	return r
}

// Reset restores the fixed initial values.
func (r *Registers) Reset() {
	for i := range r.slots {
		r.slots[i] = 0
	}
	r.slots[RegSp] = InitialSP
	r.slots[decoder.RegGp] = InitialGp
}

// Get reads a register. $zero always reads as 0 regardless of what was
// ever stored there (writes to it are rejected before they happen, but
// Get never trusts that invariant either).
func (r *Registers) Get(index int) int32 {
	if index == RegZero {
		return 0
	}
	return r.slots[index]
}

// Set writes a register value directly, bypassing register-use policy.
// Callers enforcing the zero/at protections and the stack invariant do so
// before calling Set; Set itself is a plain store, except that a write to
// $zero is silently discarded.
func (r *Registers) Set(index int, value int32) {
	if index == RegZero {
		return
	}
	r.slots[index] = value
}

// Dump returns a snapshot of all 32 registers in display order.
func (r *Registers) Dump() [NumRegisters]int32 {
	snapshot := r.slots
	snapshot[RegZero] = 0
	return snapshot
}

// Name returns the canonical symbolic name of a register index.
func Name(index int) string {
	return decoder.RegisterNames[index]
}
