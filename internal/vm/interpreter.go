// Package vm is the interpreter: it owns the register file, the stack, and
// the fetch-decode-execute loop that walks a loaded program one line at a
// time until it halts, falls off the end, or traps on a semantic violation.
package vm

import (
	"github.com/faisaal99/mipssim/internal/decoder"
	"github.com/faisaal99/mipssim/internal/lexer"
	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/faisaal99/mipssim/internal/simerr"
)

// Interpreter holds all mutable execution state for one running program.
type Interpreter struct {
	Program *loader.Program
	Reg     *Registers
	Stack   *Stack

	PC     int
	Halted bool
}

// New builds an interpreter ready to run prog, with the program counter
// positioned at main and a freshly reset register file and stack.
func New(prog *loader.Program) *Interpreter {
	return &Interpreter{
		Program: prog,
		Reg:     NewRegisters(),
		Stack:   NewStack(),
		PC:      prog.MainIndex,
	}
}

// Reset rewinds execution: registers back to their initial values, stack
// zeroed, PC back at the program's entry point, halted flag cleared.
// Data-memory values written by sw are not restored.
func (in *Interpreter) Reset() {
	in.Reg.Reset()
	in.Stack.Reset()
	in.PC = in.Program.MainIndex
	in.Halted = false
}

// CurrentLine returns the 1-based source line the program counter points
// at, for display and error reporting.
func (in *Interpreter) CurrentLine() int {
	return in.PC + 1
}

// Step decodes and executes the single line at the current program
// counter. It returns (true, nil) once the program halts cleanly via the
// halt instruction, (false, nil) if another step should follow, and a
// non-nil error on any setup, syntax, or semantic violation -- including
// running off the end of the program without a halt.
func (in *Interpreter) Step() (done bool, err error) {
	if in.Halted {
		return true, nil
	}
	if in.PC < 0 || in.PC >= len(in.Program.Lines) {
		return true, simerr.NoLine(simerr.KindTermination, "program ended without executing halt")
	}

	raw := in.Program.Lines[in.PC]
	stripped := lexer.Trim(lexer.StripComment(raw))
	lineNo := in.CurrentLine()

	if lexer.IsBlankRange(stripped) {
		in.PC++
		return false, nil
	}

	inst, err := decoder.Decode(stripped, lineNo, raw, in.Program.TextLabels, in.Program.Data)
	if err != nil {
		return false, err
	}

	if inst.LabelLine {
		in.PC++
		return false, nil
	}

	switch decoder.FormatOf(inst.Op) {
	case decoder.FormatR:
		err = in.execR(inst, lineNo, raw)
	case decoder.FormatI:
		err = in.execI(inst, lineNo, raw)
	case decoder.FormatMem:
		err = in.execMem(inst, lineNo, raw)
	case decoder.FormatBranch:
		err = in.execBranch(inst, lineNo, raw)
	case decoder.FormatJump:
		err = in.execJump(inst)
	case decoder.FormatHalt:
		err = in.execHalt()
	}
	if err != nil {
		return false, err
	}

	return in.Halted, nil
}

// Run steps until halt, error, or the optional maxSteps guard is hit.
// maxSteps <= 0 disables the guard. Run exists for the non-interactive CLI
// and API paths; the debugger and monitor call Step directly so they can
// render state between instructions.
func (in *Interpreter) Run(maxSteps int) error {
	steps := 0
	for {
		done, err := in.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		steps++
		if maxSteps > 0 && steps >= maxSteps {
			return simerr.NoLine(simerr.KindTermination, "exceeded configured maximum step count")
		}
	}
}
