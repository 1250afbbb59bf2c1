// Package display renders interpreter state to text: the current source
// line, the program counter as a byte address, all 32 registers, the
// 100-cell stack, and the data-memory entries. It is a pure sink -- it
// never mutates the Interpreter it is given, matching the teacher's
// DumpState rendering style.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/faisaal99/mipssim/internal/decoder"
	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/faisaal99/mipssim/internal/vm"
)

// CurrentLine formats the line the program counter points at, or a
// past-the-end marker once execution has run off the program.
func CurrentLine(in *vm.Interpreter) string {
	idx := in.PC
	if idx < 0 || idx >= len(in.Program.Lines) {
		return "<end of program>"
	}
	return in.Program.Lines[idx]
}

// PCAddress renders the program counter as the byte address 4*line_index.
func PCAddress(in *vm.Interpreter) uint32 {
	return uint32(in.PC) * 4
}

// Registers renders all 32 registers as "name[index]: 0xXXXXXXXX", one per
// line, in register-file order.
func Registers(in *vm.Interpreter) string {
	var b strings.Builder
	dump := in.Reg.Dump()
	for i, v := range dump {
		fmt.Fprintf(&b, "%s[%d]: 0x%08X\n", decoder.RegisterNames[i], i, uint32(v))
	}
	return b.String()
}

// Stack renders all 100 stack cells, addressed from vm.StackBase in steps
// of 4, as "0xADDR: value".
func Stack(in *vm.Interpreter) string {
	var b strings.Builder
	dump := in.Stack.Dump()
	for i, v := range dump {
		addr := vm.StackBase + int32(4*i)
		fmt.Fprintf(&b, "0x%08X: %d\n", uint32(addr), v)
	}
	return b.String()
}

// DataMemory renders every .data entry, addressed from loader.DataBase in
// sorted-by-label order, as "0xADDR label: value".
func DataMemory(in *vm.Interpreter) string {
	var b strings.Builder
	entries := in.Program.Data.Entries()
	for i, e := range entries {
		addr := loader.AddressOf(i)
		fmt.Fprintf(&b, "0x%08X %s: %d\n", uint32(addr), e.Label, e.Value)
	}
	return b.String()
}

// State renders a full snapshot: current line, PC, registers, stack, and
// data memory, in that order.
func State(in *vm.Interpreter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d: %s\n", in.CurrentLine(), CurrentLine(in))
	fmt.Fprintf(&b, "PC: 0x%08X\n", PCAddress(in))
	b.WriteString(Registers(in))
	b.WriteString(Stack(in))
	b.WriteString(DataMemory(in))
	return b.String()
}

// WriteState writes the snapshot rendered by State to w.
func WriteState(w io.Writer, in *vm.Interpreter) error {
	_, err := io.WriteString(w, State(in))
	return err
}

// Banner renders the final status line: success on a clean halt, or the
// offending error's line and message.
func Banner(in *vm.Interpreter, err error) string {
	if err == nil {
		return "Program halted successfully.\n"
	}
	return fmt.Sprintf("Error: %s\n", err.Error())
}
