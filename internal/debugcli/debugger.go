// Package debugcli is a line-oriented debugger for a single running
// program: step, run, line breakpoints, and state inspection. Adapted
// from the teacher's debugger package, trimmed to the operations that
// make sense over a line-stepped interpreter rather than a byte-addressed
// CPU (no watchpoints on memory bytes, no step-over/step-out distinction
// -- this simulator has no call instruction to step over).
package debugcli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/faisaal99/mipssim/internal/vm"
)

// Debugger drives an Interpreter interactively.
type Debugger struct {
	Interp *vm.Interpreter

	Breakpoints map[int]bool // 1-based line numbers
	History     *CommandHistory

	LastCommand string
	LastErr     error

	Output strings.Builder
}

// NewDebugger creates a debugger over an already-constructed Interpreter.
func NewDebugger(in *vm.Interpreter, historySize int) *Debugger {
	return &Debugger{
		Interp:      in,
		Breakpoints: make(map[int]bool),
		History:     NewCommandHistory(historySize),
	}
}

// ExecuteCommand parses and runs a single command line.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]
	return d.handleCommand(cmd, args)
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "step", "s":
		return d.cmdStep(args)
	case "run", "r", "continue", "c":
		return d.cmdRun(args)
	case "break", "b":
		return d.cmdBreak(args)
	case "delete", "d":
		return d.cmdDelete(args)
	case "print", "p":
		return d.cmdPrint(args)
	case "info", "i":
		return d.cmdInfo(args)
	case "list", "l":
		return d.cmdList(args)
	case "reset":
		return d.cmdReset(args)
	case "help", "h", "?":
		return d.cmdHelp(args)
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// GetOutput returns and clears the output buffer.
func (d *Debugger) GetOutput() string {
	out := d.Output.String()
	d.Output.Reset()
	return out
}

func (d *Debugger) printf(format string, args ...any) {
	fmt.Fprintf(&d.Output, format, args...)
}

func (d *Debugger) println(args ...any) {
	fmt.Fprintln(&d.Output, args...)
}

// atBreakpoint reports whether the current program counter sits on an
// enabled breakpoint line.
func (d *Debugger) atBreakpoint() bool {
	return d.Breakpoints[d.Interp.CurrentLine()]
}

func parseLineArg(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid line number: %s", args[0])
	}
	return n, nil
}
