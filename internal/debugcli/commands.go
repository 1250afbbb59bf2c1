package debugcli

import (
	"fmt"

	"github.com/faisaal99/mipssim/internal/decoder"
	"github.com/faisaal99/mipssim/internal/display"
)

func (d *Debugger) cmdStep(_ []string) error {
	if d.Interp.Halted {
		d.println("program already halted")
		return nil
	}
	done, err := d.Interp.Step()
	if err != nil {
		d.LastErr = err
		d.printf("error: %s\n", err.Error())
		return nil
	}
	if done {
		d.println("halted")
	} else {
		d.printf("line %d: %s\n", d.Interp.CurrentLine(), display.CurrentLine(d.Interp))
	}
	return nil
}

func (d *Debugger) cmdRun(_ []string) error {
	for {
		if d.Interp.Halted {
			d.println("halted")
			return nil
		}
		done, err := d.Interp.Step()
		if err != nil {
			d.LastErr = err
			d.printf("error: %s\n", err.Error())
			return nil
		}
		if done {
			d.println("halted")
			return nil
		}
		if d.atBreakpoint() {
			d.printf("breakpoint hit at line %d\n", d.Interp.CurrentLine())
			return nil
		}
	}
}

func (d *Debugger) cmdBreak(args []string) error {
	line, err := parseLineArg(args, d.Interp.CurrentLine())
	if err != nil {
		return err
	}
	d.Breakpoints[line] = true
	d.printf("breakpoint set at line %d\n", line)
	return nil
}

func (d *Debugger) cmdDelete(args []string) error {
	line, err := parseLineArg(args, d.Interp.CurrentLine())
	if err != nil {
		return err
	}
	delete(d.Breakpoints, line)
	d.printf("breakpoint cleared at line %d\n", line)
	return nil
}

func (d *Debugger) cmdPrint(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: print $reg")
	}
	name := args[0]
	if len(name) > 0 && name[0] == '$' {
		name = name[1:]
	}
	idx, ok := decoder.LookupRegister(name)
	if !ok {
		return fmt.Errorf("unrecognised register: %s", args[0])
	}
	d.printf("$%s = %d\n", name, d.Interp.Reg.Get(idx))
	return nil
}

func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info registers|stack|data")
	}
	switch args[0] {
	case "registers", "reg", "regs":
		d.Output.WriteString(display.Registers(d.Interp))
	case "stack":
		d.Output.WriteString(display.Stack(d.Interp))
	case "data":
		d.Output.WriteString(display.DataMemory(d.Interp))
	case "breakpoints", "break":
		if len(d.Breakpoints) == 0 {
			d.println("no breakpoints set")
			return nil
		}
		for line := range d.Breakpoints {
			d.printf("breakpoint at line %d\n", line)
		}
	default:
		return fmt.Errorf("unknown info target: %s", args[0])
	}
	return nil
}

func (d *Debugger) cmdList(_ []string) error {
	lines := d.Interp.Program.Lines
	pc := d.Interp.PC
	start := pc - 3
	if start < 0 {
		start = 0
	}
	end := pc + 4
	if end > len(lines) {
		end = len(lines)
	}
	for i := start; i < end; i++ {
		marker := "  "
		if i == pc {
			marker = "->"
		}
		d.printf("%s %4d: %s\n", marker, i+1, lines[i])
	}
	return nil
}

func (d *Debugger) cmdReset(_ []string) error {
	d.Interp.Reset()
	d.println("interpreter reset")
	return nil
}

func (d *Debugger) cmdHelp(_ []string) error {
	d.println("commands: step|s, run|r|continue|c, break|b [line], delete|d [line],")
	d.println("          print|p $reg, info|i registers|stack|data|breakpoints,")
	d.println("          list|l, reset, help|h|?")
	return nil
}
