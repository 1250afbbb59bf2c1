package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/faisaal99/mipssim/internal/api"
	"github.com/faisaal99/mipssim/internal/config"
	"github.com/faisaal99/mipssim/internal/debugcli"
	"github.com/faisaal99/mipssim/internal/display"
	"github.com/faisaal99/mipssim/internal/guiview"
	"github.com/faisaal99/mipssim/internal/loader"
	"github.com/faisaal99/mipssim/internal/monitor"
	"github.com/faisaal99/mipssim/internal/vm"
)

func main() {
	var (
		mode       = flag.Int("mode", 0, "1=step, 2=run (overrides the interactive prompt)")
		configPath = flag.String("config", "", "load a TOML config file (default: platform config dir)")
		debugMode  = flag.Bool("debug", false, "start the line-oriented CLI debugger instead of direct execution")
		tuiMode    = flag.Bool("tui", false, "start the tcell/tview interactive monitor")
		apiServer  = flag.Bool("api-server", false, "start the HTTP/WebSocket remote-monitor server")
		apiPort    = flag.Int("port", 8080, "API server port (used with -api-server)")
		guiMode    = flag.Bool("gui", false, "open the Fyne desktop register/stack viewer")
		maxSteps   = flag.Uint64("max-steps", 0, "abort with a Termination error after N steps in run mode (default 0: config value, 0 there = no limit)")
		verbose    = flag.Bool("verbose", false, "print loader progress to stderr")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if *apiServer {
		runAPIServer(*apiPort)
		return
	}

	path, selectedMode := resolveInput(*mode)

	source, err := readLines(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "loaded %d lines from %s\n", len(source), path)
	}

	prog, err := loader.Load(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "program has %d text labels, %d data entries, main at line %d\n",
			len(prog.TextLabels), prog.Data.Len(), prog.MainIndex+1)
	}

	in := vm.New(prog)

	steps := int(*maxSteps)
	if steps == 0 {
		steps = int(cfg.Execution.MaxSteps)
	}

	switch {
	case *guiMode:
		guiview.Run(in)
	case *tuiMode:
		runTUI(in)
	case *debugMode:
		runDebugger(in, cfg)
	case selectedMode == 2:
		runToHalt(in, steps)
	default:
		runStepByStep(in)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// resolveInput applies the -mode/file-argument flags, falling back to the
// interactive path+mode prompt when neither is given.
func resolveInput(mode int) (path string, selectedMode int) {
	args := flag.Args()
	if len(args) > 0 {
		path = args[0]
	}
	if mode != 0 {
		if mode != 1 && mode != 2 {
			fmt.Fprintln(os.Stderr, "Error: -mode must be 1 or 2")
			os.Exit(1)
		}
		selectedMode = mode
	}
	if path != "" && selectedMode != 0 {
		return path, selectedMode
	}

	reader := bufio.NewReader(os.Stdin)
	if path == "" {
		fmt.Print("Enter path to assembly file: ")
		line, _ := reader.ReadString('\n')
		path = strings.TrimSpace(line)
	}
	if selectedMode == 0 {
		fmt.Print("Enter mode (1=step, 2=run): ")
		line, _ := reader.ReadString('\n')
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || (n != 1 && n != 2) {
			fmt.Fprintln(os.Stderr, "Error: mode must be 1 or 2")
			os.Exit(1)
		}
		selectedMode = n
	}
	return path, selectedMode
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("file unreadable: %s", path)
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func runStepByStep(in *vm.Interpreter) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(display.State(in))
	for {
		done, err := in.Step()
		fmt.Print(display.State(in))
		if err != nil {
			fmt.Println(display.Banner(in, err))
			os.Exit(1)
		}
		if done {
			fmt.Println(display.Banner(in, nil))
			return
		}
		// Advance on any keystroke.
		_, _ = reader.ReadByte()
	}
}

func runToHalt(in *vm.Interpreter, maxSteps int) {
	fmt.Print(display.State(in))
	err := in.Run(maxSteps)
	fmt.Print(display.State(in))
	fmt.Println(display.Banner(in, err))
	if err != nil {
		os.Exit(1)
	}
}

func runDebugger(in *vm.Interpreter, cfg *config.Config) {
	dbg := debugcli.NewDebugger(in, cfg.Debugger.HistorySize)
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("mipssim debugger. type 'help' for commands.")
	for {
		fmt.Print("(mipssim) ")
		if !scanner.Scan() {
			return
		}
		if err := dbg.ExecuteCommand(scanner.Text()); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Print(dbg.GetOutput())
	}
}

func runTUI(in *vm.Interpreter) {
	m := monitor.New(in)
	if err := m.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAPIServer(port int) {
	server := api.NewServer(port)
	fmt.Printf("remote monitor listening on :%d\n", port)
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
