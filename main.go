package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cwren/asmopt/api"
	"github.com/cwren/asmopt/config"
	"github.com/cwren/asmopt/guiview"
	"github.com/cwren/asmopt/lexer"
	"github.com/cwren/asmopt/optimizer"
	"github.com/cwren/asmopt/service"
	"github.com/cwren/asmopt/tui"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

// multiFlag accumulates repeated occurrences of a flag (--enable X --enable Y).
type multiFlag []string

func (m *multiFlag) String() string { return fmt.Sprint([]string(*m)) }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")

		input    = flag.String("input", "", "Input file (- or absent + non-TTY stdin reads stdin)")
		output   = flag.String("output", "", "Output file for optimized assembly (- or absent writes stdout)")
		format   = flag.String("format", "", "Input/output syntax: intel, att")
		reportTo = flag.String("report", "", "Write the optimization report to this file (- writes stderr)")
		cfgDot   = flag.String("cfg", "", "Write the CFG as Graphviz DOT to this file")
		march    = flag.String("march", "", "Target architecture (also settable via -m)")
		mtune    = flag.String("mtune", "", "Target CPU tuning name")

		o0 = flag.Bool("O0", false, "Optimization level 0 (disabled)")
		o1 = flag.Bool("O1", false, "Optimization level 1")
		o2 = flag.Bool("O2", false, "Optimization level 2 (default)")
		o3 = flag.Bool("O3", false, "Optimization level 3")
		o4 = flag.Bool("O4", false, "Optimization level 4")

		noOptimize  = flag.Bool("no-optimize", false, "Disable all rewriting; emit source unchanged")
		preserveAll = flag.Bool("preserve-all", false, "Set the session's preserve-all flag (no rewrite rule consults it)")
		dumpIR      = flag.Bool("dump-ir", false, "Write the IR dump to stderr")
		dumpCFG     = flag.Bool("dump-cfg", false, "Write the CFG text dump to stderr")
		showStats   = flag.Bool("stats", false, "Print stats to stderr after emit")

		amdOn  = flag.Bool("amd-optimize", false, "Force AMD-tuned rules on")
		amdOff = flag.Bool("no-amd-optimize", false, "Force AMD-tuned rules off")

		verbose = flag.Bool("verbose", false, "Verbose diagnostics on stderr")
		quiet   = flag.Bool("quiet", false, "Suppress non-essential diagnostics")

		configPath = flag.String("config", "", "Path to a TOML defaults file (default: platform config dir)")
		apiServer  = flag.Bool("api-server", false, "Start the HTTP session API instead of a one-shot optimize")
		apiPort    = flag.Int("port", 0, "API server port (used with -api-server; overrides config)")
		tuiMode    = flag.Bool("tui", false, "Launch the interactive event browser instead of a one-shot optimize")
		guiMode    = flag.Bool("gui", false, "Launch the desktop before/after viewer instead of a one-shot optimize")

		enable  multiFlag
		disable multiFlag
	)
	flag.Var(&enable, "enable", "Enable a named optimization (repeatable)")
	flag.Var(&disable, "disable", "Disable a named optimization (repeatable); \"all\" disables everything")
	flag.StringVar(input, "i", "", "Shorthand for -input")
	flag.StringVar(output, "o", "", "Shorthand for -output")
	flag.StringVar(format, "f", "", "Shorthand for -format")
	flag.StringVar(march, "m", "", "Shorthand for -march")
	flag.BoolVar(verbose, "v", false, "Shorthand for -verbose")
	flag.BoolVar(quiet, "q", false, "Shorthand for -quiet")

	flag.Usage = printHelp
	flag.Parse()

	if *showVersion {
		fmt.Printf("asmopt %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		return 0
	}

	if *showHelp {
		printHelp()
		return 0
	}

	fileCfg, err := loadFileConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	if *apiServer {
		port := fileCfg.API.Port
		if *apiPort != 0 {
			port = *apiPort
		}
		return runAPIServer(port, *verbose)
	}

	registry := service.NewRegistry()
	arch := *march
	if arch == "" {
		arch = fileCfg.Execution.DefaultArchitecture
	}
	sess := registry.Create(archOrDefault(arch))
	defer sess.Close()

	sess.Configure(func(ctx *optimizer.Context) {
		applySettings(ctx, fileCfg, settingsFromFlags{
			format:      *format,
			mtune:       *mtune,
			o0:          *o0,
			o1:          *o1,
			o2:          *o2,
			o3:          *o3,
			o4:          *o4,
			noOptimize:  *noOptimize,
			preserveAll: *preserveAll,
			amdOn:       *amdOn,
			amdOff:      *amdOff,
			enable:      enable,
			disable:     disable,
		})
	})

	inputPath := *input
	if inputPath == "" && flag.NArg() > 0 {
		inputPath = flag.Arg(0)
	}
	if inputPath == "" && stdinIsTerminal() {
		printHelp()
		return 0
	}

	source, err := readInput(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return 1
	}
	sess.LoadSource(source)

	if *verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d line(s) from %s\n", len(splitCount(source)), inputName(inputPath))
	}

	if *tuiMode {
		if err := sess.Optimize(); err != nil {
			fmt.Fprintf(os.Stderr, "Error optimizing: %v\n", err)
			return 1
		}
		if err := tui.New(sess).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
			return 1
		}
		return 0
	}

	if *guiMode {
		if err := sess.Optimize(); err != nil {
			fmt.Fprintf(os.Stderr, "Error optimizing: %v\n", err)
			return 1
		}
		guiview.Run(sess)
		return 0
	}

	if err := sess.Optimize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error optimizing: %v\n", err)
		return 1
	}

	if err := writeOutput(*output, sess.Assembly()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return 1
	}

	if *reportTo == "-" {
		fmt.Fprint(os.Stderr, sess.Report())
	} else if *reportTo != "" {
		if err := writeOutput(*reportTo, sess.Report()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			return 1
		}
	}

	if *cfgDot != "" {
		if err := writeOutput(*cfgDot, sess.CFGDot()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CFG: %v\n", err)
			return 1
		}
	}

	if *dumpIR {
		fmt.Fprintln(os.Stderr, sess.IRDump())
	}
	if *dumpCFG {
		fmt.Fprintln(os.Stderr, sess.CFGDump())
	}

	if *showStats && !*quiet {
		original, optimized, replacements, removals := sess.Stats()
		fmt.Fprintf(os.Stderr, "original=%d optimized=%d replacements=%d removals=%d\n",
			original, optimized, replacements, removals)
	}

	return 0
}

// settingsFromFlags carries the raw CLI flag values needed to mutate a
// freshly created Context; kept as a single struct so applySettings can be
// called from one place regardless of how main wires the flag package.
type settingsFromFlags struct {
	format             string
	mtune              string
	o0, o1, o2, o3, o4 bool
	noOptimize         bool
	preserveAll        bool
	amdOn              bool
	amdOff             bool
	enable             []string
	disable            []string
}

// applySettings applies file config first, then CLI flags on top -- flags
// always win.
func applySettings(ctx *optimizer.Context, fileCfg *config.Config, f settingsFromFlags) {
	fileCfg.Apply(
		ctx.SetOptimizationLevel,
		ctx.SetTargetCPU,
		ctx.SetAMDOptimizations,
		ctx.EnableOptimization,
		ctx.DisableOptimization,
		func(on bool) {
			if on {
				ctx.SetOption("hot_align", "1")
			}
		},
	)
	if fileCfg.Display.DefaultFormat != "" {
		ctx.SetFormat(lexer.ParseSyntax(fileCfg.Display.DefaultFormat))
	}

	switch {
	case f.o0:
		ctx.SetOptimizationLevel(0)
	case f.o1:
		ctx.SetOptimizationLevel(1)
	case f.o2:
		ctx.SetOptimizationLevel(2)
	case f.o3:
		ctx.SetOptimizationLevel(3)
	case f.o4:
		ctx.SetOptimizationLevel(4)
	}

	if f.format != "" {
		ctx.SetFormat(lexer.ParseSyntax(f.format))
	}
	if f.mtune != "" {
		ctx.SetTargetCPU(f.mtune)
	}
	if f.noOptimize {
		ctx.SetNoOptimize(true)
	}
	if f.preserveAll {
		ctx.SetPreserveAll(true)
	}
	if f.amdOn {
		ctx.SetAMDOptimizations(true)
	}
	if f.amdOff {
		ctx.SetAMDOptimizations(false)
	}
	for _, name := range f.enable {
		ctx.EnableOptimization(name)
	}
	for _, name := range f.disable {
		ctx.DisableOptimization(name)
	}
}

func archOrDefault(march string) string {
	if march == "" {
		return "x86-64"
	}
	return march
}

func loadFileConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// readInput resolves -i/--input: a named file, "-" for stdin, or (when
// absent and stdin is not a TTY) stdin by default.
func readInput(path string) (string, error) {
	switch path {
	case "", "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path) // #nosec G304 -- user-supplied CLI path
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// stdinIsTerminal reports whether stdin is an interactive terminal rather
// than a pipe or redirected file.
func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func inputName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

func writeOutput(path, text string) error {
	switch path {
	case "", "-":
		_, err := fmt.Print(text)
		return err
	default:
		return os.WriteFile(path, []byte(text), 0644) // #nosec G306 -- user-requested output path
	}
}

func splitCount(s string) []string {
	lines, _ := lexer.SplitLines(s)
	return lines
}

func runAPIServer(port int, verbose bool) int {
	server := api.NewServer(port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var shutdownOnce sync.Once
	performShutdown := func() int {
		exitCode := 0
		shutdownOnce.Do(func() {
			fmt.Fprintln(os.Stderr, "\nShutting down API server...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
				exitCode = 1
				return
			}
			fmt.Fprintln(os.Stderr, "API server stopped")
		})
		return exitCode
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Starting API server on port %d\n", port)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
			return
		}
		errChan <- nil
	}()

	select {
	case err := <-errChan:
		if err != nil {
			fmt.Fprintf(os.Stderr, "API server error: %v\n", err)
			return 1
		}
		return 0
	case <-sigChan:
		return performShutdown()
	}
}

func printHelp() {
	fmt.Printf(`asmopt %s

Usage: asmopt [options] [input-file]
       asmopt -api-server [-port N]
       asmopt -tui [input-file]
       asmopt -gui [input-file]

Options:
  -i, --input P        Read assembly from P (- or absent + non-TTY stdin reads stdin)
  -o, --output P       Write optimized assembly to P (- or absent writes stdout)
  -f, --format FMT     Override syntax: intel, att
  -O0 .. -O4           Set optimization level (default 2)
  --enable X           Enable a named optimization (repeatable)
  --disable X          Disable a named optimization (repeatable; "all" disables everything)
  --no-optimize        Disable all rewriting; emit source unchanged
  --preserve-all       Set the preserve-all flag (no rewrite rule consults it)
  --report P           Write the optimization report to P (- writes stderr)
  --stats              Print stats to stderr after emit
  --cfg P              Write the CFG as Graphviz DOT to P
  --dump-ir            Write the IR dump to stderr
  --dump-cfg           Write the CFG text dump to stderr
  -m, --march A        Target architecture
  --mtune C            Target CPU tuning name
  --amd-optimize       Force AMD-tuned rules on
  --no-amd-optimize    Force AMD-tuned rules off
  -v, --verbose        Verbose diagnostics on stderr
  -q, --quiet          Suppress non-essential diagnostics
  --config P           Path to a TOML defaults file
  --api-server         Start the HTTP session API
  --port N             API server port (used with -api-server)
  --tui                Launch the interactive event browser
  --gui                Launch the desktop before/after viewer
  -help                Show this help message
  -version             Show version information

Exit codes: 0 success, 1 any error (bad argument, read failure, optimize failure, write failure).
`, Version)
}
