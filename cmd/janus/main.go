// Command janus is the CLI entry point for the Janus quantitative type
// theory checker: an interactive REPL plus one-shot `check`/`run`
// subcommands for files of shell statements.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/janus-lang/janus/internal/config"
	"github.com/janus-lang/janus/internal/repl"
)

var (
	// Version info, set by ldflags during build.
	Version   = "dev"
	BuildTime = "unknown"

	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		traceFlag   = flag.Bool("trace", false, "Set the REPL's verbose flag (no output depends on it)")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}

	if flag.NArg() == 0 {
		runREPL(*traceFlag)
		return
	}

	switch cmd := flag.Arg(0); cmd {
	case "repl":
		runREPL(*traceFlag)

	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: janus check <file>")
			os.Exit(1)
		}
		checkFile(flag.Arg(1))

	case "run":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: janus run <file>")
			os.Exit(1)
		}
		runFile(flag.Arg(1))

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), cmd)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Janus %s\n", bold(Version))
	if BuildTime != "unknown" {
		fmt.Printf("Built: %s\n", BuildTime)
	}
	fmt.Println("A quantitative type theory checker.")
}

func printHelp() {
	fmt.Println(bold("Janus - a quantitative type theory checker"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  janus [command] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  repl          Start the interactive shell (default)")
	fmt.Println("  check <file>  Type-check and evaluate a file of statements (same as run)")
	fmt.Println("  run <file>    Type-check and evaluate a file of statements")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -version   Print version information")
	fmt.Println("  -trace     Set the REPL's verbose flag (no output depends on it)")
}

// newREPLFromConfig builds a REPL pre-loaded with the prelude files
// named in ~/.janusrc.yaml, falling back silently to an empty one if
// no config file is present.
func newREPLFromConfig(trace bool) *repl.REPL {
	r := repl.NewWithVersion(Version, BuildTime)
	if trace {
		r.EnableTrace()
	}

	path, err := config.Path()
	if err != nil {
		return r
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("warning"), err)
		return r
	}
	r.SetPromptColor(cfg.PromptColor)
	r.SetHistoryFile(cfg.HistoryFile)
	for _, prelude := range cfg.Prelude {
		r.LoadFile(prelude, os.Stdout)
	}
	return r
}

func runREPL(trace bool) {
	r := newREPLFromConfig(trace)
	r.Start(os.Stdin, os.Stdout)
}

// checkFile type-checks and evaluates a file's statements (via the REPL's
// mutable context, without using its interactive input loop) and exits nonzero
// on the first error.
func checkFile(path string) {
	r := newREPLFromConfig(false)
	if !r.LoadFile(path, os.Stdout) {
		os.Exit(1)
	}
}

// runFile is currently identical to checkFile: Janus's shell statements
// are checked and evaluated together (Let/Eval both run the judgment
// then evaluate), so there is no separate "run without checking" mode.
func runFile(path string) {
	checkFile(path)
}
