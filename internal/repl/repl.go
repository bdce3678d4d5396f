// Package repl implements Janus's interactive shell: a liner-backed
// read loop that parses one Stmt at a time, threads it through the
// checker and evaluator, and prints the result. Mirrors spec.md's
// IState { outFile, context }.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/janus-lang/janus/internal/check"
	"github.com/janus-lang/janus/internal/context"
	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/surface"
	"github.com/janus-lang/janus/internal/term"
	"github.com/janus-lang/janus/internal/value"
)

// Color functions for pretty output.
var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Config holds REPL-wide toggles set from the command line.
type Config struct {
	Verbose bool
}

// defaultHistoryFile mirrors internal/config's own default, so a REPL
// built without a config file behaves exactly like one loaded from a
// config that doesn't set history_file.
func defaultHistoryFile() string {
	return filepath.Join(os.TempDir(), ".janus_history")
}

// REPL is the shell's mutable IState: a typing/name context plus an
// optional redirected output file.
type REPL struct {
	config  *Config
	ctx     *context.Context
	history []string

	outFile *os.File
	outPath string

	promptColor *color.Color
	historyFile string

	version   string
	buildTime string
}

// New creates a REPL over a fresh, empty context.
func New() *REPL {
	return NewWithVersion("", "")
}

// NewWithVersion creates a REPL carrying version metadata for the
// welcome banner.
func NewWithVersion(version, buildTime string) *REPL {
	if version == "" {
		version = "dev"
	}
	if buildTime == "" {
		buildTime = "unknown"
	}
	return &REPL{
		config:      &Config{},
		ctx:         context.New(value.NewNameEnv()),
		history:     []string{},
		promptColor: colorByName("cyan"),
		historyFile: defaultHistoryFile(),
		version:     version,
		buildTime:   buildTime,
	}
}

// EnableTrace sets Config.Verbose. No output of the REPL depends on it.
func (r *REPL) EnableTrace() {
	r.config.Verbose = true
}

// SetPromptColor sets the prompt's color by name (internal/config.Config's
// prompt_color field); an unrecognized name falls back to cyan.
func (r *REPL) SetPromptColor(name string) {
	r.promptColor = colorByName(name)
}

// SetHistoryFile overrides where Start persists the liner history
// (internal/config.Config's history_file field); an empty path keeps the
// built-in default.
func (r *REPL) SetHistoryFile(path string) {
	if path == "" {
		return
	}
	r.historyFile = path
}

// colorByName resolves a config-supplied color name to a fatih/color
// attribute, defaulting to cyan for anything unrecognized so a typo in
// ~/.janusrc.yaml degrades gracefully rather than erroring.
func colorByName(name string) *color.Color {
	switch strings.ToLower(name) {
	case "red":
		return color.New(color.FgRed)
	case "green":
		return color.New(color.FgGreen)
	case "yellow":
		return color.New(color.FgYellow)
	case "blue":
		return color.New(color.FgBlue)
	case "magenta":
		return color.New(color.FgMagenta)
	case "white":
		return color.New(color.FgWhite)
	case "cyan", "":
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgCyan)
	}
}

func (r *REPL) getPrompt() string {
	return r.promptColor.Sprint("janus> ")
}

// output returns the writer statements should print to: the redirected
// file set by `out`, or the REPL's normal out.
func (r *REPL) output(out io.Writer) io.Writer {
	if r.outFile != nil {
		return r.outFile
	}
	return out
}

// Start begins the REPL session, reading lines from a liner-backed
// prompt until EOF or `:quit`.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetMultiLineMode(true)

	fmt.Fprintf(out, "%s %s\n", bold("Janus"), bold(r.version))
	fmt.Fprintln(out, dim("A quantitative type theory checker. Type :help for help, :quit to exit."))
	fmt.Fprintln(out)

	line.SetCompleter(func(input string) (c []string) {
		if strings.HasPrefix(input, ":") {
			commands := []string{":help", ":quit", ":type", ":browse", ":load", ":reset", ":history", ":clear"}
			for _, cmd := range commands {
				if strings.HasPrefix(cmd, input) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	for {
		prompt := r.getPrompt()
		input, err := line.Prompt(prompt)
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if strings.HasPrefix(input, ":quit") || strings.HasPrefix(input, ":q") {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			r.HandleCommand(input, out)
			continue
		}

		r.ProcessLine(input, out)
	}

	if f, err := os.Create(r.historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// ProcessLine parses one shell statement and evaluates it against the
// REPL's persistent context.
func (r *REPL) ProcessLine(input string, out io.Writer) {
	p := surface.New(surface.NewLexer(string(surface.Normalize([]byte(input))), "<repl>"))
	stmt, err := p.ParseStmt()
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("parse error"), err)
		return
	}
	r.runStmt(stmt, out)
}

// runStmt dispatches a single parsed Stmt against the current context,
// mutating r.ctx for forms (Assume, Let) that extend it. It reports
// whether the statement succeeded, so LoadFile can stop at the first
// failure and callers outside the interactive loop can set an exit
// code.
func (r *REPL) runStmt(stmt surface.Stmt, out io.Writer) bool {
	w := r.output(out)
	switch s := stmt.(type) {
	case surface.Assume:
		for _, b := range s.Bindings {
			ty, err := check.IType0(r.ctx, semiring.Zero, term.Ann{Expr: b.Type, Type: term.Universe{}})
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", red("error"), err)
				return false
			}
			_ = ty
			tyVal := value.EvalC(b.Type, value.NewEnv(r.ctx.Names))
			r.ctx = r.ctx.Extend(context.Binding{Name: term.Global{Name: b.Name}, Usage: b.Usage, Type: tyVal})
			fmt.Fprintf(w, "%s : %s\n", b.Name, b.Type)
		}

	case surface.Let:
		ty, err := check.IType0(r.ctx, s.Usage, s.Expr)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			return false
		}
		val := value.EvalI(s.Expr, value.NewEnv(r.ctx.Names))
		r.ctx.Names.Define(s.Name, val)
		r.ctx = r.ctx.Extend(context.Binding{Name: term.Global{Name: s.Name}, Usage: s.Usage, Type: ty})
		fmt.Fprintf(w, "%s : %s\n", s.Name, value.Quote0(ty))

	case surface.Eval:
		ty, err := check.IType0(r.ctx, s.Usage, s.Expr)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("error"), err)
			return false
		}
		val := value.EvalI(s.Expr, value.NewEnv(r.ctx.Names))
		fmt.Fprintf(w, "%s %s %s\n", cyan(value.Quote0(val)), dim(":"), yellow(value.Quote0(ty)))

	case surface.PutStrLn:
		fmt.Fprintln(w, s.Text)

	case surface.Out:
		r.setOutFile(s.Path, out)
	}
	return true
}

func (r *REPL) setOutFile(path string, out io.Writer) {
	if r.outFile != nil {
		r.outFile.Close()
		r.outFile = nil
		r.outPath = ""
	}
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	r.outFile = f
	r.outPath = path
}
