package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/janus-lang/janus/internal/check"
	"github.com/janus-lang/janus/internal/context"
	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/surface"
	"github.com/janus-lang/janus/internal/value"
)

// HandleCommand dispatches a `:`-prefixed shell command.
func (r *REPL) HandleCommand(cmd string, out io.Writer) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case ":help", ":h":
		r.printHelp(out)

	case ":type", ":t":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: :type <expression>")
			return
		}
		r.showType(strings.Join(parts[1:], " "), out)

	case ":browse", ":b":
		r.browse(out)

	case ":load", ":l":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: :load <file>")
			return
		}
		r.LoadFile(parts[1], out)

	case ":history":
		r.showHistory(out)

	case ":clear":
		fmt.Print("\033[H\033[2J")

	case ":reset":
		r.ctx = context.New(value.NewNameEnv())
		fmt.Fprintln(out, green("Context reset"))

	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", red("error"), parts[0])
	}
}

// showType parses an expression, infers its type at usage Many (the
// usual "used however many times" relevance for an inspection query),
// and prints the result without evaluating or extending the context.
func (r *REPL) showType(input string, out io.Writer) {
	p := surface.New(surface.NewLexer(string(surface.Normalize([]byte(input))), "<repl>"))
	c, err := p.ParseExpr()
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("parse error"), err)
		return
	}
	e, err := surface.ToITerm(c)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	ty, err := check.IType0(r.ctx, semiring.Many, e)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return
	}
	fmt.Fprintf(out, "%s %s %s\n", cyan(e), dim(":"), yellow(value.Quote0(ty)))
}

// browse lists every binding currently in the context, innermost
// first.
func (r *REPL) browse(out io.Writer) {
	bindings := r.ctx.Types.Bindings()
	if len(bindings) == 0 {
		fmt.Fprintln(out, dim("(empty context)"))
		return
	}
	for _, b := range bindings {
		fmt.Fprintf(out, "%s %s : %s\n", b.Usage, b.Name, b.Type)
	}
}

// LoadFile reads a file of shell statements and runs each one in
// sequence against the current context, stopping at the first error.
// It reports whether every statement succeeded, so cmd/janus's
// `run`/`check` subcommands can translate a failure into a nonzero
// exit code. Also used by the :load command and startup prelude
// loading, both of which ignore the return value.
func (r *REPL) LoadFile(path string, out io.Writer) bool {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return false
	}
	defer f.Close()

	src, err := io.ReadAll(f)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("error"), err)
		return false
	}

	p := surface.New(surface.NewLexer(string(surface.Normalize(src)), path))
	stmts, err := p.ParseProgram()
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("parse error"), err)
		return false
	}
	for _, s := range stmts {
		if !r.runStmt(s, out) {
			return false
		}
	}
	fmt.Fprintf(out, "%s %s\n", green("Loaded"), path)
	return true
}

func (r *REPL) showHistory(out io.Writer) {
	for i, h := range r.history {
		fmt.Fprintf(out, "%d: %s\n", i+1, h)
	}
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("Janus shell commands:"))
	fmt.Fprintln(out, "  :type <expr>   infer and print an expression's type without evaluating it")
	fmt.Fprintln(out, "  :browse        list every binding in the current context")
	fmt.Fprintln(out, "  :load <file>   run a file of statements against the current context")
	fmt.Fprintln(out, "  :history       show this session's input history")
	fmt.Fprintln(out, "  :clear         clear the terminal")
	fmt.Fprintln(out, "  :reset         discard the current context")
	fmt.Fprintln(out, "  :quit          exit the shell")
	fmt.Fprintln(out)
	fmt.Fprintln(out, bold("Statements:"))
	fmt.Fprintln(out, "  assume (q x : T) ...   introduce one or more undefined globals")
	fmt.Fprintln(out, "  let q name = expr      define a global, checked at usage q")
	fmt.Fprintln(out, "  [q] expr               check and evaluate an expression at usage q (default w)")
	fmt.Fprintln(out, `  putStrLn "text"        print a literal string`)
	fmt.Fprintln(out, `  out "file"             redirect statement output to file (out "" restores the terminal)`)
}
