package surface

import (
	"fmt"

	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/term"
)

// Binding is a single `(q name : Type)` annotation, as parsed inside an
// `assume` statement or a Pi/pair-type binder.
type Binding struct {
	Name  string
	Usage semiring.Q
	Type  term.CTerm
}

func (b Binding) String() string {
	return fmt.Sprintf("(%s %s : %s)", b.Usage, b.Name, b.Type)
}

// Stmt is a single top-level shell statement, the unit the parser and
// the REPL exchange.
type Stmt interface {
	isStmt()
}

// Assume introduces one or more Global bindings with no definition,
// just a declared usage and type.
type Assume struct {
	Bindings []Binding
}

func (Assume) isStmt() {}

// Let introduces a Global binding with a definition: the checker
// verifies Expr against its own inferred type at usage Usage, then the
// name is added to both the typing and the name environment.
type Let struct {
	Usage semiring.Q
	Name  string
	Expr  term.ITerm
}

func (Let) isStmt() {}

// Eval is a bare expression entered at the shell: check it at Usage
// and, on success, evaluate and print both its type and normal form.
type Eval struct {
	Usage semiring.Q
	Expr  term.ITerm
}

func (Eval) isStmt() {}

// PutStrLn prints a literal string, unrelated to the typing judgment;
// supports REPL scripts that narrate what they are demonstrating.
type PutStrLn struct {
	Text string
}

func (PutStrLn) isStmt() {}

// Out redirects subsequent shell output to a named file (or, with an
// empty Path, back to the terminal). Mirrors the classic `:set
// outfile` style of REPL session logging.
type Out struct {
	Path string
}

func (Out) isStmt() {}
