package term

import "fmt"

// ITerm is an inferable term: one whose type is synthesised rather than
// checked against an expectation.
type ITerm interface {
	String() string
	iTerm()
}

// Ann is a type-annotated checkable term, the only place an inferable
// term can "borrow" a checkable one's type.
type Ann struct {
	Expr CTerm
	Type CTerm
}

func (Ann) iTerm() {}
func (a Ann) String() string { return fmt.Sprintf("(%s : %s)", a.Expr, a.Type) }

// Bound is a de Bruijn index referring to an enclosing binder. It is only
// ever seen by eval/quote/subst; the type checker substitutes a fresh
// Free(Local) for Bound 0 the moment it descends into a binder, so
// iType never receives one (see Bound's note in typing).
type Bound struct {
	Index int
}

func (Bound) iTerm() {}
func (b Bound) String() string { return fmt.Sprintf("#%d", b.Index) }

// Free is an occurrence of a name, either a user `Global` or a `Local`
// minted by the checker.
type Free struct {
	Name Name
}

func (Free) iTerm() {}
func (f Free) String() string { return f.Name.String() }

// App is function application.
type App struct {
	Fun ITerm
	Arg CTerm
}

func (App) iTerm() {}
func (a App) String() string { return fmt.Sprintf("(%s %s)", a.Fun, a.Arg) }

// MPairElim eliminates a multiplicative (tensor) pair: `let z = l in
// body` with the motive `ret` over the scrutinee, where body binds the
// two projections of the pair under de Bruijn indices 1 (first) and 0
// (second), and ret binds the reconstructed pair under index 0.
type MPairElim struct {
	Scrutinee ITerm
	Body      CTerm
	Motive    CTerm
}

func (MPairElim) iTerm() {}
func (m MPairElim) String() string {
	return fmt.Sprintf("(let* %s = %s in %s : %s)", "_", m.Scrutinee, m.Body, m.Motive)
}

// MUnitElim eliminates the multiplicative unit `I`: `let () = l in body`.
type MUnitElim struct {
	Scrutinee ITerm
	Body      CTerm
	Motive    CTerm
}

func (MUnitElim) iTerm() {}
func (m MUnitElim) String() string {
	return fmt.Sprintf("(let () = %s in %s : %s)", m.Scrutinee, m.Body, m.Motive)
}

// Fst projects the first component of an additive (&) pair.
type Fst struct {
	Pair ITerm
}

func (Fst) iTerm() {}
func (f Fst) String() string { return fmt.Sprintf("fst %s", f.Pair) }

// Snd projects the second component of an additive (&) pair.
type Snd struct {
	Pair ITerm
}

func (Snd) iTerm() {}
func (s Snd) String() string { return fmt.Sprintf("snd %s", s.Pair) }
