// Package term defines the two-sorted syntax of Janus: inferable terms
// (ITerm) and checkable terms (CTerm), along with Name, the identifier
// sort shared between free (Global) and bound-during-checking (Local)
// variables.
package term

import "fmt"

// Name identifies a variable. A Global is a free, user-introduced name
// (from `assume`/`let`); a Local is a fresh de Bruijn level minted by the
// type checker while it descends into binders.
type Name interface {
	isName()
	String() string
	Equal(Name) bool
}

// Global is a free name introduced at the top level.
type Global struct {
	Name string
}

func (Global) isName() {}
func (g Global) String() string { return g.Name }
func (g Global) Equal(other Name) bool {
	o, ok := other.(Global)
	return ok && o.Name == g.Name
}

// Local is a de Bruijn level minted while the checker opens a binder. Its
// index is the environment's length at the point of creation, which
// guarantees freshness without renaming.
type Local struct {
	Index int
}

func (Local) isName() {}
func (l Local) String() string { return fmt.Sprintf("local[%d]", l.Index) }
func (l Local) Equal(other Name) bool {
	o, ok := other.(Local)
	return ok && o.Index == l.Index
}

// Quote is the marker name `quote` fabricates for the fresh free variables
// it substitutes for closure parameters while reading a value back into
// syntax. It is distinct from Local so the two never collide.
type Quote struct {
	Depth int
}

func (Quote) isName() {}
func (q Quote) String() string { return fmt.Sprintf("quote[%d]", q.Depth) }
func (q Quote) Equal(other Name) bool {
	o, ok := other.(Quote)
	return ok && o.Depth == q.Depth
}
