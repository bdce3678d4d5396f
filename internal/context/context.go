// Package context implements the pair threaded through the type checker:
// an ordered typing environment (for Binding lookup) and a name
// environment (for evaluating Globals to values).
package context

import (
	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/term"
	"github.com/janus-lang/janus/internal/value"
)

// Binding pairs a name with its declared usage allowance and its type
// (held as a value, since the checker only ever compares normal forms).
type Binding struct {
	Name  term.Name
	Usage semiring.Q
	Type  value.Value
}

// TypeEnv is an ordered, innermost-first list of Bindings: Extend
// prepends, so Find returns the nearest (shadowing) binding for a name.
type TypeEnv struct {
	bindings []Binding
}

// NewTypeEnv returns an empty typing environment.
func NewTypeEnv() *TypeEnv {
	return &TypeEnv{}
}

// Extend returns a new environment with b innermost.
func (e *TypeEnv) Extend(b Binding) *TypeEnv {
	next := make([]Binding, 0, len(e.bindings)+1)
	next = append(next, b)
	next = append(next, e.bindings...)
	return &TypeEnv{bindings: next}
}

// Len returns the number of bindings in the environment: the context
// length used to mint a fresh, guaranteed-unique Local.
func (e *TypeEnv) Len() int {
	return len(e.bindings)
}

// Bindings returns a snapshot of every binding currently in the
// environment, innermost first.
func (e *TypeEnv) Bindings() []Binding {
	out := make([]Binding, len(e.bindings))
	copy(out, e.bindings)
	return out
}

// Find looks up a name, innermost binding first.
func (e *TypeEnv) Find(n term.Name) (Binding, bool) {
	for _, b := range e.bindings {
		if b.Name.Equal(n) {
			return b, true
		}
	}
	return Binding{}, false
}

// Forget returns the "erased shadow" of this environment: every usage
// annotation rewritten to Zero. Used when type-checking a type, which
// must not consume runtime resources.
func (e *TypeEnv) Forget() *TypeEnv {
	next := make([]Binding, len(e.bindings))
	for i, b := range e.bindings {
		b.Usage = semiring.Zero
		next[i] = b
	}
	return &TypeEnv{bindings: next}
}

// Context is the pair (NameEnv, TypeEnv) the typing judgment carries
// through recursion, passed by pointer and never modified in place:
// Extend and Forget return new Contexts.
type Context struct {
	Names *value.NameEnv
	Types *TypeEnv
}

// New builds a Context over a fresh, empty typing environment and the
// given (possibly pre-populated) name environment.
func New(names *value.NameEnv) *Context {
	return &Context{Names: names, Types: NewTypeEnv()}
}

// Depth returns the current length of the typing environment, used as
// the fresh index for the next Local minted while descending into a
// binder.
func (c *Context) Depth() int {
	return c.Types.Len()
}

// Lookup finds a name's Binding in the typing environment.
func (c *Context) Lookup(n term.Name) (Binding, bool) {
	return c.Types.Find(n)
}

// Extend returns a new Context with an additional Binding.
func (c *Context) Extend(b Binding) *Context {
	return &Context{Names: c.Names, Types: c.Types.Extend(b)}
}

// Forget returns a new Context whose typing environment has been
// erased (see TypeEnv.Forget); the name environment is shared as-is,
// since evaluation of types does not consume resources either way.
func (c *Context) Forget() *Context {
	return &Context{Names: c.Names, Types: c.Types.Forget()}
}
