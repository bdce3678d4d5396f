package value

import (
	"fmt"

	"github.com/janus-lang/janus/internal/term"
)

// NameEnv resolves Global names to their defined value. A `let` at the
// shell adds an entry, replacing any earlier entry of the same name.
type NameEnv struct {
	defs map[string]Value
}

// NewNameEnv returns an empty name environment.
func NewNameEnv() *NameEnv {
	return &NameEnv{defs: make(map[string]Value)}
}

// Lookup resolves a global, returning false if it has no definition
// (assumed but not bound by `let`).
func (e *NameEnv) Lookup(name string) (Value, bool) {
	v, ok := e.defs[name]
	return v, ok
}

// Define records a global's value. Used by `let` at the shell.
func (e *NameEnv) Define(name string, v Value) {
	e.defs[name] = v
}

// Env is the pair threaded through evaluation: NameEnv resolves Global
// names, Stack resolves Bound indices (index i is the value pushed i
// frames ago, i.e. index 0 is the innermost binder).
type Env struct {
	Names *NameEnv
	Stack []Value
}

// NewEnv builds an Env over the given name environment and an empty stack.
func NewEnv(names *NameEnv) Env {
	return Env{Names: names, Stack: nil}
}

// Push returns a new Env with v bound to the next Bound index.
func (e Env) Push(v Value) Env {
	stack := make([]Value, len(e.Stack)+1)
	stack[0] = v
	copy(stack[1:], e.Stack)
	return Env{Names: e.Names, Stack: stack}
}

func (e Env) resolveBound(i int) Value {
	if i < 0 || i >= len(e.Stack) {
		panic(fmt.Sprintf("internal error: unbound de Bruijn index %d", i))
	}
	return e.Stack[i]
}

// EvalI evaluates an inferable term to a value.
func EvalI(t term.ITerm, env Env) Value {
	switch t := t.(type) {
	case term.Ann:
		return EvalC(t.Expr, env)
	case term.Bound:
		return env.resolveBound(t.Index)
	case term.Free:
		if g, ok := t.Name.(term.Global); ok {
			if v, ok := env.Names.Lookup(g.Name); ok {
				return v
			}
		}
		return VFree(t.Name)
	case term.App:
		fn := EvalI(t.Fun, env)
		arg := EvalC(t.Arg, env)
		return apply(fn, arg)
	case term.MPairElim:
		scrutinee := EvalI(t.Scrutinee, env)
		body := t.Body
		motive := t.Motive
		bodyClosure := Closure2(func(x, y Value) Value {
			return EvalC(body, env.Push(x).Push(y))
		})
		motiveClosure := Closure1(func(v Value) Value {
			return EvalC(motive, env.Push(v))
		})
		switch s := scrutinee.(type) {
		case VMPair:
			return bodyClosure(s.Fst, s.Snd)
		case VNeutral:
			return VNeutral{Neutral: NMPairElim{Scrutinee: s.Neutral, Body: bodyClosure, Motive: motiveClosure}}
		default:
			panic("internal error: MPairElim scrutinee is not a pair or neutral")
		}
	case term.MUnitElim:
		scrutinee := EvalI(t.Scrutinee, env)
		body := EvalC(t.Body, env)
		motive := t.Motive
		motiveClosure := Closure1(func(v Value) Value {
			return EvalC(motive, env.Push(v))
		})
		switch s := scrutinee.(type) {
		case VMUnit:
			return body
		case VNeutral:
			return VNeutral{Neutral: NMUnitElim{Scrutinee: s.Neutral, Body: body, Motive: motiveClosure}}
		default:
			panic("internal error: MUnitElim scrutinee is not unit or neutral")
		}
	case term.Fst:
		pair := EvalI(t.Pair, env)
		switch p := pair.(type) {
		case VAPair:
			return p.Fst
		case VNeutral:
			return VNeutral{Neutral: NFst{Pair: p.Neutral}}
		default:
			panic("internal error: Fst of a non-pair, non-neutral value")
		}
	case term.Snd:
		pair := EvalI(t.Pair, env)
		switch p := pair.(type) {
		case VAPair:
			return p.Snd
		case VNeutral:
			return VNeutral{Neutral: NSnd{Pair: p.Neutral}}
		default:
			panic("internal error: Snd of a non-pair, non-neutral value")
		}
	default:
		panic(fmt.Sprintf("internal error: unhandled ITerm %T in eval", t))
	}
}

// apply reduces a function value applied to an argument, or builds a
// stuck NApp if the function is neutral.
func apply(fn, arg Value) Value {
	switch f := fn.(type) {
	case VLam:
		return f.Body(arg)
	case VNeutral:
		return VNeutral{Neutral: NApp{Fun: f.Neutral, Arg: arg}}
	default:
		panic("internal error: application of a non-function, non-neutral value")
	}
}

// EvalC evaluates a checkable term to a value.
func EvalC(t term.CTerm, env Env) Value {
	switch t := t.(type) {
	case term.Inf:
		return EvalI(t.Term, env)
	case term.Lam:
		body := t.Body
		return VLam{Body: func(v Value) Value {
			return EvalC(body, env.Push(v))
		}}
	case term.Universe:
		return VUniverse{}
	case term.Pi:
		domain := EvalC(t.Domain, env)
		cod := t.Cod
		return VPi{Usage: t.Usage, Domain: domain, Cod: func(v Value) Value {
			return EvalC(cod, env.Push(v))
		}}
	case term.MPairType:
		domain := EvalC(t.Domain, env)
		cod := t.Cod
		return VMPairType{Usage: t.Usage, Domain: domain, Cod: func(v Value) Value {
			return EvalC(cod, env.Push(v))
		}}
	case term.MPair:
		return VMPair{Fst: EvalC(t.Fst, env), Snd: EvalC(t.Snd, env)}
	case term.MUnitType:
		return VMUnitType{}
	case term.MUnit:
		return VMUnit{}
	case term.APairType:
		fst := EvalC(t.Fst, env)
		snd := t.Snd
		return VAPairType{Fst: fst, Snd: func(v Value) Value {
			return EvalC(snd, env.Push(v))
		}}
	case term.APair:
		return VAPair{Fst: EvalC(t.Fst, env), Snd: EvalC(t.Snd, env)}
	case term.AUnitType:
		return VAUnitType{}
	case term.AUnit:
		return VAUnit{}
	default:
		panic(fmt.Sprintf("internal error: unhandled CTerm %T in eval", t))
	}
}
