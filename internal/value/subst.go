package value

import (
	"fmt"

	"github.com/janus-lang/janus/internal/term"
)

// SubstI substitutes replacement for Bound{target} in t, shifting target
// by one every time it descends past a binder so that occurrences of the
// original binder keep lining up. replacement is always a closed term
// (in practice Free{Local k}), so it is never itself shifted. This is
// what the checker uses to open a binder with a fresh local before
// recursing into its body, and to propagate a scrutinee into the motive
// of a dependent eliminator.
func SubstI(target int, replacement term.ITerm, t term.ITerm) term.ITerm {
	switch t := t.(type) {
	case term.Ann:
		return term.Ann{Expr: SubstC(target, replacement, t.Expr), Type: SubstC(target, replacement, t.Type)}
	case term.Bound:
		if t.Index == target {
			return replacement
		}
		return t
	case term.Free:
		return t
	case term.App:
		return term.App{Fun: SubstI(target, replacement, t.Fun), Arg: SubstC(target, replacement, t.Arg)}
	case term.MPairElim:
		return term.MPairElim{
			Scrutinee: SubstI(target, replacement, t.Scrutinee),
			Body:      SubstC(target+2, replacement, t.Body),
			Motive:    SubstC(target+1, replacement, t.Motive),
		}
	case term.MUnitElim:
		return term.MUnitElim{
			Scrutinee: SubstI(target, replacement, t.Scrutinee),
			Body:      SubstC(target, replacement, t.Body),
			Motive:    SubstC(target+1, replacement, t.Motive),
		}
	case term.Fst:
		return term.Fst{Pair: SubstI(target, replacement, t.Pair)}
	case term.Snd:
		return term.Snd{Pair: SubstI(target, replacement, t.Pair)}
	default:
		panic(fmt.Sprintf("internal error: unhandled ITerm %T in subst", t))
	}
}

// SubstC is the checkable-term counterpart of SubstI.
func SubstC(target int, replacement term.ITerm, t term.CTerm) term.CTerm {
	switch t := t.(type) {
	case term.Inf:
		return term.Inf{Term: SubstI(target, replacement, t.Term)}
	case term.Lam:
		return term.Lam{Body: SubstC(target+1, replacement, t.Body)}
	case term.Universe:
		return t
	case term.Pi:
		return term.Pi{Usage: t.Usage, Domain: SubstC(target, replacement, t.Domain), Cod: SubstC(target+1, replacement, t.Cod)}
	case term.MPairType:
		return term.MPairType{Usage: t.Usage, Domain: SubstC(target, replacement, t.Domain), Cod: SubstC(target+1, replacement, t.Cod)}
	case term.MPair:
		return term.MPair{Fst: SubstC(target, replacement, t.Fst), Snd: SubstC(target, replacement, t.Snd)}
	case term.MUnitType:
		return t
	case term.MUnit:
		return t
	case term.APairType:
		return term.APairType{Fst: SubstC(target, replacement, t.Fst), Snd: SubstC(target+1, replacement, t.Snd)}
	case term.APair:
		return term.APair{Fst: SubstC(target, replacement, t.Fst), Snd: SubstC(target, replacement, t.Snd)}
	case term.AUnitType:
		return t
	case term.AUnit:
		return t
	default:
		panic(fmt.Sprintf("internal error: unhandled CTerm %T in subst", t))
	}
}
