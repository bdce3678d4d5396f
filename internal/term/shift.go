package term

import "fmt"

// ShiftI adds amount to every Bound index in t that is >= cutoff,
// renumbering free de Bruijn references when a term is moved under (or
// out from under) additional binders it does not itself introduce.
// This is the surface parser's tool for building a non-dependent motive
// out of a result type written in the surrounding scope: the motive
// itself introduces one more binder (the abstracted scrutinee) that the
// written type never mentions, so every Bound already live in it must
// shift outward by one to keep pointing at the same binder.
func ShiftI(cutoff, amount int, t ITerm) ITerm {
	switch t := t.(type) {
	case Ann:
		return Ann{Expr: ShiftC(cutoff, amount, t.Expr), Type: ShiftC(cutoff, amount, t.Type)}
	case Bound:
		if t.Index >= cutoff {
			return Bound{Index: t.Index + amount}
		}
		return t
	case Free:
		return t
	case App:
		return App{Fun: ShiftI(cutoff, amount, t.Fun), Arg: ShiftC(cutoff, amount, t.Arg)}
	case MPairElim:
		return MPairElim{
			Scrutinee: ShiftI(cutoff, amount, t.Scrutinee),
			Body:      ShiftC(cutoff+2, amount, t.Body),
			Motive:    ShiftC(cutoff+1, amount, t.Motive),
		}
	case MUnitElim:
		return MUnitElim{
			Scrutinee: ShiftI(cutoff, amount, t.Scrutinee),
			Body:      ShiftC(cutoff, amount, t.Body),
			Motive:    ShiftC(cutoff+1, amount, t.Motive),
		}
	case Fst:
		return Fst{Pair: ShiftI(cutoff, amount, t.Pair)}
	case Snd:
		return Snd{Pair: ShiftI(cutoff, amount, t.Pair)}
	default:
		panic(fmt.Sprintf("internal error: unhandled ITerm %T in shift", t))
	}
}

// ShiftC is the checkable-term counterpart of ShiftI.
func ShiftC(cutoff, amount int, t CTerm) CTerm {
	switch t := t.(type) {
	case Inf:
		return Inf{Term: ShiftI(cutoff, amount, t.Term)}
	case Lam:
		return Lam{Body: ShiftC(cutoff+1, amount, t.Body)}
	case Universe:
		return t
	case Pi:
		return Pi{Usage: t.Usage, Domain: ShiftC(cutoff, amount, t.Domain), Cod: ShiftC(cutoff+1, amount, t.Cod)}
	case MPairType:
		return MPairType{Usage: t.Usage, Domain: ShiftC(cutoff, amount, t.Domain), Cod: ShiftC(cutoff+1, amount, t.Cod)}
	case MPair:
		return MPair{Fst: ShiftC(cutoff, amount, t.Fst), Snd: ShiftC(cutoff, amount, t.Snd)}
	case MUnitType:
		return t
	case MUnit:
		return t
	case APairType:
		return APairType{Fst: ShiftC(cutoff, amount, t.Fst), Snd: ShiftC(cutoff+1, amount, t.Snd)}
	case APair:
		return APair{Fst: ShiftC(cutoff, amount, t.Fst), Snd: ShiftC(cutoff, amount, t.Snd)}
	case AUnitType:
		return t
	case AUnit:
		return t
	default:
		panic(fmt.Sprintf("internal error: unhandled CTerm %T in shift", t))
	}
}
