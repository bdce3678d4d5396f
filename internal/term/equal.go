package term

// EqualITerm is α-invariant structural equality on inferable terms: Bound
// indices compare directly (they already encode scope position), Free
// occurrences compare by Name equality.
func EqualITerm(a, b ITerm) bool {
	switch a := a.(type) {
	case Ann:
		b, ok := b.(Ann)
		return ok && EqualCTerm(a.Expr, b.Expr) && EqualCTerm(a.Type, b.Type)
	case Bound:
		b, ok := b.(Bound)
		return ok && a.Index == b.Index
	case Free:
		b, ok := b.(Free)
		return ok && a.Name.Equal(b.Name)
	case App:
		b, ok := b.(App)
		return ok && EqualITerm(a.Fun, b.Fun) && EqualCTerm(a.Arg, b.Arg)
	case MPairElim:
		b, ok := b.(MPairElim)
		return ok && EqualITerm(a.Scrutinee, b.Scrutinee) &&
			EqualCTerm(a.Body, b.Body) && EqualCTerm(a.Motive, b.Motive)
	case MUnitElim:
		b, ok := b.(MUnitElim)
		return ok && EqualITerm(a.Scrutinee, b.Scrutinee) &&
			EqualCTerm(a.Body, b.Body) && EqualCTerm(a.Motive, b.Motive)
	case Fst:
		b, ok := b.(Fst)
		return ok && EqualITerm(a.Pair, b.Pair)
	case Snd:
		b, ok := b.(Snd)
		return ok && EqualITerm(a.Pair, b.Pair)
	default:
		return false
	}
}

// EqualCTerm is the checkable-term counterpart of EqualITerm.
func EqualCTerm(a, b CTerm) bool {
	switch a := a.(type) {
	case Inf:
		b, ok := b.(Inf)
		return ok && EqualITerm(a.Term, b.Term)
	case Lam:
		b, ok := b.(Lam)
		return ok && EqualCTerm(a.Body, b.Body)
	case Universe:
		_, ok := b.(Universe)
		return ok
	case Pi:
		b, ok := b.(Pi)
		return ok && a.Usage == b.Usage && EqualCTerm(a.Domain, b.Domain) && EqualCTerm(a.Cod, b.Cod)
	case MPairType:
		b, ok := b.(MPairType)
		return ok && a.Usage == b.Usage && EqualCTerm(a.Domain, b.Domain) && EqualCTerm(a.Cod, b.Cod)
	case MPair:
		b, ok := b.(MPair)
		return ok && EqualCTerm(a.Fst, b.Fst) && EqualCTerm(a.Snd, b.Snd)
	case MUnitType:
		_, ok := b.(MUnitType)
		return ok
	case MUnit:
		_, ok := b.(MUnit)
		return ok
	case APairType:
		b, ok := b.(APairType)
		return ok && EqualCTerm(a.Fst, b.Fst) && EqualCTerm(a.Snd, b.Snd)
	case APair:
		b, ok := b.(APair)
		return ok && EqualCTerm(a.Fst, b.Fst) && EqualCTerm(a.Snd, b.Snd)
	case AUnitType:
		_, ok := b.(AUnitType)
		return ok
	case AUnit:
		_, ok := b.(AUnit)
		return ok
	default:
		return false
	}
}
