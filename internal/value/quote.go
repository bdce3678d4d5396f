package value

import (
	"fmt"

	"github.com/janus-lang/janus/internal/term"
)

// Quote is the normaliser's inverse: it reads a value back into a
// checkable term by applying every closure to a fresh marker variable
// (term.Quote{n}) and recursively quoting one level deeper. n is the
// current quoting depth (the number of binders already opened), used to
// convert a marker's level back into a de Bruijn index.
func Quote(n int, v Value) term.CTerm {
	switch v := v.(type) {
	case VUniverse:
		return term.Universe{}
	case VPi:
		return term.Pi{
			Usage:  v.Usage,
			Domain: Quote(n, v.Domain),
			Cod:    Quote(n+1, v.Cod(VFree(term.Quote{Depth: n}))),
		}
	case VLam:
		return term.Lam{Body: Quote(n+1, v.Body(VFree(term.Quote{Depth: n})))}
	case VMPairType:
		return term.MPairType{
			Usage:  v.Usage,
			Domain: Quote(n, v.Domain),
			Cod:    Quote(n+1, v.Cod(VFree(term.Quote{Depth: n}))),
		}
	case VMPair:
		return term.MPair{Fst: Quote(n, v.Fst), Snd: Quote(n, v.Snd)}
	case VMUnitType:
		return term.MUnitType{}
	case VMUnit:
		return term.MUnit{}
	case VAPairType:
		return term.APairType{
			Fst: Quote(n, v.Fst),
			Snd: Quote(n+1, v.Snd(VFree(term.Quote{Depth: n}))),
		}
	case VAPair:
		return term.APair{Fst: Quote(n, v.Fst), Snd: Quote(n, v.Snd)}
	case VAUnitType:
		return term.AUnitType{}
	case VAUnit:
		return term.AUnit{}
	case VNeutral:
		return term.Inf{Term: quoteNeutral(n, v.Neutral)}
	default:
		panic(fmt.Sprintf("internal error: unhandled Value %T in quote", v))
	}
}

// Quote0 quotes at depth zero, the form used outside of any quoting
// recursion (e.g. to compare two closed values for definitional
// equality).
func Quote0(v Value) term.CTerm {
	return Quote(0, v)
}

// quoteNeutral reads a stuck computation back into an inferable term.
func quoteNeutral(n int, nv Neutral) term.ITerm {
	switch nv := nv.(type) {
	case NFree:
		if q, ok := nv.Name.(term.Quote); ok {
			return term.Bound{Index: n - q.Depth - 1}
		}
		return term.Free{Name: nv.Name}
	case NApp:
		return term.App{Fun: quoteNeutral(n, nv.Fun), Arg: Quote(n, nv.Arg)}
	case NFst:
		return term.Fst{Pair: quoteNeutral(n, nv.Pair)}
	case NSnd:
		return term.Snd{Pair: quoteNeutral(n, nv.Pair)}
	case NMPairElim:
		x := VFree(term.Quote{Depth: n})
		y := VFree(term.Quote{Depth: n + 1})
		return term.MPairElim{
			Scrutinee: quoteNeutral(n, nv.Scrutinee),
			Body:      Quote(n+2, nv.Body(x, y)),
			Motive:    Quote(n+1, nv.Motive(VFree(term.Quote{Depth: n}))),
		}
	case NMUnitElim:
		return term.MUnitElim{
			Scrutinee: quoteNeutral(n, nv.Scrutinee),
			Body:      Quote(n, nv.Body),
			Motive:    Quote(n+1, nv.Motive(VFree(term.Quote{Depth: n}))),
		}
	default:
		panic(fmt.Sprintf("internal error: unhandled Neutral %T in quote", nv))
	}
}

// EqualValue decides definitional equality of two values by comparing
// their quote0 forms.
func EqualValue(a, b Value) bool {
	return term.EqualCTerm(Quote0(a), Quote0(b))
}
