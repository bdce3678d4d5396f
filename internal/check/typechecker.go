// Package check implements Janus's bidirectional, usage-counting typing
// judgment: inference (inferI) and checking (cType), combined into the
// public entry point IType0.
package check

import (
	"github.com/janus-lang/janus/internal/context"
	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/term"
	"github.com/janus-lang/janus/internal/value"
)

// IType0 is the only entry point into type checking. r is the usage at
// which the caller intends to consume e (One for a normal top-level
// check, Many for "used however many times", Zero for a position that
// will never run). It infers e's type at the corresponding relevance,
// scales the resulting usage by r, and verifies every binder's
// allowance was respected before returning e's type.
func IType0(ctx *context.Context, r semiring.Q, e term.ITerm) (value.Value, error) {
	qs, ty, err := inferI(ctx, semiring.Relevance(r), e)
	if err != nil {
		return nil, err
	}
	qs = context.Scale(r, qs)
	if err := checkMultiplicity(ctx.Types, qs); err != nil {
		return nil, err
	}
	return ty, nil
}

func envFor(ctx *context.Context) value.Env {
	return value.NewEnv(ctx.Names)
}

// freshLocal mints a Local bound to the current context depth, which is
// unique for the lifetime of this recursive typing call (see
// term.Local's doc comment).
func freshLocal(ctx *context.Context) term.Name {
	return term.Local{Index: ctx.Depth()}
}

// discharge verifies that a binder's accumulated usage fits its
// declared allowance and, if so, removes it from the outgoing usage
// map. label identifies the binder for MultiplicityError diagnostics.
func discharge(u context.Usage, n term.Name, ty value.Value, available semiring.Q, label string) (context.Usage, error) {
	used := u.Get(n)
	if !semiring.FitsIn(used, available) {
		loc := label
		return nil, &MultiplicityError{
			Location:  &loc,
			Offenders: []Offender{{Name: n, Type: ty, Used: used, Available: available}},
		}
	}
	return u.Without(n), nil
}

// checkMultiplicity is IType0's final gate. Usage is total over the
// context (an absent name is used Zero times), so this walks every
// binding Γ declares — not just the sparse entries qs happened to
// record — and verifies the usage fits its declared allowance (FitsIn:
// Zero and One must be met exactly, Many admits any usage). A
// linear (One) global that the expression never touched is just as
// much a violation as one consumed twice: assume introduces a
// resource that the checked expression is obliged to account for.
func checkMultiplicity(types *context.TypeEnv, qs context.Usage) error {
	var offenders []Offender
	for _, b := range types.Bindings() {
		used := qs.Get(b.Name)
		if !semiring.FitsIn(used, b.Usage) {
			offenders = append(offenders, Offender{Name: b.Name, Type: b.Type, Used: used, Available: b.Usage})
		}
	}
	if len(offenders) > 0 {
		return &MultiplicityError{Offenders: offenders}
	}
	return nil
}

// inferI is the inference face of the judgment: Γ ⊢ e ⇒ (Usage, τ).
func inferI(ctx *context.Context, r semiring.R, e term.ITerm) (context.Usage, value.Value, error) {
	switch e := e.(type) {
	case term.Ann:
		qsTy, err := cType(ctx.Forget(), semiring.Erased, e.Type, value.VUniverse{})
		if err != nil {
			return nil, nil, err
		}
		_ = qsTy // erased checking is all-Zero by construction; nothing more to verify
		ty := value.EvalC(e.Type, envFor(ctx))
		qs, err := cType(ctx, r, e.Expr, ty)
		if err != nil {
			return nil, nil, err
		}
		return qs, ty, nil

	case term.Bound:
		panic("internal error: iType reached a Bound variable; the checker must substitute a fresh local before descending")

	case term.Free:
		b, ok := ctx.Lookup(e.Name)
		if !ok {
			return nil, nil, &UnknownVarError{Name: e.Name}
		}
		return context.Single(e.Name, semiring.Extend(r)), b.Type, nil

	case term.App:
		qs1, funTy, err := inferI(ctx, r, e.Fun)
		if err != nil {
			return nil, nil, err
		}
		pi, ok := funTy.(value.VPi)
		if !ok {
			return nil, nil, &InferenceError{ExpectedShape: "function type", Actual: funTy, Term: e}
		}
		s := semiring.Mul(pi.Usage, semiring.Extend(r))
		var resultUsage context.Usage
		if s == semiring.Zero {
			if _, err := cType(ctx.Forget(), semiring.Erased, e.Arg, pi.Domain); err != nil {
				return nil, nil, err
			}
			resultUsage = qs1
		} else {
			qs2, err := cType(ctx, semiring.Present, e.Arg, pi.Domain)
			if err != nil {
				return nil, nil, err
			}
			resultUsage = context.Combine(qs1, context.Scale(s, qs2))
		}
		argVal := value.EvalC(e.Arg, envFor(ctx))
		return resultUsage, pi.Cod(argVal), nil

	case term.MPairElim:
		return inferMPairElim(ctx, r, e)

	case term.MUnitElim:
		return inferMUnitElim(ctx, r, e)

	case term.Fst:
		qs, pairTy, err := inferI(ctx, r, e.Pair)
		if err != nil {
			return nil, nil, err
		}
		ap, ok := pairTy.(value.VAPairType)
		if !ok {
			return nil, nil, &InferenceError{ExpectedShape: "additive pair type", Actual: pairTy, Term: e}
		}
		return qs, ap.Fst, nil

	case term.Snd:
		qs, pairTy, err := inferI(ctx, r, e.Pair)
		if err != nil {
			return nil, nil, err
		}
		ap, ok := pairTy.(value.VAPairType)
		if !ok {
			return nil, nil, &InferenceError{ExpectedShape: "additive pair type", Actual: pairTy, Term: e}
		}
		fstVal := value.EvalI(term.Fst{Pair: e.Pair}, envFor(ctx))
		return qs, ap.Snd(fstVal), nil

	default:
		panic("internal error: unhandled ITerm in inferI")
	}
}

func inferMPairElim(ctx *context.Context, r semiring.R, e term.MPairElim) (context.Usage, value.Value, error) {
	qsScrutinee, scrutTy, err := inferI(ctx, r, e.Scrutinee)
	if err != nil {
		return nil, nil, err
	}
	mp, ok := scrutTy.(value.VMPairType)
	if !ok {
		return nil, nil, &InferenceError{ExpectedShape: "multiplicative pair type", Actual: scrutTy, Term: e}
	}

	// Check the motive in the erased context, with a Zero-usage local
	// standing for the (abstract) scrutinee.
	zName := freshLocal(ctx)
	ctxZ := ctx.Forget().Extend(context.Binding{Name: zName, Usage: semiring.Zero, Type: scrutTy})
	motiveOpened := value.SubstC(0, term.Free{Name: zName}, e.Motive)
	if _, err := cType(ctxZ, semiring.Erased, motiveOpened, value.VUniverse{}); err != nil {
		return nil, nil, err
	}

	// Bind the two projections to check the body.
	xUsage := semiring.Mul(mp.Usage, semiring.Extend(r))
	xName := freshLocal(ctx)
	ctxX := ctx.Extend(context.Binding{Name: xName, Usage: xUsage, Type: mp.Domain})
	yType := mp.Cod(value.VFree(xName))
	yName := freshLocal(ctxX)
	ctxXY := ctxX.Extend(context.Binding{Name: yName, Usage: semiring.Extend(r), Type: yType})

	bodyOpened := value.SubstC(1, term.Free{Name: xName}, e.Body)
	bodyOpened = value.SubstC(0, term.Free{Name: yName}, bodyOpened)

	reconstructed := term.Ann{
		Expr: term.MPair{Fst: term.Inf{Term: term.Free{Name: xName}}, Snd: term.Inf{Term: term.Free{Name: yName}}},
		Type: value.Quote0(scrutTy),
	}
	expectedBodyType := value.EvalC(value.SubstC(0, reconstructed, e.Motive), envFor(ctx))

	qsBody, err := cType(ctxXY, r, bodyOpened, expectedBodyType)
	if err != nil {
		return nil, nil, err
	}

	combined := context.Combine(qsScrutinee, qsBody)
	combined, err = discharge(combined, yName, yType, semiring.Extend(r), "second component of pair elimination")
	if err != nil {
		return nil, nil, err
	}
	combined, err = discharge(combined, xName, mp.Domain, xUsage, "first component of pair elimination")
	if err != nil {
		return nil, nil, err
	}

	resultType := value.EvalC(value.SubstC(0, e.Scrutinee, e.Motive), envFor(ctx))
	return combined, resultType, nil
}

func inferMUnitElim(ctx *context.Context, r semiring.R, e term.MUnitElim) (context.Usage, value.Value, error) {
	qsScrutinee, scrutTy, err := inferI(ctx, r, e.Scrutinee)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := scrutTy.(value.VMUnitType); !ok {
		return nil, nil, &InferenceError{ExpectedShape: "multiplicative unit type", Actual: scrutTy, Term: e}
	}

	zName := freshLocal(ctx)
	ctxZ := ctx.Forget().Extend(context.Binding{Name: zName, Usage: semiring.Zero, Type: scrutTy})
	motiveOpened := value.SubstC(0, term.Free{Name: zName}, e.Motive)
	if _, err := cType(ctxZ, semiring.Erased, motiveOpened, value.VUniverse{}); err != nil {
		return nil, nil, err
	}

	reconstructed := term.Ann{Expr: term.MUnit{}, Type: term.MUnitType{}}
	expectedBodyType := value.EvalC(value.SubstC(0, reconstructed, e.Motive), envFor(ctx))

	qsBody, err := cType(ctx, r, e.Body, expectedBodyType)
	if err != nil {
		return nil, nil, err
	}

	combined := context.Combine(qsScrutinee, qsBody)
	resultType := value.EvalC(value.SubstC(0, e.Scrutinee, e.Motive), envFor(ctx))
	return combined, resultType, nil
}

// cType is the checking face of the judgment: Γ ⊢ e ⇐ τ → Usage.
func cType(ctx *context.Context, r semiring.R, c term.CTerm, expected value.Value) (context.Usage, error) {
	switch c := c.(type) {
	case term.Inf:
		qs, actual, err := inferI(ctx, r, c.Term)
		if err != nil {
			return nil, err
		}
		if !value.EqualValue(expected, actual) {
			return nil, &InferenceError{ExpectedShape: value.Quote0(expected).String(), Actual: actual, Term: c.Term}
		}
		return qs, nil

	case term.Lam:
		pi, ok := expected.(value.VPi)
		if !ok {
			return nil, &CheckError{Expected: expected, Term: c}
		}
		usage := semiring.Mul(pi.Usage, semiring.Extend(r))
		xName := freshLocal(ctx)
		ctxX := ctx.Extend(context.Binding{Name: xName, Usage: usage, Type: pi.Domain})
		bodyOpened := value.SubstC(0, term.Free{Name: xName}, c.Body)
		expectedCod := pi.Cod(value.VFree(xName))
		qs, err := cType(ctxX, r, bodyOpened, expectedCod)
		if err != nil {
			return nil, err
		}
		return discharge(qs, xName, pi.Domain, usage, "lambda parameter")

	case term.MPair:
		mp, ok := expected.(value.VMPairType)
		if !ok {
			return nil, &CheckError{Expected: expected, Term: c}
		}
		s := semiring.Mul(mp.Usage, semiring.Extend(r))
		if s == semiring.Zero {
			if _, err := cType(ctx.Forget(), semiring.Erased, c.Fst, mp.Domain); err != nil {
				return nil, err
			}
			fstVal := value.EvalC(c.Fst, envFor(ctx))
			return cType(ctx, r, c.Snd, mp.Cod(fstVal))
		}
		qs1, err := cType(ctx, semiring.Present, c.Fst, mp.Domain)
		if err != nil {
			return nil, err
		}
		fstVal := value.EvalC(c.Fst, envFor(ctx))
		qs2, err := cType(ctx, r, c.Snd, mp.Cod(fstVal))
		if err != nil {
			return nil, err
		}
		return context.Combine(qs2, context.Scale(s, qs1)), nil

	case term.MUnitType:
		return checkAtomicType(ctx, r, c, expected)

	case term.MUnit:
		if _, ok := expected.(value.VMUnitType); !ok {
			return nil, &CheckError{Expected: expected, Term: c}
		}
		return context.NewUsage(), nil

	case term.APairType:
		return checkDependentTypeFormer(ctx, r, c, expected, c.Fst, c.Snd)

	case term.APair:
		ap, ok := expected.(value.VAPairType)
		if !ok {
			return nil, &CheckError{Expected: expected, Term: c}
		}
		qs1, err := cType(ctx, r, c.Fst, ap.Fst)
		if err != nil {
			return nil, err
		}
		fstVal := value.EvalC(c.Fst, envFor(ctx))
		qs2, err := cType(ctx, r, c.Snd, ap.Snd(fstVal))
		if err != nil {
			return nil, err
		}
		return context.Join(qs1, qs2), nil

	case term.AUnitType:
		return checkAtomicType(ctx, r, c, expected)

	case term.AUnit:
		if _, ok := expected.(value.VAUnitType); !ok {
			return nil, &CheckError{Expected: expected, Term: c}
		}
		return context.NewUsage(), nil

	case term.Universe:
		return checkAtomicType(ctx, r, c, expected)

	case term.Pi:
		return checkDependentTypeFormer(ctx, r, c, expected, c.Domain, c.Cod)

	case term.MPairType:
		return checkDependentTypeFormer(ctx, r, c, expected, c.Domain, c.Cod)

	default:
		return nil, &CheckError{Expected: expected, Term: c}
	}
}

// checkAtomicType handles Universe, MUnitType, and AUnitType against
// 𝘜: all three require an erased position and contribute no usage.
func checkAtomicType(ctx *context.Context, r semiring.R, c term.CTerm, expected value.Value) (context.Usage, error) {
	if _, ok := expected.(value.VUniverse); !ok {
		return nil, &CheckError{Expected: expected, Term: c}
	}
	if r != semiring.Erased {
		return nil, &ErasureError{Term: c, Relevance: r}
	}
	return context.NewUsage(), nil
}

// checkDependentTypeFormer handles Pi, MPairType, and APairType against
// 𝘜: all three require an erased position, check the domain, then check
// the codomain under a Zero-usage local bound to the domain.
func checkDependentTypeFormer(ctx *context.Context, r semiring.R, c term.CTerm, expected value.Value, domain, cod term.CTerm) (context.Usage, error) {
	if _, ok := expected.(value.VUniverse); !ok {
		return nil, &CheckError{Expected: expected, Term: c}
	}
	if r != semiring.Erased {
		return nil, &ErasureError{Term: c, Relevance: r}
	}
	ctxErased := ctx.Forget()
	if _, err := cType(ctxErased, semiring.Erased, domain, value.VUniverse{}); err != nil {
		return nil, err
	}
	domainVal := value.EvalC(domain, envFor(ctxErased))
	xName := freshLocal(ctxErased)
	ctxX := ctxErased.Extend(context.Binding{Name: xName, Usage: semiring.Zero, Type: domainVal})
	codOpened := value.SubstC(0, term.Free{Name: xName}, cod)
	if _, err := cType(ctxX, semiring.Erased, codOpened, value.VUniverse{}); err != nil {
		return nil, err
	}
	return context.NewUsage(), nil
}
