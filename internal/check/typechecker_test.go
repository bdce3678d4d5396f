package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janus-lang/janus/internal/context"
	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/term"
	"github.com/janus-lang/janus/internal/value"
)

// idPiType builds ∀(0 x:U)(1 y:x).x, the type shared by every scenario
// below: a function that erases its first, type-level argument and
// consumes its second argument exactly once.
func idPiType() term.CTerm {
	return term.Pi{
		Usage:  semiring.Zero,
		Domain: term.Universe{},
		Cod: term.Pi{
			Usage:  semiring.One,
			Domain: term.Inf{Term: term.Bound{Index: 0}},
			Cod:    term.Inf{Term: term.Bound{Index: 1}},
		},
	}
}

// idTerm builds \x.\y.y, the inhabitant of idPiType.
func idTerm() term.CTerm {
	return term.Lam{Body: term.Lam{Body: term.Inf{Term: term.Bound{Index: 0}}}}
}

// baseContext builds Γ₀ = assume (0 a : U) (1 x : a).
func baseContext() *context.Context {
	ctx := context.New(value.NewNameEnv())
	a := term.Global{Name: "a"}
	ctx = ctx.Extend(context.Binding{Name: a, Usage: semiring.Zero, Type: value.VUniverse{}})
	ctx = ctx.Extend(context.Binding{Name: term.Global{Name: "x"}, Usage: semiring.One, Type: value.VFree(a)})
	return ctx
}

// scenario 1: (\x.\y.y : (0 x:U) -> (1 y:x) -> x) a x succeeds with
// result usage 1 x : a.
func TestScenario1_ApplicationSucceeds(t *testing.T) {
	ctx := baseContext()
	e := term.App{
		Fun: term.App{
			Fun: term.Ann{Expr: idTerm(), Type: idPiType()},
			Arg: term.Inf{Term: term.Free{Name: term.Global{Name: "a"}}},
		},
		Arg: term.Inf{Term: term.Free{Name: term.Global{Name: "x"}}},
	}

	ty, err := IType0(ctx, semiring.One, e)
	require.NoError(t, err)
	assert.True(t, value.EqualValue(value.VFree(term.Global{Name: "a"}), ty),
		"expected result type a, got %s", ty)
}

// scenario 3: referencing an unbound global fails with UnknownVarError,
// independent of whatever is actually being type-checked.
func TestScenario3_UnknownVariable(t *testing.T) {
	ctx := baseContext()
	e := term.Free{Name: term.Global{Name: "b"}}

	_, err := IType0(ctx, semiring.One, e)
	require.Error(t, err)
	var unknown *UnknownVarError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, term.Global{Name: "b"}, unknown.Name)
	assert.Equal(t, KindUnknownVar, unknown.Kind())
}

// scenario 4: assume (0 a:U)(0 b:U)(1 x:a)(1 y:b); checking the
// additive pair (x, y) : a & b at usage 0 leaves x and y both unused, which
// violates their declared linear allowance even though they were
// never mentioned with non-zero usage.
func TestScenario4_UnusedLinearAdditivePairComponents(t *testing.T) {
	ctx := context.New(value.NewNameEnv())
	a := term.Global{Name: "a"}
	b := term.Global{Name: "b"}
	ctx = ctx.Extend(context.Binding{Name: a, Usage: semiring.Zero, Type: value.VUniverse{}})
	ctx = ctx.Extend(context.Binding{Name: b, Usage: semiring.Zero, Type: value.VUniverse{}})
	ctx = ctx.Extend(context.Binding{Name: term.Global{Name: "x"}, Usage: semiring.One, Type: value.VFree(a)})
	ctx = ctx.Extend(context.Binding{Name: term.Global{Name: "y"}, Usage: semiring.One, Type: value.VFree(b)})

	e := term.Ann{
		Expr: term.APair{
			Fst: term.Inf{Term: term.Free{Name: term.Global{Name: "x"}}},
			Snd: term.Inf{Term: term.Free{Name: term.Global{Name: "y"}}},
		},
		Type: term.APairType{
			Fst: term.Inf{Term: term.Free{Name: a}},
			Snd: term.Inf{Term: term.Free{Name: b}},
		},
	}

	_, err := IType0(ctx, semiring.Zero, e)
	require.Error(t, err)
	var mult *MultiplicityError
	require.ErrorAs(t, err, &mult)
	assert.Nil(t, mult.Location)
	require.Len(t, mult.Offenders, 2)

	byName := map[string]Offender{}
	for _, o := range mult.Offenders {
		byName[o.Name.String()] = o
	}
	xOff, ok := byName["x"]
	require.True(t, ok)
	assert.Equal(t, semiring.Zero, xOff.Used)
	assert.Equal(t, semiring.One, xOff.Available)

	yOff, ok := byName["y"]
	require.True(t, ok)
	assert.Equal(t, semiring.Zero, yOff.Used)
	assert.Equal(t, semiring.One, yOff.Available)
}

// scenario 5: pairing a linear function with itself, <id, id>, consumes
// it Many times against a declared allowance of One.
func TestScenario5_LinearFunctionUsedTwice(t *testing.T) {
	ctx := context.New(value.NewNameEnv())
	idType := idPiType()
	idTy := value.EvalC(idType, value.NewEnv(value.NewNameEnv()))
	ctx = ctx.Extend(context.Binding{Name: term.Global{Name: "id"}, Usage: semiring.One, Type: idTy})

	e := term.Ann{
		Expr: term.MPair{
			Fst: term.Inf{Term: term.Free{Name: term.Global{Name: "id"}}},
			Snd: term.Inf{Term: term.Free{Name: term.Global{Name: "id"}}},
		},
		Type: term.MPairType{Usage: semiring.Many, Domain: idType, Cod: idType},
	}

	_, err := IType0(ctx, semiring.One, e)
	require.Error(t, err)
	var mult *MultiplicityError
	require.ErrorAs(t, err, &mult)
	require.Len(t, mult.Offenders, 1)
	assert.Equal(t, term.Global{Name: "id"}, mult.Offenders[0].Name)
	assert.Equal(t, semiring.Many, mult.Offenders[0].Used)
	assert.Equal(t, semiring.One, mult.Offenders[0].Available)
}

// scenario 6: :type id A, where id : ∀(0 x:U)(1 y:x).x and id is
// declared with usage Many (an inspection doesn't spend it), infers
// the partial application's type (1 x:A) -> A.
func TestScenario6_PartialApplicationInfersPiType(t *testing.T) {
	ctx := context.New(value.NewNameEnv())
	aName := term.Global{Name: "A"}
	idTy := value.EvalC(idPiType(), value.NewEnv(value.NewNameEnv()))
	ctx = ctx.Extend(context.Binding{Name: aName, Usage: semiring.Zero, Type: value.VUniverse{}})
	ctx = ctx.Extend(context.Binding{Name: term.Global{Name: "id"}, Usage: semiring.Many, Type: idTy})

	e := term.App{
		Fun: term.Free{Name: term.Global{Name: "id"}},
		Arg: term.Inf{Term: term.Free{Name: aName}},
	}

	ty, err := IType0(ctx, semiring.Many, e)
	require.NoError(t, err)

	pi, ok := ty.(value.VPi)
	require.True(t, ok, "expected a Pi type, got %s", ty)
	assert.Equal(t, semiring.One, pi.Usage)
	assert.True(t, value.EqualValue(value.VFree(aName), pi.Domain))
	assert.True(t, value.EqualValue(value.VFree(aName), pi.Cod(value.VFree(term.Local{Index: 99}))))
}

// property 2: type-checking a type (a term of type U) yields an
// all-Zero usage map.
func TestProperty_ErasedSoundness(t *testing.T) {
	ctx := baseContext()
	_, qs, err := inferIForTest(ctx, semiring.Erased, term.Ann{
		Expr: idPiType(),
		Type: term.Universe{},
	})
	require.NoError(t, err)
	assert.True(t, qs.AllZero())
}

// inferIForTest exposes inferI's usage result to the test without
// widening the package's public surface.
func inferIForTest(ctx *context.Context, r semiring.R, e term.ITerm) (value.Value, context.Usage, error) {
	qs, ty, err := inferI(ctx, r, e)
	return ty, qs, err
}

// property 1: scaling the same successful judgment by r should scale
// its usage pointwise relative to running it at One. Each run's usage
// is scaled by its r, as IType0 does after inferI returns.
func TestProperty_Scaling(t *testing.T) {
	ctx := baseContext()
	e := term.App{
		Fun: term.App{
			Fun: term.Ann{Expr: idTerm(), Type: idPiType()},
			Arg: term.Inf{Term: term.Free{Name: term.Global{Name: "a"}}},
		},
		Arg: term.Inf{Term: term.Free{Name: term.Global{Name: "x"}}},
	}

	_, qsOne, err := inferIForTest(ctx, semiring.Relevance(semiring.One), e)
	require.NoError(t, err)
	qsOne = context.Scale(semiring.One, qsOne)

	_, qsMany, err := inferIForTest(ctx, semiring.Relevance(semiring.Many), e)
	require.NoError(t, err)
	qsMany = context.Scale(semiring.Many, qsMany)

	want := context.Scale(semiring.Many, qsOne)
	assert.Equal(t, want.Get(term.Global{Name: "x"}), qsMany.Get(term.Global{Name: "x"}))
}

// property 5: contextual weakening. Extending Γ with a binding the
// expression never references should not change the result.
func TestProperty_ContextualWeakening(t *testing.T) {
	ctx := baseContext()
	e := term.Inf{Term: term.Free{Name: term.Global{Name: "x"}}}

	withoutExtra, err := IType0(ctx, semiring.One, e.Term)
	require.NoError(t, err)

	extended := ctx.Extend(context.Binding{Name: term.Global{Name: "unused"}, Usage: semiring.Many, Type: value.VUniverse{}})
	withExtra, err := IType0(extended, semiring.One, e.Term)
	require.NoError(t, err)

	assert.True(t, value.EqualValue(withoutExtra, withExtra))
}
