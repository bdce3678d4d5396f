package value

import (
	"testing"

	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/term"
	"github.com/janus-lang/janus/testutil"
)

// identityApplication builds `(\x -> \y -> y : (0 x:U) -> (1 y:x) -> x) a x`,
// the first concrete scenario from the typing judgment's test table: an
// erased type parameter threaded through a linear identity function.
func identityApplication() term.ITerm {
	idTerm := term.Ann{
		Expr: term.Lam{Body: term.Lam{Body: term.Inf{Term: term.Bound{Index: 0}}}},
		Type: term.Pi{
			Usage:  semiring.Zero,
			Domain: term.Universe{},
			Cod: term.Pi{
				Usage:  semiring.One,
				Domain: term.Inf{Term: term.Bound{Index: 0}},
				Cod:    term.Inf{Term: term.Bound{Index: 1}},
			},
		},
	}
	appliedToA := term.App{Fun: idTerm, Arg: term.Inf{Term: term.Free{Name: term.Global{Name: "a"}}}}
	return term.App{Fun: appliedToA, Arg: term.Inf{Term: term.Free{Name: term.Global{Name: "x"}}}}
}

// TestEvalQuoteRoundTripGolden pins the evaluator+quoter's normal form
// for a fixed term against a committed golden file (property #3 in
// spec.md §8: quote0(eval(e)) is e's normal form).
func TestEvalQuoteRoundTripGolden(t *testing.T) {
	e := identityApplication()
	got := Quote0(EvalI(e, NewEnv(NewNameEnv())))
	testutil.CompareWithGolden(t, "quote", "identity_application", got.String())
}

// TestEvalQuoteIdempotent checks property #4: re-running eval/quote on
// an already-normal term is a no-op.
func TestEvalQuoteIdempotent(t *testing.T) {
	e := identityApplication()
	once := Quote0(EvalI(e, NewEnv(NewNameEnv())))
	twice := Quote0(EvalC(once, NewEnv(NewNameEnv())))
	if once.String() != twice.String() {
		t.Fatalf("normalization not idempotent: %s != %s", once, twice)
	}
}
