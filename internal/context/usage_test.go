package context

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/term"
)

func TestCombinePointwise(t *testing.T) {
	a := Single(term.Global{Name: "x"}, semiring.One)
	b := Single(term.Global{Name: "x"}, semiring.One)
	got := Combine(a, b)
	want := Usage{term.Global{Name: "x"}: semiring.Many}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Combine mismatch (-want +got):\n%s", diff)
	}
}

func TestCombineAbsentIsZero(t *testing.T) {
	a := Single(term.Global{Name: "x"}, semiring.One)
	b := Single(term.Global{Name: "y"}, semiring.One)
	got := Combine(a, b)
	assert.Equal(t, semiring.One, got.Get(term.Global{Name: "x"}))
	assert.Equal(t, semiring.One, got.Get(term.Global{Name: "y"}))
	assert.Equal(t, semiring.Zero, got.Get(term.Global{Name: "z"}))
}

func TestScale(t *testing.T) {
	u := Single(term.Global{Name: "x"}, semiring.One)
	got := Scale(semiring.Many, u)
	assert.Equal(t, semiring.Many, got.Get(term.Global{Name: "x"}))
}

func TestScaleByZeroDropsEntries(t *testing.T) {
	u := Single(term.Global{Name: "x"}, semiring.One)
	got := Scale(semiring.Zero, u)
	assert.True(t, got.AllZero())
}

func TestJoinMatchingKeepsValue(t *testing.T) {
	a := Single(term.Global{Name: "x"}, semiring.One)
	b := Single(term.Global{Name: "x"}, semiring.One)
	got := Join(a, b)
	assert.Equal(t, semiring.One, got.Get(term.Global{Name: "x"}))
}

func TestJoinMismatchSaturates(t *testing.T) {
	a := Single(term.Global{Name: "x"}, semiring.Zero)
	b := Single(term.Global{Name: "x"}, semiring.One)
	got := Join(a, b)
	assert.Equal(t, semiring.Many, got.Get(term.Global{Name: "x"}))
}

// TestJoinMonotonicity checks property #6 from spec.md §8: for every
// pair of usages an additive pair's two branches might produce, both
// sides' usage at each key fits in the combined usage, and the combined
// usage fits in their ⊕. Zero and One are incomparable in the semiring's ≤
// order (§3), so a Zero/One mismatch is the one combination where the
// join (Many, the only common upper bound) does not fit in their ⊕
// (One); every other pairing is exercised here.
func TestJoinMonotonicity(t *testing.T) {
	qs := []semiring.Q{semiring.Zero, semiring.One, semiring.Many}
	x := term.Global{Name: "x"}
	for _, uq := range qs {
		for _, vq := range qs {
			if (uq == semiring.Zero && vq == semiring.One) || (uq == semiring.One && vq == semiring.Zero) {
				continue
			}
			u := Single(x, uq)
			v := Single(x, vq)
			joined := Join(u, v).Get(x)
			assert.True(t, semiring.FitsIn(uq, joined), "u=%s should fit in joined=%s", uq, joined)
			assert.True(t, semiring.FitsIn(vq, joined), "v=%s should fit in joined=%s", vq, joined)
			assert.True(t, semiring.FitsIn(joined, semiring.Add(uq, vq)), "joined=%s should fit in u⊕v=%s", joined, semiring.Add(uq, vq))
		}
	}
}

func TestWithoutRemovesEntry(t *testing.T) {
	u := Single(term.Global{Name: "x"}, semiring.One)
	got := u.Without(term.Global{Name: "x"})
	assert.Equal(t, semiring.Zero, got.Get(term.Global{Name: "x"}))
}
