package term

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janus-lang/janus/internal/semiring"
)

func TestEqualITermBound(t *testing.T) {
	assert.True(t, EqualITerm(Bound{0}, Bound{0}))
	assert.False(t, EqualITerm(Bound{0}, Bound{1}))
}

func TestEqualITermFreeByName(t *testing.T) {
	assert.True(t, EqualITerm(Free{Global{"a"}}, Free{Global{"a"}}))
	assert.False(t, EqualITerm(Free{Global{"a"}}, Free{Global{"b"}}))
	assert.False(t, EqualITerm(Free{Global{"a"}}, Free{Local{0}}))
}

func TestEqualCTermPiUsageMatters(t *testing.T) {
	p1 := Pi{Usage: semiring.One, Domain: Inf{Free{Global{"a"}}}, Cod: Universe{}}
	p2 := Pi{Usage: semiring.Zero, Domain: Inf{Free{Global{"a"}}}, Cod: Universe{}}
	assert.True(t, EqualCTerm(p1, p1))
	assert.False(t, EqualCTerm(p1, p2))
}

func TestEqualCTermStructuralDescent(t *testing.T) {
	lam := Lam{Body: Inf{App{Fun: Bound{0}, Arg: Inf{Bound{1}}}}}
	assert.True(t, EqualCTerm(lam, Lam{Body: Inf{App{Fun: Bound{0}, Arg: Inf{Bound{1}}}}}))
	assert.False(t, EqualCTerm(lam, Lam{Body: Inf{Bound{0}}}))
}
