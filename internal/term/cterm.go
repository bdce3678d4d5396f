package term

import (
	"fmt"

	"github.com/janus-lang/janus/internal/semiring"
)

// CTerm is a checkable term: one that needs an expected type to make
// sense of (a λ-abstraction, a pair introduction, a type former).
type CTerm interface {
	String() string
	cTerm()
}

// Inf embeds an inferable term in checkable position (the `Inf(e)` rule:
// infer e, then compare against the expectation).
type Inf struct {
	Term ITerm
}

func (Inf) cTerm() {}
func (i Inf) String() string { return i.Term.String() }

// Lam is a λ-abstraction; its bound variable is de Bruijn index 0 inside
// Body.
type Lam struct {
	Body CTerm
}

func (Lam) cTerm() {}
func (l Lam) String() string { return fmt.Sprintf("(\\ -> %s)", l.Body) }

// Universe is 𝘜, the type of (small) types.
type Universe struct{}

func (Universe) cTerm() {}
func (Universe) String() string { return "U" }

// Pi is the dependent function type `(q x : A) -> B`, where B binds its
// own index 0 to the domain's value.
type Pi struct {
	Usage  semiring.Q
	Domain CTerm
	Cod    CTerm
}

func (Pi) cTerm() {}
func (p Pi) String() string { return fmt.Sprintf("((%s _ : %s) -> %s)", p.Usage, p.Domain, p.Cod) }

// MPairType is the multiplicative (tensor) pair type `(q x : A) * B`.
type MPairType struct {
	Usage  semiring.Q
	Domain CTerm
	Cod    CTerm
}

func (MPairType) cTerm() {}
func (m MPairType) String() string {
	return fmt.Sprintf("((%s _ : %s) * %s)", m.Usage, m.Domain, m.Cod)
}

// MPair is the introduction form `<e1, e2>` of a multiplicative pair.
type MPair struct {
	Fst CTerm
	Snd CTerm
}

func (MPair) cTerm() {}
func (m MPair) String() string { return fmt.Sprintf("<%s, %s>", m.Fst, m.Snd) }

// MUnitType is the multiplicative unit type `I`.
type MUnitType struct{}

func (MUnitType) cTerm() {}
func (MUnitType) String() string { return "I" }

// MUnit is the sole inhabitant of `I`.
type MUnit struct{}

func (MUnit) cTerm() {}
func (MUnit) String() string { return "()" }

// APairType is the additive pair type `A & B` (B may depend on fst).
type APairType struct {
	Fst CTerm
	Snd CTerm
}

func (APairType) cTerm() {}
func (a APairType) String() string { return fmt.Sprintf("(%s & %s)", a.Fst, a.Snd) }

// APair is the introduction form `(e1, e2)` of an additive pair.
type APair struct {
	Fst CTerm
	Snd CTerm
}

func (APair) cTerm() {}
func (a APair) String() string { return fmt.Sprintf("(%s, %s)", a.Fst, a.Snd) }

// AUnitType is the additive unit type `T`.
type AUnitType struct{}

func (AUnitType) cTerm() {}
func (AUnitType) String() string { return "T" }

// AUnit is the sole inhabitant of `T`.
type AUnit struct{}

func (AUnit) cTerm() {}
func (AUnit) String() string { return "<>" }
