// Package value implements Janus's semantic domain: weak-head normal
// form values, the evaluator that produces them, quotation back to
// syntax, and capture-avoiding substitution on raw terms.
package value

import (
	"fmt"

	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/term"
)

// Closure1 is a host-level function standing in for a value-dependent
// codomain or a λ-body: Pi/MPairType codomains and Lam bodies are all
// represented this way rather than as re-interpreted syntax.
type Closure1 func(Value) Value

// Closure2 is the two-argument analogue, used for the body of a
// multiplicative-pair elimination (which binds both projections).
type Closure2 func(Value, Value) Value

// Value is a term in weak-head normal form.
type Value interface {
	isValue()
	String() string
}

// VUniverse is the value of Universe, 𝘜.
type VUniverse struct{}

func (VUniverse) isValue()      {}
func (VUniverse) String() string { return "U" }

// VPi is the value of a dependent function type `(q x:A) -> B`.
type VPi struct {
	Usage  semiring.Q
	Domain Value
	Cod    Closure1
}

func (VPi) isValue() {}
func (p VPi) String() string {
	return fmt.Sprintf("((%s _ : %s) -> <closure>)", p.Usage, p.Domain)
}

// VLam is a λ-abstraction value; applying it calls the closure.
type VLam struct {
	Body Closure1
}

func (VLam) isValue()      {}
func (VLam) String() string { return "<lambda>" }

// VMPairType is the value of a multiplicative (tensor) pair type.
type VMPairType struct {
	Usage  semiring.Q
	Domain Value
	Cod    Closure1
}

func (VMPairType) isValue() {}
func (m VMPairType) String() string {
	return fmt.Sprintf("((%s _ : %s) * <closure>)", m.Usage, m.Domain)
}

// VMPair is the value of a multiplicative pair introduction `<v1, v2>`.
type VMPair struct {
	Fst, Snd Value
}

func (VMPair) isValue()      {}
func (m VMPair) String() string { return fmt.Sprintf("<%s, %s>", m.Fst, m.Snd) }

// VMUnitType is the value of the multiplicative unit type `I`.
type VMUnitType struct{}

func (VMUnitType) isValue()      {}
func (VMUnitType) String() string { return "I" }

// VMUnit is the sole value of VMUnitType.
type VMUnit struct{}

func (VMUnit) isValue()      {}
func (VMUnit) String() string { return "()" }

// VAPairType is the value of an additive pair type `A & B`, where the
// second component's type may depend on the first projection's value.
type VAPairType struct {
	Fst Value
	Snd Closure1
}

func (VAPairType) isValue() {}
func (a VAPairType) String() string { return fmt.Sprintf("(%s & <closure>)", a.Fst) }

// VAPair is the value of an additive pair introduction `(v1, v2)`.
type VAPair struct {
	Fst, Snd Value
}

func (VAPair) isValue()      {}
func (a VAPair) String() string { return fmt.Sprintf("(%s, %s)", a.Fst, a.Snd) }

// VAUnitType is the value of the additive unit type `T`.
type VAUnitType struct{}

func (VAUnitType) isValue()      {}
func (VAUnitType) String() string { return "T" }

// VAUnit is the sole value of VAUnitType.
type VAUnit struct{}

func (VAUnit) isValue()      {}
func (VAUnit) String() string { return "<>" }

// VNeutral wraps a stuck computation: one that cannot reduce further
// because it is blocked on a free variable.
type VNeutral struct {
	Neutral Neutral
}

func (VNeutral) isValue()      {}
func (n VNeutral) String() string { return n.Neutral.String() }

// Neutral is a stuck elimination spine rooted at a free variable.
type Neutral interface {
	isNeutral()
	String() string
}

// NFree is a stuck variable occurrence.
type NFree struct {
	Name term.Name
}

func (NFree) isNeutral()      {}
func (n NFree) String() string { return n.Name.String() }

// NApp is a stuck application: the function position is neutral.
type NApp struct {
	Fun Neutral
	Arg Value
}

func (NApp) isNeutral()      {}
func (n NApp) String() string { return fmt.Sprintf("(%s %s)", n.Fun, n.Arg) }

// NFst is a stuck first projection.
type NFst struct {
	Pair Neutral
}

func (NFst) isNeutral()      {}
func (n NFst) String() string { return fmt.Sprintf("fst %s", n.Pair) }

// NSnd is a stuck second projection.
type NSnd struct {
	Pair Neutral
}

func (NSnd) isNeutral()      {}
func (n NSnd) String() string { return fmt.Sprintf("snd %s", n.Pair) }

// NMPairElim is a stuck multiplicative-pair elimination: the scrutinee is
// neutral, so Body (which expects the two projections) and Motive (which
// expects the reconstructed pair) are kept as closures rather than
// applied.
type NMPairElim struct {
	Scrutinee Neutral
	Body      Closure2
	Motive    Closure1
}

func (NMPairElim) isNeutral()      {}
func (n NMPairElim) String() string { return fmt.Sprintf("(let* ... = %s in ...)", n.Scrutinee) }

// NMUnitElim is a stuck multiplicative-unit elimination.
type NMUnitElim struct {
	Scrutinee Neutral
	Body      Value
	Motive    Closure1
}

func (NMUnitElim) isNeutral()      {}
func (n NMUnitElim) String() string { return fmt.Sprintf("(let () = %s in ...)", n.Scrutinee) }

// VFree injects a free name as a stuck value.
func VFree(n term.Name) Value {
	return VNeutral{Neutral: NFree{Name: n}}
}
