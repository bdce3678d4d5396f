package check

import (
	"fmt"
	"strings"

	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/term"
	"github.com/janus-lang/janus/internal/value"
)

// ErrorKind identifies which member of the failure taxonomy an Error is.
type ErrorKind string

const (
	KindMultiplicity ErrorKind = "multiplicity"
	KindErasure      ErrorKind = "erasure"
	KindInference    ErrorKind = "inference"
	KindCheck        ErrorKind = "check"
	KindUnknownVar   ErrorKind = "unknown_var"
)

// Error is the common interface every taxonomy member satisfies, on top
// of the standard `error` interface, so callers (the shell, tests) can
// switch on Kind() without type-asserting every concrete struct.
type Error interface {
	error
	Kind() ErrorKind
}

// Offender names a single binder whose accumulated usage did not fit
// its declared allowance.
type Offender struct {
	Name      term.Name
	Type      value.Value
	Used      semiring.Q
	Available semiring.Q
}

func (o Offender) String() string {
	return fmt.Sprintf("%s : %s (used %s, available %s)", o.Name, o.Type, o.Used, o.Available)
}

// MultiplicityError reports that one or more variables were consumed
// more than their declared usage allows. Location, when present,
// identifies which binder's discharge produced the violation (e.g.
// "lambda parameter", "second component of pair elimination").
type MultiplicityError struct {
	Location  *string
	Offenders []Offender
}

func (e *MultiplicityError) Kind() ErrorKind { return KindMultiplicity }
func (e *MultiplicityError) Error() string {
	parts := make([]string, len(e.Offenders))
	for i, o := range e.Offenders {
		parts[i] = o.String()
	}
	msg := fmt.Sprintf("multiplicity violation: %s", strings.Join(parts, "; "))
	if e.Location != nil {
		msg = fmt.Sprintf("%s: %s", *e.Location, msg)
	}
	return msg
}

// ErasureError reports that a term which must appear only in an erased
// position (a type former) was checked at non-zero relevance.
type ErasureError struct {
	Term      term.CTerm
	Relevance semiring.R
}

func (e *ErasureError) Kind() ErrorKind { return KindErasure }
func (e *ErasureError) Error() string {
	return fmt.Sprintf("erasure violation: %s must be erased, but was checked at relevance %s", e.Term, e.Relevance)
}

// InferenceError reports that an inferred type did not match what was
// expected — either a concrete type (the Inf(e) rule) or a structural
// shape (e.g. App expecting a Pi).
type InferenceError struct {
	ExpectedShape string
	Actual        value.Value
	Term          term.ITerm
}

func (e *InferenceError) Kind() ErrorKind { return KindInference }
func (e *InferenceError) Error() string {
	return fmt.Sprintf("type mismatch in %s: expected %s, got %s", e.Term, e.ExpectedShape, e.Actual)
}

// CheckError reports that no checking rule applies to a checkable term
// against its expected type (e.g. a Lam checked against a non-Pi).
type CheckError struct {
	Expected value.Value
	Term     term.CTerm
}

func (e *CheckError) Kind() ErrorKind { return KindCheck }
func (e *CheckError) Error() string {
	return fmt.Sprintf("cannot check %s against %s", e.Term, e.Expected)
}

// UnknownVarError reports a free variable absent from the context.
type UnknownVarError struct {
	Name term.Name
}

func (e *UnknownVarError) Kind() ErrorKind { return KindUnknownVar }
func (e *UnknownVarError) Error() string {
	return fmt.Sprintf("unknown variable: %s", e.Name)
}
