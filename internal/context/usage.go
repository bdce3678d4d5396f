package context

import (
	"sort"

	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/term"
)

// Usage maps a Name to how many times it has been consumed so far; an
// absent entry is equivalent to Zero. Iteration order is never
// significant to correctness, only to diagnostics, where Entries sorts
// for determinism.
type Usage map[term.Name]semiring.Q

// NewUsage returns an empty usage map.
func NewUsage() Usage {
	return Usage{}
}

// Single builds a usage map with exactly one entry, or an empty map when
// q is Zero.
func Single(n term.Name, q semiring.Q) Usage {
	if q == semiring.Zero {
		return Usage{}
	}
	return Usage{n: q}
}

// Get returns the usage recorded for n, or Zero if absent.
func (u Usage) Get(n term.Name) semiring.Q {
	if q, ok := u[n]; ok {
		return q
	}
	return semiring.Zero
}

// Combine merges two usage maps pointwise by ⊕ (absent ≡ Zero).
func Combine(a, b Usage) Usage {
	out := make(Usage, len(a)+len(b))
	for n, q := range a {
		out[n] = q
	}
	for n, q := range b {
		out[n] = semiring.Add(out[n], q)
	}
	return dropZeros(out)
}

// Join merges two usage maps by the least-upper-bound ⊔, the rule an
// additive pair's two branches combine under (since only one branch is
// ever actually consumed at runtime).
func Join(a, b Usage) Usage {
	out := make(Usage, len(a)+len(b))
	seen := make(map[term.Name]bool, len(a)+len(b))
	for n := range a {
		seen[n] = true
	}
	for n := range b {
		seen[n] = true
	}
	for n := range seen {
		out[n] = semiring.Join(a.Get(n), b.Get(n))
	}
	return dropZeros(out)
}

// Scale maps every entry through (q ⊗ ·), the rule applied when a
// sub-term's usage is multiplied by the relevance/usage of its
// surrounding position.
func Scale(q semiring.Q, u Usage) Usage {
	out := make(Usage, len(u))
	for n, r := range u {
		out[n] = semiring.Mul(q, r)
	}
	return dropZeros(out)
}

// Without returns u with n's entry removed, used when a binder is
// discharged and its local no longer needs tracking in the outgoing
// usage.
func (u Usage) Without(n term.Name) Usage {
	out := make(Usage, len(u))
	for k, v := range u {
		if !k.Equal(n) {
			out[k] = v
		}
	}
	return out
}

func dropZeros(u Usage) Usage {
	out := make(Usage, len(u))
	for n, q := range u {
		if q != semiring.Zero {
			out[n] = q
		}
	}
	return out
}

// Entry is a single (name, usage) pair, used when a deterministic
// ordering is needed for diagnostics.
type Entry struct {
	Name  term.Name
	Usage semiring.Q
}

// Entries returns u's contents sorted by name string, for stable error
// messages and tests.
func (u Usage) Entries() []Entry {
	out := make([]Entry, 0, len(u))
	for n, q := range u {
		out = append(out, Entry{Name: n, Usage: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name.String() < out[j].Name.String() })
	return out
}

// AllZero reports whether every entry in u is Zero (equivalently,
// whether u is empty once zero entries are dropped) — the invariant an
// erased sub-judgment must satisfy on return.
func (u Usage) AllZero() bool {
	for _, q := range u {
		if q != semiring.Zero {
			return false
		}
	}
	return true
}
