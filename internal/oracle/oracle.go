// Package oracle abstracts the three PSI side-channels an AnonPSI attack
// engine is allowed to call against a target set: cardinality-only,
// full-intersection, and cardinality+sum. Each call costs exactly one unit
// against an attack's protocol-invocation budget (tau); the oracle itself
// is deterministic given its arguments.
package oracle

import "sync/atomic"

// Set is a finite set of opaque string-identifier elements, used by the
// PSI-CA and PSI (full intersection) oracle contracts.
type Set map[string]struct{}

// SumSet maps an element identifier to its integer value, used by the
// PSI-SUM oracle contract.
type SumSet map[string]int

// NewSet builds a Set from a slice of identifiers.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Clone returns a shallow copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Union returns the union of s and other, leaving both untouched.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// Difference returns the elements of s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set, len(s))
	for k := range s {
		if _, ok := other[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// Slice returns the elements of s as a slice, in map iteration order.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// CardinalityOracle returns |a ∩ y|.
type CardinalityOracle func(a, y Set) int

// IntersectionOracle returns a ∩ y.
type IntersectionOracle func(a, y Set) Set

// SumOracle returns (|a ∩ y|, Σ v for v in a∩y).
type SumOracle func(a, y SumSet) (count int, sum int)

// IntSumOracle is the integer-vector PSI-SUM channel tree-sum-explorer
// queries: a and y are sets of integers (encoded via EncodeInt), and the
// oracle reports the cardinality and value-sum of their intersection.
type IntSumOracle func(a, y Set) (count int, sum int)

// CallCounter wraps any of the three oracle kinds and counts invocations,
// so an attack engine's self-imposed budget bookkeeping can be checked
// independently (spec's "oracle-call counter never exceeds tau").
type CallCounter struct {
	calls int64
}

// Calls returns the number of oracle invocations observed so far.
func (c *CallCounter) Calls() int64 {
	return atomic.LoadInt64(&c.calls)
}

// WrapCardinality instruments a CardinalityOracle.
func (c *CallCounter) WrapCardinality(o CardinalityOracle) CardinalityOracle {
	return func(a, y Set) int {
		atomic.AddInt64(&c.calls, 1)
		return o(a, y)
	}
}

// WrapIntersection instruments an IntersectionOracle.
func (c *CallCounter) WrapIntersection(o IntersectionOracle) IntersectionOracle {
	return func(a, y Set) Set {
		atomic.AddInt64(&c.calls, 1)
		return o(a, y)
	}
}

// WrapSum instruments a SumOracle.
func (c *CallCounter) WrapSum(o SumOracle) SumOracle {
	return func(a, y SumSet) (int, int) {
		atomic.AddInt64(&c.calls, 1)
		return o(a, y)
	}
}

// WrapIntSum instruments an IntSumOracle.
func (c *CallCounter) WrapIntSum(o IntSumOracle) IntSumOracle {
	return func(a, y Set) (int, int) {
		atomic.AddInt64(&c.calls, 1)
		return o(a, y)
	}
}
