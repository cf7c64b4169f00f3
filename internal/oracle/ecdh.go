package oracle

import (
	"encoding/hex"

	"filippo.io/edwards25519"

	"github.com/auroradata-ai/anonpsi-gcms/internal/crypto"
)

// ECDHOracle is a concrete, cryptographically real two-party PSI
// implementation: it adapts the blind-Diffie-Hellman protocol the teacher
// used between a networked receiver and sender (internal/server/psi.go)
// into a single in-process call. There is no socket: both parties run in
// the same goroutine, exchanging only the values the wire protocol would
// have carried.
//
// Party A (the attacker) blinds every element of its query set with a
// fresh per-element scalar; Party B (the target holder) re-blinds each
// point with its own per-call secret; Party A unblinds the result and
// matches its hashed key against Party B's re-blinded (hashed) index of Y.
// This is
// exactly the teacher's receiver/sender roles, collapsed to direct
// function calls.
type ECDHOracle struct {
	y Set
}

// NewECDHOracle builds an oracle whose target set is y. y's elements are
// hashed to curve points fresh on every call (matching HashToCurve's
// statelessness in the teacher's protocol).
func NewECDHOracle(y Set) *ECDHOracle {
	return &ECDHOracle{y: y.Clone()}
}

// memberKeys re-blinds every element of y under secret s and returns the
// set of resulting point-derived keys — this is Party B's index build in
// psi.go's RunPSISender.
func memberKeys(y Set, s *edwards25519.Scalar) map[string]struct{} {
	keys := make(map[string]struct{}, len(y))
	for tok := range y {
		p := crypto.HashToCurve(tok)
		sp := new(edwards25519.Point).ScalarMult(s, p)
		keys[hex.EncodeToString(crypto.PointKey(sp))] = struct{}{}
	}
	return keys
}

// Intersection runs the blind-ECDH protocol between a and the oracle's
// fixed target set y, returning a ∩ y.
func (o *ECDHOracle) Intersection(a Set) Set {
	s := crypto.RandomScalar() // Party B's secret, fresh per call
	targetKeys := memberKeys(o.y, s)

	out := make(Set)
	for tok := range a {
		p := crypto.HashToCurve(tok)
		q, r := crypto.BlindPoint(p)   // Party A blinds
		qp := crypto.ReblindPoint(q, s) // Party B re-blinds
		pp := crypto.UnblindPoint(qp, r) // Party A unblinds: r^-1 * s * P = s * P
		key := hex.EncodeToString(crypto.PointKey(pp))
		if _, ok := targetKeys[key]; ok {
			out[tok] = struct{}{}
		}
	}
	return out
}

// Cardinality runs the same protocol and returns only |a ∩ y|.
func (o *ECDHOracle) Cardinality(a Set) int {
	return len(o.Intersection(a))
}

// AsCardinalityOracle adapts o to the CardinalityOracle contract. The
// target set y is ignored per call since it is fixed at construction —
// callers that need a different y per call should build a fresh
// ECDHOracle, matching the teacher's protocol where the sender's secret
// and index are scoped to one connection.
func (o *ECDHOracle) AsCardinalityOracle() CardinalityOracle {
	return func(a, _ Set) int { return o.Cardinality(a) }
}

// AsIntersectionOracle adapts o to the IntersectionOracle contract.
func (o *ECDHOracle) AsIntersectionOracle() IntersectionOracle {
	return func(a, _ Set) Set { return o.Intersection(a) }
}
