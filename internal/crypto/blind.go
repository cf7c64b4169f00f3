// Package crypto holds the blind-Diffie-Hellman primitives the MIA oracle
// layer runs its cryptographically real PSI-CA channel over
// (internal/oracle/ecdh.go's ECDHOracle). The protocol has two roles: the
// attacker, who blinds each element of its query set before sending it
// across, and the target holder, who re-blinds whatever it receives with
// its own per-call secret. Neither role ever learns the other's secret
// scalar; only the re-blinded point survives the round trip.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"log"

	"filippo.io/edwards25519"
)

// RandomScalar draws a uniformly-random scalar from edwards25519's scalar
// field. The target holder calls this once per Intersection/Cardinality
// call to mint a fresh re-blinding secret; nothing about that secret is
// ever transmitted.
func RandomScalar() *edwards25519.Scalar {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("crypto: reading randomness for scalar: %v", err)
	}
	s, err := new(edwards25519.Scalar).SetUniformBytes(buf)
	if err != nil {
		log.Fatalf("crypto: deriving scalar from randomness: %v", err)
	}
	return s
}

// BlindPoint is the attacker's first move: it draws a fresh blinding
// scalar r and returns (Q, r) where Q = r·P. P never leaves this call in
// the clear once blinded.
func BlindPoint(P *edwards25519.Point) (*edwards25519.Point, *edwards25519.Scalar) {
	r := RandomScalar()
	Q := new(edwards25519.Point).ScalarMult(r, P)
	return Q, r
}

// ReblindPoint is the target holder's move: given the attacker's blinded
// point Q, it applies its own secret s and returns Q' = s·Q. Because
// scalar multiplication commutes, Q' = s·(r·P) = r·(s·P) — the attacker
// can later strip r without ever learning s or s·P directly.
func ReblindPoint(Q *edwards25519.Point, s *edwards25519.Scalar) *edwards25519.Point {
	return new(edwards25519.Point).ScalarMult(s, Q)
}

// UnblindPoint is the attacker's second move: given the target holder's
// re-blinded Q' and its own blinding scalar r, it strips r to recover
// s·P = r⁻¹·Q'. This is the value the attacker hashes with PointKey and
// compares against the target holder's own re-blinded index.
func UnblindPoint(Qp *edwards25519.Point, r *edwards25519.Scalar) *edwards25519.Point {
	rInv := new(edwards25519.Scalar).Invert(r)
	return new(edwards25519.Point).ScalarMult(rInv, Qp)
}

// PointKey collapses a curve point to a comparable 32-byte key via
// SHA-256 so that two parties' independently-computed s·P values can be
// matched by byte equality instead of point equality.
func PointKey(pt *edwards25519.Point) []byte {
	h := sha256.Sum256(pt.Bytes())
	return h[:]
}
