package crypto

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
)

// HashToCurve maps an element identifier onto edwards25519 so both the
// attacker and the target holder start the blind-DH exchange from the
// same point for the same input string, without either side ever
// transmitting the identifier itself. The identifier is hashed straight
// into a scalar and multiplied against the base point; SetCanonicalBytes
// rejects hashes that don't reduce to a canonical scalar representative,
// in which case the hash is zero-extended to the 64 bytes SetUniformBytes
// takes and reduced modulo the group order instead.
func HashToCurve(input string) *edwards25519.Point {
	h := sha256.Sum256([]byte(input))
	scalar, err := new(edwards25519.Scalar).SetCanonicalBytes(h[:])
	if err != nil {
		wide := make([]byte, 64)
		copy(wide, h[:])
		scalar, _ = new(edwards25519.Scalar).SetUniformBytes(wide)
	}
	return new(edwards25519.Point).ScalarBaseMult(scalar)
}
