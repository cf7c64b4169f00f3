// Package unknowndomain implements the two-server DP collection variant
// for an unbounded/unknown message vocabulary: a client double-encrypts
// each raw message for the server and an auxiliary server, a shuffler
// severs sender linkage, the auxiliary server groups by message identity
// and releases only groups that clear a Laplace-noised threshold, and the
// server performs the final decrypt.
package unknowndomain

import (
	"math"
	"math/rand"
)

// Threshold computes the minimum noised group count required for release
// under (epsilon, delta)-DP: T = 1 + (1/epsilon)*ln(1/(2*delta)).
func Threshold(epsilon, delta float64) float64 {
	return 1 + (1/epsilon)*math.Log(1/(2*delta))
}

// LaplaceScale is the scale parameter paired with Threshold: 1/epsilon.
func LaplaceScale(epsilon float64) float64 {
	return 1 / epsilon
}

// sampleLaplace draws from Laplace(0, scale) via inverse-CDF sampling.
// This noise is explicitly not cryptographically sourced (matching the
// reference implementation's use of a plain PRNG for the DP noise itself,
// documented there as experimental) — only the survivor selection within a
// released group draws from a CSPRNG.
func sampleLaplace(rng *rand.Rand, scale float64) float64 {
	u := rng.Float64() - 0.5
	if u >= 0 {
		return -scale * math.Log(1-2*u)
	}
	return scale * math.Log(1+2*u)
}
