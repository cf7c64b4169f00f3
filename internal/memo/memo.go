// Package memo precomputes the gamma/phi tables that drive dyn-path-blazer's
// partition-factor choice: gamma(n,c,tau) is the expected leakage and
// optimal partition size k* for a state of n elements with c
// intersection-positive members and tau protocol calls remaining; phi(n,c)
// is the minimum tau at which gamma's expected leakage first reaches n
// (full leakage).
//
// Unlike the original's string-keyed dict ("S(n,c,tau)"), both tables are
// small-integer indexed: gamma is a per-n ragged array, phi a map keyed by
// a [2]int pair — the keys are small integers, a string encoding was never
// part of the semantics.
package memo

import (
	"fmt"

	"github.com/auroradata-ai/anonpsi-gcms/internal/telemetry"
)

// GammaEntry is one (expected_leakage, k*) pair.
type GammaEntry struct {
	Leakage float64
	KStar   int
}

// Tables holds the built gamma and phi memo spaces for 1 <= n <= NMax.
type Tables struct {
	NMax  int
	gamma [][][]GammaEntry // gamma[n][c][tau], c in [0,n], tau in [0,n]
	phi   map[[2]int]int   // (n,c) -> minimum tau for full leakage
}

// Gamma looks up gamma(n,c,tau). It panics if the state was never
// computed — per spec §7.6 a missing memo entry indicates a build/usage
// mismatch, not a recoverable runtime condition.
func (t *Tables) Gamma(n, c, tau int) GammaEntry {
	if n < 1 || n > t.NMax || c < 0 || c > n || tau < 0 || tau > n {
		telemetry.Error("memo: gamma(%d,%d,%d) requested out of built range [1,%d]", n, c, tau, t.NMax)
		panic(fmt.Sprintf("memo: gamma(%d,%d,%d) out of built range", n, c, tau))
	}
	entry := t.gamma[n][c][tau]
	if entry == (GammaEntry{}) && !(n == 0) {
		// A genuinely-zero entry (tau==0 state) is valid; only reject the
		// case where the slot was never written because the builder broke
		// out of the tau loop before reaching it (spec §4.8's early-exit
		// once full leakage is reached).
		if tau > 0 {
			if maxTau, ok := t.phi[[2]int{n, c}]; ok && tau > maxTau {
				telemetry.Error("memo: gamma(%d,%d,%d) was never computed, builder stopped at phi=%d", n, c, tau, maxTau)
				panic(fmt.Sprintf("memo: gamma(%d,%d,%d) was never computed (phi=%d)", n, c, tau, maxTau))
			}
		}
	}
	return entry
}

// Phi looks up phi(n,c), panicking if it was never recorded.
func (t *Tables) Phi(n, c int) int {
	v, ok := t.phi[[2]int{n, c}]
	if !ok {
		telemetry.Error("memo: phi(%d,%d) requested but was never computed", n, c)
		panic(fmt.Sprintf("memo: phi(%d,%d) was never computed", n, c))
	}
	return v
}

// Build computes gamma and phi for all 1 <= n <= nMax.
func Build(nMax int) (*Tables, error) {
	if nMax < 1 {
		return nil, fmt.Errorf("memo: nMax must be >= 1, got %d", nMax)
	}

	t := &Tables{NMax: nMax, phi: make(map[[2]int]int)}
	t.gamma = make([][][]GammaEntry, nMax+1)
	for n := 1; n <= nMax; n++ {
		t.gamma[n] = make([][]GammaEntry, n+1)
		for c := 0; c <= n; c++ {
			t.gamma[n][c] = make([]GammaEntry, n+1)
		}
	}

	// Base case: n = 1.
	for c := 0; c <= 1; c++ {
		for tau := 0; tau <= 1; tau++ {
			t.gamma[1][c][tau] = GammaEntry{Leakage: 1, KStar: 0}
		}
	}
	t.phi[[2]int{1, 0}] = 0
	t.phi[[2]int{1, 1}] = 0

	for n := 2; n <= nMax; n++ {
		for cN := 0; cN <= (n+1)/2; cN++ {
			reverseC := n - cN

		tauLoop:
			for tau := 0; tau <= n; tau++ {
				switch {
				case cN == 0 || cN == n:
					t.phi[[2]int{n, cN}] = 0
					t.phi[[2]int{n, reverseC}] = 0
					full := GammaEntry{Leakage: float64(n), KStar: 0}
					t.gamma[n][cN][tau] = full
					t.gamma[n][reverseC][tau] = full
					break tauLoop

				case tau >= n:
					full := GammaEntry{Leakage: float64(n), KStar: n / 2}
					t.gamma[n][cN][tau] = full
					t.gamma[n][reverseC][tau] = full

				case tau == 0:
					zero := GammaEntry{Leakage: 0, KStar: 0}
					t.gamma[n][cN][tau] = zero
					t.gamma[n][reverseC][tau] = zero

				default:
					expectedLeakage := 0.0
					maxK := 0

					for k := 1; k <= n/2; k++ {
						leftLeakage, rightLeakage := 0.0, 0.0

						lo := max(0, cN+k-n)
						hi := min(k, cN)
						for c := lo; c <= hi; c++ {
							prob := binom(cN, c) * binom(n-cN, k-c) / binom(n, k)
							leftCallNeed := t.phi[[2]int{k, c}]
							rightCallNeed := t.phi[[2]int{n - k, cN - c}]

							if tau-1 < leftCallNeed {
								leftLeakage += prob * t.gamma[k][c][tau-1].Leakage
								if cN == c || cN-c == n-k {
									leftLeakage += prob * float64(n-k)
								}
							} else {
								leftLeakage += prob * float64(k)
								if tau-1-leftCallNeed < rightCallNeed {
									leftLeakage += prob * t.gamma[n-k][cN-c][tau-1-leftCallNeed].Leakage
								} else {
									leftLeakage += prob * float64(n-k)
								}
							}

							if tau-1 < rightCallNeed {
								rightLeakage += prob * t.gamma[n-k][cN-c][tau-1].Leakage
								if c == 0 || c == k {
									rightLeakage += prob * float64(k)
								}
							} else {
								rightLeakage += prob * float64(n-k)
								if tau-1-rightCallNeed < leftCallNeed {
									rightLeakage += prob * t.gamma[k][c][tau-1-rightCallNeed].Leakage
								} else {
									rightLeakage += prob * float64(k)
								}
							}
						}

						if leftLeakage >= expectedLeakage {
							expectedLeakage = leftLeakage
							maxK = max(maxK, k)
						}
						if rightLeakage >= expectedLeakage {
							expectedLeakage = rightLeakage
							maxK = max(maxK, k)
						}
					}

					entry := GammaEntry{Leakage: expectedLeakage, KStar: maxK}
					t.gamma[n][cN][tau] = entry
					t.gamma[n][reverseC][tau] = entry

					if expectedLeakage >= float64(n) {
						setPhiMin(t.phi, n, cN, tau)
						setPhiMin(t.phi, n, reverseC, tau)
						break tauLoop
					}
				}
			}
		}
	}

	return t, nil
}

func setPhiMin(phi map[[2]int]int, n, c, tau int) {
	key := [2]int{n, c}
	if prev, ok := phi[key]; ok {
		if tau < prev {
			phi[key] = tau
		}
		return
	}
	phi[key] = tau
}

// binom returns n-choose-k as a float64, computed multiplicatively to
// avoid factorial overflow for the n this table is built over.
func binom(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result *= float64(n-i) / float64(i+1)
	}
	return result
}
