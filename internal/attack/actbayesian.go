package attack

import (
	"math"
	"math/rand"
	"sort"
)

// ActBayesianParams groups the stopping-criterion and noise knobs.
type ActBayesianParams struct {
	LowerBound     float64
	UpperBound     float64
	Tolerance      float64
	LaplacianScale float64
	SampleRate     float64
}

// ActBayesianResult reports the leakage posterior reached at the end of
// the round, together with how much of it was wrong.
type ActBayesianResult struct {
	TruePosLeak int
	TrueNegLeak int
	PosErr      int
	NegErr      int
}

// sampleLaplace draws from Laplace(0, scale) via inverse-CDF sampling.
func sampleLaplace(rng *rand.Rand, scale float64) float64 {
	u := rng.Float64() - 0.5
	if u >= 0 {
		return -scale * math.Log(1-2*u)
	}
	return scale * math.Log(1+2*u)
}

func maxFloat(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func distinctFloats(values []float64) []float64 {
	seen := make(map[float64]struct{}, len(values))
	var out []float64
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func isFullyPartitioned(posterior []float64) bool {
	distinct := distinctFloats(posterior)
	if len(distinct) != 2 {
		return false
	}
	return (distinct[0] == 0 && distinct[1] == 1) || (distinct[0] == 1 && distinct[1] == 0)
}

// ActBayesian is the posterior-updating MIA (spec §4.7): it maintains a
// per-element membership posterior, repeatedly splits it at a density
// threshold, refines the two halves against Laplace-noised psi-cardinality
// feedback, and absorbs elements to 0/1 once they cross lower/upper bound
// thresholds.
//
// Per-element Laplace noise is redrawn on every posterior index within a
// round (the open question of whether the noise is a single per-round draw
// or one per element is resolved in favor of the latter), though only the
// final draw of a round feeds into that round's cardinality correction —
// mirroring the reference implementation's reused loop variable.
func ActBayesian(rng *rand.Rand, tau int, dataset []int, params ActBayesianParams) ActBayesianResult {
	n := len(dataset)

	laplacianNoise := sampleLaplace(rng, params.LaplacianScale)
	tau--

	summation := 0.0
	for _, v := range dataset {
		summation += float64(v)
	}
	summation += laplacianNoise * summation
	summation = math.Max(summation, 0)
	summation = math.Min(summation, float64(n))
	prior := summation / float64(n)

	posterior := make([]float64, n)
	for i := range posterior {
		posterior[i] = prior
	}
	rng.Shuffle(n, func(i, j int) { posterior[i], posterior[j] = posterior[j], posterior[i] })
	tau--

	for tau >= 0 {
		var positiveBar float64
		if maxFloat(posterior) < 1 {
			positiveBar = maxFloat(posterior) - params.Tolerance
		} else {
			distinct := distinctFloats(posterior)
			if len(distinct) < 2 {
				break
			}
			sort.Sort(sort.Reverse(sort.Float64Slice(distinct)))
			positiveBar = distinct[1] - params.Tolerance
		}

		var positiveSet, negativeSet []int
		expectedCardinality := 0.0
		var lastNoise float64
		for j, p := range posterior {
			lastNoise = sampleLaplace(rng, params.LaplacianScale)
			if p >= positiveBar {
				r := 0
				if rng.Float64() < params.SampleRate {
					r = 1
				}
				if r == 1 {
					positiveSet = append(positiveSet, j)
				} else {
					negativeSet = append(negativeSet, j)
				}
				expectedCardinality += p
			}
		}

		if len(positiveSet) == 0 {
			for _, j := range negativeSet {
				if posterior[j] >= 0.5 {
					posterior[j] = 1
				} else {
					posterior[j] = 0
				}
			}
			continue
		}
		if len(negativeSet) == 0 {
			for _, j := range positiveSet {
				if posterior[j] >= 0.5 {
					posterior[j] = 1
				} else {
					posterior[j] = 0
				}
			}
			continue
		}

		inPositive := make(map[int]struct{}, len(positiveSet))
		for _, j := range positiveSet {
			inPositive[j] = struct{}{}
		}

		realCardinality := 0.0
		for j, v := range dataset {
			if _, ok := inPositive[j]; ok && v == 1 {
				realCardinality++
			}
		}
		realCardinality += lastNoise * 0.1 * realCardinality
		realCardinality = math.Max(realCardinality, 0)
		realCardinality = math.Min(realCardinality, float64(len(positiveSet)))

		inSetPrior := realCardinality / float64(len(positiveSet))
		outSetPrior := (expectedCardinality - realCardinality) / float64(len(negativeSet))

		for _, j := range positiveSet {
			posterior[j] = inSetPrior
		}
		for _, j := range negativeSet {
			posterior[j] = outSetPrior
		}

		for j := range posterior {
			if posterior[j] >= params.UpperBound {
				posterior[j] = 1
			}
			if posterior[j] <= params.LowerBound {
				posterior[j] = 0
			}
		}

		if isFullyPartitioned(posterior) {
			break
		}
		tau--
	}

	errorPos, errorNeg := 0, 0
	truePosLeak, trueNegLeak := 0, 0
	for j, p := range posterior {
		switch {
		case p == 1:
			truePosLeak++
			if dataset[j] == 0 {
				errorPos++
				truePosLeak--
			}
		case p == 0:
			trueNegLeak++
			if dataset[j] == 1 {
				errorNeg++
				trueNegLeak--
			}
		}
	}

	posErr := 0
	if truePosLeak != 0 {
		posErr = errorPos
	}
	negErr := 0
	if trueNegLeak != 0 {
		negErr = errorNeg
	}

	return ActBayesianResult{
		TruePosLeak: truePosLeak,
		TrueNegLeak: trueNegLeak,
		PosErr:      posErr,
		NegErr:      negErr,
	}
}
