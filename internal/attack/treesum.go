package attack

import (
	"container/heap"
	"math"
	"math/rand"
	"sort"

	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
	"github.com/auroradata-ai/anonpsi-gcms/internal/telemetry"
)

// TreeSumParams bounds the offline n-sum search tree-sum-explorer falls
// back to when a direct psi-sum query's branching factor would blow the
// computation budget.
type TreeSumParams struct {
	ComputationBudget int
	LowerBound        int
	UpperBound        int
	Tolerance         float64
}

// nSum returns every distinct n-element sub-multiset of nums whose values
// sum to target, skipping repeated values in sorted order so duplicate
// values don't produce duplicate combinations.
func nSum(nums []int, target, n int) [][]int {
	sorted := append([]int(nil), nums...)
	sort.Ints(sorted)

	var res [][]int
	var backtrack func(rest []int, target, n int, path []int)
	backtrack = func(rest []int, target, n int, path []int) {
		if target < 0 || len(path) > n {
			return
		}
		if target == 0 && len(path) == n {
			res = append(res, append([]int(nil), path...))
			return
		}
		for i := 0; i < len(rest); i++ {
			if i > 0 && rest[i] == rest[i-1] {
				continue
			}
			next := make([]int, len(path)+1)
			copy(next, path)
			next[len(path)] = rest[i]
			backtrack(rest[i+1:], target-rest[i], n, next)
		}
	}
	backtrack(sorted, target, n, nil)
	return res
}

// computationComplexity estimates the log10 cost of exhaustively searching
// a length-many universe for a dense-many-wide combination.
func computationComplexity(length, dense int) float64 {
	exponent := float64(length/dense - 1)
	return math.Log10(math.Pow(float64(length), exponent))
}

// solveEquation binary-searches for the largest candidate-set length whose
// computation complexity fits the remaining tau/computation-budget ratio.
func solveEquation(lowerBound, upperBound, tau, computationBudget, dense int, tol float64) int {
	val := math.Log10(float64(computationBudget) / float64(tau))
	out := 0
	for lowerBound < upperBound {
		middle := (upperBound + lowerBound) / 2
		cur := computationComplexity(middle, dense)
		switch {
		case math.Abs(cur-val) < tol:
			return middle
		case cur > val:
			upperBound = middle - 1
		default:
			out = middle
			lowerBound = middle + 1
		}
	}
	return out
}

// priorityOf mirrors the expected-recovery priority used throughout
// tree-sum-explorer: the full subset size when the candidate list already
// fits the remaining budget, otherwise a discounted size reflecting the
// odds of picking the right candidate within tau more psi-sum calls.
func priorityOf(size, candidates, tau int) float64 {
	if candidates <= tau {
		return float64(size)
	}
	return float64(size) * (1 - math.Pow(1-1/float64(candidates), float64(tau)))
}

// TreeSumExplorer is the n-sum-backed MIA (spec §4.6): it combines an
// offline n-sum search over psi-sum's reported (cardinality, sum) with the
// baseline's density-driven descent, falling back to a randomly sampled
// candidate sub-universe when the exact search would be too expensive.
func TreeSumExplorer(rng *rand.Rand, sumOracle oracle.IntSumOracle, victimX, targetY oracle.Set, tau int, params TreeSumParams) Result {
	zPos := make(oracle.Set)
	zNeg := make(oracle.Set)

	remaining := victimX.Clone()
	for tau > 0 {
		remaining = remaining.Difference(zPos)
		remaining = remaining.Difference(zNeg)
		if len(remaining) == 0 {
			break
		}
		zPos, zNeg, tau = treeSumHelper(rng, sumOracle, remaining, targetY, tau, params, zPos, zNeg)
	}

	return Result{ZPos: zPos, ZNeg: zNeg}
}

func treeSumHelper(rng *rand.Rand, sumOracle oracle.IntSumOracle, victimX, targetY oracle.Set, tau int, params TreeSumParams, zPos, zNeg oracle.Set) (oracle.Set, oracle.Set, int) {
	var ti tieIndexer
	forest := &sumForest{}
	heap.Init(forest)

	currentCardinality, currentSum := sumOracle(victimX, targetY)
	tau--
	if tau == 0 {
		telemetry.Debug("treesum: budget exhausted before a candidate search could start (|victim|=%d)", len(victimX))
		return zPos, zNeg, tau
	}

	candidateVictim := victimX
	if math.Pow(float64(len(victimX)), float64(currentCardinality-1)) >= float64(params.ComputationBudget)/float64(tau) {
		dense := len(victimX) / currentCardinality
		candidateSize := solveEquation(params.LowerBound, params.UpperBound, tau, params.ComputationBudget, dense, params.Tolerance)

		elems := candidateVictim.Slice()
		rng.Shuffle(len(elems), func(i, j int) { elems[i], elems[j] = elems[j], elems[i] })
		if candidateSize > len(elems) {
			candidateSize = len(elems)
		}
		candidateVictim = oracle.NewSet(elems[:candidateSize]...)

		currentCardinality, currentSum = sumOracle(candidateVictim, targetY)
		tau--
	}

	candidateList := nSum(oracle.Ints(candidateVictim), currentSum, currentCardinality)
	heap.Push(forest, sumEntry{
		priority:    -priorityOf(len(candidateVictim), len(candidateList), tau),
		cardinality: currentCardinality,
		sum:         currentSum,
		victim:      candidateVictim,
		candidates:  candidateList,
		tieIdx:      ti.nextIdx(),
	})

	for forest.Len() > 0 {
		top := heap.Pop(forest).(sumEntry)
		victim := top.victim
		currentCardinality = top.cardinality
		currentSum = top.sum
		candidateList = top.candidates

		for len(candidateList) > 1 && tau > 0 {
			leftSet := oracle.IntSet(candidateList[0]...)
			rightSet := victim.Difference(leftSet)

			leftCardinality, leftSum := sumOracle(leftSet, targetY)
			tau--
			rightCardinality := currentCardinality - leftCardinality
			rightSum := currentSum - leftSum

			leftCandidateList := nSum(oracle.Ints(leftSet), leftSum, leftCardinality)
			rightCandidateList := nSum(oracle.Ints(rightSet), rightSum, rightCardinality)

			leftPriority := priorityOf(len(leftSet), len(leftCandidateList), tau)
			rightPriority := priorityOf(len(rightSet), len(rightCandidateList), tau)

			if leftPriority > rightPriority {
				heap.Push(forest, sumEntry{
					priority:    -rightPriority,
					cardinality: rightCardinality,
					sum:         rightSum,
					victim:      rightSet,
					candidates:  rightCandidateList,
					tieIdx:      ti.nextIdx(),
				})
				victim = leftSet
				currentCardinality = leftCardinality
				currentSum = leftSum
				candidateList = leftCandidateList
			} else {
				heap.Push(forest, sumEntry{
					priority:    -leftPriority,
					cardinality: leftCardinality,
					sum:         leftSum,
					victim:      leftSet,
					candidates:  leftCandidateList,
					tieIdx:      ti.nextIdx(),
				})
				victim = rightSet
				currentCardinality = rightCardinality
				currentSum = rightSum
				candidateList = rightCandidateList
			}
		}

		if len(candidateList) == 1 && tau >= 0 {
			winner := oracle.IntSet(candidateList[0]...)
			zPos = zPos.Union(winner)
			zNeg = zNeg.Union(victim.Difference(winner))
		}
	}

	return zPos, zNeg, tau
}
