package attack

import (
	"container/heap"
	"math/rand"

	"github.com/auroradata-ai/anonpsi-gcms/internal/memo"
	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
	"github.com/auroradata-ai/anonpsi-gcms/internal/telemetry"
)

// dynEntry is a forest entry for dyn-path-blazer: unlike the tree-based
// engines it carries the live sub-universe directly (not a precomputed
// tree node), since the partition point is chosen dynamically from the
// memo tables at each descent step rather than fixed in advance.
type dynEntry struct {
	priority    float64
	cardinality int
	tieIdx      int64
	node        oracle.Set
}

type dynForest []dynEntry

func (f dynForest) Len() int { return len(f) }
func (f dynForest) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].tieIdx < f[j].tieIdx
}
func (f dynForest) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *dynForest) Push(x any)   { *f = append(*f, x.(dynEntry)) }
func (f *dynForest) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

var _ heap.Interface = (*dynForest)(nil)

// dynPriority mirrors min(-c/n, -1+c/n): the forest favors whichever
// subset is CLOSER to pure-positive or pure-negative, not just the
// densest one.
func dynPriority(cardinality, size int) float64 {
	ratio := float64(cardinality) / float64(size)
	return min(-ratio, -1+ratio)
}

// DynPathBlazer is the dynamic-programming MIA (spec §4.5): at each descent
// step it consults the memo tables for the DP-optimal partition size k*,
// falling back to an even split only when phi(n,c) shows the state would
// reach full leakage before the remaining budget is exhausted anyway.
//
// Branch direction is an open question the spec's prose leaves ambiguous;
// this follows the reference implementation literally: an even split is
// taken when phi(n,c) < tau-protocol_call_num (budget to spare), and the
// memo'd k* otherwise.
func DynPathBlazer(rng *rand.Rand, card oracle.CardinalityOracle, tables *memo.Tables, victimX, targetY oracle.Set, tau int) Result {
	zPos := make(oracle.Set)
	zNeg := make(oracle.Set)

	var ti tieIndexer
	forest := &dynForest{}
	heap.Init(forest)

	initialCardinality := card(victimX, targetY)
	callsUsed := 1

	shuffled := victimX.Slice()
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	root := oracle.NewSet(shuffled...)

	heap.Push(forest, dynEntry{
		priority:    dynPriority(initialCardinality, len(root)),
		cardinality: initialCardinality,
		tieIdx:      ti.nextIdx(),
		node:        root,
	})

	for forest.Len() > 0 && callsUsed <= tau {
		top := heap.Pop(forest).(dynEntry)
		node := top.node
		currentCardinality := top.cardinality

		for currentCardinality > 0 && currentCardinality < len(node) && callsUsed < tau {
			maxCallNum := tables.Phi(len(node), currentCardinality)

			var k int
			if maxCallNum < tau-callsUsed {
				k = len(node) / 2
			} else {
				k = tables.Gamma(len(node), currentCardinality, tau-callsUsed).KStar
			}

			if k == 0 || k == len(node) {
				telemetry.Debug("dynpathblazer: degenerate partition at n=%d c=%d (k*=%d), stopping descent", len(node), currentCardinality, k)
				break
			}

			elems := node.Slice()
			rng.Shuffle(len(elems), func(i, j int) { elems[i], elems[j] = elems[j], elems[i] })
			left := oracle.NewSet(elems[:k]...)
			right := oracle.NewSet(elems[k:]...)

			var leftCardinality, rightCardinality int
			if len(right) > len(left) {
				leftCardinality = card(left, targetY)
				callsUsed++
				rightCardinality = currentCardinality - leftCardinality
			} else {
				rightCardinality = card(right, targetY)
				callsUsed++
				leftCardinality = currentCardinality - rightCardinality
			}

			rightRatio := float64(rightCardinality) / float64(len(right))
			rightPriority := max(rightRatio, 1-rightRatio)
			leftRatio := float64(leftCardinality) / float64(len(left))
			leftPriority := max(leftRatio, 1-leftRatio)

			if rightPriority > leftPriority {
				if leftCardinality != 0 {
					heap.Push(forest, dynEntry{
						priority:    dynPriority(leftCardinality, len(left)),
						cardinality: leftCardinality,
						tieIdx:      ti.nextIdx(),
						node:        left,
					})
				} else {
					zNeg = zNeg.Union(left)
				}
				node = right
				currentCardinality = rightCardinality
			} else {
				if rightCardinality != 0 {
					heap.Push(forest, dynEntry{
						priority:    dynPriority(rightCardinality, len(right)),
						cardinality: rightCardinality,
						tieIdx:      ti.nextIdx(),
						node:        right,
					})
				} else {
					zNeg = zNeg.Union(right)
				}
				node = left
				currentCardinality = leftCardinality
			}
		}

		if currentCardinality == len(node) && callsUsed <= tau {
			zPos = zPos.Union(node)
		} else if currentCardinality == 0 && callsUsed <= tau {
			zNeg = zNeg.Union(node)
		}
	}

	return Result{ZPos: zPos, ZNeg: zNeg}
}
