package attack

import (
	"container/heap"
	"math/rand"

	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
	"github.com/auroradata-ai/anonpsi-gcms/internal/telemetry"
	"github.com/auroradata-ai/anonpsi-gcms/internal/tree"
)

// ImprovedBaseline is identical to Baseline's descent (spec §4.4) except
// it also records a node reached with current_cardinality == 0 directly
// into ZNeg at loop exit — symmetric emission on both terminal conditions,
// instead of relying solely on the zero-cardinality short-circuit inside
// the descent loop.
func ImprovedBaseline(rng *rand.Rand, card oracle.CardinalityOracle, victimX, targetY oracle.Set, tau int) Result {
	zPos := make(oracle.Set)
	zNeg := make(oracle.Set)

	var ti tieIndexer
	forest := &nodeForest{}
	heap.Init(forest)

	initialCardinality := card(victimX, targetY)
	callsUsed := 1

	root := tree.Build(rng, victimX)
	heap.Push(forest, nodeEntry{
		priority:    -1 * float64(initialCardinality) / float64(len(victimX)),
		cardinality: initialCardinality,
		tieIdx:      ti.nextIdx(),
		node:        root,
	})

	for forest.Len() > 0 && callsUsed <= tau {
		top := heap.Pop(forest).(nodeEntry)
		node := top.node
		currentCardinality := top.cardinality

		for currentCardinality > 0 && currentCardinality < len(node.Val) && callsUsed <= tau {
			left, right := node.Left, node.Right

			var leftCardinality, rightCardinality int
			if len(right.Val) > len(left.Val) {
				leftCardinality = card(left.Val, targetY)
				callsUsed++
				rightCardinality = currentCardinality - leftCardinality
			} else {
				rightCardinality = card(right.Val, targetY)
				callsUsed++
				leftCardinality = currentCardinality - rightCardinality
			}

			rightPriority := float64(rightCardinality) / float64(len(right.Val))
			leftPriority := float64(leftCardinality) / float64(len(left.Val))

			if rightPriority > leftPriority {
				if leftCardinality != 0 {
					heap.Push(forest, nodeEntry{
						priority:    -1 * float64(leftCardinality) / float64(len(left.Val)),
						cardinality: leftCardinality,
						tieIdx:      ti.nextIdx(),
						node:        left,
					})
				} else {
					zNeg = zNeg.Union(left.Val)
				}
				node = right
				currentCardinality = rightCardinality
			} else {
				if rightCardinality != 0 {
					heap.Push(forest, nodeEntry{
						priority:    -1 * float64(rightCardinality) / float64(len(right.Val)),
						cardinality: rightCardinality,
						tieIdx:      ti.nextIdx(),
						node:        right,
					})
				} else {
					zNeg = zNeg.Union(right.Val)
				}
				node = left
				currentCardinality = leftCardinality
			}
		}

		if currentCardinality > 0 && callsUsed <= tau {
			zPos = zPos.Union(node.Val)
		} else if currentCardinality == 0 && callsUsed <= tau {
			zNeg = zNeg.Union(node.Val)
		}
	}

	if forest.Len() > 0 {
		telemetry.Debug("improved: budget exhausted (calls=%d tau=%d) with %d subtree(s) left unclassified", callsUsed, tau, forest.Len())
	}
	return Result{ZPos: zPos, ZNeg: zNeg}
}
