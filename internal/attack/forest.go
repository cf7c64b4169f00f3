// Package attack implements the five adaptive MIA search strategies
// against a PSI oracle: baseline, improved-baseline, dyn-path-blazer,
// tree-sum-explorer, and act-Bayesian.
//
// Every strategy keeps a "forest" — a priority queue of pending partition
// nodes — implemented here with container/heap instead of relying on a
// tuple's native ordering (spec's explicit guidance: a tie-break index is
// injected at push time and must be compared explicitly, never left to a
// language's incidental tuple-ordering behavior).
package attack

import (
	"container/heap"

	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
	"github.com/auroradata-ai/anonpsi-gcms/internal/tree"
)

// nodeEntry is a forest entry for the tree-structured engines (baseline,
// improved-baseline): a pending node together with the
// oracle-reported metric (cardinality) that drove its priority.
type nodeEntry struct {
	priority    float64
	cardinality int
	tieIdx      int64
	node        *tree.Node
}

// nodeForest is a min-heap on priority, breaking ties on tieIdx so push
// order fully determines pop order among equal-priority entries.
type nodeForest []nodeEntry

func (f nodeForest) Len() int { return len(f) }
func (f nodeForest) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].tieIdx < f[j].tieIdx
}
func (f nodeForest) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *nodeForest) Push(x any)   { *f = append(*f, x.(nodeEntry)) }
func (f *nodeForest) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// tieIndexer hands out the spec's strictly-increasing tie-break index.
type tieIndexer struct{ next int64 }

func (t *tieIndexer) nextIdx() int64 {
	idx := t.next
	t.next++
	return idx
}

// sumEntry is a forest entry for tree-sum-explorer: a pending sub-universe
// together with its oracle-reported cardinality/sum and the candidate list
// of size-cardinality subsets whose values sum to sum.
type sumEntry struct {
	priority    float64
	cardinality int
	sum         int
	victim      oracle.Set
	candidates  [][]int
	tieIdx      int64
}

type sumForest []sumEntry

func (f sumForest) Len() int { return len(f) }
func (f sumForest) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].tieIdx < f[j].tieIdx
}
func (f sumForest) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *sumForest) Push(x any)   { *f = append(*f, x.(sumEntry)) }
func (f *sumForest) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

var (
	_ heap.Interface = (*nodeForest)(nil)
	_ heap.Interface = (*sumForest)(nil)
)
