// Package tree implements the partition tree used by the baseline and
// improved-baseline attack engines: a recursive random bisection of a set
// down to singleton leaves.
package tree

import (
	"math/rand"

	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
)

// Node holds a subset of the victim set being explored. Left and Right
// are nil on a leaf (|Val| == 1); otherwise they partition Val exactly:
// disjoint, and their union equals Val. A node's lifetime is scoped to
// the attack invocation that built it — there is no sharing across calls.
type Node struct {
	Val   oracle.Set
	Left  *Node
	Right *Node
}

// Build recursively bisects set into a tree: a leaf when |set| == 1,
// otherwise a uniform random shuffle of set's elements split at len/2,
// recursing on each half. rng drives the shuffle so callers can obtain
// deterministic trees in tests.
func Build(rng *rand.Rand, set oracle.Set) *Node {
	node := &Node{Val: set}
	if len(set) == 1 {
		return node
	}

	elems := set.Slice()
	rng.Shuffle(len(elems), func(i, j int) { elems[i], elems[j] = elems[j], elems[i] })

	mid := len(elems) / 2
	node.Left = Build(rng, oracle.NewSet(elems[:mid]...))
	node.Right = Build(rng, oracle.NewSet(elems[mid:]...))
	return node
}
