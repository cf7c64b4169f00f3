package tree

import (
	"math/rand"
	"testing"

	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
)

func TestBuildLeafForSingleton(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	root := Build(rng, oracle.NewSet("a"))
	if root.Left != nil || root.Right != nil {
		t.Fatal("Build: singleton set should produce a leaf with no children")
	}
}

func TestBuildPartitionsExactly(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	set := oracle.NewSet("a", "b", "c", "d", "e")
	root := Build(rng, set)

	var walk func(n *Node) oracle.Set
	walk = func(n *Node) oracle.Set {
		if n.Left == nil && n.Right == nil {
			return n.Val
		}
		left := walk(n.Left)
		right := walk(n.Right)
		for id := range left {
			if _, ok := right[id]; ok {
				t.Fatalf("Build: left and right children share element %q", id)
			}
		}
		return left.Union(right)
	}

	leaves := walk(root)
	if len(leaves) != len(set) {
		t.Fatalf("Build: leaves union to %d elements, want %d", len(leaves), len(set))
	}
	for id := range set {
		if _, ok := leaves[id]; !ok {
			t.Fatalf("Build: element %q missing from leaf union", id)
		}
	}
}
