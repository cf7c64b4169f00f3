package attack

import (
	"math/rand"
	"testing"

	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
)

func TestImprovedBaselineClassifiesWithinBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	victimX := oracle.IntSet(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	targetY := oracle.IntSet(1, 3, 5, 7, 9, 200, 201)

	counter := &oracle.CallCounter{}
	card := counter.WrapCardinality(oracle.NaiveCardinality)

	result := ImprovedBaseline(rng, card, victimX, targetY, 30)
	disjointResult(t, result)

	truth := oracle.NaiveIntersection(victimX, targetY)
	for id := range result.ZNeg {
		if _, ok := truth[id]; ok {
			t.Fatalf("Z_neg contains %q which is in the true intersection", id)
		}
	}
}

func TestImprovedBaselineEmitsZeroCardinalityNodesToZNeg(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	victimX := oracle.IntSet(1, 2, 3, 4)
	targetY := oracle.IntSet(1000, 1001) // disjoint from victimX

	counter := &oracle.CallCounter{}
	card := counter.WrapCardinality(oracle.NaiveCardinality)

	result := ImprovedBaseline(rng, card, victimX, targetY, 10)
	if len(result.ZNeg) != len(victimX) {
		t.Fatalf("expected the entire disjoint victim set in Z_neg, got %d of %d", len(result.ZNeg), len(victimX))
	}
	if len(result.ZPos) != 0 {
		t.Fatalf("expected an empty Z_pos, got %v", result.ZPos)
	}
}
