package attack

import (
	"math/rand"
	"testing"

	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
)

func disjointResult(t *testing.T, result Result) {
	t.Helper()
	for id := range result.ZPos {
		if _, ok := result.ZNeg[id]; ok {
			t.Fatalf("Z_pos and Z_neg both claim element %q", id)
		}
	}
}

func TestBaselineClassifiesWithinBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	victimX := oracle.IntSet(1, 2, 3, 4, 5, 6, 7, 8)
	targetY := oracle.IntSet(2, 4, 6, 8, 100, 101)

	counter := &oracle.CallCounter{}
	card := counter.WrapCardinality(oracle.NaiveCardinality)

	result := Baseline(rng, card, victimX, targetY, 20)
	disjointResult(t, result)

	if int(counter.Calls()) > 20 {
		t.Fatalf("Baseline exceeded its oracle-call budget: used %d of 20", counter.Calls())
	}

	truth := oracle.NaiveIntersection(victimX, targetY)
	for id := range result.ZPos {
		if _, ok := truth[id]; !ok {
			t.Fatalf("Z_pos contains %q which is not in the true intersection", id)
		}
	}
}

func TestBaselineZeroBudgetClassifiesNothing(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	victimX := oracle.IntSet(1, 2, 3)
	targetY := oracle.IntSet(2)

	counter := &oracle.CallCounter{}
	card := counter.WrapCardinality(oracle.NaiveCardinality)

	result := Baseline(rng, card, victimX, targetY, 0)
	if len(result.ZPos) != 0 || len(result.ZNeg) != 0 {
		t.Fatalf("Baseline with tau=0 should classify nothing, got Z_pos=%v Z_neg=%v", result.ZPos, result.ZNeg)
	}
}
