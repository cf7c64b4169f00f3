package attack

import (
	"math/rand"
	"testing"

	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
)

func TestNSumFindsExactCombinations(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5}
	got := nSum(nums, 6, 2)

	want := map[[2]int]bool{
		{1, 5}: true,
		{2, 4}: true,
	}
	if len(got) != len(want) {
		t.Fatalf("nSum(6,2): want %d combinations, got %d: %v", len(want), len(got), got)
	}
	for _, combo := range got {
		if len(combo) != 2 {
			t.Fatalf("nSum: combination %v does not have length 2", combo)
		}
		key := [2]int{combo[0], combo[1]}
		if !want[key] {
			t.Fatalf("nSum: unexpected combination %v", combo)
		}
	}
}

func TestNSumSkipsDuplicateValues(t *testing.T) {
	nums := []int{2, 2, 3}
	got := nSum(nums, 5, 2)
	if len(got) != 1 {
		t.Fatalf("nSum with duplicate inputs: want exactly 1 combination, got %d: %v", len(got), got)
	}
}

func TestPriorityOfSaturatesWhenCandidatesFitBudget(t *testing.T) {
	if got := priorityOf(10, 3, 5); got != 10 {
		t.Fatalf("priorityOf: candidates <= tau should return the full size, got %v", got)
	}
	discounted := priorityOf(10, 1000, 5)
	if discounted <= 0 || discounted >= 10 {
		t.Fatalf("priorityOf: discounted case should land strictly between 0 and size, got %v", discounted)
	}
}

func TestTreeSumExplorerClassifiesWithinBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	victimX := oracle.IntSet(1, 2, 3, 4, 5, 6, 7, 8)
	targetY := oracle.IntSet(2, 4, 6, 8, 900, 901)

	counter := &oracle.CallCounter{}
	sumOracle := counter.WrapIntSum(oracle.NaiveSumInt)

	params := TreeSumParams{ComputationBudget: 100000, LowerBound: 1, UpperBound: len(victimX), Tolerance: 0.05}
	result := TreeSumExplorer(rng, sumOracle, victimX, targetY, 30, params)
	disjointResult(t, result)

	truth := oracle.NaiveIntersection(victimX, targetY)
	for id := range result.ZPos {
		if _, ok := truth[id]; !ok {
			t.Fatalf("Z_pos contains %q which is not in the true intersection", id)
		}
	}
}
