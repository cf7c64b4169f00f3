package attack

import (
	"math/rand"
	"testing"
)

func TestIsFullyPartitioned(t *testing.T) {
	if !isFullyPartitioned([]float64{0, 1, 0, 1, 1}) {
		t.Fatal("isFullyPartitioned: expected true for a pure 0/1 posterior")
	}
	if isFullyPartitioned([]float64{0, 1, 0.5}) {
		t.Fatal("isFullyPartitioned: expected false when a fractional posterior remains")
	}
	if isFullyPartitioned([]float64{1, 1, 1}) {
		t.Fatal("isFullyPartitioned: expected false when only one distinct value is present")
	}
}

func TestDistinctFloatsDeduplicates(t *testing.T) {
	got := distinctFloats([]float64{0.5, 0.5, 1, 0, 1})
	if len(got) != 3 {
		t.Fatalf("distinctFloats: want 3 distinct values, got %d: %v", len(got), got)
	}
}

func TestActBayesianTerminatesAndReportsCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dataset := []int{1, 1, 1, 0, 0, 0, 1, 0, 1, 0}

	params := ActBayesianParams{
		LowerBound:     0.05,
		UpperBound:     0.95,
		Tolerance:      0.01,
		LaplacianScale: 0.1,
		SampleRate:     0.7,
	}
	result := ActBayesian(rng, 50, dataset, params)

	if result.TruePosLeak < 0 || result.TrueNegLeak < 0 {
		t.Fatalf("ActBayesian returned negative leak counts: %+v", result)
	}
	if result.TruePosLeak+result.TrueNegLeak > len(dataset) {
		t.Fatalf("ActBayesian leaked more elements than exist in the dataset: %+v", result)
	}
}
