// Package datasetgen generates synthetic victim/target integer sets for
// exercising the attack engines and oracle implementations, ported from
// utils.gen_simple_set / gen_set_with_intersection / gen_dummy_set.
package datasetgen

import (
	"math/rand"

	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
)

func samplePerm(rng *rand.Rand, n, k int) []int {
	return rng.Perm(n)[:k]
}

// SimpleSets draws victim and target sets independently and uniformly
// from [0, upperBound) — no intersection guarantee either way.
func SimpleSets(rng *rand.Rand, victimSetNum, targetSetNum, upperBound int) (victimX, targetY oracle.Set) {
	victim := samplePerm(rng, upperBound, victimSetNum)
	target := samplePerm(rng, upperBound, targetSetNum)
	return oracle.IntSet(victim...), oracle.IntSet(target...)
}

// SetsWithIntersection draws victim and target sets that share exactly
// intersectionNum elements, sampled from a range scaled by dense.
func SetsWithIntersection(rng *rand.Rand, victimSetNum, targetSetNum, dense, intersectionNum int) (victimX, targetY oracle.Set) {
	samplingRange := max(victimSetNum, targetSetNum) * dense
	total := victimSetNum + targetSetNum - intersectionNum
	sampled := samplePerm(rng, samplingRange, total)

	intersection := sampled[:intersectionNum]
	victim := append([]int(nil), sampled[intersectionNum:victimSetNum]...)
	target := append([]int(nil), sampled[victimSetNum:]...)
	victim = append(victim, intersection...)
	target = append(target, intersection...)

	return oracle.IntSet(victim...), oracle.IntSet(target...)
}

// DummySets draws victim, target, and an unrelated dummy set, with victim
// and target sharing exactly intersectionNum elements and the dummy set
// disjoint from both.
func DummySets(rng *rand.Rand, victimSetNum, targetSetNum, dummySetNum, dense, intersectionNum int) (victimX, targetY, dummy oracle.Set) {
	samplingRange := (victimSetNum + targetSetNum + dummySetNum) * dense
	total := victimSetNum + targetSetNum + dummySetNum - intersectionNum
	sampled := samplePerm(rng, samplingRange, total)

	intersection := sampled[:intersectionNum]
	victim := append([]int(nil), sampled[intersectionNum:victimSetNum]...)
	target := append([]int(nil), sampled[victimSetNum:victimSetNum+targetSetNum-intersectionNum]...)
	dummySlice := append([]int(nil), sampled[victimSetNum+targetSetNum-intersectionNum:]...)
	victim = append(victim, intersection...)
	target = append(target, intersection...)

	return oracle.IntSet(victim...), oracle.IntSet(target...), oracle.IntSet(dummySlice...)
}
