package oracle

import "testing"

func TestNaiveCardinalityAndIntersection(t *testing.T) {
	victim := NewSet("a", "b", "c", "d")
	target := NewSet("b", "d", "e")

	if got := NaiveCardinality(victim, target); got != 2 {
		t.Fatalf("NaiveCardinality: want 2, got %d", got)
	}

	inter := NaiveIntersection(victim, target)
	if len(inter) != 2 {
		t.Fatalf("NaiveIntersection: want 2 elements, got %d", len(inter))
	}
	for _, id := range []string{"b", "d"} {
		if _, ok := inter[id]; !ok {
			t.Fatalf("NaiveIntersection: missing expected element %q", id)
		}
	}
}

func TestNaiveSum(t *testing.T) {
	victim := SumSet{"a": 10, "b": 20, "c": 30}
	target := NewSet("a", "c", "z")

	count, sum := NaiveSum(victim, target)
	if count != 2 || sum != 40 {
		t.Fatalf("NaiveSum: want (2, 40), got (%d, %d)", count, sum)
	}
}

func TestNaiveSumInt(t *testing.T) {
	victim := IntSet(1, 2, 3, 4)
	target := IntSet(2, 4, 9)

	count, sum := NaiveSumInt(victim, target)
	if count != 2 || sum != 6 {
		t.Fatalf("NaiveSumInt: want (2, 6), got (%d, %d)", count, sum)
	}
}
