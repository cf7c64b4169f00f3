package memo

import "testing"

func TestBuildRejectsNonPositiveNMax(t *testing.T) {
	if _, err := Build(0); err == nil {
		t.Fatal("Build(0): expected an error, got nil")
	}
}

func TestBuildBaseCase(t *testing.T) {
	tables, err := Build(1)
	if err != nil {
		t.Fatalf("Build(1): %v", err)
	}
	if got := tables.Phi(1, 0); got != 0 {
		t.Fatalf("Phi(1,0): want 0, got %d", got)
	}
	if got := tables.Gamma(1, 1, 0); got.Leakage != 1 {
		t.Fatalf("Gamma(1,1,0).Leakage: want 1, got %v", got.Leakage)
	}
}

func TestPureStatesLeakImmediately(t *testing.T) {
	tables, err := Build(8)
	if err != nil {
		t.Fatalf("Build(8): %v", err)
	}
	for n := 1; n <= 8; n++ {
		for _, c := range []int{0, n} {
			if got := tables.Phi(n, c); got != 0 {
				t.Fatalf("Phi(%d,%d): pure state should need zero calls, got %d", n, c, got)
			}
		}
	}
}

func TestPhiNeverExceedsN(t *testing.T) {
	tables, err := Build(10)
	if err != nil {
		t.Fatalf("Build(10): %v", err)
	}
	// A state's minimum leakage tau (phi) should never exceed n itself:
	// gen_gamma_and_phi guarantees full leakage by tau=n at the latest.
	for n := 1; n <= 10; n++ {
		for c := 0; c <= n; c++ {
			if got := tables.Phi(n, c); got > n {
				t.Fatalf("Phi(%d,%d)=%d exceeds n", n, c, got)
			}
		}
	}
}

func TestGammaPanicsOutOfRange(t *testing.T) {
	tables, err := Build(4)
	if err != nil {
		t.Fatalf("Build(4): %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Gamma: expected a panic for an out-of-range n")
		}
	}()
	tables.Gamma(5, 0, 0)
}
