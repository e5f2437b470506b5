package sim

import "testing"

func TestNewRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)

	for i := 0; i < 50; i++ {
		va := a.Next(1000)
		vb := b.Next(1000)
		if va != vb {
			t.Fatalf("draw %d diverged for identical seeds: %d vs %d", i, va, vb)
		}
	}
}

func TestNewRNGDifferentSeedsDiverge(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)

	same := true
	for i := 0; i < 20; i++ {
		if a.Next(1_000_000) != b.Next(1_000_000) {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected distinct seeds to eventually diverge")
	}
}

func TestNextZeroOrNegativeIsZero(t *testing.T) {
	r := NewRNG(7)
	if v := r.Next(0); v != 0 {
		t.Fatalf("Next(0) = %d, want 0", v)
	}
	if v := r.Next(-5); v != 0 {
		t.Fatalf("Next(-5) = %d, want 0", v)
	}
}
