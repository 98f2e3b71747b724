package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 20; i++ {
		a := rng1.Intn(4)
		b := rng2.Intn(4)
		if a != b {
			t.Fatalf("draw %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRNG_Intn_Range(t *testing.T) {
	rng := NewRNG(99)

	for i := 0; i < 1000; i++ {
		r := rng.Intn(4)
		if r < 0 || r > 3 {
			t.Fatalf("draw out of range [0,3]: got %d", r)
		}
	}
}

func TestRNG_Intn_One(t *testing.T) {
	rng := NewRNG(1)

	for i := 0; i < 10; i++ {
		if r := rng.Intn(1); r != 0 {
			t.Fatalf("Intn(1) should always be 0, got %d", r)
		}
	}
}

func TestRNG_Position_Tracks(t *testing.T) {
	rng := NewRNG(42)

	if rng.Position() != 0 {
		t.Fatalf("expected position 0, got %d", rng.Position())
	}

	rng.Intn(2)
	if rng.Position() != 1 {
		t.Fatalf("expected position 1, got %d", rng.Position())
	}

	rng.Intn(6)
	rng.Intn(4)
	if rng.Position() != 3 {
		t.Fatalf("expected position 3, got %d", rng.Position())
	}
}

func TestRNG_Seed(t *testing.T) {
	if got := NewRNG(1234).Seed(); got != 1234 {
		t.Fatalf("expected seed 1234, got %d", got)
	}
}

func TestRNG_DifferentSeeds_DifferentResults(t *testing.T) {
	rng1 := NewRNG(1)
	rng2 := NewRNG(2)

	differs := false
	for i := 0; i < 20; i++ {
		if rng1.Intn(100) != rng2.Intn(100) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected different seeds to produce different results")
	}
}
