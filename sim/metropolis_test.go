package sim

import (
	"math"
	"math/rand"
	"testing"
)

func TestMetropolis_DownhillAlwaysAcceptedWithoutDraw(t *testing.T) {
	m := Metropolis{Temperature: 1}
	rng := rand.New(rand.NewSource(4))
	ref := rand.New(rand.NewSource(4))

	for _, delta := range []float64{0, -1, -100} {
		if !m.Accept(delta, rng) {
			t.Errorf("Accept(%v) = false, want true", delta)
		}
	}
	// No draw was consumed.
	if rng.Float64() != ref.Float64() {
		t.Error("downhill acceptance consumed a random draw")
	}
}

func TestMetropolis_UphillUsesBoltzmannFactor(t *testing.T) {
	m := Metropolis{Temperature: 2.5}
	rng := rand.New(rand.NewSource(8))
	ref := rand.New(rand.NewSource(8))

	for i := 0; i < 200; i++ {
		delta := float64(i%9) + 0.5
		want := ref.Float64() < math.Exp(-delta/m.Temperature)
		if got := m.Accept(delta, rng); got != want {
			t.Fatalf("draw %d: Accept(%v) = %v, want %v", i, delta, got, want)
		}
	}
}

func TestMetropolis_ColdRejectsUphill(t *testing.T) {
	m := Metropolis{Temperature: 1e-9}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		if m.Accept(8, rng) {
			t.Fatal("uphill move accepted at near-zero temperature")
		}
	}
}
