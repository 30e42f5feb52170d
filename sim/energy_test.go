package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ising-sim/ising-sim/sim/internal/testutil"
)

func TestEnergy_UniformLattices(t *testing.T) {
	tests := []struct {
		name     string
		spins    []Spin
		coupling Coupling
		want     float64
	}{
		// 16 sites, each J*1*4; bonds counted from both ends.
		{"all up, no field", testutil.Filled(16, SpinUp), Coupling{J: 1, B: 0}, 64},
		{"all up, field", testutil.Filled(16, SpinUp), Coupling{J: 1, B: 2}, 64 + 16*2*0.25},
		{"all down, field", testutil.Filled(16, SpinDown), Coupling{J: 1, B: 1}, -16 * 0.25},
		{"checkerboard, no field", testutil.Checkerboard[Spin](4, 4), Coupling{J: 1, B: 0}, 0},
		{"checkerboard, field cancels", testutil.Checkerboard[Spin](4, 4), Coupling{J: 3, B: 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Energy(NewLattice(tt.spins), tt.coupling, 4), 1e-12)
		})
	}
}

func TestSingleSpinEnergy_CountsRawNeighbours(t *testing.T) {
	// GIVEN site 5 up with exactly two up neighbours (4 and 9)
	grid := NewLattice(testutil.FromPattern[Spin]("0000 1100 0100 0000"))

	// WHEN its energy is evaluated with J=2, B=1
	got := SingleSpinEnergy(grid, 5, 4, Coupling{J: 2, B: 1})

	// THEN coupling = 2*1*2 and field = +0.25
	assert.InDelta(t, 4.25, got, 1e-12)
}

func TestEnergyChange_AllUp(t *testing.T) {
	grid := NewLattice(testutil.Filled(24, SpinUp))
	for idx := 0; idx < 24; idx++ {
		assert.Equal(t, 8.0, EnergyChange(grid, idx, 4, 6))
	}
}

func TestEnergyChange_DownSiteIsZero(t *testing.T) {
	grid := NewLattice(testutil.FromPattern[Spin]("1111 1011 1111 1111"))
	assert.Equal(t, 0.0, EnergyChange(grid, 5, 4, 4))
}

func TestEnergyChange_WrapsAcrossPartitions(t *testing.T) {
	// GIVEN a 6x4 global torus with only sites 20 (last row) and 0 (first row) up
	spins := make([]Spin, 24)
	spins[20], spins[0] = SpinUp, SpinUp

	// WHEN the flip delta of site 20 is evaluated
	got := EnergyChange(NewLattice(spins), 20, 4, 6)

	// THEN site 0 is counted as its down neighbour
	assert.Equal(t, 2.0, got)
}

func TestEnergyChange_AgainstFullRecompute(t *testing.T) {
	// EnergyChange is 2*s*sum(neighbours). With J=1, B=0 the full energy of
	// an up site drops by exactly that amount when it flips; a down site
	// reports 0 regardless of what the flip costs.
	rng := rand.New(rand.NewSource(3))
	grid := GenerateSpins(4, 4, rng)
	couplingOnly := Coupling{J: 1, B: 0}
	before := Energy(grid, couplingOnly, 4)

	for i := 0; i < 16; i++ {
		after := Energy(FlipSpin(grid, i), couplingOnly, 4)
		delta := EnergyChange(grid, i, 4, 4)
		if grid.At(i) == SpinUp {
			assert.InDelta(t, before-after, delta, 1e-12, "site %d", i)
		} else {
			assert.Equal(t, 0.0, delta, "site %d", i)
			assert.GreaterOrEqual(t, after-before, 0.0, "site %d", i)
		}
	}
}

func TestEnergyChange_OmitsFieldTerm(t *testing.T) {
	// The full energy difference and the coupling-only difference differ by
	// exactly the field contribution 2*B*0.25 with the sign of the old spin.
	rng := rand.New(rand.NewSource(11))
	grid := GenerateSpins(4, 4, rng)
	full := Coupling{J: 1.5, B: 0.8}
	couplingOnly := Coupling{J: 1.5, B: 0}

	for i := 0; i < 16; i++ {
		flipped := FlipSpin(grid, i)
		fullDiff := Energy(flipped, full, 4) - Energy(grid, full, 4)
		couplingDiff := Energy(flipped, couplingOnly, 4) - Energy(grid, couplingOnly, 4)

		sign := -1.0
		if grid.At(i) == SpinUp {
			sign = 1.0
		}
		assert.InDelta(t, -2*full.B*0.25*sign, fullDiff-couplingDiff, 1e-12, "site %d", i)
	}
}

func BenchmarkEnergyChange(b *testing.B) {
	grid := GenerateSpins(64, 64, rand.New(rand.NewSource(1)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EnergyChange(grid, i%4096, 64, 64)
	}
}
