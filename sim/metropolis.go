package sim

import (
	"math"
	"math/rand"
)

// Metropolis decides whether a proposed flip is kept.
type Metropolis struct {
	Temperature float64 // in units where k_B = 1; must be > 0
}

// Accept keeps every move that does not raise the energy and keeps an
// uphill move of size delta with probability exp(-delta/T). The uniform draw
// is consumed only for uphill moves.
func (m Metropolis) Accept(delta float64, rng *rand.Rand) bool {
	if delta <= 0 {
		return true
	}
	return rng.Float64() < math.Exp(-delta/m.Temperature)
}
