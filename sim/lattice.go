package sim

import "math/rand"

// Spin is a single lattice site. Only SpinDown and SpinUp are ever stored.
type Spin uint8

const (
	SpinDown Spin = 0 // physical moment -1
	SpinUp   Spin = 1 // physical moment +1
)

// spinThreshold is the Bernoulli cut used by GenerateSpins: a draw strictly
// above it becomes SpinUp.
const spinThreshold = 0.5

// SpinReader resolves a site value by index. Lattice implements it over its
// own buffer; cluster.HaloView implements it over global indices whose
// boundary rows belong to other workers.
type SpinReader interface {
	At(i int) Spin
}

// Lattice is an owned, row-major spin buffer of fixed length.
// The zero value is an empty lattice. A Lattice is never modified after
// construction; WithFlipped returns a new one.
type Lattice struct {
	spins []Spin
}

// NewLattice copies values into a new Lattice. Values other than 0 and 1 are
// the caller's responsibility.
func NewLattice(values []Spin) Lattice {
	spins := make([]Spin, len(values))
	copy(spins, values)
	return Lattice{spins: spins}
}

// Len returns the number of sites.
func (l Lattice) Len() int { return len(l.spins) }

// At returns the spin at linear index i.
func (l Lattice) At(i int) Spin { return l.spins[i] }

// Values returns a copy of the underlying buffer.
func (l Lattice) Values() []Spin {
	out := make([]Spin, len(l.spins))
	copy(out, l.spins)
	return out
}

// Row returns a copy of row r for a lattice with rowSize columns.
func (l Lattice) Row(r, rowSize int) []Spin {
	out := make([]Spin, rowSize)
	copy(out, l.spins[r*rowSize:(r+1)*rowSize])
	return out
}

// Clone returns an independent copy.
func (l Lattice) Clone() Lattice {
	return NewLattice(l.spins)
}

// WithFlipped returns a copy of the lattice with site idx toggled.
func (l Lattice) WithFlipped(idx int) Lattice {
	next := l.Clone()
	next.spins[idx] ^= 1
	return next
}

// Equal reports whether two lattices hold the same spins.
func (l Lattice) Equal(other Lattice) bool {
	if len(l.spins) != len(other.spins) {
		return false
	}
	for i, s := range l.spins {
		if other.spins[i] != s {
			return false
		}
	}
	return true
}

// GenerateSpins fills a rowsPerProc×rowSize partition with independent
// Bernoulli(0.5) spins drawn from rng in row-major order. Pass the
// generator returned by PartitionedRNG.ForSubsystem(SubsystemWorker(rank))
// so that each worker gets its own reproducible stream.
func GenerateSpins(rowsPerProc, rowSize int, rng *rand.Rand) Lattice {
	spins := make([]Spin, rowsPerProc*rowSize)
	for i := 0; i < rowsPerProc; i++ {
		for j := 0; j < rowSize; j++ {
			if rng.Float64() > spinThreshold {
				spins[i*rowSize+j] = SpinUp
			}
		}
	}
	return Lattice{spins: spins}
}

// FlipSpin returns a full copy of grid with grid[idx] toggled (0↔1).
// grid itself is left untouched, so a caller can inspect the post-flip
// state before deciding to keep it.
func FlipSpin(grid Lattice, idx int) Lattice {
	return grid.WithFlipped(idx)
}
