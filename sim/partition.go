package sim

import "fmt"

// Topology describes a rowSize-wide torus split into NumProc contiguous row
// blocks of RowsPerProc rows each, arranged in a periodic ring: rank 0's
// first row is adjacent to rank NumProc-1's last row.
type Topology struct {
	RowSize     int // columns
	RowsPerProc int // rows owned by each worker
	NumProc     int // workers in the ring
}

// Validate reports the first violated precondition of the core operations.
func (t Topology) Validate() error {
	if t.RowSize <= 0 {
		return fmt.Errorf("row size must be > 0, got %d", t.RowSize)
	}
	if t.RowsPerProc <= 0 {
		return fmt.Errorf("rows per worker must be > 0, got %d", t.RowsPerProc)
	}
	if t.NumProc <= 0 {
		return fmt.Errorf("number of workers must be > 0, got %d", t.NumProc)
	}
	return nil
}

// TotalRows returns the row count of the global torus.
func (t Topology) TotalRows() int { return t.RowsPerProc * t.NumProc }

// Cells returns the site count of the global torus.
func (t Topology) Cells() int { return t.RowSize * t.TotalRows() }

// PartitionCells returns the site count of one worker's partition.
func (t Topology) PartitionCells() int { return t.RowSize * t.RowsPerProc }

// Square reports whether the global torus is rowSize×rowSize, the only shape
// Energy accepts.
func (t Topology) Square() bool { return t.TotalRows() == t.RowSize }

// RowOwner returns the rank owning global row r.
func (t Topology) RowOwner(r int) int { return r / t.RowsPerProc }

// Locate translates a global index into the owning rank and the index within
// that rank's partition.
func (t Topology) Locate(global int) (rank, local int) {
	part := t.PartitionCells()
	return global / part, global % part
}

// GlobalIndex is the inverse of Locate.
func (t Topology) GlobalIndex(rank, local int) int {
	return rank*t.PartitionCells() + local
}

// FirstRow returns the global row index of rank's first row.
func (t Topology) FirstRow(rank int) int { return rank * t.RowsPerProc }

// Above returns the rank whose last row borders rank's first row.
func (t Topology) Above(rank int) int { return (rank - 1 + t.NumProc) % t.NumProc }

// Below returns the rank whose first row borders rank's last row.
func (t Topology) Below(rank int) int { return (rank + 1) % t.NumProc }

// Assemble concatenates partitions in rank order into the global grid.
func Assemble(t Topology, parts []Lattice) (Lattice, error) {
	if len(parts) != t.NumProc {
		return Lattice{}, fmt.Errorf("assemble: got %d partitions, want %d", len(parts), t.NumProc)
	}
	spins := make([]Spin, 0, t.Cells())
	for rank, p := range parts {
		if p.Len() != t.PartitionCells() {
			return Lattice{}, fmt.Errorf("assemble: partition %d has %d sites, want %d", rank, p.Len(), t.PartitionCells())
		}
		spins = append(spins, p.spins...)
	}
	return Lattice{spins: spins}, nil
}

// Split cuts a global grid into NumProc partitions in rank order.
func Split(t Topology, grid Lattice) ([]Lattice, error) {
	if grid.Len() != t.Cells() {
		return nil, fmt.Errorf("split: grid has %d sites, want %d", grid.Len(), t.Cells())
	}
	part := t.PartitionCells()
	parts := make([]Lattice, t.NumProc)
	for rank := range parts {
		parts[rank] = NewLattice(grid.spins[rank*part : (rank+1)*part])
	}
	return parts, nil
}
