package cluster

import (
	"fmt"

	"github.com/ising-sim/ising-sim/sim"
)

// HaloView resolves global indices for one worker: sites in the worker's own
// rows come from its partition, the row just above comes from the last row
// of Topology.Above(Rank) and the row just below from the first row of
// Topology.Below(Rank). Any other row panics.
type HaloView struct {
	Topology sim.Topology
	Rank     int
	Part     sim.Lattice
	Above    []sim.Spin
	Below    []sim.Spin
}

// At implements sim.SpinReader.
func (v HaloView) At(global int) sim.Spin {
	topo := v.Topology
	row, col := global/topo.RowSize, global%topo.RowSize
	if topo.RowOwner(row) == v.Rank {
		return v.Part.At(global - topo.FirstRow(v.Rank)*topo.RowSize)
	}

	total := topo.TotalRows()
	first := topo.FirstRow(v.Rank)
	switch row {
	case (first - 1 + total) % total:
		return v.Above[col]
	case (first + topo.RowsPerProc) % total:
		return v.Below[col]
	}
	panic(fmt.Sprintf("worker %d cannot resolve global index %d (row %d)", v.Rank, global, row))
}
