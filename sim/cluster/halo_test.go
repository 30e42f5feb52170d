package cluster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ising-sim/ising-sim/sim"
)

// viewFromGrid builds the halo view rank would hold after an exchange.
func viewFromGrid(t *testing.T, topo sim.Topology, grid sim.Lattice, rank int) HaloView {
	t.Helper()
	parts, err := sim.Split(topo, grid)
	require.NoError(t, err)
	return HaloView{
		Topology: topo,
		Rank:     rank,
		Part:     parts[rank],
		Above:    parts[topo.Above(rank)].Row(topo.RowsPerProc-1, topo.RowSize),
		Below:    parts[topo.Below(rank)].Row(0, topo.RowSize),
	}
}

func TestHaloView_MatchesGlobalGrid(t *testing.T) {
	tests := []struct {
		name string
		topo sim.Topology
	}{
		{"three workers", sim.Topology{RowSize: 4, RowsPerProc: 2, NumProc: 3}},
		{"two workers one row each", sim.Topology{RowSize: 5, RowsPerProc: 1, NumProc: 2}},
		{"single worker", sim.Topology{RowSize: 3, RowsPerProc: 3, NumProc: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a global grid and each worker's view of it
			topo := tt.topo
			grid := sim.GenerateSpins(topo.TotalRows(), topo.RowSize, rand.New(rand.NewSource(21)))

			for rank := 0; rank < topo.NumProc; rank++ {
				view := viewFromGrid(t, topo, grid, rank)
				for local := 0; local < topo.PartitionCells(); local++ {
					g := topo.GlobalIndex(rank, local)
					n := sim.GlobalNeighbors(g, topo.RowSize, topo.TotalRows())

					// THEN every neighbour and the flip delta agree with the full grid
					for _, j := range []int{g, n.Left, n.Right, n.Up, n.Down} {
						assert.Equal(t, grid.At(j), view.At(j), "rank %d, global %d", rank, j)
					}
					assert.Equal(t,
						sim.EnergyChange(grid, g, topo.RowSize, topo.TotalRows()),
						sim.EnergyChange(view, g, topo.RowSize, topo.TotalRows()),
						"rank %d, global %d", rank, g)
				}
			}
		})
	}
}

func TestHaloView_PanicsOnUnreachableRow(t *testing.T) {
	// GIVEN rank 0 of three 2-row workers: it can see rows 5, 0, 1 and 2
	topo := sim.Topology{RowSize: 4, RowsPerProc: 2, NumProc: 3}
	grid := sim.NewLattice(make([]sim.Spin, topo.Cells()))
	view := viewFromGrid(t, topo, grid, 0)

	// THEN row 3 is not resolvable
	assert.Panics(t, func() { view.At(3 * topo.RowSize) })
	assert.NotPanics(t, func() { view.At(5 * topo.RowSize) })
	assert.NotPanics(t, func() { view.At(2 * topo.RowSize) })
}

func TestHaloView_OwnRowsNeedNoHalos(t *testing.T) {
	// GIVEN the middle worker of three with no halos received yet
	topo := sim.Topology{RowSize: 3, RowsPerProc: 2, NumProc: 3}
	grid := sim.GenerateSpins(topo.TotalRows(), topo.RowSize, rand.New(rand.NewSource(5)))
	parts, err := sim.Split(topo, grid)
	require.NoError(t, err)
	view := HaloView{Topology: topo, Rank: 1, Part: parts[1]}

	// THEN every site of rows 2 and 3 resolves from the partition
	for g := 2 * topo.RowSize; g < 4*topo.RowSize; g++ {
		assert.Equal(t, topo.RowOwner(g/topo.RowSize), view.Rank)
		assert.Equal(t, grid.At(g), view.At(g), "global %d", g)
	}
}
