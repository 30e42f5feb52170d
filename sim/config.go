package sim

import "fmt"

// RunConfig groups everything one simulation run needs.
type RunConfig struct {
	Topology      Topology
	Coupling      Coupling
	Temperature   float64 // Metropolis temperature (must be > 0)
	Sweeps        int64   // sweeps per worker; one sweep = PartitionCells proposals
	SampleEvery   int64   // sweeps between observable samples (must be > 0)
	SnapshotEvery int64   // sweeps between lattice snapshots (0 = final only)
	Key           SimulationKey
}

// Validate checks the preconditions the core leaves to its callers.
func (c RunConfig) Validate() error {
	if err := c.Topology.Validate(); err != nil {
		return err
	}
	if !c.Topology.Square() {
		return fmt.Errorf("lattice must be square: %d rows x %d columns", c.Topology.TotalRows(), c.Topology.RowSize)
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("temperature must be > 0, got %g", c.Temperature)
	}
	if c.Sweeps < 0 {
		return fmt.Errorf("iterations must be >= 0, got %d", c.Sweeps)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("sample interval must be > 0, got %d", c.SampleEvery)
	}
	if c.SnapshotEvery < 0 {
		return fmt.Errorf("snapshot interval must be >= 0, got %d", c.SnapshotEvery)
	}
	return nil
}

// SquareTopology splits a netSize×netSize torus across workers.
func SquareTopology(netSize, workers int) (Topology, error) {
	if workers <= 0 {
		return Topology{}, fmt.Errorf("number of workers must be > 0, got %d", workers)
	}
	if netSize <= 0 {
		return Topology{}, fmt.Errorf("net size must be > 0, got %d", netSize)
	}
	if netSize%workers != 0 {
		return Topology{}, fmt.Errorf("net size %d is not divisible by %d workers", netSize, workers)
	}
	return Topology{RowSize: netSize, RowsPerProc: netSize / workers, NumProc: workers}, nil
}
