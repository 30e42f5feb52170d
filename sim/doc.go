// Package sim provides the physics and indexing kernel of the Ising simulator.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - lattice.go: Spin, the immutable Lattice buffer, GenerateSpins and FlipSpin
//   - neighbors.go: periodic neighbour arithmetic, single-process and global
//   - energy.go: per-site energy, total energy and the O(1) flip delta
//
// # Conventions
//
// Spins are stored as 0/1. The coupling terms multiply raw 0/1 values; only
// the field term and PhysicalMagnetization use the ±1 mapping. Energy does
// not halve double-counted bonds, and EnergyChange carries no field term, so
// the two evaluators are not consistent with each other.
//
// # Architecture
//
// The kernel performs no validation and no communication. Sub-packages build
// on it:
//   - sim/cluster/: ring of partition workers, halo exchange, Metropolis sweeps
//   - sim/trace/: sampled observables and run summaries
//   - sim/output/: run directories, snapshots and scalar logs
//   - sim/params/: the plain-text parameter record
package sim
