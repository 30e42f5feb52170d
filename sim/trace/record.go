// Package trace provides sampled-observable recording for Ising runs.
// This package has no dependencies on sim/ or sim/cluster/ — it stores pure data types.
package trace

// SampleRecord captures the observables of one assembled lattice sample.
type SampleRecord struct {
	Sweep         int64   `csv:"sweep" yaml:"sweep"`
	Energy        float64 `csv:"energy" yaml:"energy"`
	Magnetization float64 `csv:"magnetization" yaml:"magnetization"` // raw 0/1 mean
	Proposed      int64   `csv:"proposed" yaml:"proposed"`           // cumulative over all workers
	Accepted      int64   `csv:"accepted" yaml:"accepted"`           // cumulative over all workers
}
