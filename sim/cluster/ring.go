// Package cluster runs a partitioned Ising lattice on a ring of workers.
//
// Each worker owns RowsPerProc contiguous rows of the global torus and runs
// in its own goroutine. Before every sweep a worker sends its first row to
// the rank above and its last row to the rank below, then reads the
// matching rows from its neighbours; the sweep itself reads remote rows only
// through those halos (see HaloView). A collector goroutine assembles
// partition snapshots into global samples and hands them to an Observer.
package cluster

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ising-sim/ising-sim/sim"
	"github.com/ising-sim/ising-sim/sim/trace"
)

// Sample is one assembled observation of the global lattice. Sampled marks
// sweeps whose observables belong in the trace, Snapshot marks sweeps whose
// lattice should be persisted; the final sample is both.
type Sample struct {
	Repeat   int
	Final    bool // last sample of the run
	Sampled  bool
	Snapshot bool
	Record   trace.SampleRecord
	Grid     sim.Lattice
}

// Observer receives samples in sweep order from the collector goroutine.
// A returned error aborts the run.
type Observer interface {
	Observe(s Sample) error
}

// Result is what a finished run leaves behind.
type Result struct {
	Final   sim.Lattice
	Trace   *trace.RunTrace
	Metrics *sim.Metrics
}

// Ring runs one repeat of the simulation.
type Ring struct {
	cfg      sim.RunConfig
	repeat   int
	observer Observer
}

// NewRing validates cfg and returns a Ring for the given repeat number.
// observer may be nil.
func NewRing(cfg sim.RunConfig, repeat int, observer Observer) (*Ring, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	return &Ring{cfg: cfg, repeat: repeat, observer: observer}, nil
}

// InitialPartitions returns the partitions each worker starts from, seeded
// by cfg.Key and the worker rank.
func InitialPartitions(cfg sim.RunConfig) []sim.Lattice {
	rng := sim.NewPartitionedRNG(cfg.Key)
	parts := make([]sim.Lattice, cfg.Topology.NumProc)
	for rank := range parts {
		parts[rank] = sim.GenerateSpins(cfg.Topology.RowsPerProc, cfg.Topology.RowSize,
			rng.ForSubsystem(sim.SubsystemWorker(rank)))
	}
	return parts
}

// Run starts the workers and the collector and blocks until every sample has
// been observed, a goroutine fails, or ctx is cancelled.
func (r *Ring) Run(ctx context.Context) (*Result, error) {
	topo := r.cfg.Topology
	logrus.Infof("Starting repeat %d: %dx%d lattice on %d workers, J=%g, B=%g, T=%g, %d sweeps",
		r.repeat, topo.TotalRows(), topo.RowSize, topo.NumProc, r.cfg.Coupling.J, r.cfg.Coupling.B,
		r.cfg.Temperature, r.cfg.Sweeps)

	workers := r.buildWorkers()
	samples := make(chan partSnapshot, topo.NumProc)
	for _, w := range workers {
		w.samples = samples
	}

	result := &Result{Trace: trace.NewRunTrace(r.repeat), Metrics: sim.NewMetrics()}

	g, gCtx := errgroup.WithContext(ctx)
	for _, w := range workers {
		g.Go(func() error {
			if err := w.run(gCtx); err != nil {
				return fmt.Errorf("worker %d: %w", w.rank, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		return r.collect(gCtx, samples, result)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, w := range workers {
		result.Metrics.Add(w.rank, w.proposed, w.accepted)
	}
	logrus.Infof("Repeat %d complete: acceptance rate %.4f", r.repeat, result.Metrics.AcceptanceRate())
	return result, nil
}

// buildWorkers wires the halo channels: fromAbove[r] is written only by
// Above(r) and fromBelow[r] only by Below(r), each with room for one row.
func (r *Ring) buildWorkers() []*worker {
	topo := r.cfg.Topology
	parts := InitialPartitions(r.cfg)
	rng := sim.NewPartitionedRNG(r.cfg.Key)

	fromAbove := make([]chan []sim.Spin, topo.NumProc)
	fromBelow := make([]chan []sim.Spin, topo.NumProc)
	for rank := 0; rank < topo.NumProc; rank++ {
		fromAbove[rank] = make(chan []sim.Spin, 1)
		fromBelow[rank] = make(chan []sim.Spin, 1)
	}

	workers := make([]*worker, topo.NumProc)
	for rank := range workers {
		w := newWorker(rank, r.cfg, parts[rank], rng.ForSubsystem(sim.SubsystemMetropolis(rank)))
		w.toAbove = fromBelow[topo.Above(rank)]
		w.toBelow = fromAbove[topo.Below(rank)]
		w.fromAbove = fromAbove[rank]
		w.fromBelow = fromBelow[rank]
		workers[rank] = w
	}
	return workers
}

// pendingSample gathers partitions for one sweep until all ranks reported.
type pendingSample struct {
	parts    []sim.Lattice
	got      int
	proposed int64
	accepted int64
}

// collect assembles partition snapshots. Every worker sends its snapshots in
// sweep order, so samples complete in sweep order too.
func (r *Ring) collect(ctx context.Context, in <-chan partSnapshot, result *Result) error {
	topo := r.cfg.Topology
	pending := make(map[int64]*pendingSample)
	remaining := reportCount(r.cfg)

	for remaining > 0 {
		snap, err := receive(ctx, in)
		if err != nil {
			return err
		}
		p, ok := pending[snap.sweep]
		if !ok {
			p = &pendingSample{parts: make([]sim.Lattice, topo.NumProc)}
			pending[snap.sweep] = p
		}
		p.parts[snap.rank] = snap.part
		p.got++
		p.proposed += snap.proposed
		p.accepted += snap.accepted
		if p.got < topo.NumProc {
			continue
		}
		delete(pending, snap.sweep)
		remaining--

		grid, err := sim.Assemble(topo, p.parts)
		if err != nil {
			return err
		}
		record := trace.SampleRecord{
			Sweep:         snap.sweep,
			Energy:        sim.Energy(grid, r.cfg.Coupling, topo.RowSize),
			Magnetization: sim.AvgMagnetism(grid),
			Proposed:      p.proposed,
			Accepted:      p.accepted,
		}
		sampled := isSampleSweep(snap.sweep, r.cfg)
		if sampled {
			result.Trace.Record(record)
		}
		result.Final = grid
		logrus.Debugf("repeat %d sweep %d: E=%f M=%f", r.repeat, record.Sweep, record.Energy, record.Magnetization)

		if r.observer != nil {
			s := Sample{
				Repeat:   r.repeat,
				Final:    remaining == 0,
				Sampled:  sampled,
				Snapshot: isSnapshotSweep(snap.sweep, r.cfg),
				Record:   record,
				Grid:     grid,
			}
			if err := r.observer.Observe(s); err != nil {
				return fmt.Errorf("observer at sweep %d: %w", snap.sweep, err)
			}
		}
	}
	return nil
}

// reportCount returns how many distinct sweeps isReportSweep selects.
func reportCount(cfg sim.RunConfig) int {
	n := 0
	for sweep := int64(0); sweep <= cfg.Sweeps; sweep++ {
		if isReportSweep(sweep, cfg) {
			n++
		}
	}
	return n
}
