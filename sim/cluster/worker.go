package cluster

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/ising-sim/ising-sim/sim"
)

// partSnapshot is one worker's contribution to a sample.
type partSnapshot struct {
	rank     int
	sweep    int64
	part     sim.Lattice
	proposed int64
	accepted int64
}

// worker owns one partition and runs Metropolis sweeps over it.
// All fields are touched only by the worker's goroutine.
type worker struct {
	rank int
	cfg  sim.RunConfig
	rule sim.Metropolis
	rng  *rand.Rand

	view HaloView

	toAbove   chan<- []sim.Spin // first row, read by the rank above
	toBelow   chan<- []sim.Spin // last row, read by the rank below
	fromAbove <-chan []sim.Spin
	fromBelow <-chan []sim.Spin
	samples   chan<- partSnapshot

	proposed int64
	accepted int64
}

func newWorker(rank int, cfg sim.RunConfig, part sim.Lattice, rng *rand.Rand) *worker {
	return &worker{
		rank: rank,
		cfg:  cfg,
		rule: sim.Metropolis{Temperature: cfg.Temperature},
		rng:  rng,
		view: HaloView{Topology: cfg.Topology, Rank: rank, Part: part},
	}
}

// run performs cfg.Sweeps sweeps and sends its partition at every sweep
// isReportSweep selects.
func (w *worker) run(ctx context.Context) error {
	if err := w.sample(ctx, 0); err != nil {
		return err
	}
	for sweep := int64(1); sweep <= w.cfg.Sweeps; sweep++ {
		if err := w.exchange(ctx); err != nil {
			return err
		}
		w.sweep()
		if isReportSweep(sweep, w.cfg) {
			if err := w.sample(ctx, sweep); err != nil {
				return err
			}
		}
	}
	logrus.Debugf("worker %d done: %d/%d flips accepted", w.rank, w.accepted, w.proposed)
	return nil
}

// exchange publishes the partition's boundary rows and refreshes the halos.
func (w *worker) exchange(ctx context.Context) error {
	topo := w.cfg.Topology
	if err := send(ctx, w.toAbove, w.view.Part.Row(0, topo.RowSize)); err != nil {
		return err
	}
	if err := send(ctx, w.toBelow, w.view.Part.Row(topo.RowsPerProc-1, topo.RowSize)); err != nil {
		return err
	}
	above, err := receive(ctx, w.fromAbove)
	if err != nil {
		return err
	}
	below, err := receive(ctx, w.fromBelow)
	if err != nil {
		return err
	}
	w.view.Above, w.view.Below = above, below
	return nil
}

// sweep proposes PartitionCells flips at uniformly random local sites.
// Halos stay fixed for the whole sweep.
func (w *worker) sweep() {
	topo := w.cfg.Topology
	cells := topo.PartitionCells()
	for n := 0; n < cells; n++ {
		local := w.rng.Intn(cells)
		global := topo.GlobalIndex(w.rank, local)
		delta := sim.EnergyChange(w.view, global, topo.RowSize, topo.TotalRows())
		w.proposed++
		if w.rule.Accept(delta, w.rng) {
			w.view.Part = sim.FlipSpin(w.view.Part, local)
			w.accepted++
		}
	}
}

func (w *worker) sample(ctx context.Context, sweep int64) error {
	return send(ctx, w.samples, partSnapshot{
		rank:     w.rank,
		sweep:    sweep,
		part:     w.view.Part,
		proposed: w.proposed,
		accepted: w.accepted,
	})
}

// isSampleSweep selects sweep 0, every SampleEvery-th sweep and the last one.
func isSampleSweep(sweep int64, cfg sim.RunConfig) bool {
	return sweep == 0 || sweep == cfg.Sweeps || sweep%cfg.SampleEvery == 0
}

// isSnapshotSweep selects every SnapshotEvery-th sweep and the last one.
func isSnapshotSweep(sweep int64, cfg sim.RunConfig) bool {
	return sweep == cfg.Sweeps || (cfg.SnapshotEvery > 0 && sweep%cfg.SnapshotEvery == 0)
}

func isReportSweep(sweep int64, cfg sim.RunConfig) bool {
	return isSampleSweep(sweep, cfg) || isSnapshotSweep(sweep, cfg)
}

func send[T any](ctx context.Context, ch chan<- T, v T) error {
	select {
	case ch <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func receive[T any](ctx context.Context, ch <-chan T) (T, error) {
	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
