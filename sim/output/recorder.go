package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/ising-sim/ising-sim/sim"
	"github.com/ising-sim/ising-sim/sim/cluster"
	"github.com/ising-sim/ising-sim/sim/params"
	"github.com/ising-sim/ising-sim/sim/trace"
)

// File names inside a run directory.
const (
	EnergyLogName        = "energy.txt"
	MagnetizationLogName = "magnetization.txt"
	SamplesCSVName       = "samples.csv"
	SummaryName          = "summary.yaml"
	FinalGridName        = "final_grid.txt"
)

// Recorder writes samples of one repeat into its run directory. It
// implements cluster.Observer. Write failures are logged and skipped so a
// broken disk never stops the simulation.
type Recorder struct {
	dir     string
	rowSize int

	samplesFile          *os.File
	samplesHeaderWritten bool
}

// NewRecorder empties the scalar logs, opens the sample CSV in dir and
// writes the parameter record. A reused directory therefore only describes
// the run being recorded.
func NewRecorder(dir string, cfg sim.RunConfig, p params.Params) (*Recorder, error) {
	for _, name := range []string{EnergyLogName, MagnetizationLogName} {
		if err := truncateLog(filepath.Join(dir, name)); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(filepath.Join(dir, SamplesCSVName))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", SamplesCSVName, err)
	}
	r := &Recorder{
		dir:         dir,
		rowSize:     cfg.Topology.RowSize,
		samplesFile: f,
	}
	if err := params.Save(filepath.Join(dir, params.DefaultFileName), p); err != nil {
		logrus.Errorf("Could not write parameter record: %v", err)
	}
	return r, nil
}

// Dir returns the run directory.
func (r *Recorder) Dir() string { return r.dir }

// Observe implements cluster.Observer.
func (r *Recorder) Observe(s cluster.Sample) error {
	if s.Sampled || s.Final {
		r.logFailure("energy log", AppendScalar(filepath.Join(r.dir, EnergyLogName), s.Record.Energy))
		r.logFailure("magnetization log", AppendScalar(filepath.Join(r.dir, MagnetizationLogName), s.Record.Magnetization))
		r.logFailure("sample CSV", r.writeSample(s.Record))
	}
	if s.Snapshot || s.Final {
		r.logFailure("snapshot", SaveGrid(s.Grid, r.rowSize, s.Record.Sweep, r.dir))
	}
	if s.Final {
		r.logFailure("final grid", r.writeFinalGrid(s.Grid))
	}
	return nil
}

// WriteSummary stores summary.yaml.
func (r *Recorder) WriteSummary(summary *trace.RunSummary) error {
	data, err := summary.YAML()
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	path := filepath.Join(r.dir, SummaryName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Close closes the sample CSV.
func (r *Recorder) Close() error {
	if r == nil || r.samplesFile == nil {
		return nil
	}
	return r.samplesFile.Close()
}

func (r *Recorder) writeSample(record trace.SampleRecord) error {
	records := []trace.SampleRecord{record}
	if !r.samplesHeaderWritten {
		if err := gocsv.Marshal(records, r.samplesFile); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
		r.samplesHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.samplesFile); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

func (r *Recorder) writeFinalGrid(grid sim.Lattice) error {
	f, err := os.Create(filepath.Join(r.dir, FinalGridName))
	if err != nil {
		return err
	}
	if err := WriteGridText(f, grid, r.rowSize, r.rowSize); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (r *Recorder) logFailure(what string, err error) {
	if err != nil {
		logrus.Errorf("Skipping %s in %s: %v", what, r.dir, err)
	}
}

func truncateLog(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return f.Close()
}
