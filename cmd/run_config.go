package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ising-sim/ising-sim/sim"
	"github.com/ising-sim/ising-sim/sim/params"
)

// RunSettings is the full set of knobs for a `run`, as found in a --config
// YAML file. Field names double as YAML keys.
type RunSettings struct {
	NetSize       int     `yaml:"net_size"`
	Workers       int     `yaml:"workers"`
	J             float64 `yaml:"j"`
	B             float64 `yaml:"b"`
	Temperature   float64 `yaml:"temperature"`
	Iterations    int64   `yaml:"iterations"`
	Repeats       int64   `yaml:"repeats"`
	SampleEvery   int64   `yaml:"sample_every"`
	SnapshotEvery int64   `yaml:"snapshot_every"`
	Seed          int64   `yaml:"seed"`
	OutputDir     string  `yaml:"output_dir"`
}

// DefaultRunSettings mirrors the flag defaults of `run`.
func DefaultRunSettings() RunSettings {
	return RunSettings{
		NetSize:     64,
		Workers:     4,
		J:           1.0,
		B:           0.0,
		Temperature: 2.0,
		Iterations:  1000,
		Repeats:     1,
		SampleEvery: 10,
		Seed:        42,
		OutputDir:   ".",
	}
}

// loadRunSettings overlays the YAML file at path onto base.
// Uses strict field checking: a misspelled key is an error.
func loadRunSettings(path string, base RunSettings) (RunSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading run config %s: %w", path, err)
	}
	settings := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil {
		return base, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return settings, nil
}

// withParams overlays the five values of a parameter record.
func (s RunSettings) withParams(p params.Params) RunSettings {
	s.NetSize = p.NetSize
	s.J = p.J
	s.B = p.B
	s.Iterations = p.Iterations
	s.Repeats = p.Repeats
	return s
}

// Params returns the parameter record describing these settings.
func (s RunSettings) Params() params.Params {
	return params.Params{NetSize: s.NetSize, J: s.J, B: s.B, Iterations: s.Iterations, Repeats: s.Repeats}
}

// Validate checks the settings that RunConfig does not cover.
func (s RunSettings) Validate() error {
	if s.Repeats < 1 {
		return fmt.Errorf("number of repeats must be >= 1, got %d", s.Repeats)
	}
	_, err := s.RunConfig(0)
	return err
}

// RunConfig builds the simulation config for one repeat. Each repeat gets
// its own simulation key so repeats are independent but reproducible.
func (s RunSettings) RunConfig(repeat int) (sim.RunConfig, error) {
	topo, err := sim.SquareTopology(s.NetSize, s.Workers)
	if err != nil {
		return sim.RunConfig{}, err
	}
	cfg := sim.RunConfig{
		Topology:      topo,
		Coupling:      sim.Coupling{J: s.J, B: s.B},
		Temperature:   s.Temperature,
		Sweeps:        s.Iterations,
		SampleEvery:   s.SampleEvery,
		SnapshotEvery: s.SnapshotEvery,
		Key:           sim.NewSimulationKey(s.Seed + int64(repeat)),
	}
	if err := cfg.Validate(); err != nil {
		return sim.RunConfig{}, err
	}
	return cfg, nil
}
