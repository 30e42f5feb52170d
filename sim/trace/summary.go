package trace

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// RunSummary aggregates statistics from a RunTrace.
type RunSummary struct {
	Repeat              int     `yaml:"repeat"`
	Samples             int     `yaml:"samples"`
	FinalSweep          int64   `yaml:"final_sweep"`
	FinalEnergy         float64 `yaml:"final_energy"`
	FinalMagnetization  float64 `yaml:"final_magnetization"`
	MeanEnergy          float64 `yaml:"mean_energy"`
	StdDevEnergy        float64 `yaml:"stddev_energy"`
	MeanMagnetization   float64 `yaml:"mean_magnetization"`
	StdDevMagnetization float64 `yaml:"stddev_magnetization"`
	AcceptanceRate      float64 `yaml:"acceptance_rate"`
}

// Summarize computes aggregate statistics from a RunTrace.
// Safe for nil or empty traces (returns zero-value fields). Standard
// deviations of a single sample are reported as 0.
func Summarize(rt *RunTrace) *RunSummary {
	summary := &RunSummary{}
	last, ok := rt.Last()
	if !ok {
		return summary
	}

	summary.Repeat = rt.Repeat
	summary.Samples = len(rt.Samples)
	summary.FinalSweep = last.Sweep
	summary.FinalEnergy = last.Energy
	summary.FinalMagnetization = last.Magnetization
	if last.Proposed > 0 {
		summary.AcceptanceRate = float64(last.Accepted) / float64(last.Proposed)
	}

	summary.MeanEnergy, summary.StdDevEnergy = meanStdDev(rt.Energies())
	summary.MeanMagnetization, summary.StdDevMagnetization = meanStdDev(rt.Magnetizations())
	return summary
}

// YAML encodes the summary for summary.yaml.
func (s *RunSummary) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

func meanStdDev(xs []float64) (float64, float64) {
	if len(xs) == 1 {
		return xs[0], 0
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}
