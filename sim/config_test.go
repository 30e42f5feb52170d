package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRunConfig() RunConfig {
	return RunConfig{
		Topology:    Topology{RowSize: 8, RowsPerProc: 4, NumProc: 2},
		Coupling:    Coupling{J: 1, B: 0},
		Temperature: 2.0,
		Sweeps:      10,
		SampleEvery: 1,
		Key:         NewSimulationKey(42),
	}
}

func TestRunConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunConfig)
		wantErr string
	}{
		{"valid", func(*RunConfig) {}, ""},
		{"not square", func(c *RunConfig) { c.Topology.RowsPerProc = 3 }, "square"},
		{"bad topology", func(c *RunConfig) { c.Topology.RowSize = 0 }, "row size"},
		{"zero temperature", func(c *RunConfig) { c.Temperature = 0 }, "temperature"},
		{"negative sweeps", func(c *RunConfig) { c.Sweeps = -1 }, "iterations"},
		{"zero sample interval", func(c *RunConfig) { c.SampleEvery = 0 }, "sample"},
		{"negative snapshot interval", func(c *RunConfig) { c.SnapshotEvery = -2 }, "snapshot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validRunConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSquareTopology(t *testing.T) {
	topo, err := SquareTopology(12, 3)
	require.NoError(t, err)
	assert.Equal(t, Topology{RowSize: 12, RowsPerProc: 4, NumProc: 3}, topo)
	assert.True(t, topo.Square())

	_, err = SquareTopology(10, 3)
	assert.ErrorContains(t, err, "divisible")

	_, err = SquareTopology(0, 1)
	assert.Error(t, err)

	_, err = SquareTopology(8, 0)
	assert.Error(t, err)
}
