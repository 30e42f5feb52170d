package params

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_Format(t *testing.T) {
	var buf bytes.Buffer
	p := Params{NetSize: 64, J: 1, B: -0.25, Iterations: 100000, Repeats: 3}

	require.NoError(t, p.Write(&buf))

	want := "Net Size: 64\nJ: 1\nB: -0.25\nNumber of iterations: 100000\nNumber repeats: 3\n"
	assert.Equal(t, want, buf.String())
}

func TestRead_ParsesAfterColon(t *testing.T) {
	// GIVEN a record with irregular spacing, a comment line and an unknown label
	in := strings.Join([]string{
		"Net Size:32",
		"J:   0.5",
		"B: 1e-3 ",
		"no colon here",
		"Seed: 7",
		"Number of iterations: 9000000000",
		"Number repeats: 2",
	}, "\n")

	// WHEN it is read
	p, err := Read(strings.NewReader(in))

	// THEN every known value is parsed
	require.NoError(t, err)
	assert.Equal(t, Params{NetSize: 32, J: 0.5, B: 0.001, Iterations: 9000000000, Repeats: 2}, p)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{"missing label", "Net Size: 4\nJ: 1\nB: 0\nNumber repeats: 1\n", "Number of iterations"},
		{"bad int", "Net Size: four\nJ: 1\nB: 0\nNumber of iterations: 1\nNumber repeats: 1\n", "line 1"},
		{"bad float", "Net Size: 4\nJ: x\nB: 0\nNumber of iterations: 1\nNumber repeats: 1\n", "line 2"},
		{"empty", "", "Net Size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	p := Params{NetSize: 16, J: -1.125, B: 0.3, Iterations: 50, Repeats: 1}

	require.NoError(t, Save(path, p))
	got, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
