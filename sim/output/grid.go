package output

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ising-sim/ising-sim/sim"
)

// SnapshotFileName returns the binary snapshot name for a sweep.
func SnapshotFileName(sweep int64) string {
	return fmt.Sprintf("spins_%d.bin", sweep)
}

// SaveGrid writes the first rowSize*rowSize sites of grid to
// dir/spins_<sweep>.bin as little-endian int32 values.
func SaveGrid(grid sim.Lattice, rowSize int, sweep int64, dir string) error {
	path := filepath.Join(dir, SnapshotFileName(sweep))
	values := make([]int32, rowSize*rowSize)
	for i := range values {
		values[i] = int32(grid.At(i))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, values); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// LoadGrid reads a snapshot written by SaveGrid.
func LoadGrid(path string, rowSize int) (sim.Lattice, error) {
	f, err := os.Open(path)
	if err != nil {
		return sim.Lattice{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	values := make([]int32, rowSize*rowSize)
	if err := binary.Read(bufio.NewReader(f), binary.LittleEndian, values); err != nil {
		return sim.Lattice{}, fmt.Errorf("reading %s: %w", path, err)
	}
	spins := make([]sim.Spin, len(values))
	for i, v := range values {
		if v != 0 && v != 1 {
			return sim.Lattice{}, fmt.Errorf("%s: site %d holds %d, want 0 or 1", path, i, v)
		}
		spins[i] = sim.Spin(v)
	}
	return sim.NewLattice(spins), nil
}

// WriteGridText writes rows lines of rowSize space-separated spins.
func WriteGridText(w io.Writer, grid sim.Lattice, rows, rowSize int) error {
	bw := bufio.NewWriter(w)
	for r := 0; r < rows; r++ {
		for c := 0; c < rowSize; c++ {
			bw.WriteString(strconv.Itoa(int(grid.At(r*rowSize + c))))
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// AppendScalar appends v to path as a "%f\n" line, creating the file if needed.
func AppendScalar(path string, v float64) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := fmt.Fprintf(f, "%f\n", v); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return f.Close()
}
