// Package params reads and writes the plain-text parameter record that
// accompanies every run:
//
//	Net Size: 64
//	J: 1
//	B: 0
//	Number of iterations: 1000
//	Number repeats: 3
//
// Each value is the text after the first ':' on its line.
package params

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultFileName is the record's name inside a run directory.
const DefaultFileName = "parameters.txt"

const (
	labelNetSize    = "Net Size"
	labelJ          = "J"
	labelB          = "B"
	labelIterations = "Number of iterations"
	labelRepeats    = "Number repeats"
)

// Params is the typed content of a parameter record.
type Params struct {
	NetSize    int
	J          float64
	B          float64
	Iterations int64
	Repeats    int64
}

// Write emits the record, one labelled value per line.
func (p Params) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: %d\n%s: %s\n%s: %s\n%s: %d\n%s: %d\n",
		labelNetSize, p.NetSize,
		labelJ, formatFloat(p.J),
		labelB, formatFloat(p.B),
		labelIterations, p.Iterations,
		labelRepeats, p.Repeats)
	return err
}

// Read parses a record. Lines without ':' and unknown labels are ignored;
// all five labels must be present.
func Read(r io.Reader) (Params, error) {
	var p Params
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		i := strings.Index(line, ":")
		if i < 0 {
			continue
		}
		label := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])

		var err error
		switch label {
		case labelNetSize:
			p.NetSize, err = strconv.Atoi(value)
		case labelJ:
			p.J, err = strconv.ParseFloat(value, 64)
		case labelB:
			p.B, err = strconv.ParseFloat(value, 64)
		case labelIterations:
			p.Iterations, err = strconv.ParseInt(value, 10, 64)
		case labelRepeats:
			p.Repeats, err = strconv.ParseInt(value, 10, 64)
		default:
			continue
		}
		if err != nil {
			return Params{}, fmt.Errorf("line %d (%s): %w", lineNo, label, err)
		}
		seen[label] = true
	}
	if err := scanner.Err(); err != nil {
		return Params{}, fmt.Errorf("reading parameter record: %w", err)
	}

	for _, label := range []string{labelNetSize, labelJ, labelB, labelIterations, labelRepeats} {
		if !seen[label] {
			return Params{}, fmt.Errorf("parameter record is missing %q", label)
		}
	}
	return p, nil
}

// Save writes the record to path, replacing any existing file.
func Save(path string, p Params) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := p.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Load reads the record at path.
func Load(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
