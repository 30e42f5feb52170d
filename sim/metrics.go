// Tracks run-wide Monte Carlo counters such as proposed and accepted flips.

package sim

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
)

// Metrics aggregates flip statistics for final reporting.
type Metrics struct {
	Proposed int64 // flips proposed across all workers
	Accepted int64 // flips kept by the Metropolis rule

	PerWorkerAccepted map[int]int64 // rank -> accepted flips
}

// NewMetrics returns a Metrics ready for Add.
func NewMetrics() *Metrics {
	return &Metrics{PerWorkerAccepted: make(map[int]int64)}
}

// Add folds one worker's counters in.
func (m *Metrics) Add(rank int, proposed, accepted int64) {
	m.Proposed += proposed
	m.Accepted += accepted
	m.PerWorkerAccepted[rank] += accepted
}

// AcceptanceRate returns Accepted/Proposed, or 0 before any proposal.
func (m *Metrics) AcceptanceRate() float64 {
	if m.Proposed == 0 {
		return 0
	}
	return float64(m.Accepted) / float64(m.Proposed)
}

// Print displays aggregated counters at the end of a run.
func (m *Metrics) Print() {
	m.Fprint(os.Stdout)
}

// Fprint writes the counters Print displays to w, one line per worker after
// the totals.
func (m *Metrics) Fprint(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Proposed Flips   : %d\n", m.Proposed)
	fmt.Fprintf(w, "Accepted Flips   : %d\n", m.Accepted)
	fmt.Fprintf(w, "Acceptance Rate  : %.4f\n", m.AcceptanceRate())
	for _, rank := range slices.Sorted(maps.Keys(m.PerWorkerAccepted)) {
		fmt.Fprintf(w, "  Worker %-8d: %d accepted\n", rank, m.PerWorkerAccepted[rank])
	}
}
