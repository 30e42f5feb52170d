package sim

import (
	"bytes"
	"strings"
	"testing"
)

func TestMetrics_AcceptanceRate(t *testing.T) {
	m := NewMetrics()
	if m.AcceptanceRate() != 0 {
		t.Errorf("empty metrics acceptance = %v, want 0", m.AcceptanceRate())
	}

	m.Add(0, 100, 25)
	m.Add(1, 100, 75)

	if m.Proposed != 200 || m.Accepted != 100 {
		t.Errorf("totals = %d/%d, want 100/200", m.Accepted, m.Proposed)
	}
	if got := m.AcceptanceRate(); got != 0.5 {
		t.Errorf("AcceptanceRate() = %v, want 0.5", got)
	}
	if m.PerWorkerAccepted[1] != 75 {
		t.Errorf("worker 1 accepted = %d, want 75", m.PerWorkerAccepted[1])
	}
}

func TestMetrics_FprintListsWorkersByRank(t *testing.T) {
	m := NewMetrics()
	m.Add(2, 10, 3)
	m.Add(0, 10, 7)

	var buf bytes.Buffer
	m.Fprint(&buf)

	out := buf.String()
	if !strings.Contains(out, "Acceptance Rate  : 0.5000") {
		t.Errorf("missing acceptance rate in:\n%s", out)
	}
	w0 := strings.Index(out, "Worker 0       : 7 accepted")
	w2 := strings.Index(out, "Worker 2       : 3 accepted")
	if w0 < 0 || w2 < 0 || w0 > w2 {
		t.Errorf("per-worker lines missing or out of order:\n%s", out)
	}
}
