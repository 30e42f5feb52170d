package trace

// RunTrace collects sample records during one run, in sweep order.
type RunTrace struct {
	Repeat  int
	Samples []SampleRecord
}

// NewRunTrace creates a RunTrace ready for recording.
func NewRunTrace(repeat int) *RunTrace {
	return &RunTrace{
		Repeat:  repeat,
		Samples: make([]SampleRecord, 0),
	}
}

// Record appends a sample record.
func (rt *RunTrace) Record(record SampleRecord) {
	rt.Samples = append(rt.Samples, record)
}

// Last returns the most recent sample and false when nothing was recorded.
func (rt *RunTrace) Last() (SampleRecord, bool) {
	if rt == nil || len(rt.Samples) == 0 {
		return SampleRecord{}, false
	}
	return rt.Samples[len(rt.Samples)-1], true
}

// Energies returns the energy series.
func (rt *RunTrace) Energies() []float64 {
	out := make([]float64, len(rt.Samples))
	for i, s := range rt.Samples {
		out[i] = s.Energy
	}
	return out
}

// Magnetizations returns the raw magnetization series.
func (rt *RunTrace) Magnetizations() []float64 {
	out := make([]float64, len(rt.Samples))
	for i, s := range rt.Samples {
		out[i] = s.Magnetization
	}
	return out
}
