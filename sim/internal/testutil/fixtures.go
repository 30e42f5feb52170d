// Package testutil provides shared test fixtures for the Ising simulator.
// It has no dependency on sim/ so that both in-package and external test
// packages can use it.
package testutil

import (
	"math"
	"testing"
)

// Filled returns n copies of v.
func Filled[T ~uint8](n int, v T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Alternating returns 0,1,0,1,... of length n.
func Alternating[T ~uint8](n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(i % 2)
	}
	return out
}

// Checkerboard returns a rows×cols checkerboard, top-left site 0.
func Checkerboard[T ~uint8](rows, cols int) []T {
	out := make([]T, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[r*cols+c] = T((r + c) % 2)
		}
	}
	return out
}

// FromPattern turns the 0 and 1 characters of pattern into spins, skipping
// anything else, so a lattice can be written as "0110 1001 ...".
func FromPattern[T ~uint8](pattern string) []T {
	out := make([]T, 0, len(pattern))
	for _, ch := range pattern {
		switch ch {
		case '0':
			out = append(out, 0)
		case '1':
			out = append(out, 1)
		}
	}
	return out
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
