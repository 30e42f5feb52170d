package sim

// AvgMagnetism returns the arithmetic mean of the raw 0/1 values in grid.
// An empty grid yields 0.
func AvgMagnetism(grid Lattice) float64 {
	if grid.Len() == 0 {
		return 0
	}
	up := 0
	for _, s := range grid.spins {
		up += int(s)
	}
	return float64(up) / float64(grid.Len())
}

// PhysicalMagnetization maps a raw 0/1 mean onto the ±1 moment scale.
func PhysicalMagnetization(mean float64) float64 {
	return 2*mean - 1
}
