package sim

// Coupling groups the Hamiltonian constants.
type Coupling struct {
	J float64 // nearest-neighbour coupling
	B float64 // uniform external field
}

// fieldWeight replaces (±1/2)^2 in the field term; the sign comes from the spin.
const fieldWeight = 0.25

// SingleSpinEnergy returns the energy attributed to site i of a
// rowSize×rowSize single-process torus:
//
//	J*s[i]*(s[left]+s[right]+s[up]+s[down]) + B*0.25*(±1)
//
// Spins enter the coupling term as raw 0/1 values and the field term as ±1.
func SingleSpinEnergy(s SpinReader, i, rowSize int, c Coupling) float64 {
	n := LocalNeighbors(i, rowSize)
	neigh := int(s.At(n.Left)) + int(s.At(n.Right)) + int(s.At(n.Up)) + int(s.At(n.Down))

	sign := -1.0
	if s.At(i) == SpinUp {
		sign = 1.0
	}
	return c.J*float64(s.At(i))*float64(neigh) + c.B*fieldWeight*sign
}

// Energy sums SingleSpinEnergy over every site of a complete rowSize×rowSize
// grid. Each bond is counted from both ends and the total is not halved.
func Energy(grid SpinReader, c Coupling, rowSize int) float64 {
	sum := 0.0
	for i := 0; i < rowSize*rowSize; i++ {
		sum += SingleSpinEnergy(grid, i, rowSize, c)
	}
	return sum
}

// EnergyChange returns the coupling-only energy delta of flipping global
// index idx on a torus of totalRows rows:
//
//	2*s[idx]*(s[left]+s[right]+s[up]+s[down])
//
// The field B is not part of the delta. s must resolve every neighbour of
// idx, including rows owned by other workers. idx outside
// [0, rowSize*totalRows) is not checked.
func EnergyChange(s SpinReader, idx, rowSize, totalRows int) float64 {
	n := GlobalNeighbors(idx, rowSize, totalRows)
	neigh := int(s.At(n.Left)) + int(s.At(n.Right)) + int(s.At(n.Up)) + int(s.At(n.Down))
	return float64(2 * int(s.At(idx)) * neigh)
}
