package sim

// Neighbors holds the linear indices of the four periodic neighbours of a site.
type Neighbors struct {
	Left, Right, Up, Down int
}

// LocalNeighbors returns the neighbours of site i on a rowSize×rowSize torus
// held entirely by one process.
func LocalNeighbors(i, rowSize int) Neighbors {
	x := i / rowSize
	y := i % rowSize

	n := Neighbors{
		Left:  x*rowSize + y - 1,
		Right: x*rowSize + y + 1,
		Up:    (x-1)*rowSize + y,
		Down:  (x+1)*rowSize + y,
	}
	if y == 0 {
		n.Left = x*rowSize + rowSize - 1
	}
	if y == rowSize-1 {
		n.Right = x * rowSize
	}
	if x == 0 {
		n.Up = (rowSize-1)*rowSize + y
	}
	if x == rowSize-1 {
		n.Down = y
	}
	return n
}

// GlobalNeighbors returns the neighbours of global index idx on the torus of
// totalRows rows (all partitions stacked) and rowSize columns. Up and Down of
// a partition's first and last rows land in rows owned by the adjacent
// workers; see Topology.Locate.
func GlobalNeighbors(idx, rowSize, totalRows int) Neighbors {
	cells := rowSize * totalRows

	n := Neighbors{
		Left:  idx - 1,
		Right: idx + 1,
		Up:    idx - rowSize,
		Down:  idx + rowSize,
	}
	if idx%rowSize == 0 {
		n.Left = idx + rowSize - 1
	}
	if idx%rowSize == rowSize-1 {
		n.Right = idx - rowSize + 1
	}
	if idx < rowSize {
		n.Up = idx + cells - rowSize
	}
	if idx >= cells-rowSize {
		n.Down = idx - cells + rowSize
	}
	return n
}
