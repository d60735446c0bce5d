package model

// Metrics describes the dimensions of the cell grid.
type Metrics struct {
	Width  int
	Height int
}

// Length returns the number of cells.
func (m Metrics) Length() int {
	return m.Width * m.Height
}

// Contains reports whether cell is a valid cell index.
func (m Metrics) Contains(cell int) bool {
	return cell >= 0 && cell < m.Length()
}

// ContainsPoint reports whether x,y lies on the grid.
func (m Metrics) ContainsPoint(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// Cell converts a point to a cell index.
func (m Metrics) Cell(x, y int) int {
	return y*m.Width + x
}

// Location converts a cell index to a point.
func (m Metrics) Location(cell int) (x, y int) {
	return cell % m.Width, cell / m.Width
}

// Bounds is the playable rectangle of the map, from the [Map] section.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether x,y is inside the rectangle.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && y >= b.Y && x < b.X+b.Width && y < b.Y+b.Height
}
