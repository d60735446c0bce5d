package model

// CellGrid holds one optional value per cell.
type CellGrid[T any] struct {
	metrics Metrics
	cells   []T
}

// NewCellGrid creates an empty grid.
func NewCellGrid[T any](m Metrics) *CellGrid[T] {
	return &CellGrid[T]{metrics: m, cells: make([]T, m.Length())}
}

// Metrics returns the grid dimensions.
func (g *CellGrid[T]) Metrics() Metrics {
	return g.metrics
}

// Get returns the value of a cell. Out of range cells return the zero value.
func (g *CellGrid[T]) Get(cell int) T {
	var zero T
	if !g.metrics.Contains(cell) {
		return zero
	}
	return g.cells[cell]
}

// At returns the value at x,y.
func (g *CellGrid[T]) At(x, y int) T {
	var zero T
	if !g.metrics.ContainsPoint(x, y) {
		return zero
	}
	return g.cells[g.metrics.Cell(x, y)]
}

// Set stores v in cell. It reports false if the cell is out of range.
func (g *CellGrid[T]) Set(cell int, v T) bool {
	if !g.metrics.Contains(cell) {
		return false
	}
	g.cells[cell] = v
	return true
}

// Clear resets every cell to the zero value.
func (g *CellGrid[T]) Clear() {
	clear(g.cells)
}

// Each calls fn for every cell in row-major order.
func (g *CellGrid[T]) Each(fn func(cell int, v T)) {
	for i, v := range g.cells {
		fn(i, v)
	}
}
