package grid

import (
	"github.com/dyuri/ramap/internal/catalog"
	"github.com/dyuri/ramap/internal/model"
)

// EncodeOverlay writes one overlay id byte per cell, NoOverlay for empty.
func EncodeOverlay(g *model.CellGrid[*model.Overlay]) []byte {
	n := g.Metrics().Length()
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = catalog.NoOverlay
		if o := g.Get(i); o != nil && o.Type != nil {
			out[i] = o.Type.ID
		}
	}
	return out
}

// DecodeOverlay fills g from the overlay layer in data. Bytes with the
// high bit set are empty cells, as the game reads them as negative ids.
// The game cannot handle overlay on the first and last row, so those
// are dropped.
func DecodeOverlay(data []byte, g *model.CellGrid[*model.Overlay], cat *catalog.Catalog, theater model.Theater) Result {
	var res Result
	m := g.Metrics()
	g.Clear()

	n := min(len(data), m.Length())
	if len(data) < m.Length() {
		res.fix("Overlay data is %d bytes, expected %d; map is incomplete.", len(data), m.Length())
	}

	for cell := 0; cell < n; cell++ {
		id := data[cell]
		if id&0x80 != 0 {
			continue
		}
		x, y := m.Location(cell)

		if y == 0 || y == m.Height-1 {
			name := "unknown"
			if ot := cat.Overlay(id); ot != nil {
				name = ot.Name
			}
			res.fix("Overlay '%s' at cell [%d,%d] is on the top or bottom row of the map; removing.", name, x, y)
			continue
		}
		ot := cat.Overlay(id)
		if ot == nil {
			res.fix("Unknown overlay value %d at cell [%d,%d]; removing.", id, x, y)
			continue
		}
		if !ot.Theaters.Has(theater) {
			res.fix("Overlay '%s' at cell [%d,%d] is not available in the %s theater; removing.", ot.Name, x, y, theater)
			continue
		}
		g.Set(cell, &model.Overlay{Type: ot})
	}
	return res
}
