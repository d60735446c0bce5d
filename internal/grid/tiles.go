// Package grid converts the template and overlay layers of a map to and
// from the raw byte layout stored in the MapPack and OverlayPack sections.
package grid

import (
	"encoding/binary"
	"fmt"

	"github.com/dyuri/ramap/internal/catalog"
	"github.com/dyuri/ramap/internal/model"
)

// ObsoleteClearThreshold is the share, in percent, of off-map border
// cells that must carry the obsolete clear id before the whole layer is
// treated as using it for clear terrain.
const ObsoleteClearThreshold = 80

// Result collects the problems found while decoding a layer.
type Result struct {
	Messages []string
	// Modified is set when decoding changed the data, so that saving
	// would not reproduce the input.
	Modified bool
}

func (r *Result) fix(format string, args ...interface{}) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
	r.Modified = true
}

// EncodeTiles writes the template layer: one little-endian u16 template
// id per cell, followed by one icon byte per cell.
func EncodeTiles(g *model.CellGrid[*model.Template]) []byte {
	n := g.Metrics().Length()
	out := make([]byte, n*3)
	for i := 0; i < n; i++ {
		id := catalog.NoTemplate
		icon := byte(0)
		if t := g.Get(i); t != nil && t.Type != nil && !t.Type.IsClear() {
			id = t.Type.ID
			icon = byte(t.Icon)
		}
		binary.LittleEndian.PutUint16(out[i*2:], id)
		out[n*2+i] = icon
	}
	return out
}

// DecodeTiles fills g from the template layer in data. Cells holding
// unknown templates, templates from another theater, or icons the
// template does not have are cleared and reported.
func DecodeTiles(data []byte, g *model.CellGrid[*model.Template], bounds model.Bounds, cat *catalog.Catalog, theater model.Theater) Result {
	var res Result
	m := g.Metrics()
	n := m.Length()
	g.Clear()

	if len(data) < n*3 {
		res.fix("Template data is %d bytes, expected %d; map is incomplete.", len(data), n*3)
		padded := make([]byte, n*3)
		copy(padded, data)
		data = padded
	}

	obsoleteClear := usesObsoleteClear(data, m, bounds, cat, theater)

	for cell := 0; cell < n; cell++ {
		id := binary.LittleEndian.Uint16(data[cell*2:])
		icon := int(data[n*2+cell])
		if id == catalog.NoTemplate {
			continue
		}
		x, y := m.Location(cell)

		tt := cat.Template(id)
		if tt == nil {
			res.fix("Unknown template value %d at cell [%d,%d]; clearing.", id, x, y)
			continue
		}
		// The obsolete clear id only counts as empty in its own theaters
		// or when the whole layer uses it.
		if tt.IsClear() && id != catalog.ObsoleteClearID {
			continue
		}
		if !tt.Theaters.Has(theater) {
			if id == catalog.ObsoleteClearID && obsoleteClear {
				continue
			}
			res.fix("Template '%s' at cell [%d,%d] is not available in the %s theater; clearing.", tt.Name, x, y, theater)
			continue
		}
		if tt.IsClear() {
			continue
		}
		if icon >= tt.NumIcons() {
			res.fix("Template '%s' at cell [%d,%d] has an icon set (%d) that is outside its icons range; clearing.", tt.Name, x, y, icon)
			continue
		}
		if !tt.IconAllowed(icon) {
			if alt := repairIcon(tt, icon, cat, theater); alt != nil {
				res.fix("Template '%s' at cell [%d,%d] has an icon set (%d) that is not part of its placeable cells; changed to '%s'.", tt.Name, x, y, icon, alt.Name)
				g.Set(cell, &model.Template{Type: alt, Icon: icon})
				continue
			}
			res.fix("Template '%s' at cell [%d,%d] has an icon set (%d) that is not part of its placeable cells; clearing.", tt.Name, x, y, icon)
			continue
		}
		g.Set(cell, &model.Template{Type: tt, Icon: icon})
	}
	return res
}

// usesObsoleteClear detects layers written by tools that stored clear
// terrain as the obsolete clear id. This is a heuristic on the cells
// outside the playable area, where nothing but clear terrain is expected.
func usesObsoleteClear(data []byte, m model.Metrics, bounds model.Bounds, cat *catalog.Catalog, theater model.Theater) bool {
	if tt := cat.Template(catalog.ObsoleteClearID); tt != nil && tt.Theaters.Has(theater) {
		return false
	}
	border, matches := 0, 0
	for cell := 0; cell < m.Length(); cell++ {
		x, y := m.Location(cell)
		if bounds.Contains(x, y) {
			continue
		}
		border++
		if binary.LittleEndian.Uint16(data[cell*2:]) == catalog.ObsoleteClearID {
			matches++
		}
	}
	return border > 0 && matches*100 > border*ObsoleteClearThreshold
}

// repairIcon looks for a template of the same family, usable in the
// theater, that has icon as a placeable cell. Older maps used the icons
// of damaged bridge and shore variants interchangeably.
func repairIcon(tt *model.TemplateType, icon int, cat *catalog.Catalog, theater model.Theater) *model.TemplateType {
	for _, alt := range cat.Family(tt.Family) {
		if alt == tt || !alt.Theaters.Has(theater) {
			continue
		}
		if alt.NumIcons() == tt.NumIcons() && alt.IconAllowed(icon) {
			return alt
		}
	}
	return nil
}
