package grid

import (
	"encoding/binary"
	"math/rand"
	"strings"
	"testing"

	"github.com/dyuri/ramap/internal/catalog"
	"github.com/dyuri/ramap/internal/model"
)

var (
	metrics = model.Metrics{Width: 128, Height: 128}
	bounds  = model.Bounds{X: 1, Y: 1, Width: 126, Height: 126}
)

func emptyTiles() []byte {
	n := metrics.Length()
	data := make([]byte, n*3)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(data[i*2:], catalog.NoTemplate)
	}
	return data
}

func setTile(data []byte, cell int, id uint16, icon byte) {
	binary.LittleEndian.PutUint16(data[cell*2:], id)
	data[metrics.Length()*2+cell] = icon
}

func TestTilesRoundTrip(t *testing.T) {
	cat := catalog.New()
	rng := rand.New(rand.NewSource(3))

	var usable []*model.TemplateType
	for _, tt := range cat.Templates {
		if tt.Theaters.Has(model.Temperate) && !tt.IsClear() {
			usable = append(usable, tt)
		}
	}

	src := model.NewCellGrid[*model.Template](metrics)
	for cell := 0; cell < metrics.Length(); cell++ {
		if cell%11 == 0 {
			continue
		}
		tt := usable[rng.Intn(len(usable))]
		var allowed []int
		for i := 0; i < tt.NumIcons(); i++ {
			if tt.IconAllowed(i) {
				allowed = append(allowed, i)
			}
		}
		src.Set(cell, &model.Template{Type: tt, Icon: allowed[rng.Intn(len(allowed))]})
	}

	data := EncodeTiles(src)
	if len(data) != metrics.Length()*3 {
		t.Fatalf("encoded %d bytes, want %d", len(data), metrics.Length()*3)
	}

	dst := model.NewCellGrid[*model.Template](metrics)
	res := DecodeTiles(data, dst, bounds, cat, model.Temperate)
	if len(res.Messages) != 0 || res.Modified {
		t.Fatalf("decode reported problems: %v", res.Messages)
	}

	for cell := 0; cell < metrics.Length(); cell++ {
		want, got := src.Get(cell), dst.Get(cell)
		if (want == nil) != (got == nil) {
			t.Fatalf("cell %d: presence mismatch", cell)
		}
		if want != nil && (want.Type != got.Type || want.Icon != got.Icon) {
			t.Fatalf("cell %d: got %s/%d, want %s/%d", cell, got.Type.Name, got.Icon, want.Type.Name, want.Icon)
		}
	}
}

func TestEncodeTilesLayout(t *testing.T) {
	cat := catalog.New()
	g := model.NewCellGrid[*model.Template](metrics)
	g.Set(1, &model.Template{Type: cat.TemplateByName("W2"), Icon: 3})
	g.Set(2, &model.Template{Type: cat.Template(catalog.ClearID), Icon: 7})

	data := EncodeTiles(g)
	n := metrics.Length()
	if got := binary.LittleEndian.Uint16(data[0:]); got != catalog.NoTemplate {
		t.Errorf("cell 0 id = %#x, want %#x", got, catalog.NoTemplate)
	}
	if got := binary.LittleEndian.Uint16(data[2:]); got != 2 {
		t.Errorf("cell 1 id = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint16(data[4:]); got != catalog.NoTemplate {
		t.Errorf("clear cell id = %#x, want %#x", got, catalog.NoTemplate)
	}
	if data[n*2+1] != 3 || data[n*2+2] != 0 {
		t.Errorf("icons = %d,%d, want 3,0", data[n*2+1], data[n*2+2])
	}
}

func TestDecodeIconOutOfRange(t *testing.T) {
	cat := catalog.New()
	w2 := cat.TemplateByName("W2")

	data := emptyTiles()
	cell := metrics.Cell(5, 6)
	setTile(data, cell, w2.ID, byte(w2.NumIcons()))

	g := model.NewCellGrid[*model.Template](metrics)
	res := DecodeTiles(data, g, bounds, cat, model.Temperate)

	if g.Get(cell) != nil {
		t.Error("invalid cell was not cleared")
	}
	if len(res.Messages) != 1 {
		t.Fatalf("got %d messages, want 1: %v", len(res.Messages), res.Messages)
	}
	if !strings.Contains(res.Messages[0], "[5,6]") || !strings.Contains(res.Messages[0], "(4)") {
		t.Errorf("message %q does not name the cell and icon", res.Messages[0])
	}
	if !res.Modified {
		t.Error("Modified not set")
	}
}

func TestDecodeUnknownAndTheater(t *testing.T) {
	cat := catalog.New()
	data := emptyTiles()
	setTile(data, 10, 9999, 0)
	setTile(data, 20, cat.TemplateByName("ICE01").ID, 0)

	g := model.NewCellGrid[*model.Template](metrics)
	res := DecodeTiles(data, g, bounds, cat, model.Temperate)
	if len(res.Messages) != 2 {
		t.Fatalf("got %d messages, want 2: %v", len(res.Messages), res.Messages)
	}
	if !strings.Contains(res.Messages[0], "Unknown template value 9999") {
		t.Errorf("message 0 = %q", res.Messages[0])
	}
	if !strings.Contains(res.Messages[1], "TEMPERATE") {
		t.Errorf("message 1 = %q", res.Messages[1])
	}
	if g.Get(10) != nil || g.Get(20) != nil {
		t.Error("invalid cells were kept")
	}
}

func TestDecodeGroupPlaceholderInAnyTheater(t *testing.T) {
	cat := catalog.New()
	shore := cat.TemplateByName("GRPSHORE")
	if shore == nil || shore.Theaters.Has(model.Interior) {
		t.Fatal("GRPSHORE should be an outdoor group template")
	}
	data := emptyTiles()
	cell := metrics.Cell(10, 10)
	setTile(data, cell, shore.ID, 0)

	g := model.NewCellGrid[*model.Template](metrics)
	res := DecodeTiles(data, g, bounds, cat, model.Interior)
	if len(res.Messages) != 0 || res.Modified {
		t.Errorf("messages = %v, modified = %v", res.Messages, res.Modified)
	}
	if g.Get(cell) != nil {
		t.Errorf("cell = %+v, want empty", g.Get(cell))
	}
}

func TestDecodeRepairsBridgeIcon(t *testing.T) {
	cat := catalog.New()
	br1b := cat.TemplateByName("BR1B")
	data := emptyTiles()
	cell := metrics.Cell(40, 40)
	setTile(data, cell, br1b.ID, 11)

	g := model.NewCellGrid[*model.Template](metrics)
	res := DecodeTiles(data, g, bounds, cat, model.Temperate)

	got := g.Get(cell)
	if got == nil || got.Type.Name != "BR1A" || got.Icon != 11 {
		t.Fatalf("cell = %+v, want BR1A icon 11", got)
	}
	if len(res.Messages) != 1 || !res.Modified {
		t.Errorf("messages = %v, modified = %v", res.Messages, res.Modified)
	}
}

func TestDecodeObsoleteClear(t *testing.T) {
	cat := catalog.New()

	// Every off-map cell uses id 0: the layer is old-style clear.
	data := emptyTiles()
	for cell := 0; cell < metrics.Length(); cell++ {
		x, y := metrics.Location(cell)
		if !bounds.Contains(x, y) || cell%3 == 0 {
			setTile(data, cell, catalog.ObsoleteClearID, 0)
		}
	}
	g := model.NewCellGrid[*model.Template](metrics)
	res := DecodeTiles(data, g, bounds, cat, model.Interior)
	if len(res.Messages) != 0 || res.Modified {
		t.Errorf("obsolete clear layer reported %d messages, modified = %v", len(res.Messages), res.Modified)
	}

	// A handful of id 0 cells is an error in the interior theater.
	data = emptyTiles()
	setTile(data, 0, catalog.ObsoleteClearID, 0)
	setTile(data, metrics.Cell(10, 10), catalog.ObsoleteClearID, 0)
	res = DecodeTiles(data, g, bounds, cat, model.Interior)
	if len(res.Messages) != 2 || !res.Modified {
		t.Errorf("got %d messages (modified %v), want 2", len(res.Messages), res.Modified)
	}

	// Outdoors, id 0 is just clear terrain.
	res = DecodeTiles(data, g, bounds, cat, model.Temperate)
	if len(res.Messages) != 0 {
		t.Errorf("temperate reported %v", res.Messages)
	}
}

func TestOverlayRoundTrip(t *testing.T) {
	cat := catalog.New()
	src := model.NewCellGrid[*model.Overlay](metrics)
	src.Set(metrics.Cell(3, 1), &model.Overlay{Type: cat.Overlay(5)})
	src.Set(metrics.Cell(7, 126), &model.Overlay{Type: cat.Overlay(0)})

	data := EncodeOverlay(src)
	if data[0] != catalog.NoOverlay {
		t.Errorf("empty cell = %#x, want %#x", data[0], catalog.NoOverlay)
	}

	dst := model.NewCellGrid[*model.Overlay](metrics)
	res := DecodeOverlay(data, dst, cat, model.Temperate)
	if len(res.Messages) != 0 {
		t.Fatalf("decode reported %v", res.Messages)
	}
	if o := dst.At(3, 1); o == nil || o.Type.Name != "GOLD01" {
		t.Errorf("cell 3,1 = %+v, want GOLD01", o)
	}
	if o := dst.At(7, 126); o == nil || o.Type.Name != "SBAG" {
		t.Errorf("cell 7,126 = %+v, want SBAG", o)
	}
}

func TestOverlayBorderRows(t *testing.T) {
	cat := catalog.New()
	tests := []struct {
		name string
		cell int
		id   byte
	}{
		{"valid type on first cell", 0, 5},
		{"unknown type on first cell", 0, 100},
		{"last row", metrics.Cell(4, 127), 2},
	}

	for _, tt := range tests {
		data := make([]byte, metrics.Length())
		for i := range data {
			data[i] = catalog.NoOverlay
		}
		data[tt.cell] = tt.id

		g := model.NewCellGrid[*model.Overlay](metrics)
		res := DecodeOverlay(data, g, cat, model.Temperate)
		if g.Get(tt.cell) != nil {
			t.Errorf("%s: overlay kept", tt.name)
		}
		if len(res.Messages) != 1 || !strings.Contains(res.Messages[0], "top or bottom row") {
			t.Errorf("%s: messages = %v", tt.name, res.Messages)
		}
	}
}

func TestOverlayHighBitIsEmpty(t *testing.T) {
	cat := catalog.New()
	data := make([]byte, metrics.Length())
	for i := range data {
		data[i] = 0x80 | byte(i%0x7F)
	}
	data[metrics.Cell(2, 2)] = 20 // FPLS, interior only

	g := model.NewCellGrid[*model.Overlay](metrics)
	res := DecodeOverlay(data, g, cat, model.Snow)
	if len(res.Messages) != 1 {
		t.Fatalf("got %d messages, want 1: %v", len(res.Messages), res.Messages)
	}
	if !strings.Contains(res.Messages[0], "FPLS") {
		t.Errorf("message %q does not name FPLS", res.Messages[0])
	}
}
