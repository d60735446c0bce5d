package mapfile

import (
	"fmt"
	"strings"

	"github.com/dyuri/ramap/internal/model"
	"github.com/dyuri/ramap/internal/validate"
)

// record is one comma separated entry being parsed. The first failing
// field sets err and later reads return zero values.
type record struct {
	section string
	key     string
	tokens  []string
	err     error
}

func newRecord(section, key, value string, want int) *record {
	rec := &record{section: section, key: key, tokens: strings.Split(value, ",")}
	for i := range rec.tokens {
		rec.tokens[i] = strings.TrimSpace(rec.tokens[i])
	}
	if len(rec.tokens) != want {
		rec.err = fmt.Errorf("[%s] entry '%s' has %d values, expected %d; skipping", section, key, len(rec.tokens), want)
	}
	return rec
}

func (rec *record) str(i int) string {
	if rec.err != nil || i >= len(rec.tokens) {
		return ""
	}
	return rec.tokens[i]
}

func (rec *record) number(i int, field string) int {
	if rec.err != nil || i >= len(rec.tokens) {
		return 0
	}
	n, err := atoi(rec.tokens[i])
	if err != nil {
		rec.err = fmt.Errorf("[%s] entry '%s' has an invalid %s value '%s'; skipping", rec.section, rec.key, field, rec.tokens[i])
	}
	return n
}

func (rec *record) fail(format string, args ...interface{}) {
	if rec.err == nil {
		rec.err = fmt.Errorf("[%s] entry '%s' "+format+"; skipping", append([]interface{}{rec.section, rec.key}, args...)...)
	}
}

func (r *Reader) records(name string, want int, fn func(*record)) {
	sec := r.section(name)
	if sec == nil {
		return
	}
	r.log.WithField("section", name).Debug("reading section")
	for _, k := range sec.Keys() {
		r.skipRepeats(k, fmt.Sprintf("[%s] entry '%s'", name, k.Name()))
		rec := newRecord(name, k.Name(), k.String(), want)
		if rec.err == nil {
			fn(rec)
		}
		if rec.err != nil {
			r.fix("%s.", rec.err)
		}
	}
}

func (r *Reader) house(rec *record, i int) *model.HouseType {
	name := rec.str(i)
	h := r.m.HouseByName(name)
	if h == nil {
		rec.fail("has unknown house '%s'", name)
	}
	return h
}

func (r *Reader) cell(rec *record, i int) int {
	cell := rec.number(i, "cell")
	if rec.err == nil && !r.m.Metrics.Contains(cell) {
		rec.fail("is outside the map (cell %d)", cell)
	}
	return cell
}

func (r *Reader) mission(rec *record, i int) string {
	name := rec.str(i)
	if m := r.cat.Mission(name); m != "" {
		return m
	}
	if rec.err == nil {
		r.fix("[%s] entry '%s' has unknown mission '%s'; using '%s'.", rec.section, rec.key, name, r.cat.Missions[defaultMission])
	}
	return r.cat.Missions[defaultMission]
}

// defaultMission is the index of "Guard" in the mission list.
const defaultMission = 5

func strength(rec *record, i int) int {
	n := rec.number(i, "strength")
	if rec.err == nil && (n < 0 || n > 256) {
		rec.fail("has strength %d outside [0,256]", n)
	}
	return n
}

// link validates a trigger reference and clears it when unusable.
func (r *Reader) link(what, name string, cell int, kind validate.Kind, trigger string) string {
	if model.IsNone(trigger) {
		return model.NoneName
	}
	res := r.sets.Link(kind, trigger)
	if res != validate.LinkOK {
		x, y := r.m.Metrics.Location(cell)
		r.fix("%s; clearing.", validate.LinkMessage(what, name, x, y, kind, trigger, res))
		return model.NoneName
	}
	return r.m.FindTrigger(trigger).Name
}

// place adds o to the map or reports what blocks it.
func (r *Reader) place(what, name string, cell int, o model.Occupier) bool {
	if r.m.Technos.Add(cell, o) {
		return true
	}
	x, y := r.m.Metrics.Location(cell)
	for _, c := range r.m.Technos.Footprint(cell, o) {
		if c < 0 {
			r.fix("%s '%s' at cell [%d,%d] does not fit on the map; skipping.", what, name, x, y)
			return false
		}
		if blocker := r.m.Technos.At(c); blocker != nil {
			bx, by := r.m.Metrics.Location(c)
			bwhat, bname := describe(blocker)
			r.fix("%s '%s' at cell [%d,%d] overlaps %s '%s' at cell [%d,%d]; skipping.", what, name, x, y, strings.ToLower(bwhat), bname, bx, by)
			return false
		}
	}
	r.fix("%s '%s' at cell [%d,%d] could not be placed; skipping.", what, name, x, y)
	return false
}

func describe(o model.Occupier) (what, name string) {
	switch o := o.(type) {
	case *model.Building:
		return "Structure", o.Type.Name
	case *model.Unit:
		return unitWhat(o.Type.Kind), o.Type.Name
	case *model.Terrain:
		return "Terrain", o.Type.Name
	case *model.InfantryGroup:
		for _, inf := range o.Infantry {
			if inf != nil {
				return "Infantry", inf.Type.Name
			}
		}
		return "Infantry", ""
	}
	return "Object", ""
}

func unitWhat(k model.UnitKind) string {
	switch k {
	case model.Vessel:
		return "Ship"
	case model.Aircraft:
		return "Aircraft"
	}
	return "Unit"
}

func (r *Reader) readTerrain() {
	sec := r.section(SectionTerrain)
	if sec == nil {
		return
	}
	r.log.WithField("section", SectionTerrain).Debug("reading section")
	for _, k := range sec.Keys() {
		r.skipRepeats(k, fmt.Sprintf("[%s] entry '%s'", SectionTerrain, k.Name()))
		tokens := strings.Split(k.String(), ",")
		if len(tokens) > 2 {
			r.fix("[%s] entry '%s' has %d values, expected 1 or 2; skipping.", SectionTerrain, k.Name(), len(tokens))
			continue
		}
		cell, err := atoi(k.Name())
		if err != nil || !r.m.Metrics.Contains(cell) {
			r.fix("[%s] entry '%s' is not on a valid cell; skipping.", SectionTerrain, k.Name())
			continue
		}
		name := strings.TrimSpace(tokens[0])
		tt := r.cat.Terrain(name)
		if tt == nil {
			r.fix("[%s] entry '%s' has unknown terrain type '%s'; skipping.", SectionTerrain, k.Name(), name)
			continue
		}
		if !tt.Theaters.Has(r.m.Theater) {
			r.fix("Terrain '%s' at cell %d is not available in the %s theater; skipping.", tt.Name, cell, r.m.Theater)
			continue
		}
		t := &model.Terrain{Type: tt, Trigger: model.NoneName}
		if len(tokens) == 2 {
			t.Trigger = r.link("Terrain", tt.Name, cell, validate.UnitKind, strings.TrimSpace(tokens[1]))
		}
		r.place("Terrain", tt.Name, cell, t)
	}
}

func (r *Reader) readUnits(name string, kind model.UnitKind, want int) {
	what := unitWhat(kind)
	r.records(name, want, func(rec *record) {
		house := r.house(rec, 0)
		typeName := rec.str(1)
		ut := r.cat.Unit(typeName, kind)
		if ut == nil {
			rec.fail("has unknown %s type '%s'", strings.ToLower(what), typeName)
		}
		u := &model.Unit{
			Type:      ut,
			House:     house,
			Strength:  strength(rec, 2),
			Direction: rec.number(4, "facing"),
		}
		cell := r.cell(rec, 3)
		if rec.err != nil {
			return
		}
		u.Mission = r.mission(rec, 5)
		u.Trigger = model.NoneName
		if want > 6 {
			u.Trigger = r.link(what, ut.Name, cell, validate.UnitKind, rec.str(6))
		}
		r.place(what, ut.Name, cell, u)
	})
}

func (r *Reader) readInfantry() {
	r.records(SectionInfantry, 8, func(rec *record) {
		house := r.house(rec, 0)
		typeName := rec.str(1)
		it := r.cat.InfantryType(typeName)
		if it == nil {
			rec.fail("has unknown infantry type '%s'", typeName)
		}
		inf := &model.Infantry{
			Type:      it,
			House:     house,
			Strength:  strength(rec, 2),
			Direction: rec.number(6, "facing"),
		}
		cell := r.cell(rec, 3)
		slot := rec.number(4, "sub-position")
		if rec.err == nil && (slot < 0 || slot >= model.InfantrySlots) {
			rec.fail("has sub-position %d outside [0,%d]", slot, model.InfantrySlots-1)
		}
		if rec.err != nil {
			return
		}
		inf.Mission = r.mission(rec, 5)
		inf.Trigger = r.link("Infantry", it.Name, cell, validate.UnitKind, rec.str(7))

		x, y := r.m.Metrics.Location(cell)
		switch o := r.m.Technos.At(cell).(type) {
		case nil:
			g := &model.InfantryGroup{}
			g.Infantry[slot] = inf
			r.place("Infantry", it.Name, cell, g)
		case *model.InfantryGroup:
			if prev := o.Infantry[slot]; prev != nil {
				r.fix("Infantry '%s' at cell [%d,%d] uses sub-position %d already taken by '%s'; skipping.", it.Name, x, y, slot, prev.Type.Name)
				return
			}
			o.Infantry[slot] = inf
		default:
			bwhat, bname := describe(o)
			r.fix("Infantry '%s' at cell [%d,%d] overlaps %s '%s' at cell [%d,%d]; skipping.", it.Name, x, y, strings.ToLower(bwhat), bname, x, y)
		}
	})
}

func (r *Reader) readStructures() {
	r.records(SectionStructures, 8, func(rec *record) {
		house := r.house(rec, 0)
		typeName := rec.str(1)
		bt := r.cat.Building(typeName)
		if bt == nil {
			rec.fail("has unknown structure type '%s'", typeName)
		}
		b := &model.Building{
			Type:      bt,
			House:     house,
			Strength:  strength(rec, 2),
			Direction: rec.number(4, "facing"),
			Sellable:  rec.number(6, "sellable") != 0,
			Rebuild:   rec.number(7, "rebuild") != 0,
		}
		cell := r.cell(rec, 3)
		if rec.err != nil {
			return
		}
		b.Trigger = r.link("Structure", bt.Name, cell, validate.StructureKind, rec.str(5))
		r.place("Structure", bt.Name, cell, b)
	})
}

func (r *Reader) readSmudge() {
	r.records(SectionSmudge, 3, func(rec *record) {
		typeName := rec.str(0)
		st := r.cat.Smudge(typeName)
		if st == nil {
			rec.fail("has unknown smudge type '%s'", typeName)
		}
		cell := r.cell(rec, 1)
		icon := rec.number(2, "data")
		if rec.err != nil {
			return
		}
		x, y := r.m.Metrics.Location(cell)
		if st.Flags&model.SmudgeBib != 0 {
			r.fix("Smudge '%s' at cell [%d,%d] is a building bib, which is added by its building; skipping.", st.Name, x, y)
			return
		}
		if st.Flags&model.SmudgeCrater != 0 && icon != 0 {
			r.fix("Crater '%s' at cell [%d,%d] has size %d; craters must start at size 0. Fixed.", st.Name, x, y, icon)
			icon = 0
		}
		if icon < 0 || icon >= st.Icons {
			r.fix("Smudge '%s' at cell [%d,%d] has an invalid icon %d; using 0.", st.Name, x, y, icon)
			icon = 0
		}
		if r.m.Smudge.Get(cell) != nil {
			r.fix("Smudge '%s' at cell [%d,%d] overlaps another smudge; skipping.", st.Name, x, y)
			return
		}
		r.m.Smudge.Set(cell, &model.Smudge{Type: st, Icon: icon})
	})
}

// Base node positions are stored as a game coordinate: the lepton
// position of the cell center, y in the high word.
func coordToCell(m model.Metrics, coord int64) (int, bool) {
	x := int((coord & 0xFFFF) >> 8)
	y := int((coord >> 16 & 0xFFFF) >> 8)
	if !m.ContainsPoint(x, y) {
		return 0, false
	}
	return m.Cell(x, y), true
}

func cellToCoord(m model.Metrics, cell int) int64 {
	x, y := m.Location(cell)
	return int64(y*256+128)<<16 | int64(x*256+128)
}

func (r *Reader) readBase() {
	sec := r.section(SectionBase)
	if sec == nil {
		return
	}
	base := &r.m.Base
	if v, ok := keyValue(sec, "Player"); ok {
		if h := r.m.HouseByName(v); h != nil {
			base.Player = h.Name
		} else {
			r.fix("[%s] Player '%s' is not a known house; ignoring.", SectionBase, v)
		}
	}
	count := -1
	if v, ok := keyValue(sec, "Count"); ok {
		n, err := atoi(v)
		if err != nil {
			r.fix("[%s] Count has an invalid value '%s'; ignoring.", SectionBase, v)
		} else {
			count = n
		}
	}
	for _, k := range sec.Keys() {
		r.skipRepeats(k, fmt.Sprintf("[%s] entry '%s'", SectionBase, k.Name()))
		if strings.EqualFold(k.Name(), "Player") || strings.EqualFold(k.Name(), "Count") {
			continue
		}
		if _, err := atoi(k.Name()); err != nil {
			r.fix("[%s] entry '%s' is not a node number; skipping.", SectionBase, k.Name())
			continue
		}
		tokens := strings.Split(k.String(), ",")
		if len(tokens) != 2 {
			r.fix("[%s] entry '%s' has %d values, expected 2; skipping.", SectionBase, k.Name(), len(tokens))
			continue
		}
		bt := r.cat.Building(strings.TrimSpace(tokens[0]))
		if bt == nil {
			r.fix("[%s] entry '%s' has unknown structure type '%s'; skipping.", SectionBase, k.Name(), tokens[0])
			continue
		}
		var coord int64
		if _, err := fmt.Sscan(strings.TrimSpace(tokens[1]), &coord); err != nil {
			r.fix("[%s] entry '%s' has an invalid coordinate '%s'; skipping.", SectionBase, k.Name(), tokens[1])
			continue
		}
		cell, ok := coordToCell(r.m.Metrics, coord)
		if !ok {
			r.fix("[%s] entry '%s' is outside the map; skipping.", SectionBase, k.Name())
			continue
		}
		base.Nodes = append(base.Nodes, model.BaseNode{Type: bt, Cell: cell})
	}
	if count >= 0 && count != len(base.Nodes) {
		r.warn("[%s] Count is %d but %d nodes were read.", SectionBase, count, len(base.Nodes))
	}
}
