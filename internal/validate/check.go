package validate

import (
	"fmt"
	"slices"

	"github.com/dyuri/ramap/internal/catalog"
	"github.com/dyuri/ramap/internal/model"
)

// checker accumulates the outcome of one check pass.
type checker struct {
	fatalOnly bool
	fix       bool
	msgs      []string
	fatal     bool
	fixed     bool
}

// error records a condition that blocks saving.
func (c *checker) error(format string, args ...interface{}) {
	c.msgs = append(c.msgs, fmt.Sprintf(format, args...))
	c.fatal = true
}

// warn records a condition the game tolerates. Warnings are skipped
// entirely in fatal-only mode.
func (c *checker) warn(format string, args ...interface{}) {
	if c.fatalOnly {
		return
	}
	c.msgs = append(c.msgs, fmt.Sprintf(format, args...))
}

// repair reports a warning and, in fix mode, applies apply.
func (c *checker) repair(apply func(), format string, args ...interface{}) {
	if c.fatalOnly {
		return
	}
	if c.fix {
		apply()
		c.fixed = true
		format += " Fixed."
	}
	c.msgs = append(c.msgs, fmt.Sprintf(format, args...))
}

// drop reports a problem with a list item and reports whether fix mode
// removes the item.
func (c *checker) drop(format string, args ...interface{}) bool {
	if c.fatalOnly {
		return false
	}
	msg := fmt.Sprintf(format, args...)
	if c.fix {
		c.msgs = append(c.msgs, msg+" Removed.")
		c.fixed = true
		return true
	}
	c.msgs = append(c.msgs, msg)
	return false
}

func validHouse(m *model.Map, id int) bool {
	return m.HouseByID(id) != nil
}

// CheckTriggers validates every trigger of m. Missing references and
// out of range values are warnings, cleared in fix mode. A create team
// action without a team and a text id outside the string table are
// fatal; fix mode clamps the text id.
func CheckTriggers(m *model.Map, fatalOnly, fix bool) (msgs []string, fatal, fixed bool) {
	c := &checker{fatalOnly: fatalOnly, fix: fix}
	for _, t := range m.Triggers {
		checkTrigger(c, m, t)
	}
	return c.msgs, c.fatal, c.fixed
}

func checkTrigger(c *checker, m *model.Map, t *model.Trigger) {
	checkName("Trigger", t.Name, MaxTriggerName, c.warn)
	if model.IsNone(t.Name) {
		c.warn("Trigger '%s' uses the reserved name for no trigger.", t.Name)
	}

	if t.House != -1 && !validHouse(m, t.House) {
		c.repair(func() { t.House = -1 }, "Trigger '%s' has an invalid house id %d.", t.Name, t.House)
	}

	for i, e := range t.Events() {
		n := i + 1
		if !e.Type.Valid() {
			c.repair(func() { *e = model.Event{Team: model.NoneName} }, "Trigger '%s' event %d has an unknown type %d.", t.Name, n, e.Type)
			continue
		}
		if !model.IsNone(e.Team) && m.FindTeamType(e.Team) == nil {
			c.repair(func() { e.Team = model.NoneName }, "Trigger '%s' event %d refers to unknown team '%s'.", t.Name, n, e.Team)
		}
		if model.EventNeedsTeam(e.Type) && model.IsNone(e.Team) {
			c.warn("Trigger '%s' event %d (%s) has no team set.", t.Name, n, e.Type)
		}
		checkData(c, t.Name, "event", n, model.EventDataKind(e.Type), &e.Data)
	}

	for i, a := range t.Actions() {
		n := i + 1
		if !a.Type.Valid() {
			c.repair(func() { *a = model.Action{Team: model.NoneName, Trigger: model.NoneName} }, "Trigger '%s' action %d has an unknown type %d.", t.Name, n, a.Type)
			continue
		}
		if !model.IsNone(a.Team) && m.FindTeamType(a.Team) == nil {
			c.repair(func() { a.Team = model.NoneName }, "Trigger '%s' action %d refers to unknown team '%s'.", t.Name, n, a.Team)
		}
		if model.ActionNeedsTeam(a.Type) && model.IsNone(a.Team) {
			if a.Type == model.ActionCreateTeam {
				c.error("Trigger '%s' action %d (%s) has no team set.", t.Name, n, a.Type)
			} else {
				c.warn("Trigger '%s' action %d (%s) has no team set.", t.Name, n, a.Type)
			}
		}
		if !model.IsNone(a.Trigger) && m.FindTrigger(a.Trigger) == nil {
			c.repair(func() { a.Trigger = model.NoneName }, "Trigger '%s' action %d refers to unknown trigger '%s'.", t.Name, n, a.Trigger)
		}
		if model.ActionNeedsTrigger(a.Type) && model.IsNone(a.Trigger) {
			c.warn("Trigger '%s' action %d (%s) has no trigger set.", t.Name, n, a.Type)
		}
		checkData(c, t.Name, "action", n, model.ActionDataKind(a.Type), &a.Data)
	}
}

func checkData(c *checker, trigger, what string, n int, kind model.DataKind, data *int32) {
	v, changed := model.NormalizeData(kind, *data)
	if !changed {
		return
	}
	switch kind {
	case model.DataText:
		if c.fix {
			c.msgs = append(c.msgs, fmt.Sprintf("Trigger '%s' %s %d has text id %d outside [%d,%d]; set to %d.", trigger, what, n, *data, model.TextMin, model.TextMax, v))
			*data = v
			c.fixed = true
			return
		}
		c.error("Trigger '%s' %s %d has text id %d outside [%d,%d].", trigger, what, n, *data, model.TextMin, model.TextMax)
	case model.DataGlobal:
		old := *data
		c.repair(func() { *data = v }, "Trigger '%s' %s %d has global %d outside [%d,%d].", trigger, what, n, old, model.GlobalMin, model.GlobalMax)
	default:
		old := *data
		c.repair(func() { *data = v }, "Trigger '%s' %s %d has data %d out of range for its type.", trigger, what, n, old)
	}
}

// CheckTeams validates every team type of m against the map and cat.
// None of the team problems are fatal.
func CheckTeams(m *model.Map, cat *catalog.Catalog, fatalOnly, fix bool) (msgs []string, fatal, fixed bool) {
	c := &checker{fatalOnly: fatalOnly, fix: fix}
	for _, tt := range m.TeamTypes {
		checkTeam(c, m, cat, tt)
	}
	return c.msgs, c.fatal, c.fixed
}

func checkTeam(c *checker, m *model.Map, cat *catalog.Catalog, tt *model.TeamType) {
	checkName("Team", tt.Name, MaxTeamName, c.warn)

	if !validHouse(m, tt.House) {
		c.warn("Team '%s' has an invalid house id %d.", tt.Name, tt.House)
	}
	if !model.IsNone(tt.Trigger) && m.FindTrigger(tt.Trigger) == nil {
		c.repair(func() { tt.Trigger = model.NoneName }, "Team '%s' refers to unknown trigger '%s'.", tt.Name, tt.Trigger)
	}
	if tt.Origin != -1 && !waypointPlaced(m, tt.Origin) {
		c.warn("Team '%s' starts at waypoint %d, which is not placed.", tt.Name, tt.Origin)
	}

	classes := tt.Classes[:0:0]
	for _, cl := range tt.Classes {
		if !cat.IsTeamTechno(cl.Type) && c.drop("Team '%s' contains unknown type '%s'.", tt.Name, cl.Type) {
			continue
		}
		if cl.Count <= 0 && c.drop("Team '%s' has a count of %d for '%s'.", tt.Name, cl.Count, cl.Type) {
			continue
		}
		classes = append(classes, cl)
	}
	tt.Classes = classes
	if len(tt.Classes) == 0 {
		c.warn("Team '%s' has no members.", tt.Name)
	}

	missions := tt.Missions[:0:0]
	for i, ms := range tt.Missions {
		if ms.Mission < 0 || ms.Mission >= len(cat.TeamMissions) {
			if c.drop("Team '%s' order %d has an unknown mission %d.", tt.Name, i+1, ms.Mission) {
				continue
			}
		} else if cat.TeamMissions[ms.Mission].Arg == catalog.ArgWaypoint && !waypointPlaced(m, ms.Argument) {
			c.warn("Team '%s' order %d (%s) refers to waypoint %d, which is not placed.", tt.Name, i+1, cat.TeamMissions[ms.Mission].Name, ms.Argument)
		}
		missions = append(missions, ms)
	}
	tt.Missions = missions
}

func waypointPlaced(m *model.Map, index int) bool {
	return index >= 0 && index < len(m.Waypoints) && m.Waypoints[index].HasCell()
}

// CheckObjectTriggers re-checks the trigger links of all placed objects
// and cell triggers. Bad links are cleared in fix mode.
func CheckObjectTriggers(m *model.Map, fix bool) (msgs []string, fixed bool) {
	c := &checker{fix: fix}
	sets := Applicable(m.Triggers)

	link := func(what, name string, cell int, kind Kind, trigger *string) {
		r := sets.Link(kind, *trigger)
		if r == LinkOK {
			return
		}
		x, y := m.Metrics.Location(cell)
		msg := LinkMessage(what, name, x, y, kind, *trigger, r)
		if fix {
			*trigger = model.NoneName
			c.fixed = true
			msg += "; clearing"
		}
		c.msgs = append(c.msgs, msg+".")
	}

	for _, p := range m.Technos.All() {
		switch o := p.Occupier.(type) {
		case *model.Building:
			link("Structure", o.Type.Name, p.Cell, StructureKind, &o.Trigger)
		case *model.Unit:
			link(unitWhat(o.Type.Kind), o.Type.Name, p.Cell, UnitKind, &o.Trigger)
		case *model.Terrain:
			link("Terrain", o.Type.Name, p.Cell, UnitKind, &o.Trigger)
		case *model.InfantryGroup:
			for _, inf := range o.Infantry {
				if inf != nil {
					link("Infantry", inf.Type.Name, p.Cell, UnitKind, &inf.Trigger)
				}
			}
		}
	}

	for _, cell := range sortedCells(m.CellTriggers) {
		trigger := m.CellTriggers[cell]
		if sets.Link(CellKind, trigger) == LinkOK {
			continue
		}
		link("Cell trigger", "", cell, CellKind, &trigger)
		if fix {
			delete(m.CellTriggers, cell)
		}
	}
	return c.msgs, c.fixed
}

func sortedCells(cells map[int]string) []int {
	keys := make([]int, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func unitWhat(k model.UnitKind) string {
	switch k {
	case model.Vessel:
		return "Ship"
	case model.Aircraft:
		return "Aircraft"
	default:
		return "Unit"
	}
}

// Report is the combined result of Validate.
type Report struct {
	Messages []string
	// Fatal is set when the map must not be saved.
	Fatal bool
	// Fixed is set when fix mode changed the map.
	Fixed bool
}

// Validate runs every check on m.
func Validate(m *model.Map, cat *catalog.Catalog, fatalOnly, fix bool) Report {
	var r Report
	add := func(msgs []string, fatal, fixed bool) {
		r.Messages = append(r.Messages, msgs...)
		r.Fatal = r.Fatal || fatal
		r.Fixed = r.Fixed || fixed
	}
	add(CheckTriggers(m, fatalOnly, fix))
	add(CheckTeams(m, cat, fatalOnly, fix))
	if !fatalOnly {
		msgs, fixed := CheckObjectTriggers(m, fix)
		add(msgs, false, fixed)
	}
	return r
}
