package validate

import (
	"strings"
	"testing"

	"github.com/dyuri/ramap/internal/catalog"
	"github.com/dyuri/ramap/internal/model"
)

func newMap(cat *catalog.Catalog) *model.Map {
	return model.New(model.Temperate, cat.Houses)
}

func trigger(name string, events ...model.EventType) *model.Trigger {
	t := model.NewTrigger(name)
	t.Event1.Type = events[0]
	if len(events) > 1 {
		t.EventControl = model.EventOr
		t.Event2.Type = events[1]
	}
	return t
}

func contains(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestApplicable(t *testing.T) {
	triggers := []*model.Trigger{
		trigger("cell", model.EventPlayerEntered),
		trigger("unit", model.EventDestroyed),
		trigger("spy", model.EventSpied),
		trigger("time", model.EventTime),
		trigger("mix", model.EventTime, model.EventCrossHorizontal),
	}
	s := Applicable(triggers)

	tests := []struct {
		kind    Kind
		trigger string
		want    LinkResult
	}{
		{CellKind, "cell", LinkOK},
		{StructureKind, "CELL", LinkOK},
		{UnitKind, "cell", LinkNotApplicable},
		{UnitKind, "unit", LinkOK},
		{StructureKind, "unit", LinkOK},
		{CellKind, "unit", LinkNotApplicable},
		{StructureKind, "spy", LinkOK},
		{UnitKind, "spy", LinkNotApplicable},
		{CellKind, "time", LinkNotApplicable},
		{CellKind, "mix", LinkOK},
		{UnitKind, "nope", LinkUnknown},
		{UnitKind, "None", LinkOK},
		{UnitKind, "", LinkOK},
	}
	for _, tt := range tests {
		if got := s.Link(tt.kind, tt.trigger); got != tt.want {
			t.Errorf("Link(%d, %q) = %d, want %d", tt.kind, tt.trigger, got, tt.want)
		}
	}
}

func TestCheckTriggersFatal(t *testing.T) {
	cat := catalog.New()
	m := newMap(cat)

	create := trigger("crt", model.EventTime)
	create.Action1.Type = model.ActionCreateTeam
	text := trigger("txt", model.EventTime)
	text.Action1.Type = model.ActionTextTrigger
	text.Action1.Data = 500
	m.Triggers = []*model.Trigger{create, text}

	msgs, fatal, fixed := CheckTriggers(m, true, false)
	if !fatal || fixed {
		t.Fatalf("fatal = %v, fixed = %v, want true, false", fatal, fixed)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2: %v", len(msgs), msgs)
	}

	// Fixing clamps the text id but cannot invent a team.
	msgs, fatal, fixed = CheckTriggers(m, false, true)
	if !fatal || !fixed {
		t.Errorf("fatal = %v, fixed = %v, want true, true", fatal, fixed)
	}
	if text.Action1.Data != model.TextMax {
		t.Errorf("text id = %d, want %d", text.Action1.Data, model.TextMax)
	}
	if !contains(msgs, "set to 209") {
		t.Errorf("messages = %v", msgs)
	}
}

func TestCheckTriggersFix(t *testing.T) {
	cat := catalog.New()
	m := newMap(cat)

	tr := trigger("long1", model.EventGlobalSet)
	tr.House = 77
	tr.Event1.Data = 40
	tr.Event1.Team = "ghost"
	tr.Action1.Type = model.ActionForceTrigger
	tr.Action1.Trigger = "gone"
	m.Triggers = []*model.Trigger{tr}

	msgs, fatal, fixed := CheckTriggers(m, false, false)
	if fatal || fixed {
		t.Fatalf("fatal = %v, fixed = %v", fatal, fixed)
	}
	for _, want := range []string{"longer than 4", "invalid house id 77", "unknown team 'ghost'", "global 40", "unknown trigger 'gone'"} {
		if !contains(msgs, want) {
			t.Errorf("missing %q in %v", want, msgs)
		}
	}
	if tr.House != 77 {
		t.Error("check without fix changed the trigger")
	}

	if _, _, fatalOnlyFixed := CheckTriggers(m, true, true); fatalOnlyFixed {
		t.Error("fatal-only pass fixed warnings")
	}

	_, _, fixed = CheckTriggers(m, false, true)
	if !fixed {
		t.Fatal("fix pass reported no fixes")
	}
	if tr.House != -1 || tr.Event1.Team != model.NoneName || tr.Event1.Data != model.GlobalMax || tr.Action1.Trigger != model.NoneName {
		t.Errorf("trigger not fixed: %+v", tr)
	}
}

func TestCheckTeams(t *testing.T) {
	cat := catalog.New()
	m := newMap(cat)
	m.Waypoints[3].Cell = 1000

	team := model.NewTeamType("attackers")
	team.House = 2
	team.Trigger = "none1"
	team.Classes = []model.TeamClass{{Type: "E1", Count: 5}, {Type: "XYZ", Count: 1}, {Type: "1TNK", Count: 0}}
	team.Missions = []model.TeamMission{{Mission: 3, Argument: 3}, {Mission: 1, Argument: 7}, {Mission: 99}}
	m.TeamTypes = []*model.TeamType{team}

	msgs, fatal, fixed := CheckTeams(m, cat, false, true)
	if fatal || !fixed {
		t.Fatalf("fatal = %v, fixed = %v", fatal, fixed)
	}
	for _, want := range []string{"longer than 8", "unknown trigger 'none1'", "unknown type 'XYZ'", "count of 0", "waypoint 7", "unknown mission 99"} {
		if !contains(msgs, want) {
			t.Errorf("missing %q in %v", want, msgs)
		}
	}
	if len(team.Classes) != 1 || team.Classes[0].Type != "E1" {
		t.Errorf("classes = %v", team.Classes)
	}
	if len(team.Missions) != 2 {
		t.Errorf("missions = %v", team.Missions)
	}
	if team.Trigger != model.NoneName {
		t.Errorf("trigger = %q", team.Trigger)
	}
}

func TestCheckObjectTriggers(t *testing.T) {
	cat := catalog.New()
	m := newMap(cat)
	m.Triggers = []*model.Trigger{trigger("area", model.EventPlayerEntered)}

	tank := &model.Unit{Type: cat.Unit("2TNK", model.Vehicle), House: cat.House("USSR"), Trigger: "area"}
	powr := &model.Building{Type: cat.Building("POWR"), House: cat.House("USSR"), Trigger: "area"}
	tree := &model.Terrain{Type: cat.Terrain("T01"), Trigger: "lost"}
	m.Technos.Add(m.Metrics.Cell(10, 10), tank)
	m.Technos.Add(m.Metrics.Cell(20, 20), powr)
	m.Technos.Add(m.Metrics.Cell(30, 30), tree)
	m.CellTriggers[m.Metrics.Cell(5, 5)] = "area"
	m.CellTriggers[m.Metrics.Cell(6, 5)] = "lost"

	msgs, fixed := CheckObjectTriggers(m, true)
	if !fixed {
		t.Fatal("nothing fixed")
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3: %v", len(msgs), msgs)
	}
	if !strings.Contains(msgs[0], "Unit '2TNK' at cell [10,10]") || !strings.Contains(msgs[0], "applicable to units") {
		t.Errorf("unit message = %q", msgs[0])
	}
	if !strings.Contains(msgs[1], "links to unknown trigger 'lost'") {
		t.Errorf("terrain message = %q", msgs[1])
	}
	if tank.Trigger != model.NoneName || tree.Trigger != model.NoneName || powr.Trigger != "area" {
		t.Errorf("triggers = %q %q %q", tank.Trigger, tree.Trigger, powr.Trigger)
	}
	if len(m.CellTriggers) != 1 {
		t.Errorf("cell triggers = %v", m.CellTriggers)
	}
}

func TestBadNameChars(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"abcd", ""},
		{"a,b,c", ","},
		{"x=y;z", "=;"},
		{"tab\there", "\t"},
		{"héé", "?"},
	}
	for _, tt := range tests {
		if got := BadNameChars(tt.name); got != tt.want {
			t.Errorf("BadNameChars(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestValidateAggregates(t *testing.T) {
	cat := catalog.New()
	m := newMap(cat)
	tr := trigger("t1", model.EventTime)
	tr.Action1.Type = model.ActionCreateTeam
	m.Triggers = []*model.Trigger{tr}
	m.CellTriggers[0] = "t1"

	r := Validate(m, cat, false, false)
	if !r.Fatal || r.Fixed {
		t.Errorf("report = %+v", r)
	}
	if !contains(r.Messages, "Cell trigger at cell [0,0]") {
		t.Errorf("messages = %v", r.Messages)
	}

	r = Validate(m, cat, true, false)
	if len(r.Messages) != 1 {
		t.Errorf("fatal-only messages = %v", r.Messages)
	}
}
