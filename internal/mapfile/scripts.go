package mapfile

import (
	"fmt"
	"strings"

	"github.com/dyuri/ramap/internal/model"
	"github.com/dyuri/ramap/internal/validate"
)

// trigsTokens is the value count of a [Trigs] record.
const trigsTokens = 18

func (r *Reader) readTeamTypes() {
	sec := r.section(SectionTeamTypes)
	if sec == nil {
		return
	}
	r.log.WithField("section", SectionTeamTypes).Debug("reading section")
	for _, k := range sec.Keys() {
		name := k.Name()
		r.skipRepeats(k, fmt.Sprintf("Team '%s'", name))
		if r.m.FindTeamType(name) != nil {
			r.fix("Team '%s' is defined more than once; skipping the duplicate.", name)
			continue
		}
		tt, trigger, err := r.parseTeam(name, k.String())
		if err != nil {
			r.fix("Team '%s' could not be read: %v; skipping.", name, err)
			continue
		}
		if len(name) > validate.MaxTeamName {
			r.warn("Team '%s' has a name longer than %d characters; the game will truncate it.", name, validate.MaxTeamName)
		}
		r.m.TeamTypes = append(r.m.TeamTypes, tt)
		r.teamRef[tt] = trigger
	}
}

func (r *Reader) parseTeam(name, value string) (*model.TeamType, int, error) {
	tokens := strings.Split(value, ",")
	pos := 0
	next := func(field string) (int, error) {
		if pos >= len(tokens) {
			return 0, fmt.Errorf("missing %s", field)
		}
		tok := strings.TrimSpace(tokens[pos])
		pos++
		n, err := atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("invalid %s '%s'", field, tok)
		}
		return n, nil
	}

	tt := model.NewTeamType(name)
	var flags, trigger, count int
	for _, f := range []struct {
		field string
		dst   *int
	}{
		{"house", &tt.House},
		{"flags", &flags},
		{"recruit priority", &tt.RecruitPriority},
		{"initial number", &tt.InitNum},
		{"maximum allowed", &tt.MaxAllowed},
		{"origin", &tt.Origin},
		{"trigger", &trigger},
		{"class count", &count},
	} {
		n, err := next(f.field)
		if err != nil {
			return nil, 0, err
		}
		*f.dst = n
	}
	tt.Flags = model.TeamFlags(flags)

	if r.m.HouseByID(tt.House) == nil {
		r.warn("Team '%s' has an invalid house id %d.", name, tt.House)
	}
	if tt.Origin < -1 || tt.Origin >= model.WaypointCount {
		r.fix("Team '%s' has an invalid origin waypoint %d; clearing.", name, tt.Origin)
		tt.Origin = -1
	}

	for i := 0; i < count; i++ {
		if pos >= len(tokens) {
			return nil, 0, fmt.Errorf("missing class %d", i+1)
		}
		typeName, num, ok := strings.Cut(strings.TrimSpace(tokens[pos]), ":")
		pos++
		n, err := atoi(num)
		if !ok || err != nil {
			return nil, 0, fmt.Errorf("invalid class '%s'", tokens[pos-1])
		}
		if !r.cat.IsTeamTechno(typeName) {
			r.fix("Team '%s' contains unknown type '%s'; removing.", name, typeName)
			continue
		}
		tt.Classes = append(tt.Classes, model.TeamClass{Type: typeName, Count: n})
	}

	count, err := next("mission count")
	if err != nil {
		return nil, 0, err
	}
	for i := 0; i < count; i++ {
		if pos >= len(tokens) {
			return nil, 0, fmt.Errorf("missing mission %d", i+1)
		}
		ms, arg, ok := strings.Cut(strings.TrimSpace(tokens[pos]), ":")
		pos++
		mi, err1 := atoi(ms)
		ai, err2 := atoi(arg)
		if !ok || err1 != nil || err2 != nil {
			return nil, 0, fmt.Errorf("invalid mission '%s'", tokens[pos-1])
		}
		if mi < 0 || mi >= len(r.cat.TeamMissions) {
			r.fix("Team '%s' has unknown mission %d; removing.", name, mi)
			continue
		}
		tt.Missions = append(tt.Missions, model.TeamMission{Mission: mi, Argument: ai})
	}
	if pos != len(tokens) {
		r.warn("Team '%s' has %d unused values.", name, len(tokens)-pos)
	}
	return tt, trigger, nil
}

func (r *Reader) readTriggers() {
	sec := r.section(SectionTrigs)
	if sec == nil {
		return
	}
	r.log.WithField("section", SectionTrigs).Debug("reading section")

	type actionRef struct {
		trigger *model.Trigger
		action  *model.Action
		index   int
	}
	var refs []actionRef

	for _, k := range sec.Keys() {
		name := k.Name()
		r.skipRepeats(k, fmt.Sprintf("Trigger '%s'", name))
		if r.m.FindTrigger(name) != nil {
			r.fix("Trigger '%s' is defined more than once; skipping the duplicate.", name)
			continue
		}
		rec := newRecord(SectionTrigs, name, k.String(), trigsTokens)
		v := make([]int, trigsTokens)
		for i := range v {
			v[i] = rec.number(i, "value")
		}
		if rec.err != nil {
			r.fix("%s.", rec.err)
			continue
		}

		t := model.NewTrigger(name)
		t.Persistence = model.Persistence(v[0])
		t.House = v[1]
		t.EventControl = model.EventControl(v[2])
		t.ActionControl = model.ActionControl(v[3])
		if t.Persistence < model.Volatile || t.Persistence > model.Persistent {
			r.fix("Trigger '%s' has an invalid persistence %d; using volatile.", name, v[0])
			t.Persistence = model.Volatile
		}
		if t.EventControl < model.EventOnly || t.EventControl > model.EventLinked {
			r.fix("Trigger '%s' has an invalid event control %d; using only.", name, v[2])
			t.EventControl = model.EventOnly
		}
		if t.ActionControl < model.ActionOnly || t.ActionControl > model.ActionAnd {
			r.fix("Trigger '%s' has an invalid action control %d; using only.", name, v[3])
			t.ActionControl = model.ActionOnly
		}
		if t.House != -1 && r.m.HouseByID(t.House) == nil {
			r.warn("Trigger '%s' has an invalid house id %d.", name, t.House)
		}

		r.readEvent(t, 1, &t.Event1, v[4:7])
		r.readEvent(t, 2, &t.Event2, v[7:10])
		r.readAction(t, 1, &t.Action1, v[10:14])
		r.readAction(t, 2, &t.Action2, v[14:18])
		refs = append(refs, actionRef{t, &t.Action1, v[12]}, actionRef{t, &t.Action2, v[16]})

		if len(name) > validate.MaxTriggerName {
			r.warn("Trigger '%s' has a name longer than %d characters; the game will truncate it.", name, validate.MaxTriggerName)
		}
		r.m.Triggers = append(r.m.Triggers, t)
	}

	for _, ref := range refs {
		switch {
		case ref.index == -1, ref.action.Type == model.ActionNone:
		case ref.index < 0 || ref.index >= len(r.m.Triggers):
			r.fix("Trigger '%s' refers to trigger number %d, which does not exist; clearing.", ref.trigger.Name, ref.index)
		default:
			ref.action.Trigger = r.m.Triggers[ref.index].Name
		}
	}
}

func (r *Reader) teamName(t *model.Trigger, index int) string {
	if index == -1 {
		return model.NoneName
	}
	if index < 0 || index >= len(r.m.TeamTypes) {
		r.fix("Trigger '%s' refers to team number %d, which does not exist; clearing.", t.Name, index)
		return model.NoneName
	}
	return r.m.TeamTypes[index].Name
}

func (r *Reader) readEvent(t *model.Trigger, n int, e *model.Event, v []int) {
	e.Type = model.EventType(v[0])
	if !e.Type.Valid() {
		r.fix("Trigger '%s' event %d has an unknown type %d; clearing.", t.Name, n, v[0])
		*e = model.Event{Team: model.NoneName}
		return
	}
	e.Team = r.teamName(t, v[1])
	e.Data = int32(v[2])
	if model.NormalizeEventData(e) {
		r.fix("Trigger '%s' event %d (%s) data %d adjusted to %d.", t.Name, n, e.Type, v[2], e.Data)
	}
}

func (r *Reader) readAction(t *model.Trigger, n int, a *model.Action, v []int) {
	a.Type = model.ActionType(v[0])
	if !a.Type.Valid() {
		r.fix("Trigger '%s' action %d has an unknown type %d; clearing.", t.Name, n, v[0])
		*a = model.Action{Team: model.NoneName, Trigger: model.NoneName}
		return
	}
	a.Team = r.teamName(t, v[1])
	a.Data = int32(v[3])
	if model.NormalizeActionData(a) {
		r.fix("Trigger '%s' action %d (%s) data %d adjusted to %d.", t.Name, n, a.Type, v[3], a.Data)
	}
}

func (r *Reader) resolveTeamTriggers() {
	for _, tt := range r.m.TeamTypes {
		index := r.teamRef[tt]
		switch {
		case index == -1:
		case index < 0 || index >= len(r.m.Triggers):
			r.fix("Team '%s' refers to trigger number %d, which does not exist; clearing.", tt.Name, index)
		default:
			tt.Trigger = r.m.Triggers[index].Name
		}
	}
}
