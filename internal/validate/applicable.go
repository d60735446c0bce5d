// Package validate cross-checks triggers, teams and the trigger links of
// placed objects. The checks only read the map unless asked to fix it.
package validate

import (
	"fmt"
	"strings"

	"github.com/dyuri/ramap/internal/model"
)

// Kind is the category of object a trigger can be attached to.
type Kind int

const (
	CellKind Kind = iota
	UnitKind
	StructureKind
)

func (k Kind) plural() string {
	switch k {
	case CellKind:
		return "cells"
	case UnitKind:
		return "units"
	default:
		return "structures"
	}
}

var (
	cellEvents = []model.EventType{
		model.EventPlayerEntered,
		model.EventCrossHorizontal,
		model.EventCrossVertical,
		model.EventEntersZone,
	}
	unitEvents = []model.EventType{
		model.EventDiscovered,
		model.EventAttacked,
		model.EventDestroyed,
		model.EventAny,
	}
	structureEvents = []model.EventType{
		model.EventPlayerEntered,
		model.EventSpied,
		model.EventThieved,
		model.EventDiscovered,
		model.EventAttacked,
		model.EventDestroyed,
		model.EventAny,
	}
)

// Sets holds the upper-cased names of the triggers usable by each kind
// of object, plus every known trigger name.
type Sets struct {
	All       map[string]bool
	Cell      map[string]bool
	Unit      map[string]bool
	Structure map[string]bool
}

// Applicable builds the trigger sets for a trigger list.
func Applicable(triggers []*model.Trigger) Sets {
	s := Sets{
		All:       make(map[string]bool),
		Cell:      make(map[string]bool),
		Unit:      make(map[string]bool),
		Structure: make(map[string]bool),
	}
	for _, t := range triggers {
		key := strings.ToUpper(t.Name)
		s.All[key] = true
		if t.HasEvent(cellEvents...) {
			s.Cell[key] = true
		}
		if t.HasEvent(unitEvents...) {
			s.Unit[key] = true
		}
		if t.HasEvent(structureEvents...) {
			s.Structure[key] = true
		}
	}
	return s
}

// LinkResult is the outcome of checking an object's trigger reference.
type LinkResult int

const (
	LinkOK LinkResult = iota
	LinkUnknown
	LinkNotApplicable
)

// Link checks a trigger reference from an object of the given kind.
// An empty reference is always fine.
func (s Sets) Link(kind Kind, trigger string) LinkResult {
	if model.IsNone(trigger) {
		return LinkOK
	}
	key := strings.ToUpper(trigger)
	if !s.All[key] {
		return LinkUnknown
	}
	var set map[string]bool
	switch kind {
	case CellKind:
		set = s.Cell
	case UnitKind:
		set = s.Unit
	default:
		set = s.Structure
	}
	if !set[key] {
		return LinkNotApplicable
	}
	return LinkOK
}

// LinkMessage describes a failed link of the object what/name at x,y,
// without trailing punctuation.
func LinkMessage(what, name string, x, y int, kind Kind, trigger string, r LinkResult) string {
	var b strings.Builder
	b.WriteString(what)
	if name != "" {
		b.WriteString(" '" + name + "'")
	}
	switch r {
	case LinkUnknown:
		return b.String() + fmt.Sprintf(" at cell [%d,%d] links to unknown trigger '%s'", x, y, trigger)
	case LinkNotApplicable:
		return b.String() + fmt.Sprintf(" at cell [%d,%d] links to trigger '%s' which does not contain an event applicable to %s", x, y, trigger, kind.plural())
	}
	return ""
}
