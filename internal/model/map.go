// Package model contains the in-memory representation of a Red Alert
// scenario. It is shared by the INI codec, the grid codec and the
// validators, and knows nothing about the file format.
package model

import "strings"

// Template is a tile cell: a template plus the icon used from it.
type Template struct {
	Type *TemplateType
	Icon int
}

// Overlay is an overlay cell.
type Overlay struct {
	Type *OverlayType
	Icon int
}

// Smudge is a smudge cell.
type Smudge struct {
	Type *SmudgeType
	Icon int
}

// Map is a complete scenario.
type Map struct {
	Metrics Metrics
	Bounds  Bounds
	Theater Theater

	Basic    Basic
	Steam    Steam
	Briefing string

	Templates *CellGrid[*Template]
	Overlay   *CellGrid[*Overlay]
	Smudge    *CellGrid[*Smudge]
	Technos   *OccupierSet

	HouseTypes []*HouseType
	Houses     []House

	Triggers     []*Trigger
	TeamTypes    []*TeamType
	Waypoints    []Waypoint
	CellTriggers map[int]string
	Base         Base

	// Extra holds sections this package does not interpret, in file order.
	Extra []Section

	updating int
}

// Red Alert maps are always 128x128 cells.
const (
	MapWidth  = 128
	MapHeight = 128
)

// New creates an empty map for a list of houses.
func New(theater Theater, houses []*HouseType) *Map {
	metrics := Metrics{Width: MapWidth, Height: MapHeight}
	m := &Map{
		Metrics:    metrics,
		Theater:    theater,
		Templates:  NewCellGrid[*Template](metrics),
		Overlay:    NewCellGrid[*Overlay](metrics),
		Smudge:     NewCellGrid[*Smudge](metrics),
		Technos:    NewOccupierSet(metrics),
		HouseTypes: houses,
	}
	m.reset()
	return m
}

func (m *Map) reset() {
	m.Bounds = Bounds{X: 1, Y: 1, Width: m.Metrics.Width - 2, Height: m.Metrics.Height - 2}
	m.Basic = NewBasic()
	m.Steam = Steam{}
	m.Briefing = ""
	m.Templates.Clear()
	m.Overlay.Clear()
	m.Smudge.Clear()
	m.Technos.Clear()
	m.Houses = make([]House, len(m.HouseTypes))
	for i, ht := range m.HouseTypes {
		m.Houses[i] = NewHouse(ht)
	}
	m.Triggers = nil
	m.TeamTypes = nil
	m.Waypoints = NewWaypoints()
	m.CellTriggers = make(map[int]string)
	m.Base = Base{}
	m.Extra = nil
}

// BeginUpdate starts a load: all content is discarded. Updates nest.
// This only batches bookkeeping, a failed load still leaves the map
// partially filled.
func (m *Map) BeginUpdate() {
	if m.updating == 0 {
		m.reset()
	}
	m.updating++
}

// EndUpdate closes the batch opened by BeginUpdate.
func (m *Map) EndUpdate() {
	if m.updating > 0 {
		m.updating--
	}
}

// Updating reports whether a batch is open.
func (m *Map) Updating() bool {
	return m.updating > 0
}

// FindTrigger returns the trigger with the given name (case-insensitive).
func (m *Map) FindTrigger(name string) *Trigger {
	if i := m.TriggerIndex(name); i >= 0 {
		return m.Triggers[i]
	}
	return nil
}

// TriggerIndex returns the position of a trigger, or -1.
func (m *Map) TriggerIndex(name string) int {
	if IsNone(name) {
		return -1
	}
	for i, t := range m.Triggers {
		if strings.EqualFold(t.Name, name) {
			return i
		}
	}
	return -1
}

// FindTeamType returns the team type with the given name (case-insensitive).
func (m *Map) FindTeamType(name string) *TeamType {
	if i := m.TeamTypeIndex(name); i >= 0 {
		return m.TeamTypes[i]
	}
	return nil
}

// TeamTypeIndex returns the position of a team type, or -1.
func (m *Map) TeamTypeIndex(name string) int {
	if IsNone(name) {
		return -1
	}
	for i, t := range m.TeamTypes {
		if strings.EqualFold(t.Name, name) {
			return i
		}
	}
	return -1
}

// HouseByName looks up a house type case-insensitively.
func (m *Map) HouseByName(name string) *HouseType {
	for _, h := range m.HouseTypes {
		if strings.EqualFold(h.Name, name) {
			return h
		}
	}
	return nil
}

// HouseByID looks up a house type by its file id.
func (m *Map) HouseByID(id int) *HouseType {
	for _, h := range m.HouseTypes {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// IsNone reports whether a reference is empty.
func IsNone(name string) bool {
	return name == "" || strings.EqualFold(name, NoneName)
}

// InBounds reports whether cell lies in the playable area.
func (m *Map) InBounds(cell int) bool {
	if !m.Metrics.Contains(cell) {
		return false
	}
	x, y := m.Metrics.Location(cell)
	return m.Bounds.Contains(x, y)
}

// PlayerStartCells returns the cells of placed multiplayer start waypoints.
func (m *Map) PlayerStartCells() []int {
	var cells []int
	for _, w := range m.Waypoints {
		if w.Flag == WaypointPlayerStart && w.HasCell() {
			cells = append(cells, w.Cell)
		}
	}
	return cells
}
