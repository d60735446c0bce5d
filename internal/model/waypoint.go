package model

import "strconv"

// WaypointFlag marks waypoints with a special role.
type WaypointFlag int

const (
	WaypointNone WaypointFlag = iota
	WaypointPlayerStart
	WaypointHome
	WaypointReinforce
	WaypointSpecial
)

const (
	// WaypointCount is the number of waypoint slots.
	WaypointCount = 101
	// PlayerStarts is the number of leading multiplayer start waypoints.
	PlayerStarts = 8

	WaypointHomeIndex      = 98
	WaypointReinforceIndex = 99
	WaypointSpecialIndex   = 100

	// NoCell marks an unset cell reference.
	NoCell = -1
)

// Waypoint is a named, optional map cell.
type Waypoint struct {
	Name string
	Flag WaypointFlag
	Cell int
}

// HasCell reports whether the waypoint is placed.
func (w Waypoint) HasCell() bool {
	return w.Cell >= 0
}

// NewWaypoints returns the full, unplaced waypoint list.
func NewWaypoints() []Waypoint {
	wps := make([]Waypoint, WaypointCount)
	for i := range wps {
		wps[i] = Waypoint{Name: strconv.Itoa(i), Cell: NoCell}
		switch {
		case i < PlayerStarts:
			wps[i].Flag = WaypointPlayerStart
			wps[i].Name = "P" + strconv.Itoa(i)
		case i == WaypointHomeIndex:
			wps[i].Flag = WaypointHome
			wps[i].Name = "Home"
		case i == WaypointReinforceIndex:
			wps[i].Flag = WaypointReinforce
			wps[i].Name = "Reinf."
		case i == WaypointSpecialIndex:
			wps[i].Flag = WaypointSpecial
			wps[i].Name = "Special"
		}
	}
	return wps
}
