package model

import "strings"

// Theater is the tile set a map is drawn with.
type Theater int

const (
	Temperate Theater = iota
	Snow
	Interior
)

var theaterNames = []string{"TEMPERATE", "SNOW", "INTERIOR"}

func (t Theater) String() string {
	if t < 0 || int(t) >= len(theaterNames) {
		return "UNKNOWN"
	}
	return theaterNames[t]
}

// ParseTheater looks up a theater by its INI name, case-insensitively.
func ParseTheater(name string) (Theater, bool) {
	for i, n := range theaterNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Theater(i), true
		}
	}
	return Temperate, false
}

// TheaterMask is a set of theaters a type may be used in.
type TheaterMask int

const (
	InTemperate TheaterMask = 1 << iota
	InSnow
	InInterior

	AllTheaters = InTemperate | InSnow | InInterior
	Outdoor     = InTemperate | InSnow
)

// Has reports whether t is in the mask.
func (m TheaterMask) Has(t Theater) bool {
	return m&(1<<t) != 0
}

// Occupancy is a footprint mask indexed [y][x].
type Occupancy [][]bool

// ParseOccupancy builds a mask from rows separated by '/', where 'x'
// marks an occupied cell, e.g. "xx/x.".
func ParseOccupancy(s string) Occupancy {
	rows := strings.Split(s, "/")
	occ := make(Occupancy, len(rows))
	for y, row := range rows {
		occ[y] = make([]bool, len(row))
		for x, c := range row {
			occ[y][x] = c == 'x'
		}
	}
	return occ
}

// Size returns the bounding width and height of the mask.
func (o Occupancy) Size() (w, h int) {
	for _, row := range o {
		w = max(w, len(row))
	}
	return w, len(o)
}

var singleCell = Occupancy{{true}}

// TemplateFlag marks special tile templates.
type TemplateFlag int

const (
	// TemplateClear is the synthetic "clear" tile, stored as empty.
	TemplateClear TemplateFlag = 1 << iota
	// TemplateGroup is an editor placeholder for a set of templates.
	TemplateGroup
	// TemplateRandom templates have interchangeable 1x1 icons.
	TemplateRandom
)

// TemplateType is a tile template catalog entry.
type TemplateType struct {
	ID       uint16
	Name     string
	Width    int
	Height   int
	Theaters TheaterMask
	Flags    TemplateFlag
	// Mask lists the icons that are part of the template.
	Mask []bool
	// Family groups templates with identical geometry whose icons can be
	// remapped onto one another.
	Family string
}

// NumIcons returns the number of icons in the template.
func (t *TemplateType) NumIcons() int {
	if t.Flags&TemplateRandom != 0 {
		return len(t.Mask)
	}
	return t.Width * t.Height
}

// IconAllowed reports whether icon may be placed.
func (t *TemplateType) IconAllowed(icon int) bool {
	if icon < 0 || icon >= t.NumIcons() {
		return false
	}
	if t.Flags&TemplateRandom != 0 {
		return true
	}
	return icon < len(t.Mask) && t.Mask[icon]
}

// IsClear reports whether the template is stored as an empty cell.
func (t *TemplateType) IsClear() bool {
	return t.Flags&(TemplateClear|TemplateGroup) != 0
}

// OverlayFlag describes overlay categories.
type OverlayFlag int

const (
	OverlayWall OverlayFlag = 1 << iota
	OverlayResource
	OverlayCrate
	OverlayConcrete
)

// OverlayType is an overlay catalog entry.
type OverlayType struct {
	ID       byte
	Name     string
	Theaters TheaterMask
	Flags    OverlayFlag
}

// SmudgeFlag describes smudge categories.
type SmudgeFlag int

const (
	SmudgeCrater SmudgeFlag = 1 << iota
	SmudgeScorch
	SmudgeBib
)

// SmudgeType is a smudge catalog entry.
type SmudgeType struct {
	ID    int
	Name  string
	Icons int
	Flags SmudgeFlag
}

// TerrainType is a tree or other terrain object.
type TerrainType struct {
	ID        int
	Name      string
	Theaters  TheaterMask
	Occupancy Occupancy
}

// BuildingType is a structure catalog entry.
type BuildingType struct {
	ID        int
	Name      string
	Power     int
	Storage   int
	HasBib    bool
	IsFake    bool
	Occupancy Occupancy
}

// UnitKind separates the unit categories that share the [UNITS]-style
// record layout.
type UnitKind int

const (
	Vehicle UnitKind = iota
	Vessel
	Aircraft
)

// UnitType is a vehicle, vessel or aircraft catalog entry.
type UnitType struct {
	ID   int
	Name string
	Kind UnitKind
}

// InfantryType is an infantry catalog entry.
type InfantryType struct {
	ID   int
	Name string
}

// HouseType is a house catalog entry. ID is the integer used in team
// and trigger records.
type HouseType struct {
	ID   int
	Name string
}
