// Package catalog holds the static game type lists the map codec needs
// to resolve names and ids. The lists are explicit and ordered; New
// builds a fresh copy so that rules overrides never leak between maps.
package catalog

import (
	"strings"

	"github.com/dyuri/ramap/internal/model"
)

// Catalog is one set of game types.
type Catalog struct {
	Templates    []*model.TemplateType
	Overlays     []*model.OverlayType
	Smudges      []*model.SmudgeType
	Terrains     []*model.TerrainType
	Buildings    []*model.BuildingType
	Units        []*model.UnitType
	Infantry     []*model.InfantryType
	Houses       []*model.HouseType
	Missions     []string
	TeamMissions []TeamMission

	templatesByID map[uint16]*model.TemplateType
	overlaysByID  map[byte]*model.OverlayType
}

// New returns the Red Alert catalog.
func New() *Catalog {
	c := &Catalog{
		Templates:    templates(),
		Overlays:     overlays(),
		Smudges:      smudges(),
		Terrains:     terrains(),
		Buildings:    buildings(),
		Units:        units(),
		Infantry:     infantry(),
		Houses:       houses(),
		Missions:     missions(),
		TeamMissions: teamMissions(),
	}
	c.templatesByID = make(map[uint16]*model.TemplateType, len(c.Templates))
	for _, t := range c.Templates {
		c.templatesByID[t.ID] = t
	}
	c.overlaysByID = make(map[byte]*model.OverlayType, len(c.Overlays))
	for _, o := range c.Overlays {
		c.overlaysByID[o.ID] = o
	}
	return c
}

// Template returns the template with the given id, or nil.
func (c *Catalog) Template(id uint16) *model.TemplateType {
	return c.templatesByID[id]
}

// TemplateByName returns a template by INI name, or nil.
func (c *Catalog) TemplateByName(name string) *model.TemplateType {
	for _, t := range c.Templates {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// Family returns the templates sharing a family, in catalog order.
func (c *Catalog) Family(family string) []*model.TemplateType {
	if family == "" {
		return nil
	}
	var out []*model.TemplateType
	for _, t := range c.Templates {
		if t.Family == family {
			out = append(out, t)
		}
	}
	return out
}

// Overlay returns the overlay with the given id, or nil.
func (c *Catalog) Overlay(id byte) *model.OverlayType {
	return c.overlaysByID[id]
}

// Smudge returns a smudge type by INI name, or nil.
func (c *Catalog) Smudge(name string) *model.SmudgeType {
	for _, s := range c.Smudges {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

// Terrain returns a terrain type by INI name, or nil.
func (c *Catalog) Terrain(name string) *model.TerrainType {
	for _, t := range c.Terrains {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// Building returns a building type by INI name, or nil.
func (c *Catalog) Building(name string) *model.BuildingType {
	for _, b := range c.Buildings {
		if strings.EqualFold(b.Name, name) {
			return b
		}
	}
	return nil
}

// Unit returns a unit type of the given kind by INI name, or nil.
func (c *Catalog) Unit(name string, kind model.UnitKind) *model.UnitType {
	for _, u := range c.Units {
		if u.Kind == kind && strings.EqualFold(u.Name, name) {
			return u
		}
	}
	return nil
}

// InfantryType returns an infantry type by INI name, or nil.
func (c *Catalog) InfantryType(name string) *model.InfantryType {
	for _, i := range c.Infantry {
		if strings.EqualFold(i.Name, name) {
			return i
		}
	}
	return nil
}

// House returns a house type by name, or nil.
func (c *Catalog) House(name string) *model.HouseType {
	for _, h := range c.Houses {
		if strings.EqualFold(h.Name, name) {
			return h
		}
	}
	return nil
}

// IsTeamTechno reports whether name can be used in a team composition.
func (c *Catalog) IsTeamTechno(name string) bool {
	if c.InfantryType(name) != nil {
		return true
	}
	for _, u := range c.Units {
		if strings.EqualFold(u.Name, name) {
			return true
		}
	}
	return false
}

// MissionIndex returns the position of a unit mission, or -1.
func (c *Catalog) MissionIndex(name string) int {
	for i, m := range c.Missions {
		if strings.EqualFold(m, name) {
			return i
		}
	}
	return -1
}

// Mission returns the canonical mission name, or "" if unknown.
func (c *Catalog) Mission(name string) string {
	if i := c.MissionIndex(name); i >= 0 {
		return c.Missions[i]
	}
	return ""
}
