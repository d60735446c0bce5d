package model

// NoneName is the sentinel for an empty trigger or team reference.
const NoneName = "None"

// Occupier is anything that can be placed in the techno layer: a
// *Building, *Unit, *Terrain or *InfantryGroup.
type Occupier interface {
	Occupancy() Occupancy
	occupier()
}

// Building is a placed structure.
type Building struct {
	Type      *BuildingType
	House     *HouseType
	Strength  int
	Direction int
	Trigger   string
	Sellable  bool
	Rebuild   bool
}

func (b *Building) Occupancy() Occupancy { return b.Type.Occupancy }
func (*Building) occupier()              {}

// Unit is a placed vehicle, vessel or aircraft.
type Unit struct {
	Type      *UnitType
	House     *HouseType
	Strength  int
	Direction int
	Mission   string
	Trigger   string
}

func (*Unit) Occupancy() Occupancy { return singleCell }
func (*Unit) occupier()            {}

// Terrain is a placed tree or terrain object.
type Terrain struct {
	Type    *TerrainType
	Trigger string
}

func (t *Terrain) Occupancy() Occupancy { return t.Type.Occupancy }
func (*Terrain) occupier()              {}

// InfantrySlots is the number of sub-cell positions.
const InfantrySlots = 5

// Infantry is a single soldier inside an InfantryGroup.
type Infantry struct {
	Type      *InfantryType
	House     *HouseType
	Strength  int
	Direction int
	Mission   string
	Trigger   string
}

// InfantryGroup occupies a cell with up to InfantrySlots soldiers.
type InfantryGroup struct {
	Infantry [InfantrySlots]*Infantry
}

func (*InfantryGroup) Occupancy() Occupancy { return singleCell }
func (*InfantryGroup) occupier()            {}

// OccupierSet maps cells to the objects covering them. Objects are kept
// in insertion order.
type OccupierSet struct {
	metrics Metrics
	cells   map[int]Occupier
	origins map[Occupier]int
	order   []Occupier
}

// NewOccupierSet creates an empty set for a grid.
func NewOccupierSet(m Metrics) *OccupierSet {
	return &OccupierSet{
		metrics: m,
		cells:   make(map[int]Occupier),
		origins: make(map[Occupier]int),
	}
}

// Footprint returns the cells o would cover when placed at origin.
// Cells that fall off the grid are returned as -1.
func (s *OccupierSet) Footprint(origin int, o Occupier) []int {
	ox, oy := s.metrics.Location(origin)
	var cells []int
	for y, row := range o.Occupancy() {
		for x, set := range row {
			if !set {
				continue
			}
			if !s.metrics.Contains(origin) || !s.metrics.ContainsPoint(ox+x, oy+y) {
				cells = append(cells, -1)
				continue
			}
			cells = append(cells, s.metrics.Cell(ox+x, oy+y))
		}
	}
	return cells
}

// Add places o at origin. It returns false if any footprint cell is
// occupied or off the grid, or if o is already placed.
func (s *OccupierSet) Add(origin int, o Occupier) bool {
	if _, ok := s.origins[o]; ok {
		return false
	}
	cells := s.Footprint(origin, o)
	for _, c := range cells {
		if c < 0 {
			return false
		}
		if _, taken := s.cells[c]; taken {
			return false
		}
	}
	for _, c := range cells {
		s.cells[c] = o
	}
	s.origins[o] = origin
	s.order = append(s.order, o)
	return true
}

// At returns the object covering cell, or nil.
func (s *OccupierSet) At(cell int) Occupier {
	return s.cells[cell]
}

// Origin returns the placement cell of o.
func (s *OccupierSet) Origin(o Occupier) (int, bool) {
	c, ok := s.origins[o]
	return c, ok
}

// Remove takes o off the grid.
func (s *OccupierSet) Remove(o Occupier) {
	origin, ok := s.origins[o]
	if !ok {
		return
	}
	for _, c := range s.Footprint(origin, o) {
		if c >= 0 && s.cells[c] == o {
			delete(s.cells, c)
		}
	}
	delete(s.origins, o)
	for i, x := range s.order {
		if x == o {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear removes everything.
func (s *OccupierSet) Clear() {
	clear(s.cells)
	clear(s.origins)
	s.order = nil
}

// Placed is an object with its origin cell.
type Placed struct {
	Cell     int
	Occupier Occupier
}

// All returns every object in insertion order.
func (s *OccupierSet) All() []Placed {
	out := make([]Placed, 0, len(s.order))
	for _, o := range s.order {
		out = append(out, Placed{Cell: s.origins[o], Occupier: o})
	}
	return out
}

// Len returns the number of placed objects.
func (s *OccupierSet) Len() int {
	return len(s.order)
}
