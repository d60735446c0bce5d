package model

// House holds the per-house scenario settings from the house sections.
type House struct {
	Type          *HouseType
	Enabled       bool
	Credits       int
	Edge          string
	MaxBuilding   int
	MaxUnit       int
	MaxInfantry   int
	MaxVessel     int
	TechLevel     int
	IQ            int
	PlayerControl bool
	Allies        []string
	// Extra holds keys this package does not interpret, in file order.
	Extra []KeyValue
}

// NewHouse returns the defaults used for houses absent from the file.
func NewHouse(t *HouseType) House {
	return House{
		Type:        t,
		Edge:        "North",
		MaxBuilding: 150,
		MaxUnit:     150,
		MaxInfantry: 150,
		MaxVessel:   100,
		Allies:      []string{t.Name},
	}
}

// Economy sums what the structures of one house provide.
type Economy struct {
	Structures int
	Power      int
	Drain      int
	Storage    int
}

// Economies returns the economy of every house that owns structures,
// keyed by house name.
func (m *Map) Economies() map[string]Economy {
	out := make(map[string]Economy)
	for _, p := range m.Technos.All() {
		b, ok := p.Occupier.(*Building)
		if !ok || b.House == nil {
			continue
		}
		e := out[b.House.Name]
		e.Structures++
		if b.Type.Power > 0 {
			e.Power += b.Type.Power
		} else {
			e.Drain -= b.Type.Power
		}
		e.Storage += b.Type.Storage
		out[b.House.Name] = e
	}
	return out
}
