package catalog

import "github.com/dyuri/ramap/internal/model"

// NoOverlay is the on-disk sentinel for an empty overlay cell.
const NoOverlay byte = 0xFF

func overlays() []*model.OverlayType {
	const (
		all = model.AllTheaters
		out = model.Outdoor
		in  = model.InInterior
	)
	list := []struct {
		name     string
		theaters model.TheaterMask
		flags    model.OverlayFlag
	}{
		{"SBAG", all, model.OverlayWall},
		{"CYCL", all, model.OverlayWall},
		{"BRIK", all, model.OverlayWall},
		{"BARB", all, model.OverlayWall},
		{"WOOD", all, model.OverlayWall},
		{"GOLD01", out, model.OverlayResource},
		{"GOLD02", out, model.OverlayResource},
		{"GOLD03", out, model.OverlayResource},
		{"GOLD04", out, model.OverlayResource},
		{"GEM01", out, model.OverlayResource},
		{"GEM02", out, model.OverlayResource},
		{"GEM03", out, model.OverlayResource},
		{"GEM04", out, model.OverlayResource},
		{"V12", out, 0},
		{"V13", out, 0},
		{"V14", out, 0},
		{"V15", out, 0},
		{"V16", out, 0},
		{"V17", out, 0},
		{"V18", out, 0},
		{"FPLS", in, model.OverlayConcrete},
		{"WCRATE", all, model.OverlayCrate},
		{"SCRATE", all, model.OverlayCrate},
		{"FENC", all, model.OverlayWall},
		{"WWCRATE", all, model.OverlayCrate},
	}
	result := make([]*model.OverlayType, len(list))
	for i, o := range list {
		result[i] = &model.OverlayType{ID: byte(i), Name: o.name, Theaters: o.theaters, Flags: o.flags}
	}
	return result
}

func smudges() []*model.SmudgeType {
	return []*model.SmudgeType{
		{ID: 0, Name: "SC1", Icons: 1, Flags: model.SmudgeScorch},
		{ID: 1, Name: "SC2", Icons: 1, Flags: model.SmudgeScorch},
		{ID: 2, Name: "SC3", Icons: 1, Flags: model.SmudgeScorch},
		{ID: 3, Name: "SC4", Icons: 1, Flags: model.SmudgeScorch},
		{ID: 4, Name: "SC5", Icons: 1, Flags: model.SmudgeScorch},
		{ID: 5, Name: "SC6", Icons: 1, Flags: model.SmudgeScorch},
		{ID: 6, Name: "CR1", Icons: 5, Flags: model.SmudgeCrater},
		{ID: 7, Name: "CR2", Icons: 5, Flags: model.SmudgeCrater},
		{ID: 8, Name: "CR3", Icons: 5, Flags: model.SmudgeCrater},
		{ID: 9, Name: "CR4", Icons: 5, Flags: model.SmudgeCrater},
		{ID: 10, Name: "CR5", Icons: 5, Flags: model.SmudgeCrater},
		{ID: 11, Name: "CR6", Icons: 5, Flags: model.SmudgeCrater},
		{ID: 12, Name: "BIB1", Icons: 8, Flags: model.SmudgeBib},
		{ID: 13, Name: "BIB2", Icons: 6, Flags: model.SmudgeBib},
		{ID: 14, Name: "BIB3", Icons: 4, Flags: model.SmudgeBib},
	}
}

func terrains() []*model.TerrainType {
	occ := model.ParseOccupancy
	const (
		out = model.Outdoor
		tmp = model.InTemperate
		snw = model.InSnow
		in  = model.InInterior
	)
	list := []struct {
		name     string
		theaters model.TheaterMask
		mask     string
	}{
		{"T01", out, "../x."},
		{"T02", out, "../x."},
		{"T03", out, "../x."},
		{"T05", out, "../x."},
		{"T06", out, "../x."},
		{"T07", out, "../x."},
		{"T08", out, "x."},
		{"T10", out, "../xx"},
		{"T11", out, "../xx"},
		{"T12", out, "../x."},
		{"T13", out, "../x."},
		{"T14", out, "../xx"},
		{"T15", out, "../xx"},
		{"T16", out, "../x."},
		{"T17", out, "../x."},
		{"TC01", out, ".../xx."},
		{"TC02", out, ".x./xx."},
		{"TC03", out, "xx./xx."},
		{"TC04", out, ".../xxx./x..."},
		{"TC05", out, "..x./xxx./.xx."},
		{"MINE", tmp, "x"},
		{"ICE01", snw, "xx/xx"},
		{"ICE02", snw, "x/x"},
		{"ICE03", snw, "xx"},
		{"ICE04", snw, "x"},
		{"ICE05", snw, "x"},
		{"BOXES01", in, "x"},
		{"BOXES02", in, "x"},
		{"BOXES03", in, "x"},
		{"BOXES04", in, "x"},
		{"BOXES05", in, "x"},
		{"BOXES06", in, "x"},
		{"BOXES07", in, "x"},
		{"BOXES08", in, "x"},
		{"BOXES09", in, "x"},
	}
	result := make([]*model.TerrainType, len(list))
	for i, t := range list {
		result[i] = &model.TerrainType{ID: i, Name: t.name, Theaters: t.theaters, Occupancy: occ(t.mask)}
	}
	return result
}

func buildings() []*model.BuildingType {
	list := []struct {
		name    string
		power   int
		storage int
		bib     bool
		fake    bool
		mask    string
	}{
		{"ATEK", -200, 0, true, false, "xx/xx"},
		{"IRON", -200, 0, false, false, "xx/xx"},
		{"WEAP", -30, 0, true, false, "xxx/xxx"},
		{"PDOX", -200, 0, true, false, "xx/xx"},
		{"PBOX", -15, 0, false, false, "x"},
		{"HBOX", -15, 0, false, false, "x"},
		{"TSLA", -150, 0, false, false, "x/x"},
		{"GUN", -40, 0, false, false, "x"},
		{"AGUN", -50, 0, false, false, "x/x"},
		{"FTUR", -20, 0, false, false, "x"},
		{"FACT", 0, 1000, true, false, "xxx/xxx/xxx"},
		{"PROC", -30, 2000, true, false, ".x./xxx/x.."},
		{"SILO", -10, 1500, false, false, "x"},
		{"HPAD", -10, 0, true, false, "xx/xx"},
		{"DOME", -40, 0, true, false, "xx/xx"},
		{"GAP", -60, 0, false, false, "x/x"},
		{"SAM", -20, 0, false, false, "xx"},
		{"MSLO", -100, 0, false, false, "xx"},
		{"AFLD", -30, 0, false, false, "xxx/xxx"},
		{"POWR", 100, 0, true, false, "xx/xx"},
		{"APWR", 200, 0, true, false, ".../xxx/xxx"},
		{"STEK", -100, 0, true, false, "xxx/xxx"},
		{"HOSP", -30, 0, true, false, "xx/xx"},
		{"BARR", -20, 0, true, false, "xx/xx"},
		{"TENT", -20, 0, true, false, "xx/xx"},
		{"KENN", -10, 0, false, false, "x"},
		{"FIX", -30, 0, false, false, ".x./xxx/.x."},
		{"BIO", -40, 0, false, false, "xx/xx"},
		{"MISS", 0, 0, true, false, "xxx/xxx"},
		{"SYRD", -30, 0, false, false, "xxx/xxx/xxx"},
		{"SPEN", -30, 0, false, false, "xxx/xxx/xxx"},
		{"FCOM", -200, 0, true, false, "xx/xx"},
		{"WEAF", -2, 0, true, true, "xxx/xxx"},
		{"FACF", -2, 0, true, true, "xxx/xxx/xxx"},
		{"SYRF", -2, 0, false, true, "xxx/xxx/xxx"},
		{"SPEF", -2, 0, false, true, "xxx/xxx/xxx"},
		{"DOMF", -2, 0, true, true, "xx/xx"},
		{"MINV", 0, 0, false, false, "x"},
		{"MINP", 0, 0, false, false, "x"},
		{"V01", 0, 0, false, false, "xx/xx"},
		{"V02", 0, 0, false, false, "xx/xx"},
		{"V03", 0, 0, false, false, "xx/x."},
		{"V04", 0, 0, false, false, "xx/xx"},
		{"V19", 0, 0, false, false, "x"},
		{"BARL", 0, 0, false, false, "x"},
		{"BRL3", 0, 0, false, false, "x"},
	}
	result := make([]*model.BuildingType, len(list))
	for i, b := range list {
		result[i] = &model.BuildingType{
			ID:        i,
			Name:      b.name,
			Power:     b.power,
			Storage:   b.storage,
			HasBib:    b.bib,
			IsFake:    b.fake,
			Occupancy: model.ParseOccupancy(b.mask),
		}
	}
	return result
}

func units() []*model.UnitType {
	vehicles := []string{
		"V2RL", "1TNK", "3TNK", "2TNK", "4TNK", "MRJ", "MGG", "ARTY", "HARV",
		"MCV", "JEEP", "APC", "MNLY", "TRUK", "ANT1", "ANT2", "ANT3", "CTNK",
		"DTRK", "QTNK", "STNK", "TTNK",
	}
	vessels := []string{"SS", "DD", "CA", "LST", "PT", "MSUB", "CARR"}
	aircraft := []string{"TRAN", "BADR", "U2", "MIG", "YAK", "HELI", "HIND"}

	var result []*model.UnitType
	add := func(names []string, kind model.UnitKind) {
		for i, n := range names {
			result = append(result, &model.UnitType{ID: i, Name: n, Kind: kind})
		}
	}
	add(vehicles, model.Vehicle)
	add(vessels, model.Vessel)
	add(aircraft, model.Aircraft)
	return result
}

func infantry() []*model.InfantryType {
	names := []string{
		"E1", "E2", "E3", "E4", "E6", "E7", "SPY", "THF", "MEDI", "GNRL", "DOG",
		"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9", "C10",
		"EINSTEIN", "DELPHI", "CHAN", "SHOK", "MECH",
	}
	result := make([]*model.InfantryType, len(names))
	for i, n := range names {
		result[i] = &model.InfantryType{ID: i, Name: n}
	}
	return result
}

func houses() []*model.HouseType {
	names := []string{
		"Spain", "Greece", "USSR", "England", "Ukraine", "Germany", "France",
		"Turkey", "GoodGuy", "BadGuy", "Neutral", "Special",
		"Multi1", "Multi2", "Multi3", "Multi4", "Multi5", "Multi6", "Multi7", "Multi8",
	}
	result := make([]*model.HouseType, len(names))
	for i, n := range names {
		result[i] = &model.HouseType{ID: i, Name: n}
	}
	return result
}

func missions() []string {
	return []string{
		"Sleep", "Attack", "Move", "QMove", "Retreat", "Guard", "Sticky",
		"Enter", "Capture", "Harvest", "Area Guard", "Return", "Stop",
		"Ambush", "Hunt", "Unload", "Sabotage", "Construction", "Selling",
		"Repair", "Rescue", "Missile", "Harmless",
	}
}

// ArgKind is the meaning of a team mission argument.
type ArgKind int

const (
	ArgNone ArgKind = iota
	ArgNumber
	ArgWaypoint
	ArgCell
	ArgMission
	ArgGlobal
	ArgLine
	ArgQuarry
	ArgFormation
)

// TeamMission is a team order catalog entry.
type TeamMission struct {
	Name string
	Arg  ArgKind
}

func teamMissions() []TeamMission {
	return []TeamMission{
		{"Attack...", ArgQuarry},
		{"Attack Waypoint...", ArgWaypoint},
		{"Change Formation to...", ArgFormation},
		{"Move to waypoint...", ArgWaypoint},
		{"Move to Cell...", ArgCell},
		{"Guard area (1/10th min)...", ArgNumber},
		{"Jump to line #...", ArgLine},
		{"Attack Tarcom", ArgNone},
		{"Unload", ArgNone},
		{"Deploy", ArgNone},
		{"Follow friendlies", ArgNone},
		{"Do this...", ArgMission},
		{"Set global...", ArgGlobal},
		{"Invulnerable", ArgNone},
		{"Load onto Transport", ArgNone},
		{"Spy on bldg @ waypt...", ArgWaypoint},
		{"Patrol to waypoint...", ArgWaypoint},
	}
}
