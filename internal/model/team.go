package model

// TeamFlags are the behavior bits of a team type.
type TeamFlags int

const (
	TeamRoundabout TeamFlags = 1 << iota
	TeamSuicide
	TeamAutocreate
	TeamPrebuild
	TeamReinforcable
)

// TeamClass is one entry of a team's composition. Type is the INI name
// of a unit, vessel, aircraft or infantry type.
type TeamClass struct {
	Type  string
	Count int
}

// TeamMission is one order of a team. Mission indexes the team mission
// list.
type TeamMission struct {
	Mission  int
	Argument int
}

// TeamType is a reusable squad definition. House is the house id as
// stored in the file.
type TeamType struct {
	Name            string
	House           int
	Flags           TeamFlags
	RecruitPriority int
	InitNum         int
	MaxAllowed      int
	Origin          int
	Trigger         string
	Classes         []TeamClass
	Missions        []TeamMission
}

// NewTeamType returns a team type with empty references.
func NewTeamType(name string) *TeamType {
	return &TeamType{
		Name:    name,
		Origin:  -1,
		Trigger: NoneName,
	}
}

// Has reports whether flag is set.
func (t *TeamType) Has(flag TeamFlags) bool {
	return t.Flags&flag != 0
}
