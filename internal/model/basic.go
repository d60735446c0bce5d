package model

// KeyValue is a raw INI entry.
type KeyValue struct {
	Key   string
	Value string
}

// Section is a raw INI section kept for round tripping.
type Section struct {
	Name    string
	Entries []KeyValue
}

// Basic is the scenario header from the [Basic] section.
type Basic struct {
	Name           string
	Author         string
	Intro          string
	Brief          string
	Win            string
	Win2           string
	Win3           string
	Win4           string
	Lose           string
	Action         string
	Player         string
	Theme          string
	CarryOverMoney float64
	ToCarryOver    bool
	TimerInherit   bool
	CivEvac        bool
	NewINIFormat   int
	Percent        int
	EndOfGame      bool
	NoSpyPlane     bool
	SkipScore      bool
	OneTimeOnly    bool
	SkipMapSelect  bool
	Official       bool
	FillSilos      bool
	TruckCrate     bool
	SoloPlay       bool
	// Extra holds keys this package does not interpret, in file order.
	Extra []KeyValue
}

// NewBasic returns the header of a new scenario.
func NewBasic() Basic {
	return Basic{
		Name:         "",
		Intro:        "x",
		Brief:        "x",
		Win:          "x",
		Win2:         "x",
		Win3:         "x",
		Win4:         "x",
		Lose:         "x",
		Action:       "x",
		Player:       "Greece",
		Theme:        "No theme",
		NewINIFormat: 3,
		Percent:      0,
	}
}

// Steam holds the workshop publishing values.
type Steam struct {
	Title       string
	Description string
	PreviewFile string
	Tags        string
	Visibility  int
}

// BaseNode is one prebuilt entry of the AI base list.
type BaseNode struct {
	Type *BuildingType
	Cell int
}

// Base is the AI rebuild list from the [Base] section.
type Base struct {
	Player string
	Nodes  []BaseNode
}
