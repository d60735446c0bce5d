package model

// EventType is a trigger event (TEVENT_*).
type EventType int

const (
	EventNone EventType = iota
	EventPlayerEntered
	EventSpied
	EventThieved
	EventDiscovered
	EventHouseDiscovered
	EventAttacked
	EventDestroyed
	EventAny
	EventUnitsDestroyed
	EventBuildingsDestroyed
	EventAllDestroyed
	EventCredits
	EventTime
	EventMissionTimerExpired
	EventNBuildingsDestroyed
	EventNUnitsDestroyed
	EventNoFactories
	EventEvacCivilian
	EventBuild
	EventBuildUnit
	EventBuildInfantry
	EventBuildAircraft
	EventLeavesMap
	EventEntersZone
	EventCrossHorizontal
	EventCrossVertical
	EventGlobalSet
	EventGlobalClear
	EventFakesDestroyed
	EventLowPower
	EventAllBridgesDestroyed
	EventBuildingExists

	EventCount
)

var eventNames = [EventCount]string{
	"TEVENT_NONE", "TEVENT_PLAYER_ENTERED", "TEVENT_SPIED", "TEVENT_THIEVED",
	"TEVENT_DISCOVERED", "TEVENT_HOUSE_DISCOVERED", "TEVENT_ATTACKED", "TEVENT_DESTROYED",
	"TEVENT_ANY", "TEVENT_UNITS_DESTROYED", "TEVENT_BUILDINGS_DESTROYED", "TEVENT_ALL_DESTROYED",
	"TEVENT_CREDITS", "TEVENT_TIME", "TEVENT_MISSION_TIMER_EXPIRED", "TEVENT_NBUILDINGS_DESTROYED",
	"TEVENT_NUNITS_DESTROYED", "TEVENT_NOFACTORIES", "TEVENT_EVAC_CIVILIAN", "TEVENT_BUILD",
	"TEVENT_BUILD_UNIT", "TEVENT_BUILD_INFANTRY", "TEVENT_BUILD_AIRCRAFT", "TEVENT_LEAVES_MAP",
	"TEVENT_ENTERS_ZONE", "TEVENT_CROSS_HORIZONTAL", "TEVENT_CROSS_VERTICAL", "TEVENT_GLOBAL_SET",
	"TEVENT_GLOBAL_CLEAR", "TEVENT_FAKES_DESTROYED", "TEVENT_LOW_POWER", "TEVENT_ALL_BRIDGES_DESTROYED",
	"TEVENT_BUILDING_EXISTS",
}

func (e EventType) String() string {
	if e < 0 || e >= EventCount {
		return "TEVENT_UNKNOWN"
	}
	return eventNames[e]
}

// Valid reports whether e is a known event.
func (e EventType) Valid() bool {
	return e >= 0 && e < EventCount
}

// ActionType is a trigger action (TACTION_*).
type ActionType int

const (
	ActionNone ActionType = iota
	ActionWin
	ActionLose
	ActionBeginProduction
	ActionCreateTeam
	ActionDestroyTeam
	ActionAllHunt
	ActionReinforcements
	ActionDropZoneFlare
	ActionFireSale
	ActionPlayMovie
	ActionTextTrigger
	ActionDestroyTrigger
	ActionAutocreate
	ActionWinLose
	ActionAllowWin
	ActionRevealAll
	ActionRevealSome
	ActionRevealZone
	ActionPlaySound
	ActionPlayMusic
	ActionPlaySpeech
	ActionForceTrigger
	ActionStartTimer
	ActionStopTimer
	ActionAddTimer
	ActionSubTimer
	ActionSetTimer
	ActionSetGlobal
	ActionClearGlobal
	ActionBaseBuilding
	ActionCreepShadow
	ActionDestroyObject
	ActionOneSpecial
	ActionFullSpecial
	ActionPreferredTarget
	ActionLaunchNukes

	ActionCount
)

var actionNames = [ActionCount]string{
	"TACTION_NONE", "TACTION_WIN", "TACTION_LOSE", "TACTION_BEGIN_PRODUCTION",
	"TACTION_CREATE_TEAM", "TACTION_DESTROY_TEAM", "TACTION_ALL_HUNT", "TACTION_REINFORCEMENTS",
	"TACTION_DZ", "TACTION_FIRE_SALE", "TACTION_PLAY_MOVIE", "TACTION_TEXT_TRIGGER",
	"TACTION_DESTROY_TRIGGER", "TACTION_AUTOCREATE", "TACTION_WINLOSE", "TACTION_ALLOWWIN",
	"TACTION_REVEAL_ALL", "TACTION_REVEAL_SOME", "TACTION_REVEAL_ZONE", "TACTION_PLAY_SOUND",
	"TACTION_PLAY_MUSIC", "TACTION_PLAY_SPEECH", "TACTION_FORCE_TRIGGER", "TACTION_START_TIMER",
	"TACTION_STOP_TIMER", "TACTION_ADD_TIMER", "TACTION_SUB_TIMER", "TACTION_SET_TIMER",
	"TACTION_SET_GLOBAL", "TACTION_CLEAR_GLOBAL", "TACTION_BASE_BUILDING", "TACTION_CREEP_SHADOW",
	"TACTION_DESTROY_OBJECT", "TACTION_1_SPECIAL", "TACTION_FULL_SPECIAL", "TACTION_PREFERRED_TARGET",
	"TACTION_LAUNCH_NUKES",
}

func (a ActionType) String() string {
	if a < 0 || a >= ActionCount {
		return "TACTION_UNKNOWN"
	}
	return actionNames[a]
}

// Valid reports whether a is a known action.
func (a ActionType) Valid() bool {
	return a >= 0 && a < ActionCount
}

// Persistence controls how often a trigger fires.
type Persistence int

const (
	Volatile Persistence = iota
	SemiPersistent
	Persistent
)

// EventControl combines the two events of a trigger.
type EventControl int

const (
	EventOnly EventControl = iota
	EventAnd
	EventOr
	EventLinked
)

// ActionControl says whether the second action is used.
type ActionControl int

const (
	ActionOnly ActionControl = iota
	ActionAnd
)

// Event is one trigger condition.
type Event struct {
	Type EventType
	Team string
	Data int32
}

// Action is one trigger effect.
type Action struct {
	Type    ActionType
	Team    string
	Trigger string
	Data    int32
}

// Trigger is a named condition to action binding. House is the house id
// as stored in the file, -1 for none.
type Trigger struct {
	Name          string
	House         int
	Persistence   Persistence
	EventControl  EventControl
	ActionControl ActionControl
	Event1        Event
	Event2        Event
	Action1       Action
	Action2       Action
}

// NewTrigger returns a trigger with empty references.
func NewTrigger(name string) *Trigger {
	return &Trigger{
		Name:    name,
		House:   -1,
		Event1:  Event{Team: NoneName},
		Event2:  Event{Team: NoneName},
		Action1: Action{Team: NoneName, Trigger: NoneName},
		Action2: Action{Team: NoneName, Trigger: NoneName},
	}
}

// Events returns the events in use, honoring EventControl.
func (t *Trigger) Events() []*Event {
	if t.EventControl == EventOnly {
		return []*Event{&t.Event1}
	}
	return []*Event{&t.Event1, &t.Event2}
}

// Actions returns the actions in use, honoring ActionControl.
func (t *Trigger) Actions() []*Action {
	if t.ActionControl == ActionOnly {
		return []*Action{&t.Action1}
	}
	return []*Action{&t.Action1, &t.Action2}
}

// HasEvent reports whether any used event is one of types.
func (t *Trigger) HasEvent(types ...EventType) bool {
	for _, e := range t.Events() {
		for _, want := range types {
			if e.Type == want {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy.
func (t *Trigger) Clone() *Trigger {
	c := *t
	return &c
}
