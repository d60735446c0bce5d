package model

// DataKind is the interpretation of the shared 32-bit Data field of an
// event or action. The game stores it as a union, so byte-sized kinds
// only ever see the low byte of whatever was written.
type DataKind int

const (
	DataNone DataKind = iota
	DataNumber
	DataHouse
	DataBuilding
	DataUnit
	DataInfantry
	DataAircraft
	DataGlobal
	DataWaypoint
	DataText
	DataMovie
	DataSound
	DataTheme
	DataSpeech
	DataSpecial
	DataQuarry
)

const (
	// TextMin and TextMax bound the tutorial text ids.
	TextMin = 1
	TextMax = 209

	// GlobalMin and GlobalMax bound the scenario global ids.
	GlobalMin = 0
	GlobalMax = 29
)

var eventData = [EventCount]DataKind{
	EventPlayerEntered:       DataHouse,
	EventThieved:             DataHouse,
	EventHouseDiscovered:     DataHouse,
	EventUnitsDestroyed:      DataHouse,
	EventBuildingsDestroyed:  DataHouse,
	EventAllDestroyed:        DataHouse,
	EventCredits:             DataNumber,
	EventTime:                DataNumber,
	EventNBuildingsDestroyed: DataNumber,
	EventNUnitsDestroyed:     DataNumber,
	EventNoFactories:         DataHouse,
	EventEvacCivilian:        DataHouse,
	EventBuild:               DataBuilding,
	EventBuildUnit:           DataUnit,
	EventBuildInfantry:       DataInfantry,
	EventBuildAircraft:       DataAircraft,
	EventEntersZone:          DataHouse,
	EventCrossHorizontal:     DataHouse,
	EventCrossVertical:       DataHouse,
	EventGlobalSet:           DataGlobal,
	EventGlobalClear:         DataGlobal,
	EventLowPower:            DataHouse,
	EventBuildingExists:      DataBuilding,
}

var actionData = [ActionCount]DataKind{
	ActionWin:             DataHouse,
	ActionLose:            DataHouse,
	ActionBeginProduction: DataHouse,
	ActionAllHunt:         DataHouse,
	ActionDropZoneFlare:   DataWaypoint,
	ActionFireSale:        DataHouse,
	ActionPlayMovie:       DataMovie,
	ActionTextTrigger:     DataText,
	ActionAutocreate:      DataHouse,
	ActionRevealSome:      DataWaypoint,
	ActionRevealZone:      DataWaypoint,
	ActionPlaySound:       DataSound,
	ActionPlayMusic:       DataTheme,
	ActionPlaySpeech:      DataSpeech,
	ActionAddTimer:        DataNumber,
	ActionSubTimer:        DataNumber,
	ActionSetTimer:        DataNumber,
	ActionSetGlobal:       DataGlobal,
	ActionClearGlobal:     DataGlobal,
	ActionOneSpecial:      DataSpecial,
	ActionFullSpecial:     DataSpecial,
	ActionPreferredTarget: DataQuarry,
}

// EventDataKind returns how the Data field of an event is read.
func EventDataKind(t EventType) DataKind {
	if !t.Valid() {
		return DataNone
	}
	return eventData[t]
}

// ActionDataKind returns how the Data field of an action is read.
func ActionDataKind(t ActionType) DataKind {
	if !t.Valid() {
		return DataNone
	}
	return actionData[t]
}

// EventNeedsTeam reports whether the event references a team.
func EventNeedsTeam(t EventType) bool {
	return t == EventLeavesMap
}

// ActionNeedsTeam reports whether the action references a team.
func ActionNeedsTeam(t ActionType) bool {
	return t == ActionCreateTeam || t == ActionDestroyTeam || t == ActionReinforcements
}

// ActionNeedsTrigger reports whether the action references a trigger.
func ActionNeedsTrigger(t ActionType) bool {
	return t == ActionDestroyTrigger || t == ActionForceTrigger
}

// NormalizeData applies the union reinterpretation for kind: byte-sized
// kinds keep only their low byte, text ids are clamped to
// [TextMin, TextMax] and global ids to [GlobalMin, GlobalMax]. It
// reports whether the value changed.
func NormalizeData(kind DataKind, data int32) (int32, bool) {
	var v int32
	switch kind {
	case DataHouse, DataBuilding, DataUnit, DataInfantry, DataAircraft,
		DataMovie, DataSound, DataTheme, DataSpeech, DataSpecial, DataQuarry:
		v = data & 0xFF
	case DataText:
		v = min(max(data, TextMin), TextMax)
	case DataGlobal:
		v = min(max(data, GlobalMin), GlobalMax)
	default:
		v = data
	}
	return v, v != data
}

// NormalizeEventData fixes e.Data in place and reports a change.
func NormalizeEventData(e *Event) bool {
	v, changed := NormalizeData(EventDataKind(e.Type), e.Data)
	e.Data = v
	return changed
}

// NormalizeActionData fixes a.Data in place and reports a change.
func NormalizeActionData(a *Action) bool {
	v, changed := NormalizeData(ActionDataKind(a.Type), a.Data)
	a.Data = v
	return changed
}
