// Package mapfile reads and writes Red Alert scenario INI files.
//
// Reading never fails on bad content: every record that cannot be used
// is dropped and described in the result messages, and the rest of the
// file is still loaded. Only text that is not INI at all is an error.
package mapfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"github.com/dyuri/ramap/internal/catalog"
	"github.com/dyuri/ramap/internal/grid"
	"github.com/dyuri/ramap/internal/model"
	"github.com/dyuri/ramap/internal/pack"
	"github.com/dyuri/ramap/internal/validate"
)

// Section names.
const (
	SectionBasic        = "Basic"
	SectionMap          = "Map"
	SectionSteam        = "Steam"
	SectionBriefing     = "Briefing"
	SectionTeamTypes    = "TeamTypes"
	SectionTrigs        = "Trigs"
	SectionMapPack      = "MapPack"
	SectionOverlayPack  = "OverlayPack"
	SectionSmudge       = "SMUDGE"
	SectionTerrain      = "Terrain"
	SectionUnits        = "Units"
	SectionAircraft     = "Aircraft"
	SectionShips        = "Ships"
	SectionInfantry     = "INFANTRY"
	SectionStructures   = "STRUCTURES"
	SectionBase         = "Base"
	SectionWaypoints    = "Waypoints"
	SectionCellTriggers = "CellTriggers"
)

var knownSections = []string{
	SectionBasic, SectionMap, SectionSteam, SectionBriefing, SectionTeamTypes,
	SectionTrigs, SectionMapPack, SectionOverlayPack, SectionSmudge,
	SectionTerrain, SectionUnits, SectionAircraft, SectionShips,
	SectionInfantry, SectionStructures, SectionBase, SectionWaypoints,
	SectionCellTriggers,
}

func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		SkipUnrecognizableLines:    true,
		IgnoreContinuation:         true,
		IgnoreInlineComment:        true,
		PreserveSurroundedQuote:    true,
		KeyValueDelimiters:         "=",
		// Repeated keys are kept so that the reader can report them.
		AllowShadows:               true,
		AllowDuplicateShadowValues: true,
	}
}

// repeats returns how often k was defined again after its first
// definition. ini does not track repeats with an empty value.
func repeats(k *ini.Key) int {
	n := len(k.ValueWithShadows())
	if k.Value() == "" {
		return n
	}
	return n - 1
}

// skipRepeats reports every repeated definition of k. Only the first
// one is used.
func (r *Reader) skipRepeats(k *ini.Key, what string) {
	for i := repeats(k); i > 0; i-- {
		r.fix("%s is defined more than once; skipping the duplicate.", what)
	}
}

// Result is the outcome of a read.
type Result struct {
	Messages []string
	// Modified is set when the loaded map differs from the file, so
	// that saving it would change the content.
	Modified bool
}

// Reader loads map files against a type catalog.
type Reader struct {
	cat *catalog.Catalog
	log logrus.FieldLogger

	file    *ini.File
	m       *model.Map
	res     *Result
	sets    validate.Sets
	teamRef map[*model.TeamType]int
}

// NewReader creates a reader. A nil logger discards all output.
func NewReader(cat *catalog.Catalog, log logrus.FieldLogger) *Reader {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Reader{cat: cat, log: log}
}

// Read parses a map file.
func (r *Reader) Read(data []byte) (*model.Map, *Result, error) {
	text, err := decodeDOS(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode map text: %w", err)
	}
	f, err := ini.LoadSources(loadOptions(), []byte(text))
	if err != nil {
		return nil, nil, fmt.Errorf("parse map: %w", err)
	}

	r.file = f
	r.res = &Result{}
	r.teamRef = make(map[*model.TeamType]int)

	theater := model.Temperate
	if sec := r.section(SectionMap); sec != nil {
		if v, ok := keyValue(sec, "Theater"); ok {
			if t, ok := model.ParseTheater(v); ok {
				theater = t
			} else {
				r.fix("Unknown theater '%s'; using %s.", v, theater)
			}
		}
	}
	r.m = model.New(theater, r.cat.Houses)
	r.m.BeginUpdate()
	defer r.m.EndUpdate()

	r.readBasic()
	r.readMap()
	r.readSteam()
	r.readBriefing()
	if isUTF8(data) {
		r.applyUTF8(data)
	}
	r.readMapPack()
	r.readOverlayPack()
	r.readSmudge()
	r.readTeamTypes()
	r.readTriggers()
	r.resolveTeamTriggers()
	r.sets = validate.Applicable(r.m.Triggers)
	r.readTerrain()
	r.readUnits(SectionUnits, model.Vehicle, 7)
	r.readUnits(SectionAircraft, model.Aircraft, 6)
	r.readUnits(SectionShips, model.Vessel, 7)
	r.readInfantry()
	r.readStructures()
	r.readBase()
	r.readWaypoints()
	r.readCellTriggers()
	r.readHouses()
	r.readExtra()

	r.log.WithFields(logrus.Fields{
		"theater":  r.m.Theater,
		"triggers": len(r.m.Triggers),
		"teams":    len(r.m.TeamTypes),
		"objects":  r.m.Technos.Len(),
		"messages": len(r.res.Messages),
	}).Debug("map loaded")

	return r.m, r.res, nil
}

// fix records a change made to the loaded data.
func (r *Reader) fix(format string, args ...interface{}) {
	r.res.Messages = append(r.res.Messages, fmt.Sprintf(format, args...))
	r.res.Modified = true
}

// warn records a problem that did not change the loaded data.
func (r *Reader) warn(format string, args ...interface{}) {
	r.res.Messages = append(r.res.Messages, fmt.Sprintf(format, args...))
}

func (r *Reader) section(name string) *ini.Section {
	return findSection(r.file, name)
}

func findSection(f *ini.File, name string) *ini.Section {
	for _, sec := range f.Sections() {
		if strings.EqualFold(sec.Name(), name) {
			return sec
		}
	}
	return nil
}

func keyValue(sec *ini.Section, name string) (string, bool) {
	for _, k := range sec.Keys() {
		if strings.EqualFold(k.Name(), name) {
			return k.String(), true
		}
	}
	return "", false
}

func entries(sec *ini.Section) []pack.KeyValue {
	keys := sec.Keys()
	out := make([]pack.KeyValue, len(keys))
	for i, k := range keys {
		out[i] = pack.KeyValue{Key: k.Name(), Value: k.String()}
	}
	return out
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "yes", "true", "on", "y", "t":
		return true, nil
	case "0", "no", "false", "off", "n", "f", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func (r *Reader) readBasic() {
	sec := r.section(SectionBasic)
	if sec == nil {
		r.warn("Map has no [%s] section.", SectionBasic)
		return
	}
	r.log.WithField("section", SectionBasic).Debug("reading section")
	b := &r.m.Basic
	strs := map[string]*string{
		"name": &b.Name, "author": &b.Author, "intro": &b.Intro, "brief": &b.Brief,
		"win": &b.Win, "win2": &b.Win2, "win3": &b.Win3, "win4": &b.Win4,
		"lose": &b.Lose, "action": &b.Action, "player": &b.Player, "theme": &b.Theme,
	}
	bools := map[string]*bool{
		"tocarryover": &b.ToCarryOver, "timerinherit": &b.TimerInherit, "civevac": &b.CivEvac,
		"endofgame": &b.EndOfGame, "nospyplane": &b.NoSpyPlane, "skipscore": &b.SkipScore,
		"onetimeonly": &b.OneTimeOnly, "skipmapselect": &b.SkipMapSelect, "official": &b.Official,
		"fillsilos": &b.FillSilos, "truckcrate": &b.TruckCrate, "soloplay": &b.SoloPlay,
	}
	ints := map[string]*int{
		"newiniformat": &b.NewINIFormat, "percent": &b.Percent,
	}

	for _, k := range sec.Keys() {
		name := strings.ToLower(k.Name())
		v := k.String()
		r.skipRepeats(k, fmt.Sprintf("[%s] %s", SectionBasic, k.Name()))
		if p, ok := strs[name]; ok {
			*p = v
			continue
		}
		if p, ok := bools[name]; ok {
			x, err := parseBool(v)
			if err != nil {
				r.fix("[%s] %s has an invalid value '%s'; using 'no'.", SectionBasic, k.Name(), v)
			}
			*p = x
			continue
		}
		if p, ok := ints[name]; ok {
			x, err := atoi(v)
			if err != nil {
				r.fix("[%s] %s has an invalid value '%s'; ignoring.", SectionBasic, k.Name(), v)
				continue
			}
			*p = x
			continue
		}
		if name == "carryovermoney" {
			x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				r.fix("[%s] %s has an invalid value '%s'; ignoring.", SectionBasic, k.Name(), v)
				continue
			}
			b.CarryOverMoney = x
			continue
		}
		b.Extra = append(b.Extra, model.KeyValue{Key: k.Name(), Value: v})
	}
	if r.m.HouseByName(b.Player) == nil {
		r.fix("[%s] Player '%s' is not a known house; using '%s'.", SectionBasic, b.Player, model.NewBasic().Player)
		b.Player = model.NewBasic().Player
	}
}

func (r *Reader) readMap() {
	sec := r.section(SectionMap)
	if sec == nil {
		r.warn("Map has no [%s] section.", SectionMap)
		return
	}
	bounds := r.m.Bounds
	fields := []struct {
		key string
		dst *int
	}{
		{"X", &bounds.X}, {"Y", &bounds.Y}, {"Width", &bounds.Width}, {"Height", &bounds.Height},
	}
	for _, f := range fields {
		v, ok := keyValue(sec, f.key)
		if !ok {
			continue
		}
		n, err := atoi(v)
		if err != nil {
			r.fix("[%s] %s has an invalid value '%s'; ignoring.", SectionMap, f.key, v)
			continue
		}
		*f.dst = n
	}
	mw, mh := r.m.Metrics.Width, r.m.Metrics.Height
	if bounds.X < 0 || bounds.Y < 0 || bounds.Width <= 0 || bounds.Height <= 0 ||
		bounds.X+bounds.Width > mw || bounds.Y+bounds.Height > mh {
		r.fix("Map bounds %d,%d %dx%d do not fit in the %dx%d map; using defaults.", bounds.X, bounds.Y, bounds.Width, bounds.Height, mw, mh)
		return
	}
	r.m.Bounds = bounds
}

func (r *Reader) readSteam() {
	sec := r.section(SectionSteam)
	if sec == nil {
		return
	}
	readSteam(sec, &r.m.Steam)
	if v, ok := keyValue(sec, "Visibility"); ok {
		n, err := atoi(v)
		if err != nil {
			r.fix("[%s] Visibility has an invalid value '%s'; ignoring.", SectionSteam, v)
		}
		r.m.Steam.Visibility = n
	}
}

func readSteam(sec *ini.Section, s *model.Steam) {
	for key, dst := range map[string]*string{
		"Title": &s.Title, "Description": &s.Description,
		"PreviewFile": &s.PreviewFile, "Tags": &s.Tags,
	} {
		if v, ok := keyValue(sec, key); ok {
			*dst = v
		}
	}
}

// briefingLine is the longest value written per briefing key.
const briefingLine = 74

func readBriefing(sec *ini.Section) string {
	var b strings.Builder
	for i, line := range pack.SortedValues(entries(sec)) {
		if i > 0 && !strings.HasSuffix(b.String(), "@@") {
			b.WriteByte(' ')
		}
		b.WriteString(line)
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), "@@", "\n")
}

func (r *Reader) readBriefing() {
	if sec := r.section(SectionBriefing); sec != nil {
		r.m.Briefing = readBriefing(sec)
	}
}

// applyUTF8 takes the free text fields from the UTF-8 reading of data.
func (r *Reader) applyUTF8(data []byte) {
	f, err := ini.LoadSources(loadOptions(), data)
	if err != nil {
		r.log.WithError(err).Debug("UTF-8 reading failed")
		return
	}
	r.log.Debug("applying UTF-8 text overrides")
	if sec := findSection(f, SectionBasic); sec != nil {
		if v, ok := keyValue(sec, "Name"); ok {
			r.m.Basic.Name = v
		}
		if v, ok := keyValue(sec, "Author"); ok {
			r.m.Basic.Author = v
		}
	}
	if sec := findSection(f, SectionBriefing); sec != nil {
		r.m.Briefing = readBriefing(sec)
	}
	if sec := findSection(f, SectionSteam); sec != nil {
		readSteam(sec, &r.m.Steam)
	}
}

func (r *Reader) unpack(name string, size int) []byte {
	sec := r.section(name)
	if sec == nil {
		return nil
	}
	r.log.WithField("section", name).Debug("unpacking section")
	data, msgs := pack.Unpack(pack.SortedValues(entries(sec)), size)
	for _, msg := range msgs {
		r.fix("[%s] %s", name, msg)
	}
	return data
}

func (r *Reader) readMapPack() {
	data := r.unpack(SectionMapPack, r.m.Metrics.Length()*3)
	if data == nil {
		return
	}
	res := grid.DecodeTiles(data, r.m.Templates, r.m.Bounds, r.cat, r.m.Theater)
	r.addGridResult(res)
}

func (r *Reader) readOverlayPack() {
	data := r.unpack(SectionOverlayPack, r.m.Metrics.Length())
	if data == nil {
		return
	}
	res := grid.DecodeOverlay(data, r.m.Overlay, r.cat, r.m.Theater)
	r.addGridResult(res)
}

func (r *Reader) addGridResult(res grid.Result) {
	r.res.Messages = append(r.res.Messages, res.Messages...)
	r.res.Modified = r.res.Modified || res.Modified
}

func (r *Reader) readWaypoints() {
	sec := r.section(SectionWaypoints)
	if sec == nil {
		return
	}
	for _, k := range sec.Keys() {
		r.skipRepeats(k, fmt.Sprintf("Waypoint '%s'", k.Name()))
		idx, err := atoi(k.Name())
		if err != nil || idx < 0 || idx >= len(r.m.Waypoints) {
			r.fix("Waypoint '%s' is not a valid waypoint number; skipping.", k.Name())
			continue
		}
		cell, err := atoi(k.String())
		if err != nil {
			r.fix("Waypoint %d has an invalid cell '%s'; skipping.", idx, k.String())
			continue
		}
		if cell == model.NoCell {
			continue
		}
		if !r.m.Metrics.Contains(cell) {
			r.fix("Waypoint %d is outside the map (cell %d); skipping.", idx, cell)
			continue
		}
		r.m.Waypoints[idx].Cell = cell
	}
}

func (r *Reader) readCellTriggers() {
	sec := r.section(SectionCellTriggers)
	if sec == nil {
		return
	}
	for _, k := range sec.Keys() {
		r.skipRepeats(k, fmt.Sprintf("Cell trigger '%s'", k.Name()))
		cell, err := atoi(k.Name())
		if err != nil || !r.m.Metrics.Contains(cell) {
			r.fix("Cell trigger '%s' is not on a valid cell; skipping.", k.Name())
			continue
		}
		name := strings.TrimSpace(k.String())
		if model.IsNone(name) {
			continue
		}
		if res := r.sets.Link(validate.CellKind, name); res != validate.LinkOK {
			x, y := r.m.Metrics.Location(cell)
			r.fix("%s; skipping.", validate.LinkMessage("Cell trigger", "", x, y, validate.CellKind, name, res))
			continue
		}
		r.m.CellTriggers[cell] = r.m.FindTrigger(name).Name
	}
}

func (r *Reader) readHouses() {
	for i, ht := range r.m.HouseTypes {
		sec := r.section(ht.Name)
		if sec == nil {
			continue
		}
		r.log.WithField("section", ht.Name).Debug("reading house")
		h := &r.m.Houses[i]
		h.Enabled = true
		ints := map[string]*int{
			"credits": &h.Credits, "maxbuilding": &h.MaxBuilding, "maxunit": &h.MaxUnit,
			"maxinfantry": &h.MaxInfantry, "maxvessel": &h.MaxVessel,
			"techlevel": &h.TechLevel, "iq": &h.IQ,
		}
		for _, k := range sec.Keys() {
			name := strings.ToLower(k.Name())
			v := k.String()
			r.skipRepeats(k, fmt.Sprintf("[%s] %s", ht.Name, k.Name()))
			if p, ok := ints[name]; ok {
				n, err := atoi(v)
				if err != nil {
					r.fix("[%s] %s has an invalid value '%s'; ignoring.", ht.Name, k.Name(), v)
					continue
				}
				*p = n
				continue
			}
			switch name {
			case "edge":
				h.Edge = v
			case "playercontrol":
				b, err := parseBool(v)
				if err != nil {
					r.fix("[%s] %s has an invalid value '%s'; using 'no'.", ht.Name, k.Name(), v)
				}
				h.PlayerControl = b
			case "allies":
				h.Allies = h.Allies[:0]
				for _, a := range strings.Split(v, ",") {
					a = strings.TrimSpace(a)
					if a == "" {
						continue
					}
					if r.m.HouseByName(a) == nil {
						r.fix("[%s] Allies lists unknown house '%s'; removing.", ht.Name, a)
						continue
					}
					h.Allies = append(h.Allies, r.m.HouseByName(a).Name)
				}
			default:
				h.Extra = append(h.Extra, model.KeyValue{Key: k.Name(), Value: v})
			}
		}
	}
}

// readExtra keeps every section this package does not interpret.
func (r *Reader) readExtra() {
	for _, sec := range r.file.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection || r.isKnownSection(name) {
			continue
		}
		r.m.Extra = append(r.m.Extra, model.Section{Name: name, Entries: toModel(entries(sec))})
	}
}

func (r *Reader) isKnownSection(name string) bool {
	for _, s := range knownSections {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return r.m.HouseByName(name) != nil
}

func toModel(kvs []pack.KeyValue) []model.KeyValue {
	out := make([]model.KeyValue, len(kvs))
	for i, kv := range kvs {
		out[i] = model.KeyValue{Key: kv.Key, Value: kv.Value}
	}
	return out
}
