package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/transform"

	"github.com/dyuri/ramap/internal/grid"
	"github.com/dyuri/ramap/internal/model"
	"github.com/dyuri/ramap/internal/pack"
)

// The game expects DOS line endings.
const eol = "\r\n"

// Writer writes a map in the scenario INI format.
type Writer struct {
	w   *bufio.Writer
	enc *transform.Writer
	err error
}

// NewWriter creates a writer. Output is encoded as DOS-437.
func NewWriter(w io.Writer) *Writer {
	enc := newDOSWriter(w)
	return &Writer{w: bufio.NewWriter(enc), enc: enc}
}

// Write outputs m. Sections are written in a fixed order, followed by
// the sections that were read but not interpreted.
func (w *Writer) Write(m *model.Map) error {
	w.writeBasic(m)
	w.writeMap(m)
	w.writeSteam(m.Steam)
	w.writeBriefing(m.Briefing)
	w.writeTeamTypes(m)
	w.writeTriggers(m)
	w.writePack(SectionMapPack, grid.EncodeTiles(m.Templates))
	w.writePack(SectionOverlayPack, grid.EncodeOverlay(m.Overlay))
	w.writeSmudge(m)
	w.writeTerrain(m)
	w.writeUnits(m, SectionUnits, model.Vehicle)
	w.writeUnits(m, SectionAircraft, model.Aircraft)
	w.writeUnits(m, SectionShips, model.Vessel)
	w.writeInfantry(m)
	w.writeStructures(m)
	w.writeBase(m)
	w.writeWaypoints(m)
	w.writeCellTriggers(m)
	w.writeHouses(m)
	for _, sec := range m.Extra {
		w.section(sec.Name)
		for _, kv := range sec.Entries {
			w.key(kv.Key, kv.Value)
		}
	}

	if w.err != nil {
		return fmt.Errorf("write map: %w", w.err)
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	return nil
}

func (w *Writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *Writer) section(name string) {
	w.printf("[%s]"+eol, name)
}

func (w *Writer) key(k, v string) {
	w.printf("%s=%s"+eol, k, v)
}

func (w *Writer) keyf(k, format string, args ...interface{}) {
	w.key(k, fmt.Sprintf(format, args...))
}

func (w *Writer) end() {
	w.printf(eol)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (w *Writer) writeBasic(m *model.Map) {
	b := m.Basic
	w.section(SectionBasic)
	w.key("Name", b.Name)
	w.key("Author", b.Author)
	w.key("Intro", b.Intro)
	w.key("Brief", b.Brief)
	w.key("Win", b.Win)
	w.key("Win2", b.Win2)
	w.key("Win3", b.Win3)
	w.key("Win4", b.Win4)
	w.key("Lose", b.Lose)
	w.key("Action", b.Action)
	w.key("Player", b.Player)
	w.key("Theme", b.Theme)
	w.key("CarryOverMoney", strconv.FormatFloat(b.CarryOverMoney, 'f', -1, 64))
	w.key("ToCarryOver", yesNo(b.ToCarryOver))
	w.key("TimerInherit", yesNo(b.TimerInherit))
	w.key("CivEvac", yesNo(b.CivEvac))
	w.keyf("NewINIFormat", "%d", b.NewINIFormat)
	w.keyf("Percent", "%d", b.Percent)
	w.key("EndOfGame", yesNo(b.EndOfGame))
	w.key("NoSpyPlane", yesNo(b.NoSpyPlane))
	w.key("SkipScore", yesNo(b.SkipScore))
	w.key("OneTimeOnly", yesNo(b.OneTimeOnly))
	w.key("SkipMapSelect", yesNo(b.SkipMapSelect))
	w.key("Official", yesNo(b.Official))
	w.key("FillSilos", yesNo(b.FillSilos))
	w.key("TruckCrate", yesNo(b.TruckCrate))
	w.key("SoloPlay", yesNo(b.SoloPlay))
	for _, kv := range b.Extra {
		w.key(kv.Key, kv.Value)
	}
	w.end()
}

func (w *Writer) writeMap(m *model.Map) {
	w.section(SectionMap)
	w.key("Theater", m.Theater.String())
	w.keyf("X", "%d", m.Bounds.X)
	w.keyf("Y", "%d", m.Bounds.Y)
	w.keyf("Width", "%d", m.Bounds.Width)
	w.keyf("Height", "%d", m.Bounds.Height)
	w.end()
}

func (w *Writer) writeSteam(s model.Steam) {
	if s == (model.Steam{}) {
		return
	}
	w.section(SectionSteam)
	w.key("Title", s.Title)
	w.key("Description", s.Description)
	w.key("PreviewFile", s.PreviewFile)
	w.key("Tags", s.Tags)
	w.keyf("Visibility", "%d", s.Visibility)
	w.end()
}

// splitBriefing breaks text into lines of at most briefingLine characters
// at spaces. Line breaks are stored as "@@". A word longer than a line is
// cut, and reading it back joins the pieces with a space.
func splitBriefing(text string) []string {
	text = strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", "@@")
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		for len(word) > briefingLine {
			if cur.Len() > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			lines = append(lines, word[:briefingLine])
			word = word[briefingLine:]
		}
		if cur.Len() > 0 && cur.Len()+1+len(word) > briefingLine {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func (w *Writer) writeBriefing(text string) {
	lines := splitBriefing(text)
	if len(lines) == 0 {
		return
	}
	w.section(SectionBriefing)
	for i, line := range lines {
		w.key(strconv.Itoa(i+1), line)
	}
	w.end()
}

func (w *Writer) writePack(name string, data []byte) {
	w.section(name)
	for _, kv := range pack.Pack(data) {
		w.key(kv.Key, kv.Value)
	}
	w.end()
}

func (w *Writer) writeTeamTypes(m *model.Map) {
	if len(m.TeamTypes) == 0 {
		return
	}
	w.section(SectionTeamTypes)
	for _, tt := range m.TeamTypes {
		vals := []string{
			strconv.Itoa(tt.House),
			strconv.Itoa(int(tt.Flags)),
			strconv.Itoa(tt.RecruitPriority),
			strconv.Itoa(tt.InitNum),
			strconv.Itoa(tt.MaxAllowed),
			strconv.Itoa(tt.Origin),
			strconv.Itoa(m.TriggerIndex(tt.Trigger)),
			strconv.Itoa(len(tt.Classes)),
		}
		for _, c := range tt.Classes {
			vals = append(vals, fmt.Sprintf("%s:%d", c.Type, c.Count))
		}
		vals = append(vals, strconv.Itoa(len(tt.Missions)))
		for _, ms := range tt.Missions {
			vals = append(vals, fmt.Sprintf("%d:%d", ms.Mission, ms.Argument))
		}
		w.key(tt.Name, strings.Join(vals, ","))
	}
	w.end()
}

func (w *Writer) writeTriggers(m *model.Map) {
	if len(m.Triggers) == 0 {
		return
	}
	w.section(SectionTrigs)
	for _, t := range m.Triggers {
		vals := []int{int(t.Persistence), t.House, int(t.EventControl), int(t.ActionControl)}
		for _, e := range []model.Event{t.Event1, t.Event2} {
			vals = append(vals, int(e.Type), m.TeamTypeIndex(e.Team), int(e.Data))
		}
		for _, a := range []model.Action{t.Action1, t.Action2} {
			vals = append(vals, int(a.Type), m.TeamTypeIndex(a.Team), m.TriggerIndex(a.Trigger), int(a.Data))
		}
		w.key(t.Name, joinInts(vals))
	}
	w.end()
}

func joinInts(vals []int) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, ",")
}

func (w *Writer) writeSmudge(m *model.Map) {
	var lines []string
	m.Smudge.Each(func(cell int, s *model.Smudge) {
		if s == nil || s.Type.Flags&model.SmudgeBib != 0 {
			return
		}
		lines = append(lines, fmt.Sprintf("%s,%d,%d", s.Type.Name, cell, s.Icon))
	})
	w.list(SectionSmudge, lines)
}

// list writes lines under zero-based numeric keys.
func (w *Writer) list(name string, lines []string) {
	if len(lines) == 0 {
		return
	}
	w.section(name)
	for i, line := range lines {
		w.key(strconv.Itoa(i), line)
	}
	w.end()
}

func (w *Writer) writeTerrain(m *model.Map) {
	var placed []model.Placed
	for _, p := range m.Technos.All() {
		if _, ok := p.Occupier.(*model.Terrain); ok {
			placed = append(placed, p)
		}
	}
	if len(placed) == 0 {
		return
	}
	w.section(SectionTerrain)
	for _, p := range placed {
		t := p.Occupier.(*model.Terrain)
		if model.IsNone(t.Trigger) {
			w.key(strconv.Itoa(p.Cell), t.Type.Name)
		} else {
			w.keyf(strconv.Itoa(p.Cell), "%s,%s", t.Type.Name, t.Trigger)
		}
	}
	w.end()
}

func triggerName(name string) string {
	if model.IsNone(name) {
		return model.NoneName
	}
	return name
}

func (w *Writer) writeUnits(m *model.Map, name string, kind model.UnitKind) {
	var lines []string
	for _, p := range m.Technos.All() {
		u, ok := p.Occupier.(*model.Unit)
		if !ok || u.Type.Kind != kind {
			continue
		}
		line := fmt.Sprintf("%s,%s,%d,%d,%d,%s", u.House.Name, u.Type.Name, u.Strength, p.Cell, u.Direction, u.Mission)
		if kind != model.Aircraft {
			line += "," + triggerName(u.Trigger)
		}
		lines = append(lines, line)
	}
	w.list(name, lines)
}

func (w *Writer) writeInfantry(m *model.Map) {
	var lines []string
	for _, p := range m.Technos.All() {
		g, ok := p.Occupier.(*model.InfantryGroup)
		if !ok {
			continue
		}
		for slot, inf := range g.Infantry {
			if inf == nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s,%s,%d,%d,%d,%s,%d,%s",
				inf.House.Name, inf.Type.Name, inf.Strength, p.Cell, slot, inf.Mission, inf.Direction, triggerName(inf.Trigger)))
		}
	}
	w.list(SectionInfantry, lines)
}

func (w *Writer) writeStructures(m *model.Map) {
	var lines []string
	for _, p := range m.Technos.All() {
		b, ok := p.Occupier.(*model.Building)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s,%s,%d,%d,%d,%s,%d,%d",
			b.House.Name, b.Type.Name, b.Strength, p.Cell, b.Direction, triggerName(b.Trigger), boolInt(b.Sellable), boolInt(b.Rebuild)))
	}
	w.list(SectionStructures, lines)
}

func (w *Writer) writeBase(m *model.Map) {
	if m.Base.Player == "" && len(m.Base.Nodes) == 0 {
		return
	}
	w.section(SectionBase)
	if m.Base.Player != "" {
		w.key("Player", m.Base.Player)
	}
	w.keyf("Count", "%d", len(m.Base.Nodes))
	for i, n := range m.Base.Nodes {
		w.keyf(fmt.Sprintf("%03d", i), "%s,%d", n.Type.Name, cellToCoord(m.Metrics, n.Cell))
	}
	w.end()
}

func (w *Writer) writeWaypoints(m *model.Map) {
	w.section(SectionWaypoints)
	for i, wp := range m.Waypoints {
		if wp.HasCell() {
			w.keyf(strconv.Itoa(i), "%d", wp.Cell)
		}
	}
	w.end()
}

func (w *Writer) writeCellTriggers(m *model.Map) {
	if len(m.CellTriggers) == 0 {
		return
	}
	w.section(SectionCellTriggers)
	for cell := 0; cell < m.Metrics.Length(); cell++ {
		if name, ok := m.CellTriggers[cell]; ok {
			w.key(strconv.Itoa(cell), name)
		}
	}
	w.end()
}

func (w *Writer) writeHouses(m *model.Map) {
	for _, h := range m.Houses {
		if !h.Enabled {
			continue
		}
		w.section(h.Type.Name)
		w.keyf("Credits", "%d", h.Credits)
		w.key("Edge", h.Edge)
		w.keyf("MaxBuilding", "%d", h.MaxBuilding)
		w.keyf("MaxUnit", "%d", h.MaxUnit)
		w.keyf("MaxInfantry", "%d", h.MaxInfantry)
		w.keyf("MaxVessel", "%d", h.MaxVessel)
		w.keyf("TechLevel", "%d", h.TechLevel)
		w.keyf("IQ", "%d", h.IQ)
		w.key("PlayerControl", yesNo(h.PlayerControl))
		w.key("Allies", strings.Join(h.Allies, ","))
		for _, kv := range h.Extra {
			w.key(kv.Key, kv.Value)
		}
		w.end()
	}
}
