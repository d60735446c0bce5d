package ramap

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dyuri/ramap/internal/catalog"
	"github.com/dyuri/ramap/internal/meg"
	"github.com/dyuri/ramap/internal/model"
)

const testMap = "[Basic]\r\n" +
	"Name=Library Test\r\n" +
	"Player=USSR\r\n" +
	"\r\n" +
	"[Map]\r\n" +
	"Theater=SNOW\r\n" +
	"X=2\r\n" +
	"Y=3\r\n" +
	"Width=60\r\n" +
	"Height=40\r\n" +
	"\r\n" +
	"[Waypoints]\r\n" +
	"0=394\r\n"

func load(t *testing.T, opts Options) *model.Map {
	t.Helper()
	m, _, err := Load(strings.NewReader(testMap), opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestLoadSave(t *testing.T) {
	m, report, err := Load(strings.NewReader(testMap), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if report == nil {
		t.Fatal("nil report")
	}
	if m.Basic.Name != "Library Test" || m.Basic.Player != "USSR" {
		t.Errorf("Basic = %q/%q", m.Basic.Name, m.Basic.Player)
	}
	if m.Theater != model.Snow {
		t.Errorf("Theater = %v, want snow", m.Theater)
	}
	if m.Bounds != (model.Bounds{X: 2, Y: 3, Width: 60, Height: 40}) {
		t.Errorf("Bounds = %+v", m.Bounds)
	}

	var out bytes.Buffer
	if err := Save(&out, m, Options{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(out.String(), "Name=Library Test\r\n") {
		t.Errorf("saved map lacks name:\n%s", out.String())
	}

	again, _, err := Load(&out, Options{})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if m.Waypoints[0].Cell != 394 || again.Waypoints[0].Cell != 394 {
		t.Errorf("waypoint 0 = %d then %d, want 394", m.Waypoints[0].Cell, again.Waypoints[0].Cell)
	}
}

func TestLoadInvalidFormat(t *testing.T) {
	_, _, err := Load(strings.NewReader("[Basic\r\nName=x\r\n"), Options{})
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("err = %v, want ErrInvalidFormat", err)
	}
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Cause == nil {
		t.Errorf("error has no cause: %v", err)
	}
}

func TestLoadRules(t *testing.T) {
	cat := catalog.New()
	rules := []byte("[POWR]\r\nPower=250\r\n\r\n[PROC]\r\nStorage=lots\r\n")

	_, report, err := Load(strings.NewReader(testMap), Options{Catalog: cat, Rules: rules})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cat.Building("POWR").Power; got != 250 {
		t.Errorf("POWR power = %d, want 250", got)
	}
	if len(report.Messages) == 0 || !strings.Contains(report.Messages[0], "PROC") {
		t.Errorf("messages = %q, want the invalid Storage value first", report.Messages)
	}

	_, _, err = Load(strings.NewReader(testMap), Options{Rules: []byte("[POWR\r\n")})
	if !errors.Is(err, ErrInvalidRules) {
		t.Errorf("err = %v, want ErrInvalidRules", err)
	}
}

func TestRulesChangeEconomy(t *testing.T) {
	text := testMap + "\r\n[STRUCTURES]\r\n0=USSR,POWR,256,1290,0,None,1,0\r\n1=USSR,POWR,256,1300,0,None,1,0\r\n"
	for _, tt := range []struct {
		rules string
		want  int
	}{
		{"", 200},
		{"[POWR]\r\nPower=250\r\n", 500},
	} {
		m, _, err := Load(strings.NewReader(text), Options{Rules: []byte(tt.rules)})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		e := m.Economies()["USSR"]
		if e.Structures != 2 || e.Power != tt.want {
			t.Errorf("rules %q: economy = %+v, want power %d", tt.rules, e, tt.want)
		}
	}
}

func TestSaveRefusesFatal(t *testing.T) {
	m := load(t, Options{})
	trig := model.NewTrigger("crt")
	trig.Event1.Type = model.EventTime
	trig.Action1.Type = model.ActionCreateTeam
	m.Triggers = append(m.Triggers, trig)

	var out bytes.Buffer
	err := Save(&out, m, Options{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if out.Len() != 0 {
		t.Errorf("refused save wrote %d bytes", out.Len())
	}
	if !strings.Contains(err.Error(), "'crt'") {
		t.Errorf("error does not name the trigger: %v", err)
	}

	if err := Save(&out, m, Options{Force: true}); err != nil {
		t.Fatalf("forced save: %v", err)
	}
	if !strings.Contains(out.String(), "[Trigs]") {
		t.Error("forced save lacks triggers")
	}
}

func TestValidateFix(t *testing.T) {
	m := load(t, Options{})
	m.CellTriggers[m.Metrics.Cell(5, 5)] = "gone"

	report, err := Validate(m, Options{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Messages) == 0 || report.Fixed {
		t.Fatalf("report = %+v, want a message and no fix", report)
	}
	if len(m.CellTriggers) != 1 {
		t.Fatal("check-only validation changed the map")
	}

	report, _ = Validate(m, Options{}, true)
	if !report.Fixed || len(m.CellTriggers) != 0 {
		t.Errorf("fix left %d cell triggers, report %+v", len(m.CellTriggers), report)
	}
}

func TestWriteArchive(t *testing.T) {
	m := load(t, Options{})

	var buf bytes.Buffer
	if err := WriteArchive(&buf, "data/custom_maps/test.mpr", m, Options{}); err != nil {
		t.Fatalf("WriteArchive: %v", err)
	}
	data := buf.Bytes()
	entries, err := meg.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("meg.Read: %v", err)
	}

	files := make(map[string][]byte)
	for _, e := range entries {
		b, err := meg.ReadFile(bytes.NewReader(data), e)
		if err != nil {
			t.Fatal(err)
		}
		files[e.Name] = b
	}
	if !bytes.Contains(files[`DATA\CUSTOM_MAPS\TEST.MPR`], []byte("[Basic]")) {
		t.Errorf("archive lacks the map, have %d files", len(files))
	}

	var meta struct {
		Theater string
		Width   int
		Height  int
	}
	if err := json.Unmarshal(files[`DATA\CUSTOM_MAPS\TEST.JSON`], &meta); err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.Width != 60 || meta.Height != 40 {
		t.Errorf("metadata = %+v", meta)
	}
}
