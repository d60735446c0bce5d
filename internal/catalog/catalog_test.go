package catalog

import (
	"testing"

	"github.com/dyuri/ramap/internal/model"
)

func TestCatalogLookups(t *testing.T) {
	c := New()

	if tt := c.Template(ClearID); tt == nil || !tt.IsClear() {
		t.Error("clear template missing or not flagged clear")
	}
	if tt := c.TemplateByName("br1a"); tt == nil || tt.Width != 4 || tt.Height != 3 {
		t.Errorf("BR1A = %+v, want 4x3", tt)
	}
	if o := c.Overlay(5); o == nil || o.Name != "GOLD01" {
		t.Errorf("overlay 5 = %+v, want GOLD01", o)
	}
	if u := c.Unit("2tnk", model.Vehicle); u == nil {
		t.Error("2TNK not found")
	}
	if u := c.Unit("2TNK", model.Vessel); u != nil {
		t.Error("2TNK found as vessel")
	}
	if got := c.MissionIndex("area guard"); got != 10 {
		t.Errorf("MissionIndex(area guard) = %d, want 10", got)
	}
	if !c.IsTeamTechno("E1") || !c.IsTeamTechno("LST") || c.IsTeamTechno("POWR") {
		t.Error("IsTeamTechno gave wrong answers")
	}
	if len(c.Houses) != 20 || c.House("ussr").ID != 2 {
		t.Error("house list wrong")
	}
}

func TestTemplateIDsUnique(t *testing.T) {
	seen := make(map[uint16]string)
	for _, tt := range New().Templates {
		if prev, ok := seen[tt.ID]; ok {
			t.Errorf("template id %d used by %s and %s", tt.ID, prev, tt.Name)
		}
		seen[tt.ID] = tt.Name
	}
}

func TestFamily(t *testing.T) {
	fam := New().Family("bridge1")
	if len(fam) != 3 {
		t.Fatalf("bridge1 family has %d members, want 3", len(fam))
	}
	for _, tt := range fam {
		if tt.Width != fam[0].Width || tt.Height != fam[0].Height {
			t.Errorf("%s has different geometry", tt.Name)
		}
	}
}

func TestLoadRules(t *testing.T) {
	c := New()
	rules := []byte(`[POWR]
Power=150
Bib=no

[SILO]
Storage=abc
`)
	msgs, err := c.LoadRules(rules)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("got %d messages, want 1: %v", len(msgs), msgs)
	}

	powr := c.Building("POWR")
	if powr.Power != 150 {
		t.Errorf("POWR Power = %d, want 150", powr.Power)
	}
	if powr.HasBib {
		t.Error("POWR still has a bib")
	}
	if c.Building("SILO").Storage != 1500 {
		t.Error("invalid SILO storage was applied")
	}

	if New().Building("POWR").Power != 100 {
		t.Error("rules leaked into a fresh catalog")
	}
}
