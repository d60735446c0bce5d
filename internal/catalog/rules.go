package catalog

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// ApplyRules patches building power, storage and bib values from a
// rules.ini style file. Unparsable values are reported and skipped.
func (c *Catalog) ApplyRules(rules *ini.File) []string {
	var msgs []string
	for _, b := range c.Buildings {
		sec, err := rules.GetSection(b.Name)
		if err != nil {
			continue
		}
		if sec.HasKey("Power") {
			if v, err := sec.Key("Power").Int(); err == nil {
				b.Power = v
			} else {
				msgs = append(msgs, fmt.Sprintf("Rules: building '%s' has an invalid Power value '%s'.", b.Name, sec.Key("Power").String()))
			}
		}
		if sec.HasKey("Storage") {
			if v, err := sec.Key("Storage").Int(); err == nil {
				b.Storage = v
			} else {
				msgs = append(msgs, fmt.Sprintf("Rules: building '%s' has an invalid Storage value '%s'.", b.Name, sec.Key("Storage").String()))
			}
		}
		if sec.HasKey("Bib") {
			if v, err := sec.Key("Bib").Bool(); err == nil {
				b.HasBib = v
			} else {
				msgs = append(msgs, fmt.Sprintf("Rules: building '%s' has an invalid Bib value '%s'.", b.Name, sec.Key("Bib").String()))
			}
		}
	}
	return msgs
}

// LoadRules parses a rules file and applies it.
func (c *Catalog) LoadRules(data []byte) ([]string, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines: true,
		IgnoreContinuation:      true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return c.ApplyRules(f), nil
}
