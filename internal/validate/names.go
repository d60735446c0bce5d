package validate

import (
	"github.com/elliotwutingfeng/asciiset"
)

const (
	// MaxTriggerName is the longest trigger name the game stores.
	MaxTriggerName = 4
	// MaxTeamName is the longest team type name the game stores.
	MaxTeamName = 8
)

// reservedChars break the comma separated records or the INI syntax.
var reservedChars, _ = asciiset.MakeASCIISet(",;=[]\"")

// BadNameChars returns the characters of name that cannot be written to
// a map file, each reported once.
func BadNameChars(name string) string {
	var seen asciiset.ASCIISet
	var bad []byte
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 0x80 {
			// Non-ASCII does not survive the DOS-437 round trip.
			c = '?'
		} else if c >= 0x20 && !reservedChars.Contains(c) {
			continue
		}
		if !seen.Contains(c) {
			seen.Add(c)
			bad = append(bad, c)
		}
	}
	return string(bad)
}

func checkName(what, name string, maxLen int, warn func(string, ...interface{})) {
	if name == "" {
		warn("%s has an empty name.", what)
		return
	}
	if len(name) > maxLen {
		warn("%s '%s' has a name longer than %d characters; the game will truncate it.", what, name, maxLen)
	}
	if bad := BadNameChars(name); bad != "" {
		warn("%s '%s' has characters that are not allowed in names: %q.", what, name, bad)
	}
}
