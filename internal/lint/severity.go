package lint

import (
	"fmt"
	"strings"
)

// Level is the reporting level of a rule. Ignore is never reported.
type Level int

// Levels.
const (
	Ignore Level = iota
	Warning
	Error
)

// String returns the configuration token for the level.
func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "ignore"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel parses "ignore", "warning" or "error", ignoring case and
// surrounding space.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore":
		return Ignore, nil
	case "warning":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Ignore, fmt.Errorf("invalid level %q (expected ignore, warning or error)", s)
}

// Settings maps rule ids to user-chosen levels. Build it with Sanitize.
type Settings map[string]Level

// Sanitize turns raw user configuration into Settings. Values that are not
// valid level tokens are dropped. Known rule ids are canonicalized; unknown
// ids are kept as given and later ignored by Resolve.
func Sanitize(raw map[string]any) Settings {
	out := make(Settings, len(raw))
	for key, value := range raw {
		var level Level
		switch v := value.(type) {
		case string:
			parsed, err := ParseLevel(v)
			if err != nil {
				continue
			}
			level = parsed
		case Level:
			if v < Ignore || v > Error {
				continue
			}
			level = v
		default:
			continue
		}
		if rule, ok := Lookup(key); ok {
			key = rule.ID
		}
		out[key] = level
	}
	return out
}

// SeverityTable holds the resolved level of every registered rule. It is
// read-only once built.
type SeverityTable struct {
	levels map[string]Level
}

// Resolve builds the table from rule defaults overridden by settings.
func Resolve(settings Settings) SeverityTable {
	levels := make(map[string]Level, len(registry))
	for _, r := range registry {
		level := r.Default
		if override, ok := settings[r.ID]; ok {
			level = override
		}
		levels[r.ID] = level
	}
	return SeverityTable{levels: levels}
}

// DefaultTable returns the table of default levels.
func DefaultTable() SeverityTable {
	return Resolve(nil)
}

// Level returns the resolved level for a rule id. Unregistered ids resolve
// to Ignore.
func (t SeverityTable) Level(id string) Level {
	return t.levels[id]
}

// Overridden reports whether the level of id differs from its default.
func (t SeverityTable) Overridden(id string) bool {
	r, ok := Lookup(id)
	return ok && t.levels[r.ID] != r.Default
}
