package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected Level
		wantErr  bool
	}{
		{"ignore", Ignore, false},
		{"Warning", Warning, false},
		{" ERROR ", Error, false},
		{"fatal", Ignore, true},
		{"", Ignore, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLevelText(t *testing.T) {
	text, err := Warning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warning", string(text))

	var l Level
	require.NoError(t, l.UnmarshalText([]byte("error")))
	assert.Equal(t, Error, l)
	assert.Error(t, l.UnmarshalText([]byte("loud")))
}

func TestSanitize(t *testing.T) {
	settings := Sanitize(map[string]any{
		"EmptyRules":     "error",
		"zeroUnits":      "warning",
		"float":          "nope",
		"idSelector":     42,
		"important":      Error,
		"notARule":       "error",
		"hexColorLength": Level(7),
	})

	assert.Equal(t, Settings{
		"emptyRules": Error,
		"zeroUnits":  Warning,
		"important":  Error,
		"notARule":   Error,
	}, settings)
}

func TestResolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		table := Resolve(nil)
		for _, r := range Rules() {
			assert.Equal(t, r.Default, table.Level(r.ID), r.ID)
		}
	})

	t.Run("overrides win and unknown keys are ignored", func(t *testing.T) {
		table := Resolve(Settings{"hexColorLength": Warning, "notARule": Error})
		assert.Equal(t, Warning, table.Level("hexColorLength"))
		assert.Equal(t, Ignore, table.Level("notARule"))
		assert.True(t, table.Overridden("hexColorLength"))
		assert.False(t, table.Overridden("emptyRules"))
		assert.Equal(t, Warning, table.Level("emptyRules"))
	})
}

func TestRegistry(t *testing.T) {
	rules := Rules()
	require.Len(t, rules, 18)

	seen := make(map[string]bool)
	for _, r := range rules {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
		assert.NotEmpty(t, r.Description, r.ID)
	}

	r, ok := Lookup("HEXCOLORLENGTH")
	require.True(t, ok)
	assert.Equal(t, HexColorLength, r)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
