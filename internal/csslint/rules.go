package csslint

import (
	"encoding/json"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/yacobolo/csslint"
	"github.com/yacobolo/csslint/internal/lint"
)

// RuleInfo describes one registered rule and the level it resolves to.
type RuleInfo struct {
	ID          string `json:"id"`
	Default     string `json:"default"`
	Level       string `json:"level"`
	Overridden  bool   `json:"overridden"`
	Description string `json:"description"`
}

// ListRules returns every registered rule with its level under settings.
func ListRules(settings *csslint.LanguageSettings) []RuleInfo {
	var raw map[string]any
	if settings != nil {
		raw = settings.Lint
	}
	resolved := lint.Resolve(lint.Sanitize(raw))

	rules := lint.Rules()
	out := make([]RuleInfo, 0, len(rules))
	for _, r := range rules {
		out = append(out, RuleInfo{
			ID:          r.ID,
			Default:     r.Default.String(),
			Level:       resolved.Level(r.ID).String(),
			Overridden:  resolved.Overridden(r.ID),
			Description: r.Description,
		})
	}
	return out
}

// WriteRulesTable renders rules as a terminal table.
func WriteRulesTable(w io.Writer, rules []RuleInfo, useColors bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rule", "Default", "Level", "Description"})
	for _, r := range rules {
		level := r.Level
		if r.Overridden {
			level += "*"
		}
		switch r.Level {
		case lint.Error.String():
			level = RenderStyle(StyleRed, level, useColors)
		case lint.Warning.String():
			level = RenderStyle(StyleYellow, level, useColors)
		default:
			level = RenderStyle(StyleGray, level, useColors)
		}
		t.AppendRow(table.Row{r.ID, r.Default, level, r.Description})
	}
	t.Render()
}

// WriteRulesJSON writes rules as an indented JSON array.
func WriteRulesJSON(w io.Writer, rules []RuleInfo) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rules)
}
