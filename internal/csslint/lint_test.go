package csslint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yacobolo/csslint"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestLint(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.css":         ".c { color: #ab; }\n",
		"nested/b.scss": "$x: 1px;\na {\n}\n",
		"notes.txt":     "a { }",
	})

	result, err := Lint(context.Background(), LintConfig{
		ScanPaths: []string{filepath.Join(dir, "**", "*")},
		Logger:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 1, result.FilesSkipped)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 1, result.WarningCount)
	assert.Equal(t, map[string]int{"hexColorLength": 1, "emptyRules": 1}, result.IssuesByRule)
	require.Len(t, result.Issues, 2)

	hex := result.Issues[0]
	assert.Equal(t, filepath.Join(dir, "a.css"), hex.Pos.Filename)
	assert.Equal(t, IssuePos{Filename: hex.Pos.Filename, Line: 1, Column: 13}, hex.Pos)
	assert.Equal(t, "hexColorLength", hex.Code)
	assert.Equal(t, SeverityError, hex.Severity)
	assert.Equal(t, LinterName, hex.FromLinter)
	assert.Equal(t, []string{".c { color: #ab; }"}, hex.SourceLines)
	assert.Nil(t, hex.LineRange)

	empty := result.Issues[1]
	assert.Equal(t, "emptyRules", empty.Code)
	assert.Equal(t, SeverityWarning, empty.Severity)
	assert.Equal(t, 2, empty.Pos.Line)
	assert.Equal(t, 1, empty.Pos.Column)
	assert.Equal(t, []string{"a {"}, empty.SourceLines)

	assert.False(t, result.Failed(false))
	assert.True(t, result.Failed(true))
}

func TestLintSettings(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.css": "a { margin: 0px }\nb { }\n"})

	disabled := false
	tests := []struct {
		name     string
		settings *csslint.LanguageSettings
		codes    []string
	}{
		{"defaults", nil, []string{"emptyRules"}},
		{"overrides", &csslint.LanguageSettings{Lint: map[string]any{"zeroUnits": "error", "emptyRules": "ignore"}}, []string{"zeroUnits"}},
		{"validation disabled", &csslint.LanguageSettings{Validate: &disabled}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Lint(context.Background(), LintConfig{
				ScanPaths: []string{dir},
				Settings:  tt.settings,
			})
			require.NoError(t, err)

			var codes []string
			for _, issue := range result.Issues {
				codes = append(codes, issue.Code)
			}
			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestLintIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		files[name+".css"] = "* { }\n#id { float: left }\n.c { color: #abcd }\n"
	}
	writeFiles(t, dir, files)

	settings := &csslint.LanguageSettings{Lint: map[string]any{
		"universalSelector": "warning",
		"idSelector":        "warning",
		"float":             "warning",
	}}

	serial, err := Lint(context.Background(), LintConfig{ScanPaths: []string{dir}, Settings: settings, Jobs: 1})
	require.NoError(t, err)
	parallel, err := Lint(context.Background(), LintConfig{ScanPaths: []string{dir}, Settings: settings, Jobs: 4})
	require.NoError(t, err)

	assert.Equal(t, serial.Issues, parallel.Issues)
	assert.Len(t, serial.Issues, 6*5)
}

func TestLintCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.css": "a { }"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Lint(ctx, LintConfig{ScanPaths: []string{dir}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLintBadPattern(t *testing.T) {
	_, err := Lint(context.Background(), LintConfig{ScanPaths: []string{"[unclosed"}})
	assert.Error(t, err)
}

func TestLimitIssues(t *testing.T) {
	issues := []Issue{
		{Text: "a"}, {Text: "a"}, {Text: "a"}, {Text: "b"}, {Text: "b"}, {Text: "c"},
	}

	tests := []struct {
		name          string
		config        LintConfig
		wantTexts     []string
		wantTruncated int
	}{
		{"unlimited", LintConfig{}, []string{"a", "a", "a", "b", "b", "c"}, 0},
		{"max per linter", LintConfig{MaxIssuesPerLinter: 4}, []string{"a", "a", "a", "b"}, 2},
		{"max same", LintConfig{MaxSameIssues: 1}, []string{"a", "b", "c"}, 3},
		{"both", LintConfig{MaxIssuesPerLinter: 5, MaxSameIssues: 2}, []string{"a", "a", "b", "b"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]Issue(nil), issues...)
			got, truncated := limitIssues(in, tt.config)
			var texts []string
			for _, issue := range got {
				texts = append(texts, issue.Text)
			}
			assert.Equal(t, tt.wantTexts, texts)
			assert.Equal(t, tt.wantTruncated, truncated)
		})
	}
}

func TestLintSourceCRLF(t *testing.T) {
	issues := lintSource("x.css", "a {\r\n}\r\n", nil, zaptest.NewLogger(t))
	require.Len(t, issues, 1)
	assert.Equal(t, "emptyRules", issues[0].Code)
	assert.Equal(t, []string{"a {"}, issues[0].SourceLines)
	assert.Nil(t, issues[0].LineRange)
}
