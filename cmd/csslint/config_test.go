package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/csslint/internal/csslint"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

// newFlagCommand returns a throwaway command carrying the same flags as lint,
// parsed from args.
func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", ".csslint.yaml", "")
	cmd.Flags().Bool("color", false, "")
	cmd.Flags().StringToString("rule", nil, "")
	addLintFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".csslint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
verbose: true
validate: false

lint:
  strict: true
  jobs: 3
  paths:
    - "web/**/*.css"
  rules:
    zeroUnits: warning
    emptyRules: ignore
`)
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.False(t, k.Bool("validate"))
	assert.True(t, k.Bool("lint.strict"))
	assert.Equal(t, 3, k.Int("lint.jobs"))
	assert.Equal(t, []string{"web/**/*.css"}, k.Strings("lint.paths"))
	assert.Equal(t, "warning", k.String("lint.rules.zeroUnits"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.csslint.yaml"))

	config := buildLintConfig(nil)
	assert.Equal(t, defaultPaths, config.ScanPaths)
	assert.False(t, config.Strict)
	assert.Equal(t, 0, config.Jobs)
	assert.Equal(t, 0, config.MaxIssuesPerLinter)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.Nil(t, config.Settings.Validate)
	assert.Nil(t, config.Settings.Lint)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
lint:
  strict: false
  rules:
    zeroUnits: warning
`)
	t.Setenv("CSSLINT_LINT_STRICT", "true")
	t.Setenv("CSSLINT_LINT_RULES_FLOAT", "error")
	t.Setenv("CSSLINT_VALIDATE", "false")

	require.NoError(t, loadConfigFromPath(configPath))

	config := buildLintConfig(nil)
	assert.True(t, config.Strict)
	require.NotNil(t, config.Settings.Validate)
	assert.False(t, *config.Settings.Validate)
	assert.Equal(t, map[string]any{"zeroUnits": "warning", "float": "error"}, config.Settings.Lint)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
lint:
  strict: false
  max-same-issues: 4
  print-lines: false
  paths: ["from-file/**/*.css"]
  rules:
    zeroUnits: warning
    float: warning
`)
	cmd := newFlagCommand(t,
		"--config", configPath,
		"--strict",
		"--max-same-issues", "2",
		"--rule", "zeroUnits=error,important=warning",
	)
	require.NoError(t, loadConfig(cmd))

	config := buildLintConfig(nil)
	assert.True(t, config.Strict)
	assert.Equal(t, 2, config.MaxSameIssues)
	assert.False(t, config.PrintIssuedLines, "unset flags must not shadow the file")
	assert.Equal(t, []string{"from-file/**/*.css"}, config.ScanPaths)
	assert.Equal(t, map[string]any{
		"zeroUnits": "error",
		"float":     "warning",
		"important": "warning",
	}, config.Settings.Lint)
}

func TestPathsPrecedence(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, "lint:\n  paths: [\"file/*.css\"]\n")
	cmd := newFlagCommand(t, "--config", configPath, "--paths", "flag/*.css")
	require.NoError(t, loadConfig(cmd))

	assert.Equal(t, []string{"flag/*.css"}, buildLintConfig(nil).ScanPaths)
	assert.Equal(t, []string{"arg.css"}, buildLintConfig([]string{"arg.css"}).ScanPaths)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := rootCmd
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".csslint.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "lint:")
	assert.Contains(t, string(data), "rules:")
	assert.Contains(t, string(data), "hexColorLength: error")

	// The written file must load and reproduce the defaults
	resetKoanf()
	require.NoError(t, loadConfigFromPath(".csslint.yaml"))
	for _, r := range csslint.ListRules(buildSettings()) {
		assert.Equal(t, r.Default, r.Level, r.ID)
	}
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".csslint.yaml", []byte("existing"), 0o644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".csslint.yaml", []byte("existing"), 0o644))

	cmd := rootCmd
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".csslint.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "validate: true")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "csslint dev\n", out.String())
}

func TestRulesCommand(t *testing.T) {
	resetKoanf()
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(".csslint.yaml", []byte("lint:\n  rules:\n    float: error\n"), 0o644))

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"rules", "--json"})
	require.NoError(t, cmd.Execute())

	var rules []csslint.RuleInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &rules))
	require.Len(t, rules, 18)
	for _, r := range rules {
		if r.ID == "float" {
			assert.Equal(t, "error", r.Level)
			assert.True(t, r.Overridden)
		}
	}
}

func TestLintCommandExitCode(t *testing.T) {
	resetKoanf()
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("a.css", []byte(".c { color: #ab; }\n"), 0o644))

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"lint", "--output-format", "json", "a.css"})
	err := cmd.Execute()

	var exit exitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.code)
	assert.Contains(t, out.String(), `"rule": "hexColorLength"`)
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set, should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}
