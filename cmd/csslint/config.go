package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/yacobolo/csslint"
	"github.com/yacobolo/csslint/internal/csslint"
)

var k = koanf.New(".")

// defaultPaths are linted when neither flags, arguments nor config name any.
var defaultPaths = []string{"**/*.css", "**/*.scss", "**/*.less"}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".csslint.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed || f.Name == "rule" {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	// --rule id=level entries override rule levels from file and env
	if f := flags.Lookup("rule"); f != nil && f.Changed {
		rules, err := flags.GetStringToString("rule")
		if err != nil {
			return fmt.Errorf("parsing --rule: %w", err)
		}
		for id, level := range rules {
			if err := k.Set("lint.rules."+id, level); err != nil {
				return fmt.Errorf("setting rule %s: %w", id, err)
			}
		}
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSLINT_* prefix)
	if err := k.Load(env.Provider("CSSLINT_", ".", func(s string) string {
		// CSSLINT_LINT_STRICT -> lint.strict
		// CSSLINT_LINT_RULES_ZEROUNITS -> lint.rules.zerounits
		// CSSLINT_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSLINT_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildSettings collects the validate switch and rule levels from koanf state.
func buildSettings() *api.LanguageSettings {
	settings := &api.LanguageSettings{}
	if k.Exists("validate") {
		validate := k.Bool("validate")
		settings.Validate = &validate
	}
	if rules := k.StringMap("lint.rules"); len(rules) > 0 {
		settings.Lint = make(map[string]any, len(rules))
		for id, level := range rules {
			settings.Lint[id] = level
		}
	}
	return settings
}

// buildLintConfig constructs the LintConfig from koanf state. Positional
// arguments take precedence over configured paths.
func buildLintConfig(args []string) csslint.LintConfig {
	var scanPaths []string
	switch {
	case len(args) > 0:
		scanPaths = args
	case len(k.Strings("paths")) > 0:
		scanPaths = k.Strings("paths")
	case len(k.Strings("lint.paths")) > 0:
		scanPaths = k.Strings("lint.paths")
	default:
		scanPaths = defaultPaths
	}

	return csslint.LintConfig{
		ScanPaths:          scanPaths,
		Settings:           buildSettings(),
		Jobs:               getIntWithFallback("jobs", "lint.jobs", 0),
		Verbose:            getBoolWithFallback("verbose", "verbose", false),
		Strict:             getBoolWithFallback("strict", "lint.strict", false),
		MaxIssuesPerLinter: getIntWithFallback("max-issues-per-linter", "lint.max-issues-per-linter", 0),
		MaxSameIssues:      getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		PrintIssuedLines:   getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:    getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:          getBoolWithFallback("color", "color", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
