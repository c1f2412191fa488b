package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/csslint/internal/csslint"
	"github.com/yacobolo/csslint/internal/logging"
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint stylesheets",
	Long: `Lint CSS, SCSS and LESS files matching the given glob patterns or directories.
Errors fail the run; with --strict any issue does.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLint(cmd, args...)
	},
}

func init() {
	addLintFlags(lintCmd)
}

// addLintFlags registers the lint flags on cmd. The root command carries them
// too so that a bare `csslint --strict` works.
func addLintFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("paths", defaultPaths, "File patterns or directories to lint")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.Bool("validate", true, "Enable validation (false reports nothing)")
	f.String("output-format", "", "Output format: issues|summary|full|json|markdown")
	f.Int("max-issues-per-linter", 0, "Max issues to show (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (csslint) suffix on issues")
	f.Int("jobs", 0, "Files linted in parallel (0=number of CPUs)")
}

// newLogger builds the CLI logger from the verbose setting.
func newLogger() (*zap.Logger, error) {
	return logging.New(getBoolWithFallback("verbose", "verbose", false))
}

// runLint is shared between `csslint` and `csslint lint`.
func runLint(cmd *cobra.Command, args ...string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	lintConfig := buildLintConfig(args)
	lintConfig.Logger = logger

	lintResult, err := csslint.Lint(cmd.Context(), lintConfig)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := csslint.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		if err := csslint.WriteOutput(cmd.OutOrStdout(), lintResult, format, lintConfig); err != nil {
			return err
		}
	}

	// Default "Soft Gate": only errors fail the build; strict fails on any issue
	if lintResult.Failed(lintConfig.Strict) {
		return exitError{code: 1}
	}
	return nil
}
