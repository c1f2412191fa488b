package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/csslint/internal/csslint"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-lint stylesheets whenever they change",
	Long:  `Lint once, then lint again after every change to a watched stylesheet. Stop with Ctrl-C.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, args)
	},
}

func init() {
	addLintFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", csslint.DefaultDebounce, "Delay between the last change and the re-lint")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	lintConfig := buildLintConfig(args)
	lintConfig.Logger = logger
	debounce, _ := cmd.Flags().GetDuration("debounce")

	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := csslint.DetermineOutputFormat(outputFormat, false)
	w := cmd.OutOrStdout()

	return csslint.Watch(cmd.Context(), lintConfig, debounce, func(result *csslint.LintResult, err error) {
		if err != nil {
			logger.Error("lint run failed", zap.Error(err))
			return
		}
		printWatchHeader(w, time.Now())
		if err := csslint.WriteOutput(w, result, format, lintConfig); err != nil {
			logger.Error("writing output", zap.Error(err))
		}
	})
}

func printWatchHeader(w io.Writer, at time.Time) {
	fmt.Fprintf(w, "\n── %s ──\n", at.Format("15:04:05"))
}
