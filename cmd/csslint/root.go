package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "csslint",
	Short: "Linter for CSS, SCSS and LESS stylesheets",
	Long: `Lint stylesheets for compatibility, performance and correctness problems.
Rule levels are configured in .csslint.yaml, CSSLINT_* environment variables
or --rule flags.`,
	// Default behavior: lint when no subcommand is given.
	// loadConfig must be called here because PreRunE of lintCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runLint(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".csslint.yaml", "Config file path")
	rootCmd.PersistentFlags().StringToString("rule", nil, "Override a rule level, e.g. --rule zeroUnits=warning")

	addLintFlags(rootCmd)

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// exitError carries a process exit code without printing an error message.
type exitError struct {
	code int
}

func (e exitError) Error() string { return "lint failed" }
