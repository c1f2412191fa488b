package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const configFileName = ".csslint.yaml"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .csslint.yaml config file",
	Long:  `Create a .csslint.yaml configuration file in the current directory with every rule at its default level.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(configFileName); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
		}

		if err := os.WriteFile(configFileName, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
		return nil
	},
}

const defaultConfig = `# csslint configuration
# Docs: https://github.com/yacobolo/csslint

verbose: false
validate: true

lint:
  paths:
    - "**/*.css"
    - "**/*.scss"
    - "**/*.less"
  strict: false
  output-format: issues    # issues | summary | full | json | markdown
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
  jobs: 0                  # 0 = number of CPUs

  # Rule levels: ignore | warning | error
  rules:
    compatibleVendorPrefixes: ignore
    vendorPrefix: warning
    duplicateProperties: ignore
    emptyRules: warning
    importStatement: ignore
    boxModel: ignore
    universalSelector: ignore
    zeroUnits: ignore
    fontFaceProperties: warning
    hexColorLength: error
    argumentsInColorFunction: error
    unknownProperties: warning
    ieHack: ignore
    unknownVendorSpecificProperties: ignore
    propertyIgnoredDueToDisplay: warning
    important: ignore
    float: ignore
    idSelector: ignore
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
