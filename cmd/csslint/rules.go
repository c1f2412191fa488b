package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/csslint/internal/csslint"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List lint rules and their levels",
	Long: `List every lint rule with its default level and the level it resolves to
under the current configuration. Overridden levels are marked with *.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		rules := csslint.ListRules(buildSettings())

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			return csslint.WriteRulesJSON(cmd.OutOrStdout(), rules)
		}
		csslint.WriteRulesTable(cmd.OutOrStdout(), rules, getBoolWithFallback("color", "color", false))
		return nil
	},
}

func init() {
	rulesCmd.Flags().Bool("json", false, "Print rules as JSON")
}
