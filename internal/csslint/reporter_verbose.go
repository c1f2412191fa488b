package csslint

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/yacobolo/csslint/internal/lint"
)

// VerboseReporter prints run statistics and the per-rule breakdown
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

func (r *VerboseReporter) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	return t
}

// PrintStatistics outputs run totals
func (r *VerboseReporter) PrintStatistics(result LintResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "CSS Linter Statistics", r.useColors))

	t := r.newTable()
	t.AppendRows([]table.Row{
		{"Files Scanned", result.FilesScanned},
		{"Files Skipped", result.FilesSkipped},
		{"Errors", result.ErrorCount},
		{"Warnings", result.WarningCount},
		{"Truncated", result.TruncatedCount},
	})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

// ruleCount is one row of the per-rule breakdown.
type ruleCount struct {
	ID          string
	Count       int
	Description string
}

// ruleBreakdown returns rule counts ordered by count, then id.
func ruleBreakdown(result LintResult) []ruleCount {
	rows := make([]ruleCount, 0, len(result.IssuesByRule))
	for id, count := range result.IssuesByRule {
		desc := ""
		if rule, ok := lint.Lookup(id); ok {
			desc = rule.Description
		} else {
			desc = "Syntax error"
		}
		rows = append(rows, ruleCount{ID: id, Count: count, Description: desc})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

// PrintRuleBreakdown shows how many issues each rule produced
func (r *VerboseReporter) PrintRuleBreakdown(result LintResult) {
	rows := ruleBreakdown(result)
	if len(rows) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Issues by Rule", r.useColors))

	t := r.newTable()
	t.AppendHeader(table.Row{"Rule", "Count", "Description"})
	for _, row := range rows {
		t.AppendRow(table.Row{row.ID, row.Count, row.Description})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

// PrintWarnings shows files that could not be linted
func (r *VerboseReporter) PrintWarnings(result LintResult) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}
