package csslint

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// markdownIssueLimit caps the per-severity issue tables.
const markdownIssueLimit = 50

// WriteMarkdown writes the lint result as a Markdown report
func WriteMarkdown(w io.Writer, result *LintResult) error {
	var b strings.Builder

	b.WriteString("# CSS Linter Report\n\n")
	fmt.Fprintf(&b, "**Status:** %s\n\n", markdownStatus(result))

	b.WriteString("## Executive Summary\n\n")
	summary := table.NewWriter()
	summary.AppendHeader(table.Row{"Metric", "Value"})
	summary.AppendRows([]table.Row{
		{"**Total Issues**", fmt.Sprintf("%d (%s, %s)", len(result.Issues),
			pluralizeCount(result.ErrorCount, "error", "errors"),
			pluralizeCount(result.WarningCount, "warning", "warnings"))},
		{"**Files Scanned**", result.FilesScanned},
		{"**Files Skipped**", result.FilesSkipped},
	})
	if result.TruncatedCount > 0 {
		summary.AppendRow(table.Row{"**Truncated**", result.TruncatedCount})
	}
	b.WriteString(summary.RenderMarkdown())
	b.WriteString("\n\n")

	if rows := ruleBreakdown(*result); len(rows) > 0 {
		b.WriteString("## Issues by Rule\n\n")
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Rule", "Count", "Description"})
		for _, row := range rows {
			t.AppendRow(table.Row{"`" + row.ID + "`", row.Count, row.Description})
		}
		b.WriteString(t.RenderMarkdown())
		b.WriteString("\n\n")
	}

	writeMarkdownIssues(&b, "## ❌ Errors", result.Issues, SeverityError)
	writeMarkdownIssues(&b, "## ⚠️ Warnings", result.Issues, SeverityWarning)

	if len(result.Warnings) > 0 {
		b.WriteString("## Unreadable Files\n\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n*Generated by csslint*\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdownIssues(b *strings.Builder, heading string, issues []Issue, severity string) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Location", "Rule", "Message"})
	count := 0
	for _, issue := range issues {
		if issue.Severity != severity {
			continue
		}
		count++
		if count > markdownIssueLimit {
			continue
		}
		location := fmt.Sprintf("%s:%d:%d", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
		t.AppendRow(table.Row{"`" + location + "`", "`" + issue.Code + "`", issue.Text})
	}
	if count == 0 {
		return
	}

	b.WriteString(heading + "\n\n")
	b.WriteString(t.RenderMarkdown())
	b.WriteString("\n\n")
	if count > markdownIssueLimit {
		fmt.Fprintf(b, "*... and %d more*\n\n", count-markdownIssueLimit)
	}
}

// markdownStatus summarizes the run as a status badge.
func markdownStatus(result *LintResult) string {
	switch {
	case result.ErrorCount > 0:
		return "🔴 Needs Attention"
	case result.WarningCount > 0:
		return "🟡 Warnings Only"
	default:
		return "🟢 Clean"
	}
}
