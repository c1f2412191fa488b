// Package csslint runs the stylesheet linter over files on disk and renders
// the results the way golangci-lint does: one issue per line, optional source
// context, and summary reports.
package csslint

import (
	"go.uber.org/zap"

	"github.com/yacobolo/csslint"
)

// LintConfig holds linting configuration
type LintConfig struct {
	ScanPaths []string // Patterns or directories to scan (e.g., "web/**/*.css")
	Settings  *csslint.LanguageSettings
	Jobs      int // Files linted in parallel (0 = GOMAXPROCS)
	Verbose   bool
	Strict    bool // Exit with code 1 on any issue, not only errors

	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues (default: true)
	PrintLinterName    bool // Show (csslint) suffix (default: true)
	UseColors          bool // Enable color output (default: auto-detect)

	Logger *zap.Logger
}

// LintResult contains the outcome of one lint run
type LintResult struct {
	Issues         []Issue
	IssuesByRule   map[string]int // Counted before truncation
	FilesScanned   int
	FilesSkipped   int // Matched but not a stylesheet, or gitignored
	ErrorCount     int
	WarningCount   int
	TruncatedCount int // Issues removed due to limits

	Warnings []string // Files that could not be read
}

// Failed reports whether the run should exit non-zero.
func (r *LintResult) Failed(strict bool) bool {
	if strict {
		return len(r.Issues) > 0 || r.TruncatedCount > 0
	}
	return r.ErrorCount > 0
}

// OutputFormat represents the linter output format
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics and the per-rule breakdown only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues + statistics + per-rule breakdown
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a Markdown report (shareable reports)
	OutputMarkdown OutputFormat = "markdown"
)
