package csslint

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/csslint"
)

// Lint expands config.ScanPaths and lints every stylesheet found. Files are
// linted in parallel, each with its own validator; a file that cannot be read
// is recorded in LintResult.Warnings and the run continues.
func Lint(ctx context.Context, config LintConfig) (*LintResult, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	files, stats, err := ExpandFiles(config.ScanPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to expand scan paths: %w", err)
	}
	logger.Debug("discovered files",
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("scanned", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))

	jobs := config.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	perFile := make([][]Issue, len(files))
	readErrs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				readErrs[i] = err
				return nil
			}
			perFile[i] = lintSource(path, string(data), config.Settings, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("lint cancelled: %w", err)
	}

	result := &LintResult{
		IssuesByRule: make(map[string]int),
		FilesScanned: stats.FilesScanned,
		FilesSkipped: stats.FilesSkipped,
	}
	for i, issues := range perFile {
		if readErrs[i] != nil {
			logger.Warn("skipping unreadable file", zap.String("file", files[i]), zap.Error(readErrs[i]))
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", files[i], readErrs[i]))
			continue
		}
		result.Issues = append(result.Issues, issues...)
	}

	sortIssues(result.Issues)
	for _, issue := range result.Issues {
		result.IssuesByRule[issue.Code]++
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		}
	}

	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}

	return result, nil
}

// lintSource validates one stylesheet and converts its diagnostics to issues.
func lintSource(filename, text string, settings *csslint.LanguageSettings, logger *zap.Logger) []Issue {
	lang, _ := LanguageForPath(filename)

	v := csslint.NewValidator(csslint.WithLogger(logger.With(zap.String("file", filename))))
	v.Configure(settings)
	diags := v.DoValidation(csslint.Document{
		URI:        filename,
		LanguageID: lang,
		Text:       text,
	})
	if len(diags) == 0 {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	issues := make([]Issue, 0, len(diags))
	for _, d := range diags {
		issue := Issue{
			FromLinter: LinterName,
			Text:       d.Message,
			Code:       d.Code,
			Severity:   d.Severity.String(),
			Pos: IssuePos{
				Filename: filename,
				Line:     int(d.Range.Start.Line) + 1,
				Column:   int(d.Range.Start.Character) + 1,
			},
		}
		if line := int(d.Range.Start.Line); line < len(lines) {
			issue.SourceLines = []string{lines[line]}
		}
		if d.Range.End.Line > d.Range.Start.Line {
			issue.LineRange = &LineRange{
				From: int(d.Range.Start.Line) + 1,
				To:   int(d.Range.End.Line) + 1,
			}
		}
		issues = append(issues, issue)
	}
	return issues
}

// sortIssues orders issues by file, then line, then column. The sort is
// stable so that issues at the same position keep validator order.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config LintConfig) ([]Issue, int) {
	originalCount := len(issues)

	if config.MaxIssuesPerLinter > 0 && len(issues) > config.MaxIssuesPerLinter {
		issues = issues[:config.MaxIssuesPerLinter]
	}

	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues keeps at most maxSame issues with the same text.
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		count := messageCounts[issue.Text]
		if count < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
