package csslint

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files dropped by filtering
}

// stylesheetExtensions maps a file extension to the language id it is
// validated as.
var stylesheetExtensions = map[string]string{
	".css":  "css",
	".scss": "scss",
	".less": "less",
}

// LanguageForPath returns the language id for a stylesheet path, or false
// when the file is not a stylesheet.
func LanguageForPath(path string) (string, bool) {
	id, ok := stylesheetExtensions[strings.ToLower(filepath.Ext(path))]
	return id, ok
}

// fileFilter decides which discovered files are linted.
type fileFilter struct {
	gitignore *ignore.GitIgnore
}

// newFileFilter loads .gitignore from the working directory. A missing
// .gitignore disables ignore matching.
func newFileFilter() *fileFilter {
	gi, err := ignore.CompileIgnoreFile(".gitignore")
	if err != nil {
		return &fileFilter{}
	}
	return &fileFilter{gitignore: gi}
}

// skip reports whether path is excluded. Gitignore rules only apply to
// relative paths, since absolute paths (like /tmp/...) live outside the
// project.
func (f *fileFilter) skip(path string) bool {
	if _, ok := LanguageForPath(path); !ok {
		return true
	}
	if f.gitignore != nil && !filepath.IsAbs(path) && f.gitignore.MatchesPath(path) {
		return true
	}
	return false
}

// ExpandFiles expands glob patterns and directories into the sorted list of
// stylesheets to lint. A directory stands for every stylesheet below it.
func ExpandFiles(patterns []string) ([]string, ScanStats, error) {
	filter := newFileFilter()
	seen := make(map[string]bool)
	stats := ScanStats{}
	var files []string

	for _, pattern := range patterns {
		if info, err := os.Stat(pattern); err == nil && info.IsDir() {
			pattern = filepath.Join(pattern, "**", "*.{css,scss,less}")
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if filter.skip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
