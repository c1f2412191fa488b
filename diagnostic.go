package csslint

import (
	"strings"

	"github.com/tdewolff/parse/v2"
)

// Position in a text document expressed as zero-based line and character
// offset. Characters are counted in runes.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range in a text document expressed as (zero-based) start and end positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// DiagnosticSeverity indicates the severity of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticSeverityError   DiagnosticSeverity = 1
	DiagnosticSeverityWarning DiagnosticSeverity = 2
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticSeverityError:
		return "error"
	case DiagnosticSeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is one problem found in a document. Code is the rule id for
// lint findings and the parse error id for syntax errors.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Code     string             `json:"code,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// positionAt converts a byte offset into text to a zero-based position.
// Offsets past the end are clamped.
func positionAt(text string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	line, col, _ := parse.Position(strings.NewReader(text), offset)
	return Position{Line: uint32(line - 1), Character: uint32(col - 1)}
}
