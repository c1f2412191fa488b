package csslint

// Issue represents a single linting violation in golangci-lint format
type Issue struct {
	FromLinter  string     `json:"FromLinter"`  // "csslint"
	Text        string     `json:"Text"`        // "Do not use empty rulesets"
	Code        string     `json:"Code"`        // "emptyRules" or "css-rcurlyexpected"
	Severity    string     `json:"Severity"`    // "warning", "error"
	SourceLines []string   `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos   `json:"Pos"`         // File location
	LineRange   *LineRange `json:"LineRange"`   // Set when the issue spans lines
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "web/styles/site.css"
	Line     int    `json:"Line"`     // 35 (1-based)
	Column   int    `json:"Column"`   // 15 (1-based, in characters)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// LinterName is the FromLinter value of every issue.
const LinterName = "csslint"

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)
