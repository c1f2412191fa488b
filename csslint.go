// Package csslint validates CSS, SCSS and LESS documents and reports
// problems as protocol-shaped diagnostics.
//
// A Validator parses a document, lints the tree and merges syntax errors with
// lint findings:
//
//	v := csslint.NewValidator()
//	v.Configure(&csslint.LanguageSettings{
//		Lint: map[string]any{"zeroUnits": "warning"},
//	})
//	diags := v.DoValidation(csslint.Document{
//		URI:        "file:///styles/site.css",
//		LanguageID: "css",
//		Text:       ".btn { margin: 0px; }",
//	})
//
// Findings configured as "ignore" are never returned.
//
// # CLI Tool
//
// csslint also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/csslint/cmd/csslint@latest
package csslint

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/yacobolo/csslint/internal/css"
	"github.com/yacobolo/csslint/internal/lint"
)

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// WithMessages renders lint messages for tag from cat. Start from
// NewCatalog and add translations keyed by message id; messages without a
// translation for tag fall back to English.
func WithMessages(tag language.Tag, cat catalog.Catalog) Option {
	return func(v *Validator) {
		v.printer = message.NewPrinter(tag, message.Catalog(cat))
	}
}

// NewCatalog returns a message catalog holding the English lint messages.
// Message ids include "property.standard.missing",
// "property.vendorspecific.missing", "keyframes.standardrule.missing" and
// "keyframes.vendorspecific.missing".
func NewCatalog() (*catalog.Builder, error) {
	return lint.NewCatalog()
}

// Validator turns documents into diagnostics. Configure and DoValidation must
// not be called concurrently on the same Validator; separate Validators are
// independent.
type Validator struct {
	enabled bool
	table   lint.SeverityTable
	printer lint.Printer
	logger  *zap.Logger
}

// NewValidator returns a validator with validation enabled and every rule at
// its default level.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = zap.NewNop()
	}
	if v.printer == nil {
		v.printer = lint.NewPrinter(language.English)
	}
	v.Configure(nil)
	return v
}

// Configure applies settings. Nil settings restore the defaults.
func (v *Validator) Configure(settings *LanguageSettings) {
	v.enabled = settings == nil || settings.Validate == nil || *settings.Validate
	var raw map[string]any
	if settings != nil {
		raw = settings.Lint
	}
	v.table = lint.Resolve(lint.Sanitize(raw))
}

// Enabled reports whether validation is on.
func (v *Validator) Enabled() bool { return v.enabled }

// DoValidation parses and lints doc. Syntax errors come first, followed by
// lint findings in traversal order. The result is empty, never nil, when
// validation is disabled or the document is clean.
func (v *Validator) DoValidation(doc Document) []Diagnostic {
	diagnostics := []Diagnostic{}
	if !v.enabled {
		return diagnostics
	}

	lang, err := css.ParseLanguage(doc.LanguageID)
	if err != nil {
		v.logger.Debug("unsupported language id, validating as css",
			zap.String("uri", doc.URI), zap.String("languageId", doc.LanguageID))
		lang = css.CSS
	}
	source := doc.LanguageID
	if source == "" {
		source = lang.String()
	}

	sheet := css.Parse(doc.Text, lang)
	for _, e := range sheet.Errors() {
		diagnostics = append(diagnostics, Diagnostic{
			Range:    v.rangeOf(doc.Text, e.Offset, e.Length),
			Severity: DiagnosticSeverityError,
			Code:     string(e.ID),
			Source:   source,
			Message:  e.Message,
		})
	}

	markers := lint.Entries(sheet, v.table,
		lint.WithPrinter(v.printer), lint.WithLogger(v.logger))
	for _, m := range markers {
		if m.Level == lint.Ignore {
			continue
		}
		severity := DiagnosticSeverityError
		if m.Level == lint.Warning {
			severity = DiagnosticSeverityWarning
		}
		diagnostics = append(diagnostics, Diagnostic{
			Range:    v.rangeOf(doc.Text, m.Offset(), m.Len()),
			Severity: severity,
			Code:     m.Rule.ID,
			Source:   source,
			Message:  m.Message,
		})
	}

	v.logger.Debug("validated document",
		zap.String("uri", doc.URI),
		zap.Int("syntaxErrors", len(sheet.Errors())),
		zap.Int("diagnostics", len(diagnostics)))
	return diagnostics
}

func (v *Validator) rangeOf(text string, offset, length int) Range {
	return Range{
		Start: positionAt(text, offset),
		End:   positionAt(text, offset+length),
	}
}
