// Package lint is the rule engine: a single pre-order pass over a parsed
// stylesheet that dispatches on node type, runs the registered checks and
// collects markers stamped with their resolved level.
package lint

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/yacobolo/csslint/internal/css"
	"github.com/yacobolo/csslint/internal/facts"
)

// Marker is one finding attached to a node.
type Marker struct {
	Node    css.Node
	Rule    Rule
	Level   Level
	Message string
}

// Offset returns the byte offset of the marked node.
func (m Marker) Offset() int { return m.Node.Offset() }

// Len returns the byte length of the marked node.
func (m Marker) Len() int { return m.Node.Len() }

// Option configures a Visitor.
type Option func(*Visitor)

// WithPrinter sets the message printer. The default is English.
func WithPrinter(p Printer) Option {
	return func(v *Visitor) { v.printer = p }
}

// WithLogger sets a logger for debug tracing.
func WithLogger(l *zap.Logger) Option {
	return func(v *Visitor) { v.logger = l }
}

// WithFacts replaces the known-property table.
func WithFacts(t *facts.Table) Option {
	return func(v *Visitor) { v.facts = t }
}

// Visitor collects markers for one traversal. It holds per-run state and
// must not be shared between goroutines; create one per document.
type Visitor struct {
	table   SeverityTable
	facts   *facts.Table
	printer Printer
	logger  *zap.Logger
	markers []Marker
}

// NewVisitor returns a visitor that stamps findings with levels from table.
func NewVisitor(table SeverityTable, opts ...Option) *Visitor {
	v := &Visitor{table: table}
	for _, opt := range opts {
		opt(v)
	}
	if v.facts == nil {
		v.facts = facts.Default()
	}
	if v.printer == nil {
		v.printer = NewPrinter(language.English)
	}
	if v.logger == nil {
		v.logger = zap.NewNop()
	}
	return v
}

// Entries lints root and returns its Warning and Error markers in traversal
// order.
func Entries(root css.Node, table SeverityTable, opts ...Option) []Marker {
	v := NewVisitor(table, opts...)
	v.Visit(root)
	return v.Markers(Warning, Error)
}

// Visit walks root and records markers.
func (v *Visitor) Visit(root css.Node) {
	css.Walk(root, v.visitNode)
	v.logger.Debug("lint pass complete", zap.Int("markers", len(v.markers)))
}

// Markers returns the recorded markers whose level is one of levels.
func (v *Visitor) Markers(levels ...Level) []Marker {
	var out []Marker
	for _, m := range v.markers {
		for _, l := range levels {
			if m.Level == l {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

func (v *Visitor) addEntry(node css.Node, rule Rule, message string) {
	if message == "" {
		message = rule.Description
	}
	v.markers = append(v.markers, Marker{
		Node:    node,
		Rule:    rule,
		Level:   v.table.Level(rule.ID),
		Message: message,
	})
}

func (v *Visitor) visitNode(node css.Node) css.Control {
	switch n := node.(type) {
	case *css.Stylesheet:
		return v.visitStylesheet(n)
	case *css.FontFace:
		return v.visitFontFace(n)
	case *css.Ruleset:
		return v.visitRuleset(n)
	case *css.SimpleSelector:
		return v.visitSimpleSelector(n)
	case *css.Function:
		return v.visitFunction(n)
	case *css.NumericValue:
		return v.visitNumericValue(n)
	case *css.Import:
		return v.visitImport(n)
	case *css.Selector, *css.Nodelist, *css.Declarations, *css.Declaration,
		*css.Property, *css.Identifier, *css.Expression, *css.BinaryExpression,
		*css.Term, *css.Operator, *css.HexColorValue, *css.StringLiteral,
		*css.URILiteral, *css.Prio, *css.AtKeyword, *css.Keyframe,
		*css.KeyframeSelector, *css.AtRule, *css.VariableDeclaration,
		*css.Variable, *css.Interpolation, *css.UnknownStatement:
		return v.visitUnknownNode(n)
	}
	return v.visitUnknownNode(node)
}

func (v *Visitor) visitStylesheet(sheet *css.Stylesheet) css.Control {
	keyframes := newNodesByRoot()
	css.Walk(sheet, func(n css.Node) css.Control {
		kf, ok := n.(*css.Keyframe)
		if !ok || kf.Keyword() == nil {
			return css.Continue
		}
		text := kf.Keyword().Text()
		if text == "@keyframes" {
			keyframes.add(kf.Name(), text, nil)
		} else {
			keyframes.add(kf.Name(), text, kf.Keyword())
		}
		return css.Continue
	})

	expected := v.facts.KeyframesVariants()
	keyframes.each(func(_ string, g *group) {
		needsStandard := !g.has("@keyframes")
		if !needsStandard && len(g.names) == 1 {
			return
		}
		missing := v.missingNames(expected, g.names)
		for _, n := range g.nodes {
			if needsStandard {
				v.addEntry(n, IncludeStandardPropertyWhenUsingVendorPrefix, v.printer.Sprintf(msgKeyframesStandardMissing.key()))
			}
			if missing != "" {
				v.addEntry(n, AllVendorPrefixes, v.printer.Sprintf(msgKeyframesVendorMissing.key(), missing))
			}
		}
	})
	return css.Continue
}

func (v *Visitor) visitSimpleSelector(sel *css.SimpleSelector) css.Control {
	text := sel.Text()
	if text == "*" {
		v.addEntry(sel, UniversalSelector, "")
	}
	if strings.HasPrefix(text, "#") {
		v.addEntry(sel, AvoidIDSelector, "")
	}
	return css.Continue
}

func (v *Visitor) visitImport(imp *css.Import) css.Control {
	v.addEntry(imp, ImportStatement, "")
	return css.Continue
}

type element struct {
	name string
	decl *css.Declaration
}

type propertyTable []element

func (t propertyTable) fetch(name string) []element {
	var out []element
	for _, e := range t {
		if strings.ToLower(e.name) == name {
			out = append(out, e)
		}
	}
	return out
}

func (t propertyTable) fetchWithin(s string) []element {
	var out []element
	for _, e := range t {
		if strings.Contains(strings.ToLower(e.name), s) {
			out = append(out, e)
		}
	}
	return out
}

// fetchWithValue returns the declarations of name whose value contains the
// identifier value.
func (t propertyTable) fetchWithValue(name, value string) []element {
	var out []element
	for _, e := range t.fetch(name) {
		if expr := e.decl.Value(); expr != nil && containsIdentifier(expr, value) {
			out = append(out, e)
		}
	}
	return out
}

func containsIdentifier(expr *css.Expression, value string) bool {
	found := false
	css.Walk(expr, func(n css.Node) css.Control {
		if found {
			return css.SkipSubtree
		}
		if id, ok := n.(*css.Identifier); ok && id.Matches(value) {
			found = true
		}
		return css.Continue
	})
	return found
}

// valueIsNone reports whether the declaration has no value or the literal
// value "none".
func valueIsNone(decl *css.Declaration) bool {
	expr := decl.Value()
	return expr == nil || expr.Matches("none")
}

var (
	widthGroup  = []string{"border", "border-left", "border-right", "padding", "padding-left", "padding-right"}
	heightGroup = []string{"border", "border-top", "border-bottom", "padding", "padding-top", "padding-bottom"}
)

func (v *Visitor) visitRuleset(rs *css.Ruleset) css.Control {
	decls := rs.Declarations()
	if decls == nil {
		v.logger.Debug("skipping ruleset without declaration block", zap.Int("offset", rs.Offset()))
		return css.SkipSubtree
	}

	if len(decls.Children()) == 0 {
		v.addEntry(rs.Selectors(), EmptyRuleSet, "")
	}

	var table propertyTable
	for _, child := range decls.Children() {
		if decl, ok := child.(*css.Declaration); ok {
			table = append(table, element{name: decl.FullPropertyName(), decl: decl})
		}
	}

	if len(table.fetchWithin("box-sizing")) == 0 {
		v.checkBoxModel(table, "width", widthGroup)
		v.checkBoxModel(table, "height", heightGroup)
	}

	v.checkDisplay(table)

	css.Walk(rs, func(n css.Node) css.Control {
		if _, ok := n.(*css.Prio); ok {
			v.addEntry(n, AvoidImportant, "")
		}
		return css.Continue
	})

	for _, e := range table.fetch("float") {
		v.addEntry(e.decl, AvoidFloat, "")
	}

	v.checkDuplicates(table)
	v.checkProperties(decls)
	return css.Continue
}

func (v *Visitor) checkBoxModel(table propertyTable, dimension string, members []string) {
	entries := table.fetch(dimension)
	if len(entries) == 0 {
		return
	}
	detected := false
	for _, member := range members {
		for _, e := range table.fetch(member) {
			if valueIsNone(e.decl) {
				continue
			}
			v.addEntry(e.decl, BewareOfBoxModelSize, "")
			detected = true
		}
	}
	if !detected {
		return
	}
	for _, e := range entries {
		v.addEntry(e.decl, BewareOfBoxModelSize, "")
	}
}

func (v *Visitor) checkDisplay(table propertyTable) {
	if len(table.fetchWithValue("display", "inline")) > 0 {
		msg := v.printer.Sprintf(msgIgnoredDisplayInline.key())
		for _, prop := range []string{"width", "height", "margin-top", "margin-bottom", "float"} {
			for _, e := range table.fetch(prop) {
				if prop == "float" && valueIsNone(e.decl) {
					continue
				}
				v.addEntry(e.decl, PropertyIgnoredDueToDisplay, msg)
			}
		}
	}

	if len(table.fetchWithValue("display", "inline-block")) > 0 {
		msg := v.printer.Sprintf(msgIgnoredDisplayInlineBlock.key())
		for _, e := range table.fetch("float") {
			if !valueIsNone(e.decl) {
				v.addEntry(e.decl, PropertyIgnoredDueToDisplay, msg)
			}
		}
	}

	if len(table.fetchWithValue("display", "block")) > 0 {
		msg := v.printer.Sprintf(msgIgnoredDisplayBlock.key())
		for _, e := range table.fetch("vertical-align") {
			v.addEntry(e.decl, PropertyIgnoredDueToDisplay, msg)
		}
	}
}

// checkDuplicates flags a declaration once for every other declaration of
// the same property. Values starting with '-' are exempt on both sides.
func (v *Visitor) checkDuplicates(table propertyTable) {
	for i, e := range table {
		name := strings.ToLower(e.name)
		if name == "background" || !hasPlainValue(e.decl) {
			continue
		}
		for j, other := range table {
			if j == i || strings.ToLower(other.name) != name {
				continue
			}
			if hasPlainValue(other.decl) {
				v.addEntry(e.decl, DuplicateDeclarations, "")
			}
		}
	}
}

func hasPlainValue(decl *css.Declaration) bool {
	expr := decl.Value()
	return expr != nil && !strings.HasPrefix(expr.Text(), "-")
}

func isCSSDeclaration(n css.Node) bool {
	decl, ok := n.(*css.Declaration)
	if !ok || decl.Value() == nil {
		return false
	}
	prop := decl.Property()
	if prop == nil || prop.Identifier() == nil {
		return false
	}
	return !prop.Identifier().ContainsInterpolation()
}

// checkProperties flags unknown, vendor-specific and hacked property names
// and checks vendor-prefix completeness per property.
func (v *Visitor) checkProperties(decls *css.Declarations) {
	bySuffix := newNodesByRoot()
	containsUnknowns := false

	for _, child := range decls.Children() {
		if !isCSSDeclaration(child) {
			containsUnknowns = true
			continue
		}
		decl := child.(*css.Declaration)
		name := decl.FullPropertyName()

		if strings.HasPrefix(name, "-") {
			if strings.HasPrefix(name, "--") {
				continue
			}
			if !v.facts.IsKnownProperty(name) {
				v.addEntry(decl.Property(), UnknownVendorSpecificProperty, "")
			}
			bySuffix.add(decl.NonPrefixedPropertyName(), name, decl.Property())
			continue
		}

		if strings.HasPrefix(name, "*") || strings.HasPrefix(name, "_") {
			v.addEntry(decl.Property(), IEStarHack, "")
			name = name[1:]
		}
		if !v.facts.IsKnownProperty(name) {
			v.addEntry(decl.Property(), UnknownProperty, "")
		}
		bySuffix.add(name, name, nil)
	}

	if containsUnknowns {
		return
	}

	bySuffix.each(func(suffix string, g *group) {
		needsStandard := v.facts.IsKnownProperty(suffix) && !g.has(suffix)
		if !needsStandard && len(g.names) == 1 {
			return
		}
		missing := v.missingNames(v.facts.VendorVariants(suffix), g.names)
		for _, n := range g.nodes {
			if needsStandard {
				v.addEntry(n, IncludeStandardPropertyWhenUsingVendorPrefix, v.printer.Sprintf(msgPropertyStandardMissing.key(), suffix))
			}
			if missing != "" {
				v.addEntry(n, AllVendorPrefixes, v.printer.Sprintf(msgPropertyVendorMissing.key(), missing))
			}
		}
	})
}

// missingNames renders the expected names absent from actual as a quoted,
// comma-separated list, or "" when nothing is missing.
func (v *Visitor) missingNames(expected, actual []string) string {
	remaining := make([]string, len(expected))
	copy(remaining, expected)
	for _, name := range actual {
		for i, e := range remaining {
			if e == name {
				remaining[i] = ""
				break
			}
		}
	}

	result := ""
	for _, name := range remaining {
		if name == "" {
			continue
		}
		if result == "" {
			result = v.printer.Sprintf(msgNameSingle.key(), name)
		} else {
			result = v.printer.Sprintf(msgNameConcatenated.key(), result, name)
		}
	}
	return result
}

func (v *Visitor) visitNumericValue(num *css.NumericValue) css.Control {
	value, unit := num.Value()
	if unit == "" || !v.facts.IsLengthUnit(unit) {
		return css.Continue
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && f == 0 {
		v.addEntry(num, ZeroWithUnit, "")
	}
	return css.Continue
}

func (v *Visitor) visitFontFace(ff *css.FontFace) css.Control {
	decls := ff.Declarations()
	if decls == nil {
		return css.SkipSubtree
	}

	definesSrc, definesFontFamily, containsUnknowns := false, false, false
	for _, child := range decls.Children() {
		if !isCSSDeclaration(child) {
			containsUnknowns = true
			continue
		}
		switch strings.ToLower(child.(*css.Declaration).Property().Name()) {
		case "src":
			definesSrc = true
		case "font-family":
			definesFontFamily = true
		}
	}

	if !containsUnknowns && (!definesSrc || !definesFontFamily) {
		v.addEntry(ff, RequiredPropertiesForFontFace, "")
	}
	return css.Continue
}

func (v *Visitor) visitFunction(fn *css.Function) css.Control {
	expected := -1
	switch strings.ToLower(fn.Name()) {
	case "rgb(", "hsl(":
		expected = 3
	case "rgba(", "hsla(":
		expected = 4
	}
	if expected < 0 || fn.Arguments() == nil {
		return css.Continue
	}

	actual := 0
	css.Walk(fn.Arguments(), func(n css.Node) css.Control {
		if _, ok := n.(*css.BinaryExpression); ok {
			actual++
			return css.SkipSubtree
		}
		return css.Continue
	})
	if actual != expected {
		v.addEntry(fn, ArgsInColorFunction, "")
	}
	return css.Continue
}

func (v *Visitor) visitUnknownNode(n css.Node) css.Control {
	if hex, ok := n.(*css.HexColorValue); ok {
		if l := len(hex.Text()); l != 4 && l != 7 {
			v.addEntry(hex, HexColorLength, "")
		}
	}
	return css.Continue
}
