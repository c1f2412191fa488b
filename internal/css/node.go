// Package css is the syntax tree consumed by the linter: a closed set of
// node kinds with byte offsets into the source, a depth-first traversal
// primitive, and a tolerant parser for CSS, SCSS and LESS documents.
//
// Trees are immutable once Parse returns and may be read from several
// goroutines at once.
package css

import "strings"

// Kind tags a node with its syntactic role.
type Kind int

// Node kinds.
const (
	KindStylesheet Kind = iota
	KindRuleset
	KindSelector
	KindSimpleSelector
	KindNodelist
	KindDeclarations
	KindDeclaration
	KindProperty
	KindIdentifier
	KindExpression
	KindBinaryExpression
	KindTerm
	KindOperator
	KindNumericValue
	KindHexColorValue
	KindStringLiteral
	KindURILiteral
	KindFunction
	KindPrio
	KindImport
	KindAtKeyword
	KindKeyframe
	KindKeyframeSelector
	KindFontFace
	KindAtRule
	KindVariableDeclaration
	KindVariable
	KindInterpolation
	KindUnknownStatement
)

var kindNames = [...]string{
	KindStylesheet:          "Stylesheet",
	KindRuleset:             "Ruleset",
	KindSelector:            "Selector",
	KindSimpleSelector:      "SimpleSelector",
	KindNodelist:            "Nodelist",
	KindDeclarations:        "Declarations",
	KindDeclaration:         "Declaration",
	KindProperty:            "Property",
	KindIdentifier:          "Identifier",
	KindExpression:          "Expression",
	KindBinaryExpression:    "BinaryExpression",
	KindTerm:                "Term",
	KindOperator:            "Operator",
	KindNumericValue:        "NumericValue",
	KindHexColorValue:       "HexColorValue",
	KindStringLiteral:       "StringLiteral",
	KindURILiteral:          "URILiteral",
	KindFunction:            "Function",
	KindPrio:                "Prio",
	KindImport:              "Import",
	KindAtKeyword:           "AtKeyword",
	KindKeyframe:            "Keyframe",
	KindKeyframeSelector:    "KeyframeSelector",
	KindFontFace:            "FontFace",
	KindAtRule:              "AtRule",
	KindVariableDeclaration: "VariableDeclaration",
	KindVariable:            "Variable",
	KindInterpolation:       "Interpolation",
	KindUnknownStatement:    "UnknownStatement",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Node is implemented only by the node types of this package.
type Node interface {
	Kind() Kind
	Offset() int
	Len() int
	End() int
	Text() string
	Parent() Node
	Children() []Node
	// Matches reports whether the node's source text equals s exactly.
	Matches(s string) bool

	base() *node
}

// Control tells Walk whether to descend into the children of a node.
type Control int

const (
	// Continue descends into the node's children.
	Continue Control = iota
	// SkipSubtree leaves the node's children unvisited.
	SkipSubtree
)

// Walk visits n and its descendants in pre-order.
func Walk(n Node, fn func(Node) Control) {
	if n == nil {
		return
	}
	if fn(n) == SkipSubtree {
		return
	}
	for _, c := range n.base().children {
		Walk(c, fn)
	}
}

type node struct {
	src      *string
	offset   int
	length   int
	parent   Node
	children []Node
}

func (n *node) base() *node      { return n }
func (n *node) Offset() int      { return n.offset }
func (n *node) Len() int         { return n.length }
func (n *node) End() int         { return n.offset + n.length }
func (n *node) Parent() Node     { return n.parent }
func (n *node) Children() []Node { return n.children }

func (n *node) Text() string {
	if n.src == nil {
		return ""
	}
	return (*n.src)[n.offset:n.End()]
}

func (n *node) Matches(s string) bool {
	return n.length == len(s) && n.Text() == s
}

// adopt appends child to parent's children. Callers must not pass a typed
// nil pointer as child.
func adopt(parent, child Node) {
	child.base().parent = parent
	pb := parent.base()
	pb.children = append(pb.children, child)
}

// Stylesheet is the root of a parsed document.
type Stylesheet struct {
	node
	lang   Language
	errors []ParseError
}

// Kind implements Node.
func (*Stylesheet) Kind() Kind { return KindStylesheet }

// Language returns the dialect the document was parsed as.
func (s *Stylesheet) Language() Language { return s.lang }

// Errors returns the syntax errors recorded while parsing, in source order.
func (s *Stylesheet) Errors() []ParseError { return s.errors }

// Ruleset is a selector list followed by a declaration block.
type Ruleset struct {
	node
	selectors    *Nodelist
	declarations *Declarations
}

// Kind implements Node.
func (*Ruleset) Kind() Kind { return KindRuleset }

// Selectors returns the selector list.
func (r *Ruleset) Selectors() *Nodelist { return r.selectors }

// Declarations returns the block, or nil when the opening brace is missing.
func (r *Ruleset) Declarations() *Declarations { return r.declarations }

// Selector is one complex selector of a selector list.
type Selector struct{ node }

// Kind implements Node.
func (*Selector) Kind() Kind { return KindSelector }

// SimpleSelector is a compound selector such as "a.b#c:hover".
type SimpleSelector struct{ node }

// Kind implements Node.
func (*SimpleSelector) Kind() Kind { return KindSimpleSelector }

// Nodelist is an ordered group of nodes: selector lists, function arguments.
type Nodelist struct{ node }

// Kind implements Node.
func (*Nodelist) Kind() Kind { return KindNodelist }

// Declarations is the content of a curly-brace block.
type Declarations struct{ node }

// Kind implements Node.
func (*Declarations) Kind() Kind { return KindDeclarations }

// Declaration is a "property: value [!important]" pair.
type Declaration struct {
	node
	property *Property
	value    *Expression
	prio     *Prio
}

// Kind implements Node.
func (*Declaration) Kind() Kind { return KindDeclaration }

// Property returns the property node.
func (d *Declaration) Property() *Property { return d.property }

// Value returns the value expression, or nil when the value is missing.
func (d *Declaration) Value() *Expression { return d.value }

// Prio returns the !important marker, if any.
func (d *Declaration) Prio() *Prio { return d.prio }

// FullPropertyName returns the property name as written, including any
// IE hack character.
func (d *Declaration) FullPropertyName() string {
	if d.property == nil {
		return ""
	}
	return d.property.Name()
}

// NonPrefixedPropertyName returns the property name without its vendor
// prefix: "-webkit-transition" becomes "transition".
func (d *Declaration) NonPrefixedPropertyName() string {
	return StripVendorPrefix(d.FullPropertyName())
}

// StripVendorPrefix removes a leading "-vendor-" from name. Names without a
// second hyphen are returned unchanged.
func StripVendorPrefix(name string) string {
	if !strings.HasPrefix(name, "-") {
		return name
	}
	idx := strings.IndexByte(name[1:], '-')
	if idx < 0 {
		return name
	}
	return name[idx+2:]
}

// Property is the name part of a declaration.
type Property struct {
	node
	identifier *Identifier
}

// Kind implements Node.
func (*Property) Kind() Kind { return KindProperty }

// Name returns the property text.
func (p *Property) Name() string { return p.Text() }

// Identifier returns the name token without any hack prefix.
func (p *Property) Identifier() *Identifier { return p.identifier }

// Identifier is a name token, possibly built from interpolated pieces.
type Identifier struct {
	node
	interpolated bool
}

// Kind implements Node.
func (*Identifier) Kind() Kind { return KindIdentifier }

// ContainsInterpolation reports whether the name contains #{} or @{}.
func (i *Identifier) ContainsInterpolation() bool { return i.interpolated }

// Expression is a declaration value or a function argument.
type Expression struct{ node }

// Kind implements Node.
func (*Expression) Kind() Kind { return KindExpression }

// BinaryExpression is a term optionally combined with an operator and a
// right-hand term.
type BinaryExpression struct {
	node
	left, operator, right Node
}

// Kind implements Node.
func (*BinaryExpression) Kind() Kind { return KindBinaryExpression }

// Left returns the left operand.
func (b *BinaryExpression) Left() Node { return b.left }

// Operator returns the operator, or nil.
func (b *BinaryExpression) Operator() Node { return b.operator }

// Right returns the right operand, or nil.
func (b *BinaryExpression) Right() Node { return b.right }

// Term wraps a single value.
type Term struct{ node }

// Kind implements Node.
func (*Term) Kind() Kind { return KindTerm }

// Operator is one of / * + - between terms.
type Operator struct{ node }

// Kind implements Node.
func (*Operator) Kind() Kind { return KindOperator }

// NumericValue is a number, percentage or dimension.
type NumericValue struct{ node }

// Kind implements Node.
func (*NumericValue) Kind() Kind { return KindNumericValue }

// Value splits the literal into its number and unit parts. The unit is
// empty for plain numbers.
func (n *NumericValue) Value() (value, unit string) {
	text := n.Text()
	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	for i < len(text) && (isDigit(text[i]) || text[i] == '.') {
		i++
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			i = j
		}
	}
	return text[:i], text[i:]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// HexColorValue is a hash literal in value position.
type HexColorValue struct{ node }

// Kind implements Node.
func (*HexColorValue) Kind() Kind { return KindHexColorValue }

// StringLiteral is a quoted string.
type StringLiteral struct{ node }

// Kind implements Node.
func (*StringLiteral) Kind() Kind { return KindStringLiteral }

// URILiteral is a url(...) token.
type URILiteral struct{ node }

// Kind implements Node.
func (*URILiteral) Kind() Kind { return KindURILiteral }

// Function is a call such as rgb(0, 0, 0).
type Function struct {
	node
	name      string
	arguments *Nodelist
}

// Kind implements Node.
func (*Function) Kind() Kind { return KindFunction }

// Name returns the call name including the opening parenthesis, "rgb(".
func (f *Function) Name() string { return f.name }

// Arguments returns the argument list; each argument is an Expression.
func (f *Function) Arguments() *Nodelist { return f.arguments }

// Prio is the !important marker.
type Prio struct{ node }

// Kind implements Node.
func (*Prio) Kind() Kind { return KindPrio }

// Import is an @import statement.
type Import struct {
	node
	url Node
}

// Kind implements Node.
func (*Import) Kind() Kind { return KindImport }

// URL returns the imported location node, or nil.
func (i *Import) URL() Node { return i.url }

// AtKeyword is the "@name" token that starts an at-rule.
type AtKeyword struct{ node }

// Kind implements Node.
func (*AtKeyword) Kind() Kind { return KindAtKeyword }

// Keyframe is an @keyframes block or one of its vendor variants.
type Keyframe struct {
	node
	keyword      *AtKeyword
	identifier   *Identifier
	declarations *Declarations
}

// Kind implements Node.
func (*Keyframe) Kind() Kind { return KindKeyframe }

// Keyword returns the at-keyword node, e.g. "@-webkit-keyframes".
func (k *Keyframe) Keyword() *AtKeyword { return k.keyword }

// Name returns the animation name, or "" when it is missing.
func (k *Keyframe) Name() string {
	if k.identifier == nil {
		return ""
	}
	return k.identifier.Text()
}

// Declarations returns the block of keyframe selectors, or nil.
func (k *Keyframe) Declarations() *Declarations { return k.declarations }

// KeyframeSelector is a "from", "to" or percentage block inside @keyframes.
type KeyframeSelector struct {
	node
	declarations *Declarations
}

// Kind implements Node.
func (*KeyframeSelector) Kind() Kind { return KindKeyframeSelector }

// Declarations returns the block, or nil.
func (k *KeyframeSelector) Declarations() *Declarations { return k.declarations }

// FontFace is an @font-face block.
type FontFace struct {
	node
	declarations *Declarations
}

// Kind implements Node.
func (*FontFace) Kind() Kind { return KindFontFace }

// Declarations returns the block, or nil when the opening brace is missing.
func (f *FontFace) Declarations() *Declarations { return f.declarations }

// AtRule is any other at-rule: @media, @supports, @page, @charset, SCSS
// control directives, mixins.
type AtRule struct {
	node
	keyword      *AtKeyword
	declarations *Declarations
}

// Kind implements Node.
func (*AtRule) Kind() Kind { return KindAtRule }

// Name returns the lowercased keyword, e.g. "@media".
func (a *AtRule) Name() string {
	if a.keyword == nil {
		return ""
	}
	return strings.ToLower(a.keyword.Text())
}

// Declarations returns the block, or nil for statement at-rules.
func (a *AtRule) Declarations() *Declarations { return a.declarations }

// VariableDeclaration is a SCSS "$name: value" or LESS "@name: value".
type VariableDeclaration struct {
	node
	variable *Variable
	value    *Expression
}

// Kind implements Node.
func (*VariableDeclaration) Kind() Kind { return KindVariableDeclaration }

// Variable returns the variable being declared.
func (v *VariableDeclaration) Variable() *Variable { return v.variable }

// Value returns the assigned expression, or nil.
func (v *VariableDeclaration) Value() *Expression { return v.value }

// Variable is a preprocessor variable reference.
type Variable struct{ node }

// Kind implements Node.
func (*Variable) Kind() Kind { return KindVariable }

// Interpolation is a #{...} or @{...} section.
type Interpolation struct{ node }

// Kind implements Node.
func (*Interpolation) Kind() Kind { return KindInterpolation }

// UnknownStatement is a block item the parser could not classify, such as a
// LESS mixin call.
type UnknownStatement struct{ node }

// Kind implements Node.
func (*UnknownStatement) Kind() Kind { return KindUnknownStatement }
