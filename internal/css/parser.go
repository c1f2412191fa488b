package css

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	csslex "github.com/tdewolff/parse/v2/css"
)

type token struct {
	tt     csslex.TokenType
	text   string
	offset int
	// space is set when whitespace or a comment precedes the token.
	space bool
}

func (t token) is(tt csslex.TokenType) bool { return t.tt == tt }

func (t token) isDelim(c string) bool { return t.tt == csslex.DelimToken && t.text == c }

// tokenize lexes the whole document up front so the parser can backtrack.
// Whitespace and comments are folded into the space flag of the next token.
func tokenize(src string, lang Language) []token {
	input := src
	if lang != CSS {
		input = blankLineComments(src)
	}

	l := csslex.NewLexer(parse.NewInputString(input))
	var toks []token
	offset := 0
	space := false
	for {
		tt, data := l.Next()
		if tt == csslex.ErrorToken || len(data) == 0 {
			break
		}
		switch tt {
		case csslex.WhitespaceToken, csslex.CommentToken:
			space = true
		default:
			toks = append(toks, token{
				tt:     tt,
				text:   src[offset : offset+len(data)],
				offset: offset,
				space:  space,
			})
			space = false
		}
		offset += len(data)
	}
	return toks
}

// blankLineComments replaces "//" line comments with spaces, keeping every
// byte offset intact. Strings, block comments and url() are left alone.
func blankLineComments(src string) string {
	b := []byte(src)
	var quote byte
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote || c == '\n' {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(b) && b[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return string(b)
			}
			i += end + 3
		case (c == 'u' || c == 'U') && len(src)-i >= 4 && strings.EqualFold(src[i:i+4], "url("):
			end := strings.IndexByte(src[i:], ')')
			if end < 0 {
				return string(b)
			}
			i += end
		case c == '/' && i+1 < len(b) && b[i+1] == '/':
			for i < len(b) && b[i] != '\n' {
				b[i] = ' '
				i++
			}
		}
	}
	return string(b)
}

type parser struct {
	src    *string
	lang   Language
	toks   []token
	pos    int
	errors []ParseError
}

type checkpoint struct{ pos, errs int }

// Parse builds the syntax tree of src. It never fails: syntax errors are
// recorded on the returned stylesheet and parsing resumes at the next
// statement or declaration.
func Parse(src string, lang Language) *Stylesheet {
	p := &parser{src: &src, lang: lang, toks: tokenize(src, lang)}
	return p.parseStylesheet()
}

func (p *parser) peekAt(n int) token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return token{tt: csslex.ErrorToken, offset: len(*p.src)}
}

func (p *parser) peek() token { return p.peekAt(0) }

func (p *parser) atEOF() bool { return p.pos >= len(p.toks) }

func (p *parser) next() token {
	t := p.peek()
	if !p.atEOF() {
		p.pos++
	}
	return t
}

func (p *parser) peekType(tt csslex.TokenType) bool { return p.peek().is(tt) }

func (p *parser) accept(tt csslex.TokenType) bool {
	if p.peekType(tt) {
		p.next()
		return true
	}
	return false
}

// adjacent reports whether the n-th token ahead directly follows its
// predecessor.
func (p *parser) adjacent(n int) bool {
	t := p.peekAt(n)
	return !t.space && !t.is(csslex.ErrorToken)
}

func (p *parser) atStatementEnd() bool {
	return p.atEOF() || p.peekType(csslex.SemicolonToken) || p.peekType(csslex.RightBraceToken)
}

func (p *parser) save() checkpoint { return checkpoint{pos: p.pos, errs: len(p.errors)} }

func (p *parser) restore(c checkpoint) {
	p.pos = c.pos
	p.errors = p.errors[:c.errs]
}

func (p *parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	t := p.toks[p.pos-1]
	return t.offset + len(t.text)
}

func (p *parser) begin(n Node) {
	b := n.base()
	b.src = p.src
	b.offset = p.peek().offset
}

func (p *parser) finish(n Node) {
	b := n.base()
	end := p.prevEnd()
	if end < b.offset {
		end = b.offset
	}
	b.length = end - b.offset
}

// leaf consumes one token as node n.
func (p *parser) leaf(n Node) Node {
	p.begin(n)
	p.next()
	p.finish(n)
	return n
}

func (p *parser) error(id ErrorID) {
	t := p.peek()
	p.errors = append(p.errors, ParseError{
		ID:      id,
		Message: id.Message(),
		Offset:  t.offset,
		Length:  len(t.text),
	})
}

// skipBalanced consumes an opening bracket or function token through its
// matching closer. It reports whether the closer was found.
func (p *parser) skipBalanced() bool {
	depth := 0
	for !p.atEOF() {
		switch p.next().tt {
		case csslex.LeftParenthesisToken, csslex.LeftBracketToken, csslex.LeftBraceToken, csslex.FunctionToken:
			depth++
		case csslex.RightParenthesisToken, csslex.RightBracketToken, csslex.RightBraceToken:
			depth--
			if depth <= 0 {
				return true
			}
		}
	}
	return false
}

// skipItem consumes tokens up to the ';' or '}' that ends the current block
// item, or through the end of a nested block. Neither terminator is
// consumed. It reports whether anything was consumed.
func (p *parser) skipItem() bool {
	depth := 0
	moved := false
	for !p.atEOF() {
		t := p.peek()
		if depth == 0 && (t.is(csslex.SemicolonToken) || t.is(csslex.RightBraceToken)) {
			break
		}
		p.next()
		moved = true
		if t.is(csslex.LeftBraceToken) {
			depth++
		} else if t.is(csslex.RightBraceToken) {
			depth--
			if depth == 0 {
				break
			}
		}
	}
	return moved
}

// skipStatement is skipItem for top-level statements, where the trailing
// ';' or a stray '}' is consumed as well.
func (p *parser) skipStatement() {
	if p.skipItem() {
		p.accept(csslex.SemicolonToken)
		return
	}
	p.next()
}

// skipPrelude consumes an at-rule prelude up to its block or terminator.
func (p *parser) skipPrelude() {
	depth := 0
	for !p.atEOF() {
		t := p.peek()
		switch t.tt {
		case csslex.LeftBraceToken, csslex.SemicolonToken, csslex.RightBraceToken:
			if depth == 0 {
				return
			}
		case csslex.LeftParenthesisToken, csslex.LeftBracketToken, csslex.FunctionToken:
			depth++
		case csslex.RightParenthesisToken, csslex.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}
		p.next()
	}
}

func needsSemicolon(n Node) bool {
	switch n := n.(type) {
	case *Declaration, *VariableDeclaration, *Import:
		return true
	case *AtRule:
		return n.declarations == nil
	}
	return false
}

func (p *parser) parseStylesheet() *Stylesheet {
	sheet := &Stylesheet{lang: p.lang}
	sheet.src = p.src
	for !p.atEOF() {
		if p.accept(csslex.CDOToken) || p.accept(csslex.CDCToken) || p.accept(csslex.SemicolonToken) {
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			p.error(ErrRuleOrSelectorExpected)
			p.skipStatement()
			continue
		}
		adopt(sheet, stmt)
		if needsSemicolon(stmt) && !p.atEOF() && !p.peekType(csslex.SemicolonToken) {
			p.error(ErrSemiColonExpected)
			p.skipStatement()
		}
	}
	sheet.length = len(*p.src)
	sheet.errors = p.errors
	return sheet
}

func (p *parser) parseStatement() Node {
	if p.peekType(csslex.AtKeywordToken) {
		return p.parseAtRule()
	}
	if p.peekScssVariable() {
		if n := p.parseVariableDeclaration(); n != nil {
			return n
		}
	}
	if p.lang == CSS {
		return p.parseRuleset(false)
	}
	if n := p.parseRuleset(true); n != nil {
		return n
	}
	cp := p.save()
	if n := p.parseUnknownStatement(); n != nil && p.peekType(csslex.SemicolonToken) {
		return n
	}
	p.restore(cp)
	return p.parseRuleset(false)
}

// parseBlock parses a curly-brace block whose items are produced by item.
// The current token must be '{'.
func (p *parser) parseBlock(item func() Node, onFail ErrorID) *Declarations {
	decls := &Declarations{}
	p.begin(decls)
	p.next()
	for {
		if p.accept(csslex.SemicolonToken) {
			continue
		}
		if p.atEOF() || p.peekType(csslex.RightBraceToken) {
			break
		}
		n := item()
		if n == nil {
			p.error(onFail)
			p.skipItem()
			continue
		}
		adopt(decls, n)
		if needsSemicolon(n) && !p.atStatementEnd() {
			p.error(ErrSemiColonExpected)
			p.skipItem()
		}
	}
	if !p.accept(csslex.RightBraceToken) {
		p.error(ErrRightCurlyExpected)
	}
	p.finish(decls)
	return decls
}

// parseDeclarationItem parses one item of a ruleset body.
func (p *parser) parseDeclarationItem() Node {
	if p.peekType(csslex.AtKeywordToken) {
		return p.parseAtRule()
	}
	if p.lang != CSS {
		return p.parseNestedItem()
	}
	return p.parseDeclaration(false)
}

// parseRuleItem parses one item of a conditional group rule such as @media.
func (p *parser) parseRuleItem() Node {
	if p.peekType(csslex.AtKeywordToken) {
		return p.parseAtRule()
	}
	if p.lang != CSS {
		return p.parseNestedItem()
	}
	return p.parseRuleset(false)
}

// parseNestedItem parses a block item that may be a declaration, a nested
// ruleset or anything a preprocessor allows.
func (p *parser) parseNestedItem() Node {
	if p.peekType(csslex.AtKeywordToken) {
		return p.parseAtRule()
	}
	if p.peekScssVariable() {
		if n := p.parseVariableDeclaration(); n != nil {
			return n
		}
	}
	if n := p.parseDeclaration(true); n != nil {
		return n
	}
	if n := p.parseRuleset(true); n != nil {
		return n
	}
	return p.parseUnknownStatement()
}

func (p *parser) parseUnknownStatement() Node {
	st := &UnknownStatement{}
	p.begin(st)
	if !p.skipItem() {
		return nil
	}
	p.finish(st)
	return st
}

func (p *parser) parseRuleset(strict bool) Node {
	cp := p.save()
	rs := &Ruleset{}
	p.begin(rs)
	sels := p.parseSelectorList()
	if sels == nil {
		p.restore(cp)
		return nil
	}
	rs.selectors = sels
	adopt(rs, sels)
	if !p.peekType(csslex.LeftBraceToken) {
		if strict {
			p.restore(cp)
			return nil
		}
		p.error(ErrLeftCurlyExpected)
		p.skipItem()
		p.finish(rs)
		return rs
	}
	rs.declarations = p.parseBlock(p.parseDeclarationItem, ErrIdentifierExpected)
	adopt(rs, rs.declarations)
	p.finish(rs)
	return rs
}

func (p *parser) parseSelectorList() *Nodelist {
	list := &Nodelist{}
	p.begin(list)
	sel := p.parseSelector()
	if sel == nil {
		return nil
	}
	adopt(list, sel)
	for p.accept(csslex.CommaToken) {
		sel := p.parseSelector()
		if sel == nil {
			p.error(ErrSelectorExpected)
			break
		}
		adopt(list, sel)
	}
	p.finish(list)
	return list
}

func (p *parser) peekCombinator() bool {
	t := p.peek()
	return t.isDelim(">") || t.isDelim("+") || t.isDelim("~")
}

func (p *parser) parseSelector() Node {
	cp := p.save()
	sel := &Selector{}
	p.begin(sel)
	n := 0
	for {
		if p.peekCombinator() {
			p.next()
			continue
		}
		ss := p.parseSimpleSelector()
		if ss == nil {
			break
		}
		adopt(sel, ss)
		n++
	}
	if n == 0 {
		p.restore(cp)
		return nil
	}
	p.finish(sel)
	return sel
}

func (p *parser) parseSimpleSelector() Node {
	ss := &SimpleSelector{}
	p.begin(ss)
	n := 0
	for {
		if n > 0 && p.peek().space {
			break
		}
		if !p.parseSelectorPart(ss) {
			break
		}
		n++
	}
	if n == 0 {
		return nil
	}
	p.finish(ss)
	return ss
}

// parseSelectorPart consumes one component of a compound selector.
func (p *parser) parseSelectorPart(ss *SimpleSelector) bool {
	t := p.peek()
	switch t.tt {
	case csslex.IdentToken, csslex.HashToken:
		p.next()
		return true
	case csslex.LeftBracketToken:
		if !p.skipBalanced() {
			p.error(ErrSelectorExpected)
		}
		return true
	case csslex.ColonToken:
		n := 1
		if p.peekAt(1).is(csslex.ColonToken) && p.adjacent(1) {
			n = 2
		}
		name := p.peekAt(n)
		if !p.adjacent(n) {
			return false
		}
		switch name.tt {
		case csslex.IdentToken:
			p.pos += n + 1
			return true
		case csslex.FunctionToken:
			p.pos += n
			p.skipBalanced()
			return true
		}
		return false
	case csslex.DelimToken:
		switch t.text {
		case "*", "&", "|":
			p.next()
			return true
		case ".", "%":
			name := p.peekAt(1)
			if !p.adjacent(1) {
				return false
			}
			switch {
			case name.is(csslex.IdentToken):
				p.pos += 2
				return true
			case name.is(csslex.FunctionToken):
				p.next()
				p.skipBalanced()
				return true
			}
			if p.lang != CSS && (name.isDelim("#") || name.isDelim("@")) && p.peekAt(2).is(csslex.LeftBraceToken) && p.adjacent(2) {
				p.next()
				adopt(ss, p.parseInterpolation())
				return true
			}
			return false
		}
		if p.peekInterpolation() {
			adopt(ss, p.parseInterpolation())
			return true
		}
	}
	return false
}

func (p *parser) peekInterpolation() bool {
	if p.lang == CSS {
		return false
	}
	t := p.peek()
	return (t.isDelim("#") || t.isDelim("@")) && p.peekAt(1).is(csslex.LeftBraceToken) && p.adjacent(1)
}

func (p *parser) parseInterpolation() *Interpolation {
	in := &Interpolation{}
	p.begin(in)
	p.next()
	if !p.skipBalanced() {
		p.error(ErrRightCurlyExpected)
	}
	p.finish(in)
	return in
}

func (p *parser) peekScssVariable() bool {
	return p.lang == SCSS && p.peek().isDelim("$") && p.peekAt(1).is(csslex.IdentToken) && p.adjacent(1)
}

func (p *parser) parseVariable() *Variable {
	v := &Variable{}
	p.begin(v)
	switch {
	case p.peek().isDelim("$") && p.peekAt(1).is(csslex.IdentToken) && p.adjacent(1):
		p.pos += 2
	case p.lang == LESS && p.peekType(csslex.AtKeywordToken):
		p.next()
	default:
		return nil
	}
	p.finish(v)
	return v
}

func (p *parser) parseVariableDeclaration() Node {
	cp := p.save()
	decl := &VariableDeclaration{}
	p.begin(decl)
	v := p.parseVariable()
	if v == nil || !p.accept(csslex.ColonToken) {
		p.restore(cp)
		return nil
	}
	decl.variable = v
	adopt(decl, v)

	valueStart := p.save()
	expr := p.parseExpr(false)
	p.skipFlags()
	if expr == nil || !p.atStatementEnd() {
		p.restore(valueStart)
		expr = p.parseRawExpression()
	}
	decl.value = expr
	adopt(decl, expr)
	p.finish(decl)
	return decl
}

// skipFlags consumes SCSS assignment flags such as !default and !global.
func (p *parser) skipFlags() {
	for p.peek().isDelim("!") && p.peekAt(1).is(csslex.IdentToken) {
		p.pos += 2
	}
}

func (p *parser) parseRawExpression() *Expression {
	expr := &Expression{}
	p.begin(expr)
	p.skipItem()
	p.finish(expr)
	return expr
}

func isKeyframesKeyword(name string) bool {
	switch name {
	case "@keyframes", "@-webkit-keyframes", "@-ms-keyframes", "@-moz-keyframes", "@-o-keyframes":
		return true
	}
	return false
}

func isConditionalGroup(name string) bool {
	switch name {
	case "@media", "@supports", "@document", "@-moz-document", "@layer", "@container", "@scope", "@starting-style":
		return true
	}
	return false
}

func (p *parser) parseAtRule() Node {
	name := strings.ToLower(p.peek().text)
	if p.lang == LESS && p.peekAt(1).is(csslex.ColonToken) {
		if n := p.parseVariableDeclaration(); n != nil {
			return n
		}
	}
	switch {
	case name == "@import":
		return p.parseImport()
	case isKeyframesKeyword(name):
		return p.parseKeyframe()
	case name == "@font-face":
		return p.parseFontFace()
	}
	return p.parseGenericAtRule(name)
}

func (p *parser) parseAtKeyword() *AtKeyword {
	kw := &AtKeyword{}
	p.leaf(kw)
	return kw
}

func (p *parser) parseImport() Node {
	imp := &Import{}
	p.begin(imp)
	adopt(imp, p.parseAtKeyword())

	var url Node
	switch p.peek().tt {
	case csslex.URLToken, csslex.BadURLToken:
		url = p.leaf(&URILiteral{})
	case csslex.StringToken, csslex.BadStringToken:
		url = p.leaf(&StringLiteral{})
	case csslex.FunctionToken:
		if strings.EqualFold(p.peek().text, "url(") {
			url = p.parseFunction()
		}
	}
	if url == nil {
		p.error(ErrURIOrStringExpected)
	} else {
		imp.url = url
		adopt(imp, url)
	}
	p.skipPrelude()
	p.finish(imp)
	return imp
}

func (p *parser) parseKeyframe() Node {
	kf := &Keyframe{}
	p.begin(kf)
	kf.keyword = p.parseAtKeyword()
	adopt(kf, kf.keyword)

	if id := p.parseKeyframeName(); id != nil {
		kf.identifier = id
		adopt(kf, id)
	} else {
		p.error(ErrIdentifierExpected)
	}
	if !p.peekType(csslex.LeftBraceToken) {
		p.error(ErrLeftCurlyExpected)
		p.skipItem()
		p.finish(kf)
		return kf
	}
	kf.declarations = p.parseBlock(p.parseKeyframeItem, ErrSelectorExpected)
	adopt(kf, kf.declarations)
	p.finish(kf)
	return kf
}

func (p *parser) parseKeyframeName() *Identifier {
	switch {
	case p.peekType(csslex.StringToken):
		id := &Identifier{}
		p.leaf(id)
		return id
	case p.peekType(csslex.AtKeywordToken) && p.lang == LESS:
		id := &Identifier{interpolated: true}
		p.leaf(id)
		return id
	case p.peek().isDelim("$") && p.lang == SCSS:
		id := &Identifier{interpolated: true}
		p.begin(id)
		if v := p.parseVariable(); v != nil {
			adopt(id, v)
			p.finish(id)
			return id
		}
		return nil
	}
	return p.parseIdentifier()
}

func (p *parser) parseKeyframeItem() Node {
	if p.peekType(csslex.AtKeywordToken) {
		return p.parseAtRule()
	}
	ks := &KeyframeSelector{}
	p.begin(ks)
	n := 0
	for {
		t := p.peek()
		switch {
		case t.is(csslex.IdentToken), t.is(csslex.PercentageToken), t.is(csslex.NumberToken):
			p.next()
		case p.peekInterpolation():
			adopt(ks, p.parseInterpolation())
		default:
			if n == 0 {
				return nil
			}
			p.error(ErrSelectorExpected)
		}
		n++
		if !p.accept(csslex.CommaToken) {
			break
		}
	}
	if !p.peekType(csslex.LeftBraceToken) {
		p.error(ErrLeftCurlyExpected)
		p.skipItem()
		p.finish(ks)
		return ks
	}
	ks.declarations = p.parseBlock(p.parseDeclarationItem, ErrIdentifierExpected)
	adopt(ks, ks.declarations)
	p.finish(ks)
	return ks
}

func (p *parser) parseFontFace() Node {
	ff := &FontFace{}
	p.begin(ff)
	adopt(ff, p.parseAtKeyword())
	if !p.peekType(csslex.LeftBraceToken) {
		p.error(ErrLeftCurlyExpected)
		p.skipItem()
		p.finish(ff)
		return ff
	}
	ff.declarations = p.parseBlock(p.parseDeclarationItem, ErrIdentifierExpected)
	adopt(ff, ff.declarations)
	p.finish(ff)
	return ff
}

func (p *parser) parseGenericAtRule(name string) Node {
	rule := &AtRule{}
	p.begin(rule)
	rule.keyword = p.parseAtKeyword()
	adopt(rule, rule.keyword)
	p.skipPrelude()
	if p.peekType(csslex.LeftBraceToken) {
		item, onFail := p.parseNestedItem, ErrRuleOrSelectorExpected
		if p.lang == CSS {
			switch {
			case isConditionalGroup(name):
				item = p.parseRuleItem
			case name == "@page", name == "@counter-style", name == "@property", name == "@viewport", name == "@-ms-viewport":
				item, onFail = p.parseDeclarationItem, ErrIdentifierExpected
			}
		}
		rule.declarations = p.parseBlock(item, onFail)
		adopt(rule, rule.declarations)
	}
	p.finish(rule)
	return rule
}

func (p *parser) parseDeclaration(strict bool) Node {
	cp := p.save()
	decl := &Declaration{}
	p.begin(decl)
	prop := p.parseProperty()
	if prop == nil {
		p.restore(cp)
		return nil
	}
	decl.property = prop
	adopt(decl, prop)

	if !p.accept(csslex.ColonToken) {
		if strict {
			p.restore(cp)
			return nil
		}
		p.error(ErrColonExpected)
		p.skipItem()
		p.finish(decl)
		return decl
	}

	if strings.HasPrefix(prop.Name(), "--") {
		decl.value = p.parseRawExpression()
		adopt(decl, decl.value)
		p.finish(decl)
		return decl
	}

	if expr := p.parseExpr(false); expr != nil {
		decl.value = expr
		adopt(decl, expr)
	} else {
		if strict {
			p.restore(cp)
			return nil
		}
		p.error(ErrPropertyValueExpected)
	}
	if prio := p.parsePrio(); prio != nil {
		decl.prio = prio
		adopt(decl, prio)
	}
	if strict && !p.atStatementEnd() {
		p.restore(cp)
		return nil
	}
	p.finish(decl)
	return decl
}

func (p *parser) parseProperty() *Property {
	cp := p.save()
	prop := &Property{}
	p.begin(prop)
	if p.peek().isDelim("*") && p.adjacent(1) {
		p.next()
	}
	id := p.parseIdentifier()
	if id == nil {
		p.restore(cp)
		return nil
	}
	prop.identifier = id
	adopt(prop, id)
	p.finish(prop)
	return prop
}

// parseIdentifier joins adjacent name tokens and, in SCSS and LESS,
// interpolation sections into one identifier.
func (p *parser) parseIdentifier() *Identifier {
	id := &Identifier{}
	p.begin(id)
	n := 0
	for ; n == 0 || p.adjacent(0); n++ {
		t := p.peek()
		if t.is(csslex.IdentToken) || t.is(csslex.CustomPropertyNameToken) {
			p.next()
			continue
		}
		if p.peekInterpolation() {
			adopt(id, p.parseInterpolation())
			id.interpolated = true
			continue
		}
		if p.lang != CSS && t.isDelim("-") && p.adjacent(1) {
			after := p.peekAt(1)
			if after.isDelim("#") || after.isDelim("@") {
				p.next()
				continue
			}
		}
		break
	}
	if n == 0 {
		return nil
	}
	p.finish(id)
	return id
}

func (p *parser) parsePrio() *Prio {
	bang, word := p.peek(), p.peekAt(1)
	if !bang.isDelim("!") || !word.is(csslex.IdentToken) || !strings.EqualFold(word.text, "important") {
		return nil
	}
	prio := &Prio{}
	p.begin(prio)
	p.pos += 2
	p.finish(prio)
	return prio
}

// parseExpr parses a value: binary expressions separated by whitespace or
// commas. With stopOnComma it stops at the first comma, as function
// arguments do.
func (p *parser) parseExpr(stopOnComma bool) *Expression {
	expr := &Expression{}
	p.begin(expr)
	first := p.parseBinaryExpr(nil, nil)
	if first == nil {
		return nil
	}
	adopt(expr, first)
	for {
		if p.peekType(csslex.CommaToken) {
			if stopOnComma {
				break
			}
			p.next()
		}
		b := p.parseBinaryExpr(nil, nil)
		if b == nil {
			break
		}
		adopt(expr, b)
	}
	p.finish(expr)
	return expr
}

func (p *parser) parseBinaryExpr(left, op Node) Node {
	bin := &BinaryExpression{}
	if left == nil {
		p.begin(bin)
		if left = p.parseTerm(); left == nil {
			return nil
		}
	} else {
		bin.src = p.src
		bin.offset = left.Offset()
	}
	bin.left = left
	adopt(bin, left)

	if op == nil {
		if op = p.parseOperator(); op == nil {
			p.finish(bin)
			return bin
		}
	}
	bin.operator = op
	adopt(bin, op)

	right := p.parseTerm()
	if right == nil {
		p.error(ErrTermExpected)
		p.finish(bin)
		return bin
	}
	bin.right = right
	adopt(bin, right)
	p.finish(bin)

	if next := p.parseOperator(); next != nil {
		return p.parseBinaryExpr(bin, next)
	}
	return bin
}

func (p *parser) parseOperator() Node {
	t := p.peek()
	if t.tt != csslex.DelimToken {
		return nil
	}
	switch t.text {
	case "/", "*", "+", "-", "=":
		return p.leaf(&Operator{})
	}
	return nil
}

func (p *parser) parseTerm() Node {
	cp := p.save()
	term := &Term{}
	p.begin(term)
	if (p.peek().isDelim("-") || p.peek().isDelim("+")) && p.adjacent(1) {
		p.next()
	}
	v := p.parseTermValue()
	if v == nil {
		p.restore(cp)
		return nil
	}
	adopt(term, v)
	p.finish(term)
	return term
}

func (p *parser) parseTermValue() Node {
	t := p.peek()
	switch t.tt {
	case csslex.URLToken, csslex.BadURLToken:
		return p.leaf(&URILiteral{})
	case csslex.FunctionToken:
		return p.parseFunction()
	case csslex.StringToken, csslex.BadStringToken:
		return p.leaf(&StringLiteral{})
	case csslex.NumberToken, csslex.PercentageToken, csslex.DimensionToken:
		return p.leaf(&NumericValue{})
	case csslex.HashToken:
		return p.leaf(&HexColorValue{})
	case csslex.UnicodeRangeToken, csslex.CustomPropertyNameToken:
		return p.leaf(&Identifier{})
	case csslex.IdentToken:
		if strings.EqualFold(t.text, "progid") && p.peekAt(1).is(csslex.ColonToken) {
			return p.parseRawTerm()
		}
		if id := p.parseIdentifier(); id != nil {
			return id
		}
	case csslex.LeftParenthesisToken:
		return p.parseParenthesized()
	case csslex.LeftBracketToken:
		term := &Term{}
		p.begin(term)
		p.skipBalanced()
		p.finish(term)
		return term
	case csslex.AtKeywordToken:
		if v := p.parseVariable(); v != nil {
			return v
		}
	case csslex.DelimToken:
		if p.peekInterpolation() {
			if id := p.parseIdentifier(); id != nil {
				return id
			}
		}
		if v := p.parseVariable(); v != nil {
			return v
		}
	}
	return nil
}

// parseRawTerm swallows the rest of the value, as legacy IE filters need.
func (p *parser) parseRawTerm() Node {
	term := &Term{}
	p.begin(term)
	p.skipItem()
	p.finish(term)
	return term
}

func (p *parser) parseParenthesized() Node {
	cp := p.save()
	term := &Term{}
	p.begin(term)
	p.next()
	if expr := p.parseExpr(false); expr != nil && p.accept(csslex.RightParenthesisToken) {
		adopt(term, expr)
		p.finish(term)
		return term
	}
	p.restore(cp)

	raw := &Term{}
	p.begin(raw)
	if !p.skipBalanced() {
		p.error(ErrRightParenthesisExpected)
	}
	p.finish(raw)
	return raw
}

func (p *parser) parseFunction() Node {
	fn := &Function{}
	p.begin(fn)
	fn.name = p.next().text

	args := &Nodelist{}
	p.begin(args)
	for !p.atEOF() && !p.peekType(csslex.RightParenthesisToken) {
		expr := p.parseExpr(true)
		if expr == nil {
			break
		}
		adopt(args, expr)
		if !p.accept(csslex.CommaToken) {
			break
		}
	}
	p.finish(args)
	fn.arguments = args
	adopt(fn, args)

	if !p.accept(csslex.RightParenthesisToken) {
		p.error(ErrRightParenthesisExpected)
		p.skipToCloseParen()
	}
	p.finish(fn)
	return fn
}

// skipToCloseParen consumes the rest of a broken argument list without
// leaving the enclosing declaration.
func (p *parser) skipToCloseParen() {
	depth := 1
	for !p.atEOF() {
		t := p.peek()
		switch t.tt {
		case csslex.SemicolonToken, csslex.RightBraceToken, csslex.LeftBraceToken:
			return
		case csslex.LeftParenthesisToken, csslex.FunctionToken:
			depth++
		case csslex.RightParenthesisToken:
			depth--
		}
		p.next()
		if depth == 0 {
			return
		}
	}
}
