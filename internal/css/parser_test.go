package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findAll[T Node](root Node) []T {
	var out []T
	Walk(root, func(n Node) Control {
		if v, ok := n.(T); ok {
			out = append(out, v)
		}
		return Continue
	})
	return out
}

func errorIDs(sheet *Stylesheet) []ErrorID {
	var ids []ErrorID
	for _, e := range sheet.Errors() {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestParseRuleset(t *testing.T) {
	sheet := Parse("a {\n  color: red;\n}", CSS)
	require.Empty(t, sheet.Errors())
	require.Len(t, sheet.Children(), 1)

	rs, ok := sheet.Children()[0].(*Ruleset)
	require.True(t, ok)
	assert.Equal(t, "a", rs.Selectors().Text())
	require.NotNil(t, rs.Declarations())
	require.Len(t, rs.Declarations().Children(), 1)

	decl, ok := rs.Declarations().Children()[0].(*Declaration)
	require.True(t, ok)
	assert.Equal(t, "color: red", decl.Text())
	assert.Equal(t, "color", decl.FullPropertyName())
	require.NotNil(t, decl.Value())
	assert.Equal(t, "red", decl.Value().Text())
	assert.Nil(t, decl.Prio())

	assert.Same(t, rs.Declarations(), decl.Parent())
	assert.Same(t, rs, rs.Declarations().Parent())
	assert.Same(t, sheet, rs.Parent())
}

func TestParseImportant(t *testing.T) {
	sheet := Parse("a{color:red !important}", CSS)
	require.Empty(t, sheet.Errors())

	decls := findAll[*Declaration](sheet)
	require.Len(t, decls, 1)
	require.NotNil(t, decls[0].Prio())
	assert.Equal(t, "!important", decls[0].Prio().Text())
	assert.Equal(t, "red", decls[0].Value().Text())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []ErrorID
	}{
		{
			name:     "missing open brace",
			src:      "a",
			expected: []ErrorID{ErrLeftCurlyExpected},
		},
		{
			name:     "missing colon",
			src:      "a { color red; } b { color: blue }",
			expected: []ErrorID{ErrColonExpected},
		},
		{
			name:     "missing close brace",
			src:      "a { color: red",
			expected: []ErrorID{ErrRightCurlyExpected},
		},
		{
			name:     "missing value",
			src:      "a { color: ; }",
			expected: []ErrorID{ErrPropertyValueExpected},
		},
		{
			name:     "import without url",
			src:      "@import ;",
			expected: []ErrorID{ErrURIOrStringExpected},
		},
		{
			name:     "valid",
			src:      "a, b > c:hover, d[x=\"y\"] { margin: 0 auto; }",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := Parse(tt.src, CSS)
			assert.Equal(t, tt.expected, errorIDs(sheet))
		})
	}
}

func TestParseMissingBraceLeavesNoDeclarations(t *testing.T) {
	sheet := Parse("a", CSS)
	rulesets := findAll[*Ruleset](sheet)
	require.Len(t, rulesets, 1)
	assert.Nil(t, rulesets[0].Declarations())
}

func TestParseRecoversAfterError(t *testing.T) {
	sheet := Parse("a { color red; } b { color: blue }", CSS)
	rulesets := findAll[*Ruleset](sheet)
	require.Len(t, rulesets, 2)

	decls := findAll[*Declaration](rulesets[1])
	require.Len(t, decls, 1)
	assert.Equal(t, "blue", decls[0].Value().Text())
}

func TestNumericValue(t *testing.T) {
	tests := []struct {
		src   string
		value string
		unit  string
	}{
		{"0px", "0", "px"},
		{"1.5em", "1.5", "em"},
		{"-0", "-0", ""},
		{"10%", "10", "%"},
		{"1e3", "1e3", ""},
		{".5rem", ".5", "rem"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			sheet := Parse("a{width:"+tt.src+"}", CSS)
			nums := findAll[*NumericValue](sheet)
			require.Len(t, nums, 1)
			value, unit := nums[0].Value()
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.unit, unit)
		})
	}
}

func TestParseValues(t *testing.T) {
	sheet := Parse("a{color:#fff; background: rgb(1, 2, 3) url(x.png); font: 12px/1.5 serif}", CSS)
	require.Empty(t, sheet.Errors())

	hex := findAll[*HexColorValue](sheet)
	require.Len(t, hex, 1)
	assert.Equal(t, "#fff", hex[0].Text())

	fns := findAll[*Function](sheet)
	require.Len(t, fns, 1)
	assert.Equal(t, "rgb(", fns[0].Name())
	assert.Len(t, fns[0].Arguments().Children(), 3)

	uris := findAll[*URILiteral](sheet)
	require.Len(t, uris, 1)
	assert.Equal(t, "url(x.png)", uris[0].Text())

	ops := findAll[*Operator](sheet)
	require.Len(t, ops, 1)
	assert.Equal(t, "/", ops[0].Text())

	var binary *BinaryExpression
	for _, b := range findAll[*BinaryExpression](sheet) {
		if b.Operator() != nil {
			binary = b
		}
	}
	require.NotNil(t, binary)
	assert.Equal(t, "12px", binary.Left().Text())
	assert.Same(t, ops[0], binary.Operator())
	assert.Equal(t, "1.5", binary.Right().Text())
}

func TestParseAtRules(t *testing.T) {
	src := `@import url("a.css");
@-webkit-keyframes spin { from { top: 0 } to { top: 1px } }
@font-face { src: url(a.woff); font-family: x }
@media screen and (min-width: 10px) { a { color: red } }`

	sheet := Parse(src, CSS)
	require.Empty(t, sheet.Errors())
	require.Len(t, sheet.Children(), 4)

	imp, ok := sheet.Children()[0].(*Import)
	require.True(t, ok)
	require.NotNil(t, imp.URL())
	assert.Equal(t, `url("a.css")`, imp.URL().Text())

	kf, ok := sheet.Children()[1].(*Keyframe)
	require.True(t, ok)
	assert.Equal(t, "@-webkit-keyframes", kf.Keyword().Text())
	assert.Equal(t, "spin", kf.Name())
	require.NotNil(t, kf.Declarations())
	assert.Len(t, kf.Declarations().Children(), 2)

	ff, ok := sheet.Children()[2].(*FontFace)
	require.True(t, ok)
	require.NotNil(t, ff.Declarations())
	assert.Len(t, ff.Declarations().Children(), 2)

	media, ok := sheet.Children()[3].(*AtRule)
	require.True(t, ok)
	assert.Equal(t, "@media", media.Name())
	assert.Len(t, findAll[*Ruleset](media), 1)
}

func TestParseHackAndCustomProperties(t *testing.T) {
	sheet := Parse("a { *zoom: 1; _height: 1px; --gap: 1px 2px }", CSS)
	require.Empty(t, sheet.Errors())

	decls := findAll[*Declaration](sheet)
	require.Len(t, decls, 3)
	assert.Equal(t, "*zoom", decls[0].FullPropertyName())
	assert.Equal(t, "zoom", decls[0].Property().Identifier().Text())
	assert.Equal(t, "_height", decls[1].FullPropertyName())
	assert.Equal(t, "--gap", decls[2].FullPropertyName())
	require.NotNil(t, decls[2].Value())
	assert.Equal(t, "1px 2px", decls[2].Value().Text())
}

func TestParseSCSS(t *testing.T) {
	src := `$w: 10px; // width
.a {
  &:hover { color: red }
  .b { width: $w }
  #{$p}-radius: 1px;
}`
	sheet := Parse(src, SCSS)
	require.Empty(t, sheet.Errors())
	assert.Equal(t, SCSS, sheet.Language())

	assert.Len(t, findAll[*VariableDeclaration](sheet), 1)
	assert.Len(t, findAll[*Ruleset](sheet), 3)
	assert.Len(t, findAll[*Variable](sheet), 2)

	var interpolated []*Declaration
	for _, d := range findAll[*Declaration](sheet) {
		if d.Property().Identifier().ContainsInterpolation() {
			interpolated = append(interpolated, d)
		}
	}
	require.Len(t, interpolated, 1)
	assert.Equal(t, "#{$p}-radius", interpolated[0].FullPropertyName())
}

func TestParseLESS(t *testing.T) {
	src := "@c: red; // comment\n.a { color: @c; .mixin(); }"
	sheet := Parse(src, LESS)
	require.Empty(t, sheet.Errors())

	assert.Len(t, findAll[*VariableDeclaration](sheet), 1)
	assert.Len(t, findAll[*Ruleset](sheet), 1)
	assert.Len(t, findAll[*UnknownStatement](sheet), 1)
}

func TestWalkSkipSubtree(t *testing.T) {
	sheet := Parse("a { color: red } @font-face { src: x }", CSS)

	var kinds []Kind
	Walk(sheet, func(n Node) Control {
		kinds = append(kinds, n.Kind())
		if n.Kind() == KindRuleset {
			return SkipSubtree
		}
		return Continue
	})

	assert.Contains(t, kinds, KindRuleset)
	assert.Contains(t, kinds, KindFontFace)
	assert.Contains(t, kinds, KindDeclaration)
	assert.NotContains(t, kinds, KindSimpleSelector)
}

func TestBlankLineComments(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"line comment", "a{} // x\nb{}", "a{}     \nb{}"},
		{"url untouched", "a{b:url(http://x)}", "a{b:url(http://x)}"},
		{"string untouched", `a{b:"//"}`, `a{b:"//"}`},
		{"block comment untouched", "/* // */a{}", "/* // */a{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := blankLineComments(tt.src)
			assert.Equal(t, tt.expected, out)
			assert.Len(t, out, len(tt.src))
		})
	}
}

func TestStripVendorPrefix(t *testing.T) {
	assert.Equal(t, "transition", StripVendorPrefix("-webkit-transition"))
	assert.Equal(t, "color", StripVendorPrefix("color"))
	assert.Equal(t, "-x", StripVendorPrefix("-x"))
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("SCSS")
	require.NoError(t, err)
	assert.Equal(t, SCSS, lang)

	_, err = ParseLanguage("stylus")
	assert.Error(t, err)
}
