package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yacobolo/csslint/internal/css"
)

func TestNodesByRoot(t *testing.T) {
	sheet := css.Parse("a { -webkit-transition: none; -moz-transition: none }", css.CSS)
	props := make([]css.Node, 0, 2)
	css.Walk(sheet, func(n css.Node) css.Control {
		if p, ok := n.(*css.Property); ok {
			props = append(props, p)
		}
		return css.Continue
	})
	require.Len(t, props, 2)

	m := newNodesByRoot()
	m.add("transition", "transition", nil)
	m.add("transition", "-webkit-transition", props[0])
	m.add("color", "color", nil)
	m.add("transition", "-moz-transition", props[1])

	var roots []string
	m.each(func(root string, g *group) {
		roots = append(roots, root)
		assert.GreaterOrEqual(t, len(g.names), len(g.nodes))
	})
	assert.Equal(t, []string{"transition", "color"}, roots)

	g := m.data["transition"]
	assert.Equal(t, []string{"transition", "-webkit-transition", "-moz-transition"}, g.names)
	assert.Len(t, g.nodes, 2)
	assert.True(t, g.has("transition"))
	assert.False(t, g.has("-o-transition"))
}

func TestMissingNames(t *testing.T) {
	v := NewVisitor(DefaultTable(), WithPrinter(NewPrinter(language.English)))

	tests := []struct {
		name     string
		expected []string
		actual   []string
		want     string
	}{
		{"none missing", []string{"-a", "-b"}, []string{"-b", "-a"}, ""},
		{"one missing", []string{"-a", "-b"}, []string{"-a"}, "'-b'"},
		{"two missing", []string{"-a", "-b", "-c"}, []string{"-b"}, "'-a', '-c'"},
		{"nothing expected", nil, []string{"x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.missingNames(tt.expected, tt.actual))
		})
	}
}

func TestPrinterFallsBackToEnglish(t *testing.T) {
	p := NewPrinter(language.German)
	assert.Equal(t,
		"Also define the standard property 'color' for compatibility",
		p.Sprintf(msgPropertyStandardMissing.key(), "color"))
}

func TestCustomPrinter(t *testing.T) {
	b, err := NewCatalog()
	require.NoError(t, err)
	require.NoError(t, b.SetString(language.German, msgKeyframesStandardMissing.id, "Standardregel '@keyframes' fehlt."))

	v := NewVisitor(DefaultTable(), WithPrinter(message.NewPrinter(language.German, message.Catalog(b))))
	v.Visit(css.Parse("@-webkit-keyframes spin { }", css.CSS))
	markers := withRule(v.Markers(Warning), IncludeStandardPropertyWhenUsingVendorPrefix)
	require.Len(t, markers, 1)
	assert.Equal(t, "Standardregel '@keyframes' fehlt.", markers[0].Message)
}
