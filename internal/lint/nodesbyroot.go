package lint

import (
	"slices"

	"github.com/yacobolo/csslint/internal/css"
)

// group is the set of names seen for one root and the nodes that findings
// may be attached to. A standard form is recorded by name only, so len(names)
// is never smaller than len(nodes).
type group struct {
	names []string
	nodes []css.Node
}

// nodesByRoot groups names by their canonical root, keeping roots in first
// insertion order so findings come out deterministically.
type nodesByRoot struct {
	roots []string
	data  map[string]*group
}

func newNodesByRoot() *nodesByRoot {
	return &nodesByRoot{data: make(map[string]*group)}
}

// add records name under root. A nil node records the name only.
func (m *nodesByRoot) add(root, name string, node css.Node) {
	g, ok := m.data[root]
	if !ok {
		g = &group{}
		m.data[root] = g
		m.roots = append(m.roots, root)
	}
	g.names = append(g.names, name)
	if node != nil {
		g.nodes = append(g.nodes, node)
	}
}

func (m *nodesByRoot) each(fn func(root string, g *group)) {
	for _, root := range m.roots {
		fn(root, m.data[root])
	}
}

func (g *group) has(name string) bool {
	return slices.Contains(g.names, name)
}
