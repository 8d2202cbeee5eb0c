// internal/browser/dom/collection.go
package dom

import (
	"golang.org/x/net/html"

	"github.com/xkilldash9x/domgraph/internal/browser/tree"
)

// HTMLCollection is a live view: every access re-evaluates the underlying
// query against the current tree.
type HTMLCollection struct {
	doc  *Document
	eval func() []*html.Node
}

func newHTMLCollection(d *Document, eval func() []*html.Node) *HTMLCollection {
	return &HTMLCollection{doc: d, eval: eval}
}

// Len returns the current number of elements.
func (c *HTMLCollection) Len() int { return len(c.eval()) }

// Item returns the element at index i, or nil when out of range.
func (c *HTMLCollection) Item(i int) *Element {
	nodes := c.eval()
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return c.doc.wrap(nodes[i])
}

// NamedItem returns the first element whose id or name attribute equals
// name.
func (c *HTMLCollection) NamedItem(name string) *Element {
	if name == "" {
		return nil
	}
	for _, n := range c.eval() {
		if v, _ := tree.Attr(n, "id"); v == name {
			return c.doc.wrap(n)
		}
		if v, _ := tree.Attr(n, "name"); v == name {
			return c.doc.wrap(n)
		}
	}
	return nil
}

// Slice returns the current elements.
func (c *HTMLCollection) Slice() []*Element { return c.doc.wrapAll(c.eval()) }

// NodeList is a static snapshot taken when it was created.
type NodeList struct {
	items []*Element
}

func newNodeList(d *Document, nodes []*html.Node) *NodeList {
	return &NodeList{items: d.wrapAll(nodes)}
}

// Len returns the number of nodes.
func (l *NodeList) Len() int { return len(l.items) }

// Item returns the node at index i, or nil when out of range.
func (l *NodeList) Item(i int) *Element {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Slice returns a copy of the nodes.
func (l *NodeList) Slice() []*Element {
	out := make([]*Element, len(l.items))
	copy(out, l.items)
	return out
}

// ForEach calls fn with each node and its index.
func (l *NodeList) ForEach(fn func(el *Element, i int)) {
	for i, el := range l.items {
		fn(el, i)
	}
}
