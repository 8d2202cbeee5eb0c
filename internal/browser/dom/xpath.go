// internal/browser/dom/xpath.go
package dom

import (
	"github.com/xkilldash9x/domgraph/internal/browser/tree"
)

// XPath returns an expression that selects el alone, anchored at the
// nearest ancestor with an id when there is one.
func (el *Element) XPath() string { return tree.UniqueXPath(el.node) }

// Evaluate runs an XPath expression against the document and returns the
// matching nodes in document order.
func (d *Document) Evaluate(expr string) ([]*Element, error) {
	nodes, err := tree.FindByXPath(d.root.node, expr)
	if err != nil {
		return nil, syntaxError("Document", "evaluate", "The string '"+expr+"' is not a valid XPath expression.")
	}
	return d.wrapAll(nodes), nil
}
