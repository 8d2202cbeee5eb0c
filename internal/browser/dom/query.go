// internal/browser/dom/query.go
package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/domgraph/internal/browser/tree"
)

// Selectors used internally. They are known to be valid.
var (
	formSelector    = mustCompile("form")
	detailsSelector = mustCompile("details")
	titleSelector   = mustCompile("head > title")
)

func mustCompile(s string) tree.Selector {
	sel, err := tree.Compile(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func compileSelector(iface, op, selector string) (tree.Selector, error) {
	sel, err := tree.Compile(selector)
	if err != nil {
		return nil, invalidSelector(iface, op, selector)
	}
	return sel, nil
}

// QuerySelector returns the first descendant matching selector, or nil.
func (el *Element) QuerySelector(selector string) (*Element, error) {
	sel, err := compileSelector(el.iface(), "querySelector", selector)
	if err != nil {
		return nil, err
	}
	return el.doc.wrap(tree.QueryFirst(el.node, sel)), nil
}

// QuerySelectorAll returns a static list of the descendants matching
// selector, in document order.
func (el *Element) QuerySelectorAll(selector string) (*NodeList, error) {
	sel, err := compileSelector(el.iface(), "querySelectorAll", selector)
	if err != nil {
		return nil, err
	}
	return newNodeList(el.doc, tree.QueryAll(el.node, sel)), nil
}

// Closest returns el or its nearest ancestor matching selector.
func (el *Element) Closest(selector string) (*Element, error) {
	sel, err := compileSelector("Element", "closest", selector)
	if err != nil {
		return nil, err
	}
	if !el.isElement() {
		return nil, nil
	}
	return el.doc.wrap(tree.Closest(el.node, sel)), nil
}

// Matches reports whether el matches selector.
func (el *Element) Matches(selector string) (bool, error) {
	sel, err := compileSelector("Element", "matches", selector)
	if err != nil {
		return false, err
	}
	return tree.Is(el.node, sel), nil
}

// GetElementsByTagName returns a live collection of descendants with the
// given tag name. "*" matches every element.
func (el *Element) GetElementsByTagName(name string) *HTMLCollection {
	return newHTMLCollection(el.doc, func() []*html.Node {
		return tree.FindAll(el.node, tagMatcher(name))
	})
}

// GetElementsByClassName returns a live collection of descendants carrying
// every class in the space-separated names.
func (el *Element) GetElementsByClassName(names string) *HTMLCollection {
	return newHTMLCollection(el.doc, func() []*html.Node {
		return tree.FindAll(el.node, classMatcher(names))
	})
}

func tagMatcher(name string) func(*html.Node) bool {
	if name == "*" {
		return func(*html.Node) bool { return true }
	}
	lower := strings.ToLower(name)
	return func(n *html.Node) bool {
		if n.Namespace == "" {
			return n.Data == lower
		}
		return n.Data == name
	}
}

func classMatcher(names string) func(*html.Node) bool {
	want := strings.Fields(names)
	return func(n *html.Node) bool {
		if len(want) == 0 {
			return false
		}
		v, ok := tree.Attr(n, "class")
		if !ok {
			return false
		}
		have := strings.Fields(v)
		for _, w := range want {
			if !containsToken(have, w) {
				return false
			}
		}
		return true
	}
}

func containsToken(tokens []string, t string) bool {
	for _, x := range tokens {
		if x == t {
			return true
		}
	}
	return false
}
