// internal/browser/tree/query.go
package tree

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Selector is a compiled CSS selector group.
type Selector = cascadia.Selector

// Compile parses a selector group such as "div.a > span, #b".
func Compile(selector string) (Selector, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, fmt.Errorf("'%s' is not a valid selector", selector)
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a valid selector: %w", selector, err)
	}
	return sel, nil
}

func selection(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}

// QueryAll returns the descendants of root matching sel, in document order.
// root itself is never part of the result.
func QueryAll(root *html.Node, sel Selector) []*html.Node {
	return selection(root).FindMatcher(sel).Nodes
}

// QueryFirst returns the first descendant of root matching sel.
func QueryFirst(root *html.Node, sel Selector) *html.Node {
	found := selection(root).FindMatcher(sel).First()
	if found.Length() == 0 {
		return nil
	}
	return found.Get(0)
}

// Closest returns n or its nearest ancestor matching sel.
func Closest(n *html.Node, sel Selector) *html.Node {
	found := selection(n).ClosestMatcher(sel)
	if found.Length() == 0 {
		return nil
	}
	return found.Get(0)
}

// Is reports whether n matches sel.
func Is(n *html.Node, sel Selector) bool {
	return n.Type == html.ElementNode && selection(n).IsMatcher(sel)
}

// FindAll returns the descendants of root for which fn is true, in document
// order. It backs the tag-name and class-name collections.
func FindAll(root *html.Node, fn func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, func(n *html.Node) bool {
			if n.Type == html.ElementNode && fn(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// -- Serialization --

// Render returns the outer markup of n.
func Render(n *html.Node) (string, error) {
	return goquery.OuterHtml(selection(n))
}

// RenderInner returns the markup of n's children.
func RenderInner(n *html.Node) (string, error) {
	return selection(n).Html()
}

// -- XPath --

// FindByID returns the first element under root whose id equals id.
func FindByID(root *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	found, err := htmlquery.Query(root, "//*[@id="+XPathLiteral(id)+"]")
	if err != nil {
		return nil
	}
	if found != nil && !Contains(root, found) {
		return nil
	}
	return found
}

// FindByXPath evaluates an XPath expression against root. Only nodes of
// root's tree are returned; htmlquery materializes attribute results as
// fresh parentless nodes, and those are dropped.
func FindByXPath(root *html.Node, expr string) ([]*html.Node, error) {
	nodes, err := htmlquery.QueryAll(root, expr)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a valid XPath expression: %w", expr, err)
	}
	out := nodes[:0]
	for _, n := range nodes {
		if Contains(root, n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// XPathLiteral quotes s as an XPath string literal. XPath 1.0 has no escape
// sequences, so values containing both quote kinds are built with concat().
func XPathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}
