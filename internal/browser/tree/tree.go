// internal/browser/tree/tree.go

// Package tree is the backing-tree layer under the object graph. It parses
// markup into golang.org/x/net/html nodes and provides the traversal,
// attribute, mutation, selector and serialization primitives the wrappers
// are built from. Nothing here knows about wrappers, events or layout.
package tree

import (
	"io"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// -- Parsing --

// Parse reads a full document. The parser is forgiving: missing html, head
// and body elements are synthesized.
func Parse(r io.Reader) (*html.Node, error) {
	return htmlquery.Parse(r)
}

// ParseString is Parse over a string.
func ParseString(markup string) (*html.Node, error) {
	return Parse(strings.NewReader(markup))
}

// ParseFragment parses markup as the content of context. A nil or
// non-element context parses in body context.
func ParseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	if context == nil || context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	return html.ParseFragment(strings.NewReader(markup), context)
}

// -- Node construction --

// NewElement creates a detached HTML element. Tag names are lowercased.
func NewElement(tag string) *html.Node {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

// NewText creates a detached text node.
func NewText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// NewComment creates a detached comment node.
func NewComment(data string) *html.Node {
	return &html.Node{Type: html.CommentNode, Data: data}
}

// NewFragment creates an empty container that serializes as its children
// only. x/net/html has no fragment type; a parentless DocumentNode renders the
// same way. Callers tell it apart from a real document by identity.
func NewFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

// Clone copies a node. Attributes are copied by value; a deep clone copies
// the whole subtree. The result is detached.
func Clone(n *html.Node, deep bool) *html.Node {
	if n == nil {
		return nil
	}
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      make([]html.Attribute, len(n.Attr)),
	}
	copy(clone.Attr, n.Attr)

	if deep {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			clone.AppendChild(Clone(c, true))
		}
	}
	return clone
}

// -- Relationships --

// Contains reports whether n is ancestor itself or one of its descendants.
func Contains(ancestor, n *html.Node) bool {
	if ancestor == nil {
		return false
	}
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Root returns the top-most ancestor of n.
func Root(n *html.Node) *html.Node {
	for n != nil && n.Parent != nil {
		n = n.Parent
	}
	return n
}

// ChildNodes returns the children of n in order.
func ChildNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ElementChildren returns the element children of n in order.
func ElementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// ParentElement returns the parent of n when it is an element.
func ParentElement(n *html.Node) *html.Node {
	if n.Parent != nil && n.Parent.Type == html.ElementNode {
		return n.Parent
	}
	return nil
}

// FirstElementChild returns the first element child of n.
func FirstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// LastElementChild returns the last element child of n.
func LastElementChild(n *html.Node) *html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// PrevElementSibling returns the closest preceding element sibling.
func PrevElementSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// NextElementSibling returns the closest following element sibling.
func NextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the subtree of that node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// -- Attributes --

func attrKey(n *html.Node, key string) string {
	if n.Namespace == "" {
		return strings.ToLower(key)
	}
	return key
}

// Attr returns the value of an attribute. HTML attribute names are matched
// case-insensitively.
func Attr(n *html.Node, key string) (string, bool) {
	key = attrKey(n, key)
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or adds an attribute, keeping attribute order stable.
func SetAttr(n *html.Node, key, val string) {
	key = attrKey(n, key)
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute and reports whether it existed.
func RemoveAttr(n *html.Node, key string) bool {
	key = attrKey(n, key)
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return true
		}
	}
	return false
}

// -- Content --

// Text returns the concatenated text of n's descendant text nodes. Text and
// comment nodes return their own data.
func Text(n *html.Node) string {
	switch n.Type {
	case html.TextNode, html.CommentNode:
		return n.Data
	}
	return htmlquery.InnerText(n)
}
