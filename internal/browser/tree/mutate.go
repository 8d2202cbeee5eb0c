// internal/browser/tree/mutate.go
package tree

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

var (
	// ErrCycle is returned when an insertion would make a node its own ancestor.
	ErrCycle = errors.New("the new child contains the parent")
	// ErrNotChild is returned when a child or reference node does not belong
	// to the parent it was given with.
	ErrNotChild = errors.New("the node is not a child of this node")
	// ErrNoParent is returned for sibling insertions on a parentless node.
	ErrNoParent = errors.New("the node has no parent")
	// ErrInvalidPosition is returned by ParsePosition.
	ErrInvalidPosition = errors.New("invalid insertion position")
)

// Position is an insertAdjacentHTML insertion point.
type Position string

const (
	BeforeBegin Position = "beforebegin"
	AfterBegin  Position = "afterbegin"
	BeforeEnd   Position = "beforeend"
	AfterEnd    Position = "afterend"
)

// ParsePosition validates a position token. Matching is case-insensitive.
func ParsePosition(s string) (Position, error) {
	switch p := Position(strings.ToLower(s)); p {
	case BeforeBegin, AfterBegin, BeforeEnd, AfterEnd:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPosition, s)
}

// Sibling reports whether the position inserts outside the node.
func (p Position) Sibling() bool {
	return p == BeforeBegin || p == AfterEnd
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func checkInsert(parent, child *html.Node) error {
	if Contains(child, parent) {
		return ErrCycle
	}
	return nil
}

// AppendChild moves child to the end of parent's children. A child that is
// already attached elsewhere is detached first.
func AppendChild(parent, child *html.Node) error {
	if err := checkInsert(parent, child); err != nil {
		return err
	}
	Detach(child)
	parent.AppendChild(child)
	return nil
}

// InsertBefore moves child before ref. A nil ref appends.
func InsertBefore(parent, child, ref *html.Node) error {
	if ref == nil {
		return AppendChild(parent, child)
	}
	if ref.Parent != parent {
		return ErrNotChild
	}
	if err := checkInsert(parent, child); err != nil {
		return err
	}
	if child == ref {
		return nil
	}
	Detach(child)
	parent.InsertBefore(child, ref)
	return nil
}

// RemoveChild detaches child from parent.
func RemoveChild(parent, child *html.Node) error {
	if child == nil || child.Parent != parent {
		return ErrNotChild
	}
	parent.RemoveChild(child)
	return nil
}

// ReplaceChildren removes all children of n, appends nodes and returns the
// removed children.
func ReplaceChildren(n *html.Node, nodes ...*html.Node) []*html.Node {
	removed := ChildNodes(n)
	for _, c := range removed {
		n.RemoveChild(c)
	}
	for _, c := range nodes {
		Detach(c)
		n.AppendChild(c)
	}
	return removed
}

// SetInnerHTML replaces the children of n with parsed markup.
func SetInnerHTML(n *html.Node, markup string) ([]*html.Node, error) {
	nodes, err := ParseFragment(markup, n)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return ReplaceChildren(n, nodes...), nil
}

// SetText replaces the children of n with a single text node. An empty
// string leaves n without children.
func SetText(n *html.Node, text string) []*html.Node {
	if text == "" {
		return ReplaceChildren(n)
	}
	return ReplaceChildren(n, NewText(text))
}

// InsertHTML parses markup and inserts the resulting nodes at pos relative to
// n. Sibling positions parse in the parent's context.
func InsertHTML(n *html.Node, pos Position, markup string) ([]*html.Node, error) {
	context := n
	if pos.Sibling() {
		if n.Parent == nil {
			return nil, ErrNoParent
		}
		context = n.Parent
	}
	nodes, err := ParseFragment(markup, context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	switch pos {
	case BeforeBegin:
		for _, c := range nodes {
			n.Parent.InsertBefore(c, n)
		}
	case AfterBegin:
		first := n.FirstChild
		for _, c := range nodes {
			if first == nil {
				n.AppendChild(c)
			} else {
				n.InsertBefore(c, first)
			}
		}
	case BeforeEnd:
		for _, c := range nodes {
			n.AppendChild(c)
		}
	case AfterEnd:
		next := n.NextSibling
		for _, c := range nodes {
			if next == nil {
				n.Parent.AppendChild(c)
			} else {
				n.Parent.InsertBefore(c, next)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, pos)
	}
	return nodes, nil
}

// ReplaceWithNodes puts nodes where n is and detaches n.
func ReplaceWithNodes(n *html.Node, nodes ...*html.Node) error {
	parent := n.Parent
	if parent == nil {
		return ErrNoParent
	}
	for _, c := range nodes {
		if err := checkInsert(parent, c); err != nil {
			return err
		}
	}
	for _, c := range nodes {
		Detach(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
	return nil
}

// ReplaceWithHTML parses markup in the parent's context and puts the result
// where n is. n ends up detached.
func ReplaceWithHTML(n *html.Node, markup string) ([]*html.Node, error) {
	if n.Parent == nil {
		return nil, ErrNoParent
	}
	nodes, err := ParseFragment(markup, n.Parent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	if err := ReplaceWithNodes(n, nodes...); err != nil {
		return nil, err
	}
	return nodes, nil
}
