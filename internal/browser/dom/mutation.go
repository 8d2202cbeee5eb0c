// internal/browser/dom/mutation.go
package dom

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/domgraph/internal/browser/tree"
)

const (
	msgContainsParent = "The new child element contains the parent."
	msgNotChildRef    = "The node before which the new node is to be inserted is not a child of this node."
	msgNotChildRemove = "The node to be removed is not a child of this node."
	msgNotChildSwap   = "The node to be replaced is not a child of this node."
	msgNoChildren     = "This node type does not support this method."
)

// checkInsertable validates child as an insertion argument for el. It
// returns the nodes that will actually be inserted: the children of a
// fragment, or child itself.
func (el *Element) checkInsertable(op string, child *Element, position int) ([]*html.Node, error) {
	if child == nil {
		return nil, argumentMissing("Node", op, position, "Node")
	}
	switch el.NodeType() {
	case TextNode, CommentNode, DocumentTypeNode:
		return nil, hierarchyError("Node", op, msgNoChildren)
	}
	if child.doc != el.doc {
		return nil, hierarchyError("Node", op, "The node belongs to a different document. Use importNode.")
	}
	switch child.NodeType() {
	case DocumentNode:
		return nil, hierarchyError("Node", op, "Nodes of type '#document' may not be inserted inside nodes of type '"+el.NodeName()+"'.")
	case DocumentFragmentNode:
		if tree.Contains(child.node, el.node) {
			return nil, hierarchyError("Node", op, msgContainsParent)
		}
		return tree.ChildNodes(child.node), nil
	}
	if tree.Contains(child.node, el.node) {
		return nil, hierarchyError("Node", op, msgContainsParent)
	}
	return []*html.Node{child.node}, nil
}

// formerParents records where nodes are attached before a move.
func formerParents(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if n.Parent != nil {
			out = append(out, n.Parent)
		}
	}
	return out
}

// AppendChild moves child to the end of el's children and returns it. A
// fragment contributes its children and is left empty.
func (el *Element) AppendChild(child *Element) (*Element, error) {
	nodes, err := el.checkInsertable("appendChild", child, 1)
	if err != nil {
		return nil, err
	}
	former := formerParents(nodes)
	for _, n := range nodes {
		if err := tree.AppendChild(el.node, n); err != nil {
			return nil, el.mapTreeError("appendChild", err)
		}
	}
	el.doc.structureChanged(append(former, el.node)...)
	return child, nil
}

// InsertBefore moves newNode before ref. A nil ref appends.
func (el *Element) InsertBefore(newNode, ref *Element) (*Element, error) {
	nodes, err := el.checkInsertable("insertBefore", newNode, 1)
	if err != nil {
		return nil, err
	}
	var refNode *html.Node
	if ref != nil {
		if ref.node.Parent != el.node {
			return nil, hierarchyError("Node", "insertBefore", msgNotChildRef)
		}
		refNode = ref.node
	}
	former := formerParents(nodes)
	for _, n := range nodes {
		if err := tree.InsertBefore(el.node, n, refNode); err != nil {
			return nil, el.mapTreeError("insertBefore", err)
		}
	}
	el.doc.structureChanged(append(former, el.node)...)
	return newNode, nil
}

// RemoveChild detaches child and returns it.
func (el *Element) RemoveChild(child *Element) (*Element, error) {
	if child == nil {
		return nil, argumentMissing("Node", "removeChild", 1, "Node")
	}
	if err := tree.RemoveChild(el.node, child.node); err != nil {
		return nil, hierarchyError("Node", "removeChild", msgNotChildRemove)
	}
	el.doc.detached(child.node)
	el.doc.structureChanged(el.node)
	return child, nil
}

// ReplaceChild puts a copy of newChild where oldChild is and returns
// oldChild. Text and comment nodes are re-created from their data; anything
// else is re-parsed from its serialized markup in el's context.
func (el *Element) ReplaceChild(newChild, oldChild *Element) (*Element, error) {
	if newChild == nil {
		return nil, argumentMissing("Node", "replaceChild", 1, "Node")
	}
	if oldChild == nil {
		return nil, argumentMissing("Node", "replaceChild", 2, "Node")
	}
	if oldChild.node.Parent != el.node {
		return nil, hierarchyError("Node", "replaceChild", msgNotChildSwap)
	}

	var err error
	switch newChild.NodeType() {
	case TextNode:
		err = tree.ReplaceWithNodes(oldChild.node, tree.NewText(newChild.node.Data))
	case CommentNode:
		err = tree.ReplaceWithNodes(oldChild.node, tree.NewComment(newChild.node.Data))
	default:
		_, err = tree.ReplaceWithHTML(oldChild.node, newChild.OuterHTML())
	}
	if err != nil {
		return nil, el.mapTreeError("replaceChild", err)
	}
	el.doc.detached(oldChild.node)
	el.doc.structureChanged(el.node)
	return oldChild, nil
}

// Remove detaches el from its parent. A parentless node is left alone.
func (el *Element) Remove() {
	parent := el.node.Parent
	if parent == nil {
		return
	}
	tree.Detach(el.node)
	el.doc.detached(el.node)
	el.doc.structureChanged(parent)
}

// CloneNode copies el. A shallow clone keeps the node and its attributes; a
// deep clone copies the subtree. The clone is detached and gets fresh layout
// state.
func (el *Element) CloneNode(deep bool) *Element {
	if el.NodeType() == DocumentNode {
		return nil
	}
	return el.doc.wrap(tree.Clone(el.node, deep))
}

// InsertAdjacentHTML parses markup and inserts it relative to el. Positions
// match case-insensitively.
func (el *Element) InsertAdjacentHTML(position, markup string) error {
	pos, err := tree.ParsePosition(position)
	if err != nil {
		return syntaxError("Element", "insertAdjacentHTML", fmt.Sprintf(
			"The value provided ('%s') is not one of 'beforeBegin', 'afterBegin', 'beforeEnd', or 'afterEnd'.", position))
	}
	if pos.Sibling() && el.node.Parent == el.doc.root.node {
		return hierarchyError("Element", "insertAdjacentHTML", "The element's parent is the document.")
	}
	if _, err := tree.InsertHTML(el.node, pos, markup); err != nil {
		return el.mapTreeError("insertAdjacentHTML", err)
	}
	if pos.Sibling() {
		el.doc.structureChanged(el.node.Parent)
	} else {
		el.doc.structureChanged(el.node)
	}
	return nil
}

func (el *Element) mapTreeError(op string, err error) error {
	switch {
	case errors.Is(err, tree.ErrCycle):
		return hierarchyError("Node", op, msgContainsParent)
	case errors.Is(err, tree.ErrNotChild):
		return hierarchyError("Node", op, msgNotChildRef)
	case errors.Is(err, tree.ErrNoParent):
		return hierarchyError("Element", op, "The element has no parent.")
	}
	return fmt.Errorf("%s: %w", op, err)
}

// detached tears down state tied to subtrees that left the tree. Only
// existing wrappers are visited.
func (d *Document) detached(nodes ...*html.Node) {
	for _, root := range nodes {
		tree.Walk(root, func(n *html.Node) bool {
			el := d.registry.lookup(n)
			if el == nil {
				return true
			}
			if el.toScroll != nil {
				el.toScroll = nil
				d.logger.Debug("cleared scroll resolver on detach", zap.Uint64("node_id", uint64(el.id)))
			}
			if d.active == el {
				d.active = nil
			}
			return true
		})
	}
}
