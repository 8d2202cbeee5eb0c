// internal/browser/dom/element.go
package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/domgraph/internal/browser/layout"
	"github.com/xkilldash9x/domgraph/internal/browser/tree"
)

// NodeType mirrors the numeric node type constants exposed to page scripts.
type NodeType int

const (
	ElementNode          NodeType = 1
	TextNode             NodeType = 3
	CommentNode          NodeType = 8
	DocumentNode         NodeType = 9
	DocumentTypeNode     NodeType = 10
	DocumentFragmentNode NodeType = 11
)

// Kind selects kind-specific behaviour. It is fixed when the wrapper is
// created.
type Kind int

const (
	// KindGeneric covers every node without specialized behaviour.
	KindGeneric Kind = iota
	// KindMedia is used for video and audio elements.
	KindMedia
)

// kindOf picks the wrapper variant for a backing node.
func kindOf(n *html.Node) Kind {
	if n.Type == html.ElementNode && n.Namespace == "" {
		switch n.Data {
		case "video", "audio":
			return KindMedia
		}
	}
	return KindGeneric
}

// Element is the object graph vertex. It wraps exactly one backing node of
// any type (element, text, comment, fragment or the document itself). Obtain
// elements only from a Document or from another Element.
type Element struct {
	doc  *Document
	node *html.Node
	id   NodeID
	kind Kind

	listeners eventChannel
	signals   []signalSubscriber

	rect     layout.Rect
	scroll   layout.Offset
	toScroll func(*Document) []*Element

	dataset   *DOMStringMap
	classList *DOMTokenList
	style     *CSSStyleDeclaration
}

func newElement(d *Document, n *html.Node, id NodeID) *Element {
	return &Element{
		doc:  d,
		node: n,
		id:   id,
		kind: kindOf(n),
		rect: d.defaultRect,
	}
}

// -- Identity --

// NodeID returns the stable id of this wrapper within its document.
func (el *Element) NodeID() NodeID { return el.id }

// Kind returns the wrapper variant.
func (el *Element) Kind() Kind { return el.kind }

// OwnerDocument returns the document that created this wrapper.
func (el *Element) OwnerDocument() *Document { return el.doc }

// HTMLNode exposes the backing node. Mutating it directly bypasses signals.
func (el *Element) HTMLNode() *html.Node { return el.node }

// NodeType returns the numeric node type.
func (el *Element) NodeType() NodeType {
	switch el.node.Type {
	case html.ElementNode:
		return ElementNode
	case html.TextNode:
		return TextNode
	case html.CommentNode:
		return CommentNode
	case html.DoctypeNode:
		return DocumentTypeNode
	case html.DocumentNode:
		// The document node is wrapped first, before d.root is assigned.
		if el.doc.root == nil || el.node == el.doc.root.node {
			return DocumentNode
		}
		return DocumentFragmentNode
	}
	return 0
}

func (el *Element) isElement() bool { return el.node.Type == html.ElementNode }

// iface names the interface used in exception messages.
func (el *Element) iface() string {
	switch el.NodeType() {
	case DocumentNode:
		return "Document"
	case ElementNode:
		return "Element"
	}
	return "Node"
}

// TagName returns the qualified name, upper-cased for HTML elements.
func (el *Element) TagName() string {
	if !el.isElement() {
		return ""
	}
	if el.node.Namespace == "" {
		return strings.ToUpper(el.node.Data)
	}
	return el.node.Data
}

// LocalName returns the tag name as written in the tree.
func (el *Element) LocalName() string {
	if !el.isElement() {
		return ""
	}
	return el.node.Data
}

// NodeName returns TagName for elements and the "#name" form otherwise.
func (el *Element) NodeName() string {
	switch el.NodeType() {
	case ElementNode:
		return el.TagName()
	case TextNode:
		return "#text"
	case CommentNode:
		return "#comment"
	case DocumentNode:
		return "#document"
	case DocumentFragmentNode:
		return "#document-fragment"
	case DocumentTypeNode:
		return el.node.Data
	}
	return ""
}

// -- Navigation --

// ParentNode returns the parent of any type, including the document.
func (el *Element) ParentNode() *Element { return el.doc.wrap(el.node.Parent) }

// ParentElement returns the parent when it is an element.
func (el *Element) ParentElement() *Element { return el.doc.wrap(tree.ParentElement(el.node)) }

// FirstChild returns the first child node of any type.
func (el *Element) FirstChild() *Element { return el.doc.wrap(el.node.FirstChild) }

// LastChild returns the last child node of any type.
func (el *Element) LastChild() *Element { return el.doc.wrap(el.node.LastChild) }

// PreviousSibling returns the previous sibling node of any type.
func (el *Element) PreviousSibling() *Element { return el.doc.wrap(el.node.PrevSibling) }

// NextSibling returns the next sibling node of any type.
func (el *Element) NextSibling() *Element { return el.doc.wrap(el.node.NextSibling) }

func (el *Element) FirstElementChild() *Element {
	return el.doc.wrap(tree.FirstElementChild(el.node))
}

func (el *Element) LastElementChild() *Element {
	return el.doc.wrap(tree.LastElementChild(el.node))
}

func (el *Element) PreviousElementSibling() *Element {
	return el.doc.wrap(tree.PrevElementSibling(el.node))
}

func (el *Element) NextElementSibling() *Element {
	return el.doc.wrap(tree.NextElementSibling(el.node))
}

// ChildNodes returns a snapshot of all child nodes.
func (el *Element) ChildNodes() *NodeList {
	return newNodeList(el.doc, tree.ChildNodes(el.node))
}

// Children returns a live collection of the element children.
func (el *Element) Children() *HTMLCollection {
	return newHTMLCollection(el.doc, func() []*html.Node {
		return tree.ElementChildren(el.node)
	})
}

// ChildElementCount returns the number of element children.
func (el *Element) ChildElementCount() int { return len(tree.ElementChildren(el.node)) }

// Contains reports whether other is el or one of its descendants.
func (el *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	return tree.Contains(el.node, other.node)
}

// IsConnected reports whether the node is attached to its document.
func (el *Element) IsConnected() bool {
	return tree.Contains(el.doc.root.node, el.node)
}

// -- Attributes --

// GetAttribute returns the attribute value and whether it is present.
func (el *Element) GetAttribute(name string) (string, bool) {
	if !el.isElement() {
		return "", false
	}
	return tree.Attr(el.node, name)
}

// attr returns the attribute value, or "" when absent.
func (el *Element) attr(name string) string {
	v, _ := el.GetAttribute(name)
	return v
}

// HasAttribute reports whether the attribute is present.
func (el *Element) HasAttribute(name string) bool {
	_, ok := el.GetAttribute(name)
	return ok
}

// SetAttribute writes an attribute and raises the attribute signal.
func (el *Element) SetAttribute(name, value string) {
	if !el.isElement() || name == "" {
		return
	}
	tree.SetAttr(el.node, name, value)
	el.doc.propagate(el, signal{kind: signalAttribute, origin: el, attr: strings.ToLower(name)})
}

// RemoveAttribute deletes an attribute. The attribute signal is raised only
// when something was removed.
func (el *Element) RemoveAttribute(name string) {
	if !el.isElement() {
		return
	}
	if tree.RemoveAttr(el.node, name) {
		el.doc.propagate(el, signal{kind: signalAttribute, origin: el, attr: strings.ToLower(name)})
	}
}

// ToggleAttribute flips a boolean attribute. With force it sets presence
// explicitly. It returns whether the attribute is present afterwards.
func (el *Element) ToggleAttribute(name string, force ...bool) bool {
	present := el.HasAttribute(name)
	want := !present
	if len(force) > 0 {
		want = force[0]
	}
	switch {
	case want && !present:
		el.SetAttribute(name, "")
	case !want && present:
		el.RemoveAttribute(name)
	}
	return want
}

// Attributes returns a copy of the attribute list in document order.
func (el *Element) Attributes() []html.Attribute {
	out := make([]html.Attribute, len(el.node.Attr))
	copy(out, el.node.Attr)
	return out
}

// -- Reflected attributes --

func (el *Element) ID() string { return el.attr("id") }
func (el *Element) SetID(v string) { el.SetAttribute("id", v) }
func (el *Element) Name() string { return el.attr("name") }
func (el *Element) SetName(v string) { el.SetAttribute("name", v) }
func (el *Element) Type() string { return el.attr("type") }
func (el *Element) SetType(v string) { el.SetAttribute("type", v) }
func (el *Element) ClassName() string { return el.attr("class") }
func (el *Element) SetClassName(v string) { el.SetAttribute("class", v) }

// Disabled reports presence of the disabled attribute.
func (el *Element) Disabled() bool { return el.HasAttribute("disabled") }

// Open reports presence of the open attribute (details, dialog).
func (el *Element) Open() bool { return el.HasAttribute("open") }

// SetOpen adds or removes the open attribute.
func (el *Element) SetOpen(open bool) { el.ToggleAttribute("open", open) }

// Src returns the src attribute resolved against the document location, or
// "" when it is not set.
func (el *Element) Src() string { return el.resolvedURL("src") }

// SetSrc writes the src attribute and dispatches a bubbling load event.
func (el *Element) SetSrc(v string) {
	el.SetAttribute("src", v)
	_ = el.DispatchEvent(NewEvent(EventLoad, EventInit{Bubbles: true}))
}

// Href returns the href attribute resolved against the document location.
func (el *Element) Href() string { return el.resolvedURL("href") }

// SetHref writes the href attribute and dispatches a bubbling load event.
func (el *Element) SetHref(v string) {
	el.SetAttribute("href", v)
	_ = el.DispatchEvent(NewEvent(EventLoad, EventInit{Bubbles: true}))
}

func (el *Element) resolvedURL(attr string) string {
	raw := el.attr(attr)
	if raw == "" {
		return ""
	}
	return el.doc.location.Resolve(raw)
}

// Form returns the closest enclosing form, including el itself.
func (el *Element) Form() *Element {
	if !el.isElement() {
		return nil
	}
	return el.doc.wrap(tree.Closest(el.node, formSelector))
}

// -- Content --

// InnerHTML serializes the children.
func (el *Element) InnerHTML() string {
	s, err := tree.RenderInner(el.node)
	if err != nil {
		return ""
	}
	return s
}

// SetInnerHTML replaces the children with parsed markup.
func (el *Element) SetInnerHTML(markup string) error {
	if el.node.Type == html.TextNode || el.node.Type == html.CommentNode {
		return el.SetTextContent(markup)
	}
	removed, err := tree.SetInnerHTML(el.node, markup)
	if err != nil {
		return err
	}
	el.doc.detached(removed...)
	el.doc.propagate(el, signal{kind: signalStructure, origin: el})
	return nil
}

// OuterHTML serializes the node itself.
func (el *Element) OuterHTML() string {
	s, err := tree.Render(el.node)
	if err != nil {
		return ""
	}
	return s
}

// SetOuterHTML replaces the node with parsed markup. The wrapper is detached
// afterwards. A node without parent is left untouched.
func (el *Element) SetOuterHTML(markup string) error {
	parent := el.node.Parent
	if parent == nil {
		return nil
	}
	if parent == el.doc.root.node {
		return hierarchyError(el.iface(), "outerHTML", "The element's parent is the document.")
	}
	if _, err := tree.ReplaceWithHTML(el.node, markup); err != nil {
		return err
	}
	el.doc.detached(el.node)
	el.doc.propagate(el.doc.wrap(parent), signal{kind: signalStructure, origin: el.doc.wrap(parent)})
	return nil
}

// TextContent returns the concatenated descendant text. The document itself
// has no text content.
func (el *Element) TextContent() string {
	if el.NodeType() == DocumentNode {
		return ""
	}
	return tree.Text(el.node)
}

// SetTextContent replaces the children with a single text node. On text and
// comment nodes it replaces the node data.
func (el *Element) SetTextContent(text string) error {
	switch el.NodeType() {
	case DocumentNode, DocumentTypeNode:
		return nil
	case TextNode, CommentNode:
		el.node.Data = text
	default:
		el.doc.detached(tree.SetText(el.node, text)...)
	}
	el.doc.propagate(el, signal{kind: signalStructure, origin: el})
	return nil
}

// InnerText is TextContent. There is no rendering to derive visibility from.
func (el *Element) InnerText() string { return el.TextContent() }

// SetInnerText is SetTextContent.
func (el *Element) SetInnerText(text string) error { return el.SetTextContent(text) }

// Data returns the character data of text and comment nodes.
func (el *Element) Data() string {
	if el.node.Type == html.TextNode || el.node.Type == html.CommentNode {
		return el.node.Data
	}
	return ""
}

// -- Behaviour --

// Click simulates activation. Disabled elements ignore it. A summary toggles
// its enclosing details before the click event is dispatched.
func (el *Element) Click() {
	if el.Disabled() {
		return
	}
	if el.isElement() && el.node.Data == "summary" {
		if details := el.doc.wrap(tree.Closest(el.node, detailsSelector)); details != nil {
			details.SetOpen(!details.Open())
		}
	}
	_ = el.DispatchEvent(NewEvent(EventClick, EventInit{Bubbles: true}))
}

// Focus makes el the active element and dispatches a bubbling focus event.
// Disabled elements ignore it.
func (el *Element) Focus() {
	if el.Disabled() {
		return
	}
	el.doc.active = el
	_ = el.DispatchEvent(NewEvent(EventFocus, EventInit{Bubbles: true}))
}

// Blur clears focus if el holds it and dispatches a non-bubbling blur event.
func (el *Element) Blur() {
	if el.doc.active != el {
		return
	}
	el.doc.active = nil
	_ = el.DispatchEvent(NewEvent(EventBlur))
}

// RequestFullscreen asks the document to make el the fullscreen element.
func (el *Element) RequestFullscreen() {
	e := NewEvent(EventFullscreenChange, EventInit{Bubbles: true})
	e.Target = el
	_ = el.doc.DispatchEvent(e)
}

// -- Reflected views --

// Dataset returns the data-* attribute view.
func (el *Element) Dataset() *DOMStringMap {
	if el.dataset == nil {
		el.dataset = &DOMStringMap{el: el}
	}
	return el.dataset
}

// ClassList returns the class token view.
func (el *Element) ClassList() *DOMTokenList {
	if el.classList == nil {
		el.classList = &DOMTokenList{el: el, attr: "class"}
	}
	return el.classList
}

// Style returns the inline style view.
func (el *Element) Style() *CSSStyleDeclaration {
	if el.style == nil {
		el.style = &CSSStyleDeclaration{el: el}
	}
	return el.style
}

// -- Media --

// Media returns the playback controls of video and audio elements.
func (el *Element) Media() (*Media, bool) {
	if el.kind != KindMedia {
		return nil, false
	}
	return &Media{el: el}, true
}

// String implements fmt.Stringer for log output.
func (el *Element) String() string {
	if el == nil {
		return "<nil>"
	}
	if el.isElement() {
		var sb strings.Builder
		sb.WriteString(el.node.Data)
		if id := el.ID(); id != "" {
			sb.WriteString("#" + id)
		}
		for _, c := range strings.Fields(el.ClassName()) {
			sb.WriteString("." + c)
		}
		return sb.String()
	}
	return el.NodeName()
}
