// internal/browser/dom/document.go

// Package dom is a headless object graph over a parsed HTML tree. Every
// backing node resolves to exactly one *Element wrapper per Document, so
// wrappers can be compared by identity and carry state the tree cannot hold:
// event listeners, simulated layout and scroll offsets.
//
// A Document is single-threaded. Handlers run synchronously inside the call
// that triggered them and may re-enter the graph.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/domgraph/internal/browser/cookies"
	"github.com/xkilldash9x/domgraph/internal/browser/layout"
	"github.com/xkilldash9x/domgraph/internal/browser/location"
	"github.com/xkilldash9x/domgraph/internal/browser/tree"
)

// CookieJar is the cookie store behind document.cookie.
type CookieJar interface {
	CookieString(scope cookies.Scope) string
	SetCookie(raw string) error
}

// Options configures NewDocument. The zero value gives an about:blank
// document with an in-memory jar and a no-op logger.
type Options struct {
	// URL is the document address. It resolves Src and Href and scopes
	// cookies.
	URL      string
	Referrer string
	// CookieJar replaces the default in-memory jar.
	CookieJar CookieJar
	Logger    *zap.Logger
	// DefaultRect is the initial rectangle of every wrapper.
	DefaultRect *layout.Rect
}

// Document owns a backing tree and the registry of its wrappers.
type Document struct {
	id       uuid.UUID
	logger   *zap.Logger
	registry *registry
	root     *Element

	location    location.Location
	referrer    string
	jar         CookieJar
	defaultRect layout.Rect

	fullscreen *Element
	active     *Element

	listenerSeq uint64
}

// NewDocument parses markup into a new document.
func NewDocument(markup string, opts Options) (*Document, error) {
	return NewDocumentFromReader(strings.NewReader(markup), opts)
}

// NewDocumentFromReader parses a document from r.
func NewDocumentFromReader(r io.Reader, opts Options) (*Document, error) {
	loc, err := location.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid document URL: %w", err)
	}
	node, err := tree.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	d := &Document{
		id:          uuid.New(),
		registry:    newRegistry(),
		location:    loc,
		referrer:    opts.Referrer,
		defaultRect: layout.DefaultRect(),
	}
	if opts.DefaultRect != nil {
		d.defaultRect = *opts.DefaultRect
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	d.logger = logger.Named("dom").With(zap.String("document_id", d.id.String()))

	d.jar = opts.CookieJar
	if d.jar == nil {
		jar, err := cookies.NewJar(loc, d.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		d.jar = jar
	}

	d.root = d.wrap(node)
	d.logger.Debug("document created", zap.String("url", loc.Href()))
	return d, nil
}

// wrap resolves a backing node to its canonical wrapper, creating it on first
// access. wrap(nil) is nil.
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if el := d.registry.lookup(n); el != nil {
		return el
	}
	el := d.registry.add(n, func(id NodeID) *Element { return newElement(d, n, id) })
	if ce := d.logger.Check(zap.DebugLevel, "wrapper created"); ce != nil {
		ce.Write(zap.Uint64("node_id", uint64(el.id)), zap.Stringer("node", el))
	}
	return el
}

func (d *Document) wrapAll(nodes []*html.Node) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.wrap(n))
	}
	return out
}

func (d *Document) nextListenerID() ListenerID {
	d.listenerSeq++
	return ListenerID(d.listenerSeq)
}

// ID returns the document's log correlation id.
func (d *Document) ID() uuid.UUID { return d.id }

// Node returns the wrapper of the document node itself.
func (d *Document) Node() *Element { return d.root }

// NodeByID resolves a NodeID back to its wrapper.
func (d *Document) NodeByID(id NodeID) *Element { return d.registry.byID(id) }

// WrapperCount returns the number of wrappers created so far.
func (d *Document) WrapperCount() int { return d.registry.len() }

// Location returns the document address.
func (d *Document) Location() location.Location { return d.location }

// Referrer returns the referrer given at construction.
func (d *Document) Referrer() string { return d.referrer }

// -- Structure --

// DocumentElement returns the html element.
func (d *Document) DocumentElement() *Element {
	return d.wrap(tree.FirstElementChild(d.root.node))
}

func (d *Document) childOfRoot(tag string) *Element {
	docEl := tree.FirstElementChild(d.root.node)
	if docEl == nil {
		return nil
	}
	for _, c := range tree.ElementChildren(docEl) {
		if c.Data == tag {
			return d.wrap(c)
		}
	}
	return nil
}

// Head returns the head element.
func (d *Document) Head() *Element { return d.childOfRoot("head") }

// Body returns the body element.
func (d *Document) Body() *Element { return d.childOfRoot("body") }

// Title returns the whitespace-collapsed text of head > title.
func (d *Document) Title() string {
	n := tree.QueryFirst(d.root.node, titleSelector)
	if n == nil {
		return ""
	}
	return strings.Join(strings.Fields(tree.Text(n)), " ")
}

// SetTitle writes the title text, creating the title element when missing.
func (d *Document) SetTitle(title string) {
	el := d.wrap(tree.QueryFirst(d.root.node, titleSelector))
	if el == nil {
		head := d.Head()
		if head == nil {
			return
		}
		el = d.CreateElement("title")
		if _, err := head.AppendChild(el); err != nil {
			return
		}
	}
	_ = el.SetTextContent(title)
}

// TextContent is always empty for a document.
func (d *Document) TextContent() string { return "" }

// Render serializes the whole document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root.node)
}

// Contains reports whether el belongs to this document and is attached.
func (d *Document) Contains(el *Element) bool {
	return el != nil && el.doc == d && tree.Contains(d.root.node, el.node)
}

// -- Factories --

// CreateElement creates a detached HTML element.
func (d *Document) CreateElement(tag string) *Element {
	return d.wrap(tree.NewElement(tag))
}

// Namespace URIs accepted by CreateElementNS.
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
)

// CreateElementNS creates a detached element in the given namespace. SVG and
// MathML tags keep their case.
func (d *Document) CreateElementNS(namespace, tag string) *Element {
	switch namespace {
	case "", NamespaceHTML:
		return d.CreateElement(tag)
	case NamespaceSVG:
		return d.wrap(&html.Node{Type: html.ElementNode, Data: tag, Namespace: "svg"})
	case NamespaceMathML:
		return d.wrap(&html.Node{Type: html.ElementNode, Data: tag, Namespace: "math"})
	}
	return d.wrap(&html.Node{Type: html.ElementNode, Data: tag, Namespace: namespace})
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) *Element {
	return d.wrap(tree.NewText(text))
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(data string) *Element {
	return d.wrap(tree.NewComment(data))
}

// CreateDocumentFragment creates an empty fragment.
func (d *Document) CreateDocumentFragment() *Element {
	return d.wrap(tree.NewFragment())
}

// ImportNode copies a node, possibly from another document, into this one.
func (d *Document) ImportNode(node *Element, deep bool) (*Element, error) {
	if node == nil {
		return nil, argumentMissing("Document", "importNode", 1, "Node")
	}
	if node.NodeType() == DocumentNode {
		return nil, hierarchyError("Document", "importNode", "The node provided is a document, which may not be imported.")
	}
	return d.wrap(tree.Clone(node.node, deep)), nil
}

// -- Queries --

// GetElementById returns the first element with the given id.
func (d *Document) GetElementById(id string) *Element {
	return d.wrap(tree.FindByID(d.root.node, id))
}

// GetElementsByTagName returns a live collection.
func (d *Document) GetElementsByTagName(name string) *HTMLCollection {
	return d.root.GetElementsByTagName(name)
}

// GetElementsByClassName returns a live collection.
func (d *Document) GetElementsByClassName(names string) *HTMLCollection {
	return d.root.GetElementsByClassName(names)
}

// GetElementsByName returns the elements whose name attribute or id equals
// name.
func (d *Document) GetElementsByName(name string) *NodeList {
	return newNodeList(d, tree.FindAll(d.root.node, func(n *html.Node) bool {
		if v, ok := tree.Attr(n, "name"); ok && v == name {
			return true
		}
		v, ok := tree.Attr(n, "id")
		return ok && v == name
	}))
}

// QuerySelector returns the first element matching selector.
func (d *Document) QuerySelector(selector string) (*Element, error) {
	return d.root.QuerySelector(selector)
}

// QuerySelectorAll returns a static list of matching elements.
func (d *Document) QuerySelectorAll(selector string) (*NodeList, error) {
	return d.root.QuerySelectorAll(selector)
}

// Forms returns a live collection of the form elements.
func (d *Document) Forms() *HTMLCollection {
	return d.root.GetElementsByTagName("form")
}

// -- Cookies --

// Cookie returns the cookies visible to this document as "a=1; b=2".
func (d *Document) Cookie() string {
	return d.jar.CookieString(cookies.ScopeFor(d.location))
}

// SetCookie stores one Set-Cookie style string. Rejected cookies are
// dropped.
func (d *Document) SetCookie(raw string) {
	if err := d.jar.SetCookie(raw); err != nil {
		d.logger.Debug("cookie rejected", zap.Error(err))
	}
}

// -- Events, focus and fullscreen --

// AddEventListener registers fn on the document node.
func (d *Document) AddEventListener(typ string, fn Listener) ListenerID {
	return d.root.AddEventListener(typ, fn)
}

// RemoveEventListener drops a document-level registration.
func (d *Document) RemoveEventListener(typ string, id ListenerID) {
	d.root.RemoveEventListener(typ, id)
}

// DispatchEvent delivers e at the document node.
func (d *Document) DispatchEvent(e *Event) error {
	if e == nil {
		return argumentMissing("EventTarget", "dispatchEvent", 1, "Event")
	}
	return d.root.DispatchEvent(e)
}

// ActiveElement returns the last focused element, or nil.
func (d *Document) ActiveElement() *Element { return d.active }

// FullscreenElement returns the current fullscreen element, or nil.
func (d *Document) FullscreenElement() *Element { return d.fullscreen }

// ExitFullscreen dispatches fullscreenchange for the current fullscreen
// element, which clears it.
func (d *Document) ExitFullscreen() {
	e := NewEvent(EventFullscreenChange, EventInit{Bubbles: true})
	e.Target = d.fullscreen
	if e.Target == nil {
		return
	}
	_ = d.DispatchEvent(e)
}
