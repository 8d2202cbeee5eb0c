// internal/browser/dom/registry.go
package dom

import (
	"golang.org/x/net/html"
)

// NodeID identifies a wrapper within its document. IDs start at 1 and are
// never reused.
type NodeID uint64

// registry is the arena of wrappers for one document. It is the only place
// wrappers are created, which is what makes wrapper identity meaningful:
// resolving the same backing node twice yields the same *Element.
type registry struct {
	ids   map[*html.Node]NodeID
	arena []*Element
}

func newRegistry() *registry {
	return &registry{ids: make(map[*html.Node]NodeID)}
}

// lookup returns the existing wrapper for n without creating one.
func (r *registry) lookup(n *html.Node) *Element {
	if id, ok := r.ids[n]; ok {
		return r.arena[id-1]
	}
	return nil
}

// byID returns the wrapper with the given id, or nil.
func (r *registry) byID(id NodeID) *Element {
	if id == 0 || int(id) > len(r.arena) {
		return nil
	}
	return r.arena[id-1]
}

// add registers a new wrapper built by newFn for n.
func (r *registry) add(n *html.Node, newFn func(NodeID) *Element) *Element {
	id := NodeID(len(r.arena) + 1)
	el := newFn(id)
	r.arena = append(r.arena, el)
	r.ids[n] = id
	return el
}

func (r *registry) len() int { return len(r.arena) }
