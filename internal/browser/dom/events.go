// internal/browser/dom/events.go
package dom

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Event types raised by the object graph itself.
const (
	EventClick            = "click"
	EventFocus            = "focus"
	EventBlur             = "blur"
	EventLoad             = "load"
	EventScroll           = "scroll"
	EventFullscreenChange = "fullscreenchange"
)

// Event is a transient notification. The same value travels the whole
// bubbling path, so listeners observe CurrentTarget changing between calls.
type Event struct {
	Type          string
	Bubbles       bool
	Target        *Element
	CurrentTarget *Element
	// Detail carries the payload of custom events.
	Detail any
}

// EventInit holds the optional fields of NewEvent.
type EventInit struct {
	Bubbles bool
	Detail  any
}

// NewEvent builds an event of the given type.
func NewEvent(typ string, init ...EventInit) *Event {
	e := &Event{Type: typ}
	if len(init) > 0 {
		e.Bubbles = init[0].Bubbles
		e.Detail = init[0].Detail
	}
	return e
}

// Listener handles an event.
type Listener func(*Event)

// ListenerID identifies a registration for RemoveEventListener.
type ListenerID uint64

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// eventChannel is a per-type listener table.
type eventChannel map[string][]listenerEntry

func (c *eventChannel) add(typ string, id ListenerID, fn Listener) {
	if *c == nil {
		*c = make(eventChannel)
	}
	(*c)[typ] = append((*c)[typ], listenerEntry{id: id, fn: fn})
}

func (c eventChannel) remove(typ string, id ListenerID) bool {
	entries := c[typ]
	for i, e := range entries {
		if e.id == id {
			c[typ] = append(entries[:i:i], entries[i+1:]...)
			return true
		}
	}
	return false
}

// emit invokes the listeners registered for e.Type at the moment of the
// call. Listeners added or removed by a handler take effect on the next emit.
func (c eventChannel) emit(e *Event) {
	entries := c[e.Type]
	if len(entries) == 0 {
		return
	}
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	for _, entry := range snapshot {
		entry.fn(e)
	}
}

// AddEventListener registers fn for events of type typ on el.
func (el *Element) AddEventListener(typ string, fn Listener) ListenerID {
	if fn == nil {
		return 0
	}
	id := el.doc.nextListenerID()
	el.listeners.add(typ, id, fn)
	return id
}

// RemoveEventListener drops a registration. Unknown ids are ignored.
func (el *Element) RemoveEventListener(typ string, id ListenerID) {
	el.listeners.remove(typ, id)
}

// DispatchEvent delivers e to el and, for bubbling events, to each ancestor
// up to the document node. Target is set to el when unset. An event whose
// Target was already set to another element reaches el only.
func (el *Element) DispatchEvent(e *Event) error {
	if e == nil {
		return argumentMissing("EventTarget", "dispatchEvent", 1, "Event")
	}
	bubbles := e.Bubbles
	switch e.Target {
	case nil:
		e.Target = el
	case el:
	default:
		bubbles = false
	}
	el.doc.deliver(el, e, bubbles)
	return nil
}

// deliver runs the walk starting at from, climbing to the document node when
// bubbles is set.
func (d *Document) deliver(from *Element, e *Event, bubbles bool) {
	for n := from.node; n != nil; n = n.Parent {
		var current *Element
		if n == from.node {
			current = from
		} else {
			current = d.wrap(n)
		}
		e.CurrentTarget = current
		current.listeners.emit(e)
		if current == d.root {
			d.handleDocumentEvent(e)
		}
		if !bubbles {
			return
		}
	}
}

// handleDocumentEvent applies document-level default behaviour.
func (d *Document) handleDocumentEvent(e *Event) {
	if e.Type != EventFullscreenChange || e.Target == nil {
		return
	}
	if e.Target == d.root {
		return
	}
	if d.fullscreen == e.Target {
		d.fullscreen = nil
	} else {
		d.fullscreen = e.Target
	}
	d.logger.Debug("fullscreen element changed", zap.Stringer("element", d.fullscreen))
}

// -- Internal signals --

type signalKind int

const (
	signalStructure signalKind = iota
	signalAttribute
)

func (k signalKind) String() string {
	if k == signalAttribute {
		return "attribute"
	}
	return "structure"
}

// signal is the internal change notification relayed up the ancestor chain.
type signal struct {
	kind   signalKind
	origin *Element
	attr   string
}

type signalSubscriber struct {
	id uint64
	fn func(signal)
}

// subscribe registers fn for every signal reaching el, whether raised on el
// or relayed from a descendant. The returned func cancels the subscription.
func (el *Element) subscribe(fn func(signal)) func() {
	id := uint64(el.doc.nextListenerID())
	el.signals = append(el.signals, signalSubscriber{id: id, fn: fn})
	return func() {
		for i, s := range el.signals {
			if s.id == id {
				el.signals = append(el.signals[:i:i], el.signals[i+1:]...)
				return
			}
		}
	}
}

func (el *Element) notify(sig signal) {
	if len(el.signals) == 0 {
		return
	}
	subs := make([]signalSubscriber, len(el.signals))
	copy(subs, el.signals)
	for _, s := range subs {
		s.fn(sig)
	}
}

// propagate delivers sig at target and at every ancestor up to and including
// the document node. Ancestors that were never wrapped have no subscribers
// and are skipped without creating a wrapper.
func (d *Document) propagate(target *Element, sig signal) {
	if target == nil {
		return
	}
	target.notify(sig)
	for n := target.node.Parent; n != nil; n = n.Parent {
		if el := d.registry.lookup(n); el != nil {
			el.notify(sig)
		}
	}
}

// structureChanged raises the structure signal on every distinct parent.
func (d *Document) structureChanged(parents ...*html.Node) {
	seen := make(map[*html.Node]bool, len(parents))
	for _, p := range parents {
		if p == nil || seen[p] {
			continue
		}
		seen[p] = true
		el := d.wrap(p)
		d.propagate(el, signal{kind: signalStructure, origin: el})
	}
}
