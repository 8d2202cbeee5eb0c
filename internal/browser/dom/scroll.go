// internal/browser/dom/scroll.go
package dom

import (
	"go.uber.org/zap"

	"github.com/xkilldash9x/domgraph/internal/browser/layout"
	"github.com/xkilldash9x/domgraph/internal/browser/tree"
)

// GetBoundingClientRect returns a copy of the recorded rectangle.
func (el *Element) GetBoundingClientRect() layout.Rect { return el.rect }

// SetBoundingClientRect merges the given edges into the recorded rectangle.
// Width and Height are recomputed from the edges.
func (el *Element) SetBoundingClientRect(p layout.RectPatch) {
	el.rect = el.rect.Merge(p)
}

// OffsetWidth returns the recorded width.
func (el *Element) OffsetWidth() float64 { return el.rect.Width }

// OffsetHeight returns the recorded height.
func (el *Element) OffsetHeight() float64 { return el.rect.Height }

// ScrollWidth returns the summed widths of the element children.
func (el *Element) ScrollWidth() float64 { return el.scrollSize(layout.Horizontal) }

// ScrollHeight returns the summed heights of the element children.
func (el *Element) ScrollHeight() float64 { return el.scrollSize(layout.Vertical) }

func (el *Element) scrollSize(axis layout.Axis) float64 {
	children := tree.ElementChildren(el.node)
	rects := make([]layout.Rect, 0, len(children))
	for _, c := range children {
		rects = append(rects, el.doc.wrap(c).rect)
	}
	return layout.ContentSize(axis, rects)
}

// ScrollLeft returns the horizontal scroll offset.
func (el *Element) ScrollLeft() float64 { return el.scroll.Left }

// ScrollTop returns the vertical scroll offset.
func (el *Element) ScrollTop() float64 { return el.scroll.Top }

// SetScrollLeft scrolls horizontally. See setScroll.
func (el *Element) SetScrollLeft(v float64) { el.setScroll(layout.Horizontal, v) }

// SetScrollTop scrolls vertically. See setScroll.
func (el *Element) SetScrollTop(v float64) { el.setScroll(layout.Vertical, v) }

// setScroll clamps v into the scrollable range, shifts the rectangles of the
// registered scroll targets by the change, stores the new offset and
// dispatches a bubbling scroll event.
func (el *Element) setScroll(axis layout.Axis, v float64) {
	next := layout.ClampScroll(v, el.scrollSize(axis), el.rect.GetMainSize(axis))
	delta := el.scroll.Get(axis) - next

	if el.toScroll != nil && delta != 0 {
		targets := el.toScroll(el.doc)
		for _, t := range targets {
			if t == nil {
				continue
			}
			t.rect = t.rect.Shifted(axis, delta)
		}
		el.doc.logger.Debug("scroll cascade",
			zap.Uint64("node_id", uint64(el.id)),
			zap.Stringer("axis", axis),
			zap.Float64("delta", delta),
			zap.Int("targets", len(targets)))
	}

	el.scroll = el.scroll.With(axis, next)
	_ = el.DispatchEvent(NewEvent(EventScroll, EventInit{Bubbles: true}))
}

// SetElementsToScroll registers the resolver consulted on every scroll of
// el. The resolver runs at scroll time, so it sees the current tree.
func (el *Element) SetElementsToScroll(resolver func(*Document) []*Element) {
	el.toScroll = resolver
}

// ClearElementsToScroll drops the resolver.
func (el *Element) ClearElementsToScroll() { el.toScroll = nil }
