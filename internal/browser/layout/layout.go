// internal/browser/layout/layout.go
package layout

import "math"

// -- Constants and Configuration --

// DefaultTop is the edge value given to elements that have never been
// positioned. It keeps unpositioned elements far below any viewport.
const DefaultTop = 99999.0

// Axis represents a scroll direction.
type Axis int

const (
	// Horizontal axis, driven by scrollLeft.
	Horizontal Axis = iota
	// Vertical axis, driven by scrollTop.
	Vertical
)

// String returns the axis name used in log fields.
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// -- Core Structures --

// Rect is a synthetic client rectangle. Width and Height are derived from the
// edges and only recomputed by Merge.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectPatch carries the edges to merge into a Rect. Nil fields are left alone.
type RectPatch struct {
	Top    *float64
	Left   *float64
	Right  *float64
	Bottom *float64
}

// Offset holds the scroll position of an element.
type Offset struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// DefaultRect returns the rectangle an element starts with.
func DefaultRect() Rect {
	return NewRect(DefaultTop, 0, 0, DefaultTop)
}

// NewRect builds a rectangle from its edges.
func NewRect(top, left, right, bottom float64) Rect {
	return Rect{
		Top:    top,
		Left:   left,
		Right:  right,
		Bottom: bottom,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Edges is a convenience constructor for a fully populated patch.
func Edges(top, left, right, bottom float64) RectPatch {
	return RectPatch{Top: &top, Left: &left, Right: &right, Bottom: &bottom}
}

// Value returns a pointer to v, for building partial patches inline.
func Value(v float64) *float64 { return &v }

// Merge applies the patch to r. A missing Bottom follows a given Top, so
// {Top: 10} collapses the rectangle to zero height at 10.
func (r Rect) Merge(p RectPatch) Rect {
	if p.Top != nil {
		r.Top = *p.Top
		if p.Bottom == nil {
			r.Bottom = *p.Top
		}
	}
	if p.Bottom != nil {
		r.Bottom = *p.Bottom
	}
	if p.Left != nil {
		r.Left = *p.Left
	}
	if p.Right != nil {
		r.Right = *p.Right
	}
	r.Width = r.Right - r.Left
	r.Height = r.Bottom - r.Top
	return r
}

// Shifted moves the rectangle by delta along the axis. Size is preserved.
func (r Rect) Shifted(axis Axis, delta float64) Rect {
	if axis == Horizontal {
		r.Left += delta
		r.Right += delta
		return r
	}
	r.Top += delta
	r.Bottom += delta
	return r
}

// GetMainSize is an axis-agnostic helper for Rect.
func (r Rect) GetMainSize(axis Axis) float64 {
	if axis == Horizontal {
		return r.Width
	}
	return r.Height
}

// Get returns the offset along the axis.
func (o Offset) Get(axis Axis) float64 {
	if axis == Horizontal {
		return o.Left
	}
	return o.Top
}

// With returns a copy of o with the axis component replaced.
func (o Offset) With(axis Axis, v float64) Offset {
	if axis == Horizontal {
		o.Left = v
	} else {
		o.Top = v
	}
	return o
}

// ClampScroll limits a requested scroll position to [0, scrollSize-clientSize].
// When the content is smaller than the box the only valid position is 0.
func ClampScroll(value, scrollSize, clientSize float64) float64 {
	limit := scrollSize - clientSize
	if value > limit {
		value = limit
	}
	return math.Max(value, 0)
}

// ContentSize sums the main-axis size of the given child rectangles.
func ContentSize(axis Axis, children []Rect) float64 {
	total := 0.0
	for _, c := range children {
		total += c.GetMainSize(axis)
	}
	return total
}
