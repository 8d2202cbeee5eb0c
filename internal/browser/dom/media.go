// internal/browser/dom/media.go
package dom

// Media exposes the playback surface of video and audio elements. There is
// no media pipeline behind it: playback calls succeed and do nothing.
type Media struct {
	el *Element
}

// Element returns the wrapped media element.
func (m *Media) Element() *Element { return m.el }

// Play resolves immediately.
func (m *Media) Play() error { return nil }

// Pause does nothing.
func (m *Media) Pause() {}

// Load does nothing.
func (m *Media) Load() {}

// CanPlayType answers "maybe" for every type.
func (m *Media) CanPlayType(string) string { return "maybe" }
