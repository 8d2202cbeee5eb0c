// internal/browser/dom/reflect.go
package dom

import (
	"strings"

	"github.com/xkilldash9x/domgraph/internal/browser/style"
)

// -- Dataset --

const dataPrefix = "data-"

// DatasetAttrName maps a dataset key to its attribute name:
// fooBar -> data-foo-bar.
func DatasetAttrName(key string) string {
	var sb strings.Builder
	sb.WriteString(dataPrefix)
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c >= 'A' && c <= 'Z' {
			sb.WriteByte('-')
			sb.WriteByte(c + ('a' - 'A'))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// DatasetKey maps a data- attribute name to its dataset key:
// data-foo-bar -> fooBar. It reports false for other attributes.
func DatasetKey(attr string) (string, bool) {
	if !strings.HasPrefix(attr, dataPrefix) {
		return "", false
	}
	rest := attr[len(dataPrefix):]
	var sb strings.Builder
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == '-' && i+1 < len(rest) && rest[i+1] >= 'a' && rest[i+1] <= 'z' {
			sb.WriteByte(rest[i+1] - ('a' - 'A'))
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String(), true
}

// DOMStringMap is the dataset view over an element's data- attributes.
type DOMStringMap struct {
	el *Element
}

// Get returns the value for key. An attribute present with an empty value
// is still present.
func (m *DOMStringMap) Get(key string) (string, bool) {
	return m.el.GetAttribute(DatasetAttrName(key))
}

// Set writes the attribute for key.
func (m *DOMStringMap) Set(key, value string) {
	m.el.SetAttribute(DatasetAttrName(key), value)
}

// Has reports whether key is present.
func (m *DOMStringMap) Has(key string) bool {
	return m.el.HasAttribute(DatasetAttrName(key))
}

// Delete removes the attribute for key.
func (m *DOMStringMap) Delete(key string) {
	m.el.RemoveAttribute(DatasetAttrName(key))
}

// Keys returns the dataset keys in attribute order.
func (m *DOMStringMap) Keys() []string {
	var keys []string
	for _, a := range m.el.node.Attr {
		if a.Namespace != "" {
			continue
		}
		if k, ok := DatasetKey(a.Key); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Len returns the number of dataset entries.
func (m *DOMStringMap) Len() int { return len(m.Keys()) }

// -- Token list --

// DOMTokenList is the ordered, duplicate-free token view over an attribute,
// normally class.
type DOMTokenList struct {
	el   *Element
	attr string
}

func (l *DOMTokenList) tokens() []string {
	raw, _ := l.el.GetAttribute(l.attr)
	var out []string
	for _, t := range strings.Fields(raw) {
		if !containsToken(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// write stores tokens. An empty set on an element without the attribute
// leaves it absent.
func (l *DOMTokenList) write(tokens []string) {
	if len(tokens) == 0 && !l.el.HasAttribute(l.attr) {
		return
	}
	l.el.SetAttribute(l.attr, strings.Join(tokens, " "))
}

// Len returns the number of tokens.
func (l *DOMTokenList) Len() int { return len(l.tokens()) }

// Item returns the token at index i, or "" when out of range.
func (l *DOMTokenList) Item(i int) string {
	t := l.tokens()
	if i < 0 || i >= len(t) {
		return ""
	}
	return t[i]
}

// Contains reports whether token is present.
func (l *DOMTokenList) Contains(token string) bool {
	return containsToken(l.tokens(), token)
}

// Add appends the tokens that are not yet present.
func (l *DOMTokenList) Add(tokens ...string) {
	cur := l.tokens()
	for _, t := range tokens {
		if t != "" && !containsToken(cur, t) {
			cur = append(cur, t)
		}
	}
	l.write(cur)
}

// Remove deletes the given tokens.
func (l *DOMTokenList) Remove(tokens ...string) {
	cur := l.tokens()
	out := cur[:0]
	for _, t := range cur {
		if !containsToken(tokens, t) {
			out = append(out, t)
		}
	}
	l.write(out)
}

// Toggle flips token. With force it adds (true) or removes (false). It
// returns whether the token is present afterwards.
func (l *DOMTokenList) Toggle(token string, force ...bool) bool {
	want := !l.Contains(token)
	if len(force) > 0 {
		want = force[0]
	}
	if want {
		l.Add(token)
	} else {
		l.Remove(token)
	}
	return want
}

// Replace swaps oldToken for newToken in place. It reports whether oldToken
// was present.
func (l *DOMTokenList) Replace(oldToken, newToken string) bool {
	cur := l.tokens()
	idx := -1
	for i, t := range cur {
		if t == oldToken {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	out := make([]string, 0, len(cur))
	for i, t := range cur {
		switch {
		case i == idx:
			if !containsToken(out, newToken) {
				out = append(out, newToken)
			}
		case t == newToken:
		default:
			out = append(out, t)
		}
	}
	l.write(out)
	return true
}

// Values returns the tokens in order.
func (l *DOMTokenList) Values() []string { return l.tokens() }

// String returns the space-joined tokens.
func (l *DOMTokenList) String() string { return strings.Join(l.tokens(), " ") }

// -- Style --

// CSSStyleDeclaration is the view over an element's style attribute.
type CSSStyleDeclaration struct {
	el *Element
}

func (s *CSSStyleDeclaration) block() *style.Inline {
	raw, _ := s.el.GetAttribute("style")
	return style.ParseInline(raw)
}

func (s *CSSStyleDeclaration) write(b *style.Inline) {
	if b.Len() == 0 {
		s.el.RemoveAttribute("style")
		return
	}
	s.el.SetAttribute("style", b.String())
}

// GetPropertyValue returns the value of a CSS property, or "".
func (s *CSSStyleDeclaration) GetPropertyValue(name string) string {
	v, _ := s.block().Get(name)
	return v
}

// GetPropertyPriority returns "important" or "".
func (s *CSSStyleDeclaration) GetPropertyPriority(name string) string {
	return s.block().Priority(name)
}

// SetProperty writes a CSS property. An empty value removes it. A priority
// of "important" marks the declaration !important.
func (s *CSSStyleDeclaration) SetProperty(name, value string, priority ...string) {
	important := len(priority) > 0 && strings.EqualFold(priority[0], "important")
	b := s.block()
	b.Set(name, value, important)
	s.write(b)
}

// RemoveProperty deletes a CSS property and returns its former value.
func (s *CSSStyleDeclaration) RemoveProperty(name string) string {
	b := s.block()
	v, ok := b.Remove(name)
	if ok {
		s.write(b)
	}
	return v
}

// Get reads a property by its scripting name, e.g. backgroundColor.
func (s *CSSStyleDeclaration) Get(name string) string {
	return s.GetPropertyValue(style.CamelToKebab(name))
}

// Set writes a property by its scripting name.
func (s *CSSStyleDeclaration) Set(name, value string) {
	s.SetProperty(style.CamelToKebab(name), value)
}

// Len returns the number of declarations.
func (s *CSSStyleDeclaration) Len() int { return s.block().Len() }

// Item returns the property name at index i, or "".
func (s *CSSStyleDeclaration) Item(i int) string { return s.block().Item(i) }

// CSSText returns the serialized declarations.
func (s *CSSStyleDeclaration) CSSText() string { return s.block().String() }

// SetCSSText replaces all declarations.
func (s *CSSStyleDeclaration) SetCSSText(text string) {
	s.write(style.ParseInline(text))
}
