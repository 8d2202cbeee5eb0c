// internal/browser/style/inline.go
package style

import (
	"strings"

	"github.com/xkilldash9x/domgraph/internal/browser/parser"
)

// Inline is the ordered declaration block of a style attribute. Property
// names are unique; setting an existing property replaces it in place.
type Inline struct {
	decls []parser.Declaration
}

// ParseInline builds a block from a style attribute value. Later duplicates
// win, as in the cascade.
func ParseInline(styleAttr string) *Inline {
	s := &Inline{}
	for _, d := range parser.ParseDeclarations(styleAttr) {
		s.Set(d.Property, d.Value, d.Important)
	}
	return s
}

func (s *Inline) index(prop string) int {
	for i, d := range s.decls {
		if d.Property == prop {
			return i
		}
	}
	return -1
}

// Get returns the value of a property.
func (s *Inline) Get(prop string) (string, bool) {
	if i := s.index(normalize(prop)); i >= 0 {
		return s.decls[i].Value, true
	}
	return "", false
}

// Priority returns "important" for !important declarations and "" otherwise.
func (s *Inline) Priority(prop string) string {
	if i := s.index(normalize(prop)); i >= 0 && s.decls[i].Important {
		return "important"
	}
	return ""
}

// Set adds or replaces a declaration. An empty value removes the property.
func (s *Inline) Set(prop, value string, important bool) {
	prop = normalize(prop)
	value = strings.TrimSpace(value)
	if prop == "" {
		return
	}
	if value == "" {
		s.Remove(prop)
		return
	}
	d := parser.Declaration{Property: prop, Value: value, Important: important}
	if i := s.index(prop); i >= 0 {
		s.decls[i] = d
		return
	}
	s.decls = append(s.decls, d)
}

// Remove deletes a property and returns its previous value.
func (s *Inline) Remove(prop string) (string, bool) {
	i := s.index(normalize(prop))
	if i < 0 {
		return "", false
	}
	old := s.decls[i].Value
	s.decls = append(s.decls[:i], s.decls[i+1:]...)
	return old, true
}

// Len returns the number of declarations.
func (s *Inline) Len() int { return len(s.decls) }

// Item returns the property name at position i, or "" when out of range.
func (s *Inline) Item(i int) string {
	if i < 0 || i >= len(s.decls) {
		return ""
	}
	return s.decls[i].Property
}

// Properties lists property names in declaration order.
func (s *Inline) Properties() []string {
	out := make([]string, len(s.decls))
	for i, d := range s.decls {
		out[i] = d.Property
	}
	return out
}

// String serializes the block as "prop: value;" pairs separated by spaces.
func (s *Inline) String() string {
	parts := make([]string, len(s.decls))
	for i, d := range s.decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}

func normalize(prop string) string {
	prop = strings.TrimSpace(prop)
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	return strings.ToLower(prop)
}

// -- Property name conversion --

// CamelToKebab converts a scripting property name to its CSS form:
// backgroundColor -> background-color, cssFloat -> float,
// WebkitTransform -> -webkit-transform. Names already containing a dash are
// returned unchanged.
func CamelToKebab(name string) string {
	if name == "cssFloat" {
		return "float"
	}
	if strings.Contains(name, "-") {
		return name
	}
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			sb.WriteByte('-')
			sb.WriteByte(c + ('a' - 'A'))
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// KebabToCamel is the inverse of CamelToKebab. Custom properties are
// returned unchanged.
func KebabToCamel(name string) string {
	if name == "float" {
		return "cssFloat"
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	name = strings.TrimPrefix(name, "-")
	var sb strings.Builder
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '-' {
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		sb.WriteByte(c)
	}
	out := sb.String()
	if strings.HasPrefix(out, "webkit") || strings.HasPrefix(out, "moz") {
		return strings.ToUpper(out[:1]) + out[1:]
	}
	return out
}
