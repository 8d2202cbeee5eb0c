// internal/browser/parser/declarations.go
package parser

import (
	"strings"
)

const importantSuffix = "!important"

// Declaration is a key-value pair (e.g., display: none).
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// String serializes the declaration the way it appears in a style attribute.
func (d Declaration) String() string {
	var sb strings.Builder
	sb.WriteString(d.Property)
	sb.WriteString(": ")
	sb.WriteString(d.Value)
	if d.Important {
		sb.WriteString(" " + importantSuffix)
	}
	sb.WriteByte(';')
	return sb.String()
}

// ParseDeclarations parses a declaration list such as the body of a style
// attribute. Malformed declarations are dropped, never reported: a missing
// colon, an empty value, a property that is not an identifier, or a value
// left open by an unterminated string or parenthesis.
func ParseDeclarations(input string) []Declaration {
	var declarations []Declaration
	for _, chunk := range splitDeclarations(input) {
		if d, ok := parseDeclaration(chunk); ok {
			declarations = append(declarations, d)
		}
	}
	return declarations
}

// splitDeclarations cuts input at top-level semicolons. Semicolons inside
// quotes and parentheses (url(data:...;base64,...)) stay in the value.
// Comments outside quotes are removed. A chunk still inside a string or a
// parenthesis at end of input is discarded.
func splitDeclarations(input string) []string {
	var (
		chunks []string
		cur    strings.Builder
		quote  byte
		depth  int
	)
	for i := 0; i < len(input); i++ {
		c := input[i]
		if quote != 0 {
			cur.WriteByte(c)
			switch {
			case c == '\\' && i+1 < len(input):
				i++
				cur.WriteByte(input[i])
			case c == quote:
				quote = 0
			}
			continue
		}

		switch {
		case c == '/' && strings.HasPrefix(input[i:], "/*"):
			end := strings.Index(input[i+2:], "*/")
			if end < 0 {
				i = len(input)
				continue
			}
			i += end + 3
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			if depth > 0 {
				depth--
			}
			cur.WriteByte(c)
		case c == ';' && depth == 0:
			chunks = append(chunks, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if quote == 0 && depth == 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// parseDeclaration reads a single 'property: value' chunk.
func parseDeclaration(chunk string) (Declaration, bool) {
	colon := strings.IndexByte(chunk, ':')
	if colon < 0 {
		return Declaration{}, false
	}
	prop := strings.TrimSpace(chunk[:colon])
	if !isIdentifier(prop) {
		return Declaration{}, false
	}

	val := strings.TrimSpace(chunk[colon+1:])
	important := false
	if n := len(val) - len(importantSuffix); n >= 0 && strings.EqualFold(val[n:], importantSuffix) {
		important = true
		val = strings.TrimSpace(val[:n])
	}
	if val == "" {
		return Declaration{}, false
	}
	return Declaration{Property: normalizeProperty(prop), Value: val, Important: important}, true
}

// normalizeProperty lowercases standard property names. Custom properties
// (--name) are case-sensitive and kept verbatim.
func normalizeProperty(prop string) string {
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	return strings.ToLower(prop)
}

func isIdentifier(s string) bool {
	if s == "" || !isIdentifierStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentifierStart(s[i]) && (s[i] < '0' || s[i] > '9') {
			return false
		}
	}
	return true
}

func isIdentifierStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '-'
}
