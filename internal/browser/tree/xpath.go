// internal/browser/tree/xpath.go
package tree

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// UniqueXPath generates a stable XPath expression selecting node. The nearest
// ancestor-or-self carrying an id is used as the anchor, so the path stays
// short and survives unrelated edits above it.
func UniqueXPath(node *html.Node) string {
	if node == nil {
		return ""
	}

	var path []string
	anchored := false
	for n := node; n != nil && n.Type != html.DocumentNode; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}

		tag := strings.ToLower(n.Data)
		if tag == "" {
			continue
		}

		if id, ok := Attr(n, "id"); ok && id != "" {
			path = append(path, "//*[@id="+XPathLiteral(id)+"]")
			anchored = true
			break
		}

		// XPath indices are 1-based and count same-tag siblings only.
		index := 1
		for prev := n.PrevSibling; prev != nil; prev = prev.PrevSibling {
			if prev.Type == html.ElementNode && strings.ToLower(prev.Data) == tag {
				index++
			}
		}
		path = append(path, fmt.Sprintf("%s[%d]", tag, index))
	}

	if len(path) == 0 {
		return "/"
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	xpath := strings.Join(path, "/")
	if !anchored {
		xpath = "/" + xpath
	}
	return xpath
}
