// internal/browser/location/location.go
package location

import (
	"fmt"
	"net/url"
	"strings"
)

// Blank is the location of a document that was not loaded from anywhere.
const Blank = "about:blank"

// Location is an immutable view of a document URL, exposing the accessors a
// page sees on window.location.
type Location struct {
	u *url.URL
}

// Parse builds a Location from an absolute URL. An empty string yields Blank.
func Parse(raw string) (Location, error) {
	if strings.TrimSpace(raw) == "" {
		raw = Blank
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("invalid document url %q: %w", raw, err)
	}
	if u.Scheme == "" {
		return Location{}, fmt.Errorf("document url %q is not absolute", raw)
	}
	return Location{u: u}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// constants.
func MustParse(raw string) Location {
	l, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return l
}

func (l Location) url() *url.URL {
	if l.u == nil {
		u, _ := url.Parse(Blank)
		return u
	}
	return l.u
}

// Protocol returns the scheme followed by a colon, e.g. "https:".
func (l Location) Protocol() string { return l.url().Scheme + ":" }

// Host returns hostname and optional port.
func (l Location) Host() string { return l.url().Host }

// Hostname returns the host without port.
func (l Location) Hostname() string { return l.url().Hostname() }

// Port returns the explicit port, or "".
func (l Location) Port() string { return l.url().Port() }

// Pathname returns the path. Hierarchical URLs always have at least "/".
func (l Location) Pathname() string {
	u := l.url()
	if u.Opaque != "" {
		return u.Opaque
	}
	if u.Path == "" {
		return "/"
	}
	return u.EscapedPath()
}

// Search returns the query including the leading "?", or "".
func (l Location) Search() string {
	if q := l.url().RawQuery; q != "" {
		return "?" + q
	}
	return ""
}

// Hash returns the fragment including the leading "#", or "".
func (l Location) Hash() string {
	if f := l.url().EscapedFragment(); f != "" {
		return "#" + f
	}
	return ""
}

// Origin returns protocol://host, or "null" for opaque URLs such as
// about:blank.
func (l Location) Origin() string {
	u := l.url()
	if u.Host == "" {
		return "null"
	}
	return u.Scheme + "://" + u.Host
}

// Href returns the full serialized URL.
func (l Location) Href() string {
	u := l.url()
	if u.Opaque == "" && u.Host != "" && u.Path == "" {
		c := *u
		c.Path = "/"
		return c.String()
	}
	return u.String()
}

// String implements fmt.Stringer.
func (l Location) String() string { return l.Href() }

// Secure reports whether cookies set for this location may carry the Secure
// attribute.
func (l Location) Secure() bool { return l.url().Scheme == "https" }

// Resolve turns a src/href attribute value into an absolute URL. Protocol
// relative values ("//cdn/x.js") take the document protocol; everything else
// resolves against the origin. Values that cannot be resolved are returned
// unchanged.
func (l Location) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "//") {
		return l.Protocol() + ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return r.String()
	}
	origin := l.Origin()
	if origin == "null" {
		return ref
	}
	base, err := url.Parse(origin + "/")
	if err != nil {
		return ref
	}
	return base.ResolveReference(r).String()
}

// URL returns a copy of the underlying URL.
func (l Location) URL() *url.URL {
	c := *l.url()
	return &c
}
