// internal/browser/cookies/jar.go
package cookies

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/xkilldash9x/domgraph/internal/browser/location"
)

// ErrHTTPOnly is returned when script tries to write an HttpOnly cookie.
var ErrHTTPOnly = errors.New("cookie is HttpOnly and cannot be set from script")

// Scope selects the cookies visible to a document.cookie read.
type Scope struct {
	Path   string
	Domain string
	Secure bool
}

// URL converts the scope to the request URL the cookie store matches on.
func (s Scope) URL() *url.URL {
	scheme := "http"
	if s.Secure {
		scheme = "https"
	}
	path := s.Path
	if path == "" {
		path = "/"
	}
	return &url.URL{Scheme: scheme, Host: s.Domain, Path: path}
}

// ScopeFor derives the read scope of a document at loc.
func ScopeFor(loc location.Location) Scope {
	return Scope{
		Path:   loc.Pathname(),
		Domain: loc.Hostname(),
		Secure: loc.Protocol() == "https:",
	}
}

// Jar is a script-facing cookie store for one document. Writes are attributed
// to the document URL it was created for.
type Jar struct {
	base   *url.URL
	store  *cookiejar.Jar
	logger *zap.Logger
}

// NewJar creates an empty jar bound to the document location. Domain
// matching uses the public suffix list.
func NewJar(base location.Location, logger *zap.Logger) (*Jar, error) {
	store, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie store: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Jar{
		base:   base.URL(),
		store:  store,
		logger: logger.Named("cookies"),
	}, nil
}

// SetCookie stores a cookie from a raw "name=value; attr..." string, the
// format accepted by document.cookie.
func (j *Jar) SetCookie(raw string) error {
	c, err := http.ParseSetCookie(raw)
	if err != nil {
		return fmt.Errorf("invalid cookie string %q: %w", raw, err)
	}
	if c.HttpOnly {
		return ErrHTTPOnly
	}
	j.store.SetCookies(j.base, []*http.Cookie{c})
	j.logger.Debug("Cookie stored", zap.String("name", c.Name), zap.String("url", j.base.String()))
	return nil
}

// Cookies returns the cookies visible for the scope.
func (j *Jar) Cookies(scope Scope) []*http.Cookie {
	return j.store.Cookies(scope.URL())
}

// CookieString serializes the visible cookies as "a=1; b=2".
func (j *Jar) CookieString(scope Scope) string {
	visible := j.Cookies(scope)
	parts := make([]string, 0, len(visible))
	for _, c := range visible {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}
