// internal/browser/cookies/jar_test.go
package cookies_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/domgraph/internal/browser/cookies"
	"github.com/xkilldash9x/domgraph/internal/browser/location"
)

func newJar(t *testing.T, rawURL string) (*cookies.Jar, location.Location) {
	t.Helper()
	loc := location.MustParse(rawURL)
	jar, err := cookies.NewJar(loc, zaptest.NewLogger(t))
	require.NoError(t, err)
	return jar, loc
}

func TestScopeFor(t *testing.T) {
	scope := cookies.ScopeFor(location.MustParse("https://shop.example.com/cart?x=1"))
	assert.Equal(t, cookies.Scope{Path: "/cart", Domain: "shop.example.com", Secure: true}, scope)
	assert.Equal(t, "https://shop.example.com/cart", scope.URL().String())

	plain := cookies.Scope{Domain: "example.com"}
	assert.Equal(t, "http://example.com/", plain.URL().String())
}

func TestJar_SetAndRead(t *testing.T) {
	jar, loc := newJar(t, "https://example.com/app/")
	scope := cookies.ScopeFor(loc)

	require.NoError(t, jar.SetCookie("session=abc"))
	require.NoError(t, jar.SetCookie("theme=dark; Path=/"))
	assert.Equal(t, "session=abc; theme=dark", jar.CookieString(scope))

	// Overwrite keeps a single entry.
	require.NoError(t, jar.SetCookie("theme=light; Path=/"))
	assert.Contains(t, jar.CookieString(scope), "theme=light")
	assert.NotContains(t, jar.CookieString(scope), "theme=dark")
}

func TestJar_ScopeFiltering(t *testing.T) {
	jar, _ := newJar(t, "https://example.com/")

	require.NoError(t, jar.SetCookie("secret=1; Secure; Path=/"))
	require.NoError(t, jar.SetCookie("admin=1; Path=/admin"))

	assert.Equal(t, "", jar.CookieString(cookies.Scope{Path: "/", Domain: "example.com", Secure: false}))
	assert.Equal(t, "secret=1", jar.CookieString(cookies.Scope{Path: "/", Domain: "example.com", Secure: true}))
	assert.Contains(t, jar.CookieString(cookies.Scope{Path: "/admin/users", Domain: "example.com", Secure: true}), "admin=1")
	assert.Equal(t, "", jar.CookieString(cookies.Scope{Path: "/", Domain: "other.org", Secure: true}))
}

func TestJar_Rejections(t *testing.T) {
	jar, loc := newJar(t, "https://example.com/")

	assert.Error(t, jar.SetCookie("=novalue"))
	assert.ErrorIs(t, jar.SetCookie("sid=1; HttpOnly"), cookies.ErrHTTPOnly)
	assert.Equal(t, "", jar.CookieString(cookies.ScopeFor(loc)))
}

func TestJar_BlankDocumentStoresNothing(t *testing.T) {
	jar, loc := newJar(t, location.Blank)
	require.NoError(t, jar.SetCookie("a=1"))
	assert.Equal(t, "", jar.CookieString(cookies.ScopeFor(loc)))
}
