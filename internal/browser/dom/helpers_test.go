package dom_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/domgraph/internal/browser/cookies"
	"github.com/xkilldash9x/domgraph/internal/browser/dom"
)

// newDoc parses markup with a test logger unless opts supplies one.
func newDoc(t *testing.T, markup string, opts ...dom.Options) *dom.Document {
	t.Helper()
	var o dom.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Logger == nil {
		o.Logger = zaptest.NewLogger(t)
	}
	d, err := dom.NewDocument(markup, o)
	require.NoError(t, err)
	return d
}

func byID(t *testing.T, d *dom.Document, id string) *dom.Element {
	t.Helper()
	el := d.GetElementById(id)
	require.NotNil(t, el, "element #%s not found", id)
	return el
}

// recorder collects listener invocations by label.
type recorder struct {
	calls []string
}

func (r *recorder) on(el *dom.Element, typ, label string) dom.ListenerID {
	return el.AddEventListener(typ, func(*dom.Event) { r.calls = append(r.calls, label) })
}

type mockCookieJar struct {
	mock.Mock
}

func (m *mockCookieJar) CookieString(scope cookies.Scope) string {
	args := m.Called(scope)
	return args.String(0)
}

func (m *mockCookieJar) SetCookie(raw string) error {
	args := m.Called(raw)
	return args.Error(0)
}
