// internal/browser/tree/tree_test.go
package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/domgraph/internal/browser/tree"
)

// parseBody parses markup and returns the document and its body element.
func parseBody(t *testing.T, markup string) (*html.Node, *html.Node) {
	t.Helper()
	doc, err := tree.ParseString(markup)
	require.NoError(t, err)
	sel, err := tree.Compile("body")
	require.NoError(t, err)
	body := tree.QueryFirst(doc, sel)
	require.NotNil(t, body)
	return doc, body
}

func mustCompile(t *testing.T, s string) tree.Selector {
	t.Helper()
	sel, err := tree.Compile(s)
	require.NoError(t, err)
	return sel
}

func outer(t *testing.T, n *html.Node) string {
	t.Helper()
	s, err := tree.Render(n)
	require.NoError(t, err)
	return s
}

func TestParseSynthesizesStructure(t *testing.T) {
	doc, err := tree.ParseString("")
	require.NoError(t, err)
	assert.Equal(t, html.DocumentNode, doc.Type)
	assert.NotNil(t, tree.QueryFirst(doc, mustCompile(t, "html > head")))
	assert.NotNil(t, tree.QueryFirst(doc, mustCompile(t, "html > body")))
}

func TestAttributes(t *testing.T) {
	n := tree.NewElement("DIV")
	assert.Equal(t, "div", n.Data)

	_, ok := tree.Attr(n, "id")
	assert.False(t, ok)

	tree.SetAttr(n, "ID", "a")
	tree.SetAttr(n, "class", "x")
	tree.SetAttr(n, "id", "b")
	v, ok := tree.Attr(n, "Id")
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, []html.Attribute{{Key: "id", Val: "b"}, {Key: "class", Val: "x"}}, n.Attr)

	assert.True(t, tree.RemoveAttr(n, "id"))
	assert.False(t, tree.RemoveAttr(n, "id"))
	assert.Len(t, n.Attr, 1)
}

func TestClone(t *testing.T) {
	_, body := parseBody(t, `<div id="a" class="c"><span>x</span></div>`)
	div := tree.FirstElementChild(body)

	shallow := tree.Clone(div, false)
	assert.Nil(t, shallow.Parent)
	assert.Nil(t, shallow.FirstChild)
	assert.Equal(t, `<div id="a" class="c"></div>`, outer(t, shallow))

	deep := tree.Clone(div, true)
	assert.Equal(t, `<div id="a" class="c"><span>x</span></div>`, outer(t, deep))

	// Attribute storage is not shared.
	tree.SetAttr(deep, "id", "changed")
	v, _ := tree.Attr(div, "id")
	assert.Equal(t, "a", v)
}

func TestNavigation(t *testing.T) {
	_, body := parseBody(t, `<p>t<a></a>u<b></b>v</p>`)
	p := tree.FirstElementChild(body)

	a := tree.FirstElementChild(p)
	b := tree.LastElementChild(p)
	assert.Equal(t, "a", a.Data)
	assert.Equal(t, "b", b.Data)
	assert.Equal(t, b, tree.NextElementSibling(a))
	assert.Equal(t, a, tree.PrevElementSibling(b))
	assert.Nil(t, tree.NextElementSibling(b))
	assert.Len(t, tree.ChildNodes(p), 5)
	assert.Len(t, tree.ElementChildren(p), 2)
	assert.Equal(t, p, tree.ParentElement(a))
	assert.True(t, tree.Contains(body, a))
	assert.True(t, tree.Contains(a, a))
	assert.False(t, tree.Contains(a, p))
	assert.Equal(t, "tuv", tree.Text(p))
}

func TestMutation(t *testing.T) {
	t.Run("append moves attached nodes", func(t *testing.T) {
		_, body := parseBody(t, `<div id="a"><i></i></div><div id="b"></div>`)
		a := tree.FirstElementChild(body)
		b := tree.LastElementChild(body)
		i := tree.FirstElementChild(a)

		require.NoError(t, tree.AppendChild(b, i))
		assert.Nil(t, a.FirstChild)
		assert.Equal(t, b, i.Parent)
	})

	t.Run("cycles are rejected", func(t *testing.T) {
		_, body := parseBody(t, `<div><span></span></div>`)
		div := tree.FirstElementChild(body)
		span := tree.FirstElementChild(div)

		assert.ErrorIs(t, tree.AppendChild(span, div), tree.ErrCycle)
		assert.ErrorIs(t, tree.AppendChild(div, div), tree.ErrCycle)
		assert.Equal(t, div, span.Parent)
	})

	t.Run("insert before requires a child reference", func(t *testing.T) {
		_, body := parseBody(t, `<ul><li id="1"></li></ul><p></p>`)
		ul := tree.FirstElementChild(body)
		p := tree.LastElementChild(body)
		li := tree.FirstElementChild(ul)

		assert.ErrorIs(t, tree.InsertBefore(ul, tree.NewElement("li"), p), tree.ErrNotChild)
		assert.Len(t, tree.ChildNodes(ul), 1)

		first := tree.NewElement("li")
		require.NoError(t, tree.InsertBefore(ul, first, li))
		assert.Equal(t, first, ul.FirstChild)

		last := tree.NewElement("li")
		require.NoError(t, tree.InsertBefore(ul, last, nil))
		assert.Equal(t, last, ul.LastChild)
	})

	t.Run("remove child", func(t *testing.T) {
		_, body := parseBody(t, `<div><b></b></div><i></i>`)
		div := tree.FirstElementChild(body)
		i := tree.LastElementChild(body)
		assert.ErrorIs(t, tree.RemoveChild(div, i), tree.ErrNotChild)
		require.NoError(t, tree.RemoveChild(div, div.FirstChild))
		assert.Nil(t, div.FirstChild)
	})

	t.Run("inner html and text replace children", func(t *testing.T) {
		_, body := parseBody(t, `<div><b>old</b></div>`)
		div := tree.FirstElementChild(body)

		removed, err := tree.SetInnerHTML(div, `<i>1</i><i>2</i>`)
		require.NoError(t, err)
		require.Len(t, removed, 1)
		assert.Nil(t, removed[0].Parent)
		inner, err := tree.RenderInner(div)
		require.NoError(t, err)
		assert.Equal(t, `<i>1</i><i>2</i>`, inner)

		removed = tree.SetText(div, "<plain>")
		assert.Len(t, removed, 2)
		assert.Equal(t, `<div>&lt;plain&gt;</div>`, outer(t, div))

		tree.SetText(div, "")
		assert.Nil(t, div.FirstChild)
	})
}

func TestInsertHTML(t *testing.T) {
	_, body := parseBody(t, `<div id="t"><em>mid</em></div>`)
	div := tree.FirstElementChild(body)

	for _, step := range []struct {
		pos    string
		markup string
	}{
		{"beforeBegin", "<a></a>"},
		{"afterbegin", "<b></b>"},
		{"BEFOREEND", "<i></i>"},
		{"afterend", "<u></u>"},
	} {
		pos, err := tree.ParsePosition(step.pos)
		require.NoError(t, err)
		_, err = tree.InsertHTML(div, pos, step.markup)
		require.NoError(t, err)
	}

	inner, err := tree.RenderInner(body)
	require.NoError(t, err)
	assert.Equal(t, `<a></a><div id="t"><b></b><em>mid</em><i></i></div><u></u>`, inner)

	_, err = tree.ParsePosition("middle")
	assert.ErrorIs(t, err, tree.ErrInvalidPosition)

	_, err = tree.InsertHTML(tree.NewElement("div"), tree.AfterEnd, "<p></p>")
	assert.ErrorIs(t, err, tree.ErrNoParent)
}

func TestReplaceWithHTML(t *testing.T) {
	_, body := parseBody(t, `<p>a</p><p id="old">b</p><p>c</p>`)
	old := tree.FindByID(body, "old")
	require.NotNil(t, old)

	nodes, err := tree.ReplaceWithHTML(old, `<section>x</section>`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Nil(t, old.Parent)

	inner, err := tree.RenderInner(body)
	require.NoError(t, err)
	assert.Equal(t, `<p>a</p><section>x</section><p>c</p>`, inner)
}

func TestQueries(t *testing.T) {
	doc, body := parseBody(t, `<div class="a"><span class="b">1</span><div class="a"><span class="b">2</span></div></div>`)

	spans := tree.QueryAll(doc, mustCompile(t, "div.a span.b"))
	require.Len(t, spans, 2)
	assert.Equal(t, "1", tree.Text(spans[0]))

	outerDiv := tree.FirstElementChild(body)
	assert.Len(t, tree.QueryAll(outerDiv, mustCompile(t, "div.a")), 1, "root is not part of its own result")
	assert.Nil(t, tree.QueryFirst(outerDiv, mustCompile(t, "table")))

	innerDiv := spans[1].Parent
	assert.Equal(t, innerDiv, tree.Closest(spans[1], mustCompile(t, "div")))
	assert.Equal(t, spans[1], tree.Closest(spans[1], mustCompile(t, "span")))
	assert.Nil(t, tree.Closest(spans[1], mustCompile(t, "table")))

	assert.True(t, tree.Is(spans[0], mustCompile(t, ".b")))
	assert.False(t, tree.Is(doc, mustCompile(t, "*")))

	_, err := tree.Compile("div[")
	assert.Error(t, err)
	_, err = tree.Compile("  ")
	assert.Error(t, err)
}

func TestXPathLookups(t *testing.T) {
	doc, _ := parseBody(t, `<p id="x">1</p><p id="y" name="n">2</p>`)

	found := tree.FindByID(doc, "y")
	require.NotNil(t, found)
	assert.Equal(t, "2", tree.Text(found))
	assert.Nil(t, tree.FindByID(doc, "missing"))
	assert.Nil(t, tree.FindByID(doc, ""))

	nodes, err := tree.FindByXPath(doc, "//p[@name='n']")
	require.NoError(t, err)
	assert.Equal(t, []*html.Node{found}, nodes)

	_, err = tree.FindByXPath(doc, "//p[")
	assert.Error(t, err)

	attrs, err := tree.FindByXPath(doc, "//p/@name")
	require.NoError(t, err)
	assert.Empty(t, attrs, "attribute results are not part of the tree")
}
