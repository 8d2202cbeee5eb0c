package dom_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/domgraph/internal/browser/dom"
	"github.com/xkilldash9x/domgraph/internal/browser/layout"
)

func TestAppendChild_MovesAttachedNode(t *testing.T) {
	d := newDoc(t, `<div id="a"><span id="s"></span></div><div id="b"></div>`)
	a, b, s := byID(t, d, "a"), byID(t, d, "b"), byID(t, d, "s")

	var records []dom.MutationRecord
	obs := dom.NewMutationObserver(func(recs []dom.MutationRecord, _ *dom.MutationObserver) {
		records = append(records, recs...)
	})
	require.NoError(t, obs.Observe(a, dom.ObserverOptions{ChildList: true}))

	got, err := b.AppendChild(s)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 0, a.ChildElementCount())
	assert.Same(t, b, s.ParentElement())

	require.Len(t, records, 1)
	assert.Equal(t, dom.RecordChildList, records[0].Type)
	assert.Same(t, a, records[0].Target)
}

func TestInsertBefore(t *testing.T) {
	d := newDoc(t, `<ul id="l"><li id="one">1</li><li id="two">2</li></ul><p id="stray"></p>`)
	l, one := byID(t, d, "l"), byID(t, d, "one")

	zero := d.CreateElement("li")
	require.NoError(t, zero.SetTextContent("0"))
	_, err := l.InsertBefore(zero, one)
	require.NoError(t, err)
	assert.Equal(t, `<li>0</li><li id="one">1</li><li id="two">2</li>`, l.InnerHTML())

	last := d.CreateElement("li")
	_, err = l.InsertBefore(last, nil)
	require.NoError(t, err)
	assert.Same(t, last, l.LastElementChild())

	before := d.Body().InnerHTML()
	_, err = l.InsertBefore(d.CreateElement("li"), byID(t, d, "stray"))
	require.Error(t, err)
	assert.ErrorIs(t, err, dom.ErrHierarchyRequest)
	assert.Equal(t, "Failed to execute 'insertBefore' on 'Node': The node before which the new node is to be inserted is not a child of this node.", err.Error())
	assert.Equal(t, before, d.Body().InnerHTML())

	_, err = l.InsertBefore(nil, one)
	assert.ErrorIs(t, err, dom.ErrArgumentMissing)
}

func TestStructuralRejectionLeavesTreeUnmodified(t *testing.T) {
	d := newDoc(t, `<div id="outer"><div id="inner"><p id="leaf">x</p></div></div><div id="other"></div>`)
	outer, inner, leaf := byID(t, d, "outer"), byID(t, d, "inner"), byID(t, d, "leaf")
	other := byID(t, d, "other")
	before := d.Body().InnerHTML()

	tests := []struct {
		name string
		op   func() error
		kind error
	}{
		{"append ancestor into descendant", func() error { _, err := inner.AppendChild(outer); return err }, dom.ErrHierarchyRequest},
		{"append node into itself", func() error { _, err := inner.AppendChild(inner); return err }, dom.ErrHierarchyRequest},
		{"insert ancestor before child", func() error { _, err := inner.InsertBefore(outer, leaf); return err }, dom.ErrHierarchyRequest},
		{"remove non-child", func() error { _, err := other.RemoveChild(leaf); return err }, dom.ErrHierarchyRequest},
		{"replace non-child", func() error { _, err := other.ReplaceChild(d.CreateElement("b"), leaf); return err }, dom.ErrHierarchyRequest},
		{"append into text node", func() error { _, err := leaf.FirstChild().AppendChild(d.CreateElement("b")); return err }, dom.ErrHierarchyRequest},
		{"append document", func() error { _, err := other.AppendChild(d.Node()); return err }, dom.ErrHierarchyRequest},
		{"remove nil", func() error { _, err := other.RemoveChild(nil); return err }, dom.ErrArgumentMissing},
		{"append nil", func() error { _, err := other.AppendChild(nil); return err }, dom.ErrArgumentMissing},
		{"replace with nil", func() error { _, err := inner.ReplaceChild(nil, leaf); return err }, dom.ErrArgumentMissing},
		{"replace nil", func() error { _, err := inner.ReplaceChild(leaf, nil); return err }, dom.ErrArgumentMissing},
		{"invalid position", func() error { return leaf.InsertAdjacentHTML("middle", "<b></b>") }, dom.ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, before, d.Body().InnerHTML())
		})
	}
}

func TestCycleMessage(t *testing.T) {
	d := newDoc(t, `<div id="outer"><div id="inner"></div></div>`)

	_, err := byID(t, d, "inner").AppendChild(byID(t, d, "outer"))
	require.Error(t, err)
	assert.Equal(t, "Failed to execute 'appendChild' on 'Node': The new child element contains the parent.", err.Error())
}

func TestAppendChild_CrossDocumentRejected(t *testing.T) {
	d := newDoc(t, `<div id="a"></div>`)
	other := newDoc(t, `<p id="p"></p>`)

	_, err := byID(t, d, "a").AppendChild(byID(t, other, "p"))
	assert.ErrorIs(t, err, dom.ErrHierarchyRequest)
	assert.True(t, byID(t, other, "p").IsConnected())
}

func TestRemoveChildAndRemove(t *testing.T) {
	d := newDoc(t, `<ul id="l"><li id="one">1</li><li id="two">2</li></ul>`)
	l, one, two := byID(t, d, "l"), byID(t, d, "one"), byID(t, d, "two")

	got, err := l.RemoveChild(one)
	require.NoError(t, err)
	assert.Same(t, one, got)
	assert.Nil(t, one.ParentNode())
	assert.False(t, one.IsConnected())

	two.Remove()
	assert.Equal(t, 0, l.ChildElementCount())

	// Removing a parentless node is a no-op.
	two.Remove()
	assert.Nil(t, two.ParentNode())
}

func TestReplaceChild(t *testing.T) {
	d := newDoc(t, `<ul id="l"><li id="one">1</li><li id="two">2</li></ul>`)
	l, one, two := byID(t, d, "l"), byID(t, d, "one"), byID(t, d, "two")

	replacement := d.CreateElement("li")
	replacement.SetID("new")
	require.NoError(t, replacement.SetTextContent("N"))

	old, err := l.ReplaceChild(replacement, one)
	require.NoError(t, err)
	assert.Same(t, one, old)
	assert.Nil(t, one.ParentNode())
	assert.Equal(t, `<li id="new">N</li><li id="two">2</li>`, l.InnerHTML())

	inserted := d.GetElementById("new")
	require.NotNil(t, inserted)
	assert.NotSame(t, replacement, inserted)
	assert.False(t, replacement.IsConnected())

	_, err = l.ReplaceChild(d.CreateTextNode("t"), two)
	require.NoError(t, err)
	assert.Equal(t, `<li id="new">N</li>t`, l.InnerHTML())

	_, err = l.ReplaceChild(d.CreateComment("c"), l.LastChild())
	require.NoError(t, err)
	assert.Equal(t, `<li id="new">N</li><!--c-->`, l.InnerHTML())
}

func TestDocumentFragment(t *testing.T) {
	d := newDoc(t, ``)
	frag := d.CreateDocumentFragment()
	i, b := d.CreateElement("i"), d.CreateElement("b")
	_, err := frag.AppendChild(i)
	require.NoError(t, err)
	_, err = frag.AppendChild(b)
	require.NoError(t, err)
	require.Equal(t, 2, frag.ChildNodes().Len())

	got, err := d.Body().AppendChild(frag)
	require.NoError(t, err)
	assert.Same(t, frag, got)
	assert.Equal(t, 0, frag.ChildNodes().Len())
	assert.Equal(t, `<i></i><b></b>`, d.Body().InnerHTML())
	assert.Same(t, d.Body(), i.ParentElement())

	_, err = b.AppendChild(frag)
	require.NoError(t, err)
	assert.Equal(t, `<i></i><b></b>`, d.Body().InnerHTML())
}

func TestCloneNode(t *testing.T) {
	d := newDoc(t, `<div id="src" class="k"><span>x</span></div>`)
	src := byID(t, d, "src")
	src.SetBoundingClientRect(layout.Edges(1, 2, 3, 4))

	shallow := src.CloneNode(false)
	assert.Equal(t, `<div id="src" class="k"></div>`, shallow.OuterHTML())

	deep := src.CloneNode(true)
	assert.Equal(t, src.OuterHTML(), deep.OuterHTML())
	assert.NotSame(t, src, deep)
	assert.Nil(t, deep.ParentNode())
	if diff := cmp.Diff(layout.DefaultRect(), deep.GetBoundingClientRect()); diff != "" {
		t.Errorf("clone rect mismatch (-want +got):\n%s", diff)
	}

	deep.SetAttribute("class", "changed")
	assert.Equal(t, "k", src.ClassName())
	assert.Nil(t, d.Node().CloneNode(true))
}

func TestInsertAdjacentHTML(t *testing.T) {
	d := newDoc(t, `<div id="w"><p id="t">T</p></div>`)
	w, target := byID(t, d, "w"), byID(t, d, "t")

	require.NoError(t, target.InsertAdjacentHTML("BeforeBegin", "<i>1</i>"))
	require.NoError(t, target.InsertAdjacentHTML("afterbegin", "<b>2</b>"))
	require.NoError(t, target.InsertAdjacentHTML("beforeEnd", "<u>3</u>"))
	require.NoError(t, target.InsertAdjacentHTML("AFTEREND", "<s>4</s>"))

	assert.Equal(t, `<i>1</i><p id="t"><b>2</b>T<u>3</u></p><s>4</s>`, w.InnerHTML())

	err := target.InsertAdjacentHTML("middle", "x")
	require.Error(t, err)
	assert.Equal(t, "Failed to execute 'insertAdjacentHTML' on 'Element': The value provided ('middle') is not one of 'beforeBegin', 'afterBegin', 'beforeEnd', or 'afterEnd'.", err.Error())

	err = d.CreateElement("p").InsertAdjacentHTML("afterend", "<b></b>")
	assert.ErrorIs(t, err, dom.ErrHierarchyRequest)
}
