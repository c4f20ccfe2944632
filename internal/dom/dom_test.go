package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"rssw.eu/licensepanel/internal/dom"
)

func TestMountStartsEmpty(t *testing.T) {
	m := dom.NewMount()
	assert.True(t, m.Empty())
	assert.Equal(t, "<div></div>", m.HTML())
}

func TestBuildAndRender(t *testing.T) {
	m := dom.NewMount()
	m.Update(func(root *html.Node) {
		dom.SetAttr(root, "class", "page")
		dom.Append(root,
			dom.Append(dom.Element("h1"), dom.Text("Title & more")),
			dom.Append(dom.Element("td", dom.Attr("width", "200")), dom.Text("cell")),
		)
	})

	assert.False(t, m.Empty())
	assert.Equal(t, `<div class="page"><h1>Title &amp; more</h1><td width="200">cell</td></div>`, m.HTML())
}

func TestSetTextReplacesChildren(t *testing.T) {
	code := dom.Element("code")
	dom.Append(code, dom.Text("a"), dom.Element("b"), dom.Text("c"))

	dom.SetText(code, "replaced")
	assert.Equal(t, "replaced", dom.TextContent(code))
	require.NotNil(t, code.FirstChild)
	assert.Nil(t, code.FirstChild.NextSibling)

	dom.SetText(code, "")
	assert.Nil(t, code.FirstChild)
}

func TestSetAttrOverwrites(t *testing.T) {
	n := dom.Element("a", dom.Attr("href", "x"))
	dom.SetAttr(n, "href", "y")

	v, ok := dom.GetAttr(n, "href")
	assert.True(t, ok)
	assert.Equal(t, "y", v)
	assert.Len(t, n.Attr, 1)

	_, ok = dom.GetAttr(n, "rel")
	assert.False(t, ok)
}

func TestFindHelpers(t *testing.T) {
	root := dom.Element("div")
	tbl := dom.Element("table")
	body := dom.Element("tbody")
	dom.Append(root, dom.Append(tbl, dom.Append(body,
		dom.Append(dom.Element("tr"), dom.Element("td")),
		dom.Append(dom.Element("tr"), dom.Element("td"), dom.Element("td", dom.Attr("id", "last"))),
	)))

	assert.Equal(t, tbl, dom.Find(root, dom.Tag("table")))
	assert.Len(t, dom.FindAll(root, dom.Tag("td")), 3)
	assert.Len(t, dom.Children(body, "tr"), 2)
	assert.NotNil(t, dom.ByID(root, "last"))
	assert.Nil(t, dom.ByID(root, "missing"))
}
