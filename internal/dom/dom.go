// Package dom provides a small element tree used as the mount point of a
// rendered panel, plus helpers for building and inspecting it.
package dom

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Mount is the element a panel attaches its content to. Every access goes
// through the mount's lock; the tree must not be retained outside Update/View.
type Mount struct {
	mu   sync.Mutex
	root *html.Node
}

// NewMount creates an empty <div> mount point.
func NewMount() *Mount {
	return &Mount{root: Element("div")}
}

// Update runs fn with exclusive access to the mount element.
func (m *Mount) Update(fn func(root *html.Node)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.root)
}

// View runs fn with read access to the mount element.
func (m *Mount) View(fn func(root *html.Node)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.root)
}

// Empty reports whether nothing has been attached to the mount element.
func (m *Mount) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root.FirstChild == nil
}

// Render writes the mount element, including itself, as HTML.
func (m *Mount) Render(w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return html.Render(w, m.root)
}

// HTML returns the rendered mount element.
func (m *Mount) HTML() string {
	var buf bytes.Buffer
	if err := m.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Element creates a detached element node.
func Element(tag string, attrs ...html.Attribute) *html.Node {
	a := atom.Lookup([]byte(tag))
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     tag,
		Attr:     attrs,
	}
}

// Attr is shorthand for an html.Attribute without namespace.
func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// Text creates a detached text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append attaches children to parent in order and returns parent.
func Append(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// SetAttr sets or replaces an attribute on n.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, Attr(key, val))
}

// GetAttr returns the value of an attribute and whether it was present.
func GetAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetText replaces all children of n with a single text node, like
// assigning textContent in a browser.
func SetText(n *html.Node, s string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	if s != "" {
		n.AppendChild(Text(s))
	}
}

// TextContent concatenates the text of n and all of its descendants.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(TextContent(c))
	}
	return sb.String()
}

// Find returns the first descendant of n (depth first, document order)
// matching pred, or nil.
func Find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			return c
		}
		if found := Find(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of n matching pred in document order.
func FindAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			out = append(out, c)
		}
		out = append(out, FindAll(c, pred)...)
	}
	return out
}

// Tag matches element nodes with the given tag name.
func Tag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

// ByID returns the descendant element with the given id, or nil.
func ByID(n *html.Node, id string) *html.Node {
	return Find(n, func(c *html.Node) bool {
		v, ok := GetAttr(c, "id")
		return c.Type == html.ElementNode && ok && v == id
	})
}

// Children returns the direct element children of n with the given tag.
func Children(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
	}
	return out
}
