package eta

import (
	"bytes"

	"golang.org/x/net/html"
)

// newFragment returns an empty detached container, the equivalent of a
// DocumentFragment: rendering it renders only its children.
func newFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

// cloneNode deep copies n. The copy is detached.
func cloneNode(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneNode(child))
	}

	return c
}

// cloneContent copies the children of n into a new fragment.
func cloneContent(n *html.Node) *html.Node {
	frag := newFragment()
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		frag.AppendChild(cloneNode(child))
	}

	return frag
}

// moveChildren moves every child of src to the end of dst.
func moveChildren(dst, src *html.Node) {
	for child := src.FirstChild; child != nil; {
		next := child.NextSibling
		src.RemoveChild(child)
		dst.AppendChild(child)
		child = next
	}
}

// replaceWithChildren puts the children of frag where n is and detaches n.
func replaceWithChildren(n, frag *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for child := frag.FirstChild; child != nil; {
		next := child.NextSibling
		frag.RemoveChild(child)
		parent.InsertBefore(child, n)
		child = next
	}
	parent.RemoveChild(n)
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}

// TextContent concatenates the text of n and its descendants.
func TextContent(n *html.Node) string {
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return buf.String()
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}
