package eta

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Template is the parsed source of a component.
type Template struct {
	Tag string

	// Scripts holds the text of <script> blocks found in the markup. They
	// are kept off the rendered content and never executed.
	Scripts []string

	content *html.Node
	source  *html.Node // the document <template> element, if any
}

// ParseTemplate parses component markup read from r.
func ParseTemplate(tag string, r io.Reader) (*Template, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("eta: parse template %q: %w", tag, err)
	}

	frag := newFragment()
	for _, n := range nodes {
		frag.AppendChild(n)
	}

	return newTemplate(tag, frag, nil), nil
}

// ParseTemplateString parses component markup held in a string.
func ParseTemplateString(tag, markup string) (*Template, error) {
	return ParseTemplate(tag, strings.NewReader(markup))
}

// TemplateFromNode builds a Template from a <template> element of a parsed
// document. The element itself is left in place.
func TemplateFromNode(tag string, n *html.Node) *Template {
	return newTemplate(tag, cloneContent(n), n)
}

func newTemplate(tag string, content, source *html.Node) *Template {
	t := &Template{Tag: strings.ToLower(tag), content: content, source: source}

	goquery.NewDocumentFromNode(content).Find("script").Each(func(_ int, s *goquery.Selection) {
		t.Scripts = append(t.Scripts, s.Text())
		s.Remove()
	})

	return t
}

// Content returns a fresh copy of the template content.
func (t *Template) Content() *html.Node {
	return cloneContent(t.content)
}

// String renders the template content.
func (t *Template) String() string {
	str, err := InnerHTML(t.content)
	if err != nil {
		return ""
	}

	return str
}
