package eta

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// parser transforms one cloned template fragment for one instance.
type parser struct {
	host     *html.Node
	slots    slotMap
	pass     *renderPass
	styles   []*html.Node
	bindings []Binding
}

// walk transforms the children of parent in place.
func (p *parser) walk(parent *html.Node) {
	for n := parent.FirstChild; n != nil; {
		next := n.NextSibling

		switch Classify(n) {
		case SlotNode:
			p.fillSlot(n)
		case StyleNode:
			detach(n)
			p.styles = append(p.styles, n)
		case ElementNode:
			p.extractAttrs(n)
			p.walk(n)
		case InterpolatedText:
			p.pass.render(n, n.Data)
		}

		n = next
	}
}

// takeStyles detaches every <style> below content, in tree order.
func takeStyles(content *html.Node) []*html.Node {
	var styles []*html.Node
	goquery.NewDocumentFromNode(content).Find("style").Each(func(_ int, s *goquery.Selection) {
		styles = append(styles, s.Get(0))
		s.Remove()
	})

	return styles
}

// fillSlot replaces a <slot> with the matching named fragment, or with the
// host's remaining unnamed children.
func (p *parser) fillSlot(n *html.Node) {
	name, _ := getAttr(n, "name")
	if frag, ok := p.slots.take(strings.TrimSpace(name)); ok {
		replaceWithChildren(n, frag)
		return
	}

	frag := newFragment()
	moveChildren(frag, p.host)
	replaceWithChildren(n, frag)
}

// extractAttrs consumes the @event and :reserved attributes of n.
func (p *parser) extractAttrs(n *html.Node) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		switch {
		case strings.HasPrefix(a.Key, eventPrefix) && len(a.Key) > len(eventPrefix):
			p.bindings = append(p.bindings, Binding{
				Node:    n,
				Event:   a.Key[len(eventPrefix):],
				Handler: a.Val,
			})
		case strings.HasPrefix(a.Key, reservedPrefix):
		default:
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}
