package eta

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// slotAttr marks a light child as content for a named slot.
const slotAttr = "slot"

// slotMap holds the named fragments taken from a host's light children.
type slotMap map[string]*html.Node

// resolveSlots moves every element child of host carrying a slot attribute
// into the fragment for that name. Children without the attribute stay on
// the host for unnamed slots.
func resolveSlots(host *html.Node) slotMap {
	slots := slotMap{}

	goquery.NewDocumentFromNode(host).Children().Filter("[" + slotAttr + "]").Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		name, _ := s.Attr(slotAttr)
		s.RemoveAttr(slotAttr)

		frag, ok := slots[name]
		if !ok {
			frag = newFragment()
			slots[name] = frag
		}
		host.RemoveChild(node)
		frag.AppendChild(node)
	})

	return slots
}

// take returns the fragment for name and forgets it, so a named fragment
// fills at most one slot.
func (m slotMap) take(name string) (*html.Node, bool) {
	if name == "" {
		return nil, false
	}
	frag, ok := m[name]
	if ok {
		delete(m, name)
	}

	return frag, ok
}
