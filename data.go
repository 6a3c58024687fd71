package eta

import (
	"sort"

	"golang.org/x/net/html"
)

// site is an interpolation site: a text node and the token-bearing string
// it was rendered from.
type site struct {
	node *html.Node
	raw  string
}

// siteSet keeps sites in insertion order; a node appears at most once.
type siteSet struct {
	nodes []*html.Node
	raw   map[*html.Node]string
}

func (s *siteSet) add(st site) {
	if _, exists := s.raw[st.node]; !exists {
		s.nodes = append(s.nodes, st.node)
	}
	s.raw[st.node] = st.raw
}

func (s *siteSet) clear() {
	for i := range s.nodes {
		s.nodes[i] = nil
	}
	s.nodes = nil
	s.raw = nil
}

// depMap maps a property name to the sites that read it.
type depMap map[string]*siteSet

func (m depMap) register(prop string, st site) {
	set, ok := m[prop]
	if !ok {
		set = &siteSet{raw: make(map[*html.Node]string)}
		m[prop] = set
	}
	set.add(st)
}

// renderPass is the context of one synchronous render. Reads made through
// an open pass register the site being rendered as a dependency.
type renderPass struct {
	data    *Data
	current *site
	closed  bool
}

func (d *Data) openPass() *renderPass {
	return &renderPass{data: d}
}

func (p *renderPass) close() {
	p.current = nil
	p.closed = true
}

// render compiles n from raw, registering n under every identifier read.
func (p *renderPass) render(n *html.Node, raw string) {
	p.current = &site{node: n, raw: raw}
	defer func() { p.current = nil }()

	n.Data = Compile(raw, lookupFunc(func(name string) (interface{}, bool) {
		return p.data.read(p, name)
	}))
}

// Data is the reactive store of an instance. Reads never have side effects;
// writes re-render every text node whose template references the property.
type Data struct {
	values map[string]interface{}
	deps   depMap
}

func newData(attrs []html.Attribute) *Data {
	d := &Data{
		values: make(map[string]interface{}, len(attrs)),
		deps:   make(depMap),
	}
	for _, a := range attrs {
		d.values[a.Key] = a.Val
	}

	return d
}

// read returns the value of prop and, when pass is rendering a site,
// records that site as a dependent of prop.
func (d *Data) read(pass *renderPass, prop string) (interface{}, bool) {
	if pass != nil && !pass.closed && pass.current != nil && d.deps != nil {
		d.deps.register(prop, *pass.current)
	}

	return d.Lookup(prop)
}

// Lookup implements Lookup without registering dependencies.
func (d *Data) Lookup(prop string) (interface{}, bool) {
	val, ok := d.values[prop]
	return val, ok
}

// Get returns the value of prop, or nil.
func (d *Data) Get(prop string) interface{} {
	val, _ := d.Lookup(prop)
	return val
}

// Set stores val under prop and synchronously re-renders the dependents
// of prop. After the instance is released it returns ErrReleased.
func (d *Data) Set(prop string, val interface{}) error {
	if d.values == nil {
		return ErrReleased
	}
	d.values[prop] = val

	set, ok := d.deps[prop]
	if !ok {
		return nil
	}
	for _, n := range set.nodes {
		n.Data = Compile(set.raw[n], d)
	}

	return nil
}

// Keys returns the property names in sorted order.
func (d *Data) Keys() []string {
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Dependents returns the text nodes registered under prop.
func (d *Data) Dependents(prop string) []*html.Node {
	set, ok := d.deps[prop]
	if !ok {
		return nil
	}

	return append([]*html.Node(nil), set.nodes...)
}

// Released reports whether the store has been torn down.
func (d *Data) Released() bool {
	return d.values == nil
}

// release drops every site and value so nothing stays reachable through d.
func (d *Data) release() {
	for prop, set := range d.deps {
		set.clear()
		delete(d.deps, prop)
	}
	d.deps = nil
	d.values = nil
}
