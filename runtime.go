package eta

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// Runtime holds component definitions and the live instances built from
// them. Instances and documents must be used from one goroutine at a time;
// definitions may be registered concurrently.
type Runtime struct {
	mu        sync.RWMutex
	defs      map[string]*definition
	handlers  map[string]Handlers
	store     map[string]*html.Node
	styles    map[string][]*html.Node
	instances map[*html.Node]*Instance
	head      *html.Node
	logger    *log.Logger
}

// New creates an empty runtime.
func New() *Runtime {
	return &Runtime{
		defs:      make(map[string]*definition),
		handlers:  make(map[string]Handlers),
		store:     make(map[string]*html.Node),
		styles:    make(map[string][]*html.Node),
		instances: make(map[*html.Node]*Instance),
		logger:    log.New(os.Stderr, "eta: ", log.LstdFlags),
	}
}

// SetLogger sets the logger used for diagnostics.
func (rt *Runtime) SetLogger(l *log.Logger) *Runtime {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if l != nil {
		rt.logger = l
	}
	return rt
}

// SetHead sets the node component style blocks are appended to, usually
// the document <head>. Without one styles are only kept by the runtime.
func (rt *Runtime) SetHead(n *html.Node) *Runtime {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.head = n
	return rt
}

// Handlers registers the handler context of a tag. It is consulted for
// @event bindings the instance's own methods don't provide.
func (rt *Runtime) Handlers(tag string, h Handlers) *Runtime {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.handlers[strings.ToLower(tag)] = h
	return rt
}

// Styles returns the style blocks contributed for tag.
func (rt *Runtime) Styles(tag string) []*html.Node {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return append([]*html.Node(nil), rt.styles[strings.ToLower(tag)]...)
}

// Instance returns the live instance rendered into host.
func (rt *Runtime) Instance(host *html.Node) (*Instance, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	inst, ok := rt.instances[host]
	return inst, ok
}

// Len returns the number of live instances.
func (rt *Runtime) Len() int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return len(rt.instances)
}

// Construct renders the template defined for host's tag into host.
func (rt *Runtime) Construct(host *html.Node) (*Instance, error) {
	if host == nil || host.Type != html.ElementNode {
		return nil, fmt.Errorf("eta: construct: %w", ErrUndefinedTag)
	}

	rt.mu.RLock()
	def, defined := rt.defs[host.Data]
	_, live := rt.instances[host]
	context := rt.handlers[host.Data]
	rt.mu.RUnlock()

	if !defined {
		return nil, fmt.Errorf("eta: construct <%s>: %w", host.Data, ErrUndefinedTag)
	}
	if live {
		return nil, fmt.Errorf("eta: construct <%s>: %w", host.Data, ErrConstructed)
	}

	inst := &Instance{
		Tag:  host.Data,
		host: host,
		cfg:  def.cfg,
		data: newData(host.Attr),
	}

	content := def.tpl.Content()
	if def.cfg.Pure {
		rt.sinkStyles(inst.Tag, takeStyles(content))
	} else {
		p := &parser{host: host, slots: resolveSlots(host)}
		rt.render(p, inst, content)
		rt.sinkStyles(inst.Tag, p.styles)
		inst.bindings = p.bindings
		rt.listen(inst, context)
	}
	moveChildren(host, content)

	rt.mu.Lock()
	rt.instances[host] = inst
	rt.mu.Unlock()

	if def.cfg.Init != nil {
		def.cfg.Init(inst)
	}

	return inst, nil
}

// render runs one render pass over content. The pass is closed on every
// exit path so no later read can register against it.
func (rt *Runtime) render(p *parser, inst *Instance, content *html.Node) {
	p.pass = inst.data.openPass()
	defer p.pass.close()

	p.walk(content)
}

// sinkStyles keeps the style blocks of the first instance of tag and drops
// those of every later one.
func (rt *Runtime) sinkStyles(tag string, styles []*html.Node) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if _, seen := rt.styles[tag]; seen {
		return
	}
	rt.styles[tag] = styles
	if rt.head == nil {
		return
	}
	for _, s := range styles {
		rt.head.AppendChild(s)
	}
}

// listen resolves the handler of every binding of inst.
func (rt *Runtime) listen(inst *Instance, context Handlers) {
	for _, b := range inst.bindings {
		fn, ok := resolveHandler(b.Handler, inst.cfg.Methods, context)
		if !ok {
			rt.logf("<%s>: no handler %q for @%s", inst.Tag, b.Handler, b.Event)
			continue
		}
		if inst.listeners == nil {
			inst.listeners = make(map[*html.Node][]listener)
		}
		inst.listeners[b.Node] = append(inst.listeners[b.Node], listener{event: b.Event, fn: fn})
	}
}

// Attach notifies the instance in host that it joined a document.
func (rt *Runtime) Attach(host *html.Node) error {
	inst, ok := rt.Instance(host)
	if !ok {
		return fmt.Errorf("eta: attach: %w", ErrNotConstructed)
	}

	rt.mu.RLock()
	def := rt.defs[inst.Tag]
	rt.mu.RUnlock()
	if def != nil && def.tpl.source != nil {
		detach(def.tpl.source)
	}

	if inst.cfg.Mounted != nil {
		inst.cfg.Mounted(inst)
	}

	return nil
}

// Detach tears down the instance in host and then, in tree order, every
// live instance rendered below it: dependencies and listeners are released
// and each is removed from the runtime.
func (rt *Runtime) Detach(host *html.Node) error {
	if !rt.teardown(host) {
		return fmt.Errorf("eta: detach: %w", ErrNotConstructed)
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || c.Data == "template" {
				continue
			}
			rt.teardown(c)
			walk(c)
		}
	}
	walk(host)

	return nil
}

// teardown releases the instance in host, if any, and runs its Removed hook.
func (rt *Runtime) teardown(host *html.Node) bool {
	rt.mu.Lock()
	inst, ok := rt.instances[host]
	delete(rt.instances, host)
	rt.mu.Unlock()

	if !ok {
		return false
	}

	inst.release()
	if inst.cfg.Removed != nil {
		inst.cfg.Removed(inst)
	}

	return true
}

// Upgrade constructs and attaches, in tree order, every element under root
// whose tag is defined, including components rendered by other components.
// The content of <template> elements is skipped.
func (rt *Runtime) Upgrade(root *html.Node) ([]*Instance, error) {
	var created []*Instance

	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.Data == "template" {
				continue
			}
			if rt.Defined(c.Data) {
				if _, live := rt.Instance(c); !live {
					inst, err := rt.Construct(c)
					if err != nil {
						return err
					}
					created = append(created, inst)
					if err := rt.Attach(c); err != nil {
						return err
					}
				}
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}

	err := walk(root)
	return created, err
}

func (rt *Runtime) logf(format string, args ...interface{}) {
	rt.mu.RLock()
	l := rt.logger
	rt.mu.RUnlock()
	l.Printf(format, args...)
}
