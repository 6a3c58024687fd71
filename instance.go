package eta

import (
	"golang.org/x/net/html"
)

// Instance is one live occurrence of a component.
type Instance struct {
	Tag string

	host      *html.Node
	cfg       Config
	data      *Data
	bindings  []Binding
	listeners map[*html.Node][]listener
}

// Host returns the element the instance is rendered into.
func (i *Instance) Host() *html.Node {
	return i.host
}

// Data returns the reactive store of the instance.
func (i *Instance) Data() *Data {
	return i.data
}

// Get returns the current value of prop.
func (i *Instance) Get(prop string) interface{} {
	return i.data.Get(prop)
}

// Set writes prop and re-renders the text nodes that reference it.
func (i *Instance) Set(prop string, val interface{}) error {
	return i.data.Set(prop, val)
}

// Bindings returns the @event bindings taken from the template.
func (i *Instance) Bindings() []Binding {
	return append([]Binding(nil), i.bindings...)
}

// Released reports whether the instance has been detached.
func (i *Instance) Released() bool {
	return i.data.Released()
}

// Dispatch delivers an event of type typ to target and then to each of its
// ancestors up to the host, running the handlers bound on each in binding
// order. It reports whether any handler ran.
func (i *Instance) Dispatch(target *html.Node, typ string, detail interface{}) bool {
	if i.listeners == nil || target == nil {
		return false
	}

	ev := &Event{Type: typ, Target: target, Detail: detail}
	handled := false
	for n := target; n != nil; n = n.Parent {
		for _, l := range i.listeners[n] {
			if l.event != typ {
				continue
			}
			l.fn(i, ev)
			handled = true
		}
		if n == i.host {
			break
		}
	}

	return handled
}

func (i *Instance) release() {
	i.data.release()
	for n := range i.listeners {
		delete(i.listeners, n)
	}
	i.listeners = nil
	i.bindings = nil
}
