package eta

import (
	"strings"

	"golang.org/x/net/html"
)

// Event is delivered to handlers by Instance.Dispatch.
type Event struct {
	Type   string
	Target *html.Node
	Detail interface{}
}

// HandlerFunc handles an event dispatched on a node of an instance.
type HandlerFunc func(inst *Instance, ev *Event)

// Handlers maps handler names, as written in @event attributes, to functions.
type Handlers map[string]HandlerFunc

// Binding is an @event attribute taken off a rendered node.
type Binding struct {
	Node    *html.Node
	Event   string
	Handler string
}

// listener is a resolved binding.
type listener struct {
	event string
	fn    HandlerFunc
}

// resolveHandler finds the function for name. Instance methods take
// precedence over the handler context registered for the tag.
func resolveHandler(name string, methods, context Handlers) (HandlerFunc, bool) {
	name = strings.TrimSpace(name)
	if fn, ok := methods[name]; ok && fn != nil {
		return fn, true
	}
	if fn, ok := context[name]; ok && fn != nil {
		return fn, true
	}

	return nil, false
}
