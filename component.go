package eta

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Config holds the lifecycle hooks and methods of a component.
type Config struct {
	// Init runs once the instance has been rendered into its host.
	Init func(*Instance)

	// Mounted runs when the host is attached to a document.
	Mounted func(*Instance)

	// Removed runs after the instance has been torn down.
	Removed func(*Instance)

	// Methods resolve @event handler names before the tag's handler context.
	Methods Handlers

	// Pure components are appended as written: no slots, no data, no events.
	// Their style blocks are still hoisted once per tag.
	Pure bool
}

type definition struct {
	tpl *Template
	cfg Config
}

// Define registers tpl under tag. A tag can only be defined once; later
// attempts are rejected and reported, the first definition stays active.
func (rt *Runtime) Define(tag string, tpl *Template, cfg Config) error {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tpl == nil {
		return fmt.Errorf("eta: define <%s>: %w", tag, ErrNoTemplate)
	}

	rt.mu.Lock()
	_, exists := rt.defs[tag]
	if !exists {
		rt.defs[tag] = &definition{tpl: tpl, cfg: cfg}
	}
	rt.mu.Unlock()

	if exists {
		rt.logf("<%s> is already defined, ignoring new definition", tag)
		return fmt.Errorf("eta: define <%s>: %w", tag, ErrDuplicateTag)
	}

	return nil
}

// Defined reports whether tag has a definition.
func (rt *Runtime) Defined(tag string) bool {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	_, ok := rt.defs[strings.ToLower(tag)]
	return ok
}

// Tags returns the defined tags.
func (rt *Runtime) Tags() []string {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	tags := make([]string, 0, len(rt.defs))
	for t := range rt.defs {
		tags = append(tags, t)
	}
	return tags
}

// Install defines tag from the <template name="tag"> element of doc.
// Template elements are looked up once per tag.
func (rt *Runtime) Install(doc *goquery.Document, tag string, cfg Config) error {
	tag = strings.ToLower(strings.TrimSpace(tag))

	rt.mu.RLock()
	node, cached := rt.store[tag]
	rt.mu.RUnlock()

	if !cached {
		sel := doc.Find(fmt.Sprintf("template[name=%q]", tag)).First()
		if sel.Length() == 0 {
			return fmt.Errorf("eta: install <%s>: %w", tag, ErrNoTemplate)
		}
		node = sel.Get(0)

		rt.mu.Lock()
		rt.store[tag] = node
		rt.mu.Unlock()
	}

	return rt.Define(tag, TemplateFromNode(tag, node), cfg)
}

// Use loads the markup at src with loader and defines it as tag.
func (rt *Runtime) Use(ctx context.Context, loader Loader, src, tag string, cfg Config) error {
	rc, err := loader.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("eta: use <%s>: %w", tag, err)
	}
	defer rc.Close()

	tpl, err := ParseTemplate(tag, rc)
	if err != nil {
		return err
	}

	return rt.Define(tag, tpl, cfg)
}
