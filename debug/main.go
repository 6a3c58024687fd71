package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/MunGaaKei/eta"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

type writes []string

func (w *writes) String() string     { return strings.Join(*w, ",") }
func (w *writes) Set(v string) error { *w = append(*w, v); return nil }

func main() {
	manifest := flag.String("manifest", "eta.yaml", "site manifest")
	page := flag.String("page", "", "page to render, defaults to the manifest index")
	var sets writes
	flag.Var(&sets, "set", "tag.prop=value write applied to the first instance of tag (repeatable)")
	flag.Parse()

	m, err := eta.LoadManifest(*manifest)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}
	if *page == "" {
		*page = filepath.Join(m.RootDir(), m.Index)
	}

	f, err := os.Open(*page)
	if err != nil {
		log.Fatalf("Failed to open page: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to parse page: %v", err)
	}

	rt := eta.New()
	if head := doc.Find("head"); head.Length() > 0 {
		rt.SetHead(head.Get(0))
	}
	if err := m.Define(context.Background(), rt, nil); err != nil {
		log.Fatalf("Failed to define components: %v", err)
	}
	doc.Find("template[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		if !rt.Defined(name) {
			if err := rt.Install(doc, name, eta.Config{}); err != nil {
				log.Printf("install %s: %v", name, err)
			}
		}
	})

	instances, err := rt.Upgrade(doc.Get(0))
	if err != nil {
		log.Fatalf("Failed to upgrade page: %v", err)
	}
	dump(doc.Get(0))

	if len(sets) == 0 {
		return
	}
	for _, w := range sets {
		tag, prop, val, ok := parseWrite(w)
		if !ok {
			log.Fatalf("invalid write %q, want tag.prop=value", w)
		}
		inst := first(instances, tag)
		if inst == nil {
			log.Fatalf("no <%s> instance on the page", tag)
		}
		if err := inst.Set(prop, val); err != nil {
			log.Fatalf("write %q: %v", w, err)
		}
	}

	fmt.Println("\n== after writes ==")
	dump(doc.Get(0))
}

func parseWrite(w string) (tag, prop, val string, ok bool) {
	kv := strings.SplitN(w, "=", 2)
	if len(kv) != 2 {
		return "", "", "", false
	}
	tp := strings.SplitN(kv[0], ".", 2)
	if len(tp) != 2 {
		return "", "", "", false
	}
	return strings.ToLower(tp[0]), tp[1], kv[1], true
}

func first(instances []*eta.Instance, tag string) *eta.Instance {
	for _, i := range instances {
		if i.Tag == tag {
			return i
		}
	}
	return nil
}

func dump(n *html.Node) {
	if err := html.Render(os.Stdout, n); err != nil {
		log.Fatal(err)
	}
	fmt.Println()
}
