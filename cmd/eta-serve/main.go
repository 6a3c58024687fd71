package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/MunGaaKei/eta"
	"github.com/MunGaaKei/eta/static"
)

func main() {
	manifest := flag.String("manifest", "", "site manifest (eta.yaml)")
	addr := flag.String("addr", "", "listen address, overrides the manifest")
	root := flag.String("root", ".", "static root when no manifest is given")
	flag.Parse()

	m := &eta.Manifest{Addr: ":9091", Root: *root, Index: "index.html"}
	if *manifest != "" {
		var err error
		m, err = eta.LoadManifest(*manifest)
		if err != nil {
			log.Fatalf("Failed to load manifest: %v", err)
		}
	}
	if *addr != "" {
		m.Addr = *addr
	}

	log.Printf("serving %s on %s", m.RootDir(), m.Addr)
	if err := http.ListenAndServe(m.Addr, static.Handler(m.RootDir(), m.Index)); err != nil {
		log.Fatal(err)
	}
}
