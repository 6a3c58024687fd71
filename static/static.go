// Package static serves the files of a component site.
package static

import (
	"io"
	"log"
	"net/http"
	"path"
	"strings"
)

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
}

// Handler serves .html, .css and .js files from root. Any other path is
// answered with the index page so client side components can take over.
func Handler(root, index string) http.Handler {
	fs := http.Dir(root)
	if index == "" {
		index = "index.html"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := path.Clean("/" + r.URL.Path)
		ctype, known := contentTypes[strings.ToLower(path.Ext(name))]
		if !known {
			name = "/" + index
			ctype = contentTypes[".html"]
		}

		f, err := fs.Open(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil || stat.IsDir() {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", ctype)
		if r.Method == http.MethodHead {
			return
		}
		if _, err := io.Copy(w, f); err != nil {
			log.Printf("static: %s: %v", name, err)
		}
	})
}
