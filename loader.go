package eta

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Loader returns component markup given its source location.
type Loader interface {
	Load(ctx context.Context, src string) (io.ReadCloser, error)
}

// DirLoader reads component files from a folder. Sources without an
// extension get Ext appended.
type DirLoader struct {
	Folder string
	Ext    string
}

// NewDirLoader creates a DirLoader, ext defaults to "html".
func NewDirLoader(folder, ext string) *DirLoader {
	if ext == "" {
		ext = "html"
	}
	return &DirLoader{Folder: folder, Ext: strings.TrimPrefix(ext, ".")}
}

// Load implements Loader.
func (l *DirLoader) Load(ctx context.Context, src string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Open(getFilename(l.Folder, src, l.Ext))
}

func getFilename(folder, name, ext string) string {
	fle := filepath.Join(folder, filepath.FromSlash(name))
	// add a file extension if one isn't provided
	if filepath.Ext(fle) == "" && ext != "" {
		fle += "." + ext
	}

	return fle
}

// HTTPLoader fetches component markup over HTTP.
type HTTPLoader struct {
	Client *http.Client

	// Base is prepended to relative sources.
	Base string
}

// Load implements Loader.
func (l *HTTPLoader) Load(ctx context.Context, src string) (io.ReadCloser, error) {
	url := src
	if l.Base != "" && !strings.Contains(src, "://") {
		url = strings.TrimRight(l.Base, "/") + "/" + strings.TrimLeft(src, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html; charset=UTF-8")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("eta: load %s: %s: %w", url, res.Status, ErrNoTemplate)
	}

	return res.Body, nil
}
