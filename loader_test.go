package eta

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, l Loader, src string) string {
	t.Helper()
	rc, err := l.Load(context.Background(), src)
	require.NoError(t, err)
	defer rc.Close()
	b, err := ioutil.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x-a.html"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "x-b.tmpl"), []byte("b"), 0o644))

	assert.Equal(t, "a", readAll(t, NewDirLoader(dir, ""), "x-a"))
	assert.Equal(t, "a", readAll(t, NewDirLoader(dir, ".html"), "x-a.html"))
	assert.Equal(t, "b", readAll(t, NewDirLoader(dir, "tmpl"), "sub/x-b"))

	_, err := NewDirLoader(dir, "html").Load(context.Background(), "none")
	assert.True(t, os.IsNotExist(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewDirLoader(dir, "html").Load(ctx, "x-a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPLoader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/components/x-a.html" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<p>#v#</p>`))
	}))
	defer srv.Close()

	l := &HTTPLoader{Client: srv.Client(), Base: srv.URL + "/components/"}
	assert.Equal(t, `<p>#v#</p>`, readAll(t, l, "x-a.html"))
	assert.Equal(t, `<p>#v#</p>`, readAll(t, &HTTPLoader{}, srv.URL+"/components/x-a.html"))

	_, err := l.Load(context.Background(), "missing.html")
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestRuntime_useHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<style>i{}</style><i>#v#</i>`))
	}))
	defer srv.Close()

	rt := quietRuntime()
	require.NoError(t, rt.Use(context.Background(), &HTTPLoader{Client: srv.Client()}, srv.URL+"/x-i.html", "x-i", Config{}))

	host := find(t, parseDoc(t, `<x-i v="1"></x-i>`), "x-i")
	_, err := rt.Construct(host)
	require.NoError(t, err)
	assertHTML(t, `<i>1</i>`, host)
	assert.Len(t, rt.Styles("x-i"), 1)
}
