package eta

import (
	"bytes"
	"io/ioutil"
	"log"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/andreyvit/diff"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func quietRuntime() *Runtime {
	return New().SetLogger(log.New(ioutil.Discard, "", 0))
}

func capturedRuntime() (*Runtime, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return New().SetLogger(log.New(buf, "", 0)), buf
}

func parseDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func find(t *testing.T, doc *goquery.Document, selector string) *html.Node {
	t.Helper()
	sel := doc.Find(selector)
	require.NotZero(t, sel.Length(), "no element matches %s", selector)
	return sel.Get(0)
}

func define(t *testing.T, rt *Runtime, tag, markup string, cfg Config) {
	t.Helper()
	tpl, err := ParseTemplateString(tag, markup)
	require.NoError(t, err)
	require.NoError(t, rt.Define(tag, tpl, cfg))
}

func assertHTML(t *testing.T, want string, n *html.Node) {
	t.Helper()
	got, err := InnerHTML(n)
	require.NoError(t, err)
	if got != want {
		t.Errorf("wrong output:\n%s", diff.LineDiff(got, want))
	}
}
