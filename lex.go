package eta

import (
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
	"golang.org/x/net/html"
)

// tokenDelim opens and closes an interpolation: #identifier#
const tokenDelim = "#"

// attribute prefixes consumed by the parser
const (
	eventPrefix    = "@"
	reservedPrefix = ":"
)

// NodeKind is the parser's classification of a node.
type NodeKind int

func (k NodeKind) String() string {
	switch k {
	case SlotNode:
		return "slot"
	case StyleNode:
		return "style"
	case ElementNode:
		return "element"
	case StaticText:
		return "text"
	case InterpolatedText:
		return "interpolated"
	default:
		return "other"
	}
}

const (
	OtherNode NodeKind = iota
	SlotNode
	StyleNode
	ElementNode
	StaticText
	InterpolatedText
)

// Classify reports how the parser treats n.
func Classify(n *html.Node) NodeKind {
	switch n.Type {
	case html.ElementNode:
		switch n.Data {
		case "slot":
			return SlotNode
		case "style":
			return StyleNode
		}
		return ElementNode
	case html.TextNode:
		if HasTokens(n.Data) {
			return InterpolatedText
		}
		return StaticText
	}

	return OtherNode
}

// tokenLines splits raw after each newline. Tokens never span lines.
func tokenLines(raw string) []string {
	return strings.SplitAfter(raw, "\n")
}

// scanTokens calls fn with every trimmed identifier in raw, in order.
// A delimiter without a closing partner on the same line is not a token.
func scanTokens(raw string, fn func(name string)) {
	if !strings.Contains(raw, tokenDelim) {
		return
	}

	for _, line := range tokenLines(raw) {
		_, _ = fasttemplate.ExecuteFunc(line, tokenDelim, tokenDelim, io.Discard, func(w io.Writer, tag string) (int, error) {
			fn(strings.TrimSpace(tag))
			return 0, nil
		})
	}
}

// HasTokens reports whether raw contains at least one #identifier# token.
func HasTokens(raw string) bool {
	found := false
	scanTokens(raw, func(string) { found = true })
	return found
}

// Identifiers returns the distinct identifiers referenced by raw, in order
// of first appearance.
func Identifiers(raw string) []string {
	var names []string
	seen := map[string]bool{}
	scanTokens(raw, func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	})

	return names
}
