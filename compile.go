package eta

import (
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Lookup resolves an interpolation identifier to its current value.
type Lookup interface {
	Lookup(name string) (interface{}, bool)
}

// Values is a plain data snapshot usable as a Lookup.
type Values map[string]interface{}

// Lookup implements Lookup.
func (v Values) Lookup(name string) (interface{}, bool) {
	val, ok := v[name]
	return val, ok
}

// lookupFunc adapts a function to Lookup.
type lookupFunc func(name string) (interface{}, bool)

func (f lookupFunc) Lookup(name string) (interface{}, bool) {
	return f(name)
}

// Compile substitutes every #identifier# token in raw with the stringified
// value found in data. Absent and nil values render as an empty string.
// A token ends at the first closing delimiter on its own line.
// raw is never modified, so compiling it again against unchanged data
// yields the same text.
func Compile(raw string, data Lookup) string {
	if !strings.Contains(raw, tokenDelim) {
		return raw
	}

	f := func(w io.Writer, tag string) (int, error) {
		if data == nil {
			return 0, nil
		}
		val, ok := data.Lookup(strings.TrimSpace(tag))
		if !ok {
			return 0, nil
		}
		return io.WriteString(w, stringify(val))
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for _, line := range tokenLines(raw) {
		sb.WriteString(fasttemplate.ExecuteFuncString(line, tokenDelim, tokenDelim, f))
	}

	return sb.String()
}
