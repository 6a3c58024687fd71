package eta

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// IsSlice ...
func IsSlice(val interface{}) bool {
	t := reflect.TypeOf(val)
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}

// IsMap ...
func IsMap(val interface{}) bool {
	t := reflect.TypeOf(val)
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.Kind() == reflect.Map
}

// stringify renders a data value the way it appears in a text node.
// nil renders as an empty string, collections as JSON.
func stringify(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}

	if IsSlice(val) || IsMap(val) {
		return marshalJSON(val)
	}

	return fmt.Sprint(val)
}

// marshalJSON marshals val to json, falling back to fmt formatting
func marshalJSON(val interface{}) string {
	retv, err := json.Marshal(val)
	if err != nil {
		return fmt.Sprint(val)
	}

	return string(retv)
}
