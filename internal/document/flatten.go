package document

import (
	"encoding/json"
	"sort"
	"strings"
)

// PathSeparator joins the segments of a flattened path.
const PathSeparator = "."

// Map is a read-only, flattened view of a document: dotted paths mapped to
// scalar values rendered as strings. Segments that themselves contain the
// separator are wrapped in brackets, so {"sub": {"file.ext": "v"}} is
// reachable as "sub.[file.ext]".
//
// A Map is a snapshot; it does not follow later changes to the source tree.
type Map map[string]string

// Flatten builds a Map from every scalar leaf of root. Unlike Transform it
// applies no eligibility rules: ignore-marked keys and _public_key are
// included. Nulls and arrays are skipped.
//
// When two leaves flatten to the same path the one later in document order
// wins.
func Flatten(root *Object) Map {
	m := make(Map)
	flattenObject(m, root, "")
	return m
}

func flattenObject(m Map, o *Object, prefix string) {
	for _, key := range o.keys {
		path := escapeSegment(key)
		if prefix != "" {
			path = prefix + PathSeparator + path
		}

		switch v := o.values[key].(type) {
		case *Object:
			flattenObject(m, v, path)
		case string:
			m[path] = v
		case json.Number:
			m[path] = v.String()
		case bool:
			if v {
				m[path] = "true"
			} else {
				m[path] = "false"
			}
		}
	}
}

func escapeSegment(key string) string {
	if strings.Contains(key, PathSeparator) {
		return "[" + key + "]"
	}
	return key
}

// Get returns the value at path.
func (m Map) Get(path string) (string, bool) {
	v, ok := m[path]
	return v, ok
}

// GetOr returns the value at path, or def when it is absent.
func (m Map) GetOr(path, def string) string {
	if v, ok := m[path]; ok {
		return v
	}
	return def
}

// Keys returns every path in lexical order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
