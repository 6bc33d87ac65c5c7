package document

import (
	"fmt"
	"strings"
)

// IgnorePrefix marks keys whose direct string value is never transformed.
const IgnorePrefix = "_"

// TransformFunc maps one eligible string value to its replacement.
type TransformFunc func(string) (string, error)

// IsIgnored reports whether key carries the ignore marker.
func IsIgnored(key string) bool {
	return strings.HasPrefix(key, IgnorePrefix)
}

// Transform applies fn in place to every eligible string in root: a string
// member whose key is not ignore-marked. Objects are always recursed into,
// including ignore-marked ones, while numbers, booleans, nulls and arrays are
// left untouched.
//
// The walk stops at the first error, which is returned wrapped with the
// dotted path of the failing value. Members visited before the failure have
// already been replaced, so callers must discard root on error.
func Transform(root *Object, fn TransformFunc) error {
	return transformObject(root, "", fn)
}

func transformObject(o *Object, prefix string, fn TransformFunc) error {
	for _, key := range o.keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch v := o.values[key].(type) {
		case *Object:
			if err := transformObject(v, path, fn); err != nil {
				return err
			}
		case string:
			if IsIgnored(key) {
				continue
			}
			out, err := fn(v)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			o.values[key] = out
		}
	}
	return nil
}

// Chain composes transforms left to right, stopping at the first error.
func Chain(fns ...TransformFunc) TransformFunc {
	return func(s string) (string, error) {
		var err error
		for _, fn := range fns {
			if s, err = fn(s); err != nil {
				return "", err
			}
		}
		return s, nil
	}
}
