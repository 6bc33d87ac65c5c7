package document

import (
	"fmt"
	"os"
)

// PublicKeyField is the reserved top-level member holding the hex encoded
// public key every value in the file is encrypted to.
const PublicKeyField = "_public_key"

// File is a loaded secrets document.
type File struct {
	Root *Object
}

// Load reads and parses the secrets file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// ParseFile parses a secrets document from memory.
func ParseFile(data []byte) (*File, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &File{Root: root}, nil
}

// PublicKey returns the raw _public_key text, if it is present as a string.
func (f *File) PublicKey() (string, bool) {
	return f.Root.String(PublicKeyField)
}

// Transform applies fn to every eligible value. See Transform.
func (f *File) Transform(fn TransformFunc) error {
	return Transform(f.Root, fn)
}

// Object returns the top-level object member named key.
func (f *File) Object(key string) (*Object, bool) {
	return f.Root.Object(key)
}

// Children returns the direct string members of the top-level object key,
// or false when key is missing or not an object.
func (f *File) Children(key string) (map[string]string, bool) {
	obj, ok := f.Root.Object(key)
	if !ok {
		return nil, false
	}
	children := make(map[string]string)
	for _, k := range obj.keys {
		if s, ok := obj.values[k].(string); ok {
			children[k] = s
		}
	}
	return children, true
}

// Clone returns a deep copy of f.
func (f *File) Clone() *File {
	return &File{Root: f.Root.Clone()}
}

// WithoutPublicKey returns a copy of f with the _public_key member removed.
func (f *File) WithoutPublicKey() *File {
	c := f.Clone()
	c.Root.Delete(PublicKeyField)
	return c
}

// Flatten returns the flattened view of f.
func (f *File) Flatten() Map {
	return Flatten(f.Root)
}

// Bytes renders f as indented JSON terminated by a newline.
func (f *File) Bytes() ([]byte, error) {
	data, err := Marshal(f.Root)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// LoadMap loads path and returns its flattened view without decrypting.
func LoadMap(path string) (Map, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return f.Flatten(), nil
}
