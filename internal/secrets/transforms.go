package secrets

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/ejgo/internal/document"
	kerrors "github.com/PolarWolf314/ejgo/internal/errors"
)

// PublicKeyOf returns the public key declared by f.
func PublicKeyOf(f *document.File) (Key, error) {
	raw, ok := f.PublicKey()
	if !ok {
		return Key{}, kerrors.ErrMissingPublicKey
	}
	key, err := ParseKey(raw)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %w", kerrors.ErrMissingPublicKey, err)
	}
	return key, nil
}

// EncryptTransform returns a transform that encrypts values to f's public
// key. A single ephemeral key pair is generated per call and shared by every
// value the transform encrypts, so one pass over a file performs one key
// agreement. Values already in wire form are returned unchanged.
func EncryptTransform(f *document.File) (document.TransformFunc, error) {
	public, err := PublicKeyOf(f)
	if err != nil {
		return nil, err
	}
	return EncryptTransformTo(public)
}

// EncryptTransformTo is EncryptTransform for a public key the caller has
// already read from the file.
func EncryptTransformTo(public Key) (document.TransformFunc, error) {
	ephemeral, err := GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generating ephemeral key: %w", err)
	}

	encryptor, err := ephemeral.Encryptor(public)
	if err != nil {
		return nil, err
	}

	return encryptWith(encryptor), nil
}

func encryptWith(e *Encryptor) document.TransformFunc {
	return func(s string) (string, error) {
		if IsEncrypted(s) {
			return s, nil
		}
		return e.Encrypt(s)
	}
}

// DecryptTransform returns a transform that decrypts values using private
// paired with f's public key. Values not in wire form are returned unchanged.
func DecryptTransform(f *document.File, private Key) (document.TransformFunc, error) {
	public, err := PublicKeyOf(f)
	if err != nil {
		return nil, err
	}
	return decryptWith(NewKeyPair(public, private).Decryptor()), nil
}

func decryptWith(d *Decryptor) document.TransformFunc {
	return func(s string) (string, error) {
		if !IsEncrypted(s) {
			return s, nil
		}
		return d.Decrypt(s)
	}
}

// Compact returns a transform that folds multi-line values onto one line:
// the value is trimmed and each LF or CR is replaced with the two character
// escape \n or \r. Values without line breaks are returned unchanged.
func Compact() document.TransformFunc {
	return func(s string) (string, error) {
		if !strings.ContainsAny(s, "\n\r") {
			return s, nil
		}
		s = strings.TrimSpace(s)
		s = strings.ReplaceAll(s, "\n", `\n`)
		s = strings.ReplaceAll(s, "\r", `\r`)
		return s, nil
	}
}

// Decrypt decrypts every eligible value of f in place.
func Decrypt(f *document.File, private Key) error {
	fn, err := DecryptTransform(f, private)
	if err != nil {
		return err
	}
	return f.Transform(fn)
}

// LoadAndDecryptMap loads path, decrypts it with private and returns the
// flattened view.
func LoadAndDecryptMap(path string, private Key) (document.Map, error) {
	f, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	if err := Decrypt(f, private); err != nil {
		return nil, err
	}
	return f.Flatten(), nil
}
