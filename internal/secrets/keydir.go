package secrets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/ejgo/internal/document"
	kerrors "github.com/PolarWolf314/ejgo/internal/errors"
)

// LoadPrivateKey reads the private key for f's public key from keyDir. The
// key file is named by the public key's hex form and holds the private key
// as hex text.
func LoadPrivateKey(f *document.File, keyDir string) (Key, error) {
	public, err := PublicKeyOf(f)
	if err != nil {
		return Key{}, err
	}
	return ReadPrivateKeyFile(PrivateKeyPath(keyDir, public))
}

// PrivateKeyPath returns where the private key for public is stored in keyDir.
func PrivateKeyPath(keyDir string, public Key) string {
	return filepath.Join(keyDir, public.String())
}

// ReadPrivateKeyFile reads and parses a private key file.
func ReadPrivateKeyFile(path string) (Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Key{}, fmt.Errorf("%w: %s", kerrors.ErrKeyNotFound, path)
		}
		return Key{}, fmt.Errorf("reading private key %s: %w", path, err)
	}
	return parsePrivateKeyText(data)
}

// ReadPrivateKey reads a hex private key from r, typically stdin.
func ReadPrivateKey(r io.Reader) (Key, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Key{}, fmt.Errorf("reading private key: %w", err)
	}
	return parsePrivateKeyText(data)
}

func parsePrivateKeyText(data []byte) (Key, error) {
	return ParseKey(strings.TrimSpace(string(data)))
}

// WritePrivateKey stores pair's private key in keyDir, creating the directory
// if needed, and returns the file path.
func WritePrivateKey(keyDir string, pair KeyPair) (string, error) {
	if err := os.MkdirAll(keyDir, 0700); err != nil {
		return "", fmt.Errorf("creating key directory %s: %w", keyDir, err)
	}

	path := PrivateKeyPath(keyDir, pair.Public)
	if err := os.WriteFile(path, []byte(pair.Private.String()), 0600); err != nil {
		return "", fmt.Errorf("writing private key to %s: %w", path, err)
	}

	return path, nil
}

// CheckKeyFilePermissions returns a non-nil error describing the problem when
// the private key file at path is readable by group or others.
func CheckKeyFilePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		return fmt.Errorf("private key file %s has overly permissive permissions (%o)", path, perm)
	}
	return nil
}
