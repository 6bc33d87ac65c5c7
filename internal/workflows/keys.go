package workflows

import (
	"bytes"
	"fmt"

	"github.com/PolarWolf314/ejgo/internal/audit"
	"github.com/PolarWolf314/ejgo/internal/configs"
	"github.com/PolarWolf314/ejgo/internal/document"
	"github.com/PolarWolf314/ejgo/internal/secrets"
)

// KeyOptions selects where the private key for a document comes from.
type KeyOptions struct {
	// KeyDir overrides the configured key directory.
	KeyDir string

	// PrivateKeyData contains the private key text when reading from stdin.
	// If empty, the key is loaded from the key directory.
	PrivateKeyData []byte
}

// decrypted is a loaded and fully decrypted document.
type decrypted struct {
	file      *document.File
	publicKey secrets.Key
	keyPath   string
	warnings  []string
	settings  *configs.Settings
}

// loadAndDecrypt loads path and decrypts it with the private key matching its
// _public_key. The document is only returned if every value decrypted.
func loadAndDecrypt(path string, opts KeyOptions) (*decrypted, error) {
	settings, err := configs.ResolveSettings(opts.KeyDir)
	if err != nil {
		return nil, err
	}

	f, err := document.Load(path)
	if err != nil {
		return nil, err
	}

	public, err := secrets.PublicKeyOf(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	d := &decrypted{file: f, publicKey: public, settings: settings}

	var private secrets.Key
	if len(opts.PrivateKeyData) > 0 {
		private, err = secrets.ReadPrivateKey(bytes.NewReader(opts.PrivateKeyData))
		if err != nil {
			return nil, fmt.Errorf("reading private key from stdin: %w", err)
		}
	} else {
		d.keyPath = secrets.PrivateKeyPath(settings.KeyDir, public)
		private, err = secrets.ReadPrivateKeyFile(d.keyPath)
		if err != nil {
			return nil, err
		}
		if err := secrets.CheckKeyFilePermissions(d.keyPath); err != nil {
			d.warnings = append(d.warnings, err.Error())
		}
	}

	if err := secrets.Decrypt(f, private); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

// record writes an audit entry for a read operation on d.
func (d *decrypted) record(op, path string) error {
	entry := audit.NewEntry(op)
	entry.Files = []string{path}
	entry.PublicKey = d.publicKey.String()
	return audit.Log(d.settings.AuditLog, entry)
}
