package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/ejgo/internal/audit"
	"github.com/PolarWolf314/ejgo/internal/secrets"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	KeyOptions

	// File is the secrets file to decrypt.
	File string
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Data is the decrypted document as indented JSON.
	Data []byte

	// PublicKey is the key the document declares.
	PublicKey secrets.Key

	// KeyPath is the private key file used, empty when read from stdin.
	KeyPath string

	// Warnings are non-fatal problems, such as a readable key file.
	Warnings []string

	// AuditErr is set if the operation could not be recorded.
	AuditErr error
}

// Decrypt decrypts every encrypted value of a secrets file and returns the
// whole document, _public_key included. The file itself is not modified.
//
// Returns ErrMissingPublicKey if the file declares no usable public key,
// ErrKeyNotFound if the key directory has no matching private key, and
// ErrDecryptionFailed if any value fails to decrypt.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, err := loadAndDecrypt(opts.File, opts.KeyOptions)
	if err != nil {
		return nil, err
	}

	data, err := d.file.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.File, err)
	}

	return &DecryptResult{
		Data:      data,
		PublicKey: d.publicKey,
		KeyPath:   d.keyPath,
		Warnings:  d.warnings,
		AuditErr:  d.record(audit.OpDecrypt, opts.File),
	}, nil
}
