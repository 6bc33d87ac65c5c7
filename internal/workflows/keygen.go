package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/ejgo/internal/audit"
	"github.com/PolarWolf314/ejgo/internal/configs"
	"github.com/PolarWolf314/ejgo/internal/secrets"
)

// KeygenOptions configures the keygen workflow.
type KeygenOptions struct {
	// KeyDir overrides the configured key directory.
	KeyDir string

	// Write stores the private key in the key directory instead of
	// returning it for display.
	Write bool
}

// KeygenResult contains the generated key pair.
type KeygenResult struct {
	// PublicKey goes in the _public_key member of secrets files.
	PublicKey secrets.Key

	// PrivateKey is only set when the key was not written to disk.
	PrivateKey secrets.Key

	// KeyPath is where the private key was written, if Write was set.
	KeyPath string

	// AuditErr is set if the operation could not be recorded.
	AuditErr error
}

// Keygen generates a new key pair.
//
// With Write set, the private key is stored at <keydir>/<public key> with
// owner-only permissions and is left out of the result.
func Keygen(ctx context.Context, opts KeygenOptions) (*KeygenResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings, err := configs.ResolveSettings(opts.KeyDir)
	if err != nil {
		return nil, err
	}

	pair, err := secrets.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("generating key pair: %w", err)
	}

	result := &KeygenResult{PublicKey: pair.Public}

	if !opts.Write {
		result.PrivateKey = pair.Private
		return result, nil
	}

	result.KeyPath, err = secrets.WritePrivateKey(settings.KeyDir, pair)
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpKeygen)
	entry.PublicKey = pair.Public.String()
	entry.KeyFile = result.KeyPath
	result.AuditErr = audit.Log(settings.AuditLog, entry)

	return result, nil
}
