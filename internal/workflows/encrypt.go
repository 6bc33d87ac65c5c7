package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/PolarWolf314/ejgo/internal/audit"
	"github.com/PolarWolf314/ejgo/internal/configs"
	"github.com/PolarWolf314/ejgo/internal/document"
	"github.com/PolarWolf314/ejgo/internal/secrets"
	"github.com/PolarWolf314/ejgo/internal/utils"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// FilePatterns names the files to encrypt: paths, directories or globs.
	FilePatterns []string

	// Compact folds multi-line values onto one line before encrypting.
	Compact bool

	// DryRun encrypts in memory without writing any file.
	DryRun bool
}

// EncryptedFile describes one file the workflow encrypted.
type EncryptedFile struct {
	Path      string
	Bytes     int
	PublicKey secrets.Key
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Files lists the files that were encrypted, in argument order.
	Files []EncryptedFile

	// DryRun indicates whether this was a dry-run (no files modified).
	DryRun bool

	// AuditErr is set if the operation could not be recorded.
	AuditErr error
}

// Encrypt encrypts every eligible value of each file in place, to the public
// key the file declares.
//
// Each file is all-or-nothing: it is only rewritten when all of its values
// encrypted. A failing file does not stop the others; their errors are
// collected and returned together alongside the result for the files that
// succeeded. Values already encrypted are left untouched, so encrypting
// twice is safe.
//
// Returns ErrNoFilesFound if the patterns match nothing.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	settings, err := configs.ResolveSettings("")
	if err != nil {
		return nil, err
	}

	files, err := utils.ResolveFiles(opts.FilePatterns)
	if err != nil {
		return nil, err
	}

	result := &EncryptResult{DryRun: opts.DryRun}

	var errs *multierror.Error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			errs = multierror.Append(errs, err)
			break
		}

		encrypted, err := encryptFile(path, opts)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		result.Files = append(result.Files, *encrypted)
	}

	if len(result.Files) > 0 && !opts.DryRun {
		entry := audit.NewEntry(audit.OpEncrypt)
		for _, f := range result.Files {
			entry.Files = append(entry.Files, f.Path)
		}
		if errs != nil {
			entry.Error = errs.Error()
		}
		result.AuditErr = audit.Log(settings.AuditLog, entry)
	}

	return result, errs.ErrorOrNil()
}

func encryptFile(path string, opts EncryptOptions) (*EncryptedFile, error) {
	f, err := document.Load(path)
	if err != nil {
		return nil, err
	}

	public, err := secrets.PublicKeyOf(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	encrypt, err := secrets.EncryptTransformTo(public)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	fn := encrypt
	if opts.Compact {
		fn = document.Chain(secrets.Compact(), encrypt)
	}

	if err := f.Transform(fn); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	data, err := f.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if !opts.DryRun {
		if err := writeInPlace(path, data); err != nil {
			return nil, err
		}
	}

	return &EncryptedFile{Path: path, Bytes: len(data), PublicKey: public}, nil
}

// writeInPlace replaces path with data, keeping its permissions.
func writeInPlace(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
