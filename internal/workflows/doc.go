// Package workflows provides high-level orchestration for ejgo commands.
//
// Workflows coordinate the other packages (configs, document, secrets,
// render, audit) to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns
// like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving settings such as the key directory
//   - Loading documents and private keys
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Keygen: generates a key pair, optionally storing the private key
//   - Encrypt: encrypts secrets files in place
//   - Decrypt: renders a decrypted copy of a secrets file
//   - Env: renders the environment section as shell exports
//   - KubeSecrets: renders the kubernetes section as Secret manifests
//
// # Error Handling
//
// Workflows return errors wrapping the sentinels in internal/errors, so the
// CLI layer can choose a message with errors.Is:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, kerrors.ErrKeyNotFound) {
//	    // Suggest ejgo keygen --write or --keydir
//	}
//
// Audit logging failures are reported on the result, never as the
// workflow's error.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Multi-file workflows stop between files once it is cancelled.
package workflows
