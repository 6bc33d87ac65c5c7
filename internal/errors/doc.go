// Package errors provides typed error values for ejgo.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. Every
// failure inside the crypto core maps onto exactly one of these values, so
// the CLI can report which case occurred without inspecting messages.
//
// # Error Categories
//
//   - Key errors: malformed or missing key material (ErrInvalidKey, ErrKeyNotFound)
//   - Message errors: wire text that is not a valid encrypted value
//     (ErrMalformedMessage, ErrCorruptField)
//   - Crypto errors: key agreement or authenticated decryption failures
//     (ErrKeyAgreementFailed, ErrDecryptionFailed, ErrInvalidPlaintext)
//   - Document errors: secrets files that cannot be processed
//     (ErrMissingPublicKey, ErrInvalidDocument, ErrSectionNotFound)
//
// # Usage
//
// Return errors from internal packages, wrapped with context:
//
//	return Key{}, fmt.Errorf("%w: expected %d hex characters, got %d", kerrors.ErrInvalidKey, 64, len(s))
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrKeyNotFound) {
//	    // Point the user at --keydir
//	}
package errors
