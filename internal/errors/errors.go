package errors

import "errors"

// Key errors indicate malformed or unavailable key material.
var (
	// ErrInvalidKey indicates a key is not exactly 64 hex characters (32 bytes).
	ErrInvalidKey = errors.New("invalid key")

	// ErrKeyNotFound indicates the private key file is absent from the key directory.
	ErrKeyNotFound = errors.New("private key not found")
)

// Message errors indicate text that is not a well-formed encrypted value.
var (
	// ErrMalformedMessage indicates the text does not match the EJ[...] wire grammar.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrCorruptField indicates a structurally valid segment decodes to the wrong length.
	ErrCorruptField = errors.New("corrupt message field")
)

// Cryptographic errors indicate failures during key agreement or decryption.
var (
	// ErrKeyAgreementFailed indicates the curve operation rejected a key.
	ErrKeyAgreementFailed = errors.New("key agreement failed")

	// ErrDecryptionFailed indicates a value could not be decrypted.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidPlaintext indicates a value authenticated but is not valid UTF-8.
	// It is always reported together with ErrDecryptionFailed.
	ErrInvalidPlaintext = errors.New("decrypted value is not valid UTF-8")
)

// Document errors indicate secrets files that cannot be processed.
var (
	// ErrMissingPublicKey indicates the document lacks a valid _public_key.
	ErrMissingPublicKey = errors.New("public key not present in document")

	// ErrInvalidDocument indicates the file is not a JSON object.
	ErrInvalidDocument = errors.New("invalid secrets document")

	// ErrSectionNotFound indicates a required top-level section is missing.
	ErrSectionNotFound = errors.New("section not found in document")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")
)
