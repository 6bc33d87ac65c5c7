package secrets

import (
	"fmt"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/ejgo/internal/errors"

	"golang.org/x/crypto/nacl/box"
)

// Decryptor opens values sealed to its key pair. The sender key travels in
// each message, so one Decryptor serves values from any number of senders.
type Decryptor struct {
	keys KeyPair
}

// NewDecryptor returns a Decryptor for own.
func NewDecryptor(own KeyPair) *Decryptor {
	return &Decryptor{keys: own}
}

// Decrypt parses a wire form value and returns its plaintext. Every failure
// is reported as ErrDecryptionFailed.
func (d *Decryptor) Decrypt(ciphertext string) (string, error) {
	msg, err := ParseMessage(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", kerrors.ErrDecryptionFailed, err)
	}

	nonce := [NonceSize]byte(msg.Nonce)
	sender := [KeySize]byte(msg.Key)
	private := [KeySize]byte(d.keys.Private)

	plaintext, ok := box.Open(nil, msg.Value, &nonce, &sender, &private)
	if !ok {
		return "", fmt.Errorf("%w: message authentication failed", kerrors.ErrDecryptionFailed)
	}

	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: %w", kerrors.ErrDecryptionFailed, kerrors.ErrInvalidPlaintext)
	}

	return string(plaintext), nil
}
