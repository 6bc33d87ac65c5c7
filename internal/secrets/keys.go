package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/ejgo/internal/errors"

	"golang.org/x/crypto/curve25519"
)

// These match the NaCl box constants.
const (
	KeySize   = 32
	NonceSize = 24
)

// Key is a Curve25519 public or private key, or a precomputed shared key.
type Key [KeySize]byte

// Nonce is the per-message nonce for the box construction.
type Nonce [NonceSize]byte

// KeyPair holds a public key together with the private key it was derived from.
type KeyPair struct {
	Public  Key
	Private Key
}

// RandomKey returns a key filled from the system CSPRNG.
func RandomKey() Key {
	var k Key
	mustRead(k[:])
	return k
}

// RandomNonce returns a nonce filled from the system CSPRNG.
func RandomNonce() Nonce {
	var n Nonce
	mustRead(n[:])
	return n
}

// crypto/rand only fails when the OS entropy source is unusable, at which
// point no key or nonce can be trusted.
func mustRead(b []byte) {
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("secrets: reading random bytes: %v", err))
	}
}

// String returns the lowercase hex form of the key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// IsZero reports whether every byte of the key is zero.
func (k Key) IsZero() bool {
	return k == Key{}
}

// ParseKey decodes a 64 character lowercase hex string into a Key. Only the
// form String produces is accepted, so parsed keys always print back to the
// same text.
func ParseKey(s string) (Key, error) {
	var k Key
	if len(s) != 2*KeySize {
		return k, fmt.Errorf("%w: expected %d hex characters, got %d", kerrors.ErrInvalidKey, 2*KeySize, len(s))
	}
	if i := strings.IndexFunc(s, isUpperHex); i >= 0 {
		return k, fmt.Errorf("%w: uppercase hex character %q at offset %d", kerrors.ErrInvalidKey, s[i], i)
	}
	if _, err := hex.Decode(k[:], []byte(s)); err != nil {
		return Key{}, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
	}
	return k, nil
}

func isUpperHex(r rune) bool {
	return r >= 'A' && r <= 'F'
}

// NewKeyPair pairs an existing public and private key. The caller is
// responsible for the keys belonging together; decryption with a mismatched
// pair fails authentication rather than producing garbage.
func NewKeyPair(public, private Key) KeyPair {
	return KeyPair{Public: public, Private: private}
}

// GenerateKeyPair creates a random private key and derives its public key.
func GenerateKeyPair() (KeyPair, error) {
	return KeyPairFromPrivate(RandomKey())
}

// KeyPairFromPrivate derives the public key for private via base point
// multiplication.
func KeyPairFromPrivate(private Key) (KeyPair, error) {
	pub, err := curve25519.X25519(private[:], curve25519.Basepoint)
	if err != nil {
		return KeyPair{}, fmt.Errorf("%w: %v", kerrors.ErrKeyAgreementFailed, err)
	}
	var public Key
	copy(public[:], pub)
	return KeyPair{Public: public, Private: private}, nil
}

// Encryptor returns an Encryptor that seals values for peer using this pair
// as the sender.
func (kp KeyPair) Encryptor(peer Key) (*Encryptor, error) {
	return NewEncryptor(kp, peer)
}

// Decryptor returns a Decryptor for values sealed to this pair's public key.
func (kp KeyPair) Decryptor() *Decryptor {
	return NewDecryptor(kp)
}
