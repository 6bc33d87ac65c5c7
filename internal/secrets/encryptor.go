package secrets

import (
	"fmt"

	kerrors "github.com/PolarWolf314/ejgo/internal/errors"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/salsa20/salsa"
)

// Encryptor seals values for a single recipient. It holds the sender's key
// pair and the shared key derived against the recipient's public key, so
// every value it produces can be opened with the recipient's private key and
// the sender public key embedded in the message.
//
// An Encryptor has no mutable state and may be shared between goroutines.
type Encryptor struct {
	keys   KeyPair
	shared Key
}

// NewEncryptor derives the shared key between own and peer.
func NewEncryptor(own KeyPair, peer Key) (*Encryptor, error) {
	shared, err := sharedKey(own.Private, peer)
	if err != nil {
		return nil, err
	}
	return NewEncryptorWithSharedKey(own, shared), nil
}

// NewEncryptorWithSharedKey builds an Encryptor from an already derived
// shared key.
func NewEncryptorWithSharedKey(own KeyPair, shared Key) *Encryptor {
	return &Encryptor{keys: own, shared: shared}
}

// PublicKey returns the sender public key embedded in every message.
func (e *Encryptor) PublicKey() Key {
	return e.keys.Public
}

// Encrypt seals plaintext under a fresh nonce and returns it in wire form.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	nonce := RandomNonce()
	shared := [KeySize]byte(e.shared)
	nonceArr := [NonceSize]byte(nonce)

	msg := Message{
		Version: MessageVersion,
		Key:     e.keys.Public,
		Nonce:   nonce,
		Value:   secretbox.Seal(nil, []byte(plaintext), &nonceArr, &shared),
	}
	return msg.String(), nil
}

// sharedKey computes the NaCl box precomputed key: HSalsa20 over the X25519
// output. Unlike box.Precompute it surfaces low-order points as an error.
func sharedKey(private, peer Key) (Key, error) {
	dh, err := curve25519.X25519(private[:], peer[:])
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", kerrors.ErrKeyAgreementFailed, err)
	}

	var in [32]byte
	copy(in[:], dh)

	var out [32]byte
	var zeros [16]byte
	salsa.HSalsa20(&out, &zeros, &in, &salsa.Sigma)
	return Key(out), nil
}
