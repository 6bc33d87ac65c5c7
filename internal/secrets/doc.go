// Package secrets implements the encryption used for values in EJSON
// secrets files.
//
// # Encryption Architecture
//
// Each secrets file declares a long-lived Curve25519 public key in its
// _public_key member. The matching private key lives outside the repository,
// in a key directory, in a file named after the public key's hex form.
//
// Encrypting a file:
//
//  1. A fresh ephemeral key pair is generated for the pass
//  2. One shared key is derived from the ephemeral private key and the
//     file's public key (NaCl box precomputation)
//  3. Every eligible plaintext value is sealed with secretbox under that
//     shared key and a random 24-byte nonce
//  4. The ephemeral public key is embedded in each value; the ephemeral
//     private key is discarded
//
// Decrypting only needs the file's private key: the sender key inside each
// message is enough to re-derive the shared key.
//
// # Wire Format
//
// Encrypted values are stored as
//
//	EJ[1:<base64 sender public key>:<base64 nonce>:<base64 box>]
//
// Values already in this form are left alone when encrypting, and values not
// in this form are left alone when decrypting, so both operations are safe
// to repeat on partially encrypted files.
package secrets
