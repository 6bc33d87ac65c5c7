package secrets

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"

	kerrors "github.com/PolarWolf314/ejgo/internal/errors"
)

// MessageVersion is the only wire version this package produces.
const MessageVersion = 1

// messagePattern matches stored values of the form
// EJ[<version>:<base64 key>:<base64 nonce>:<base64 box>].
var messagePattern = regexp.MustCompile(`^EJ\[(\d):([A-Za-z0-9+=/]{44}):([A-Za-z0-9+=/]{32}):(.+)\]$`)

// Message is one encrypted value as stored in a secrets file.
type Message struct {
	Version uint8
	// Key is the sender's public key, not the shared key.
	Key   Key
	Nonce Nonce
	Value []byte
}

// IsEncrypted reports whether s is in wire form. It only checks structure.
func IsEncrypted(s string) bool {
	return messagePattern.MatchString(s)
}

// String encodes the message in wire form.
func (m Message) String() string {
	return fmt.Sprintf("EJ[%d:%s:%s:%s]",
		m.Version,
		base64.StdEncoding.EncodeToString(m.Key[:]),
		base64.StdEncoding.EncodeToString(m.Nonce[:]),
		base64.StdEncoding.EncodeToString(m.Value),
	)
}

// ParseMessage decodes a wire form string.
func ParseMessage(s string) (Message, error) {
	parts := messagePattern.FindStringSubmatch(s)
	if parts == nil {
		return Message{}, kerrors.ErrMalformedMessage
	}

	version, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return Message{}, fmt.Errorf("%w: version: %v", kerrors.ErrMalformedMessage, err)
	}

	var msg Message
	msg.Version = uint8(version)

	if err := decodeFixed(msg.Key[:], parts[2], "key"); err != nil {
		return Message{}, err
	}
	if err := decodeFixed(msg.Nonce[:], parts[3], "nonce"); err != nil {
		return Message{}, err
	}

	msg.Value, err = base64.StdEncoding.DecodeString(parts[4])
	if err != nil {
		return Message{}, fmt.Errorf("%w: value: %v", kerrors.ErrCorruptField, err)
	}

	return msg, nil
}

func decodeFixed(dst []byte, segment, field string) error {
	raw, err := base64.StdEncoding.DecodeString(segment)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrCorruptField, field, err)
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("%w: %s: expected %d bytes, got %d", kerrors.ErrCorruptField, field, len(dst), len(raw))
	}
	copy(dst, raw)
	return nil
}
