package seal

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Signature is the lowercase hex encoding of an HMAC-SHA256 authentication tag.
type Signature string

// NewSignature creates a signature object from its hex representation with validation.
func NewSignature(s string) (Signature, error) {
	sig := Signature(s)
	if err := sig.Validate(); err != nil {
		return "", err
	}
	return sig, nil
}

// Validate checks that the signature is a well-formed lowercase hex SHA-256 MAC.
func (s Signature) Validate() error {
	if len(s) != 64 {
		return errors.New("invalid signature: must be 64 hex characters")
	}
	if strings.ToLower(string(s)) != string(s) {
		return errors.New("invalid signature: must be lowercase hex")
	}
	if _, err := hex.DecodeString(string(s)); err != nil {
		return fmt.Errorf("invalid signature encoding: %w", err)
	}
	return nil
}

// String returns the hex representation of the signature.
func (s Signature) String() string {
	return string(s)
}

// DataHash is a 0x-prefixed lowercase hex SHA-256 digest used for replay
// detection by downstream consumers.
type DataHash string

// NewDataHash creates a data hash object from its string representation with validation.
func NewDataHash(s string) (DataHash, error) {
	h := DataHash(s)
	if err := h.Validate(); err != nil {
		return "", err
	}
	return h, nil
}

// Validate checks that the hash carries the 0x marker and a full SHA-256 digest.
func (h DataHash) Validate() error {
	if !strings.HasPrefix(string(h), "0x") {
		return errors.New("invalid data hash: missing 0x prefix")
	}
	digest := string(h[2:])
	if len(digest) != 64 {
		return errors.New("invalid data hash: must be 64 hex characters after the prefix")
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return fmt.Errorf("invalid data hash encoding: %w", err)
	}
	return nil
}

// String returns the prefixed hex representation of the hash.
func (h DataHash) String() string {
	return string(h)
}

// Nonce is a 128-bit random value rendered as 32 lowercase hex characters.
// A fresh nonce is drawn for every reading and never reused.
type Nonce string

// NewNonce generates a fresh random nonce from a cryptographically strong source.
func NewNonce() Nonce {
	id := uuid.New()
	return Nonce(hex.EncodeToString(id[:]))
}

// Validate checks that the nonce is a well-formed 128-bit hex value.
func (n Nonce) Validate() error {
	if len(n) != 32 {
		return errors.New("invalid nonce: must be 32 hex characters")
	}
	if _, err := hex.DecodeString(string(n)); err != nil {
		return fmt.Errorf("invalid nonce encoding: %w", err)
	}
	return nil
}

// String returns the hex representation of the nonce.
func (n Nonce) String() string {
	return string(n)
}
