package seal

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the size of a signing key in bytes (256 bits of entropy).
const KeySize = 32

// SigningKey is a meter's secret authentication key. It exists only in
// process memory for the lifetime of its meter and must never appear in
// any serialized form.
type SigningKey []byte

// NewSigningKey generates a fresh signing key from crypto/rand.
func NewSigningKey() (SigningKey, error) {
	key := make(SigningKey, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	return key, nil
}

// DeriveSigningKey derives a signing key from a master seed using
// HKDF-SHA256, bound to the given info string. The same seed and info
// always produce the same key, which makes fixture fleets reproducible
// across process restarts. The seed must be at least 32 bytes long.
func DeriveSigningKey(seed []byte, info string) (SigningKey, error) {
	if len(seed) < KeySize {
		return nil, errors.New("master seed must be at least 32 bytes")
	}

	key := make(SigningKey, KeySize)
	kdf := hkdf.New(sha256.New, seed, nil, []byte(info))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	return key, nil
}

// Validate checks that the key carries enough entropy to sign with.
func (k SigningKey) Validate() error {
	if len(k) < KeySize {
		return errors.New("signing key must be at least 32 bytes")
	}
	return nil
}
