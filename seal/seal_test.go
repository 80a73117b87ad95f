package seal

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPayload = Payload{
	MeterID:   "SOLAR-MAIN-001",
	KWh:       4.2,
	Timestamp: 1700000000000,
	CarbonTag: "GREEN",
	Type:      "SOLAR",
	Nonce:     "00112233445566778899aabbccddeeff",
}

func testKey(t *testing.T) SigningKey {
	t.Helper()
	key := make(SigningKey, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err, "Failed to generate test key")
	return key
}

func TestPayloadCanonical(t *testing.T) {
	want := `{"carbonTag":"GREEN","kWh":4.200,"meterId":"SOLAR-MAIN-001",` +
		`"nonce":"00112233445566778899aabbccddeeff","timestamp":1700000000000,"type":"SOLAR"}`
	assert.Equal(t, want, string(testPayload.Canonical()), "Canonical form must use sorted keys and 3-decimal amounts")

	// The same logical payload always canonicalizes to the same bytes.
	again := Payload{
		Nonce:     testPayload.Nonce,
		Type:      testPayload.Type,
		CarbonTag: testPayload.CarbonTag,
		Timestamp: testPayload.Timestamp,
		KWh:       testPayload.KWh,
		MeterID:   testPayload.MeterID,
	}
	assert.Equal(t, testPayload.Canonical(), again.Canonical(), "Construction order must not affect canonical bytes")
}

func TestFormatKWh(t *testing.T) {
	assert.Equal(t, "0.000", FormatKWh(0))
	assert.Equal(t, "4.200", FormatKWh(4.2))
	assert.Equal(t, "12.345", FormatKWh(12.345))
	assert.Equal(t, "999.999", FormatKWh(999.999))
}

func TestSign_KnownVector(t *testing.T) {
	key := make(SigningKey, KeySize)
	for i := range key {
		key[i] = 0x01
	}

	sig := Sign(key, testPayload)
	assert.Equal(t, Signature("251bc5efaba28e26f3766d37132943234eae96ee2f10b8cbe99c3d0e782bc0a3"), sig,
		"Signature must match the fixed HMAC-SHA256 vector")
	assert.NoError(t, sig.Validate())
}

func TestSignVerify(t *testing.T) {
	key := testKey(t)

	sig := Sign(key, testPayload)
	require.NoError(t, sig.Validate(), "Signature should be well-formed hex")
	assert.True(t, Verify(key, testPayload, sig), "Freshly signed payload must verify")

	// Determinism under the same key.
	assert.Equal(t, sig, Sign(key, testPayload), "Signing the same payload twice must be deterministic")

	// A different key never verifies.
	otherKey := testKey(t)
	assert.False(t, Verify(otherKey, testPayload, sig), "Signature must not verify under a different key")
}

func TestVerify_TamperedFields(t *testing.T) {
	key := testKey(t)
	sig := Sign(key, testPayload)

	tampered := []Payload{
		func(p Payload) Payload { p.MeterID = "SOLAR-MAIN-002"; return p }(testPayload),
		func(p Payload) Payload { p.KWh = 4.201; return p }(testPayload),
		func(p Payload) Payload { p.Timestamp++; return p }(testPayload),
		func(p Payload) Payload { p.CarbonTag = "NORMAL"; return p }(testPayload),
		func(p Payload) Payload { p.Type = "LAB"; return p }(testPayload),
		func(p Payload) Payload { p.Nonce = "ffeeddccbbaa99887766554433221100"; return p }(testPayload),
	}
	for _, p := range tampered {
		assert.False(t, Verify(key, p, sig), "Changing any signed field must invalidate the signature")
	}
}

func TestVerify_MalformedSignature(t *testing.T) {
	key := testKey(t)

	assert.False(t, Verify(key, testPayload, "not-hex-at-all"), "Garbage signature must verify false, not panic")
	assert.False(t, Verify(key, testPayload, ""), "Empty signature must verify false")
	assert.False(t, Verify(key, testPayload, Signature("deadbeef")), "Truncated signature must verify false")
}

func TestNewSigningKey(t *testing.T) {
	key, err := NewSigningKey()
	require.NoError(t, err)
	assert.NoError(t, key.Validate())
	assert.Len(t, key, KeySize)

	other, err := NewSigningKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other, "Two generated keys must differ")
}

func TestDeriveSigningKey(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}

	key1, err := DeriveSigningKey(seed, "SOLAR-MAIN-001")
	require.NoError(t, err)
	key2, err := DeriveSigningKey(seed, "SOLAR-MAIN-001")
	require.NoError(t, err)
	assert.Equal(t, key1, key2, "Same seed and info must derive the same key")

	key3, err := DeriveSigningKey(seed, "SOLAR-MAIN-002")
	require.NoError(t, err)
	assert.NotEqual(t, key1, key3, "Different info must derive a different key")

	_, err = DeriveSigningKey(seed[:16], "SOLAR-MAIN-001")
	assert.Error(t, err, "Should reject a seed shorter than 32 bytes")
}

func TestNewNonce(t *testing.T) {
	seen := make(map[Nonce]bool)
	for i := 0; i < 256; i++ {
		n := NewNonce()
		require.NoError(t, n.Validate(), "Generated nonce must be 32 hex characters")
		assert.False(t, seen[n], "Nonces must not repeat")
		seen[n] = true
	}
}

func TestComputeDataHash(t *testing.T) {
	h := ComputeDataHash("SOLAR-MAIN-001", 4.2, 1700000000000, "00112233445566778899aabbccddeeff")
	assert.Equal(t, DataHash("0x53d91a36caf3f180a56a08e5f46693197c53bf6e4d910626e0756ef77c38a803"), h,
		"Data hash must match the fixed SHA-256 vector")
	assert.NoError(t, h.Validate())

	// Pure function of its four inputs.
	again := ComputeDataHash("SOLAR-MAIN-001", 4.2, 1700000000000, "00112233445566778899aabbccddeeff")
	assert.Equal(t, h, again, "Data hash must be deterministic")

	// Any input change produces a different hash.
	assert.NotEqual(t, h, ComputeDataHash("SOLAR-MAIN-002", 4.2, 1700000000000, "00112233445566778899aabbccddeeff"))
	assert.NotEqual(t, h, ComputeDataHash("SOLAR-MAIN-001", 4.3, 1700000000000, "00112233445566778899aabbccddeeff"))
	assert.NotEqual(t, h, ComputeDataHash("SOLAR-MAIN-001", 4.2, 1700000000001, "00112233445566778899aabbccddeeff"))
	assert.NotEqual(t, h, ComputeDataHash("SOLAR-MAIN-001", 4.2, 1700000000000, "ffeeddccbbaa99887766554433221100"))
}

func TestTypeValidation(t *testing.T) {
	_, err := NewSignature("xyz")
	assert.Error(t, err, "Short signature must be rejected")
	_, err = NewSignature("251BC5EFABA28E26F3766D37132943234EAE96EE2F10B8CBE99C3D0E782BC0A3")
	assert.Error(t, err, "Uppercase signature must be rejected")

	_, err = NewDataHash("53d91a36caf3f180a56a08e5f46693197c53bf6e4d910626e0756ef77c38a803")
	assert.Error(t, err, "Data hash without 0x prefix must be rejected")
	_, err = NewDataHash("0x53d9")
	assert.Error(t, err, "Truncated data hash must be rejected")

	assert.Error(t, Nonce("short").Validate())
	assert.Error(t, Nonce("zz112233445566778899aabbccddeeff").Validate())
}
