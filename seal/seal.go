package seal

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

// Payload holds the fields of a reading that are covered by its
// authentication tag. Derived fields (the scaled integer amount, the
// producer flag, the ISO timestamp rendering) are intentionally excluded:
// they are recomputable from the signed fields.
type Payload struct {
	MeterID   string
	KWh       float64
	Timestamp int64
	CarbonTag string
	Type      string
	Nonce     Nonce
}

// Canonical returns the deterministic serialization of the payload: a JSON
// object with lexicographically sorted keys and the energy amount rendered
// with exactly three fractional digits. The same logical payload always
// canonicalizes to the same bytes.
func (p Payload) Canonical() []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"carbonTag":`)
	buf.Write(jsonString(p.CarbonTag))
	buf.WriteString(`,"kWh":`)
	buf.WriteString(FormatKWh(p.KWh))
	buf.WriteString(`,"meterId":`)
	buf.Write(jsonString(p.MeterID))
	buf.WriteString(`,"nonce":`)
	buf.Write(jsonString(string(p.Nonce)))
	buf.WriteString(`,"timestamp":`)
	buf.WriteString(strconv.FormatInt(p.Timestamp, 10))
	buf.WriteString(`,"type":`)
	buf.Write(jsonString(p.Type))
	buf.WriteByte('}')
	return buf.Bytes()
}

// FormatKWh renders an energy amount the canonical way: fixed three
// fractional digits, no exponent.
func FormatKWh(kwh float64) string {
	return strconv.FormatFloat(kwh, 'f', 3, 64)
}

// Sign computes the authentication tag for the payload under the given key.
func Sign(key SigningKey, p Payload) Signature {
	mac := hmac.New(sha256.New, key)
	mac.Write(p.Canonical())
	return Signature(hex.EncodeToString(mac.Sum(nil)))
}

// Verify recomputes the authentication tag for the payload and compares it
// to the presented signature in constant time. It returns false for any
// malformed or mismatching signature, never an error.
func Verify(key SigningKey, p Payload, sig Signature) bool {
	presented, err := hex.DecodeString(string(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(p.Canonical())
	return hmac.Equal(mac.Sum(nil), presented)
}

// ComputeDataHash derives the replay-prevention hash for a reading: an
// unkeyed SHA-256 over the colon-delimited meter identity, canonical energy
// amount, timestamp and nonce, prefixed with the 0x format marker.
func ComputeDataHash(meterID string, kwh float64, timestamp int64, nonce Nonce) DataHash {
	input := fmt.Sprintf("%s:%s:%d:%s", meterID, FormatKWh(kwh), timestamp, nonce)
	digest := sha256.Sum256([]byte(input))
	return DataHash("0x" + hex.EncodeToString(digest[:]))
}

// jsonString encodes a string as a JSON string literal.
func jsonString(s string) []byte {
	encoded, _ := json.Marshal(s)
	return encoded
}
