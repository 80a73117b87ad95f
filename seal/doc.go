/*
Package seal implements the authentication protocol for meter readings.

Every reading a meter emits carries two independent proofs:

 1. An authentication tag: an HMAC-SHA256 over the canonical serialization
    of the reading's signed fields, keyed with the meter's secret signing
    key. Only the holder of the key can produce or verify the tag, which
    lets a downstream consumer detect tampering and forgery.

 2. A replay-prevention hash: an unkeyed SHA-256 over the meter identity,
    energy amount, timestamp and nonce. A downstream ledger can use it to
    detect duplicate submission of the same reading without access to any
    key material.

# Canonical serialization

The signed payload is serialized as a JSON object with a fixed,
lexicographically sorted key set:

	{"carbonTag":...,"kWh":...,"meterId":...,"nonce":...,"timestamp":...,"type":...}

The energy amount is always rendered with exactly three fractional digits
so that the same logical payload serializes to the same bytes regardless of
how it was constructed. Any reimplementation must reproduce this key set,
ordering and number formatting to interoperate.

# Key material

Signing keys are 32-byte secrets generated from crypto/rand, or derived
with HKDF-SHA256 from a master seed when deterministic keys are needed
(development fixtures, reproducible test fleets). Keys live only in memory
and are never exposed through any serialized form; only derived signatures
leave the process.
*/
package seal
