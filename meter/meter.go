package meter

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusgrid/metersim/seal"
)

// ErrInvalidTimestamp is returned when a reading is requested for a
// non-positive epoch-millisecond timestamp.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// isoLayout renders timestamps as RFC 3339 with millisecond precision.
// Hours of day are always taken in UTC so that readings are reproducible
// across environments.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Meter simulates a single smart energy meter. It owns its identity, a
// secret signing key that never leaves the instance, and a monotonic
// reading counter. The counter is guarded by a per-meter lock so that
// concurrent generation for the same meter stays sequentially numbered;
// distinct meters share no mutable state.
type Meter struct {
	id      string
	class   Class
	profile Profile
	key     seal.SigningKey

	mu       sync.Mutex
	readings uint64
}

// New constructs a meter of the given class with a generated identity of
// the form <classPrefix>-<8 random uppercase hex characters> and a fresh
// random signing key.
func New(class Class) (*Meter, error) {
	profile, err := ProfileFor(class)
	if err != nil {
		return nil, err
	}
	return NewWithID(class, profile.Prefix+"-"+randomIDSuffix())
}

// NewWithID constructs a meter of the given class under an explicit
// identity. It fails only for a class outside the closed enumeration.
func NewWithID(class Class, id string) (*Meter, error) {
	profile, err := ProfileFor(class)
	if err != nil {
		return nil, err
	}

	key, err := seal.NewSigningKey()
	if err != nil {
		return nil, fmt.Errorf("meter %s: %w", id, err)
	}

	return &Meter{
		id:      id,
		class:   class,
		profile: profile,
		key:     key,
	}, nil
}

// WithKeySeed returns a copy of the meter whose signing key is derived from
// the given master seed and the meter's identity. The same seed and
// identity always yield the same key, which makes fixture fleets verify
// readings reproducibly across restarts. The reading counter starts over.
func (m *Meter) WithKeySeed(seed []byte) (*Meter, error) {
	key, err := seal.DeriveSigningKey(seed, m.id)
	if err != nil {
		return nil, fmt.Errorf("meter %s: %w", m.id, err)
	}

	return &Meter{
		id:      m.id,
		class:   m.class,
		profile: m.profile,
		key:     key,
	}, nil
}

// ID returns the meter's identity.
func (m *Meter) ID() string {
	return m.id
}

// Class returns the meter's class.
func (m *Meter) Class() Class {
	return m.class
}

// IsProducer reports whether the meter's class generates rather than draws energy.
func (m *Meter) IsProducer() bool {
	return m.profile.IsProducer
}

// Info returns the meter's public description. Pure read, no side effects.
func (m *Meter) Info() Info {
	m.mu.Lock()
	total := m.readings
	m.mu.Unlock()

	return Info{
		MeterID:       m.id,
		Type:          m.class,
		CarbonTag:     m.profile.Carbon,
		IsProducer:    m.profile.IsProducer,
		TotalReadings: total,
	}
}

// GenerateReading produces a signed reading for the current time.
func (m *Meter) GenerateReading() (Reading, error) {
	return m.GenerateReadingAt(time.Now().UnixMilli())
}

// GenerateReadingAt produces a signed reading for the given
// epoch-millisecond timestamp. The energy amount follows the class's hourly
// curve (hour of day taken in UTC) plus uniform noise within the variance
// bound, clamped at zero and rounded to three decimal places. Each call
// increments the meter's reading counter by exactly one and draws a fresh
// nonce, so two readings never share a signature or replay hash even when
// every other field coincides.
func (m *Meter) GenerateReadingAt(timestamp int64) (Reading, error) {
	if timestamp <= 0 {
		return Reading{}, fmt.Errorf("%w: %d", ErrInvalidTimestamp, timestamp)
	}

	at := time.UnixMilli(timestamp).UTC()
	factor, err := m.profile.FactorAt(at.Hour())
	if err != nil {
		return Reading{}, err
	}

	// Simulation noise only; no security requirement on this term.
	noise := (rand.Float64() - 0.5) * m.profile.Variance
	raw := m.profile.BaseOutput*factor + noise
	if raw < 0 {
		raw = 0
	}
	kwh := math.Round(raw*1000) / 1000

	m.mu.Lock()
	m.readings++
	number := m.readings
	m.mu.Unlock()

	nonce := seal.NewNonce()

	reading := Reading{
		MeterID:       m.id,
		MeterType:     m.class,
		KWh:           kwh,
		KWhScaled:     int64(math.Round(kwh * 1000)),
		Timestamp:     timestamp,
		TimestampISO:  at.Format(isoLayout),
		CarbonTag:     m.profile.Carbon,
		IsProducer:    m.profile.IsProducer,
		Nonce:         nonce,
		ReadingNumber: number,
	}
	reading.Signature = seal.Sign(m.key, reading.payload())
	reading.DataHash = seal.ComputeDataHash(m.id, kwh, timestamp, nonce)

	return reading, nil
}

// VerifyReading recomputes the authentication tag from the reading's own
// fields under this meter's key and compares it to the stored tag in
// constant time. It returns false, never an error, for any reading whose
// signed fields were altered after signing. The reading counter is not
// consulted or mutated.
func (m *Meter) VerifyReading(r Reading) bool {
	return seal.Verify(m.key, r.payload(), r.Signature)
}

// randomIDSuffix returns 8 uppercase hex characters from a cryptographically
// strong source.
func randomIDSuffix() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:4]))
}
