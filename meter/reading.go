package meter

import "github.com/campusgrid/metersim/seal"

// Reading is a single signed meter reading. It is created fully formed by
// reading generation and immutable afterwards: a point-in-time fact with no
// update or delete.
//
// The field names of the JSON form are part of the external contract.
// kwh_scaled carries the amount multiplied by 1000 for consumers that
// cannot represent fractional values; it is derived from kwh and not
// independently signed.
type Reading struct {
	MeterID       string         `json:"meter_id"`
	MeterType     Class          `json:"meter_type"`
	KWh           float64        `json:"kwh"`
	KWhScaled     int64          `json:"kwh_scaled"`
	Timestamp     int64          `json:"timestamp"`
	TimestampISO  string         `json:"timestamp_iso"`
	CarbonTag     CarbonTag      `json:"carbon_tag"`
	IsProducer    bool           `json:"is_producer"`
	Nonce         seal.Nonce     `json:"nonce"`
	ReadingNumber uint64         `json:"reading_number"`
	Signature     seal.Signature `json:"signature"`
	DataHash      seal.DataHash  `json:"data_hash"`
}

// payload returns the signed subset of the reading's fields.
func (r Reading) payload() seal.Payload {
	return seal.Payload{
		MeterID:   r.MeterID,
		KWh:       r.KWh,
		Timestamp: r.Timestamp,
		CarbonTag: string(r.CarbonTag),
		Type:      string(r.MeterType),
		Nonce:     r.Nonce,
	}
}

// Info is the public description of a meter: everything about it except
// its secret key.
type Info struct {
	MeterID       string    `json:"meter_id"`
	Type          Class     `json:"type"`
	CarbonTag     CarbonTag `json:"carbon_tag"`
	IsProducer    bool      `json:"is_producer"`
	TotalReadings uint64    `json:"total_readings"`
}
