/*
Package meter simulates smart energy meters that produce tamper-evident
readings.

A Meter belongs to one of a closed set of classes (SOLAR, HOSTEL, LAB),
each backed by an immutable Profile: base output, variance bound, carbon
classification, producer flag and 24 hourly scaling factors modeling the
daily curve. A reading's energy amount is

	baseOutput * hourlyFactor(hourOfDay) + uniform noise in [-variance/2, +variance/2]

clamped at zero and rounded to three decimal places. The hour of day is
always derived from the timestamp in UTC.

Every generated Reading is signed with the meter's in-memory secret key
(see the seal package) and carries a sequential per-meter reading number, a
single-use random nonce and a replay-prevention hash. Verification is a
boolean recomputation under the same key; a tampered reading verifies
false, it never errors.
*/
package meter
