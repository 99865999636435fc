package pqfooter

import "encoding/binary"

// julianDayUnixEpoch is the Julian day number of 1970-01-01, the
// constant Parquet's INT96 timestamp encoding is anchored to.
const julianDayUnixEpoch = 2440588

// Int96Value is the decomposition of a Parquet INT96 timestamp: a
// Julian day number and the number of nanoseconds elapsed within that
// day. DaysSinceEpoch is relative to 1970-01-01 and may be negative
// for dates before the epoch.
type Int96Value struct {
	JulianDay      uint32
	NanosOfDay     uint64
	DaysSinceEpoch int64
}

// DecodeInt96 interprets a 12-byte INT96 value as Parquet lays it
// out: a little-endian u64 of nanoseconds-of-day followed by a
// little-endian u32 Julian day number.
//
// Grounded on the teacher's Int96ToTime (int96_time.go), but stops at
// the (day, nanos) pair the specification's Statistics Decoder (§4.4)
// asks for instead of producing a time.Time — Parquet INT96 timestamps
// predate a documented timezone convention, and collapsing straight to
// a time.Time loses the distinction between "no timezone info" and
// "explicitly UTC" that §4.4's callers may care about.
func DecodeInt96(b [12]byte) Int96Value {
	nanos := binary.LittleEndian.Uint64(b[:8])
	jd := binary.LittleEndian.Uint32(b[8:])
	return Int96Value{
		JulianDay:      jd,
		NanosOfDay:     nanos,
		DaysSinceEpoch: int64(jd) - julianDayUnixEpoch,
	}
}
