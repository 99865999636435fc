package pqfooter

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"
)

// DecodeStatValue interprets raw min/max bytes under physicalType,
// per §4.4. A length mismatch for a fixed-width type is not an
// error: the raw bytes are returned as-is, since corrupt or
// forward-incompatible statistics should not abort an otherwise valid
// decode (§7: statistics decoding degrades, it does not fail the
// call).
func DecodeStatValue(raw []byte, physicalType PhysicalType) interface{} {
	switch physicalType {
	case PhysicalInt32:
		if len(raw) == 4 {
			return int32(binary.LittleEndian.Uint32(raw))
		}
	case PhysicalInt64:
		if len(raw) == 8 {
			return int64(binary.LittleEndian.Uint64(raw))
		}
	case PhysicalFloat:
		if len(raw) == 4 {
			return math.Float32frombits(binary.LittleEndian.Uint32(raw))
		}
	case PhysicalDouble:
		if len(raw) == 8 {
			return math.Float64frombits(binary.LittleEndian.Uint64(raw))
		}
	case PhysicalInt96:
		if len(raw) == 12 {
			var b [12]byte
			copy(b[:], raw)
			return DecodeInt96(b)
		}
	case PhysicalBoolean:
		if len(raw) == 1 {
			return raw[0] != 0
		}
	case PhysicalByteArray, PhysicalFixedLenByteArray:
		return raw
	}
	return raw
}

// DecodeUUIDStat decodes a 16-byte FIXED_LEN_BYTE_ARRAY statistic
// under a UUID logical type into a uuid.UUID. It returns false if raw
// is not exactly 16 bytes. This supplements the bytes-only decode
// DecodeStatValue performs for FIXED_LEN_BYTE_ARRAY: callers that know
// a column's logical type is UUID can ask for the typed form too.
func DecodeUUIDStat(raw []byte) (uuid.UUID, bool) {
	if len(raw) != 16 {
		return uuid.UUID{}, false
	}
	var u uuid.UUID
	copy(u[:], raw)
	return u, true
}
