package pqfooter

import (
	"fmt"

	"github.com/pkg/errors"
)

// PhysicalType is a column's on-disk value encoding, Thrift field
// `type` on SchemaElement / `type` on ColumnMetaData.
type PhysicalType int32

const (
	PhysicalBoolean PhysicalType = 0
	PhysicalInt32   PhysicalType = 1
	PhysicalInt64   PhysicalType = 2
	PhysicalInt96   PhysicalType = 3
	PhysicalFloat   PhysicalType = 4
	PhysicalDouble  PhysicalType = 5
	PhysicalByteArray         PhysicalType = 6
	PhysicalFixedLenByteArray PhysicalType = 7
)

func (t PhysicalType) String() string {
	switch t {
	case PhysicalBoolean:
		return "BOOLEAN"
	case PhysicalInt32:
		return "INT32"
	case PhysicalInt64:
		return "INT64"
	case PhysicalInt96:
		return "INT96"
	case PhysicalFloat:
		return "FLOAT"
	case PhysicalDouble:
		return "DOUBLE"
	case PhysicalByteArray:
		return "BYTE_ARRAY"
	case PhysicalFixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return fmt.Sprintf("UT:%d", int32(t))
	}
}

// ParsePhysicalType is the inverse of PhysicalType.String for the
// defined values; it rejects the "UT:%d" fallback form.
func ParsePhysicalType(s string) (PhysicalType, error) {
	switch s {
	case "BOOLEAN":
		return PhysicalBoolean, nil
	case "INT32":
		return PhysicalInt32, nil
	case "INT64":
		return PhysicalInt64, nil
	case "INT96":
		return PhysicalInt96, nil
	case "FLOAT":
		return PhysicalFloat, nil
	case "DOUBLE":
		return PhysicalDouble, nil
	case "BYTE_ARRAY":
		return PhysicalByteArray, nil
	case "FIXED_LEN_BYTE_ARRAY":
		return PhysicalFixedLenByteArray, nil
	default:
		return 0, errors.Errorf("unknown physical type %q", s)
	}
}

// Repetition is a schema element's repetition type.
type Repetition int32

const (
	RepetitionRequired Repetition = 0
	RepetitionOptional Repetition = 1
	RepetitionRepeated Repetition = 2
)

func (r Repetition) String() string {
	switch r {
	case RepetitionRequired:
		return "REQUIRED"
	case RepetitionOptional:
		return "OPTIONAL"
	case RepetitionRepeated:
		return "REPEATED"
	default:
		return fmt.Sprintf("UR:%d", int32(r))
	}
}

// ParseRepetition is the inverse of Repetition.String for the defined
// values; it rejects the "UR:%d" fallback form.
func ParseRepetition(s string) (Repetition, error) {
	switch s {
	case "REQUIRED":
		return RepetitionRequired, nil
	case "OPTIONAL":
		return RepetitionOptional, nil
	case "REPEATED":
		return RepetitionRepeated, nil
	default:
		return 0, errors.Errorf("unknown repetition %q", s)
	}
}

// Encoding is a page-level value encoding recorded on a column chunk.
// Unknown codes decode to EncodingUnknown rather than failing.
type Encoding int32

const (
	EncodingPlain                Encoding = 0
	EncodingPlainDictionary      Encoding = 2
	EncodingRLE                  Encoding = 3
	EncodingBitPacked            Encoding = 4
	EncodingDeltaBinaryPacked    Encoding = 5
	EncodingDeltaLengthByteArray Encoding = 6
	EncodingDeltaByteArray       Encoding = 7
	EncodingRLEDictionary        Encoding = 8
	EncodingByteStreamSplit      Encoding = 9
	EncodingUnknown              Encoding = -1
)

func decodeEncoding(code int32) Encoding {
	switch Encoding(code) {
	case EncodingPlain, EncodingPlainDictionary, EncodingRLE, EncodingBitPacked,
		EncodingDeltaBinaryPacked, EncodingDeltaLengthByteArray, EncodingDeltaByteArray,
		EncodingRLEDictionary, EncodingByteStreamSplit:
		return Encoding(code)
	default:
		return EncodingUnknown
	}
}

func (e Encoding) String() string {
	switch e {
	case EncodingPlain:
		return "PLAIN"
	case EncodingPlainDictionary:
		return "PLAIN_DICTIONARY"
	case EncodingRLE:
		return "RLE"
	case EncodingBitPacked:
		return "BIT_PACKED"
	case EncodingDeltaBinaryPacked:
		return "DELTA_BINARY_PACKED"
	case EncodingDeltaLengthByteArray:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case EncodingDeltaByteArray:
		return "DELTA_BYTE_ARRAY"
	case EncodingRLEDictionary:
		return "RLE_DICTIONARY"
	case EncodingByteStreamSplit:
		return "BYTE_STREAM_SPLIT"
	default:
		return "UNKNOWN"
	}
}

// ParseEncoding is the inverse of Encoding.String for every defined
// (non-Unknown) value.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "PLAIN":
		return EncodingPlain, nil
	case "PLAIN_DICTIONARY":
		return EncodingPlainDictionary, nil
	case "RLE":
		return EncodingRLE, nil
	case "BIT_PACKED":
		return EncodingBitPacked, nil
	case "DELTA_BINARY_PACKED":
		return EncodingDeltaBinaryPacked, nil
	case "DELTA_LENGTH_BYTE_ARRAY":
		return EncodingDeltaLengthByteArray, nil
	case "DELTA_BYTE_ARRAY":
		return EncodingDeltaByteArray, nil
	case "RLE_DICTIONARY":
		return EncodingRLEDictionary, nil
	case "BYTE_STREAM_SPLIT":
		return EncodingByteStreamSplit, nil
	default:
		return EncodingUnknown, errors.Errorf("unknown encoding %q", s)
	}
}

// CompressionCodec is the codec applied to a column chunk's pages.
// This decoder never applies the codec; it only records which one was
// declared.
type CompressionCodec int32

const (
	CodecUncompressed CompressionCodec = 0
	CodecSnappy       CompressionCodec = 1
	CodecGzip         CompressionCodec = 2
	CodecLzo          CompressionCodec = 3
	CodecBrotli       CompressionCodec = 4
	CodecLz4          CompressionCodec = 5
	CodecZstd         CompressionCodec = 6
	CodecLz4Raw       CompressionCodec = 7
	CodecUnknown      CompressionCodec = -1
)

func decodeCodec(code int32) CompressionCodec {
	switch CompressionCodec(code) {
	case CodecUncompressed, CodecSnappy, CodecGzip, CodecLzo, CodecBrotli,
		CodecLz4, CodecZstd, CodecLz4Raw:
		return CompressionCodec(code)
	default:
		return CodecUnknown
	}
}

func (c CompressionCodec) String() string {
	switch c {
	case CodecUncompressed:
		return "UNCOMPRESSED"
	case CodecSnappy:
		return "SNAPPY"
	case CodecGzip:
		return "GZIP"
	case CodecLzo:
		return "LZO"
	case CodecBrotli:
		return "BROTLI"
	case CodecLz4:
		return "LZ4"
	case CodecZstd:
		return "ZSTD"
	case CodecLz4Raw:
		return "LZ4_RAW"
	default:
		return "UNKNOWN"
	}
}

// ParseCompressionCodec is the inverse of CompressionCodec.String for
// every defined (non-Unknown) value.
func ParseCompressionCodec(s string) (CompressionCodec, error) {
	switch s {
	case "UNCOMPRESSED":
		return CodecUncompressed, nil
	case "SNAPPY":
		return CodecSnappy, nil
	case "GZIP":
		return CodecGzip, nil
	case "LZO":
		return CodecLzo, nil
	case "BROTLI":
		return CodecBrotli, nil
	case "LZ4":
		return CodecLz4, nil
	case "ZSTD":
		return CodecZstd, nil
	case "LZ4_RAW":
		return CodecLz4Raw, nil
	default:
		return CodecUnknown, errors.Errorf("unknown compression codec %q", s)
	}
}

// ConvertedType is the legacy (pre-LogicalType) annotation carried on
// a SchemaElement.
type ConvertedType int32

const (
	ConvertedUTF8          ConvertedType = 0
	ConvertedMap           ConvertedType = 1
	ConvertedMapKeyValue   ConvertedType = 2
	ConvertedList          ConvertedType = 3
	ConvertedEnum          ConvertedType = 4
	ConvertedDecimal       ConvertedType = 5
	ConvertedDate          ConvertedType = 6
	ConvertedTimeMillis    ConvertedType = 7
	ConvertedTimeMicros    ConvertedType = 8
	ConvertedTimestampMillis ConvertedType = 9
	ConvertedTimestampMicros ConvertedType = 10
	ConvertedUint8         ConvertedType = 11
	ConvertedUint16        ConvertedType = 12
	ConvertedUint32        ConvertedType = 13
	ConvertedUint64        ConvertedType = 14
	ConvertedInt8          ConvertedType = 15
	ConvertedInt16         ConvertedType = 16
	ConvertedInt32         ConvertedType = 17
	ConvertedInt64         ConvertedType = 18
	ConvertedJSON          ConvertedType = 19
	ConvertedBSON          ConvertedType = 20
	ConvertedInterval      ConvertedType = 21
)

func (c ConvertedType) String() string {
	switch c {
	case ConvertedUTF8:
		return "UTF8"
	case ConvertedMap:
		return "MAP"
	case ConvertedMapKeyValue:
		return "MAP_KEY_VALUE"
	case ConvertedList:
		return "LIST"
	case ConvertedEnum:
		return "ENUM"
	case ConvertedDecimal:
		return "DECIMAL"
	case ConvertedDate:
		return "DATE"
	case ConvertedTimeMillis:
		return "TIME_MILLIS"
	case ConvertedTimeMicros:
		return "TIME_MICROS"
	case ConvertedTimestampMillis:
		return "TIMESTAMP_MILLIS"
	case ConvertedTimestampMicros:
		return "TIMESTAMP_MICROS"
	case ConvertedUint8:
		return "UINT_8"
	case ConvertedUint16:
		return "UINT_16"
	case ConvertedUint32:
		return "UINT_32"
	case ConvertedUint64:
		return "UINT_64"
	case ConvertedInt8:
		return "INT_8"
	case ConvertedInt16:
		return "INT_16"
	case ConvertedInt32:
		return "INT_32"
	case ConvertedInt64:
		return "INT_64"
	case ConvertedJSON:
		return "JSON"
	case ConvertedBSON:
		return "BSON"
	case ConvertedInterval:
		return "INTERVAL"
	default:
		return fmt.Sprintf("UC:%d", int32(c))
	}
}

// ParseConvertedType is the inverse of ConvertedType.String for the
// defined values; it rejects the "UC:%d" fallback form.
func ParseConvertedType(s string) (ConvertedType, error) {
	switch s {
	case "UTF8":
		return ConvertedUTF8, nil
	case "MAP":
		return ConvertedMap, nil
	case "MAP_KEY_VALUE":
		return ConvertedMapKeyValue, nil
	case "LIST":
		return ConvertedList, nil
	case "ENUM":
		return ConvertedEnum, nil
	case "DECIMAL":
		return ConvertedDecimal, nil
	case "DATE":
		return ConvertedDate, nil
	case "TIME_MILLIS":
		return ConvertedTimeMillis, nil
	case "TIME_MICROS":
		return ConvertedTimeMicros, nil
	case "TIMESTAMP_MILLIS":
		return ConvertedTimestampMillis, nil
	case "TIMESTAMP_MICROS":
		return ConvertedTimestampMicros, nil
	case "UINT_8":
		return ConvertedUint8, nil
	case "UINT_16":
		return ConvertedUint16, nil
	case "UINT_32":
		return ConvertedUint32, nil
	case "UINT_64":
		return ConvertedUint64, nil
	case "INT_8":
		return ConvertedInt8, nil
	case "INT_16":
		return ConvertedInt16, nil
	case "INT_32":
		return ConvertedInt32, nil
	case "INT_64":
		return ConvertedInt64, nil
	case "JSON":
		return ConvertedJSON, nil
	case "BSON":
		return ConvertedBSON, nil
	case "INTERVAL":
		return ConvertedInterval, nil
	default:
		return 0, errors.Errorf("unknown converted type %q", s)
	}
}

// TimeUnit is the resolution of a TIME or TIMESTAMP logical type.
type TimeUnit int32

const (
	TimeUnitMillis TimeUnit = 0
	TimeUnitMicros TimeUnit = 1
	TimeUnitNanos  TimeUnit = 2
)

func (u TimeUnit) String() string {
	switch u {
	case TimeUnitMillis:
		return "MILLIS"
	case TimeUnitMicros:
		return "MICROS"
	case TimeUnitNanos:
		return "NANOS"
	default:
		return fmt.Sprintf("UU:%d", int32(u))
	}
}

// ParseTimeUnit is the inverse of TimeUnit.String for the defined
// values; it rejects the "UU:%d" fallback form.
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch s {
	case "MILLIS":
		return TimeUnitMillis, nil
	case "MICROS":
		return TimeUnitMicros, nil
	case "NANOS":
		return TimeUnitNanos, nil
	default:
		return 0, errors.Errorf("unknown time unit %q", s)
	}
}
