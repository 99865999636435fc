package pqfooter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodingRoundTrip(t *testing.T) {
	values := []Encoding{
		EncodingPlain, EncodingPlainDictionary, EncodingRLE, EncodingBitPacked,
		EncodingDeltaBinaryPacked, EncodingDeltaLengthByteArray, EncodingDeltaByteArray,
		EncodingRLEDictionary, EncodingByteStreamSplit,
	}
	for _, v := range values {
		got, err := ParseEncoding(v.String())
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestEncodingParseUnknownFails(t *testing.T) {
	_, err := ParseEncoding("NOT_AN_ENCODING")
	require.Error(t, err)
	_, err = ParseEncoding(EncodingUnknown.String())
	require.Error(t, err)
}

func TestCompressionCodecRoundTrip(t *testing.T) {
	values := []CompressionCodec{
		CodecUncompressed, CodecSnappy, CodecGzip, CodecLzo, CodecBrotli,
		CodecLz4, CodecZstd, CodecLz4Raw,
	}
	for _, v := range values {
		got, err := ParseCompressionCodec(v.String())
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestCompressionCodecParseUnknownFails(t *testing.T) {
	_, err := ParseCompressionCodec("NOT_A_CODEC")
	require.Error(t, err)
}

func TestPhysicalTypeRoundTrip(t *testing.T) {
	values := []PhysicalType{
		PhysicalBoolean, PhysicalInt32, PhysicalInt64, PhysicalInt96,
		PhysicalFloat, PhysicalDouble, PhysicalByteArray, PhysicalFixedLenByteArray,
	}
	for _, v := range values {
		got, err := ParsePhysicalType(v.String())
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestRepetitionRoundTrip(t *testing.T) {
	values := []Repetition{RepetitionRequired, RepetitionOptional, RepetitionRepeated}
	for _, v := range values {
		got, err := ParseRepetition(v.String())
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestConvertedTypeRoundTrip(t *testing.T) {
	values := []ConvertedType{
		ConvertedUTF8, ConvertedMap, ConvertedMapKeyValue, ConvertedList, ConvertedEnum,
		ConvertedDecimal, ConvertedDate, ConvertedTimeMillis, ConvertedTimeMicros,
		ConvertedTimestampMillis, ConvertedTimestampMicros, ConvertedUint8, ConvertedUint16,
		ConvertedUint32, ConvertedUint64, ConvertedInt8, ConvertedInt16, ConvertedInt32,
		ConvertedInt64, ConvertedJSON, ConvertedBSON, ConvertedInterval,
	}
	for _, v := range values {
		got, err := ParseConvertedType(v.String())
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestTimeUnitRoundTrip(t *testing.T) {
	values := []TimeUnit{TimeUnitMillis, TimeUnitMicros, TimeUnitNanos}
	for _, v := range values {
		got, err := ParseTimeUnit(v.String())
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}
