package thriftcompact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func writeVarint(buf []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			buf = append(buf, b|0x80)
			continue
		}
		buf = append(buf, b)
		return buf
	}
}

func zigzag32(v int32) uint64 { return uint64(uint32((v << 1) ^ (v >> 31))) }
func zigzag64(v int64) uint64 { return uint64((v << 1) ^ (v >> 63)) }

func TestVarintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1} {
		buf := writeVarint(nil, v)
		r := NewReader(buf)
		got, err := r.ReadVarint()
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(buf), r.Pos())
	}
}

func TestVarintTooLong(t *testing.T) {
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0x80
	}
	r := NewReader(buf)
	_, err := r.ReadVarint()
	require.Error(t, err)
	tcErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrMalformed, tcErr.Kind)
}

func TestReadVarintTruncated(t *testing.T) {
	r := NewReader([]byte{0x80, 0x80})
	_, err := r.ReadVarint()
	require.Error(t, err)
	tcErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrTruncated, tcErr.Kind)
}

func TestZigZagRoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 1000, -1000, 1 << 30, -(1 << 30)} {
		buf := writeVarint(nil, zigzag32(v))
		r := NewReader(buf)
		got, err := r.ReadZigZag32()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
	for _, v := range []int64{0, 1, -1, 1 << 40, -(1 << 40)} {
		buf := writeVarint(nil, zigzag64(v))
		r := NewReader(buf)
		got, err := r.ReadZigZag64()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestFieldHeaderDelta(t *testing.T) {
	// First field: id 3, type I32, delta encoded directly (3<<4 | I32).
	var buf []byte
	buf = append(buf, byte(3<<4)|byte(TypeI32))
	// Second field: id 20, too big for a nibble, explicit zig-zag id.
	buf = append(buf, byte(TypeStruct))
	buf = writeVarint(buf, zigzag32(20))
	// Stop.
	buf = append(buf, 0)

	r := NewReader(buf)
	fh, err := r.ReadFieldHeader(0)
	require.NoError(t, err)
	require.False(t, fh.Stop)
	require.EqualValues(t, 3, fh.ID)
	require.Equal(t, TypeI32, fh.Type)

	fh2, err := r.ReadFieldHeader(fh.ID)
	require.NoError(t, err)
	require.EqualValues(t, 20, fh2.ID)
	require.Equal(t, TypeStruct, fh2.Type)

	fh3, err := r.ReadFieldHeader(fh2.ID)
	require.NoError(t, err)
	require.True(t, fh3.Stop)
}

func TestListHeaderOverflow(t *testing.T) {
	var buf []byte
	buf = append(buf, byte(0x0f<<4)|byte(TypeI32))
	buf = writeVarint(buf, 300)

	r := NewReader(buf)
	lh, err := r.ReadListHeader()
	require.NoError(t, err)
	require.Equal(t, 300, lh.Size)
	require.Equal(t, TypeI32, lh.ElemType)
}

func TestMapHeaderEmpty(t *testing.T) {
	buf := writeVarint(nil, 0)
	r := NewReader(buf)
	mh, err := r.ReadMapHeader()
	require.NoError(t, err)
	require.Equal(t, 0, mh.Size)
}

func TestSkipFieldUnknownWireType(t *testing.T) {
	err := NewReader(nil).SkipField(WireType(0x0d))
	require.Error(t, err)
	tcErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, ErrMalformed, tcErr.Kind)
}

func TestSkipStructNested(t *testing.T) {
	// Inner struct: one I32 field (id 1), then stop.
	var inner []byte
	inner = append(inner, byte(1<<4)|byte(TypeI32))
	inner = writeVarint(inner, zigzag32(42))
	inner = append(inner, 0)

	// Outer struct: field id 1 is a nested STRUCT, then stop.
	var outer []byte
	outer = append(outer, byte(1<<4)|byte(TypeStruct))
	outer = append(outer, inner...)
	outer = append(outer, 0)

	r := NewReader(outer)
	require.NoError(t, r.SkipStruct())
	require.Equal(t, len(outer), r.Pos())
}

func TestReadStringLengthPrefixed(t *testing.T) {
	var buf []byte
	buf = writeVarint(buf, 5)
	buf = append(buf, []byte("hello")...)
	r := NewReader(buf)
	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hello", string(s))
}
