package pqfooter

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func wrapFooter(footer []byte) []byte {
	var out []byte
	out = append(out, footer...)
	lenBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lenBuf, uint32(len(footer)))
	out = append(out, lenBuf...)
	out = append(out, magicPAR1...)
	return out
}

func TestLocateFooterTooSmall(t *testing.T) {
	src := NewReaderAtSource(bytes.NewReader([]byte("short")), 5)
	_, err := LocateFooter(context.Background(), src)
	require.True(t, IsKind(err, KindTooSmall))
}

func TestLocateFooterBadMagic(t *testing.T) {
	data := make([]byte, 16)
	copy(data[12:], []byte("NOPE"))
	src := NewReaderAtSource(bytes.NewReader(data), int64(len(data)))
	_, err := LocateFooter(context.Background(), src)
	require.True(t, IsKind(err, KindBadMagic))
}

func TestLocateFooterEncrypted(t *testing.T) {
	data := make([]byte, 16)
	copy(data[12:], magicPARE)
	src := NewReaderAtSource(bytes.NewReader(data), int64(len(data)))
	_, err := LocateFooter(context.Background(), src)
	require.True(t, IsKind(err, KindEncrypted))
}

func TestLocateFooterMalformedLength(t *testing.T) {
	data := make([]byte, 16)
	binary.LittleEndian.PutUint32(data[8:], 9999)
	copy(data[12:], magicPAR1)
	src := NewReaderAtSource(bytes.NewReader(data), int64(len(data)))
	_, err := LocateFooter(context.Background(), src)
	require.True(t, IsKind(err, KindMalformedEncoding))
}

func TestLocateFooterHappyPath(t *testing.T) {
	footer := []byte{1, 2, 3, 4}
	file := wrapFooter(footer)
	src := NewReaderAtSource(bytes.NewReader(file), int64(len(file)))
	got, err := LocateFooter(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, footer, got)
}
