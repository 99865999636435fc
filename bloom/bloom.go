// Package bloom evaluates membership against a Parquet split-block
// bloom filter stored alongside a column chunk.
//
// The block/lane layout (8 lanes of 32 bits per 256-bit block) is
// grounded on the shape of the SIMD-accelerated block check/insert in
// the wider example corpus's bloom packages, reduced here to the
// portable, non-assembly form the specification describes.
package bloom

import (
	"context"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/arborix/pqfooter/internal/thriftcompact"
)

// salts are the eight fixed odd-prime constants the Parquet
// specification fixes for split-block bloom filters, one per lane.
var salts = [8]uint32{
	0x47b6137b, 0x44974d91, 0x8824ad5b, 0xa2b7289d,
	0x705495c7, 0x2df1424b, 0x9efc4947, 0x5c6bfb31,
}

const blockSizeBytes = 32 // 8 lanes * 4 bytes

// Kind mirrors the caller-level error taxonomy without this package
// importing the root package (which would create an import cycle,
// since the root package calls into this one).
type Kind int

const (
	KindAbsent Kind = iota
	KindTruncated
	KindMalformed
	KindIO
)

// Error is returned by every fallible function in this package.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func errAbsent(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAbsent, Err: errors.Errorf(format, args...)}
}
func errTruncated(format string, args ...interface{}) *Error {
	return &Error{Kind: KindTruncated, Err: errors.Errorf(format, args...)}
}
func errMalformed(format string, args ...interface{}) *Error {
	return &Error{Kind: KindMalformed, Err: errors.Errorf(format, args...)}
}
func errIO(cause error, context string) *Error {
	return &Error{Kind: KindIO, Err: errors.Wrap(cause, context)}
}

// Source is the byte-range read dependency, duplicated here (rather
// than imported from the root package) so this package stays usable
// on its own.
type Source interface {
	ReadAt(ctx context.Context, offset int64, length int) ([]byte, error)
}

// Header is the decoded form of the Thrift-encoded BloomFilterHeader:
// the size of the bitset body and the number of 32-byte blocks it
// contains. NumHashFunctions is not part of the real format (split
// block filters always probe all 8 lanes); it is implied, not stored.
type Header struct {
	NumBytes  int32
	NumBlocks int32
}

// Test evaluates whether key may be a member of the split-block bloom
// filter located at bloomOffset in source. bloomLength is the number
// of bytes the header claims for itself plus the bitset; callers that
// know the source's total size (the root package's TestBloom does)
// are expected to resolve a non-positive "unknown" bloomLength against
// it before calling Test, so the 64KiB fallback below is only reached
// by a caller with no size information at all, and may overrun a
// short source near EOF.
//
// Per §4.6 and §7: any internal error here should make the caller
// degrade to "possibly present" rather than propagate a false
// negative, but the error value itself still carries which taxonomy
// kind triggered it so tests (and careful callers) can tell a genuine
// "no bloom filter" (KindAbsent) apart from corruption.
func Test(ctx context.Context, source Source, bloomOffset, bloomLength int64, key []byte) (bool, error) {
	if bloomOffset < 0 {
		return false, errAbsent("bloom filter offset is absent")
	}

	readLen := bloomLength
	if readLen <= 0 {
		readLen = 64 * 1024 // generous cap; the header's own NumBytes is authoritative once parsed.
	}

	buf, err := source.ReadAt(ctx, bloomOffset, int(readLen))
	if err != nil {
		return false, errIO(err, "reading bloom filter header and body")
	}

	header, bodyStart, err := decodeHeader(buf)
	if err != nil {
		return false, err
	}

	bodyEnd := bodyStart + int(header.NumBytes)
	if bodyEnd > len(buf) {
		// The initial read didn't cover the whole body (bloomLength
		// was absent or too small); fetch exactly what's missing.
		more, err := source.ReadAt(ctx, bloomOffset+int64(len(buf)), bodyEnd-len(buf))
		if err != nil {
			return false, errIO(err, "reading remainder of bloom filter body")
		}
		buf = append(buf, more...)
	}
	body := buf[bodyStart:bodyEnd]

	return testBody(body, header, key), nil
}

// decodeHeader parses the Thrift Compact Protocol BloomFilterHeader:
// num_bytes (I32, field 1), algorithm (STRUCT union, field 2), hash
// (STRUCT union, field 3), compression (STRUCT union, field 4). Only
// SPLIT_BLOCK algorithm / XXHASH hash / UNCOMPRESSED compression are
// supported; anything else is reported rather than silently assumed.
func decodeHeader(buf []byte) (Header, int, error) {
	r := thriftcompact.NewReader(buf)

	var numBytes int32
	haveNumBytes := false
	sawSplitBlock := false
	sawXXHash := false
	sawUncompressed := false

	var lastID int16
	for {
		fh, err := r.ReadFieldHeader(lastID)
		if err != nil {
			return Header{}, 0, convert(err)
		}
		if fh.Stop {
			break
		}
		switch fh.ID {
		case 1: // num_bytes
			v, err := r.ReadZigZag32()
			if err != nil {
				return Header{}, 0, convert(err)
			}
			numBytes = v
			haveNumBytes = true
		case 2: // algorithm union
			ok, err := firstFieldIs(r, 1) // 1 = BLOCK (split block)
			if err != nil {
				return Header{}, 0, convert(err)
			}
			sawSplitBlock = ok
		case 3: // hash union
			ok, err := firstFieldIs(r, 1) // 1 = XXHASH
			if err != nil {
				return Header{}, 0, convert(err)
			}
			sawXXHash = ok
		case 4: // compression union
			ok, err := firstFieldIs(r, 1) // 1 = UNCOMPRESSED
			if err != nil {
				return Header{}, 0, convert(err)
			}
			sawUncompressed = ok
		default:
			if err := r.SkipField(fh.Type); err != nil {
				return Header{}, 0, convert(err)
			}
		}
		lastID = fh.ID
	}

	if !haveNumBytes {
		return Header{}, 0, errMalformed("BloomFilterHeader.num_bytes is required")
	}
	if numBytes <= 0 || numBytes%blockSizeBytes != 0 {
		return Header{}, 0, errMalformed("BloomFilterHeader.num_bytes %d is not a positive multiple of %d", numBytes, blockSizeBytes)
	}
	if !sawSplitBlock {
		return Header{}, 0, errMalformed("bloom filter algorithm is not SPLIT_BLOCK")
	}
	if !sawXXHash {
		return Header{}, 0, errMalformed("bloom filter hash is not XXHASH")
	}
	if !sawUncompressed {
		return Header{}, 0, errMalformed("bloom filter compression is not UNCOMPRESSED")
	}

	return Header{NumBytes: numBytes, NumBlocks: numBytes / blockSizeBytes}, r.Pos(), nil
}

// firstFieldIs reports whether the union struct's first field has the
// given id, consuming the whole struct regardless.
func firstFieldIs(r *thriftcompact.Reader, wantID int16) (bool, error) {
	var lastID int16
	matched := false
	first := true
	for {
		fh, err := r.ReadFieldHeader(lastID)
		if err != nil {
			return false, err
		}
		if fh.Stop {
			return matched, nil
		}
		if first {
			matched = fh.ID == wantID
			first = false
		}
		if err := r.SkipField(fh.Type); err != nil {
			return false, err
		}
		lastID = fh.ID
	}
}

func convert(err error) error {
	if tcErr, ok := err.(*thriftcompact.Error); ok {
		if tcErr.Kind == thriftcompact.ErrTruncated {
			return errTruncated("%s", tcErr.Error())
		}
		return errMalformed("%s", tcErr.Error())
	}
	return errMalformed("%s", err.Error())
}

// testBody runs the insert/test algorithm of §4.6 against an
// already-sliced block body.
func testBody(body []byte, header Header, key []byte) bool {
	h := xxhash.Sum64(key)
	blockIndex := (h >> 32) * uint64(header.NumBlocks) >> 32
	blockStart := int(blockIndex) * blockSizeBytes
	if blockStart+blockSizeBytes > len(body) {
		return false
	}
	block := body[blockStart : blockStart+blockSizeBytes]

	low32 := uint32(h & 0xffffffff)
	for i, salt := range salts {
		maskBit := (low32 * salt) >> 27 & 31
		word := le32(block[i*4 : i*4+4])
		if word&(1<<maskBit) == 0 {
			return false
		}
	}
	return true
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
