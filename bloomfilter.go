package pqfooter

import (
	"context"

	"github.com/arborix/pqfooter/bloom"
)

// bloomSpeculativeReadCap bounds the initial read TestBloom issues
// when bloomLength is the "unknown" sentinel (<= 0): generous enough
// to cover header plus body for any realistically sized bloom filter,
// but still clamped against the source's actual size below so it
// never asks ReadAt for more than the source has left.
const bloomSpeculativeReadCap = 64 * 1024

// TestBloom evaluates whether key may be a member of the split-block
// bloom filter attached to a column chunk, per §4.6. A column with no
// bloom filter (bloomOffset < 0) reports a KindBloomAbsent error rather than a
// false negative, so callers can distinguish "definitely not present
// because no filter exists" from "the filter says no".
func TestBloom(ctx context.Context, source ByteSource, bloomOffset, bloomLength int64, key []byte) (bool, error) {
	if bloomLength <= 0 && bloomOffset >= 0 {
		size, err := source.Size(ctx)
		if err != nil {
			return false, wrapErr(KindIoError, bloomOffset, err, "reading source size")
		}
		remaining := size - bloomOffset
		if remaining <= 0 {
			return false, newErr(KindTruncatedInput, bloomOffset, "no bytes remain at the bloom filter offset")
		}
		bloomLength = remaining
		if bloomLength > bloomSpeculativeReadCap {
			bloomLength = bloomSpeculativeReadCap
		}
	}

	present, err := bloom.Test(ctx, source, bloomOffset, bloomLength, key)
	if err != nil {
		if bErr, ok := err.(*bloom.Error); ok {
			switch bErr.Kind {
			case bloom.KindAbsent:
				return false, newErr(KindBloomAbsent, bloomOffset, "column has no bloom filter")
			case bloom.KindTruncated:
				return false, wrapErr(KindTruncatedInput, bloomOffset, bErr.Err, "bloom filter")
			case bloom.KindIO:
				return false, wrapErr(KindIoError, bloomOffset, bErr.Err, "bloom filter")
			default:
				return false, wrapErr(KindMalformedEncoding, bloomOffset, bErr.Err, "bloom filter")
			}
		}
		return false, wrapErr(KindMalformedEncoding, bloomOffset, err, "bloom filter")
	}
	return present, nil
}
