package pqfooter

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDecodeErrorFormatting(t *testing.T) {
	err := newErr(KindBadMagic, 42, "trailing magic is %q", "NOPE")
	require.Contains(t, err.Error(), "BadMagic")
	require.Contains(t, err.Error(), "42")
	require.Contains(t, err.Error(), "NOPE")
}

func TestDecodeErrorNoOffset(t *testing.T) {
	err := newErr(KindSchemaMismatch, -1, "mismatch")
	require.NotContains(t, err.Error(), "offset")
}

func TestIsKindUnwrapsWrapping(t *testing.T) {
	base := newErr(KindTruncatedInput, 1, "truncated")
	wrapped := errors.Wrap(base, "while reading footer")
	require.True(t, IsKind(wrapped, KindTruncatedInput))
	require.False(t, IsKind(wrapped, KindBadMagic))
}

func TestWrapErrPreservesKindAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := wrapErr(KindIoError, 7, cause, "reading trailer")
	require.True(t, IsKind(err, KindIoError))
	require.ErrorIs(t, err, cause)
}
