package pqfooter

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// ByteSource is a random-access read of a byte range. The decoder
// borrows a ByteSource for the duration of one decode call and never
// retains it afterward, except when the caller separately invokes
// TestBloom against the same source later.
type ByteSource interface {
	// Size returns the total size of the underlying byte sequence.
	Size(ctx context.Context) (int64, error)
	// ReadAt returns exactly length bytes starting at offset, or
	// fails. It does not mutate the source's position (there is no
	// position) and may be called concurrently.
	ReadAt(ctx context.Context, offset int64, length int) ([]byte, error)
}

// readerAtSource adapts any io.ReaderAt plus a known size into a
// ByteSource.
type readerAtSource struct {
	r    io.ReaderAt
	size int64
}

// NewReaderAtSource wraps r (e.g. *os.File, *bytes.Reader,
// *io.SectionReader) as a ByteSource. size must be the total number
// of bytes readable through r.
func NewReaderAtSource(r io.ReaderAt, size int64) ByteSource {
	return &readerAtSource{r: r, size: size}
}

func (s *readerAtSource) Size(ctx context.Context) (int64, error) {
	return s.size, nil
}

func (s *readerAtSource) ReadAt(ctx context.Context, offset int64, length int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &DecodeError{Kind: KindIoError, Offset: offset, Err: err}
	}
	buf := make([]byte, length)
	n, err := s.r.ReadAt(buf, offset)
	if err != nil && !(err == io.EOF && n == length) {
		return nil, &DecodeError{Kind: KindIoError, Offset: offset, Err: errors.Wrapf(err, "read %d bytes at offset %d", length, offset)}
	}
	return buf, nil
}
