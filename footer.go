package pqfooter

import (
	"bytes"
	"context"
	"encoding/binary"
)

var (
	magicPAR1 = []byte("PAR1")
	magicPARE = []byte("PARE")
)

// LocateFooter reads the trailing 8-byte trailer of source, validates
// the magic, and returns the footer byte slice (the Thrift Compact
// Protocol encoded FileMetaData, not including the trailer itself).
//
// Grounded on the teacher's ReadFileMetaDataWithContext footer-length
// dance (seek -8, read length, seek -8-length), adapted to the
// ByteSource interface's offset/length reads instead of an
// io.ReadSeeker.
func LocateFooter(ctx context.Context, source ByteSource) ([]byte, error) {
	size, err := source.Size(ctx)
	if err != nil {
		return nil, wrapErr(KindIoError, -1, err, "reading source size")
	}
	if size < 8 {
		return nil, newErr(KindTooSmall, size, "file size %d is smaller than the 8-byte trailer", size)
	}

	trailer, err := source.ReadAt(ctx, size-8, 8)
	if err != nil {
		return nil, wrapErr(KindIoError, size-8, err, "reading trailer")
	}

	footerLen := int64(binary.LittleEndian.Uint32(trailer[0:4]))
	magic := trailer[4:8]

	if bytes.Equal(magic, magicPARE) {
		return nil, newErr(KindEncrypted, size-4, "footer is encrypted (PARE magic); decrypting encrypted footers is out of scope")
	}
	if !bytes.Equal(magic, magicPAR1) {
		return nil, newErr(KindBadMagic, size-4, "trailing magic is %q, not PAR1", magic)
	}

	if footerLen == 0 || footerLen > size-8 {
		return nil, newErr(KindMalformedEncoding, size-8, "footer length %d is invalid for a file of size %d", footerLen, size)
	}

	// The leading magic is only checked for PARE, to report an
	// encrypted file as Encrypted. A leading PAR1 is not required: any
	// other leading bytes (or a failed read of them) are accepted, so a
	// file truncated at the front is not detected here.
	if size >= 12 {
		lead, err := source.ReadAt(ctx, 0, 4)
		if err == nil && bytes.Equal(lead, magicPARE) {
			return nil, newErr(KindEncrypted, 0, "leading magic is PARE; decrypting encrypted footers is out of scope")
		}
	}

	footerStart := size - 8 - footerLen
	footer, err := source.ReadAt(ctx, footerStart, int(footerLen))
	if err != nil {
		return nil, wrapErr(KindIoError, footerStart, err, "reading footer body")
	}
	return footer, nil
}
