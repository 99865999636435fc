package pqfooter

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies one of the stable error conditions a decode call can
// surface. Callers are expected to switch on Kind rather than parse
// error strings.
type Kind int

const (
	// KindUnknown is never returned by this package; it is the zero
	// value so an un-set Kind is obviously wrong in a switch.
	KindUnknown Kind = iota
	KindTooSmall
	KindBadMagic
	KindEncrypted
	KindTruncatedInput
	KindMalformedEncoding
	KindMissingRequiredField
	KindSchemaMismatch
	KindBloomAbsent
	KindIoError
)

func (k Kind) String() string {
	switch k {
	case KindTooSmall:
		return "TooSmall"
	case KindBadMagic:
		return "BadMagic"
	case KindEncrypted:
		return "Encrypted"
	case KindTruncatedInput:
		return "TruncatedInput"
	case KindMalformedEncoding:
		return "MalformedEncoding"
	case KindMissingRequiredField:
		return "MissingRequiredField"
	case KindSchemaMismatch:
		return "SchemaMismatch"
	case KindBloomAbsent:
		return "BloomAbsent"
	case KindIoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// DecodeError is the error type returned by the decoding functions of
// this package (LocateFooter, ParseMetadata, ResolveSchema, TestBloom);
// the ParseX string parsers in enums.go return plain errors instead.
// Offset is the byte position within the
// slice being decoded at the point of failure, or -1 when no single
// offset is meaningful.
type DecodeError struct {
	Kind   Kind
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		if e.Offset >= 0 {
			return fmt.Sprintf("pqfooter: %s at offset %d", e.Kind, e.Offset)
		}
		return fmt.Sprintf("pqfooter: %s", e.Kind)
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("pqfooter: %s at offset %d: %s", e.Kind, e.Offset, e.Err)
	}
	return fmt.Sprintf("pqfooter: %s: %s", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newErr(kind Kind, offset int64, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Kind: kind, Offset: offset, Err: errors.Errorf(format, args...)}
}

func wrapErr(kind Kind, offset int64, cause error, context string) *DecodeError {
	return &DecodeError{Kind: kind, Offset: offset, Err: errors.Wrap(cause, context)}
}

// IsKind reports whether err is a *DecodeError of the given kind,
// unwrapping any wrapping performed by callers along the way.
func IsKind(err error, kind Kind) bool {
	var de *DecodeError
	for err != nil {
		if d, ok := err.(*DecodeError); ok {
			de = d
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return de != nil && de.Kind == kind
}
