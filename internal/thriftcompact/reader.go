// Package thriftcompact is a hand-rolled, pull-style decoder for the
// subset of the Thrift Compact Protocol that Parquet footers and
// bloom filter headers use: varints, zig-zag integers, length-prefixed
// binary, delta-encoded field headers, and list/set/map headers.
//
// It does not depend on a Thrift code generator or runtime; every
// caller walks its own struct's field ids by hand, which is what lets
// unknown fields be skipped without knowing their shape in advance.
package thriftcompact

import "fmt"

// WireType is one of the Compact Protocol's per-field type tags.
type WireType byte

const (
	TypeStop      WireType = 0
	TypeBoolTrue  WireType = 1
	TypeBoolFalse WireType = 2
	TypeI8        WireType = 3
	TypeI16       WireType = 4
	TypeI32       WireType = 5
	TypeI64       WireType = 6
	TypeDouble    WireType = 7
	TypeBinary    WireType = 8
	TypeList      WireType = 9
	TypeSet       WireType = 10
	TypeMap       WireType = 11
	TypeStruct    WireType = 12
)

func (t WireType) String() string {
	switch t {
	case TypeStop:
		return "STOP"
	case TypeBoolTrue:
		return "BOOL_TRUE"
	case TypeBoolFalse:
		return "BOOL_FALSE"
	case TypeI8:
		return "I8"
	case TypeI16:
		return "I16"
	case TypeI32:
		return "I32"
	case TypeI64:
		return "I64"
	case TypeDouble:
		return "DOUBLE"
	case TypeBinary:
		return "BINARY"
	case TypeList:
		return "LIST"
	case TypeSet:
		return "SET"
	case TypeMap:
		return "MAP"
	case TypeStruct:
		return "STRUCT"
	default:
		return fmt.Sprintf("WireType(%d)", byte(t))
	}
}

// ErrKind distinguishes why a Reader call failed, without this
// package taking a dependency on the caller's richer error taxonomy.
type ErrKind int

const (
	ErrTruncated ErrKind = iota
	ErrMalformed
)

// Error is returned by every Reader method that fails. Offset is the
// position within the buffer at the point of failure.
type Error struct {
	Kind   ErrKind
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("thriftcompact: %s at offset %d", e.Msg, e.Offset)
}

func truncated(offset int, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrTruncated, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func malformed(offset int, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrMalformed, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// maxVarintBytes bounds read_varint: more than 10 continuation bytes
// for a 64-bit varint is corruption, not a legitimately large value.
const maxVarintBytes = 10

// Reader is a pull-style cursor over a Thrift Compact Protocol
// encoded byte slice. It never copies the slice; strings and binary
// fields returned by Reader alias it. The zero Reader is not usable;
// construct one with NewReader.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential Compact Protocol decoding
// starting at offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current cursor position, useful for attaching
// offsets to caller-level errors.
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

func (r *Reader) readByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, truncated(r.pos, "unexpected end of input")
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) readSlice(n int) ([]byte, error) {
	if n < 0 {
		return nil, malformed(r.pos, "negative length %d", n)
	}
	if r.pos+n > len(r.buf) {
		return nil, truncated(r.pos, "need %d bytes, only %d remain", n, len(r.buf)-r.pos)
	}
	s := r.buf[r.pos : r.pos+n]
	r.pos += n
	return s, nil
}

// ReadVarint reads successive 7-bit groups, LSB first, MSB=continuation.
func (r *Reader) ReadVarint() (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, malformed(r.pos, "varint exceeds %d continuation bytes", maxVarintBytes)
}

// ReadZigZag32 reads a zig-zag encoded varint as a signed 32-bit value.
func (r *Reader) ReadZigZag32() (int32, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	return int32(int64(n>>1) ^ -int64(n&1)), nil
}

// ReadZigZag64 reads a zig-zag encoded varint as a signed 64-bit value.
func (r *Reader) ReadZigZag64() (int64, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	return int64(n>>1) ^ -int64(n&1), nil
}

// ReadByte exposes a single raw byte read (used for BOOL_TRUE/FALSE
// disambiguation is done via the field's wire type, not a data byte,
// but I8 values are a single raw byte).
func (r *Reader) ReadByte() (byte, error) {
	return r.readByte()
}

// ReadI8 reads a single signed byte.
func (r *Reader) ReadI8() (int8, error) {
	b, err := r.readByte()
	return int8(b), err
}

// ReadDouble reads a little-endian IEEE-754 binary64.
func (r *Reader) ReadDouble() (uint64, error) {
	s, err := r.readSlice(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(s[i])
	}
	return v, nil
}

// ReadString reads a varint length L followed by L raw bytes. An
// empty string and an absent string decode identically (both as a
// zero-length slice); callers that must distinguish absence track it
// via whether the field was present at all, not via the returned
// slice.
func (r *Reader) ReadString() ([]byte, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Len()) {
		return nil, truncated(r.pos, "string length %d exceeds %d remaining bytes", n, r.Len())
	}
	return r.readSlice(int(n))
}

// FieldHeader is the result of ReadFieldHeader: either Stop is true
// (the enclosing struct has no more fields) or ID/Type describe the
// next field.
type FieldHeader struct {
	Stop bool
	ID   int16
	Type WireType
}

// ReadFieldHeader reads one field header, given the last field id
// seen in the enclosing struct (0 if this is the first field).
// Delta-encoded ids (the common case) are last+modifier; an explicit
// zig-zag i16 is read when the modifier nibble is zero.
func (r *Reader) ReadFieldHeader(lastID int16) (FieldHeader, error) {
	b, err := r.readByte()
	if err != nil {
		return FieldHeader{}, err
	}
	if b == 0 {
		return FieldHeader{Stop: true}, nil
	}
	wt := WireType(b & 0x0f)
	modifier := b >> 4
	if modifier == 0 {
		id, err := r.ReadZigZag32()
		if err != nil {
			return FieldHeader{}, err
		}
		return FieldHeader{ID: int16(id), Type: wt}, nil
	}
	return FieldHeader{ID: lastID + int16(modifier), Type: wt}, nil
}

// ListHeader describes a LIST or SET: the element wire type and the
// number of elements.
type ListHeader struct {
	ElemType WireType
	Size     int
}

// ReadListHeader reads a list/set header: a size-and-type byte, with
// an overflow varint when size reaches the 4-bit nibble's maximum.
func (r *Reader) ReadListHeader() (ListHeader, error) {
	b, err := r.readByte()
	if err != nil {
		return ListHeader{}, err
	}
	size := int(b >> 4)
	elemType := WireType(b & 0x0f)
	if size == 0x0f {
		n, err := r.ReadVarint()
		if err != nil {
			return ListHeader{}, err
		}
		size = int(n)
	}
	return ListHeader{ElemType: elemType, Size: size}, nil
}

// MapHeader describes a MAP: the number of pairs and the key/value
// wire types (meaningless when Size is 0, since the type byte is
// omitted for an empty map).
type MapHeader struct {
	Size      int
	KeyType   WireType
	ValueType WireType
}

// ReadMapHeader reads a map header: a varint size, followed by one
// byte packing (key_type<<4 | value_type) only when size > 0.
func (r *Reader) ReadMapHeader() (MapHeader, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return MapHeader{}, err
	}
	if n == 0 {
		return MapHeader{}, nil
	}
	b, err := r.readByte()
	if err != nil {
		return MapHeader{}, err
	}
	return MapHeader{Size: int(n), KeyType: WireType(b >> 4), ValueType: WireType(b & 0x0f)}, nil
}

// SkipField consumes and discards a value of the given wire type,
// recursing into STRUCT and LIST/SET/MAP as needed. An unrecognized
// wire type fails with a malformed-encoding error rather than
// guessing how many bytes to discard (see package docs / Open
// Question #2 in the originating specification: silently skipping an
// unknown shape risks desynchronizing the rest of the parse).
func (r *Reader) SkipField(wt WireType) error {
	switch wt {
	case TypeStop, TypeBoolTrue, TypeBoolFalse:
		return nil
	case TypeI8:
		_, err := r.readByte()
		return err
	case TypeI16, TypeI32, TypeI64:
		_, err := r.ReadVarint()
		return err
	case TypeDouble:
		_, err := r.readSlice(8)
		return err
	case TypeBinary:
		_, err := r.ReadString()
		return err
	case TypeList, TypeSet:
		lh, err := r.ReadListHeader()
		if err != nil {
			return err
		}
		for i := 0; i < lh.Size; i++ {
			if err := r.SkipField(lh.ElemType); err != nil {
				return err
			}
		}
		return nil
	case TypeMap:
		mh, err := r.ReadMapHeader()
		if err != nil {
			return err
		}
		for i := 0; i < mh.Size; i++ {
			if err := r.SkipField(mh.KeyType); err != nil {
				return err
			}
			if err := r.SkipField(mh.ValueType); err != nil {
				return err
			}
		}
		return nil
	case TypeStruct:
		return r.SkipStruct()
	default:
		return malformed(r.pos, "unknown wire type %d while skipping", byte(wt))
	}
}

// SkipStruct reads field headers until STOP, skipping each field's
// value. It is the recursive case SkipField(STRUCT) delegates to, and
// is also what callers use to discard a struct they have no interest
// in at all.
func (r *Reader) SkipStruct() error {
	var lastID int16
	for {
		fh, err := r.ReadFieldHeader(lastID)
		if err != nil {
			return err
		}
		if fh.Stop {
			return nil
		}
		if err := r.SkipField(fh.Type); err != nil {
			return err
		}
		lastID = fh.ID
	}
}
