package pqfooter

import "github.com/arborix/pqfooter/internal/thriftcompact"

// thriftEnc is a minimal Compact Protocol encoder used only by this
// package's tests to build synthetic footers and bloom filter headers
// without needing a real Parquet file on disk.
type thriftEnc struct {
	buf  []byte
	last int16
}

func (e *thriftEnc) writeVarint(v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			e.buf = append(e.buf, b|0x80)
			continue
		}
		e.buf = append(e.buf, b)
		return
	}
}

func (e *thriftEnc) zigzag32(v int32) { e.writeVarint(uint64(uint32((v << 1) ^ (v >> 31)))) }
func (e *thriftEnc) zigzag64(v int64) { e.writeVarint(uint64((v << 1) ^ (v >> 63))) }

func (e *thriftEnc) field(id int16, wt thriftcompact.WireType) {
	delta := id - e.last
	if delta > 0 && delta < 15 {
		e.buf = append(e.buf, byte(delta<<4)|byte(wt))
	} else {
		e.buf = append(e.buf, byte(wt))
		e.zigzag32(int32(id))
	}
	e.last = id
}

func (e *thriftEnc) stop() {
	e.buf = append(e.buf, 0)
	e.last = 0
}

func (e *thriftEnc) str(s string) {
	e.writeVarint(uint64(len(s)))
	e.buf = append(e.buf, []byte(s)...)
}

func (e *thriftEnc) listHeader(size int, elemType thriftcompact.WireType) {
	if size < 15 {
		e.buf = append(e.buf, byte(size<<4)|byte(elemType))
		return
	}
	e.buf = append(e.buf, byte(0x0f<<4)|byte(elemType))
	e.writeVarint(uint64(size))
}

// nested runs fn against a fresh encoder scoped to one struct (its own
// lastID namespace) and splices the result in, followed by a stop
// byte, matching how a struct-typed field is laid out inline.
func nested(fn func(e *thriftEnc)) []byte {
	inner := &thriftEnc{}
	fn(inner)
	inner.stop()
	return inner.buf
}

// schemaElementSpec lists the SchemaElement fields encodeSchemaElement
// writes; nil pointer fields are omitted from the encoding. The name
// field is always written.
type schemaElementSpec struct {
	physicalType *int32
	typeLength   *int32
	repetition   *int32
	name         string
	numChildren  *int32
	convertedType *int32
	scale        *int32
	precision    *int32
	fieldID      *int32
	logicalType  []byte // pre-encoded nested LogicalType struct body, or nil
}

func encodeSchemaElement(spec schemaElementSpec) []byte {
	e := &thriftEnc{}
	if spec.physicalType != nil {
		e.field(1, thriftcompact.TypeI32)
		e.zigzag32(*spec.physicalType)
	}
	if spec.typeLength != nil {
		e.field(2, thriftcompact.TypeI32)
		e.zigzag32(*spec.typeLength)
	}
	if spec.repetition != nil {
		e.field(3, thriftcompact.TypeI32)
		e.zigzag32(*spec.repetition)
	}
	e.field(4, thriftcompact.TypeBinary)
	e.str(spec.name)
	if spec.numChildren != nil {
		e.field(5, thriftcompact.TypeI32)
		e.zigzag32(*spec.numChildren)
	}
	if spec.convertedType != nil {
		e.field(6, thriftcompact.TypeI32)
		e.zigzag32(*spec.convertedType)
	}
	if spec.scale != nil {
		e.field(7, thriftcompact.TypeI32)
		e.zigzag32(*spec.scale)
	}
	if spec.precision != nil {
		e.field(8, thriftcompact.TypeI32)
		e.zigzag32(*spec.precision)
	}
	if spec.fieldID != nil {
		e.field(9, thriftcompact.TypeI32)
		e.zigzag32(*spec.fieldID)
	}
	if spec.logicalType != nil {
		e.field(10, thriftcompact.TypeStruct)
		e.buf = append(e.buf, spec.logicalType...)
	}
	e.stop()
	return e.buf
}

func i32p(v int32) *int32 { return &v }

// encodeFileMetaData builds a complete Thrift-encoded FileMetaData
// message from already-encoded schema element and row group bodies.
func encodeFileMetaData(version int32, schema [][]byte, numRows int64, rowGroups [][]byte, createdBy string) []byte {
	e := &thriftEnc{}
	e.field(1, thriftcompact.TypeI32)
	e.zigzag32(version)

	e.field(2, thriftcompact.TypeList)
	e.listHeader(len(schema), thriftcompact.TypeStruct)
	for _, s := range schema {
		e.buf = append(e.buf, s...)
	}

	e.field(3, thriftcompact.TypeI64)
	e.zigzag64(numRows)

	e.field(4, thriftcompact.TypeList)
	e.listHeader(len(rowGroups), thriftcompact.TypeStruct)
	for _, rg := range rowGroups {
		e.buf = append(e.buf, rg...)
	}

	if createdBy != "" {
		e.field(6, thriftcompact.TypeBinary)
		e.str(createdBy)
	}
	e.stop()
	return e.buf
}

type columnChunkSpec struct {
	physicalType       int32
	pathInSchema       []string
	codec              int32
	numValues          int64
	totalUncompressed  int64
	totalCompressed    int64
	dataPageOffset     int64
	statsLegacyMin     []byte
	statsLegacyMax     []byte
	statsMinValue      []byte
	statsMaxValue      []byte
	statsNullCount     *int64
	bloomFilterOffset  *int64
	bloomFilterLength  *int64
}

func encodeColumnMetaData(spec columnChunkSpec) []byte {
	e := &thriftEnc{}
	e.field(1, thriftcompact.TypeI32)
	e.zigzag32(spec.physicalType)

	e.field(2, thriftcompact.TypeList) // encodings (empty)
	e.listHeader(0, thriftcompact.TypeI32)

	e.field(3, thriftcompact.TypeList) // path_in_schema
	e.listHeader(len(spec.pathInSchema), thriftcompact.TypeBinary)
	for _, p := range spec.pathInSchema {
		e.str(p)
	}

	e.field(4, thriftcompact.TypeI32)
	e.zigzag32(spec.codec)

	e.field(5, thriftcompact.TypeI64)
	e.zigzag64(spec.numValues)

	e.field(6, thriftcompact.TypeI64)
	e.zigzag64(spec.totalUncompressed)

	e.field(7, thriftcompact.TypeI64)
	e.zigzag64(spec.totalCompressed)

	e.field(9, thriftcompact.TypeI64)
	e.zigzag64(spec.dataPageOffset)

	if spec.statsMinValue != nil || spec.statsMaxValue != nil || spec.statsNullCount != nil ||
		spec.statsLegacyMin != nil || spec.statsLegacyMax != nil {
		e.field(12, thriftcompact.TypeStruct)
		e.buf = append(e.buf, nested(func(s *thriftEnc) {
			if spec.statsLegacyMax != nil {
				s.field(1, thriftcompact.TypeBinary)
				s.writeVarint(uint64(len(spec.statsLegacyMax)))
				s.buf = append(s.buf, spec.statsLegacyMax...)
			}
			if spec.statsLegacyMin != nil {
				s.field(2, thriftcompact.TypeBinary)
				s.writeVarint(uint64(len(spec.statsLegacyMin)))
				s.buf = append(s.buf, spec.statsLegacyMin...)
			}
			if spec.statsNullCount != nil {
				s.field(3, thriftcompact.TypeI64)
				s.zigzag64(*spec.statsNullCount)
			}
			if spec.statsMaxValue != nil {
				s.field(5, thriftcompact.TypeBinary)
				s.writeVarint(uint64(len(spec.statsMaxValue)))
				s.buf = append(s.buf, spec.statsMaxValue...)
			}
			if spec.statsMinValue != nil {
				s.field(6, thriftcompact.TypeBinary)
				s.writeVarint(uint64(len(spec.statsMinValue)))
				s.buf = append(s.buf, spec.statsMinValue...)
			}
		})...)
	}

	if spec.bloomFilterOffset != nil {
		e.field(14, thriftcompact.TypeI64)
		e.zigzag64(*spec.bloomFilterOffset)
	}
	if spec.bloomFilterLength != nil {
		e.field(15, thriftcompact.TypeI64)
		e.zigzag64(*spec.bloomFilterLength)
	}
	e.stop()
	return e.buf
}

func encodeColumnChunk(metaData []byte) []byte {
	e := &thriftEnc{}
	e.field(3, thriftcompact.TypeStruct)
	e.buf = append(e.buf, metaData...)
	e.stop()
	return e.buf
}

func encodeRowGroup(columns [][]byte, totalByteSize, numRows int64) []byte {
	e := &thriftEnc{}
	e.field(1, thriftcompact.TypeList)
	e.listHeader(len(columns), thriftcompact.TypeStruct)
	for _, c := range columns {
		e.buf = append(e.buf, c...)
	}
	e.field(2, thriftcompact.TypeI64)
	e.zigzag64(totalByteSize)
	e.field(3, thriftcompact.TypeI64)
	e.zigzag64(numRows)
	e.stop()
	return e.buf
}

// encodeBloomFilterHeader builds a Thrift BloomFilterHeader:
// num_bytes, algorithm=SPLIT_BLOCK, hash=XXHASH, compression=UNCOMPRESSED.
func encodeBloomFilterHeader(numBytes int32) []byte {
	e := &thriftEnc{}
	e.field(1, thriftcompact.TypeI32)
	e.zigzag32(numBytes)

	e.field(2, thriftcompact.TypeStruct) // algorithm union: SPLIT_BLOCK
	e.buf = append(e.buf, nested(func(s *thriftEnc) {
		s.field(1, thriftcompact.TypeStruct)
		s.buf = append(s.buf, nested(func(*thriftEnc) {})...)
	})...)

	e.field(3, thriftcompact.TypeStruct) // hash union: XXHASH
	e.buf = append(e.buf, nested(func(s *thriftEnc) {
		s.field(1, thriftcompact.TypeStruct)
		s.buf = append(s.buf, nested(func(*thriftEnc) {})...)
	})...)

	e.field(4, thriftcompact.TypeStruct) // compression union: UNCOMPRESSED
	e.buf = append(e.buf, nested(func(s *thriftEnc) {
		s.field(1, thriftcompact.TypeStruct)
		s.buf = append(s.buf, nested(func(*thriftEnc) {})...)
	})...)

	e.stop()
	return e.buf
}
