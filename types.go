package pqfooter

// LogicalTypeTag selects which variant of LogicalType is populated.
// LogicalTagAbsent is the zero value so an un-set LogicalType is
// distinct from LogicalTagNone (an explicit "no logical type" annotation).
type LogicalTypeTag int

const (
	LogicalTagAbsent LogicalTypeTag = iota
	LogicalTagString
	LogicalTagMap
	LogicalTagList
	LogicalTagEnum
	LogicalTagDecimal
	LogicalTagDate
	LogicalTagTime
	LogicalTagTimestamp
	LogicalTagInt
	LogicalTagJSON
	LogicalTagBSON
	LogicalTagUUID
	LogicalTagFloat16
	LogicalTagUnknown
	LogicalTagNone
)

// LogicalType is a tagged union over the logical-type shapes Parquet
// defines. Only the fields relevant to Tag are meaningful; the rest
// are zero.
type LogicalType struct {
	Tag LogicalTypeTag

	// DECIMAL
	DecimalPrecision int32
	DecimalScale     int32

	// TIME / TIMESTAMP
	TimeUnit  TimeUnit
	TimeIsUTC bool

	// INT
	IntBitWidth int8
	IntSigned   bool
}

func (t LogicalType) String() string {
	switch t.Tag {
	case LogicalTagAbsent:
		return "<absent>"
	case LogicalTagString:
		return "STRING"
	case LogicalTagMap:
		return "MAP"
	case LogicalTagList:
		return "LIST"
	case LogicalTagEnum:
		return "ENUM"
	case LogicalTagDecimal:
		return "DECIMAL"
	case LogicalTagDate:
		return "DATE"
	case LogicalTagTime:
		return "TIME"
	case LogicalTagTimestamp:
		return "TIMESTAMP"
	case LogicalTagInt:
		return "INT"
	case LogicalTagJSON:
		return "JSON"
	case LogicalTagBSON:
		return "BSON"
	case LogicalTagUUID:
		return "UUID"
	case LogicalTagFloat16:
		return "FLOAT16"
	case LogicalTagNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// SchemaElement is one pre-order node in the flattened schema tree as
// it appears in FileMetaData.schema. Optional integer fields use a
// pointer so "absent" is distinguishable from zero.
type SchemaElement struct {
	Name           string
	Type           *PhysicalType
	TypeLength     *int32
	Repetition     *Repetition
	NumChildren    int32
	ConvertedType  *ConvertedType
	Precision      *int32
	Scale          *int32
	FieldID        *int32
	LogicalType    *LogicalType
}

// IsGroup reports whether this element is an intermediate group
// (no physical type) rather than a leaf column.
func (s *SchemaElement) IsGroup() bool {
	return s.Type == nil
}

// Statistics holds a column chunk's decoded min/max/null/distinct
// summary. MinRaw/MaxRaw are nil when absent; an empty (non-nil)
// slice is a legitimate decoded value (e.g. the empty string).
// NullCount/DistinctCount are -1 when absent.
type Statistics struct {
	MinRaw        []byte
	MaxRaw        []byte
	MinRawSet     bool
	MaxRawSet     bool
	NullCount     int64
	DistinctCount int64

	// Min/Max hold the typed decode of MinRaw/MaxRaw per
	// DecodeStatValue (§4.4); they are nil when MinRaw/MaxRaw are
	// absent. When the raw bytes cannot be interpreted under the
	// column's physical type, Min/Max hold those raw bytes ([]byte).
	Min interface{}
	Max interface{}
}

// ColumnChunk describes one column's storage within one row group.
type ColumnChunk struct {
	// Name is the dotted path_in_schema, e.g. "a.b".
	Name string

	PhysicalType   PhysicalType
	LogicalType    LogicalType
	FilePath       string
	FileOffset     int64
	NumValues      int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64

	DataPageOffset       int64
	IndexPageOffset      int64
	DictionaryPageOffset int64

	Codec      CompressionCodec
	Encodings  []Encoding
	Statistics *Statistics

	BloomFilterOffset int64
	BloomFilterLength int64

	KeyValueMetadata map[string]string
}

// RowGroup is a horizontal partition of the table.
type RowGroup struct {
	NumRows       int64
	TotalByteSize int64
	Columns       []ColumnChunk
}

// FileMetadata is the fully decoded, self-contained description of a
// Parquet file's logical contents, returned by ParseMetadata.
type FileMetadata struct {
	Version          int32
	NumRows          int64
	CreatedBy        string
	Schema           []SchemaElement
	RowGroups        []RowGroup
	KeyValueMetadata map[string]string
}
