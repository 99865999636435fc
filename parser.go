package pqfooter

import (
	"context"

	"github.com/arborix/pqfooter/internal/thriftcompact"
)

// ParseMetadata locates the footer of source, decodes the Thrift
// Compact Protocol FileMetaData message it contains, and returns a
// fully resolved, self-contained FileMetadata. It never reads past
// the footer: no page data, index pages, or bloom filters are
// touched.
func ParseMetadata(ctx context.Context, source ByteSource) (*FileMetadata, error) {
	footer, err := LocateFooter(ctx, source)
	if err != nil {
		return nil, err
	}

	r := thriftcompact.NewReader(footer)
	meta, err := parseFileMetaData(ctx, r)
	if err != nil {
		return nil, err
	}

	leafTypes, err := ResolveSchema(meta.Schema)
	if err != nil {
		return nil, err
	}
	for rgIdx := range meta.RowGroups {
		for cIdx := range meta.RowGroups[rgIdx].Columns {
			col := &meta.RowGroups[rgIdx].Columns[cIdx]
			lt, ok := leafTypes[col.Name]
			if !ok {
				return nil, newErr(KindSchemaMismatch, -1, "column chunk %q has no matching leaf in the schema", col.Name)
			}
			col.LogicalType = lt
			applyUUIDStatistics(col)
		}
	}

	return meta, nil
}

// applyUUIDStatistics upgrades a column's already-decoded raw
// statistics to a uuid.UUID when the schema resolver determined the
// column is UUID-typed (§3.1 of the expanded specification).
func applyUUIDStatistics(col *ColumnChunk) {
	if col.LogicalType.Tag != LogicalTagUUID || col.Statistics == nil {
		return
	}
	if col.Statistics.MinRawSet {
		if u, ok := DecodeUUIDStat(col.Statistics.MinRaw); ok {
			col.Statistics.Min = u
		}
	}
	if col.Statistics.MaxRawSet {
		if u, ok := DecodeUUIDStat(col.Statistics.MaxRaw); ok {
			col.Statistics.Max = u
		}
	}
}

func convertErr(err error) error {
	if err == nil {
		return nil
	}
	if tcErr, ok := err.(*thriftcompact.Error); ok {
		kind := KindMalformedEncoding
		if tcErr.Kind == thriftcompact.ErrTruncated {
			kind = KindTruncatedInput
		}
		return &DecodeError{Kind: kind, Offset: int64(tcErr.Offset), Err: tcErr}
	}
	return err
}

// ctxErr returns a DecodeError if ctx has been canceled, else nil.
// Checked between struct frames so a canceled context aborts a large
// footer parse promptly (§5 of the specification).
func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return wrapErr(KindIoError, -1, err, "context canceled during decode")
	}
	return nil
}

func parseFileMetaData(ctx context.Context, r *thriftcompact.Reader) (*FileMetadata, error) {
	meta := &FileMetadata{}
	haveNumRows := false
	haveRowGroups := false

	var lastID int16
	for {
		if err := ctxErr(ctx); err != nil {
			return nil, err
		}
		fh, err := r.ReadFieldHeader(lastID)
		if err != nil {
			return nil, convertErr(err)
		}
		if fh.Stop {
			break
		}
		switch fh.ID {
		case 1: // version
			v, err := r.ReadZigZag32()
			if err != nil {
				return nil, convertErr(err)
			}
			meta.Version = v
		case 2: // schema
			schema, err := parseSchemaList(r)
			if err != nil {
				return nil, err
			}
			meta.Schema = schema
		case 3: // num_rows
			v, err := r.ReadZigZag64()
			if err != nil {
				return nil, convertErr(err)
			}
			meta.NumRows = v
			haveNumRows = true
		case 4: // row_groups
			rgs, err := parseRowGroupList(ctx, r)
			if err != nil {
				return nil, err
			}
			meta.RowGroups = rgs
			haveRowGroups = true
		case 5: // key_value_metadata
			kv, err := parseKeyValueList(r)
			if err != nil {
				return nil, err
			}
			meta.KeyValueMetadata = kv
		case 6: // created_by
			s, err := r.ReadString()
			if err != nil {
				return nil, convertErr(err)
			}
			meta.CreatedBy = string(s)
		default:
			if err := r.SkipField(fh.Type); err != nil {
				return nil, convertErr(err)
			}
		}
		lastID = fh.ID
	}

	if !haveNumRows {
		return nil, newErr(KindMissingRequiredField, -1, "FileMetaData.num_rows is required")
	}
	if !haveRowGroups {
		meta.RowGroups = []RowGroup{}
	}
	return meta, nil
}

func parseSchemaList(r *thriftcompact.Reader) ([]SchemaElement, error) {
	lh, err := r.ReadListHeader()
	if err != nil {
		return nil, convertErr(err)
	}
	out := make([]SchemaElement, 0, lh.Size)
	for i := 0; i < lh.Size; i++ {
		el, err := parseSchemaElement(r)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

func parseSchemaElement(r *thriftcompact.Reader) (SchemaElement, error) {
	var el SchemaElement
	haveName := false
	haveNumChildren := false

	var lastID int16
	for {
		fh, err := r.ReadFieldHeader(lastID)
		if err != nil {
			return el, convertErr(err)
		}
		if fh.Stop {
			break
		}
		switch fh.ID {
		case 1: // type
			v, err := r.ReadZigZag32()
			if err != nil {
				return el, convertErr(err)
			}
			pt := PhysicalType(v)
			el.Type = &pt
		case 2: // type_length
			v, err := r.ReadZigZag32()
			if err != nil {
				return el, convertErr(err)
			}
			el.TypeLength = &v
		case 3: // repetition_type
			v, err := r.ReadZigZag32()
			if err != nil {
				return el, convertErr(err)
			}
			rep := Repetition(v)
			el.Repetition = &rep
		case 4: // name
			s, err := r.ReadString()
			if err != nil {
				return el, convertErr(err)
			}
			el.Name = string(s)
			haveName = true
		case 5: // num_children
			v, err := r.ReadZigZag32()
			if err != nil {
				return el, convertErr(err)
			}
			el.NumChildren = v
			haveNumChildren = true
		case 6: // converted_type
			v, err := r.ReadZigZag32()
			if err != nil {
				return el, convertErr(err)
			}
			ct := ConvertedType(v)
			el.ConvertedType = &ct
		case 7: // scale
			v, err := r.ReadZigZag32()
			if err != nil {
				return el, convertErr(err)
			}
			el.Scale = &v
		case 8: // precision
			v, err := r.ReadZigZag32()
			if err != nil {
				return el, convertErr(err)
			}
			el.Precision = &v
		case 9: // field_id
			v, err := r.ReadZigZag32()
			if err != nil {
				return el, convertErr(err)
			}
			el.FieldID = &v
		case 10: // logicalType
			lt, err := parseLogicalType(r)
			if err != nil {
				return el, err
			}
			el.LogicalType = lt
		default:
			if err := r.SkipField(fh.Type); err != nil {
				return el, convertErr(err)
			}
		}
		lastID = fh.ID
	}

	if !haveName {
		return el, newErr(KindMissingRequiredField, int64(r.Pos()), "SchemaElement.name is required")
	}
	if el.Type == nil && !haveNumChildren {
		return el, newErr(KindMissingRequiredField, int64(r.Pos()), "SchemaElement %q is a group but has no num_children", el.Name)
	}
	return el, nil
}

// parseLogicalType walks the LogicalType tagged-union struct, keeping
// the first field present (Thrift unions are encoded as a struct with
// exactly one field set; this parser tolerates more than one by
// keeping the first and skipping the rest, rather than failing).
func parseLogicalType(r *thriftcompact.Reader) (*LogicalType, error) {
	lt := &LogicalType{Tag: LogicalTagUnknown}
	set := false

	var lastID int16
	for {
		fh, err := r.ReadFieldHeader(lastID)
		if err != nil {
			return nil, convertErr(err)
		}
		if fh.Stop {
			break
		}
		if set {
			if err := r.SkipField(fh.Type); err != nil {
				return nil, convertErr(err)
			}
			lastID = fh.ID
			continue
		}
		switch fh.ID {
		case 1: // STRING
			if err := r.SkipStruct(); err != nil {
				return nil, convertErr(err)
			}
			lt.Tag = LogicalTagString
			set = true
		case 2: // MAP
			if err := r.SkipStruct(); err != nil {
				return nil, convertErr(err)
			}
			lt.Tag = LogicalTagMap
			set = true
		case 3: // LIST
			if err := r.SkipStruct(); err != nil {
				return nil, convertErr(err)
			}
			lt.Tag = LogicalTagList
			set = true
		case 4: // ENUM
			if err := r.SkipStruct(); err != nil {
				return nil, convertErr(err)
			}
			lt.Tag = LogicalTagEnum
			set = true
		case 5: // DECIMAL{1 scale, 2 precision}
			prec, scale, err := parseDecimalType(r)
			if err != nil {
				return nil, err
			}
			lt.Tag = LogicalTagDecimal
			lt.DecimalPrecision = prec
			lt.DecimalScale = scale
			set = true
		case 6: // DATE
			if err := r.SkipStruct(); err != nil {
				return nil, convertErr(err)
			}
			lt.Tag = LogicalTagDate
			set = true
		case 7: // TIME{1 is_adjusted_utc, 2 unit}
			isUTC, unit, err := parseTimeType(r)
			if err != nil {
				return nil, err
			}
			lt.Tag = LogicalTagTime
			lt.TimeIsUTC = isUTC
			lt.TimeUnit = unit
			set = true
		case 8: // TIMESTAMP{1 is_adjusted_utc, 2 unit}
			isUTC, unit, err := parseTimeType(r)
			if err != nil {
				return nil, err
			}
			lt.Tag = LogicalTagTimestamp
			lt.TimeIsUTC = isUTC
			lt.TimeUnit = unit
			set = true
		case 9: // INT{1 bit_width, 2 is_signed}
			bitWidth, signed, err := parseIntType(r)
			if err != nil {
				return nil, err
			}
			lt.Tag = LogicalTagInt
			lt.IntBitWidth = bitWidth
			lt.IntSigned = signed
			set = true
		case 10: // JSON
			if err := r.SkipStruct(); err != nil {
				return nil, convertErr(err)
			}
			lt.Tag = LogicalTagJSON
			set = true
		case 11: // BSON
			if err := r.SkipStruct(); err != nil {
				return nil, convertErr(err)
			}
			lt.Tag = LogicalTagBSON
			set = true
		case 12: // UUID
			if err := r.SkipStruct(); err != nil {
				return nil, convertErr(err)
			}
			lt.Tag = LogicalTagUUID
			set = true
		case 13: // FLOAT16
			if err := r.SkipStruct(); err != nil {
				return nil, convertErr(err)
			}
			lt.Tag = LogicalTagFloat16
			set = true
		default:
			if err := r.SkipField(fh.Type); err != nil {
				return nil, convertErr(err)
			}
		}
		lastID = fh.ID
	}
	return lt, nil
}

func parseDecimalType(r *thriftcompact.Reader) (precision, scale int32, err error) {
	var lastID int16
	for {
		fh, ferr := r.ReadFieldHeader(lastID)
		if ferr != nil {
			return 0, 0, convertErr(ferr)
		}
		if fh.Stop {
			return precision, scale, nil
		}
		switch fh.ID {
		case 1:
			scale, ferr = r.ReadZigZag32()
		case 2:
			precision, ferr = r.ReadZigZag32()
		default:
			ferr = r.SkipField(fh.Type)
		}
		if ferr != nil {
			return 0, 0, convertErr(ferr)
		}
		lastID = fh.ID
	}
}

func parseTimeType(r *thriftcompact.Reader) (isUTC bool, unit TimeUnit, err error) {
	var lastID int16
	for {
		fh, ferr := r.ReadFieldHeader(lastID)
		if ferr != nil {
			return false, 0, convertErr(ferr)
		}
		if fh.Stop {
			return isUTC, unit, nil
		}
		switch fh.ID {
		case 1:
			isUTC = fh.Type == 1 // TBOOL_TRUE
		case 2:
			u, uerr := parseTimeUnit(r)
			if uerr != nil {
				return false, 0, uerr
			}
			unit = u
		default:
			ferr = r.SkipField(fh.Type)
		}
		if ferr != nil {
			return false, 0, convertErr(ferr)
		}
		lastID = fh.ID
	}
}

// parseTimeUnit walks the TimeUnit union struct, tagged by which of
// its three fields (MILLIS=1, MICROS=2, NANOS=3) is present.
func parseTimeUnit(r *thriftcompact.Reader) (TimeUnit, error) {
	unit := TimeUnitMillis
	var lastID int16
	for {
		fh, err := r.ReadFieldHeader(lastID)
		if err != nil {
			return 0, convertErr(err)
		}
		if fh.Stop {
			return unit, nil
		}
		switch fh.ID {
		case 1:
			unit = TimeUnitMillis
			err = r.SkipStruct()
		case 2:
			unit = TimeUnitMicros
			err = r.SkipStruct()
		case 3:
			unit = TimeUnitNanos
			err = r.SkipStruct()
		default:
			err = r.SkipField(fh.Type)
		}
		if err != nil {
			return 0, convertErr(err)
		}
		lastID = fh.ID
	}
}

func parseIntType(r *thriftcompact.Reader) (bitWidth int8, signed bool, err error) {
	var lastID int16
	for {
		fh, ferr := r.ReadFieldHeader(lastID)
		if ferr != nil {
			return 0, false, convertErr(ferr)
		}
		if fh.Stop {
			return bitWidth, signed, nil
		}
		switch fh.ID {
		case 1:
			b, berr := r.ReadI8()
			if berr != nil {
				return 0, false, convertErr(berr)
			}
			bitWidth = b
		case 2:
			signed = fh.Type == 1 // TBOOL_TRUE
		default:
			ferr = r.SkipField(fh.Type)
		}
		if ferr != nil {
			return 0, false, convertErr(ferr)
		}
		lastID = fh.ID
	}
}

func parseRowGroupList(ctx context.Context, r *thriftcompact.Reader) ([]RowGroup, error) {
	lh, err := r.ReadListHeader()
	if err != nil {
		return nil, convertErr(err)
	}
	out := make([]RowGroup, 0, lh.Size)
	for i := 0; i < lh.Size; i++ {
		if err := ctxErr(ctx); err != nil {
			return nil, err
		}
		rg, err := parseRowGroup(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rg)
	}
	return out, nil
}

func parseRowGroup(r *thriftcompact.Reader) (RowGroup, error) {
	var rg RowGroup
	haveColumns := false
	haveTotalByteSize := false
	haveNumRows := false

	var lastID int16
	for {
		fh, err := r.ReadFieldHeader(lastID)
		if err != nil {
			return rg, convertErr(err)
		}
		if fh.Stop {
			break
		}
		switch fh.ID {
		case 1: // columns
			cols, err := parseColumnChunkList(r)
			if err != nil {
				return rg, err
			}
			rg.Columns = cols
			haveColumns = true
		case 2: // total_byte_size
			v, err := r.ReadZigZag64()
			if err != nil {
				return rg, convertErr(err)
			}
			rg.TotalByteSize = v
			haveTotalByteSize = true
		case 3: // num_rows
			v, err := r.ReadZigZag64()
			if err != nil {
				return rg, convertErr(err)
			}
			rg.NumRows = v
			haveNumRows = true
		default:
			if err := r.SkipField(fh.Type); err != nil {
				return rg, convertErr(err)
			}
		}
		lastID = fh.ID
	}

	if !haveColumns {
		return rg, newErr(KindMissingRequiredField, int64(r.Pos()), "RowGroup.columns is required")
	}
	if !haveTotalByteSize {
		return rg, newErr(KindMissingRequiredField, int64(r.Pos()), "RowGroup.total_byte_size is required")
	}
	if !haveNumRows {
		return rg, newErr(KindMissingRequiredField, int64(r.Pos()), "RowGroup.num_rows is required")
	}
	return rg, nil
}

func parseColumnChunkList(r *thriftcompact.Reader) ([]ColumnChunk, error) {
	lh, err := r.ReadListHeader()
	if err != nil {
		return nil, convertErr(err)
	}
	out := make([]ColumnChunk, 0, lh.Size)
	for i := 0; i < lh.Size; i++ {
		cc, err := parseColumnChunk(r)
		if err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, nil
}

func parseColumnChunk(r *thriftcompact.Reader) (ColumnChunk, error) {
	cc := ColumnChunk{
		DataPageOffset:       -1,
		IndexPageOffset:      -1,
		DictionaryPageOffset: -1,
		BloomFilterOffset:    -1,
		BloomFilterLength:    -1,
	}
	haveMeta := false

	var lastID int16
	for {
		fh, err := r.ReadFieldHeader(lastID)
		if err != nil {
			return cc, convertErr(err)
		}
		if fh.Stop {
			break
		}
		switch fh.ID {
		case 1: // file_path
			s, err := r.ReadString()
			if err != nil {
				return cc, convertErr(err)
			}
			cc.FilePath = string(s)
		case 2: // file_offset
			v, err := r.ReadZigZag64()
			if err != nil {
				return cc, convertErr(err)
			}
			cc.FileOffset = v
		case 3: // meta_data
			if err := parseColumnMetaData(r, &cc); err != nil {
				return cc, err
			}
			haveMeta = true
		default:
			if err := r.SkipField(fh.Type); err != nil {
				return cc, convertErr(err)
			}
		}
		lastID = fh.ID
	}

	if !haveMeta {
		return cc, newErr(KindMissingRequiredField, int64(r.Pos()), "ColumnChunk.meta_data is required")
	}
	return cc, nil
}

func parseColumnMetaData(r *thriftcompact.Reader, cc *ColumnChunk) error {
	var legacyMin, legacyMax []byte
	var legacyMinSet, legacyMaxSet bool
	var v2Min, v2Max []byte
	var v2MinSet, v2MaxSet bool
	var nullCount, distinctCount int64 = -1, -1
	var haveStats bool

	var lastID int16
	for {
		fh, err := r.ReadFieldHeader(lastID)
		if err != nil {
			return convertErr(err)
		}
		if fh.Stop {
			break
		}
		switch fh.ID {
		case 1: // type
			v, err := r.ReadZigZag32()
			if err != nil {
				return convertErr(err)
			}
			cc.PhysicalType = PhysicalType(v)
		case 2: // encodings
			encs, err := parseEncodingList(r)
			if err != nil {
				return err
			}
			cc.Encodings = encs
		case 3: // path_in_schema
			name, err := parsePathInSchema(r)
			if err != nil {
				return err
			}
			cc.Name = name
		case 4: // codec
			v, err := r.ReadZigZag32()
			if err != nil {
				return convertErr(err)
			}
			cc.Codec = decodeCodec(v)
		case 5: // num_values
			v, err := r.ReadZigZag64()
			if err != nil {
				return convertErr(err)
			}
			cc.NumValues = v
		case 6: // total_uncompressed_size
			v, err := r.ReadZigZag64()
			if err != nil {
				return convertErr(err)
			}
			cc.TotalUncompressedSize = v
		case 7: // total_compressed_size
			v, err := r.ReadZigZag64()
			if err != nil {
				return convertErr(err)
			}
			cc.TotalCompressedSize = v
		case 8: // key_value_metadata
			kv, err := parseKeyValueList(r)
			if err != nil {
				return err
			}
			cc.KeyValueMetadata = kv
		case 9: // data_page_offset
			v, err := r.ReadZigZag64()
			if err != nil {
				return convertErr(err)
			}
			cc.DataPageOffset = v
		case 10: // index_page_offset
			v, err := r.ReadZigZag64()
			if err != nil {
				return convertErr(err)
			}
			cc.IndexPageOffset = v
		case 11: // dictionary_page_offset
			v, err := r.ReadZigZag64()
			if err != nil {
				return convertErr(err)
			}
			cc.DictionaryPageOffset = v
		case 12: // statistics
			lmin, lminSet, lmax, lmaxSet, vmin, vminSet, vmax, vmaxSet, nc, dc, err := parseStatisticsStruct(r)
			if err != nil {
				return err
			}
			legacyMin, legacyMinSet = lmin, lminSet
			legacyMax, legacyMaxSet = lmax, lmaxSet
			v2Min, v2MinSet = vmin, vminSet
			v2Max, v2MaxSet = vmax, vmaxSet
			nullCount, distinctCount = nc, dc
			haveStats = true
		case 13: // encoding_stats
			if err := r.SkipField(fh.Type); err != nil {
				return convertErr(err)
			}
		case 14: // bloom_filter_offset
			v, err := r.ReadZigZag64()
			if err != nil {
				return convertErr(err)
			}
			cc.BloomFilterOffset = v
		case 15: // bloom_filter_length
			v, err := r.ReadZigZag64()
			if err != nil {
				return convertErr(err)
			}
			cc.BloomFilterLength = v
		default:
			if err := r.SkipField(fh.Type); err != nil {
				return convertErr(err)
			}
		}
		lastID = fh.ID
	}

	if haveStats {
		stats := &Statistics{NullCount: nullCount, DistinctCount: distinctCount}
		// v2 (min_value/max_value) wins over legacy (min/max).
		if v2MinSet {
			stats.MinRaw, stats.MinRawSet = v2Min, true
		} else if legacyMinSet {
			stats.MinRaw, stats.MinRawSet = legacyMin, true
		}
		if v2MaxSet {
			stats.MaxRaw, stats.MaxRawSet = v2Max, true
		} else if legacyMaxSet {
			stats.MaxRaw, stats.MaxRawSet = legacyMax, true
		}
		if stats.MinRawSet {
			stats.Min = DecodeStatValue(stats.MinRaw, cc.PhysicalType)
		}
		if stats.MaxRawSet {
			stats.Max = DecodeStatValue(stats.MaxRaw, cc.PhysicalType)
		}
		cc.Statistics = stats
	}

	return nil
}

func parseStatisticsStruct(r *thriftcompact.Reader) (legacyMin []byte, legacyMinSet bool, legacyMax []byte, legacyMaxSet bool, v2Min []byte, v2MinSet bool, v2Max []byte, v2MaxSet bool, nullCount int64, distinctCount int64, err error) {
	nullCount, distinctCount = -1, -1
	var lastID int16
	for {
		fh, ferr := r.ReadFieldHeader(lastID)
		if ferr != nil {
			return nil, false, nil, false, nil, false, nil, false, 0, 0, convertErr(ferr)
		}
		if fh.Stop {
			return legacyMin, legacyMinSet, legacyMax, legacyMaxSet, v2Min, v2MinSet, v2Max, v2MaxSet, nullCount, distinctCount, nil
		}
		switch fh.ID {
		case 1: // max (legacy)
			legacyMax, ferr = r.ReadString()
			legacyMaxSet = true
		case 2: // min (legacy)
			legacyMin, ferr = r.ReadString()
			legacyMinSet = true
		case 3: // null_count
			nullCount, ferr = r.ReadZigZag64()
		case 4: // distinct_count
			distinctCount, ferr = r.ReadZigZag64()
		case 5: // max_value
			v2Max, ferr = r.ReadString()
			v2MaxSet = true
		case 6: // min_value
			v2Min, ferr = r.ReadString()
			v2MinSet = true
		default:
			ferr = r.SkipField(fh.Type)
		}
		if ferr != nil {
			return nil, false, nil, false, nil, false, nil, false, 0, 0, convertErr(ferr)
		}
		lastID = fh.ID
	}
}

func parseEncodingList(r *thriftcompact.Reader) ([]Encoding, error) {
	lh, err := r.ReadListHeader()
	if err != nil {
		return nil, convertErr(err)
	}
	out := make([]Encoding, 0, lh.Size)
	for i := 0; i < lh.Size; i++ {
		v, err := r.ReadZigZag32()
		if err != nil {
			return nil, convertErr(err)
		}
		out = append(out, decodeEncoding(v))
	}
	return out, nil
}

func parsePathInSchema(r *thriftcompact.Reader) (string, error) {
	lh, err := r.ReadListHeader()
	if err != nil {
		return "", convertErr(err)
	}
	parts := make([]string, 0, lh.Size)
	for i := 0; i < lh.Size; i++ {
		s, err := r.ReadString()
		if err != nil {
			return "", convertErr(err)
		}
		parts = append(parts, string(s))
	}
	return joinDotted(parts), nil
}

func joinDotted(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out
}

func parseKeyValueList(r *thriftcompact.Reader) (map[string]string, error) {
	lh, err := r.ReadListHeader()
	if err != nil {
		return nil, convertErr(err)
	}
	out := make(map[string]string, lh.Size)
	for i := 0; i < lh.Size; i++ {
		key, value, err := parseKeyValue(r)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

func parseKeyValue(r *thriftcompact.Reader) (key, value string, err error) {
	var lastID int16
	for {
		fh, ferr := r.ReadFieldHeader(lastID)
		if ferr != nil {
			return "", "", convertErr(ferr)
		}
		if fh.Stop {
			return key, value, nil
		}
		switch fh.ID {
		case 1:
			s, serr := r.ReadString()
			if serr != nil {
				return "", "", convertErr(serr)
			}
			key = string(s)
		case 2:
			s, serr := r.ReadString()
			if serr != nil {
				return "", "", convertErr(serr)
			}
			value = string(s)
		default:
			ferr = r.SkipField(fh.Type)
		}
		if ferr != nil {
			return "", "", convertErr(ferr)
		}
		lastID = fh.ID
	}
}
