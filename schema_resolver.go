package pqfooter

// ResolveSchema flattens the pre-order schema element list into a map
// from dotted leaf path to resolved LogicalType. The root element
// (index 0) is consumed first and is never itself a user column.
//
// Grounded on the teacher's group.create/primitive.create recursive
// descent (schema.go): walk the flat slice with an index, read each
// group's NumChildren to know how many of the following elements are
// its children, and build dotted names by concatenation as the walk
// descends. That code builds a retained tree of group/primitive
// nodes because the teacher needs it for page decoding; here the walk
// only needs the flattened dotted-path projection (§9's "no linked
// structures necessary"), so it is reworked into a single pass with a
// counter stack instead of recursion, and instead of building Column
// objects it returns directly the fallback-resolved LogicalType per
// leaf.
func ResolveSchema(elements []SchemaElement) (map[string]LogicalType, error) {
	out := make(map[string]LogicalType)
	if len(elements) == 0 {
		return out, nil
	}

	type frame struct {
		remaining int
		namePrefix string
	}

	root := elements[0]
	if !root.IsGroup() {
		return nil, newErr(KindSchemaMismatch, -1, "schema root %q must be a group", root.Name)
	}

	stack := []frame{{remaining: int(root.NumChildren), namePrefix: ""}}

	for i := 1; i < len(elements); i++ {
		if len(stack) == 0 {
			return nil, newErr(KindSchemaMismatch, -1, "schema element %q has no enclosing group", elements[i].Name)
		}

		el := elements[i]
		top := &stack[len(stack)-1]

		name := el.Name
		if top.namePrefix != "" {
			name = top.namePrefix + "." + el.Name
		}

		top.remaining--
		if top.remaining < 0 {
			return nil, newErr(KindSchemaMismatch, -1, "group closed with too many children at %q", el.Name)
		}

		if el.IsGroup() {
			stack = append(stack, frame{remaining: int(el.NumChildren), namePrefix: name})
		} else {
			out[name] = resolveLeafLogicalType(el)
		}

		// Pop any frame(s) whose children are all accounted for.
		for len(stack) > 0 && stack[len(stack)-1].remaining == 0 {
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) != 0 {
		return nil, newErr(KindSchemaMismatch, -1, "schema list ended with %d group(s) still expecting children", len(stack))
	}

	return out, nil
}

// resolveLeafLogicalType implements the fallback ladder of §4.5:
// explicit logicalType wins, then legacy converted_type, then a
// physical-type default.
func resolveLeafLogicalType(el SchemaElement) LogicalType {
	if el.LogicalType != nil && el.LogicalType.Tag != LogicalTagUnknown {
		return *el.LogicalType
	}
	if el.ConvertedType != nil {
		return logicalTypeFromConverted(*el.ConvertedType, el)
	}
	if el.Type != nil {
		switch *el.Type {
		case PhysicalByteArray:
			return LogicalType{Tag: LogicalTagString}
		case PhysicalInt96:
			return LogicalType{Tag: LogicalTagTimestamp, TimeUnit: TimeUnitNanos, TimeIsUTC: false}
		}
	}
	return LogicalType{Tag: LogicalTagNone}
}

func logicalTypeFromConverted(ct ConvertedType, el SchemaElement) LogicalType {
	switch ct {
	case ConvertedUTF8:
		return LogicalType{Tag: LogicalTagString}
	case ConvertedMap, ConvertedMapKeyValue:
		return LogicalType{Tag: LogicalTagMap}
	case ConvertedList:
		return LogicalType{Tag: LogicalTagList}
	case ConvertedEnum:
		return LogicalType{Tag: LogicalTagEnum}
	case ConvertedDecimal:
		lt := LogicalType{Tag: LogicalTagDecimal}
		if el.Precision != nil {
			lt.DecimalPrecision = *el.Precision
		}
		if el.Scale != nil {
			lt.DecimalScale = *el.Scale
		}
		return lt
	case ConvertedDate:
		return LogicalType{Tag: LogicalTagDate}
	case ConvertedTimeMillis:
		return LogicalType{Tag: LogicalTagTime, TimeUnit: TimeUnitMillis, TimeIsUTC: true}
	case ConvertedTimeMicros:
		return LogicalType{Tag: LogicalTagTime, TimeUnit: TimeUnitMicros, TimeIsUTC: true}
	case ConvertedTimestampMillis:
		return LogicalType{Tag: LogicalTagTimestamp, TimeUnit: TimeUnitMillis, TimeIsUTC: true}
	case ConvertedTimestampMicros:
		return LogicalType{Tag: LogicalTagTimestamp, TimeUnit: TimeUnitMicros, TimeIsUTC: true}
	case ConvertedUint8, ConvertedUint16, ConvertedUint32, ConvertedUint64:
		return LogicalType{Tag: LogicalTagInt, IntBitWidth: convertedIntBitWidth(ct), IntSigned: false}
	case ConvertedInt8, ConvertedInt16, ConvertedInt32, ConvertedInt64:
		return LogicalType{Tag: LogicalTagInt, IntBitWidth: convertedIntBitWidth(ct), IntSigned: true}
	case ConvertedJSON:
		return LogicalType{Tag: LogicalTagJSON}
	case ConvertedBSON:
		return LogicalType{Tag: LogicalTagBSON}
	default:
		return LogicalType{Tag: LogicalTagNone}
	}
}

func convertedIntBitWidth(ct ConvertedType) int8 {
	switch ct {
	case ConvertedUint8, ConvertedInt8:
		return 8
	case ConvertedUint16, ConvertedInt16:
		return 16
	case ConvertedUint32, ConvertedInt32:
		return 32
	case ConvertedUint64, ConvertedInt64:
		return 64
	default:
		return 0
	}
}
