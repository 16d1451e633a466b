package mat

import "encoding/binary"

type decodeFunc func(b []byte, order binary.ByteOrder) Vector

var kindTable = map[DataType]decodeFunc{
	TypeInt8:   decodeAs(TypeInt8, getI8),
	TypeUint8:  decodeAs(TypeUint8, getU8),
	TypeInt16:  decodeAs(TypeInt16, getI16),
	TypeUint16: decodeAs(TypeUint16, getU16),
	TypeInt32:  decodeAs(TypeInt32, getI32),
	TypeUint32: decodeAs(TypeUint32, getU32),
	TypeSingle: decodeAs(TypeSingle, getF32),
	TypeDouble: decodeAs(TypeDouble, getF64),
	TypeInt64:  decodeAs(TypeInt64, getI64),
	TypeUint64: decodeAs(TypeUint64, getU64),
}

func decodeAs[T Number](kind DataType, get func([]byte, binary.ByteOrder) T) decodeFunc {
	width := kind.Width()
	return func(b []byte, order binary.ByteOrder) Vector {
		out := make([]T, len(b)/width)
		for i := range out {
			out[i] = get(b[i*width:], order)
		}
		return NewVector(out)
	}
}

// decodeNumeric frames one subelement and decodes its numeric payload.
func decodeNumeric(r *reader) (Vector, error) {
	tag, err := readTag(r)
	if err != nil {
		return Vector{}, err
	}
	decode, ok := kindTable[tag.Type]
	if !ok {
		return Vector{}, framingErrorf(tag.Offset, "expected numeric subelement, got %s", tag.Type)
	}
	if width := uint32(tag.Type.Width()); tag.Size%width != 0 {
		return Vector{}, framingErrorf(tag.Offset, "%s payload of %d bytes is not a multiple of %d", tag.Type, tag.Size, width)
	}
	payload, err := r.readN(int(tag.Size))
	if err != nil {
		return Vector{}, err
	}
	if _, err := r.readN(int(tag.Padding)); err != nil {
		return Vector{}, err
	}
	return decode(payload, r.order), nil
}

// readInt32s frames an int32 subelement of at least minSize bytes.
func readInt32s(r *reader, what string, minSize uint32) ([]int32, error) {
	tag, err := readTag(r)
	if err != nil {
		return nil, err
	}
	if tag.Type != TypeInt32 || tag.Size < minSize || tag.Size%4 != 0 {
		return nil, framingErrorf(tag.Offset, "bad %s subelement: %s with %d bytes", what, tag.Type, tag.Size)
	}
	payload, err := r.readN(int(tag.Size))
	if err != nil {
		return nil, err
	}
	if _, err := r.readN(int(tag.Padding)); err != nil {
		return nil, err
	}
	out := make([]int32, len(payload)/4)
	for i := range out {
		out[i] = getI32(payload[i*4:], r.order)
	}
	return out, nil
}
