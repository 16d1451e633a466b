// Package mattest encodes MAT-file fixtures for tests. It writes headers,
// tags in both the long and small layout, dense and sparse matrices, and
// compressed elements, in either byte order.
package mattest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
)

// Element type codes.
const (
	Int8       uint32 = 1
	Uint8      uint32 = 2
	Int16      uint32 = 3
	Uint16     uint32 = 4
	Int32      uint32 = 5
	Uint32     uint32 = 6
	Single     uint32 = 7
	Double     uint32 = 9
	Int64      uint32 = 12
	Uint64     uint32 = 13
	Matrix     uint32 = 14
	Compressed uint32 = 15
	UTF8       uint32 = 16
)

// Array class codes.
const (
	ClassCell   uint8 = 1
	ClassStruct uint8 = 2
	ClassObject uint8 = 3
	ClassChar   uint8 = 4
	ClassSparse uint8 = 5
	ClassDouble uint8 = 6
	ClassSingle uint8 = 7
	ClassInt8   uint8 = 8
	ClassUint8  uint8 = 9
	ClassInt16  uint8 = 10
	ClassUint16 uint8 = 11
	ClassInt32  uint8 = 12
	ClassUint32 uint8 = 13
	ClassInt64  uint8 = 14
	ClassUint64 uint8 = 15
)

// Encoder writes fixtures in one byte order.
type Encoder struct {
	Order binary.ByteOrder
	// SmallTags writes payloads of 4 bytes or fewer with the small tag.
	SmallTags bool
}

// LE and BE are little- and big-endian encoders.
var (
	LE = Encoder{Order: binary.LittleEndian}
	BE = Encoder{Order: binary.BigEndian}
)

// Header returns a 128-byte header carrying text.
func (e Encoder) Header(text string) []byte {
	h := make([]byte, 128)
	copy(h, bytes.Repeat([]byte{' '}, 116))
	copy(h, text)
	// Version is written in file order; readers byte-swap it for "MI".
	e.Order.PutUint16(h[124:], 0x0100)
	if e.Order == binary.BigEndian {
		copy(h[126:], "MI")
	} else {
		copy(h[126:], "IM")
	}
	return h
}

// File concatenates a header and elements.
func (e Encoder) File(text string, elements ...[]byte) []byte {
	out := e.Header(text)
	for _, el := range elements {
		out = append(out, el...)
	}
	return out
}

// Tag returns a long-format tag.
func (e Encoder) Tag(typ, size uint32) []byte {
	b := make([]byte, 8)
	e.Order.PutUint32(b, typ)
	e.Order.PutUint32(b[4:], size)
	return b
}

// Long returns a long-format element: tag, payload and zero padding to 8
// bytes.
func (e Encoder) Long(typ uint32, payload []byte) []byte {
	out := append(e.Tag(typ, uint32(len(payload))), payload...)
	return append(out, make([]byte, pad(len(payload)))...)
}

// Small returns a small-format element. payload must be 4 bytes or fewer.
func (e Encoder) Small(typ uint32, payload []byte) []byte {
	if len(payload) > 4 {
		panic(fmt.Sprintf("mattest: small element with %d bytes", len(payload)))
	}
	out := make([]byte, 8)
	e.Order.PutUint32(out, uint32(len(payload))<<16|typ)
	copy(out[4:], payload)
	return out
}

// Sub returns a subelement, small-format when SmallTags allows it.
func (e Encoder) Sub(typ uint32, payload []byte) []byte {
	if e.SmallTags && len(payload) <= 4 {
		return e.Small(typ, payload)
	}
	return e.Long(typ, payload)
}

// Values encodes a typed slice and returns its element type code.
func (e Encoder) Values(v any) (uint32, []byte) {
	var typ uint32
	switch v.(type) {
	case []int8:
		typ = Int8
	case []uint8:
		typ = Uint8
	case []int16:
		typ = Int16
	case []uint16:
		typ = Uint16
	case []int32:
		typ = Int32
	case []uint32:
		typ = Uint32
	case []float32:
		typ = Single
	case []float64:
		typ = Double
	case []int64:
		typ = Int64
	case []uint64:
		typ = Uint64
	default:
		panic(fmt.Sprintf("mattest: unsupported values %T", v))
	}
	if binary.Size(v) == 0 {
		return typ, nil
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, e.Order, v); err != nil {
		panic(err)
	}
	return typ, buf.Bytes()
}

// Numeric returns the subelement for a typed slice.
func (e Encoder) Numeric(v any) []byte {
	return e.Sub(e.Values(v))
}

// Flags returns an array flags subelement.
func (e Encoder) Flags(class uint8, cplx, global, logical bool, nzmax uint32) []byte {
	word := uint32(class)
	if cplx {
		word |= 0x0800
	}
	if global {
		word |= 0x0400
	}
	if logical {
		word |= 0x0200
	}
	p := make([]byte, 8)
	e.Order.PutUint32(p, word)
	e.Order.PutUint32(p[4:], nzmax)
	return e.Long(Uint32, p)
}

// Dense describes a dense matrix fixture.
type Dense struct {
	Class   uint8
	Global  bool
	Logical bool
	Dims    []int32
	Name    string
	Real    any
	Imag    any
}

// Dense returns a Matrix element.
func (e Encoder) Dense(m Dense) []byte {
	body := e.Flags(m.Class, m.Imag != nil, m.Global, m.Logical, 0)
	body = append(body, e.Numeric(m.Dims)...)
	body = append(body, e.Sub(Int8, []byte(m.Name))...)
	body = append(body, e.Numeric(m.Real)...)
	if m.Imag != nil {
		body = append(body, e.Numeric(m.Imag)...)
	}
	return e.Long(Matrix, body)
}

// Sparse describes a sparse matrix fixture.
type Sparse struct {
	NZMax uint32
	Dims  []int32
	Name  string
	Rows  []int32
	Cols  []int32
	Real  any
	Imag  any
}

// Sparse returns a Matrix element of the sparse class.
func (e Encoder) Sparse(m Sparse) []byte {
	body := e.Flags(ClassSparse, m.Imag != nil, false, false, m.NZMax)
	body = append(body, e.Numeric(m.Dims)...)
	body = append(body, e.Sub(Int8, []byte(m.Name))...)
	body = append(body, e.Numeric(m.Rows)...)
	body = append(body, e.Numeric(m.Cols)...)
	body = append(body, e.Numeric(m.Real)...)
	if m.Imag != nil {
		body = append(body, e.Numeric(m.Imag)...)
	}
	return e.Long(Matrix, body)
}

// Opaque returns a Matrix element of a non-numeric class with an arbitrary
// body after the flags.
func (e Encoder) Opaque(class uint8, name string) []byte {
	body := e.Flags(class, false, false, false, 0)
	body = append(body, e.Numeric([]int32{1, 1})...)
	body = append(body, e.Sub(Int8, []byte(name))...)
	body = append(body, e.Long(Uint16, []byte{'h', 0, 'i', 0})...)
	return e.Long(Matrix, body)
}

// Compress wraps element in a compressed element. Compressed payloads are
// not padded.
func (e Encoder) Compress(element []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(element); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return append(e.Tag(Compressed, uint32(buf.Len())), buf.Bytes()...)
}

// Doubles converts integers to float64 for comparisons.
func Doubles[T int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func pad(n int) int {
	if r := n % 8; r != 0 {
		return 8 - r
	}
	return 0
}
