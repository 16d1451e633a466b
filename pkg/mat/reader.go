package mat

import (
	"encoding/binary"
	"math"
)

// reader is a bounds-checked cursor over an owned buffer.
//
// base is the file offset of buf[0]. Readers over inflated buffers report
// origin, the offset of the compressed element, since positions inside the
// inflated stream do not exist in the file.
type reader struct {
	buf    []byte
	off    int
	order  binary.ByteOrder
	base   int64
	origin int64
	nested bool
}

func newReader(buf []byte, order binary.ByteOrder, base int64) *reader {
	return &reader{buf: buf, order: order, base: base}
}

// sub returns a reader over the next n bytes and advances past them.
func (r *reader) sub(n int) (*reader, error) {
	pos := r.pos()
	b, err := r.readN(n)
	if err != nil {
		return nil, err
	}
	return &reader{
		buf:    b,
		order:  r.order,
		base:   pos,
		origin: r.origin,
		nested: r.nested,
	}, nil
}

// inflated returns a reader over an inflated stream that reports origin for
// every position.
func (r *reader) inflated(buf []byte, origin int64) *reader {
	return &reader{buf: buf, order: r.order, origin: origin, nested: true}
}

func (r *reader) pos() int64 {
	if r.nested {
		return r.origin
	}
	return r.base + int64(r.off)
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) readN(n int) ([]byte, error) {
	if n < 0 {
		return nil, framingErrorf(r.pos(), "invalid read length %d", n)
	}
	if n > r.remaining() {
		return nil, framingErrorf(r.pos(), "truncated input: need %d bytes, have %d", n, r.remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// skip advances by up to n bytes and reports how many were available.
func (r *reader) skip(n int) int {
	n = max(0, min(n, r.remaining()))
	r.off += n
	return n
}

func (r *reader) readU32() (uint32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

func getI8(b []byte, _ binary.ByteOrder) int8 { return int8(b[0]) }
func getU8(b []byte, _ binary.ByteOrder) uint8 { return b[0] }

func getI16(b []byte, o binary.ByteOrder) int16  { return int16(o.Uint16(b)) }
func getU16(b []byte, o binary.ByteOrder) uint16 { return o.Uint16(b) }
func getI32(b []byte, o binary.ByteOrder) int32  { return int32(o.Uint32(b)) }
func getU32(b []byte, o binary.ByteOrder) uint32 { return o.Uint32(b) }
func getI64(b []byte, o binary.ByteOrder) int64  { return int64(o.Uint64(b)) }
func getU64(b []byte, o binary.ByteOrder) uint64 { return o.Uint64(b) }

func getF32(b []byte, o binary.ByteOrder) float32 {
	return math.Float32frombits(o.Uint32(b))
}

func getF64(b []byte, o binary.ByteOrder) float64 {
	return math.Float64frombits(o.Uint64(b))
}
