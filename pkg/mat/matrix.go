package mat

import (
	"fmt"
	"unicode/utf8"
)

// assembleDense reads the subelements of a dense numeric matrix after its
// array flags: dimensions, name, real part and, for complex arrays, the
// imaginary part.
func (d *Decoder) assembleDense(r *reader, flags ArrayFlags) (*NumericMatrix, error) {
	dims, name, count, err := readShape(r)
	if err != nil {
		return nil, err
	}

	m := &NumericMatrix{Flags: flags, Dims: dims, Name: name}
	m.Real, err = d.readDensePart(r, m, "real", count)
	if err != nil {
		return nil, err
	}
	if flags.Complex {
		imag, err := d.readDensePart(r, m, "imaginary", count)
		if err != nil {
			return nil, err
		}
		m.Imag = &imag
	}
	return m, nil
}

func (d *Decoder) readDensePart(r *reader, m *NumericMatrix, part string, count int) (Vector, error) {
	off := r.pos()
	v, err := decodeNumeric(r)
	if err != nil {
		return Vector{}, err
	}
	if v.Len() != count {
		return Vector{}, framingErrorf(off, "array %q: %s part has %d values, dimensions %v need %d",
			m.Name, part, v.Len(), []int32(m.Dims), count)
	}
	if !d.compatible(m.Flags.Class, v.Kind()) {
		return Vector{}, fmt.Errorf("%w: array %q declared %s holds %s %s part",
			ErrTypeMismatch, m.Name, m.Flags.Class, v.Kind(), part)
	}
	return v, nil
}

// compatible reports whether a payload of kind may back an array of class.
func (d *Decoder) compatible(class ArrayClass, kind DataType) bool {
	if class == ClassInt32 && d.LegacyInt32Check {
		class = ClassUint32
	}
	rule, ok := wideningRules[class]
	return ok && rule.accepts(kind)
}

// readShape reads the dimensions and name subelements shared by dense and
// sparse matrices.
func readShape(r *reader) (Dimensions, string, int, error) {
	off := r.pos()
	raw, err := readInt32s(r, "dimensions", 8)
	if err != nil {
		return nil, "", 0, err
	}
	dims := Dimensions(raw)
	count, err := dims.Count()
	if err != nil {
		return nil, "", 0, &FramingError{Offset: off, Reason: "bad dimensions", Err: err}
	}

	name, err := readName(r)
	if err != nil {
		return nil, "", 0, err
	}
	return dims, name, count, nil
}

func readName(r *reader) (string, error) {
	tag, err := readTag(r)
	if err != nil {
		return "", err
	}
	if tag.Type != TypeInt8 || tag.Size == 0 {
		return "", framingErrorf(tag.Offset, "bad name subelement: %s with %d bytes", tag.Type, tag.Size)
	}
	b, err := r.readN(int(tag.Size))
	if err != nil {
		return "", err
	}
	if _, err := r.readN(int(tag.Padding)); err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", framingErrorf(tag.Offset, "array name is not valid UTF-8")
	}
	return string(b), nil
}
