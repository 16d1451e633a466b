package mat

// Element is one decoded top-level data element: *NumericMatrix,
// *SparseMatrix or *Unsupported.
type Element interface {
	element()
}

// NumericMatrix is a dense numeric array before widening. Real and Imag hold
// the payload kinds exactly as encoded.
type NumericMatrix struct {
	Flags ArrayFlags
	Dims  Dimensions
	Name  string
	Real  Vector
	Imag  *Vector
}

// SparseMatrix is a sparse array in compressed sparse column layout.
// ColumnShift[j] is the index into RowIndex/Real of the first entry of
// column j; it has Dims[1]+1 entries.
type SparseMatrix struct {
	Flags       ArrayFlags
	Dims        Dimensions
	Name        string
	RowIndex    []int
	ColumnShift []int
	Real        Vector
	Imag        *Vector
}

// Unsupported stands for an element that was skipped: a non-matrix element
// or a matrix of a non-numeric class. No payload is retained.
type Unsupported struct {
	Type   DataType
	Class  ArrayClass
	Offset int64
}

func (*NumericMatrix) element() {}
func (*SparseMatrix) element()  {}
func (*Unsupported) element()   {}

// ParseResult is the header plus every element in file order.
type ParseResult struct {
	Header   Header
	Elements []Element
}

// next frames and dispatches one element.
func (d *Decoder) next(r *reader, depth int) (Element, error) {
	tag, err := readTag(r)
	if err != nil {
		return nil, err
	}

	switch tag.Type {
	case TypeCompressed:
		// Compressed streams are not padded.
		payload, err := r.readN(int(tag.Size))
		if err != nil {
			return nil, err
		}
		return d.inflateElement(r, payload, tag.Offset, depth)

	case TypeMatrix:
		body, err := r.sub(int(tag.Size))
		if err != nil {
			return nil, err
		}
		r.skip(int(tag.Padding))
		return d.matrix(body, tag.Offset)

	default:
		if _, err := r.readN(int(tag.Size)); err != nil {
			return nil, err
		}
		r.skip(int(tag.Padding))
		d.logger().Info("skipping unsupported element", "type", tag.Type.String(), "offset", tag.Offset)
		return &Unsupported{Type: tag.Type, Offset: tag.Offset}, nil
	}
}

func (d *Decoder) matrix(r *reader, off int64) (Element, error) {
	flags, err := readArrayFlags(r)
	if err != nil {
		return nil, err
	}
	switch {
	case flags.Class == ClassSparse:
		return d.assembleSparse(r, flags)
	case flags.Class.IsNumeric():
		return d.assembleDense(r, flags)
	default:
		d.logger().Info("skipping unsupported array", "class", flags.Class.String(), "offset", off)
		return &Unsupported{Type: TypeMatrix, Class: flags.Class, Offset: off}, nil
	}
}

func readArrayFlags(r *reader) (ArrayFlags, error) {
	tag, err := readTag(r)
	if err != nil {
		return ArrayFlags{}, err
	}
	if tag.Type != TypeUint32 || tag.Size != 8 {
		return ArrayFlags{}, framingErrorf(tag.Offset, "bad array flags subelement: %s with %d bytes", tag.Type, tag.Size)
	}
	word, err := r.readU32()
	if err != nil {
		return ArrayFlags{}, err
	}
	nzmax, err := r.readU32()
	if err != nil {
		return ArrayFlags{}, err
	}
	class := ArrayClass(word & classMask)
	if !class.Valid() {
		return ArrayFlags{}, framingErrorf(tag.Offset, "unknown array class %d", uint8(class))
	}
	return ArrayFlags{
		Complex: word&flagComplex != 0,
		Global:  word&flagGlobal != 0,
		Logical: word&flagLogical != 0,
		Class:   class,
		NZMax:   int(nzmax),
	}, nil
}
