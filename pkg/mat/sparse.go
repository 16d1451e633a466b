package mat

// assembleSparse reads the subelements of a sparse matrix after its array
// flags. Payload kinds are not checked against the class; files written by
// MATLAB store sparse values as doubles regardless.
func (d *Decoder) assembleSparse(r *reader, flags ArrayFlags) (*SparseMatrix, error) {
	dims, name, _, err := readShape(r)
	if err != nil {
		return nil, err
	}

	m := &SparseMatrix{Flags: flags, Dims: dims, Name: name}

	m.RowIndex, err = readIndices(r, "row index")
	if err != nil {
		return nil, err
	}
	if len(m.RowIndex) != flags.NZMax {
		d.logger().Debug("sparse row index length differs from nzmax", "name", name, "rows", len(m.RowIndex), "nzmax", flags.NZMax)
	}

	off := r.pos()
	m.ColumnShift, err = readIndices(r, "column shift")
	if err != nil {
		return nil, err
	}
	if want := int(dims[1]) + 1; len(m.ColumnShift) != want {
		return nil, framingErrorf(off, "sparse %q: column shift has %d entries, want %d", name, len(m.ColumnShift), want)
	}

	m.Real, err = readSparsePart(r, name, "real", flags.NZMax)
	if err != nil {
		return nil, err
	}
	if flags.Complex {
		imag, err := readSparsePart(r, name, "imaginary", flags.NZMax)
		if err != nil {
			return nil, err
		}
		m.Imag = &imag
	}
	return m, nil
}

func readIndices(r *reader, what string) ([]int, error) {
	off := r.pos()
	raw, err := readInt32s(r, what, 1)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(raw))
	for i, v := range raw {
		if v < 0 {
			return nil, framingErrorf(off, "negative %s %d at position %d", what, v, i)
		}
		out[i] = int(v)
	}
	return out, nil
}

func readSparsePart(r *reader, name, part string, nzmax int) (Vector, error) {
	off := r.pos()
	v, err := decodeNumeric(r)
	if err != nil {
		return Vector{}, err
	}
	if v.Len() != nzmax {
		return Vector{}, framingErrorf(off, "sparse %q: %s part has %d values, nzmax is %d", name, part, v.Len(), nzmax)
	}
	return v, nil
}
