package mat

// File is a decoded MAT-file: its header and its numeric arrays in file
// order. Sparse matrices are kept apart since they have no dense Array form.
type File struct {
	Header Header

	arrays  []Array
	sparse  []*SparseMatrix
	skipped int
}

func newFile(res *ParseResult) (*File, error) {
	f := &File{Header: res.Header}
	for _, el := range res.Elements {
		switch el := el.(type) {
		case *NumericMatrix:
			a, err := Widen(el)
			if err != nil {
				return nil, err
			}
			f.arrays = append(f.arrays, a)
		case *SparseMatrix:
			f.sparse = append(f.sparse, el)
		case *Unsupported:
			f.skipped++
		}
	}
	return f, nil
}

// Arrays returns the numeric arrays in file order.
func (f *File) Arrays() []Array { return f.arrays }

// Len returns the number of numeric arrays.
func (f *File) Len() int { return len(f.arrays) }

// Names returns the array names in file order. Names need not be unique.
func (f *File) Names() []string {
	out := make([]string, len(f.arrays))
	for i := range f.arrays {
		out[i] = f.arrays[i].Name
	}
	return out
}

// Find returns the first array called name.
func (f *File) Find(name string) (*Array, bool) {
	for i := range f.arrays {
		if f.arrays[i].Name == name {
			return &f.arrays[i], true
		}
	}
	return nil, false
}

// Sparse returns the sparse matrices in file order.
func (f *File) Sparse() []*SparseMatrix { return f.sparse }

// FindSparse returns the first sparse matrix called name.
func (f *File) FindSparse(name string) (*SparseMatrix, bool) {
	for _, s := range f.sparse {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Skipped returns how many elements were recognised but not decoded.
func (f *File) Skipped() int { return f.skipped }
