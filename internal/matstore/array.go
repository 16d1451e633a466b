package matstore

import (
	"fmt"

	"github.com/samcharles93/matfile/pkg/mat"
)

// ArrayInfo describes one array without its values.
type ArrayInfo struct {
	Name    string
	Class   mat.ArrayClass
	Kind    mat.DataType
	Size    []int
	Complex bool
	Sparse  bool
	NNZ     int
}

// Arrays lists the dense and sparse arrays of f in file order within each
// group.
func Arrays(f *mat.File) []ArrayInfo {
	out := make([]ArrayInfo, 0, f.Len()+len(f.Sparse()))
	for i := range f.Arrays() {
		out = append(out, Describe(&f.Arrays()[i]))
	}
	for _, s := range f.Sparse() {
		out = append(out, ArrayInfo{
			Name:    s.Name,
			Class:   s.Flags.Class,
			Kind:    s.Real.Kind(),
			Size:    s.Dims.Ints(),
			Complex: s.Imag != nil,
			Sparse:  true,
			NNZ:     s.Real.Len(),
		})
	}
	return out
}

// Describe returns the ArrayInfo of a.
func Describe(a *mat.Array) ArrayInfo {
	return ArrayInfo{
		Name:    a.Name,
		Class:   a.Class,
		Kind:    a.Kind(),
		Size:    append([]int(nil), a.Size...),
		Complex: a.IsComplex(),
	}
}

// ReadFloat64 returns the real part of the array called name widened to
// float64, for consumers that only handle doubles.
func ReadFloat64(e *Entry, name string) ([]float64, ArrayInfo, error) {
	a, ok := e.File.Find(name)
	if !ok {
		return nil, ArrayInfo{}, fmt.Errorf("%w: %q in %s", mat.ErrNotFound, name, e.ID)
	}
	return a.Real.Float64s(), Describe(a), nil
}
