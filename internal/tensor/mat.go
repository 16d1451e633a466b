package tensor

import (
	"fmt"

	"github.com/samcharles93/matfile/pkg/mat"
)

// Mat is a dense row-major matrix of float64 values.
//
// R and C are the number of rows and columns. Stride is the number of
// elements between the starts of two consecutive rows (C for matrices built
// here). Out-of-range indices panic.
type Mat struct {
	R, C   int
	Stride int
	Data   []float64
}

// NewMat allocates a zeroed r x c matrix.
func NewMat(r, c int) Mat {
	if r < 0 || c < 0 {
		panic("negative dimension for matrix")
	}
	return Mat{R: r, C: c, Stride: c, Data: make([]float64, r*c)}
}

// Row returns a view of row i.
func (m *Mat) Row(i int) []float64 {
	if i < 0 || i >= m.R {
		panic("row index out of range")
	}
	start := i * m.Stride
	return m.Data[start : start+m.C]
}

// At returns the element at row i, column j.
func (m *Mat) At(i, j int) float64 {
	if j < 0 || j >= m.C {
		panic("column index out of range")
	}
	return m.Row(i)[j]
}

// Rows returns the matrix as a slice of row slices sharing Data.
func (m *Mat) Rows() [][]float64 {
	out := make([][]float64, m.R)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// MaxCells bounds the number of elements ToMat, ImagMat and the sparse
// expanders will allocate. Sparse dimensions cost nothing in the file, so
// the dense form must be capped.
const MaxCells = 1 << 24

// checkCells rejects an r x c matrix that is negative or larger than
// MaxCells.
func checkCells(name string, r, c int) error {
	if r < 0 || c < 0 {
		return fmt.Errorf("%w: %q has negative extent %dx%d", ErrShape, name, r, c)
	}
	if c > 0 && r > MaxCells/c {
		return fmt.Errorf("%w: %q is %dx%d, dense form is limited to %d elements", mat.ErrTooLarge, name, r, c, MaxCells)
	}
	return nil
}

// ToMat copies the real part of a two-dimensional array into a row-major
// float64 matrix.
func ToMat(a *mat.Array) (Mat, error) {
	return toMat(a, a.Real)
}

// ImagMat copies the imaginary part of a two-dimensional complex array into
// a row-major float64 matrix.
func ImagMat(a *mat.Array) (Mat, error) {
	if a.Imag == nil {
		return Mat{}, fmt.Errorf("%w: array %q is real", ErrType, a.Name)
	}
	return toMat(a, *a.Imag)
}

func toMat(a *mat.Array, part mat.Vector) (Mat, error) {
	if len(a.Size) != 2 {
		return Mat{}, fmt.Errorf("%w: array %q has %d dimensions, want 2", ErrShape, a.Name, len(a.Size))
	}
	r, c := a.Size[0], a.Size[1]
	if err := checkCells(a.Name, r, c); err != nil {
		return Mat{}, err
	}
	src := part.Float64s()
	if len(src) != r*c {
		return Mat{}, fmt.Errorf("%w: array %q has %d values for %dx%d", ErrShape, a.Name, len(src), r, c)
	}
	m := NewMat(r, c)
	for j := range c {
		col := src[j*r : (j+1)*r]
		for i, v := range col {
			m.Data[i*m.Stride+j] = v
		}
	}
	return m, nil
}

// FromSparse expands the real part of a compressed-sparse-column matrix into
// a dense row-major float64 matrix.
func FromSparse(s *mat.SparseMatrix) (Mat, error) {
	return expandSparse(s, s.Real)
}

// SparseImag expands the imaginary part of a complex sparse matrix.
func SparseImag(s *mat.SparseMatrix) (Mat, error) {
	if s.Imag == nil {
		return Mat{}, fmt.Errorf("%w: sparse %q is real", ErrType, s.Name)
	}
	return expandSparse(s, *s.Imag)
}

func expandSparse(s *mat.SparseMatrix, part mat.Vector) (Mat, error) {
	if len(s.Dims) != 2 {
		return Mat{}, fmt.Errorf("%w: sparse %q has %d dimensions, want 2", ErrShape, s.Name, len(s.Dims))
	}
	r, c := int(s.Dims[0]), int(s.Dims[1])
	if len(s.ColumnShift) != c+1 {
		return Mat{}, fmt.Errorf("%w: sparse %q has %d column offsets for %d columns", ErrShape, s.Name, len(s.ColumnShift), c)
	}
	if err := checkCells(s.Name, r, c); err != nil {
		return Mat{}, err
	}
	vals := part.Float64s()
	m := NewMat(r, c)
	for j := range c {
		lo, hi := s.ColumnShift[j], s.ColumnShift[j+1]
		if lo > hi || hi > len(s.RowIndex) || hi > len(vals) {
			return Mat{}, fmt.Errorf("%w: sparse %q column %d spans [%d,%d)", ErrShape, s.Name, j, lo, hi)
		}
		for k := lo; k < hi; k++ {
			i := s.RowIndex[k]
			if i >= r {
				return Mat{}, fmt.Errorf("%w: sparse %q row %d out of range", ErrShape, s.Name, i)
			}
			m.Data[i*m.Stride+j] += vals[k]
		}
	}
	return m, nil
}

var (
	// ErrShape reports a dimension mismatch between an array and the view
	// requested of it.
	ErrShape = fmtError("tensor: shape mismatch")
	// ErrType reports an element type mismatch.
	ErrType = fmtError("tensor: element type mismatch")
)

type fmtError string

func (e fmtError) Error() string { return string(e) }
