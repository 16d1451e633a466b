package tensor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/matfile/internal/mattest"
	"github.com/samcharles93/matfile/pkg/mat"
)

func decodeOne(t *testing.T, data []byte, name string) *mat.Array {
	t.Helper()
	f, err := mat.ParseBytes(data)
	require.NoError(t, err)
	a, ok := f.Find(name)
	require.True(t, ok, "array %q not found", name)
	return a
}

func TestFromArrayColumnMajor(t *testing.T) {
	t.Parallel()

	// [1 3 5; 2 4 6] stored column-major.
	a := &mat.Array{
		Name:  "m",
		Size:  []int{2, 3},
		Class: mat.ClassDouble,
		Real:  mat.NewVector([]float64{1, 2, 3, 4, 5, 6}),
	}
	d, err := FromArray[float64](a)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, d.Strides)
	assert.Equal(t, 2, d.NDim())
	assert.Equal(t, 1.0, d.At(0, 0))
	assert.Equal(t, 2.0, d.At(1, 0))
	assert.Equal(t, 5.0, d.At(0, 2))
	assert.Equal(t, 6.0, d.At(1, 2))

	d.Set(-1, 1, 1)
	got, _ := mat.Real[float64](a)
	assert.Equal(t, -1.0, got[3], "view must share the array buffer")
}

func TestFromArrayErrors(t *testing.T) {
	t.Parallel()

	a := &mat.Array{Name: "u", Size: []int{1, 2}, Class: mat.ClassUint8, Real: mat.NewVector([]uint8{1, 2})}

	_, err := FromArray[float64](a)
	assert.True(t, errors.Is(err, ErrType))

	_, err = FromArrayN[uint8](a, 3)
	assert.True(t, errors.Is(err, ErrShape))

	d, err := FromArrayN[uint8](a, 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), d.At(0, 1))

	imag := mat.NewVector([]uint8{3, 4})
	a.Imag = &imag
	_, err = FromArray[uint8](a)
	assert.True(t, errors.Is(err, ErrType))
}

func TestNewDenseShapeMismatch(t *testing.T) {
	t.Parallel()

	_, err := NewDense([]int{2, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrShape)
	_, err = NewDense([]int{-1, 2}, []float64{})
	assert.ErrorIs(t, err, ErrShape)
}

func TestOffsetPanicsOutOfRange(t *testing.T) {
	t.Parallel()

	d, err := NewDense([]int{2, 2}, []int32{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Panics(t, func() { d.At(2, 0) })
	assert.Panics(t, func() { d.At(0) })
}

func TestComplexFromArray(t *testing.T) {
	t.Parallel()

	imag := mat.NewVector([]float32{3, 4})
	a := &mat.Array{
		Name:  "z",
		Size:  []int{2, 1},
		Class: mat.ClassSingle,
		Real:  mat.NewVector([]float32{1, 2}),
		Imag:  &imag,
	}
	d, err := ComplexFromArray(a)
	require.NoError(t, err)
	assert.Equal(t, complex(1, 3), d.At(0, 0))
	assert.Equal(t, complex(2, 4), d.At(1, 0))

	a.Imag = nil
	d, err = ComplexFromArray(a)
	require.NoError(t, err)
	assert.Equal(t, complex(2, 0), d.At(1, 0))
}

func TestToMat(t *testing.T) {
	t.Parallel()

	a := &mat.Array{
		Name:  "m",
		Size:  []int{2, 3},
		Class: mat.ClassInt16,
		Real:  mat.NewVector([]int16{1, 2, 3, 4, 5, 6}),
	}
	m, err := ToMat(a)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 3, 5}, {2, 4, 6}}, m.Rows())
	assert.Equal(t, 4.0, m.At(1, 1))

	a.Size = []int{1, 2, 3}
	_, err = ToMat(a)
	assert.ErrorIs(t, err, ErrShape)
}

func TestFromSparse(t *testing.T) {
	t.Parallel()

	s := &mat.SparseMatrix{
		Flags:       mat.ArrayFlags{Class: mat.ClassSparse, NZMax: 7},
		Dims:        mat.Dimensions{8, 8},
		Name:        "S",
		RowIndex:    []int{5, 7, 2, 0, 1, 3, 6},
		ColumnShift: []int{0, 1, 2, 2, 3, 4, 5, 6, 7},
		Real:        mat.NewVector([]float64{2, 7, 4, 9, 5, 8, 6}),
	}
	m, err := FromSparse(s)
	require.NoError(t, err)

	want := map[[2]int]float64{
		{5, 0}: 2, {7, 1}: 7, {2, 3}: 4, {0, 4}: 9, {1, 5}: 5, {3, 6}: 8, {6, 7}: 6,
	}
	var total float64
	for i := range m.R {
		for j := range m.C {
			total += m.At(i, j)
			if v, ok := want[[2]int{i, j}]; ok {
				assert.Equal(t, v, m.At(i, j), "(%d,%d)", i, j)
			}
		}
	}
	assert.Equal(t, 41.0, total)

	s.RowIndex = []int{5, 7, 2, 0, 1, 3, 9}
	_, err = FromSparse(s)
	assert.ErrorIs(t, err, ErrShape)
}

func TestDenseFormIsCapped(t *testing.T) {
	t.Parallel()

	e := mattest.LE
	for _, dims := range [][2]int32{{2147483647, 32768}, {100000, 100000}} {
		cols := make([]int32, dims[1]+1)
		for j := 1; j < len(cols); j++ {
			cols[j] = 1
		}
		f, err := mat.ParseBytes(e.File("huge", e.Sparse(mattest.Sparse{
			NZMax: 1,
			Dims:  dims[:],
			Name:  "S",
			Rows:  []int32{0},
			Cols:  cols,
			Real:  []float64{1},
		})))
		require.NoError(t, err)
		s, ok := f.FindSparse("S")
		require.True(t, ok)

		_, err = FromSparse(s)
		assert.ErrorIs(t, err, mat.ErrTooLarge, "dims %v", dims)
	}

	a := &mat.Array{Name: "wide", Size: []int{MaxCells, 2}, Class: mat.ClassDouble, Real: mat.NewVector([]float64{1})}
	_, err := ToMat(a)
	assert.ErrorIs(t, err, mat.ErrTooLarge)
}

func TestImaginaryMatrices(t *testing.T) {
	t.Parallel()

	im := mat.NewVector([]float64{-1, -2})
	a := &mat.Array{Name: "z", Size: []int{1, 2}, Class: mat.ClassDouble, Real: mat.NewVector([]float64{1, 2}), Imag: &im}
	m, err := ImagMat(a)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-1, -2}}, m.Rows())

	s := &mat.SparseMatrix{
		Dims:        mat.Dimensions{2, 2},
		Name:        "S",
		RowIndex:    []int{1},
		ColumnShift: []int{0, 0, 1},
		Real:        mat.NewVector([]float64{3}),
		Imag:        ptr(mat.NewVector([]float64{4})),
	}
	sm, err := SparseImag(s)
	require.NoError(t, err)
	assert.Equal(t, 4.0, sm.At(1, 1))
	assert.Equal(t, 0.0, sm.At(0, 1))

	a.Imag = nil
	_, err = ImagMat(a)
	assert.ErrorIs(t, err, ErrType)
	s.Imag = nil
	_, err = SparseImag(s)
	assert.ErrorIs(t, err, ErrType)
}

func ptr[T any](v T) *T { return &v }

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize([]float64{3, math.NaN(), -1, 4})
	assert.Equal(t, Summary{Count: 4, NaN: 1, Min: -1, Max: 4, Mean: 2}, s)
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestFromDecodedFile(t *testing.T) {
	t.Parallel()

	e := mattest.BE
	a := decodeOne(t, e.File("tensor", e.Dense(mattest.Dense{
		Class: mattest.ClassInt32,
		Dims:  []int32{2, 2, 2},
		Name:  "cube",
		Real:  []int16{0, 1, 2, 3, 4, 5, 6, 7},
	})), "cube")

	d, err := FromArrayN[int32](a, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(5), d.At(1, 0, 1))
	assert.Equal(t, []int{1, 2, 4}, d.Strides)

	_, err = ToMat(a)
	assert.ErrorIs(t, err, ErrShape)
}
