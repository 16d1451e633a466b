package tensor

import (
	"fmt"

	"github.com/samcharles93/matfile/pkg/mat"
)

// Elem is the set of element types a Dense view can hold.
type Elem interface {
	mat.Number | complex128
}

// Dense is an N-dimensional column-major view over a flat buffer. The first
// axis varies fastest, matching how MAT-files store arrays.
//
// Dense views built by FromArray share Data with the source array.
type Dense[T Elem] struct {
	Shape   []int
	Strides []int
	Data    []T
}

// NewDense wraps data in a column-major view of the given shape.
func NewDense[T Elem](shape []int, data []T) (*Dense[T], error) {
	n := 1
	for _, s := range shape {
		if s < 0 {
			return nil, fmt.Errorf("%w: negative extent in %v", ErrShape, shape)
		}
		n *= s
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: shape %v needs %d values, have %d", ErrShape, shape, n, len(data))
	}
	strides := make([]int, len(shape))
	step := 1
	for i, s := range shape {
		strides[i] = step
		step *= s
	}
	return &Dense[T]{Shape: append([]int(nil), shape...), Strides: strides, Data: data}, nil
}

// FromArray views the real part of a as T without copying. T must be the
// array's element kind and the array must be real.
func FromArray[T mat.Number](a *mat.Array) (*Dense[T], error) {
	if a.IsComplex() {
		return nil, fmt.Errorf("%w: array %q is complex", ErrType, a.Name)
	}
	data, ok := mat.Real[T](a)
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: array %q holds %s, not %T", ErrType, a.Name, a.Kind(), zero)
	}
	return NewDense(a.Size, data)
}

// FromArrayN is FromArray for callers expecting exactly ndim dimensions.
func FromArrayN[T mat.Number](a *mat.Array, ndim int) (*Dense[T], error) {
	if len(a.Size) != ndim {
		return nil, fmt.Errorf("%w: array %q has %d dimensions, want %d", ErrShape, a.Name, len(a.Size), ndim)
	}
	return FromArray[T](a)
}

// ComplexFromArray combines the real and imaginary parts of a into a
// complex128 view. Real arrays get a zero imaginary part. Values are copied.
func ComplexFromArray(a *mat.Array) (*Dense[complex128], error) {
	re := a.Real.Float64s()
	var im []float64
	if a.Imag != nil {
		im = a.Imag.Float64s()
		if len(im) != len(re) {
			return nil, fmt.Errorf("%w: array %q has %d real and %d imaginary values", ErrShape, a.Name, len(re), len(im))
		}
	}
	out := make([]complex128, len(re))
	for i, r := range re {
		if im != nil {
			out[i] = complex(r, im[i])
		} else {
			out[i] = complex(r, 0)
		}
	}
	return NewDense(a.Size, out)
}

// Len returns the number of elements.
func (d *Dense[T]) Len() int { return len(d.Data) }

// NDim returns the number of dimensions.
func (d *Dense[T]) NDim() int { return len(d.Shape) }

// Offset returns the position in Data of the element at idx. It panics when
// idx has the wrong length or is out of range.
func (d *Dense[T]) Offset(idx ...int) int {
	if len(idx) != len(d.Shape) {
		panic(fmt.Sprintf("tensor: %d indices for %d dimensions", len(idx), len(d.Shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= d.Shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range [0,%d) on axis %d", x, d.Shape[i], i))
		}
		off += x * d.Strides[i]
	}
	return off
}

// At returns the element at idx.
func (d *Dense[T]) At(idx ...int) T { return d.Data[d.Offset(idx...)] }

// Set stores v at idx.
func (d *Dense[T]) Set(v T, idx ...int) { d.Data[d.Offset(idx...)] = v }
