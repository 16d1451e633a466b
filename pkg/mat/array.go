package mat

// Array is a named numeric array whose values have the primitive kind its
// class declares. Values are stored column-major: the first dimension varies
// fastest.
type Array struct {
	Name  string
	Size  []int
	Class ArrayClass
	Real  Vector
	Imag  *Vector
}

// IsComplex reports whether the array has an imaginary part.
func (a *Array) IsComplex() bool { return a.Imag != nil }

// Len returns the number of entries.
func (a *Array) Len() int { return a.Real.Len() }

// Kind returns the primitive kind of the values.
func (a *Array) Kind() DataType { return a.Real.Kind() }

// Real returns the real part of a as []T, or false if T is not its kind.
func Real[T Number](a *Array) ([]T, bool) {
	return VectorOf[T](a.Real)
}

// Imag returns the imaginary part of a as []T. It returns false when a is
// real or T is not its kind.
func Imag[T Number](a *Array) ([]T, bool) {
	if a.Imag == nil {
		return nil, false
	}
	return VectorOf[T](*a.Imag)
}
