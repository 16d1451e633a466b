package mat

// Number is the set of primitive types a numeric payload can hold.
type Number interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// Vector is a decoded numeric payload of one of the ten primitive kinds.
// The zero Vector is invalid.
type Vector struct {
	kind DataType
	data any
	n    int
}

// NewVector wraps v without copying.
func NewVector[T Number](v []T) Vector {
	return Vector{kind: kindOf[T](), data: v, n: len(v)}
}

// VectorOf returns the values of v if they are of type T.
func VectorOf[T Number](v Vector) ([]T, bool) {
	s, ok := v.data.([]T)
	return s, ok
}

// Kind returns the primitive kind of the values.
func (v Vector) Kind() DataType { return v.kind }

// Len returns the number of values.
func (v Vector) Len() int { return v.n }

// Valid reports whether v holds a payload.
func (v Vector) Valid() bool { return v.kind != 0 }

// Values returns the underlying slice ([]int8 ... []float64).
func (v Vector) Values() any { return v.data }

// Float64s returns a copy of the values converted to float64. 64-bit
// integers beyond 2^53 lose precision.
func (v Vector) Float64s() []float64 {
	if v.kind == TypeDouble {
		s, _ := VectorOf[float64](v)
		out := make([]float64, len(s))
		copy(out, s)
		return out
	}
	return castVector[float64](v)
}

func kindOf[T Number]() DataType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return TypeInt8
	case uint8:
		return TypeUint8
	case int16:
		return TypeInt16
	case uint16:
		return TypeUint16
	case int32:
		return TypeInt32
	case uint32:
		return TypeUint32
	case int64:
		return TypeInt64
	case uint64:
		return TypeUint64
	case float32:
		return TypeSingle
	default:
		return TypeDouble
	}
}

// castVector converts every value of v to D. Callers decide which pairs are
// allowed; the conversion itself is a plain numeric cast.
func castVector[D Number](v Vector) []D {
	switch s := v.data.(type) {
	case []int8:
		return castSlice[int8, D](s)
	case []uint8:
		return castSlice[uint8, D](s)
	case []int16:
		return castSlice[int16, D](s)
	case []uint16:
		return castSlice[uint16, D](s)
	case []int32:
		return castSlice[int32, D](s)
	case []uint32:
		return castSlice[uint32, D](s)
	case []int64:
		return castSlice[int64, D](s)
	case []uint64:
		return castSlice[uint64, D](s)
	case []float32:
		return castSlice[float32, D](s)
	case []float64:
		return castSlice[float64, D](s)
	default:
		return nil
	}
}

func castSlice[S, D Number](src []S) []D {
	out := make([]D, len(src))
	for i, x := range src {
		out[i] = D(x)
	}
	return out
}
