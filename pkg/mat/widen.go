package mat

import "fmt"

type kindSet uint32

func kinds(ts ...DataType) kindSet {
	var s kindSet
	for _, t := range ts {
		s |= 1 << t
	}
	return s
}

func (s kindSet) has(t DataType) bool {
	return t < 32 && s&(1<<t) != 0
}

// wideningRule converts payloads to the primitive kind a class declares.
type wideningRule struct {
	target  DataType
	allowed kindSet
	convert func(Vector) Vector
}

func (w wideningRule) accepts(t DataType) bool {
	return w.allowed.has(t)
}

// smallInts holds the integer kinds every wider class accepts.
var smallInts = kinds(TypeUint8, TypeInt16, TypeUint16)

var wideningRules = map[ArrayClass]wideningRule{
	ClassDouble: widenTo[float64](smallInts | kinds(TypeInt32, TypeDouble)),
	ClassSingle: widenTo[float32](smallInts | kinds(TypeInt32, TypeSingle)),
	ClassUint64: widenTo[uint64](smallInts | kinds(TypeInt32, TypeUint64)),
	ClassInt64:  widenTo[int64](smallInts | kinds(TypeInt32, TypeInt64)),
	ClassUint32: widenTo[uint32](smallInts | kinds(TypeUint32)),
	ClassInt32:  widenTo[int32](smallInts | kinds(TypeInt32)),
	ClassUint16: widenTo[uint16](kinds(TypeUint8, TypeUint16)),
	ClassInt16:  widenTo[int16](kinds(TypeUint8, TypeInt16)),
	ClassUint8:  widenTo[uint8](kinds(TypeUint8)),
	ClassInt8:   widenTo[int8](kinds(TypeInt8)),
}

func widenTo[D Number](allowed kindSet) wideningRule {
	target := kindOf[D]()
	return wideningRule{
		target:  target,
		allowed: allowed,
		convert: func(v Vector) Vector {
			if v.Kind() == target {
				return v
			}
			return NewVector(castVector[D](v))
		},
	}
}

// Widen converts the payload of m to the primitive kind its class declares.
func Widen(m *NumericMatrix) (Array, error) {
	rule, ok := wideningRules[m.Flags.Class]
	if !ok {
		return Array{}, fmt.Errorf("%w: array %q has non-numeric class %s", ErrConversion, m.Name, m.Flags.Class)
	}
	if !rule.accepts(m.Real.Kind()) {
		return Array{}, fmt.Errorf("%w: array %q: %s to %s", ErrConversion, m.Name, m.Real.Kind(), m.Flags.Class)
	}

	a := Array{
		Name:  m.Name,
		Size:  m.Dims.Ints(),
		Class: m.Flags.Class,
		Real:  rule.convert(m.Real),
	}
	if m.Imag != nil {
		if !rule.accepts(m.Imag.Kind()) {
			return Array{}, fmt.Errorf("%w: array %q: imaginary %s to %s", ErrConversion, m.Name, m.Imag.Kind(), m.Flags.Class)
		}
		imag := rule.convert(*m.Imag)
		if imag.Kind() != a.Real.Kind() {
			return Array{}, fmt.Errorf("%w: array %q widened to %s real and %s imaginary", ErrInternal, m.Name, a.Real.Kind(), imag.Kind())
		}
		a.Imag = &imag
	}
	return a, nil
}

// ClassKind returns the primitive kind a numeric class widens to.
func ClassKind(c ArrayClass) (DataType, bool) {
	rule, ok := wideningRules[c]
	return rule.target, ok
}
