package mat

import (
	"fmt"
	"math"
)

// DataType identifies the payload kind of a data element.
type DataType uint32

const (
	TypeInt8       DataType = 1
	TypeUint8      DataType = 2
	TypeInt16      DataType = 3
	TypeUint16     DataType = 4
	TypeInt32      DataType = 5
	TypeUint32     DataType = 6
	TypeSingle     DataType = 7
	TypeDouble     DataType = 9
	TypeInt64      DataType = 12
	TypeUint64     DataType = 13
	TypeMatrix     DataType = 14
	TypeCompressed DataType = 15
	TypeUTF8       DataType = 16
	TypeUTF16      DataType = 17
	TypeUTF32      DataType = 18
)

func (t DataType) String() string {
	switch t {
	case TypeInt8:
		return "int8"
	case TypeUint8:
		return "uint8"
	case TypeInt16:
		return "int16"
	case TypeUint16:
		return "uint16"
	case TypeInt32:
		return "int32"
	case TypeUint32:
		return "uint32"
	case TypeSingle:
		return "single"
	case TypeDouble:
		return "double"
	case TypeInt64:
		return "int64"
	case TypeUint64:
		return "uint64"
	case TypeMatrix:
		return "matrix"
	case TypeCompressed:
		return "compressed"
	case TypeUTF8:
		return "utf8"
	case TypeUTF16:
		return "utf16"
	case TypeUTF32:
		return "utf32"
	default:
		return fmt.Sprintf("type(%d)", uint32(t))
	}
}

// Valid reports whether t is a code defined by the format.
func (t DataType) Valid() bool {
	switch t {
	case TypeInt8, TypeUint8, TypeInt16, TypeUint16, TypeInt32, TypeUint32,
		TypeSingle, TypeDouble, TypeInt64, TypeUint64,
		TypeMatrix, TypeCompressed, TypeUTF8, TypeUTF16, TypeUTF32:
		return true
	}
	return false
}

// IsNumeric reports whether t is one of the ten fixed-width numeric kinds.
func (t DataType) IsNumeric() bool {
	_, ok := kindTable[t]
	return ok
}

// Width returns the byte width of one value of a numeric kind, or 0.
func (t DataType) Width() int {
	switch t {
	case TypeInt8, TypeUint8:
		return 1
	case TypeInt16, TypeUint16:
		return 2
	case TypeInt32, TypeUint32, TypeSingle:
		return 4
	case TypeDouble, TypeInt64, TypeUint64:
		return 8
	default:
		return 0
	}
}

// ArrayClass is the declared class of a matrix, stored in its array flags.
type ArrayClass uint8

const (
	ClassCell   ArrayClass = 1
	ClassStruct ArrayClass = 2
	ClassObject ArrayClass = 3
	ClassChar   ArrayClass = 4
	ClassSparse ArrayClass = 5
	ClassDouble ArrayClass = 6
	ClassSingle ArrayClass = 7
	ClassInt8   ArrayClass = 8
	ClassUint8  ArrayClass = 9
	ClassInt16  ArrayClass = 10
	ClassUint16 ArrayClass = 11
	ClassInt32  ArrayClass = 12
	ClassUint32 ArrayClass = 13
	ClassInt64  ArrayClass = 14
	ClassUint64 ArrayClass = 15
)

func (c ArrayClass) String() string {
	switch c {
	case ClassCell:
		return "cell"
	case ClassStruct:
		return "struct"
	case ClassObject:
		return "object"
	case ClassChar:
		return "char"
	case ClassSparse:
		return "sparse"
	case ClassDouble:
		return "double"
	case ClassSingle:
		return "single"
	case ClassInt8:
		return "int8"
	case ClassUint8:
		return "uint8"
	case ClassInt16:
		return "int16"
	case ClassUint16:
		return "uint16"
	case ClassInt32:
		return "int32"
	case ClassUint32:
		return "uint32"
	case ClassInt64:
		return "int64"
	case ClassUint64:
		return "uint64"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// Valid reports whether c is a class code defined by the format.
func (c ArrayClass) Valid() bool {
	return c >= ClassCell && c <= ClassUint64
}

// IsNumeric reports whether c declares a dense numeric array.
func (c ArrayClass) IsNumeric() bool {
	return c >= ClassDouble && c <= ClassUint64
}

// Array flag bits, word 1 of the array flags subelement.
const (
	flagComplex = 0x0800
	flagGlobal  = 0x0400
	flagLogical = 0x0200
	classMask   = 0xFF
)

// ArrayFlags is the decoded array flags subelement.
type ArrayFlags struct {
	Complex bool
	Global  bool
	Logical bool
	Class   ArrayClass
	// NZMax is the maximum number of stored entries; meaningful for sparse
	// arrays only.
	NZMax int
}

// Dimensions lists the size of each axis, first axis varying fastest.
type Dimensions []int32

// Count returns the number of entries described by d.
func (d Dimensions) Count() (int, error) {
	if len(d) < 2 {
		return 0, fmt.Errorf("need at least 2 dimensions, got %d", len(d))
	}
	n := 1
	for _, v := range d {
		if v < 0 {
			return 0, fmt.Errorf("negative dimension %d", v)
		}
		if v == 0 {
			n = 0
			continue
		}
		if n > math.MaxInt/int(v) {
			return 0, fmt.Errorf("dimensions %v overflow", []int32(d))
		}
		n *= int(v)
	}
	return n, nil
}

// Ints returns d as a fresh []int.
func (d Dimensions) Ints() []int {
	out := make([]int, len(d))
	for i, v := range d {
		out[i] = int(v)
	}
	return out
}
