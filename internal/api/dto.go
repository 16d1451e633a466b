package api

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/samcharles93/matfile/internal/matstore"
	"github.com/samcharles93/matfile/internal/tensor"
	"github.com/samcharles93/matfile/pkg/mat"
)

type HeaderInfo struct {
	Text      string `json:"text"`
	ByteOrder string `json:"byte_order"`
	Version   string `json:"version"`
}

type ArraySummary struct {
	Name    string `json:"name"`
	Class   string `json:"class"`
	Kind    string `json:"kind"`
	Size    []int  `json:"size"`
	Complex bool   `json:"complex,omitempty"`
	Sparse  bool   `json:"sparse,omitempty"`
	NNZ     int    `json:"nnz,omitempty"`
}

type FileResponse struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Bytes   int64          `json:"bytes"`
	Added   time.Time      `json:"added"`
	Header  HeaderInfo     `json:"header"`
	Arrays  []ArraySummary `json:"arrays"`
	Skipped int            `json:"skipped,omitempty"`
}

type FileList struct {
	Files []FileResponse `json:"files"`
}

// ArrayValues is a dense array with its values in column-major order.
type ArrayValues struct {
	ArraySummary
	Stats Stats `json:"stats"`
	Real  any   `json:"real"`
	Imag  any   `json:"imag,omitempty"`
}

// SparseValues is a sparse array in compressed sparse column form.
type SparseValues struct {
	ArraySummary
	RowIndex    []int `json:"row_index"`
	ColumnShift []int `json:"column_shift"`
	Real        any   `json:"real"`
	Imag        any   `json:"imag,omitempty"`
}

// MatrixValues is a two-dimensional array as rows. Imag is set for complex
// arrays.
type MatrixValues struct {
	Name string    `json:"name"`
	Rows [][]Float `json:"rows"`
	Imag [][]Float `json:"imag,omitempty"`
}

// Stats is a tensor.Summary safe to encode.
type Stats struct {
	Count int   `json:"count"`
	NaN   int   `json:"nan,omitempty"`
	Min   Float `json:"min"`
	Max   Float `json:"max"`
	Mean  Float `json:"mean"`
}

// Float encodes non-finite values as the strings "NaN", "+Inf" and "-Inf",
// which JSON has no numbers for.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return []byte(`"NaN"`), nil
	case math.IsInf(x, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(x, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, x, 'g', -1, 64), nil
}

type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func NewHeaderInfo(h mat.Header) HeaderInfo {
	order := "big"
	if h.LittleEndian() {
		order = "little"
	}
	return HeaderInfo{
		Text:      h.Description(),
		ByteOrder: order,
		Version:   fmt.Sprintf("0x%04x", h.Version),
	}
}

func NewArraySummary(info matstore.ArrayInfo) ArraySummary {
	return ArraySummary{
		Name:    info.Name,
		Class:   info.Class.String(),
		Kind:    info.Kind.String(),
		Size:    info.Size,
		Complex: info.Complex,
		Sparse:  info.Sparse,
		NNZ:     info.NNZ,
	}
}

func NewFileResponse(e *matstore.Entry) FileResponse {
	infos := matstore.Arrays(e.File)
	arrays := make([]ArraySummary, len(infos))
	for i, info := range infos {
		arrays[i] = NewArraySummary(info)
	}
	return FileResponse{
		ID:      e.ID,
		Name:    e.Name,
		Bytes:   e.Bytes,
		Added:   e.Added,
		Header:  NewHeaderInfo(e.File.Header),
		Arrays:  arrays,
		Skipped: e.File.Skipped(),
	}
}

func NewArrayValues(a *mat.Array) ArrayValues {
	out := ArrayValues{
		ArraySummary: NewArraySummary(matstore.Describe(a)),
		Stats:        NewStats(tensor.Summarize(a.Real.Float64s())),
		Real:         JSONValues(a.Real),
	}
	if a.Imag != nil {
		out.Imag = JSONValues(*a.Imag)
	}
	return out
}

func NewSparseValues(s *mat.SparseMatrix) SparseValues {
	out := SparseValues{
		ArraySummary: ArraySummary{
			Name:    s.Name,
			Class:   s.Flags.Class.String(),
			Kind:    s.Real.Kind().String(),
			Size:    s.Dims.Ints(),
			Complex: s.Imag != nil,
			Sparse:  true,
			NNZ:     s.Real.Len(),
		},
		RowIndex:    s.RowIndex,
		ColumnShift: s.ColumnShift,
		Real:        JSONValues(s.Real),
	}
	if s.Imag != nil {
		out.Imag = JSONValues(*s.Imag)
	}
	return out
}

func NewStats(s tensor.Summary) Stats {
	return Stats{Count: s.Count, NaN: s.NaN, Min: Float(s.Min), Max: Float(s.Max), Mean: Float(s.Mean)}
}

// NewMatrixValues converts row-major matrices for encoding. im may be nil.
func NewMatrixValues(name string, re, im *tensor.Mat) MatrixValues {
	out := MatrixValues{Name: name, Rows: floatRows(re)}
	if im != nil {
		out.Imag = floatRows(im)
	}
	return out
}

func floatRows(m *tensor.Mat) [][]Float {
	out := make([][]Float, m.R)
	for i := range out {
		row := m.Row(i)
		out[i] = make([]Float, len(row))
		for j, x := range row {
			out[i][j] = Float(x)
		}
	}
	return out
}

// JSONValues returns v in a form JSON encoders accept: uint8 values become
// numbers rather than base64, and non-finite floats become strings.
func JSONValues(v mat.Vector) any {
	switch v.Kind() {
	case mat.TypeUint8:
		s, _ := mat.VectorOf[uint8](v)
		out := make([]uint16, len(s))
		for i, x := range s {
			out[i] = uint16(x)
		}
		return out
	case mat.TypeSingle, mat.TypeDouble:
		f := v.Float64s()
		for _, x := range f {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nonFinite(f)
			}
		}
		return v.Values()
	default:
		return v.Values()
	}
}

func nonFinite(f []float64) []Float {
	out := make([]Float, len(f))
	for i, x := range f {
		out[i] = Float(x)
	}
	return out
}
