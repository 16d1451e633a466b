package tensor

import (
	"math"
)

// Summary holds basic statistics over a float64 buffer. NaNs are counted and
// excluded from the other fields.
type Summary struct {
	Count int     `json:"count"`
	NaN   int     `json:"nan,omitempty"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// Summarize computes a Summary of x.
func Summarize(x []float64) Summary {
	s := Summary{Count: len(x)}
	var sum float64
	n := 0
	for _, v := range x {
		if math.IsNaN(v) {
			s.NaN++
			continue
		}
		if n == 0 || v < s.Min {
			s.Min = v
		}
		if n == 0 || v > s.Max {
			s.Max = v
		}
		sum += v
		n++
	}
	if n > 0 {
		s.Mean = sum / float64(n)
	}
	return s
}
