package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/matfile/internal/api"
	"github.com/samcharles93/matfile/internal/tensor"
	"github.com/samcharles93/matfile/pkg/mat"
)

func dumpCmd() *cli.Command {
	var format string

	return &cli.Command{
		Name:      "dump",
		Usage:     "Print array values from a MAT-file",
		ArgsUsage: "FILE [NAME...]",
		Flags: append(decoderFlags(),
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "output format (json, text, matrix)",
				Value:       "text",
				Destination: &format,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return fmt.Errorf("dump: missing FILE argument")
			}
			entry, err := loadFile(ctx, cmd, args[0])
			if err != nil {
				return fmt.Errorf("dump %s: %w", args[0], err)
			}
			return dump(output(cmd), entry.File, args[1:], format)
		},
	}
}

// dump writes the named arrays, or all of them when names is empty.
func dump(w io.Writer, f *mat.File, names []string, format string) error {
	switch format {
	case "json", "text", "matrix":
	default:
		return fmt.Errorf("unknown format %q (want json, text or matrix)", format)
	}
	if len(names) == 0 {
		names = f.Names()
		for _, s := range f.Sparse() {
			names = append(names, s.Name)
		}
	}

	var out []any
	for _, name := range names {
		v, err := dumpOne(w, f, name, format)
		if err != nil {
			return err
		}
		if v != nil {
			out = append(out, v)
		}
	}
	if format != "json" {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func dumpOne(w io.Writer, f *mat.File, name, format string) (any, error) {
	if a, ok := f.Find(name); ok {
		switch format {
		case "json":
			return api.NewArrayValues(a), nil
		case "matrix":
			re, err := tensor.ToMat(a)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			var im *tensor.Mat
			if a.IsComplex() {
				m, err := tensor.ImagMat(a)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}
				im = &m
			}
			writeMatrix(w, name, re, im)
		default:
			if err := writeArray(w, a); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}
	if s, ok := f.FindSparse(name); ok {
		switch format {
		case "json":
			return api.NewSparseValues(s), nil
		case "matrix":
			re, err := tensor.FromSparse(s)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			var im *tensor.Mat
			if s.Imag != nil {
				m, err := tensor.SparseImag(s)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}
				im = &m
			}
			writeMatrix(w, name, re, im)
		default:
			writeSparse(w, s)
		}
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q", mat.ErrNotFound, name)
}

// writeArray prints values in column-major order.
func writeArray(w io.Writer, a *mat.Array) error {
	_, _ = fmt.Fprintf(w, "%s [%s %s]\n", a.Name, sizeString(a.Size), a.Kind())
	if !a.IsComplex() {
		for i, x := range a.Real.Float64s() {
			_, _ = fmt.Fprintf(w, "  %d: %g\n", i, x)
		}
		return nil
	}
	z, err := tensor.ComplexFromArray(a)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name, err)
	}
	for i, v := range z.Data {
		_, _ = fmt.Fprintf(w, "  %d: %g%+gi\n", i, real(v), imag(v))
	}
	return nil
}

func writeSparse(w io.Writer, s *mat.SparseMatrix) {
	_, _ = fmt.Fprintf(w, "%s [%s sparse %s]\n", s.Name, sizeString(s.Dims.Ints()), s.Real.Kind())
	vals := s.Real.Float64s()
	var imags []float64
	if s.Imag != nil {
		imags = s.Imag.Float64s()
	}
	for col := 0; col+1 < len(s.ColumnShift); col++ {
		for k := s.ColumnShift[col]; k < s.ColumnShift[col+1] && k < len(vals) && k < len(s.RowIndex); k++ {
			if k < len(imags) {
				_, _ = fmt.Fprintf(w, "  (%d,%d): %g%+gi\n", s.RowIndex[k], col, vals[k], imags[k])
				continue
			}
			_, _ = fmt.Fprintf(w, "  (%d,%d): %g\n", s.RowIndex[k], col, vals[k])
		}
	}
}

func writeMatrix(w io.Writer, name string, re tensor.Mat, im *tensor.Mat) {
	_, _ = fmt.Fprintf(w, "%s [%dx%d]\n", name, re.R, re.C)
	writeRows(w, re)
	if im != nil {
		_, _ = fmt.Fprintf(w, "%s imaginary\n", name)
		writeRows(w, *im)
	}
}

func writeRows(w io.Writer, m tensor.Mat) {
	for _, row := range m.Rows() {
		cells := make([]string, len(row))
		for j, x := range row {
			cells[j] = fmt.Sprintf("%10.4g", x)
		}
		_, _ = fmt.Fprintln(w, strings.Join(cells, " "))
	}
}
