package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/matfile/internal/matstore"
	"github.com/samcharles93/matfile/internal/tensor"
)

func inspectCmd() *cli.Command {
	var showStats bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header and array directory of a MAT-file",
		ArgsUsage: "FILE",
		Flags: append(decoderFlags(),
			&cli.BoolFlag{Name: "stats", Usage: "show min, max and mean per array", Destination: &showStats},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("inspect: missing FILE argument")
			}
			entry, err := loadFile(ctx, cmd, path)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", path, err)
			}
			renderInspect(output(cmd), entry, showStats)
			return nil
		},
	}
}

type inspectStyles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	header lipgloss.Style
	name   lipgloss.Style
	muted  lipgloss.Style
}

func newInspectStyles(w io.Writer) inspectStyles {
	r := lipgloss.NewRenderer(w)
	return inspectStyles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		label:  r.NewStyle().Foreground(lipgloss.Color("244")),
		header: r.NewStyle().Bold(true).Underline(true),
		name:   r.NewStyle().Foreground(lipgloss.Color("86")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func renderInspect(w io.Writer, entry *matstore.Entry, showStats bool) {
	st := newInspectStyles(w)
	f := entry.File
	order := "big-endian"
	if f.Header.LittleEndian() {
		order = "little-endian"
	}

	_, _ = fmt.Fprintln(w, st.title.Render(entry.Name))
	_, _ = fmt.Fprintf(w, "%s %s\n", st.label.Render("header: "), f.Header.Description())
	_, _ = fmt.Fprintf(w, "%s %s, version 0x%04x\n", st.label.Render("format: "), order, f.Header.Version)

	infos := matstore.Arrays(f)
	if len(infos) == 0 {
		_, _ = fmt.Fprintln(w, st.muted.Render("no numeric arrays"))
	} else {
		_, _ = fmt.Fprintln(w)
		rows := make([][]string, 0, len(infos)+1)
		head := []string{"NAME", "CLASS", "KIND", "SIZE", "FLAGS"}
		if showStats {
			head = append(head, "MIN", "MAX", "MEAN")
		}
		rows = append(rows, head)
		for _, info := range infos {
			row := []string{info.Name, info.Class.String(), info.Kind.String(), sizeString(info.Size), flagString(info)}
			if showStats {
				row = append(row, statColumns(entry, info)...)
			}
			rows = append(rows, row)
		}
		writeTable(w, st, rows)
	}

	if n := f.Skipped(); n > 0 {
		_, _ = fmt.Fprintln(w, st.muted.Render(fmt.Sprintf("%d unsupported element(s) skipped", n)))
	}
}

// writeTable pads columns to the widest cell. The first row is the header.
func writeTable(w io.Writer, st inspectStyles, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}
	for ri, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			padded := cell + strings.Repeat(" ", widths[i]-len(cell))
			switch {
			case ri == 0:
				padded = st.header.Render(cell) + strings.Repeat(" ", widths[i]-len(cell))
			case i == 0:
				padded = st.name.Render(cell) + strings.Repeat(" ", widths[i]-len(cell))
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(padded)
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

func sizeString(size []int) string {
	parts := make([]string, len(size))
	for i, d := range size {
		parts[i] = fmt.Sprint(d)
	}
	return strings.Join(parts, "x")
}

func flagString(info matstore.ArrayInfo) string {
	var flags []string
	if info.Complex {
		flags = append(flags, "complex")
	}
	if info.Sparse {
		flags = append(flags, fmt.Sprintf("sparse(nnz=%d)", info.NNZ))
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func statColumns(entry *matstore.Entry, info matstore.ArrayInfo) []string {
	var vals []float64
	if info.Sparse {
		if s, ok := entry.File.FindSparse(info.Name); ok {
			vals = s.Real.Float64s()
		}
	} else {
		vals, _, _ = matstore.ReadFloat64(entry, info.Name)
	}
	s := tensor.Summarize(vals)
	if s.Count == s.NaN {
		return []string{"-", "-", "-"}
	}
	return []string{fmt.Sprintf("%g", s.Min), fmt.Sprintf("%g", s.Max), fmt.Sprintf("%.4g", s.Mean)}
}

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
