package main

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/samcharles93/matfile/internal/matstore"
	"github.com/samcharles93/matfile/internal/mattest"
	"github.com/samcharles93/matfile/pkg/mat"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is empty config", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(dir, "nope.yaml"))
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.MaxDepth != nil || cfg.LogLevel != "" {
			t.Fatalf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("values are read", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		body := "log_level: debug\nmax_depth: 2\nlegacy_int32: true\nserver_address: 0.0.0.0:9000\ncache_size: 8\n"
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.LogLevel != "debug" || cfg.ServerAddress != "0.0.0.0:9000" {
			t.Fatalf("unexpected strings: %+v", cfg)
		}
		if cfg.MaxDepth == nil || *cfg.MaxDepth != 2 {
			t.Fatalf("max_depth: got %v", cfg.MaxDepth)
		}
		if cfg.LegacyInt32 == nil || !*cfg.LegacyInt32 {
			t.Fatalf("legacy_int32: got %v", cfg.LegacyInt32)
		}
		if cfg.CacheSize == nil || *cfg.CacheSize != 8 || cfg.MaxUploadBytes != nil {
			t.Fatalf("server fields: got %+v", cfg)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("max_depth: [1, 2\n"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func sampleData() []byte {
	e := mattest.LE
	return e.File("MATLAB 5.0 MAT-file, cli test",
		e.Dense(mattest.Dense{Class: mattest.ClassDouble, Dims: []int32{2, 2}, Name: "A", Real: []uint8{1, 2, 3, 4}}),
		e.Sparse(mattest.Sparse{NZMax: 1, Dims: []int32{2, 2}, Name: "S", Rows: []int32{1}, Cols: []int32{0, 0, 1}, Real: []float64{9}}),
		e.Opaque(mattest.ClassChar, "label"),
	)
}

func sampleFile(t *testing.T) *mat.File {
	t.Helper()
	f, err := mat.ParseBytes(sampleData())
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	return f
}

func TestRenderInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.mat")
	if err := os.WriteFile(path, sampleData(), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	store, err := matstore.New(1, nil, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	entry, err := store.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var buf bytes.Buffer
	renderInspect(&buf, entry, true)
	out := buf.String()

	for _, want := range []string{
		"sample.mat",
		"MATLAB 5.0 MAT-file, cli test",
		"little-endian, version 0x0100",
		"NAME",
		"2x2",
		"sparse(nnz=1)",
		"1 unsupported element(s) skipped",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("inspect output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape sequences for a non-terminal writer:\n%s", out)
	}
}

func TestDump(t *testing.T) {
	f := sampleFile(t)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := dump(&buf, f, []string{"A", "S"}, "text"); err != nil {
			t.Fatalf("dump: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "A [2x2 double]") || !strings.Contains(out, "  3: 4") {
			t.Fatalf("dense text output:\n%s", out)
		}
		if !strings.Contains(out, "(1,1): 9") {
			t.Fatalf("sparse text output:\n%s", out)
		}
	})

	t.Run("matrix", func(t *testing.T) {
		var buf bytes.Buffer
		if err := dump(&buf, f, []string{"A"}, "matrix"); err != nil {
			t.Fatalf("dump: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 3 || strings.Fields(lines[1])[1] != "3" {
			t.Fatalf("matrix output:\n%s", buf.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := dump(&buf, f, nil, "json"); err != nil {
			t.Fatalf("dump: %v", err)
		}
		var out []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
			t.Fatalf("decode json: %v\n%s", err, buf.String())
		}
		if len(out) != 2 || out[0]["name"] != "A" || out[1]["sparse"] != true {
			t.Fatalf("json output: %+v", out)
		}
	})

	t.Run("errors", func(t *testing.T) {
		if err := dump(&bytes.Buffer{}, f, []string{"missing"}, "text"); !errors.Is(err, mat.ErrNotFound) {
			t.Fatalf("missing array: got %v want ErrNotFound", err)
		}
		if err := dump(&bytes.Buffer{}, f, nil, "csv"); err == nil {
			t.Fatal("expected unknown format error")
		}
	})
}

func TestDumpNonFiniteAndComplex(t *testing.T) {
	e := mattest.BE
	f, err := mat.ParseBytes(e.File("edge values",
		e.Dense(mattest.Dense{Class: mattest.ClassDouble, Dims: []int32{1, 3}, Name: "inf", Real: []float64{math.Inf(1), math.NaN(), -2}}),
		e.Dense(mattest.Dense{Class: mattest.ClassDouble, Dims: []int32{1, 2}, Name: "z", Real: []float64{1, 2}, Imag: []float64{3, -4}}),
		e.Sparse(mattest.Sparse{NZMax: 1, Dims: []int32{2, 2}, Name: "zs", Rows: []int32{0}, Cols: []int32{0, 1, 1}, Real: []float64{5}, Imag: []float64{6}}),
	))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var buf bytes.Buffer
	if err := dump(&buf, f, []string{"inf"}, "json"); err != nil {
		t.Fatalf("json dump with non-finite values: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"+Inf"`) || !strings.Contains(out, `"NaN"`) || !strings.Contains(out, `"max": "+Inf"`) {
		t.Fatalf("json output:\n%s", out)
	}

	buf.Reset()
	if err := dump(&buf, f, []string{"z", "zs"}, "text"); err != nil {
		t.Fatalf("text dump: %v", err)
	}
	out = buf.String()
	for _, want := range []string{"  0: 1+3i", "  1: 2-4i", "(0,0): 5+6i"} {
		if !strings.Contains(out, want) {
			t.Fatalf("text output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := dump(&buf, f, []string{"zs"}, "matrix"); err != nil {
		t.Fatalf("matrix dump: %v", err)
	}
	if !strings.Contains(buf.String(), "zs imaginary") {
		t.Fatalf("matrix output lacks imaginary part:\n%s", buf.String())
	}
}
