package matstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samcharles93/matfile/internal/mattest"
	"github.com/samcharles93/matfile/pkg/mat"
)

func sample(name string, vals ...float64) []byte {
	e := mattest.LE
	return e.File("store test", e.Dense(mattest.Dense{
		Class: mattest.ClassDouble,
		Dims:  []int32{1, int32(len(vals))},
		Name:  name,
		Real:  vals,
	}))
}

func TestDecodeAndReadFloat64(t *testing.T) {
	t.Parallel()

	s, err := New(4, nil, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	e, err := s.Decode("upload.mat", sample("weight", 1.5, -2, 3.25))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.ID == "" || e.Name != "upload.mat" || e.Bytes == 0 {
		t.Fatalf("entry: got %+v", e)
	}

	got, err := s.Get(e.ID)
	if err != nil || got != e {
		t.Fatalf("get: got %v, %v", got, err)
	}

	vals, info, err := ReadFloat64(e, "weight")
	if err != nil {
		t.Fatalf("read float64: %v", err)
	}
	want := []float64{1.5, -2, 3.25}
	if len(vals) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(vals), len(want))
	}
	for i := range vals {
		if vals[i] != want[i] {
			t.Fatalf("value mismatch at %d: got %v want %v", i, vals[i], want[i])
		}
	}
	if info.Kind != mat.TypeDouble || len(info.Size) != 2 || info.Size[1] != 3 {
		t.Fatalf("info: got %+v", info)
	}

	if _, _, err := ReadFloat64(e, "missing"); !errors.Is(err, mat.ErrNotFound) {
		t.Fatalf("missing array: got %v want ErrNotFound", err)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	t.Parallel()

	s, err := New(4, nil, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := s.Decode("bad.mat", []byte("not a mat file")); !errors.Is(err, mat.ErrFraming) {
		t.Fatalf("decode: got %v want ErrFraming", err)
	}
	if s.Len() != 0 {
		t.Fatalf("len: got %d want 0", s.Len())
	}
}

func TestEvictionAndDelete(t *testing.T) {
	t.Parallel()

	s, err := New(2, nil, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	clock := time.Unix(0, 0)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	a, _ := s.Decode("a", sample("a", 1))
	b, _ := s.Decode("b", sample("b", 2))
	if _, err := s.Get(a.ID); err != nil {
		t.Fatalf("get a: %v", err)
	}
	c, _ := s.Decode("c", sample("c", 3))

	if _, err := s.Get(b.ID); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("b should be evicted: got %v", err)
	}
	list := s.List()
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != c.ID {
		t.Fatalf("list: got %d entries", len(list))
	}

	if err := s.Delete(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(a.ID); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("second delete: got %v want ErrFileNotFound", err)
	}
}

func TestLoadCachesByModTime(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "x.mat")
	if err := os.WriteFile(path, sample("x", 1, 2), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := New(4, &mat.Decoder{MaxDepth: 1}, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	first, err := s.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	again, err := s.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("unchanged file decoded twice: %s != %s", again.ID, first.ID)
	}

	if err := os.WriteFile(path, sample("x", 1, 2, 3), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	changed, err := s.Load(path)
	if err != nil {
		t.Fatalf("load changed: %v", err)
	}
	if changed.ID == first.ID {
		t.Fatal("changed file served from cache")
	}
	if got := changed.File.Arrays()[0].Len(); got != 3 {
		t.Fatalf("changed file: got %d values want 3", got)
	}

	if _, err := s.Load(filepath.Join(t.TempDir(), "missing.mat")); !errors.Is(err, mat.ErrIO) {
		t.Fatalf("missing file: got %v want ErrIO", err)
	}
}

func TestArraysIncludesSparse(t *testing.T) {
	t.Parallel()

	e := mattest.BE
	f, err := mat.ParseBytes(e.File("mixed",
		e.Dense(mattest.Dense{Class: mattest.ClassUint8, Dims: []int32{2, 1}, Name: "d", Real: []uint8{1, 2}, Imag: []uint8{0, 1}}),
		e.Sparse(mattest.Sparse{NZMax: 1, Dims: []int32{2, 2}, Name: "s", Rows: []int32{1}, Cols: []int32{0, 0, 1}, Real: []float64{5}}),
	))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	infos := Arrays(f)
	if len(infos) != 2 {
		t.Fatalf("arrays: got %d want 2", len(infos))
	}
	if infos[0].Name != "d" || !infos[0].Complex || infos[0].Kind != mat.TypeUint8 {
		t.Fatalf("dense info: got %+v", infos[0])
	}
	if infos[1].Name != "s" || !infos[1].Sparse || infos[1].NNZ != 1 {
		t.Fatalf("sparse info: got %+v", infos[1])
	}
}
