package mat

import (
	"encoding/binary"
	"errors"
	"testing"
)

func testHeader(text, marker string, version []byte) []byte {
	h := make([]byte, HeaderSize)
	for i := range headerTextSize {
		h[i] = ' '
	}
	copy(h, text)
	copy(h[124:], version)
	copy(h[126:], marker)
	return h
}

func TestParseHeaderByteOrder(t *testing.T) {
	t.Parallel()

	le, err := parseHeader(testHeader("MATLAB 5.0 MAT-file", "IM", []byte{0x00, 0x01}))
	if err != nil {
		t.Fatalf("little-endian header: %v", err)
	}
	if !le.LittleEndian() || le.Version != Version {
		t.Fatalf("little-endian header: got %+v", le)
	}
	if got := le.Description(); got != "MATLAB 5.0 MAT-file" {
		t.Fatalf("description: got %q", got)
	}

	be, err := parseHeader(testHeader("MATLAB 5.0 MAT-file", "MI", []byte{0x01, 0x00}))
	if err != nil {
		t.Fatalf("big-endian header: %v", err)
	}
	if be.ByteOrder != binary.BigEndian || be.Version != Version {
		t.Fatalf("big-endian header: got %+v", be)
	}
}

func TestParseHeaderInvalidTextIsEmpty(t *testing.T) {
	t.Parallel()

	h := testHeader("MATLAB", "IM", []byte{0x00, 0x01})
	h[10] = 0xff
	got, err := parseHeader(h)
	if err != nil {
		t.Fatalf("parseHeader: %v", err)
	}
	if got.Text != "" {
		t.Fatalf("text: got %q want empty", got.Text)
	}
}

func TestParseHeaderRejects(t *testing.T) {
	t.Parallel()

	nul := testHeader("MATLAB", "IM", []byte{0x00, 0x01})
	nul[2] = 0

	cases := []struct {
		name   string
		data   []byte
		offset int64
	}{
		{"short", make([]byte, 100), 0},
		{"nul in first bytes", nul, 0},
		{"bad marker", testHeader("MATLAB", "XX", []byte{0x00, 0x01}), 126},
		{"bad version", testHeader("MATLAB", "IM", []byte{0x00, 0x02}), 124},
		{"version not swapped", testHeader("MATLAB", "MI", []byte{0x00, 0x01}), 124},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseHeader(tc.data)
			var fe *FramingError
			if !errors.As(err, &fe) {
				t.Fatalf("parseHeader: got %v want *FramingError", err)
			}
			if fe.Offset != tc.offset {
				t.Fatalf("offset: got %d want %d", fe.Offset, tc.offset)
			}
			if !errors.Is(err, ErrFraming) {
				t.Fatalf("errors.Is(ErrFraming) false for %v", err)
			}
		})
	}
}
