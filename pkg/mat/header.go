package mat

import (
	"bytes"
	"encoding/binary"
	"math/bits"
	"strings"
	"unicode/utf8"
)

// Header is the decoded 128-byte file preamble.
type Header struct {
	// Text is the descriptive text field, or "" when it is not valid UTF-8.
	Text      string
	ByteOrder binary.ByteOrder
	Version   uint16
}

// Description returns Text without its space or NUL padding.
func (h Header) Description() string {
	return strings.TrimRight(h.Text, " \x00")
}

// LittleEndian reports whether the file was written little-endian ("IM").
func (h Header) LittleEndian() bool {
	return h.ByteOrder == binary.LittleEndian
}

func parseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, framingErrorf(0, "truncated header: %d of %d bytes", len(data), HeaderSize)
	}
	// Level-5 files start with printable text; a NUL here means a Level-4 or
	// foreign file.
	if bytes.IndexByte(data[:4], 0) >= 0 {
		return Header{}, framingErrorf(0, "not a MAT-file: NUL byte in first 4 bytes")
	}

	text := data[:headerTextSize]
	var h Header
	if utf8.Valid(text) {
		h.Text = string(text)
	}

	off := headerTextSize + headerSubsystemSize
	version := binary.LittleEndian.Uint16(data[off : off+2])
	switch marker := string(data[off+2 : off+4]); marker {
	case markerLittleEndian:
		h.ByteOrder = binary.LittleEndian
	case markerBigEndian:
		h.ByteOrder = binary.BigEndian
		version = bits.ReverseBytes16(version)
	default:
		return Header{}, framingErrorf(int64(off+2), "bad endian indicator %q", marker)
	}
	if version != Version {
		return Header{}, framingErrorf(int64(off), "unsupported version 0x%04x", version)
	}
	h.Version = version
	return h, nil
}
