package mat

import (
	"fmt"
	"io"
)

// Logger receives diagnostic notices, such as skipped elements.
// *slog.Logger and the logger package used by cmd/matfile satisfy it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}

// Decoder holds decode options. The zero value is ready to use.
// A Decoder has no mutable state and may be shared between goroutines.
type Decoder struct {
	// Logger receives notices; nil discards them.
	Logger Logger

	// MaxDepth bounds nesting of compressed elements. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	// MaxInputSize bounds the input and every inflated stream, in bytes.
	// Zero means no limit.
	MaxInputSize int64

	// LegacyInt32Check validates int32-class payloads against the uint32
	// compatibility row, as older decoders did. Such arrays then fail to
	// widen unless their payload is a narrower integer kind.
	LegacyInt32Check bool
}

func (d *Decoder) logger() Logger {
	if d.Logger == nil {
		return nopLogger{}
	}
	return d.Logger
}

func (d *Decoder) maxDepth() int {
	if d.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return d.MaxDepth
}

// Decode parses a complete file image into its header and elements. It
// keeps sparse and unsupported elements and does not widen anything.
func (d *Decoder) Decode(data []byte) (*ParseResult, error) {
	if d.MaxInputSize > 0 && int64(len(data)) > d.MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), d.MaxInputSize)
	}
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	res := &ParseResult{Header: h}
	r := newReader(data[HeaderSize:], h.ByteOrder, HeaderSize)
	for r.remaining() > 0 {
		el, err := d.next(r, 0)
		if err != nil {
			return nil, err
		}
		res.Elements = append(res.Elements, el)
	}
	d.logger().Debug("decoded file", "elements", len(res.Elements), "bytes", len(data))
	return res, nil
}

// ParseBytes decodes data and widens every numeric matrix.
func (d *Decoder) ParseBytes(data []byte) (*File, error) {
	res, err := d.Decode(data)
	if err != nil {
		return nil, err
	}
	return newFile(res)
}

// Parse reads r to the end and decodes it.
func (d *Decoder) Parse(r io.Reader) (*File, error) {
	src := r
	if d.MaxInputSize > 0 {
		src = io.LimitReader(r, d.MaxInputSize+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return d.ParseBytes(data)
}

var defaultDecoder Decoder

// Decode parses data with default options.
func Decode(data []byte) (*ParseResult, error) { return defaultDecoder.Decode(data) }

// ParseBytes decodes data with default options.
func ParseBytes(data []byte) (*File, error) { return defaultDecoder.ParseBytes(data) }

// Parse reads r to the end and decodes it with default options.
func Parse(r io.Reader) (*File, error) { return defaultDecoder.Parse(r) }

// Open decodes the file at path with default options.
func Open(path string) (*File, error) { return defaultDecoder.Open(path) }
