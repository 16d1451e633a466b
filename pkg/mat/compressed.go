package mat

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// inflateElement inflates a compressed payload and decodes the single element
// it holds. Bytes after that element are ignored.
func (d *Decoder) inflateElement(r *reader, payload []byte, off int64, depth int) (Element, error) {
	if depth >= d.maxDepth() {
		return nil, framingErrorf(off, "compressed elements nested deeper than %d", d.maxDepth())
	}

	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, &FramingError{Offset: off, Reason: "zlib reader", Err: err}
	}
	defer func() { _ = zr.Close() }()

	var src io.Reader = zr
	if d.MaxInputSize > 0 {
		src = io.LimitReader(zr, d.MaxInputSize+1)
	}
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, &FramingError{Offset: off, Reason: "zlib decompress", Err: err}
	}
	if d.MaxInputSize > 0 && int64(len(buf)) > d.MaxInputSize {
		return nil, fmt.Errorf("%w: compressed element at offset %d inflates past %d bytes", ErrTooLarge, off, d.MaxInputSize)
	}

	d.logger().Debug("inflated element", "offset", off, "compressed", len(payload), "inflated", len(buf))
	return d.next(r.inflated(buf, off), depth+1)
}
