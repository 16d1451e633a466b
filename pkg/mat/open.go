package mat

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// Open decodes the file at path. The file is memory-mapped where possible;
// decoded values are copied out, so the mapping is released before Open
// returns.
func (d *Decoder) Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	size64 := stat.Size()
	if size64 > math.MaxInt {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, size64)
	}
	if d.MaxInputSize > 0 && size64 > d.MaxInputSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, size64, d.MaxInputSize)
	}
	size := int(size64)

	if size > 0 {
		data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
		if err == nil {
			defer func() { _ = unix.Munmap(data) }()
			d.logger().Debug("mapped file", "path", path, "bytes", size)
			return d.ParseBytes(data)
		}
	}

	data, err := readAllAt(f, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return d.ParseBytes(data)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	data := make([]byte, size)
	var off int
	for off < size {
		n, err := r.ReadAt(data[off:], int64(off))
		off += n
		if err == io.EOF && off == size {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, io.ErrUnexpectedEOF
		}
	}
	return data, nil
}
