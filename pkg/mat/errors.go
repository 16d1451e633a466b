package mat

import (
	"errors"
	"fmt"
)

var (
	ErrIO           = errors.New("mat: read failed")
	ErrFraming      = errors.New("mat: malformed file")
	ErrTypeMismatch = errors.New("mat: array class incompatible with payload type")
	ErrConversion   = errors.New("mat: no widening rule for payload type")
	ErrInternal     = errors.New("mat: internal invariant violated")
	ErrTooLarge     = errors.New("mat: input exceeds size limit")
	ErrNotFound     = errors.New("mat: array not found")
)

// FramingError reports malformed input at a file offset. For elements that
// live inside a compressed stream the offset is that of the compressed
// element.
type FramingError struct {
	Offset int64
	Reason string
	Err    error
}

func (e *FramingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mat: malformed file at offset %d: %s: %v", e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("mat: malformed file at offset %d: %s", e.Offset, e.Reason)
}

func (e *FramingError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFraming, e.Err}
	}
	return []error{ErrFraming}
}

func framingErrorf(off int64, format string, args ...any) error {
	return &FramingError{Offset: off, Reason: fmt.Sprintf(format, args...)}
}

// IsDefect reports whether err signals a bug in the decoder rather than bad
// input.
func IsDefect(err error) bool {
	return errors.Is(err, ErrInternal)
}
