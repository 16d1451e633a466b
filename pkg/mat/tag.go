package mat

// elementTag is the decoded tag of one data element.
type elementTag struct {
	Type    DataType
	Size    uint32
	Padding uint32
	Offset  int64
}

// readTag frames one data element tag.
//
// Long format: word 1 is the type code (high half zero), word 2 the payload
// size; the payload is padded to 8 bytes. Small format: the low half of word 1
// is the type code and the high half the payload size (at most 4); tag and
// payload together occupy 8 bytes.
func readTag(r *reader) (elementTag, error) {
	off := r.pos()
	word, err := r.readU32()
	if err != nil {
		return elementTag{}, err
	}

	var tag elementTag
	tag.Offset = off
	if word&0xFFFF0000 == 0 {
		size, err := r.readU32()
		if err != nil {
			return elementTag{}, err
		}
		tag.Type = DataType(word)
		tag.Size = size
		tag.Padding = uint32(align(uint64(size), tagAlign) - uint64(size))
	} else {
		size := word >> 16
		if size > 4 {
			return elementTag{}, framingErrorf(off, "small element claims %d payload bytes (max 4)", size)
		}
		tag.Type = DataType(word & 0xFFFF)
		tag.Size = size
		tag.Padding = 4 - size
	}

	if !tag.Type.Valid() {
		return elementTag{}, framingErrorf(off, "unknown data type %d", uint32(tag.Type))
	}
	return tag, nil
}

func align(offset, alignment uint64) uint64 {
	if alignment == 0 {
		return offset
	}
	rem := offset % alignment
	if rem == 0 {
		return offset
	}
	return offset + (alignment - rem)
}
