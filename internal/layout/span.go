package layout

// Span describes how a field's bits map onto bytes.
//
// A field either lies inside one byte (Single) or splits into a leading
// partial byte, a run of whole bytes and a trailing partial byte. Either
// partial byte may be absent when the field starts or ends on a byte
// boundary, and the whole-byte run may be empty.
type Span struct {
	First     int    // index of the first byte touched
	Last      int    // index of the last byte touched, inclusive
	Shift     uint32 // position of the field's bit 0 inside byte First, [0, 7]
	HeadBits  uint32 // field bits held by a partial leading byte, 0 if none
	TailBits  uint32 // field bits held by a partial trailing byte, 0 if none
	FullStart int    // first whole byte
	FullEnd   int    // one past the last whole byte
}

// Span decomposes the field. Bits must be at least 1.
func (f Field) Span() Span {
	end := f.Offset + f.Bits
	s := Span{
		First: int(f.Offset / 8),
		Last:  int((end - 1) / 8),
		Shift: f.Offset % 8,
	}

	if s.First == s.Last {
		return s
	}

	s.FullStart = s.First
	if s.Shift > 0 {
		s.HeadBits = 8 - s.Shift
		s.FullStart++
	}

	s.FullEnd = s.Last + 1
	if tail := end % 8; tail > 0 {
		s.TailBits = tail
		s.FullEnd--
	}

	return s
}

// Single reports whether the field lies within one byte.
func (s Span) Single() bool {
	return s.First == s.Last
}

// Bytes returns the number of bytes the field touches.
func (s Span) Bytes() int {
	return s.Last - s.First + 1
}

// SingleMask returns the byte mask of a field that lies within one byte.
func (s Span) SingleMask(bits uint32) byte {
	return byte((uint32(1)<<bits - 1) << s.Shift)
}

// HeadMask returns the mask of the field's bits in a partial leading byte.
func (s Span) HeadMask() byte {
	return byte(0xFF << s.Shift)
}

// TailMask returns the mask of the field's bits in a partial trailing byte.
func (s Span) TailMask() byte {
	return byte(uint32(1)<<s.TailBits - 1)
}
