package codec

import (
	"encoding/binary"

	"github.com/wippyai/packedints"
	"github.com/wippyai/packedints/internal/layout"
)

// Put writes the low bits of v into buf at the given bit offset. Bits of v
// above the field width are discarded. Only bytes inside the field's span
// are written, and bits of those bytes outside the field are preserved.
//
// Put panics if bits is outside [1, 32] or the span runs past buf.
func Put(buf []byte, offset, bits, v uint32) {
	checkWidth(bits)
	put(buf, layout.Field{Bits: bits, Offset: offset}, v)
}

// Get reads the field of the given width at the given bit offset.
//
// Get panics if bits is outside [1, 32] or the span runs past buf.
func Get(buf []byte, offset, bits uint32) uint32 {
	checkWidth(bits)
	return get(buf, layout.Field{Bits: bits, Offset: offset})
}

// Mask returns a value with the low bits set.
func Mask(bits uint32) uint32 {
	return uint32(uint64(1)<<bits - 1)
}

// Fits reports whether v can be stored in bits without truncation.
func Fits(v uint64, bits uint32) bool {
	return v <= uint64(Mask(bits))
}

func checkWidth(bits uint32) {
	if bits < packedints.MinWidth || bits > packedints.MaxWidth {
		panic("codec: field width out of range")
	}
}

func put(buf []byte, f layout.Field, v uint32) {
	v &= Mask(f.Bits)
	s := f.Span()

	if s.Single() {
		m := s.SingleMask(f.Bits)
		buf[s.First] = buf[s.First]&^m | byte(v<<s.Shift)&m
		return
	}

	consumed := uint32(0)
	if s.HeadBits > 0 {
		m := s.HeadMask()
		buf[s.First] = buf[s.First]&^m | byte(v<<s.Shift)&m
		consumed = s.HeadBits
	}

	// whole bytes are overwritten, widest chunk first
	for i := s.FullStart; i < s.FullEnd; {
		switch n := s.FullEnd - i; {
		case n >= 4:
			binary.LittleEndian.PutUint32(buf[i:], v>>consumed)
			i += 4
			consumed += 32
		case n >= 2:
			binary.LittleEndian.PutUint16(buf[i:], uint16(v>>consumed))
			i += 2
			consumed += 16
		default:
			buf[i] = byte(v >> consumed)
			i++
			consumed += 8
		}
	}

	if s.TailBits > 0 {
		m := s.TailMask()
		buf[s.Last] = buf[s.Last]&^m | byte(v>>consumed)&m
	}
}

func get(buf []byte, f layout.Field) uint32 {
	s := f.Span()

	if s.Single() {
		return uint32(buf[s.First]&s.SingleMask(f.Bits)) >> s.Shift
	}

	var v uint32
	consumed := uint32(0)
	if s.HeadBits > 0 {
		v = uint32(buf[s.First] >> s.Shift)
		consumed = s.HeadBits
	}

	for i := s.FullStart; i < s.FullEnd; {
		switch n := s.FullEnd - i; {
		case n >= 4:
			v |= binary.LittleEndian.Uint32(buf[i:]) << consumed
			i += 4
			consumed += 32
		case n >= 2:
			v |= uint32(binary.LittleEndian.Uint16(buf[i:])) << consumed
			i += 2
			consumed += 16
		default:
			v |= uint32(buf[i]) << consumed
			i++
			consumed += 8
		}
	}

	if s.TailBits > 0 {
		v |= uint32(buf[s.Last]&s.TailMask()) << consumed
	}

	return v
}
