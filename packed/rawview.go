package packed

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/wippyai/packedints/internal/layout"
)

// RawView is a read-only snapshot of a packed buffer taken at call time.
//
// Buffers of 1 to 4 bytes are exposed as the smallest unsigned integer that
// covers them, with byte 0 least significant; a 3-byte buffer is widened to
// 32 bits. Longer buffers are exposed as bytes only.
type RawView struct {
	data []byte
	word uint32
	size int
}

func newRawView(buf []byte) RawView {
	r := RawView{
		data: make([]byte, len(buf)),
		size: layout.NaturalSize(uint32(len(buf))),
	}
	copy(r.data, buf)

	switch len(buf) {
	case 1:
		r.word = uint32(buf[0])
	case 2:
		r.word = uint32(binary.LittleEndian.Uint16(buf))
	case 3:
		r.word = uint32(buf[2])<<16 | uint32(binary.LittleEndian.Uint16(buf))
	case 4:
		r.word = binary.LittleEndian.Uint32(buf)
	}

	return r
}

// Len returns the buffer length in bytes.
func (r RawView) Len() int {
	return len(r.data)
}

// Size returns the width in bytes of the integer view: 1, 2 or 4, or 0 when
// the buffer is only available as bytes.
func (r RawView) Size() int {
	return r.size
}

// IsWord reports whether the buffer fits an integer view.
func (r RawView) IsWord() bool {
	return r.size != 0
}

// Word returns the buffer as an integer. It is 0 when IsWord is false.
func (r RawView) Word() uint32 {
	return r.word
}

func (r RawView) Uint8() uint8 {
	return uint8(r.word)
}

func (r RawView) Uint16() uint16 {
	return uint16(r.word)
}

func (r RawView) Uint32() uint32 {
	return r.word
}

// Bytes returns a copy of the buffer.
func (r RawView) Bytes() []byte {
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out
}

// At returns byte i of the buffer.
func (r RawView) At(i int) byte {
	return r.data[i]
}

// String returns the buffer in hex, byte 0 first.
func (r RawView) String() string {
	return hex.EncodeToString(r.data)
}
