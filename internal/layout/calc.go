package layout

import (
	"strings"
	"sync"
)

// Field is one field's position in the bit stream.
type Field struct {
	Bits   uint32
	Offset uint32
}

// Info is the planned layout of a whole schema.
type Info struct {
	Fields     []Field
	TotalBits  uint32
	TotalBytes uint32
}

// Calculate assigns offsets in declaration order. Offset i is the sum of the
// widths before it and the buffer is rounded up to whole bytes.
func Calculate(widths []uint8) Info {
	fields := make([]Field, len(widths))
	offset := uint32(0)

	for i, w := range widths {
		fields[i] = Field{Bits: uint32(w), Offset: offset}
		offset += uint32(w)
	}

	return Info{
		Fields:     fields,
		TotalBits:  offset,
		TotalBytes: (offset + 7) / 8,
	}
}

// NaturalSize returns the width in bytes of the smallest unsigned integer
// covering a buffer of totalBytes, or 0 when the buffer is wider than 32 bits.
func NaturalSize(totalBytes uint32) int {
	switch {
	case totalBytes == 0:
		return 0
	case totalBytes <= 1:
		return 1
	case totalBytes <= 2:
		return 2
	case totalBytes <= 4:
		return 4
	default:
		return 0
	}
}

// Calculator memoizes layouts by width signature.
type Calculator struct {
	mu    sync.Mutex
	cache map[string]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[string]Info),
	}
}

func (c *Calculator) Calculate(widths []uint8) Info {
	key := signature(widths)

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache[key]; ok {
		return cached
	}

	info := Calculate(widths)
	c.cache[key] = info
	return info
}

func signature(widths []uint8) string {
	var b strings.Builder
	b.Grow(len(widths))
	for _, w := range widths {
		b.WriteByte(w)
	}
	return b.String()
}
