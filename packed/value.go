package packed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wippyai/packedints"
	"github.com/wippyai/packedints/codec"
	"github.com/wippyai/packedints/errors"
)

// Value is one packed instance. It exclusively owns its buffer.
//
// Value is NOT thread-safe. A single Set touches only the bytes of that
// field's span, so fields sharing no byte may be written concurrently;
// fields sharing a byte may not.
type Value[K packedints.Identifier] struct {
	typ *Type[K]
	buf []byte
}

// Type returns the value's type.
func (v *Value[K]) Type() *Type[K] {
	return v.typ
}

// Set stores x in field id. Bits of x above the field width are discarded.
// Set on an identifier outside the schema does nothing.
func (v *Value[K]) Set(id K, x uint32) {
	f, ok := v.typ.lookup(id)
	if !ok {
		return
	}
	codec.Put(v.buf, f.Offset, f.Bits, x)
}

// SetStrict is Set with checking: it fails with KindFieldUnknown for an
// identifier outside the schema and with KindOverflow when x does not fit.
// The value is unchanged on error.
func (v *Value[K]) SetStrict(id K, x uint32) error {
	f, ok := v.typ.lookup(id)
	if !ok {
		return errors.FieldUnknown(errors.PhaseEncode, id)
	}
	if !codec.Fits(uint64(x), f.Bits) {
		return errors.Overflow(errors.PhaseEncode, id, uint64(x), int(f.Bits))
	}
	codec.Put(v.buf, f.Offset, f.Bits, x)
	return nil
}

// Get returns field id, or 0 if id is not in the schema.
func (v *Value[K]) Get(id K) uint32 {
	return v.GetOr(id, 0)
}

// GetOr returns field id, or def if id is not in the schema.
func (v *Value[K]) GetOr(id K, def uint32) uint32 {
	f, ok := v.typ.lookup(id)
	if !ok {
		return def
	}
	return codec.Get(v.buf, f.Offset, f.Bits)
}

// Contains reports whether id is a field of the value's type.
func (v *Value[K]) Contains(id K) bool {
	return v.typ.Contains(id)
}

// GetAs reads field id converted to T, or def if id is not in the schema.
// Bits above T's width are dropped by the conversion.
func GetAs[T packedints.Unsigned, K packedints.Identifier](v *Value[K], id K, def T) T {
	f, ok := v.typ.lookup(id)
	if !ok {
		return def
	}
	return T(codec.Get(v.buf, f.Offset, f.Bits))
}

// Data returns a view of the current buffer contents.
func (v *Value[K]) Data() RawView {
	return newRawView(v.buf)
}

// Bytes returns a copy of the buffer.
func (v *Value[K]) Bytes() []byte {
	out := make([]byte, len(v.buf))
	copy(out, v.buf)
	return out
}

// Load replaces the buffer with a copy of data. The same checks as
// Type.FromBytes apply; the value is unchanged on error.
func (v *Value[K]) Load(data []byte) error {
	if err := v.typ.checkBuffer(data, errors.PhaseDecode); err != nil {
		return err
	}
	copy(v.buf, data)
	return nil
}

// Reset zeroes every field.
func (v *Value[K]) Reset() {
	clear(v.buf)
}

// Clone returns an independent copy.
func (v *Value[K]) Clone() *Value[K] {
	return &Value[K]{typ: v.typ, buf: v.Bytes()}
}

// Equal reports whether both values have the same type and contents.
func (v *Value[K]) Equal(other *Value[K]) bool {
	return other != nil && v.typ == other.typ && bytes.Equal(v.buf, other.buf)
}

// String lists the fields in declaration order, e.g. "mode=3 level=9".
func (v *Value[K]) String() string {
	var b strings.Builder
	s := v.typ.schema
	for i := 0; i < s.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		off, bits := v.typ.FieldAt(i)
		fmt.Fprintf(&b, "%v=%d", s.At(i).ID, codec.Get(v.buf, off, bits))
	}
	return b.String()
}
