package packed

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/packedints"
	"github.com/wippyai/packedints/errors"
	"github.com/wippyai/packedints/internal/layout"
	"github.com/wippyai/packedints/schema"
)

// Type is a packed-value type: a validated schema and its planned layout.
// It is immutable and safe for concurrent use.
type Type[K packedints.Identifier] struct {
	schema *schema.Schema[K]
	layout layout.Info
}

// planner shares layouts between types with the same width sequence.
var planner = layout.NewCalculator()

// NewType plans the layout of s.
func NewType[K packedints.Identifier](s *schema.Schema[K]) *Type[K] {
	t := &Type[K]{
		schema: s,
		layout: planner.Calculate(s.Widths()),
	}

	Logger().Debug("planned packed type",
		zap.Int("fields", s.Len()),
		zap.Uint32("bits", t.layout.TotalBits),
		zap.Uint32("bytes", t.layout.TotalBytes))

	return t
}

// MustType validates specs and plans the type, panicking on an invalid schema.
//
//	var header = packed.MustType(
//		schema.FieldSpec[Field]{ID: Mode, Bits: 2},
//		schema.FieldSpec[Field]{ID: Level, Bits: 4},
//	)
func MustType[K packedints.Identifier](specs ...schema.FieldSpec[K]) *Type[K] {
	return NewType(schema.MustNew(specs...))
}

// New returns a zeroed value of this type.
func (t *Type[K]) New() *Value[K] {
	return &Value[K]{
		typ: t,
		buf: make([]byte, t.layout.TotalBytes),
	}
}

// FromBytes returns a value holding a copy of data. data must be exactly
// TotalBytes long and its unused high padding bits must be zero.
func (t *Type[K]) FromBytes(data []byte) (*Value[K], error) {
	if err := t.checkBuffer(data, errors.PhaseDecode); err != nil {
		return nil, err
	}
	v := t.New()
	copy(v.buf, data)
	return v, nil
}

func (t *Type[K]) checkBuffer(data []byte, phase errors.Phase) error {
	if len(data) != int(t.layout.TotalBytes) {
		return errors.SizeMismatch(phase, len(data), int(t.layout.TotalBytes))
	}
	if pad := t.layout.TotalBits % 8; pad != 0 {
		if data[len(data)-1]>>pad != 0 {
			return errors.InvalidData(phase, nil,
				fmt.Sprintf("padding bits above bit %d are set", t.layout.TotalBits))
		}
	}
	return nil
}

// Schema returns the type's schema.
func (t *Type[K]) Schema() *schema.Schema[K] {
	return t.schema
}

// TotalBits returns the sum of all field widths.
func (t *Type[K]) TotalBits() int {
	return int(t.layout.TotalBits)
}

// TotalBytes returns the buffer size of every value of this type.
func (t *Type[K]) TotalBytes() int {
	return int(t.layout.TotalBytes)
}

// Contains reports whether id is a field of this type.
func (t *Type[K]) Contains(id K) bool {
	return t.schema.Contains(id)
}

// Field returns the bit offset and width of id.
func (t *Type[K]) Field(id K) (offset, bits uint32, ok bool) {
	i, ok := t.schema.Index(id)
	if !ok {
		return 0, 0, false
	}
	f := t.layout.Fields[i]
	return f.Offset, f.Bits, true
}

// FieldAt returns the bit offset and width of the i-th declared field.
func (t *Type[K]) FieldAt(i int) (offset, bits uint32) {
	f := t.layout.Fields[i]
	return f.Offset, f.Bits
}

func (t *Type[K]) lookup(id K) (layout.Field, bool) {
	i, ok := t.schema.Index(id)
	if !ok {
		return layout.Field{}, false
	}
	return t.layout.Fields[i], true
}
