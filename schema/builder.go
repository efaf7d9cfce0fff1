package schema

import "github.com/wippyai/packedints"

// Builder accumulates field declarations in order.
//
//	s, err := schema.NewBuilder[string]().
//		Field("mode", 2).
//		Field("level", 4).
//		Build()
type Builder[K packedints.Identifier] struct {
	specs []FieldSpec[K]
}

func NewBuilder[K packedints.Identifier]() *Builder[K] {
	return &Builder[K]{}
}

// Field appends a field. Validation is deferred to Build.
func (b *Builder[K]) Field(id K, bits uint8) *Builder[K] {
	b.specs = append(b.specs, FieldSpec[K]{ID: id, Bits: bits})
	return b
}

// Flag appends a 1-bit field.
func (b *Builder[K]) Flag(id K) *Builder[K] {
	return b.Field(id, 1)
}

func (b *Builder[K]) Build() (*Schema[K], error) {
	return New(b.specs...)
}

// MustBuild panics if the accumulated declaration is invalid.
func (b *Builder[K]) MustBuild() *Schema[K] {
	return MustNew(b.specs...)
}
