package schema

import (
	"github.com/wippyai/packedints"
	"github.com/wippyai/packedints/errors"
)

// FieldSpec declares one field: its identifier and how many bits it needs.
type FieldSpec[K packedints.Identifier] struct {
	ID   K
	Bits uint8
}

// Schema is a validated, ordered field declaration. It is immutable once built.
type Schema[K packedints.Identifier] struct {
	index  map[K]int
	fields []FieldSpec[K]
	total  int
}

// New validates specs and returns the schema. Checks run in order: at least
// one field, identifiers pairwise distinct, every width in [MinWidth, MaxWidth].
func New[K packedints.Identifier](specs ...FieldSpec[K]) (*Schema[K], error) {
	if len(specs) == 0 {
		return nil, errors.EmptySchema()
	}

	index := make(map[K]int, len(specs))
	for i, f := range specs {
		if first, dup := index[f.ID]; dup {
			return nil, errors.DuplicateField(f.ID, first, i)
		}
		index[f.ID] = i
	}

	total := 0
	for _, f := range specs {
		if f.Bits < packedints.MinWidth || f.Bits > packedints.MaxWidth {
			return nil, errors.InvalidWidth(f.ID, int(f.Bits), packedints.MinWidth, packedints.MaxWidth)
		}
		total += int(f.Bits)
	}

	fields := make([]FieldSpec[K], len(specs))
	copy(fields, specs)

	return &Schema[K]{
		index:  index,
		fields: fields,
		total:  total,
	}, nil
}

// MustNew is like New but panics on an invalid schema. Use it for
// package-level declarations so that a bad schema stops the program at init.
func MustNew[K packedints.Identifier](specs ...FieldSpec[K]) *Schema[K] {
	s, err := New(specs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of fields.
func (s *Schema[K]) Len() int {
	return len(s.fields)
}

// At returns the i-th field in declaration order.
func (s *Schema[K]) At(i int) FieldSpec[K] {
	return s.fields[i]
}

// Fields returns a copy of the declaration.
func (s *Schema[K]) Fields() []FieldSpec[K] {
	out := make([]FieldSpec[K], len(s.fields))
	copy(out, s.fields)
	return out
}

// Widths returns the declared widths in order.
func (s *Schema[K]) Widths() []uint8 {
	out := make([]uint8, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Bits
	}
	return out
}

// Index returns the declaration position of id.
func (s *Schema[K]) Index(id K) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Contains reports whether id is declared.
func (s *Schema[K]) Contains(id K) bool {
	_, ok := s.index[id]
	return ok
}

// TotalBits returns the sum of all declared widths.
func (s *Schema[K]) TotalBits() int {
	return s.total
}
