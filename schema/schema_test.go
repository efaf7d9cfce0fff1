package schema

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/packedints/errors"
)

type field uint8

const (
	fieldA field = iota
	fieldB
	fieldC
	fieldUnused
)

func TestNew(t *testing.T) {
	s, err := New(
		FieldSpec[field]{ID: fieldA, Bits: 9},
		FieldSpec[field]{ID: fieldB, Bits: 9},
		FieldSpec[field]{ID: fieldC, Bits: 9},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
	if s.TotalBits() != 27 {
		t.Errorf("TotalBits = %d, want 27", s.TotalBits())
	}
	if i, ok := s.Index(fieldC); !ok || i != 2 {
		t.Errorf("Index(C) = %d, %v; want 2, true", i, ok)
	}
	if s.Contains(fieldUnused) {
		t.Error("Contains(unused) = true")
	}
	if got := s.At(1); got.ID != fieldB || got.Bits != 9 {
		t.Errorf("At(1) = %+v", got)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		specs []FieldSpec[field]
		kind  errors.Kind
	}{
		{
			name: "empty",
			kind: errors.KindEmptySchema,
		},
		{
			name: "duplicate",
			specs: []FieldSpec[field]{
				{ID: fieldA, Bits: 1},
				{ID: fieldB, Bits: 1},
				{ID: fieldA, Bits: 1},
			},
			kind: errors.KindDuplicateField,
		},
		{
			name:  "zero width",
			specs: []FieldSpec[field]{{ID: fieldA, Bits: 0}},
			kind:  errors.KindInvalidWidth,
		},
		{
			name:  "too wide",
			specs: []FieldSpec[field]{{ID: fieldA, Bits: 4}, {ID: fieldB, Bits: 33}},
			kind:  errors.KindInvalidWidth,
		},
		{
			// duplicates are reported before widths
			name:  "duplicate and bad width",
			specs: []FieldSpec[field]{{ID: fieldA, Bits: 0}, {ID: fieldA, Bits: 3}},
			kind:  errors.KindDuplicateField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.specs...)
			if err == nil {
				t.Fatalf("New succeeded with %d fields", s.Len())
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if e.Phase != errors.PhaseSchema || e.Kind != tt.kind {
				t.Errorf("got [%s] %s, want [schema] %s", e.Phase, e.Kind, tt.kind)
			}
		})
	}
}

func TestNew_WidthBounds(t *testing.T) {
	for bits := 1; bits <= 32; bits++ {
		if _, err := New(FieldSpec[field]{ID: fieldA, Bits: uint8(bits)}); err != nil {
			t.Errorf("width %d rejected: %v", bits, err)
		}
	}
}

func TestNew_CopiesInput(t *testing.T) {
	specs := []FieldSpec[field]{{ID: fieldA, Bits: 3}}
	s := MustNew(specs...)
	specs[0].Bits = 7

	if s.At(0).Bits != 3 {
		t.Errorf("schema changed with caller slice: bits = %d", s.At(0).Bits)
	}
	fields := s.Fields()
	fields[0].Bits = 9
	if s.At(0).Bits != 3 {
		t.Errorf("schema changed through Fields(): bits = %d", s.At(0).Bits)
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustNew did not panic")
		}
		err, ok := r.(error)
		if !ok || !stderrors.Is(err, &errors.Error{Phase: errors.PhaseSchema, Kind: errors.KindInvalidWidth}) {
			t.Errorf("panic value = %v", r)
		}
	}()
	MustNew(FieldSpec[field]{ID: fieldA, Bits: 40})
}

func TestBuilder(t *testing.T) {
	s, err := NewBuilder[string]().
		Field("mode", 2).
		Flag("ready").
		Field("count", 13).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []uint8{2, 1, 13}
	got := s.Widths()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Widths()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if _, err := NewBuilder[string]().Build(); err == nil {
		t.Error("empty builder built a schema")
	}
}
