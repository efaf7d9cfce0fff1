package witschema

import (
	"math/bits"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/packedints/errors"
	"github.com/wippyai/packedints/schema"
)

// FromType derives a packed schema from a WIT type.
//
// Flags become one 1-bit field per flag. An enum becomes a single field
// wide enough for its largest case index. A record contributes one field
// per member; nested flags and records are expanded with dotted names.
// Field identifiers are the WIT names.
func FromType(t wit.Type) (*schema.Schema[string], error) {
	var specs []schema.FieldSpec[string]
	if err := collect(t, nil, &specs); err != nil {
		return nil, err
	}
	return schema.New(specs...)
}

// MustFromType is FromType but panics on error.
func MustFromType(t wit.Type) *schema.Schema[string] {
	s, err := FromType(t)
	if err != nil {
		panic(err)
	}
	return s
}

// EnumBits returns the width needed to store any case index of an enum
// with n cases.
func EnumBits(n int) uint8 {
	if n <= 1 {
		return 1
	}
	return uint8(bits.Len(uint(n - 1)))
}

func collect(t wit.Type, path []string, out *[]schema.FieldSpec[string]) error {
	switch t := t.(type) {
	case wit.Bool:
		return leaf(path, 1, out)
	case wit.U8:
		return leaf(path, 8, out)
	case wit.U16:
		return leaf(path, 16, out)
	case wit.U32:
		return leaf(path, 32, out)
	case *wit.TypeDef:
		return collectTypeDef(t, path, out)
	default:
		return errors.New(errors.PhaseSchema, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported WIT type: %T", t).
			Build()
	}
}

func collectTypeDef(t *wit.TypeDef, path []string, out *[]schema.FieldSpec[string]) error {
	switch kind := t.Kind.(type) {
	case *wit.Flags:
		if len(kind.Flags) == 0 {
			return errors.EmptySchema()
		}
		for _, f := range kind.Flags {
			*out = append(*out, schema.FieldSpec[string]{ID: join(path, f.Name), Bits: 1})
		}
		return nil
	case *wit.Enum:
		if len(kind.Cases) == 0 {
			return errors.InvalidData(errors.PhaseSchema, path, "enum has no cases")
		}
		return leaf(path, EnumBits(len(kind.Cases)), out)
	case *wit.Record:
		for _, f := range kind.Fields {
			fieldPath := append(append([]string{}, path...), f.Name)
			if err := collect(f.Type, fieldPath, out); err != nil {
				return err
			}
		}
		return nil
	case wit.Type:
		return collect(kind, path, out)
	default:
		return errors.New(errors.PhaseSchema, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported TypeDef kind: %T", kind).
			Build()
	}
}

func leaf(path []string, width uint8, out *[]schema.FieldSpec[string]) error {
	if len(path) == 0 {
		// a bare primitive or enum packs into a single unnamed field
		*out = append(*out, schema.FieldSpec[string]{ID: "value", Bits: width})
		return nil
	}
	*out = append(*out, schema.FieldSpec[string]{ID: strings.Join(path, "."), Bits: width})
	return nil
}

func join(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, ".") + "." + name
}
