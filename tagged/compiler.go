package tagged

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/packedints/errors"
	"github.com/wippyai/packedints/packed"
	"github.com/wippyai/packedints/schema"
)

const tagName = "bits"

// Field binds one struct field to a packed field.
type Field struct {
	Name  string // dotted path, also the schema identifier
	Index []int
	Kind  reflect.Kind
	Bits  uint8
}

// Compiled is the packed layout of one struct type.
type Compiled struct {
	GoType reflect.Type
	Type   *packed.Type[string]
	Fields []Field
}

type Compiler struct {
	cache sync.Map // reflect.Type -> *Compiled
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile builds the packed layout of a struct type. Pointer types are
// dereferenced. Results are cached per type.
func (c *Compiler) Compile(goType reflect.Type) (*Compiled, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseSchema, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}
	if goType.Kind() == reflect.Ptr {
		goType = goType.Elem()
	}

	if cached, ok := c.cache.Load(goType); ok {
		return cached.(*Compiled), nil
	}

	ct, err := c.compile(goType)
	if err != nil {
		return nil, err
	}

	actual, _ := c.cache.LoadOrStore(goType, ct)
	return actual.(*Compiled), nil
}

func (c *Compiler) compile(goType reflect.Type) (*Compiled, error) {
	if goType.Kind() != reflect.Struct {
		return nil, errors.TypeMismatch(errors.PhaseSchema, nil, goType.String(), "want a struct")
	}

	var fields []Field
	if err := c.collect(goType, nil, nil, &fields); err != nil {
		return nil, err
	}

	specs := make([]schema.FieldSpec[string], len(fields))
	for i, f := range fields {
		specs[i] = schema.FieldSpec[string]{ID: f.Name, Bits: f.Bits}
	}

	s, err := schema.New(specs...)
	if err != nil {
		if len(fields) == 0 {
			return nil, errors.New(errors.PhaseSchema, errors.KindEmptySchema).
				GoType(goType.String()).
				Detail("no packable fields").
				Build()
		}
		return nil, err
	}

	Logger().Debug("compiled struct binding",
		zap.String("type", goType.String()),
		zap.Int("fields", len(fields)))

	return &Compiled{
		GoType: goType,
		Type:   packed.NewType(s),
		Fields: fields,
	}, nil
}

func (c *Compiler) collect(goType reflect.Type, index []int, path []string, out *[]Field) error {
	for i := 0; i < goType.NumField(); i++ {
		sf := goType.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag, hasTag := sf.Tag.Lookup(tagName)
		if tag == "-" {
			continue
		}

		fieldIndex := append(append([]int{}, index...), i)
		fieldPath := append(append([]string{}, path...), sf.Name)

		if sf.Type.Kind() == reflect.Struct {
			if hasTag {
				return errors.TypeMismatch(errors.PhaseSchema, fieldPath, sf.Type.String(),
					"struct fields cannot carry a width")
			}
			if err := c.collect(sf.Type, fieldIndex, fieldPath, out); err != nil {
				return err
			}
			continue
		}

		capacity, err := kindBits(sf.Type, fieldPath)
		if err != nil {
			return err
		}

		bits := capacity
		if hasTag {
			n, err := strconv.ParseUint(strings.TrimSpace(tag), 10, 8)
			if err != nil {
				return errors.New(errors.PhaseParse, errors.KindInvalidData).
					Path(fieldPath...).
					Detail("bits tag %q", tag).
					Cause(err).
					Build()
			}
			bits = int(n)
		} else if capacity > 32 {
			return errors.New(errors.PhaseSchema, errors.KindInvalidWidth).
				Path(fieldPath...).
				GoType(sf.Type.String()).
				Detail("needs an explicit bits tag of at most 32").
				Build()
		}

		if bits > capacity {
			return errors.New(errors.PhaseSchema, errors.KindTypeMismatch).
				Path(fieldPath...).
				GoType(sf.Type.String()).
				Detail("%d bits do not fit the Go type", bits).
				Build()
		}

		*out = append(*out, Field{
			Name:  strings.Join(fieldPath, "."),
			Index: fieldIndex,
			Kind:  sf.Type.Kind(),
			Bits:  uint8(bits),
		})
	}
	return nil
}

// kindBits returns the width of the Go field type.
func kindBits(t reflect.Type, path []string) (int, error) {
	switch t.Kind() {
	case reflect.Bool:
		return 1, nil
	case reflect.Uint8:
		return 8, nil
	case reflect.Uint16:
		return 16, nil
	case reflect.Uint32:
		return 32, nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return 64, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 0, errors.TypeMismatch(errors.PhaseSchema, path, t.String(), "signed fields cannot be packed")
	default:
		return 0, errors.TypeMismatch(errors.PhaseSchema, path, t.String(), "not an unsigned integer or bool")
	}
}
