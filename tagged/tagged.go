package tagged

import (
	"reflect"

	"github.com/wippyai/packedints/codec"
	"github.com/wippyai/packedints/errors"
	"github.com/wippyai/packedints/packed"
)

var defaultCompiler = NewCompiler()

// Compile returns the packed layout of v's struct type.
func Compile(v any) (*Compiled, error) {
	return defaultCompiler.Compile(reflect.TypeOf(v))
}

// SizeOf returns the packed size in bytes of v's struct type.
func SizeOf(v any) (int, error) {
	ct, err := Compile(v)
	if err != nil {
		return 0, err
	}
	return ct.Type.TotalBytes(), nil
}

// Marshal packs a struct (or pointer to struct). Field values wider than
// their declared bits are truncated.
func Marshal(v any) ([]byte, error) {
	return marshal(v, false)
}

// MarshalStrict is Marshal but fails with KindOverflow when a field value
// does not fit its declared bits.
func MarshalStrict(v any) ([]byte, error) {
	return marshal(v, true)
}

func marshal(v any, strict bool) ([]byte, error) {
	rv, err := structValue(v, false)
	if err != nil {
		return nil, err
	}
	ct, err := defaultCompiler.Compile(rv.Type())
	if err != nil {
		return nil, err
	}
	p, err := ct.Encode(rv, strict)
	if err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

// Unmarshal unpacks data into the struct v points to.
func Unmarshal(data []byte, v any) error {
	rv, err := structValue(v, true)
	if err != nil {
		return err
	}
	ct, err := defaultCompiler.Compile(rv.Type())
	if err != nil {
		return err
	}
	p, err := ct.Type.FromBytes(data)
	if err != nil {
		return err
	}
	ct.Decode(p, rv)
	return nil
}

func structValue(v any, needPtr bool) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Value{}, errors.NilPointer(errors.PhaseEncode, nil, "nil")
	}

	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}, errors.NilPointer(errors.PhaseDecode, nil, rv.Type().String())
		}
		rv = rv.Elem()
	} else if needPtr {
		return reflect.Value{}, errors.TypeMismatch(errors.PhaseDecode, nil, rv.Type().String(), "want a pointer to struct")
	}

	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, errors.TypeMismatch(errors.PhaseEncode, nil, rv.Type().String(), "want a struct")
	}
	return rv, nil
}

// Encode packs the struct value rv into a new packed value.
func (c *Compiled) Encode(rv reflect.Value, strict bool) (*packed.Value[string], error) {
	p := c.Type.New()
	for _, f := range c.Fields {
		x := fieldUint(rv.FieldByIndex(f.Index))
		if strict && !codec.Fits(x, uint32(f.Bits)) {
			return nil, errors.Overflow(errors.PhaseEncode, f.Name, x, int(f.Bits))
		}
		p.Set(f.Name, uint32(x))
	}
	return p, nil
}

// Decode stores every field of p into the struct value rv.
func (c *Compiled) Decode(p *packed.Value[string], rv reflect.Value) {
	for _, f := range c.Fields {
		fv := rv.FieldByIndex(f.Index)
		x := p.Get(f.Name)
		if f.Kind == reflect.Bool {
			fv.SetBool(x != 0)
		} else {
			fv.SetUint(uint64(x))
		}
	}
}

func fieldUint(fv reflect.Value) uint64 {
	if fv.Kind() == reflect.Bool {
		if fv.Bool() {
			return 1
		}
		return 0
	}
	return fv.Uint()
}
