package host

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/packedints/errors"
	"github.com/wippyai/packedints/packed"
	"github.com/wippyai/packedints/schema"
)

// guestWasm imports packed.store and packed.load, exports one page of
// memory plus dump() = store(16) and fill() = load(16).
var guestWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type: (i32)->i32, ()->i32
	0x01, 0x0a, 0x02, 0x60, 0x01, 0x7f, 0x01, 0x7f, 0x60, 0x00, 0x01, 0x7f,
	// import
	0x02, 0x1e, 0x02,
	0x06, 'p', 'a', 'c', 'k', 'e', 'd', 0x05, 's', 't', 'o', 'r', 'e', 0x00, 0x00,
	0x06, 'p', 'a', 'c', 'k', 'e', 'd', 0x04, 'l', 'o', 'a', 'd', 0x00, 0x00,
	// function
	0x03, 0x03, 0x02, 0x01, 0x01,
	// memory
	0x05, 0x03, 0x01, 0x00, 0x01,
	// export
	0x07, 0x18, 0x03,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x04, 'd', 'u', 'm', 'p', 0x00, 0x02,
	0x04, 'f', 'i', 'l', 'l', 0x00, 0x03,
	// code
	0x0a, 0x10, 0x02,
	0x06, 0x00, 0x41, 0x10, 0x10, 0x00, 0x0b,
	0x06, 0x00, 0x41, 0x10, 0x10, 0x01, 0x0b,
}

func newValue() *packed.Value[string] {
	return packed.MustType(
		schema.FieldSpec[string]{ID: "a", Bits: 9},
		schema.FieldSpec[string]{ID: "b", Bits: 9},
		schema.FieldSpec[string]{ID: "c", Bits: 9},
	).New()
}

func call(t *testing.T, ctx context.Context, mod api.Module, name string, params ...uint64) []uint64 {
	t.Helper()
	fn := mod.ExportedFunction(name)
	if fn == nil {
		t.Fatalf("function %q not exported", name)
	}
	res, err := fn.Call(ctx, params...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

func TestHostFunctions(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	v := newValue()
	mod, err := Instantiate(ctx, rt, "packed", v)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	call(t, ctx, mod, "set", 0, 511)
	call(t, ctx, mod, "set", 2, 0x3ff) // truncated to 0x1ff
	call(t, ctx, mod, "set", 7, 1)     // unknown index

	if got := v.Get("a"); got != 511 {
		t.Errorf("a = %d, want 511", got)
	}

	tests := []struct {
		fn     string
		params []uint64
		want   uint32
	}{
		{"get", []uint64{0}, 511},
		{"get", []uint64{1}, 0},
		{"get", []uint64{2}, 511},
		{"get", []uint64{3}, 0},
		{"contains", []uint64{2}, 1},
		{"contains", []uint64{3}, 0},
		{"width", []uint64{1}, 9},
		{"width", []uint64{9}, 0},
		{"size", nil, 4},
		{"word", nil, 511 | 511<<18},
	}
	for _, tt := range tests {
		res := call(t, ctx, mod, tt.fn, tt.params...)
		if got := api.DecodeU32(res[0]); got != tt.want {
			t.Errorf("%s%v = %d, want %d", tt.fn, tt.params, got, tt.want)
		}
	}

	// a host module has no memory of its own
	res := call(t, ctx, mod, "store", 0)
	if got := api.DecodeI32(res[0]); got != -1 {
		t.Errorf("store without memory = %d, want -1", got)
	}
}

func TestGuestStoreLoad(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	v := newValue()
	v.Set("a", 0x155)
	v.Set("c", 0x0aa)
	if _, err := Instantiate(ctx, rt, "packed", v); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	guest, err := rt.Instantiate(ctx, guestWasm)
	if err != nil {
		t.Fatalf("instantiate guest: %v", err)
	}
	mem := guest.Memory()

	res := call(t, ctx, guest, "dump")
	if got := api.DecodeI32(res[0]); got != 4 {
		t.Fatalf("dump = %d, want 4", got)
	}
	data, ok := mem.Read(16, 4)
	if !ok || !bytes.Equal(data, v.Bytes()) {
		t.Errorf("guest memory = % x, want % x", data, v.Bytes())
	}

	other := newValue()
	other.Set("b", 300)
	if !mem.Write(16, other.Bytes()) {
		t.Fatal("mem.Write failed")
	}
	res = call(t, ctx, guest, "fill")
	if got := api.DecodeI32(res[0]); got != 4 {
		t.Fatalf("fill = %d, want 4", got)
	}
	if !v.Equal(other) {
		t.Errorf("after fill = %v, want %v", v, other)
	}

	// padding bit 27 set
	mem.Write(16, []byte{0, 0, 0, 0x08})
	res = call(t, ctx, guest, "fill")
	if got := api.DecodeI32(res[0]); got != -1 {
		t.Errorf("fill with padding = %d, want -1", got)
	}
	if v.Get("b") != 300 {
		t.Errorf("value changed by rejected load: %v", v)
	}
}

func TestWriteToReadFrom(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	if _, err := Instantiate(ctx, rt, "packed", newValue()); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	guest, err := rt.Instantiate(ctx, guestWasm)
	if err != nil {
		t.Fatalf("instantiate guest: %v", err)
	}
	mem := guest.Memory()

	v := newValue()
	v.Set("b", 77)
	b := New(v)
	if err := b.WriteTo(mem, 100); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	w := New(newValue())
	if err := w.ReadFrom(mem, 100); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if got := w.Get("b"); got != 77 {
		t.Errorf("b = %d, want 77", got)
	}

	last := mem.Size() - 2
	err = b.WriteTo(mem, last)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseHost, Kind: errors.KindInvalidData}) {
		t.Errorf("WriteTo past end: %v", err)
	}
	err = w.ReadFrom(mem, last)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseHost, Kind: errors.KindInvalidData}) {
		t.Errorf("ReadFrom past end: %v", err)
	}
	if err := w.ReadFrom(nil, 0); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseHost, Kind: errors.KindNilPointer}) {
		t.Errorf("ReadFrom(nil): %v", err)
	}
}

func TestInstantiate_Duplicate(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	if _, err := Instantiate(ctx, rt, "packed", newValue()); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	_, err := Instantiate(ctx, rt, "packed", newValue())
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseHost, Kind: errors.KindInstantiation}) {
		t.Errorf("second Instantiate: %v", err)
	}
}
