package host

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/packedints"
	"github.com/wippyai/packedints/errors"
	"github.com/wippyai/packedints/packed"
)

// Binding shares one packed value with WebAssembly guests. Calls from
// guests and from Go are serialized.
type Binding[K packedints.Identifier] struct {
	mu    sync.Mutex
	value *packed.Value[K]
}

// New binds v.
func New[K packedints.Identifier](v *packed.Value[K]) *Binding[K] {
	return &Binding[K]{value: v}
}

// Instantiate binds v and registers it as a host module called name.
func Instantiate[K packedints.Identifier](ctx context.Context, r wazero.Runtime, name string, v *packed.Value[K]) (api.Module, error) {
	return New(v).Instantiate(ctx, r, name)
}

type hostFunc struct {
	name    string
	fn      api.GoModuleFunc
	params  []api.ValueType
	results []api.ValueType
}

var (
	i32  = []api.ValueType{api.ValueTypeI32}
	i32s = []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}
)

// Instantiate registers the binding as a host module called name.
//
// Fields are addressed by their schema index:
//
//	get(i32) -> i32       field value, 0 for an unknown index
//	set(i32, i32)         truncating store, no-op for an unknown index
//	contains(i32) -> i32  1 if the index names a field
//	width(i32) -> i32     field width in bits, 0 for an unknown index
//	size() -> i32         buffer size in bytes
//	word() -> i32         buffer as a little-endian word, 0 above 4 bytes
//	store(i32) -> i32     copy the buffer to the caller's memory
//	load(i32) -> i32      replace the buffer from the caller's memory
//
// store and load return the number of bytes copied, or -1 when the caller
// has no memory, the range is out of bounds, or loaded padding bits are set.
func (b *Binding[K]) Instantiate(ctx context.Context, r wazero.Runtime, name string) (api.Module, error) {
	builder := r.NewHostModuleBuilder(name)

	funcs := b.funcs()
	for _, f := range funcs {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, f.params, f.results).
			Export(f.name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Instantiation(name, err)
	}

	Logger().Debug("instantiated packed host module",
		zap.String("module", name),
		zap.Int("fields", b.value.Type().Schema().Len()),
		zap.Int("bytes", b.value.Type().TotalBytes()))

	return mod, nil
}

func (b *Binding[K]) funcs() []hostFunc {
	return []hostFunc{
		{"get", func(ctx context.Context, mod api.Module, stack []uint64) {
			stack[0] = api.EncodeU32(b.get(api.DecodeU32(stack[0])))
		}, i32, i32},
		{"set", func(ctx context.Context, mod api.Module, stack []uint64) {
			b.set(api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
		}, i32s, nil},
		{"contains", func(ctx context.Context, mod api.Module, stack []uint64) {
			var ok uint32
			if _, found := b.field(api.DecodeU32(stack[0])); found {
				ok = 1
			}
			stack[0] = api.EncodeU32(ok)
		}, i32, i32},
		{"width", func(ctx context.Context, mod api.Module, stack []uint64) {
			var bits uint32
			if i, found := b.field(api.DecodeU32(stack[0])); found {
				_, bits = b.value.Type().FieldAt(i)
			}
			stack[0] = api.EncodeU32(bits)
		}, i32, i32},
		{"size", func(ctx context.Context, mod api.Module, stack []uint64) {
			stack[0] = api.EncodeU32(uint32(b.value.Type().TotalBytes()))
		}, nil, i32},
		{"word", func(ctx context.Context, mod api.Module, stack []uint64) {
			b.mu.Lock()
			w := b.value.Data().Word()
			b.mu.Unlock()
			stack[0] = api.EncodeU32(w)
		}, nil, i32},
		{"store", func(ctx context.Context, mod api.Module, stack []uint64) {
			stack[0] = copyResult(b.WriteTo(mod.Memory(), api.DecodeU32(stack[0])), b.value.Type().TotalBytes())
		}, i32, i32},
		{"load", func(ctx context.Context, mod api.Module, stack []uint64) {
			stack[0] = copyResult(b.ReadFrom(mod.Memory(), api.DecodeU32(stack[0])), b.value.Type().TotalBytes())
		}, i32, i32},
	}
}

func copyResult(err error, n int) uint64 {
	if err != nil {
		Logger().Debug("guest buffer copy failed", zap.Error(err))
		return api.EncodeI32(-1)
	}
	return api.EncodeI32(int32(n))
}

func (b *Binding[K]) field(i uint32) (int, bool) {
	if uint64(i) >= uint64(b.value.Type().Schema().Len()) {
		return 0, false
	}
	return int(i), true
}

func (b *Binding[K]) get(i uint32) uint32 {
	idx, ok := b.field(i)
	if !ok {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value.Get(b.value.Type().Schema().At(idx).ID)
}

func (b *Binding[K]) set(i, x uint32) {
	idx, ok := b.field(i)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value.Set(b.value.Type().Schema().At(idx).ID, x)
}

// Get returns a field value under the binding's lock.
func (b *Binding[K]) Get(id K) uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value.Get(id)
}

// Set stores a field value under the binding's lock.
func (b *Binding[K]) Set(id K, x uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value.Set(id, x)
}

// WriteTo copies the buffer into mem at offset.
func (b *Binding[K]) WriteTo(mem api.Memory, offset uint32) error {
	if mem == nil {
		return errors.NilPointer(errors.PhaseHost, nil, "api.Memory")
	}
	b.mu.Lock()
	data := b.value.Bytes()
	b.mu.Unlock()

	if !mem.Write(offset, data) {
		return outOfRange(offset, len(data), mem.Size())
	}
	return nil
}

// ReadFrom replaces the buffer with TotalBytes bytes read from mem at
// offset. The value is unchanged on error.
func (b *Binding[K]) ReadFrom(mem api.Memory, offset uint32) error {
	if mem == nil {
		return errors.NilPointer(errors.PhaseHost, nil, "api.Memory")
	}
	n := b.value.Type().TotalBytes()
	data, ok := mem.Read(offset, uint32(n))
	if !ok {
		return outOfRange(offset, n, mem.Size())
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value.Load(data)
}

func outOfRange(offset uint32, n int, size uint32) error {
	return errors.New(errors.PhaseHost, errors.KindInvalidData).
		Value(offset).
		Detail("%d bytes at offset %d exceed memory of %d bytes", n, offset, size).
		Build()
}
