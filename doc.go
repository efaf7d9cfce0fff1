// Package packedints packs small unsigned integer fields, each with its own
// declared bit width, into the smallest contiguous byte buffer.
//
// A field set is declared once as an ordered schema of (identifier, width)
// pairs. The declaration order fixes every field's bit offset, and the
// buffer is ceil(sum(widths)/8) bytes long. Each field can then be read and
// written without disturbing its neighbours.
//
// # Architecture Overview
//
//	packedints/          Root package with width bounds and type constraints
//	├── schema/          Field declarations and validation
//	├── internal/layout/ Bit offsets and byte spans, computed once per schema
//	├── codec/           Masked read/write of one (offset, width) span
//	├── packed/          Packed types, values and the raw buffer view
//	├── tagged/          Struct tag binding (`bits:"N"`)
//	├── witschema/       Schemas derived from WIT flags, enums and records
//	├── host/            Packed values exposed to WebAssembly guests (wazero)
//	├── snapshot/        bencoded persistence of schema and buffer
//	├── errors/          Structured error types
//	└── cmd/packinspect/ Layout inspector and interactive editor
//
// # Quick Start
//
//	type Field uint8
//
//	const (
//		Mode Field = iota
//		Level
//	)
//
//	var header = packed.MustType(
//		schema.FieldSpec[Field]{ID: Mode, Bits: 2},
//		schema.FieldSpec[Field]{ID: Level, Bits: 4},
//	)
//
//	v := header.New()
//	v.Set(Mode, 3)
//	v.Set(Level, 9)
//	v.Data().Word() // 39
//
// # Bit Order
//
// Fields are packed in declaration order starting at bit 0. Field i occupies
// bits [offset_i, offset_i+width_i) of a little-bit-endian stream where bit 0
// is the least significant bit of byte 0. Unused high bits of the last byte
// are zero.
//
// # Lenient Access
//
// Unknown identifiers are not errors: Set is a no-op and Get returns the
// caller's default. Values wider than their field are truncated to the
// field's width. SetStrict reports both conditions instead.
//
// # Thread Safety
//
// Types are immutable and safe for concurrent use. Values are NOT
// thread-safe. A single Set or Get only touches the bytes of that field's
// span, so fields that share no byte can be updated from different
// goroutines, but fields sharing a byte cannot.
package packedints
