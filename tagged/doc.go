// Package tagged packs Go structs using `bits` struct tags.
//
// Exported fields of kind bool, uint8, uint16 and uint32 are packed in
// declaration order. A field's width defaults to the width of its Go type
// (bool is 1 bit) and can be narrowed with a tag. uint, uint64 and uintptr
// fields need an explicit tag of at most 32. Nested struct fields are
// flattened with dotted names. Signed integers are rejected.
//
//	type Header struct {
//		Version  uint8  `bits:"2"`
//		Priority uint8  `bits:"4"`
//		Urgent   bool
//		Length   uint16 `bits:"10"`
//		Scratch  uint32 `bits:"-"`
//	}
//
//	data, err := tagged.Marshal(h)   // 3 bytes
//	err = tagged.Unmarshal(data, &h)
//
// Each struct type is compiled once into a packed.Type keyed by the dotted
// field names; the result is cached.
package tagged
