// Package witschema derives packed schemas from WebAssembly Interface Type
// definitions.
//
// Only types whose values are small unsigned integers map onto packed
// fields: bool, u8, u16, u32, enum, flags and records built from them.
//
//	perms := &wit.TypeDef{Kind: &wit.Flags{Flags: []wit.Flag{
//		{Name: "read"}, {Name: "write"}, {Name: "exec"},
//	}}}
//	s, err := witschema.FromType(perms) // read:1,write:1,exec:1
package witschema
