// Package layout plans bit offsets for packed field sets.
//
// This package computes each field's bit offset, the total buffer size and
// the byte decomposition of a field's span. Layouts are computed once per
// schema and then only read.
//
// # Layout Rules
//
//   - Fields are laid out in declaration order starting at bit 0
//   - Field i starts at the sum of the widths before it, with no padding
//   - The buffer is ceil(totalBits / 8) bytes
//   - A span is either one byte, or a partial head byte, a whole-byte run
//     and a partial tail byte
//
// # Usage
//
//	info := layout.Calculate(widths)
//	span := info.Fields[i].Span()
//
// This package is internal to the module.
package layout
