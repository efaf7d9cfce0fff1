// Package packed provides packed-value types and instances.
//
// A Type couples a validated schema with its bit layout and is built once,
// usually as a package-level variable. Values are created from a Type and
// own a zero-initialized buffer of exactly ceil(totalBits/8) bytes.
//
//	┌────────┐   NewType   ┌──────┐   New   ┌───────┐   Data   ┌─────────┐
//	│ Schema │ ──────────► │ Type │ ──────► │ Value │ ───────► │ RawView │
//	└────────┘             └──────┘         └───────┘          └─────────┘
//
// # Access Policy
//
//	Set(id, x)        unknown id: no-op        oversized x: truncated
//	Get(id)           unknown id: 0
//	GetOr(id, def)    unknown id: def
//	GetAs[T](v,id,d)  unknown id: d            result converted to T
//	SetStrict(id, x)  unknown id: error        oversized x: error
//
// Contains reports membership for callers that want to check first.
//
// # Raw View
//
// Data returns a snapshot of the buffer. Buffers of 1, 2 or 4 bytes are
// readable as uint8, uint16 or uint32; 3 bytes widen to uint32; longer
// buffers are only available as bytes.
package packed
