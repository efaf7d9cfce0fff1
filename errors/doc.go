// Package errors provides structured error types for the packedints module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending field identifier, an optional struct path,
// the Go type name and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSchema, errors.KindTypeMismatch).
//		Path("Header", "Flags").
//		GoType("int8").
//		Detail("signed fields cannot be packed").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidWidth(id, 33, 1, 32)
//	err := errors.Overflow(errors.PhaseEncode, id, 300, 8)
//
// Only configuration and strict-mode operations produce errors. The lenient
// get/set path of a packed value never does.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
