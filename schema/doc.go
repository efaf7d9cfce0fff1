// Package schema declares and validates packed field sets.
//
// A schema is an ordered list of (identifier, width) pairs. Order is
// significant: it fixes each field's bit offset. Validation rejects empty
// schemas, duplicate identifiers and widths outside [1, 32]. These are
// configuration errors; MustNew turns them into a panic so that package-level
// declarations fail at program start.
package schema
