package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSchema   Phase = "schema"   // schema validation
	PhaseLayout   Phase = "layout"   // bit layout planning
	PhaseEncode   Phase = "encode"   // Go value to packed bits
	PhaseDecode   Phase = "decode"   // packed bits to Go value
	PhaseParse    Phase = "parse"    // textual schema parsing
	PhaseSnapshot Phase = "snapshot" // snapshot persistence
	PhaseHost     Phase = "host"     // wasm host module registration
)

// Kind categorizes the error
type Kind string

const (
	KindEmptySchema    Kind = "empty_schema"
	KindDuplicateField Kind = "duplicate_field"
	KindInvalidWidth   Kind = "invalid_width"
	KindTypeMismatch   Kind = "type_mismatch"
	KindSizeMismatch   Kind = "size_mismatch"
	KindOverflow       Kind = "overflow"
	KindFieldUnknown   Kind = "field_unknown"
	KindInvalidData    Kind = "invalid_data"
	KindUnsupported    Kind = "unsupported"
	KindNilPointer     Kind = "nil_pointer"
	KindRegistration   Kind = "registration"
	KindInstantiation  Kind = "instantiation"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Field  string
	GoType string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Field sets the offending field identifier
func (b *Builder) Field(id any) *Builder {
	b.err.Field = fieldName(id)
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

func fieldName(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Convenience constructors for common error patterns

// EmptySchema creates an error for a schema with no fields
func EmptySchema() *Error {
	return &Error{
		Phase:  PhaseSchema,
		Kind:   KindEmptySchema,
		Detail: "at least one field is required",
	}
}

// DuplicateField creates an error for an identifier declared twice
func DuplicateField(id any, first, second int) *Error {
	return &Error{
		Phase:  PhaseSchema,
		Kind:   KindDuplicateField,
		Field:  fieldName(id),
		Detail: fmt.Sprintf("declared at positions %d and %d", first, second),
		Value:  id,
	}
}

// InvalidWidth creates an error for a field width outside [min, max]
func InvalidWidth(id any, bits, min, max int) *Error {
	return &Error{
		Phase:  PhaseSchema,
		Kind:   KindInvalidWidth,
		Field:  fieldName(id),
		Detail: fmt.Sprintf("width %d outside [%d, %d]", bits, min, max),
		Value:  bits,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Detail: detail,
	}
}

// SizeMismatch creates an error for a buffer of the wrong length
func SizeMismatch(phase Phase, got, want int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeMismatch,
		Detail: fmt.Sprintf("buffer is %d bytes, want %d", got, want),
		Value:  got,
	}
}

// Overflow creates an error for a value that does not fit its field
func Overflow(phase Phase, id any, value uint64, bits int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Field:  fieldName(id),
		Detail: fmt.Sprintf("value %d overflows %d bits", value, bits),
		Value:  value,
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, id any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Field:  fieldName(id),
		Detail: "not declared in schema",
		Value:  id,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Registration creates a host registration error
func Registration(module, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s#%s", module, name),
		Cause:  cause,
	}
}

// Instantiation creates a host instantiation error
func Instantiation(module string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindInstantiation,
		Detail: fmt.Sprintf("instantiate %s", module),
		Cause:  cause,
	}
}
