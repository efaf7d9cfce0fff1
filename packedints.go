package packedints

// Bounds on a single field's declared width.
const (
	MinWidth = 1
	MaxWidth = 32
)

// Unsigned is the set of result types a field can be read as.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32
}

// Identifier is the set of types usable as field identifiers. Hosts
// normally use a small named integer enumeration or strings.
type Identifier interface {
	comparable
}
