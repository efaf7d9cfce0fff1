package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/packedints/errors"
)

// Parse reads a textual schema of comma-separated name:bits entries, for
// example "mode:2, level:4, count:9". Names must be non-empty and may not
// contain ':' or ','. The result is validated like New.
func Parse(text string) (*Schema[string], error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.EmptySchema()
	}

	entries := strings.Split(text, ",")
	specs := make([]FieldSpec[string], 0, len(entries))
	for i, entry := range entries {
		name, bits, found := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		bits = strings.TrimSpace(bits)

		if !found {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Detail("entry %d %q: want name:bits", i, strings.TrimSpace(entry)).
				Build()
		}
		if name == "" {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Detail("entry %d: empty field name", i).
				Build()
		}

		n, err := strconv.ParseUint(bits, 10, 8)
		if err != nil {
			return nil, errors.ParseFailed(fmt.Sprintf("width of %q", name), err)
		}
		specs = append(specs, FieldSpec[string]{ID: name, Bits: uint8(n)})
	}

	return New(specs...)
}

// String renders the schema as name:bits entries. For string identifiers the
// output round-trips through Parse.
func (s *Schema[K]) String() string {
	var b strings.Builder
	for i, f := range s.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%v:%d", f.ID, f.Bits)
	}
	return b.String()
}
