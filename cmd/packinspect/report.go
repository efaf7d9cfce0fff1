package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/wippyai/packedints/codec"
	"github.com/wippyai/packedints/errors"
	"github.com/wippyai/packedints/packed"
)

type assignment struct {
	name  string
	value uint64
}

// parseAssignments reads "name=value,..." where value is decimal, 0x hex or
// 0b binary.
func parseAssignments(s string) ([]assignment, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var out []assignment
	for _, part := range strings.Split(s, ",") {
		name, val, found := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Detail("assignment %q: want name=value", strings.TrimSpace(part)).
				Build()
		}
		n, err := strconv.ParseUint(strings.TrimSpace(val), 0, 64)
		if err != nil {
			return nil, errors.ParseFailed(fmt.Sprintf("value of %q", name), err)
		}
		out = append(out, assignment{name: name, value: n})
	}
	return out, nil
}

// apply stores each assignment. In lenient mode values are truncated and
// unknown names are returned as ignored.
func apply(v *packed.Value[string], as []assignment, strict bool) ([]string, error) {
	var ignored []string
	for _, a := range as {
		if strict {
			if _, bits, ok := v.Type().Field(a.name); ok && !codec.Fits(a.value, bits) {
				return nil, errors.Overflow(errors.PhaseEncode, a.name, a.value, int(bits))
			}
			if err := v.SetStrict(a.name, uint32(a.value)); err != nil {
				return nil, err
			}
			continue
		}
		if !v.Contains(a.name) {
			ignored = append(ignored, a.name)
			continue
		}
		v.Set(a.name, uint32(a.value))
	}
	return ignored, nil
}

// writeReport prints the layout table, field values and raw view.
func writeReport(w io.Writer, v *packed.Value[string]) {
	t := v.Type()
	s := t.Schema()

	fmt.Fprintf(w, "Fields: %d\n", s.Len())
	fmt.Fprintf(w, "Bits: %d\n", t.TotalBits())
	fmt.Fprintf(w, "Bytes: %d\n\n", t.TotalBytes())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tBITS\tOFFSET\tBYTES\tVALUE")
	for i := 0; i < s.Len(); i++ {
		id := s.At(i).ID
		off, bits := t.FieldAt(i)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%d\n", id, bits, off, byteSpan(off, bits), v.Get(id))
	}
	tw.Flush()

	data := v.Data()
	fmt.Fprintf(w, "\nRaw: %s\n", data)
	if data.IsWord() {
		fmt.Fprintf(w, "Word: %#x (%d bytes)\n", data.Word(), data.Size())
	}
}

func byteSpan(offset, bits uint32) string {
	first, last := offset/8, (offset+bits-1)/8
	if first == last {
		return strconv.Itoa(int(first))
	}
	return fmt.Sprintf("%d-%d", first, last)
}
