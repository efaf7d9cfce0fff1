package snapshot

import (
	"fmt"
	"os"
	"strings"

	"github.com/zeebo/bencode"
	"go.uber.org/zap"

	"github.com/wippyai/packedints/errors"
	"github.com/wippyai/packedints/packed"
	"github.com/wippyai/packedints/schema"
)

// file is the bencoded snapshot document. Fields duplicates the buffer
// contents in readable form and is cross-checked on decode.
type file struct {
	Schema string  `bencode:"schema"`
	Data   []byte  `bencode:"data"`
	Fields []entry `bencode:"fields"`
}

type entry struct {
	Name  string `bencode:"name"`
	Bits  int    `bencode:"bits"`
	Value int64  `bencode:"value"`
}

// Encode serializes v with its schema.
func Encode(v *packed.Value[string]) ([]byte, error) {
	if v == nil {
		return nil, errors.NilPointer(errors.PhaseSnapshot, nil, "*packed.Value[string]")
	}

	s := v.Type().Schema()
	doc := file{
		Schema: s.String(),
		Data:   v.Bytes(),
		Fields: make([]entry, s.Len()),
	}
	for i, f := range s.Fields() {
		if strings.ContainsAny(f.ID, ":,") || strings.TrimSpace(f.ID) != f.ID {
			return nil, errors.New(errors.PhaseSnapshot, errors.KindUnsupported).
				Field(f.ID).
				Detail("field name cannot be written as schema text").
				Build()
		}
		doc.Fields[i] = entry{Name: f.ID, Bits: int(f.Bits), Value: int64(v.Get(f.ID))}
	}

	out, err := bencode.EncodeBytes(doc)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSnapshot, errors.KindInvalidData, err, "bencode")
	}
	return out, nil
}

// Decode rebuilds a value from Encode output. The schema is re-validated,
// the buffer must match its size and padding, and the field list must agree
// with the buffer.
func Decode(b []byte) (*packed.Value[string], error) {
	var doc file
	if err := bencode.DecodeBytes(b, &doc); err != nil {
		return nil, errors.Wrap(errors.PhaseSnapshot, errors.KindInvalidData, err, "bencode")
	}

	s, err := schema.Parse(doc.Schema)
	if err != nil {
		return nil, err
	}
	v, err := packed.NewType(s).FromBytes(doc.Data)
	if err != nil {
		return nil, err
	}

	if len(doc.Fields) != s.Len() {
		return nil, errors.InvalidData(errors.PhaseSnapshot, nil,
			fmt.Sprintf("%d field entries for %d schema fields", len(doc.Fields), s.Len()))
	}
	for i, e := range doc.Fields {
		f := s.At(i)
		if e.Name != f.ID || e.Bits != int(f.Bits) {
			return nil, errors.InvalidData(errors.PhaseSnapshot, []string{e.Name},
				fmt.Sprintf("entry %d is %s:%d, schema has %s:%d", i, e.Name, e.Bits, f.ID, f.Bits))
		}
		if got := int64(v.Get(f.ID)); got != e.Value {
			return nil, errors.New(errors.PhaseSnapshot, errors.KindInvalidData).
				Field(f.ID).
				Value(e.Value).
				Detail("data holds %d", got).
				Build()
		}
	}
	return v, nil
}

// Save writes the snapshot of v to path.
func Save(path string, v *packed.Value[string]) error {
	b, err := Encode(v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Wrap(errors.PhaseSnapshot, errors.KindInvalidData, err, "write "+path)
	}
	Logger().Debug("saved snapshot",
		zap.String("path", path),
		zap.Int("bytes", len(b)))
	return nil
}

// Load reads a snapshot written by Save.
func Load(path string) (*packed.Value[string], error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSnapshot, errors.KindInvalidData, err, "read "+path)
	}
	v, err := Decode(b)
	if err != nil {
		return nil, err
	}
	Logger().Debug("loaded snapshot",
		zap.String("path", path),
		zap.String("schema", v.Type().Schema().String()))
	return v, nil
}
