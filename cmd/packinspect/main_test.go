package main

import (
	"bytes"
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/packedints/errors"
	"github.com/wippyai/packedints/snapshot"
)

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		in      string
		want    []assignment
		wantErr bool
	}{
		{"", nil, false},
		{"a=1", []assignment{{"a", 1}}, false},
		{" a = 0x1f , b=0b101,c=4294967296", []assignment{{"a", 31}, {"b", 5}, {"c", 1 << 32}}, false},
		{"a", nil, true},
		{"=3", nil, true},
		{"a=-1", nil, true},
		{"a=zz", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAssignments(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestApply(t *testing.T) {
	v, err := open("A:2,B:4", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	ignored, err := apply(v, []assignment{{"A", 7}, {"B", 9}, {"Z", 1}}, false)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(ignored) != 1 || ignored[0] != "Z" {
		t.Errorf("ignored = %v, want [Z]", ignored)
	}
	if got := v.Data().Word(); got != 39 {
		t.Errorf("word = %d, want 39", got)
	}

	strictTests := []struct {
		name string
		a    assignment
		kind errors.Kind
	}{
		{"unknown", assignment{"Z", 1}, errors.KindFieldUnknown},
		{"overflow", assignment{"B", 16}, errors.KindOverflow},
		{"beyond 32 bits", assignment{"B", 1 << 33}, errors.KindOverflow},
	}
	for _, tt := range strictTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := apply(v, []assignment{tt.a}, true)
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != tt.kind {
				t.Errorf("apply strict = %v, want %s", err, tt.kind)
			}
		})
	}
	if got := v.Get("B"); got != 9 {
		t.Errorf("B changed by rejected strict set: %d", got)
	}
}

func TestWriteReport(t *testing.T) {
	v, err := open("a:9,b:9,c:9", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	v.Set("a", 511)

	var buf bytes.Buffer
	writeReport(&buf, v)
	out := buf.String()

	for _, want := range []string{
		"Bits: 27",
		"Bytes: 4",
		"Raw: ff010000",
		"Word: 0x1ff (4 bytes)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	var row string
	for _, l := range lines {
		if strings.HasPrefix(l, "b ") {
			row = l
		}
	}
	if fields := strings.Fields(row); len(fields) != 5 || fields[2] != "9" || fields[3] != "1-2" {
		t.Errorf("row for b = %q", row)
	}
}

func TestByteSpan(t *testing.T) {
	tests := []struct {
		offset, bits uint32
		want         string
	}{
		{0, 8, "0"},
		{2, 4, "0"},
		{7, 2, "0-1"},
		{9, 9, "1-2"},
		{3, 32, "0-4"},
	}
	for _, tt := range tests {
		if got := byteSpan(tt.offset, tt.bits); got != tt.want {
			t.Errorf("byteSpan(%d, %d) = %q, want %q", tt.offset, tt.bits, got, tt.want)
		}
	}
}

func TestOpen_Snapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.snap")
	v, err := open("mode:3,level:5", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	v.Set("level", 17)
	if err := snapshot.Save(path, v); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := open("", path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	if got.Get("level") != 17 {
		t.Errorf("level = %d, want 17", got.Get("level"))
	}

	if _, err := open("mode:0", ""); err == nil {
		t.Error("open accepted a zero-width field")
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInteractiveModel(t *testing.T) {
	v, err := open("A:2,B:4", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	m := newInteractiveModel(v, "", true)

	m.Update(key("down"))
	m.Update(key("down"))
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}

	m.Update(key("enter"))
	if m.state != stateEditValue {
		t.Fatal("enter should start editing")
	}
	m.input.SetValue("9")
	m.Update(key("enter"))
	if m.state != stateSelectField || v.Get("B") != 9 {
		t.Errorf("after commit: state %d, B = %d", m.state, v.Get("B"))
	}

	m.Update(key("enter"))
	m.input.SetValue("16")
	m.Update(key("enter"))
	if m.err == nil || m.state != stateEditValue {
		t.Errorf("strict overflow should keep editing with an error, err = %v", m.err)
	}
	m.Update(key("esc"))

	m.Update(key("s"))
	if m.err == nil {
		t.Error("save without a path should report an error")
	}

	m.Update(key("r"))
	if v.Get("B") != 0 {
		t.Errorf("reset left B = %d", v.Get("B"))
	}

	if view := m.View(); !strings.Contains(view, "A:2,B:4") {
		t.Errorf("view missing schema:\n%s", view)
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}
