package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "NAME", "VERSION", "ENTRY")
	tbl.Row("widget", "1.2.3", "src/widget.zig")
	tbl.Row("foo-lib", "main")
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header + 2 rows), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header = %q", lines[0])
	}
	if fields := strings.Fields(lines[2]); len(fields) != 3 || fields[2] != Placeholder {
		t.Errorf("short row should be padded with %q: %q", Placeholder, lines[2])
	}
	if strings.Index(lines[1], "1.2.3") != strings.Index(lines[0], "VERSION") {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}

func TestTable_emptyCell(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "A", "B")
	tbl.Row("", "x")
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if fields := strings.Fields(lines[1]); fields[0] != Placeholder {
		t.Errorf("empty cell = %q, want %q", fields[0], Placeholder)
	}
}

func TestTable_headerOnly(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "A", "B")
	if err := tbl.Flush(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("expected 1 line (header only), got %d", len(lines))
	}
}

func TestOptional(t *testing.T) {
	s := "src"
	if Optional(&s) != "src" || Optional(nil) != "" {
		t.Error("Optional mismatch")
	}
}
