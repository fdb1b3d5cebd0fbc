package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgress_steps(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 3)

	p.Done("submodule", "https://example.com/zag -> zag")
	p.Skip("build-script", "import already present")
	p.Done("manifest", "")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	for i, want := range []string{
		"[1/3] ",
		"[2/3] ",
		"[3/3] ",
	} {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want)
		}
	}
	if !strings.Contains(lines[0], "https://example.com/zag -> zag") {
		t.Errorf("missing detail: %q", lines[0])
	}
	if !strings.Contains(lines[1], "import already present") || !strings.Contains(lines[1], "skipped") {
		t.Errorf("missing skip reason: %q", lines[1])
	}
	if strings.Contains(lines[2], ":") {
		t.Errorf("empty detail should not add a separator: %q", lines[2])
	}
}

func TestProgress_Log(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 1)

	p.Log("hello %s", "world")

	if out := buf.String(); out != "hello world\n" {
		t.Errorf("Log output = %q", out)
	}
}
