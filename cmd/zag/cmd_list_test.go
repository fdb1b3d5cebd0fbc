package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/fbkclanna/zag/internal/manifest"
	"github.com/fbkclanna/zag/internal/testutil"
	"gopkg.in/yaml.v3"
)

const listFixture = `{
  "dir": null,
  "deps": {
    "widget": {"repo": "https://example.com/acme/widget", "version": "1.2.3", "entry": "src/widget.zig"},
    "alpha": {"repo": "https://example.com/org/alpha", "version": "main", "entry": null}
  }
}`

func TestRunList_table(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteManifest(t, dir, listFixture)

	out, err := execute(t, "list", "--target-path", dir)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[1], "alpha") || !strings.HasPrefix(lines[2], "widget") {
		t.Errorf("rows not sorted by name:\n%s", out)
	}
	if !strings.Contains(lines[2], "src/widget.zig") {
		t.Errorf("entry missing: %q", lines[2])
	}
}

func TestRunList_empty(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteManifest(t, dir, testutil.EmptyManifest)

	out, err := execute(t, "ls", "--target-path", dir)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "No dependencies." {
		t.Errorf("output = %q", out)
	}
}

func TestRunList_json(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteManifest(t, dir, listFixture)

	out, err := execute(t, "list", "--target-path", dir, "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var got []listEntry
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].Name != "alpha" || got[0].Entry != nil {
		t.Errorf("entries = %+v", got)
	}
	if got[1].Entry == nil || *got[1].Entry != "src/widget.zig" {
		t.Errorf("widget entry = %v", got[1].Entry)
	}
}

func TestRunList_yaml(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteManifest(t, dir, listFixture)

	out, err := execute(t, "list", "--target-path", dir, "--format", "yaml")
	if err != nil {
		t.Fatal(err)
	}
	var got []listEntry
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, out)
	}
	if len(got) != 2 || got[1].Name != "widget" || got[1].Version != "1.2.3" {
		t.Errorf("entries = %+v", got)
	}
}

func TestRunList_unknownFormat(t *testing.T) {
	if _, err := execute(t, "list", "--target-path", t.TempDir(), "--format", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRunList_leavesNoLockFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteManifest(t, dir, listFixture)

	if _, err := execute(t, "list", "--target-path", dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(manifest.LockPath(path)); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("list created %s (stat err = %v)", manifest.LockPath(path), err)
	}
}
