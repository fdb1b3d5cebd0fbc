package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// BuildZig is a minimal build script used by project fixtures.
const BuildZig = `const std = @import("std");

pub fn build(b: *std.Build) void {
    _ = b;
}
`

// EmptyManifest is the content zag init writes for a new project.
const EmptyManifest = `{"dir": null, "deps": {}}`

// WriteManifest writes content as zag.json in dir and returns its path.
func WriteManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "zag.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
