package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// CreateBareRepo creates a bare git repository that looks like the zag tool
// repository (a main.zig at the root and one commit). Returns the path to it.
func CreateBareRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bare := filepath.Join(dir, "zag.git")

	// Create a working repo first, then clone it bare.
	work := filepath.Join(dir, "work")
	run(t, dir, "git", "init", "-b", "main", work)
	configIdentity(t, work)

	writeFile(t, filepath.Join(work, "main.zig"), "pub const version = \"0.0.0\";\n")
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "initial commit")

	run(t, dir, "git", "clone", "--bare", work, bare)
	return bare
}

// CreateProject creates a git repository with a committed build.zig,
// the shape zag init expects. Returns the project directory.
func CreateProject(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "project")
	run(t, filepath.Dir(dir), "git", "init", "-b", "main", dir)
	configIdentity(t, dir)

	writeFile(t, filepath.Join(dir, "build.zig"), BuildZig)
	run(t, dir, "git", "add", ".")
	run(t, dir, "git", "commit", "-m", "initial commit")
	return dir
}

// AllowFileProtocol lets git clone local paths as submodules
// (blocked by default since git 2.38.1) for the rest of the test.
func AllowFileProtocol(t *testing.T) {
	t.Helper()
	t.Setenv("GIT_CONFIG_COUNT", "1")
	t.Setenv("GIT_CONFIG_KEY_0", "protocol.file.allow")
	t.Setenv("GIT_CONFIG_VALUE_0", "always")
}

func configIdentity(t *testing.T, dir string) {
	t.Helper()
	run(t, dir, "git", "config", "user.email", "test@example.com")
	run(t, dir, "git", "config", "user.name", "Test")
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}
