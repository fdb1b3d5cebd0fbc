package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fbkclanna/zag/internal/testutil"
)

type recordingRunner struct {
	calls [][]string
	out   []byte
	err   error
}

func (r *recordingRunner) Run(_ context.Context, dir string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{dir}, args...))
	return r.out, r.err
}

func TestSubmoduleAdd_args(t *testing.T) {
	r := &recordingRunner{}
	if err := SubmoduleAdd(context.Background(), r, "/proj", "https://github.com/Aandreba/zag", "zag"); err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"/proj", "submodule", "add", "https://github.com/Aandreba/zag", "zag"}}
	if !reflect.DeepEqual(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
}

func TestSubmoduleAdd_noPath(t *testing.T) {
	r := &recordingRunner{}
	if err := SubmoduleAdd(context.Background(), r, "/proj", "https://x/zag", ""); err != nil {
		t.Fatal(err)
	}
	if got := r.calls[0]; len(got) != 4 {
		t.Errorf("expected no path argument, got %v", got)
	}
}

func TestSubmoduleAdd_propagatesExitError(t *testing.T) {
	r := &recordingRunner{err: &ExitError{Args: []string{"submodule", "add"}, Dir: "/proj", Code: 128}}
	err := SubmoduleAdd(context.Background(), r, "/proj", "https://x/zag", "zag")
	if !errors.Is(err, ErrSubprocessFailed) {
		t.Fatalf("err = %v, want ErrSubprocessFailed", err)
	}
	var ee *ExitError
	if !errors.As(err, &ee) || ee.Code != 128 {
		t.Errorf("expected ExitError with code 128, got %v", err)
	}
}

func TestSubmoduleURL_missingKey(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitmodules"), nil, 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	r := &recordingRunner{err: &ExitError{Code: 1}}
	url, err := SubmoduleURL(context.Background(), r, dir, "zag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "" {
		t.Errorf("url = %q, want empty", url)
	}
	if len(r.calls) != 1 {
		t.Errorf("expected one git call, got %v", r.calls)
	}
}

func TestSubmoduleURL_noGitmodules(t *testing.T) {
	r := &recordingRunner{}
	url, err := SubmoduleURL(context.Background(), r, t.TempDir(), "zag")
	if err != nil || url != "" {
		t.Fatalf("SubmoduleURL = %q, %v", url, err)
	}
	if len(r.calls) != 0 {
		t.Errorf("git should not run without .gitmodules: %v", r.calls)
	}
}

func TestCLI_exitError(t *testing.T) {
	dir := t.TempDir()
	c := &CLI{}
	_, err := c.Run(context.Background(), dir, "rev-parse", "--verify", "refs/heads/does-not-exist")
	if !errors.Is(err, ErrSubprocessFailed) {
		t.Fatalf("err = %v, want ErrSubprocessFailed", err)
	}
	var ee *ExitError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *ExitError, got %T", err)
	}
	if ee.Code == 0 || ee.Dir != dir {
		t.Errorf("unexpected ExitError: %+v", ee)
	}
}

func TestCLI_missingBinary(t *testing.T) {
	c := &CLI{Binary: "definitely-not-a-git-binary"}
	_, err := c.Run(context.Background(), t.TempDir(), "version")
	if !errors.Is(err, ErrSubprocessFailed) {
		t.Fatalf("err = %v, want ErrSubprocessFailed", err)
	}
}

func TestSubmoduleAdd_realRepo(t *testing.T) {
	testutil.AllowFileProtocol(t)
	tool := testutil.CreateBareRepo(t)
	proj := testutil.CreateProject(t)
	c := &CLI{}
	ctx := context.Background()

	if err := SubmoduleAdd(ctx, c, proj, tool, "zag"); err != nil {
		t.Fatalf("SubmoduleAdd: %v", err)
	}
	if _, err := os.Stat(filepath.Join(proj, "zag", "main.zig")); err != nil {
		t.Errorf("submodule checkout missing main.zig: %v", err)
	}

	url, err := SubmoduleURL(ctx, c, proj, "zag")
	if err != nil {
		t.Fatal(err)
	}
	if url != tool {
		t.Errorf("SubmoduleURL = %q, want %q", url, tool)
	}
}

func TestSubmoduleAdd_notARepo(t *testing.T) {
	tool := testutil.CreateBareRepo(t)
	err := SubmoduleAdd(context.Background(), &CLI{}, t.TempDir(), tool, "zag")
	if !errors.Is(err, ErrSubprocessFailed) {
		t.Fatalf("err = %v, want ErrSubprocessFailed", err)
	}
}

func TestIsRepo(t *testing.T) {
	ctx := context.Background()
	if IsRepo(ctx, &CLI{}, t.TempDir()) {
		t.Error("plain temp dir should not be a repo")
	}
	if !IsRepo(ctx, &CLI{}, testutil.CreateProject(t)) {
		t.Error("project dir should be a repo")
	}
}

func TestReachable(t *testing.T) {
	ctx := context.Background()
	if !Reachable(ctx, &CLI{}, testutil.CreateBareRepo(t)) {
		t.Error("bare repo should be reachable")
	}
	if Reachable(ctx, &CLI{}, "/nonexistent/repo.git") {
		t.Error("nonexistent repo should not be reachable")
	}
}

func TestVersion(t *testing.T) {
	v, err := Version(context.Background(), &CLI{})
	if err != nil {
		t.Fatal(err)
	}
	if v == "" {
		t.Error("expected non-empty git version")
	}
}

func TestIsInstalled(t *testing.T) {
	if !IsInstalled("") {
		t.Error("git should be installed in the test environment")
	}
	if IsInstalled("definitely-not-a-git-binary") {
		t.Error("bogus binary should not be found")
	}
}
