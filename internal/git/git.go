package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrSubprocessFailed is matched by every error coming from a git
// invocation that did not start or did not exit zero.
var ErrSubprocessFailed = errors.New("git command failed")

// Runner executes git with args in dir and returns its stdout.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExitError reports a git invocation that exited non-zero.
type ExitError struct {
	Args   []string
	Dir    string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("git %s (in %s): exit status %d", strings.Join(e.Args, " "), e.Dir, e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Is makes errors.Is(err, ErrSubprocessFailed) hold for exit errors.
func (e *ExitError) Is(target error) bool {
	return target == ErrSubprocessFailed
}

// CLI runs the git binary.
type CLI struct {
	// Binary is the executable name or path. Empty means "git".
	Binary string
	// Env is appended to the process environment.
	Env    []string
	Logger *slog.Logger
}

func (c *CLI) binary() string {
	if c.Binary == "" {
		return "git"
	}
	return c.Binary
}

// Run executes git. Stdout is returned; stderr is captured into the error.
func (c *CLI) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	if c.Logger != nil {
		c.Logger.Debug("running git", "dir", dir, "args", args)
	}
	cmd := exec.CommandContext(ctx, c.binary(), args...) //nolint:gosec // args are built by this package
	cmd.Dir = dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, &ExitError{
				Args:   args,
				Dir:    dir,
				Code:   ee.ExitCode(),
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}
		return nil, fmt.Errorf("%w: git %s: %w", ErrSubprocessFailed, strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}

// SubmoduleAdd registers url as a submodule of the repository at dir.
// When path is empty git derives it from the URL.
func SubmoduleAdd(ctx context.Context, r Runner, dir, url, path string) error {
	args := []string{"submodule", "add", url}
	if path != "" {
		args = append(args, filepath.ToSlash(path))
	}
	if _, err := r.Run(ctx, dir, args...); err != nil {
		return fmt.Errorf("adding submodule %s: %w", url, err)
	}
	return nil
}

// SubmoduleURL returns the URL recorded in .gitmodules for the submodule at
// path, or "" when no such submodule is declared.
func SubmoduleURL(ctx context.Context, r Runner, dir, path string) (string, error) {
	if _, err := os.Stat(filepath.Join(dir, ".gitmodules")); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	key := "submodule." + filepath.ToSlash(path) + ".url"
	out, err := r.Run(ctx, dir, "config", "--file", ".gitmodules", "--get", key)
	if err != nil {
		// git config exits 1 when the key is missing.
		var ee *ExitError
		if errors.As(err, &ee) && ee.Code == 1 {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Version returns the output of "git version".
func Version(ctx context.Context, r Runner) (string, error) {
	out, err := r.Run(ctx, ".", "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Reachable reports whether url answers git ls-remote.
func Reachable(ctx context.Context, r Runner, url string) bool {
	_, err := r.Run(ctx, ".", "ls-remote", "--exit-code", "--quiet", url)
	return err == nil
}

// IsRepo returns true if dir is inside a git work tree.
func IsRepo(ctx context.Context, r Runner, dir string) bool {
	out, err := r.Run(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// IsInstalled returns true if the binary is available on the system PATH.
func IsInstalled(binary string) bool {
	if binary == "" {
		binary = "git"
	}
	_, err := exec.LookPath(binary)
	return err == nil
}
