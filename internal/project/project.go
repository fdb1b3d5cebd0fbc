package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/zag/internal/manifest"
)

// Context holds the resolved paths for one command invocation.
type Context struct {
	Root         string
	ManifestPath string
}

// ResolveRoot returns the absolute project root. An empty target means the
// current working directory.
func ResolveRoot(target string) (string, error) {
	if target == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		return wd, nil
	}
	root, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolving project root: %w", err)
	}
	return root, nil
}

// Resolve builds a Context for target. manifestFile is taken relative to the
// root; empty means manifest.DefaultFile. An absolute manifestFile is used as is.
func Resolve(target, manifestFile string) (*Context, error) {
	root, err := ResolveRoot(target)
	if err != nil {
		return nil, err
	}
	return &Context{Root: root, ManifestPath: Join(root, manifestFile, manifest.DefaultFile)}, nil
}

// Join resolves rel against root, falling back to def when rel is empty.
func Join(root, rel, def string) string {
	if rel == "" {
		rel = def
	}
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, rel)
}

// Rel returns path relative to the root when possible, for display.
func (c *Context) Rel(path string) string {
	if rel, err := filepath.Rel(c.Root, path); err == nil {
		return rel
	}
	return path
}
