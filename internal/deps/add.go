package deps

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fbkclanna/zag/internal/logging"
	"github.com/fbkclanna/zag/internal/manifest"
	"github.com/fbkclanna/zag/internal/project"
)

var (
	// ErrMissingVersion is returned when Add gets an empty version.
	ErrMissingVersion = errors.New("version is required")
	// ErrUnknownDependency is returned by Remove for a name not in the manifest.
	ErrUnknownDependency = errors.New("unknown dependency")
)

// AddOptions describes one dependency to register.
type AddOptions struct {
	Repo    string
	Version string
	// Entry is the dependency's entry file; empty means none.
	Entry string
	// Name overrides the name derived from Repo.
	Name string
	// TargetPath is the project root; empty means the working directory.
	TargetPath string
	// TargetEntry is the manifest path relative to TargetPath; empty means zag.json.
	TargetEntry string
	Logger      *slog.Logger
}

// Added is the outcome of a successful Add.
type Added struct {
	Name         string
	Dependency   manifest.Dependency
	ManifestPath string
}

// Add registers a dependency in the project manifest. The manifest is
// locked, loaded, extended and rewritten as a whole; nothing is written
// unless every earlier step succeeded.
func Add(opts AddOptions) (*Added, error) {
	log := logging.Or(opts.Logger)

	u, err := ParseRepository(opts.Repo)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Version) == "" {
		return nil, ErrMissingVersion
	}
	name := opts.Name
	if name == "" {
		if name, err = DeriveName(u); err != nil {
			return nil, err
		}
	}

	ctx, err := project.Resolve(opts.TargetPath, opts.TargetEntry)
	if err != nil {
		return nil, err
	}

	dep := manifest.Dependency{Repo: u.String(), Version: opts.Version}
	if opts.Entry != "" {
		entry := opts.Entry
		dep.Entry = &entry
	}

	err = update(ctx.ManifestPath, log, func(m *manifest.Manifest) error {
		return m.Insert(name, dep)
	})
	if err != nil {
		return nil, err
	}
	log.Debug("dependency added", "name", name, "repo", dep.Repo, "version", dep.Version, "manifest", ctx.ManifestPath)
	return &Added{Name: name, Dependency: dep, ManifestPath: ctx.ManifestPath}, nil
}

// RemoveOptions selects the dependency to drop.
type RemoveOptions struct {
	Name        string
	TargetPath  string
	TargetEntry string
	Logger      *slog.Logger
}

// Remove deletes a dependency from the project manifest and returns the
// record that was removed.
func Remove(opts RemoveOptions) (manifest.Dependency, error) {
	log := logging.Or(opts.Logger)
	ctx, err := project.Resolve(opts.TargetPath, opts.TargetEntry)
	if err != nil {
		return manifest.Dependency{}, err
	}

	var removed manifest.Dependency
	err = update(ctx.ManifestPath, log, func(m *manifest.Manifest) error {
		dep, ok := m.Get(opts.Name)
		if !ok {
			return fmt.Errorf("%w %q in %s%s", ErrUnknownDependency, opts.Name, ctx.ManifestPath,
				didYouMean(Suggest(opts.Name, m.Names())))
		}
		removed = dep
		m.Remove(opts.Name)
		return nil
	})
	if err != nil {
		return manifest.Dependency{}, err
	}
	log.Debug("dependency removed", "name", opts.Name, "manifest", ctx.ManifestPath)
	return removed, nil
}

// update runs one locked load-mutate-persist cycle on the manifest at path.
func update(path string, log *slog.Logger, mutate func(*manifest.Manifest) error) (err error) {
	s, err := manifest.Open(path)
	if err != nil {
		return err
	}
	log.Debug("manifest locked", "path", path, "lock", manifest.LockPath(path))
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	m, err := s.Load()
	if err != nil {
		return err
	}
	if err := mutate(m); err != nil {
		return err
	}
	return s.Persist(m)
}
