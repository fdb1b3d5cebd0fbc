package manifest

import (
	"fmt"
	"sort"
)

// DefaultFile is the manifest filename looked up in a project root.
const DefaultFile = "zag.json"

// Manifest represents the zag.json file of a project.
type Manifest struct {
	Dir  *string               `json:"dir"`
	Deps map[string]Dependency `json:"deps"`
}

// Dependency is a single entry under "deps".
type Dependency struct {
	Repo    string  `json:"repo"`
	Version string  `json:"version"`
	Entry   *string `json:"entry"`
}

// New returns an empty manifest: no install dir and no dependencies.
func New() *Manifest {
	return &Manifest{Deps: map[string]Dependency{}}
}

// Insert adds dep under name. An existing entry is never replaced;
// the caller gets ErrDuplicateDependency and the manifest is left as it was.
func (m *Manifest) Insert(name string, dep Dependency) error {
	if name == "" {
		return fmt.Errorf("dependency name must not be empty")
	}
	if m.Deps == nil {
		m.Deps = map[string]Dependency{}
	}
	if prev, ok := m.Deps[name]; ok {
		return fmt.Errorf("%w: %q (already at %s %s)", ErrDuplicateDependency, name, prev.Repo, prev.Version)
	}
	m.Deps[name] = dep
	return nil
}

// Remove deletes name and reports whether it was present.
func (m *Manifest) Remove(name string) bool {
	if _, ok := m.Deps[name]; !ok {
		return false
	}
	delete(m.Deps, name)
	return true
}

// Get returns the dependency registered under name.
func (m *Manifest) Get(name string) (Dependency, bool) {
	dep, ok := m.Deps[name]
	return dep, ok
}

// Names returns the dependency names in lexical order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Deps))
	for name := range m.Deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
