package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Decode parses zag.json content. "deps" is required; "dir" and "entry"
// may be absent or null. Unknown keys are ignored. Keys match exactly:
// "DEPS" or "Repo" are unknown keys, not spellings of the known ones.
func Decode(data []byte) (*Manifest, error) {
	m, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return m, nil
}

// object is a JSON object with its values left undecoded. Decoding through
// it keeps key matching case-sensitive, unlike struct fields.
type object map[string]json.RawMessage

// field decodes obj[key] into dst. An absent key leaves dst untouched and
// null leaves pointers and maps nil.
func (o object) field(key string, dst any) error {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

func decode(data []byte) (*Manifest, error) {
	var top object
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}

	var dir *string
	if err := top.field("dir", &dir); err != nil {
		return nil, err
	}
	var deps map[string]object
	if err := top.field("deps", &deps); err != nil {
		return nil, err
	}
	if deps == nil {
		return nil, errors.New(`missing field "deps"`)
	}

	m := &Manifest{Dir: dir, Deps: make(map[string]Dependency, len(deps))}
	for name, rec := range deps {
		d, err := decodeDependency(rec)
		if err != nil {
			return nil, fmt.Errorf("deps.%s: %w", name, err)
		}
		m.Deps[name] = d
	}
	return m, nil
}

func decodeDependency(rec object) (Dependency, error) {
	var repo, version, entry *string
	for _, f := range []struct {
		key string
		dst **string
	}{
		{"repo", &repo},
		{"version", &version},
		{"entry", &entry},
	} {
		if err := rec.field(f.key, f.dst); err != nil {
			return Dependency{}, err
		}
	}
	if repo == nil {
		return Dependency{}, errors.New(`missing field "repo"`)
	}
	if version == nil {
		return Dependency{}, errors.New(`missing field "version"`)
	}
	return Dependency{Repo: *repo, Version: *version, Entry: entry}, nil
}

// Encode serializes m as indented JSON with a trailing newline.
// Keys under "deps" come out sorted, so the output is deterministic.
func Encode(m *Manifest) ([]byte, error) {
	out := *m
	if out.Deps == nil {
		out.Deps = map[string]Dependency{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate reports entries that decode fine but point outside the project.
func Validate(m *Manifest) error {
	if m.Dir != nil {
		if err := validatePath(*m.Dir, "dir"); err != nil {
			return err
		}
	}
	for _, name := range m.Names() {
		d := m.Deps[name]
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("manifest: dependency with empty name")
		}
		if d.Repo == "" {
			return fmt.Errorf("manifest: deps.%s.repo is required", name)
		}
		if d.Version == "" {
			return fmt.Errorf("manifest: deps.%s.version is required", name)
		}
		if d.Entry != nil {
			if err := validatePath(*d.Entry, "deps."+name+".entry"); err != nil {
				return err
			}
		}
	}
	return nil
}

// validatePath ensures a path is relative and does not escape the project.
func validatePath(p, label string) error {
	if filepath.IsAbs(p) {
		return fmt.Errorf("manifest: %s: absolute path is not allowed: %s", label, p)
	}
	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("manifest: %s: path must not escape the project (contains ..): %s", label, p)
	}
	return nil
}
