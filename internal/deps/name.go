package deps

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrInvalidRepository is returned when the repository is not an absolute URL.
	ErrInvalidRepository = errors.New("invalid repository URL")
	// ErrNameDerivation is returned when no name was given and the URL has
	// no usable last path segment.
	ErrNameDerivation = errors.New("cannot derive dependency name")
)

// ParseRepository parses raw as an absolute URL.
func ParseRepository(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrInvalidRepository)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q has no scheme", ErrInvalidRepository, raw)
	}
	return u, nil
}

// DeriveName returns the last path segment of u, e.g. "foo-lib" for
// https://example.com/org/foo-lib. URLs without a hierarchical path
// (mailto:x) and paths whose last segment is empty fail.
func DeriveName(u *url.URL) (string, error) {
	if u.Opaque != "" {
		return "", fmt.Errorf("%w: %s has no path segments", ErrNameDerivation, u)
	}
	segments := strings.Split(strings.TrimPrefix(u.EscapedPath(), "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return "", fmt.Errorf("%w: last path segment of %s is empty", ErrNameDerivation, u)
	}
	if name, err := url.PathUnescape(last); err == nil && name != "" && !strings.Contains(name, "/") {
		return name, nil
	}
	return last, nil
}
