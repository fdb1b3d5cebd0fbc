package manifest

import (
	"errors"
	"fmt"

	"github.com/fbkclanna/zag/internal/fileutil"
)

var (
	// ErrNotFound is returned when the manifest file does not exist.
	ErrNotFound = errors.New("manifest not found")
	// ErrMalformed is returned when the manifest content does not match the expected shape.
	ErrMalformed = errors.New("malformed manifest")
	// ErrDuplicateDependency is returned by Insert when the name is already taken.
	ErrDuplicateDependency = errors.New("duplicate dependency")
	// ErrExists is returned by Create when a manifest is already present.
	ErrExists = errors.New("manifest already exists")
	// ErrIO covers filesystem failures not described by the other kinds.
	ErrIO = fileutil.ErrIO
)

// Error ties a failure kind to the manifest path it happened on.
// errors.Is matches both Kind and the wrapped cause.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
