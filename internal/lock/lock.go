package lock

import (
	"errors"
	"fmt"
	"os"
)

// ErrLocked is returned by TryAcquire when another holder has the lock.
var ErrLocked = errors.New("lock is held by another process")

// Lock is a held lock on a file path.
type Lock struct {
	f *os.File
}

// Acquire blocks until the exclusive lock on path is obtained.
// The lock file is created if missing and is left in place on release.
func Acquire(path string) (*Lock, error) {
	return acquire(path, true)
}

// TryAcquire is like Acquire but returns ErrLocked instead of waiting.
func TryAcquire(path string) (*Lock, error) {
	return acquire(path, false)
}

func acquire(path string, wait bool) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644) //nolint:gosec // lock file is shared by all users of the project
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}
	if err := lockFile(f, wait); err != nil {
		_ = f.Close()
		if errors.Is(err, ErrLocked) {
			return nil, err
		}
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	return &Lock{f: f}, nil
}

// Release unlocks and closes the lock file.
func (l *Lock) Release() error {
	if l.f == nil {
		return nil
	}
	err := unlockFile(l.f)
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	l.f = nil
	return err
}
