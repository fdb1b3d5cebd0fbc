package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fbkclanna/zag/internal/fileutil"
	"github.com/fbkclanna/zag/internal/lock"
)

const defaultPerm fs.FileMode = 0o644

var errClosed = errors.New("store is closed")

// Store owns the load-mutate-persist cycle for one manifest file.
// Open takes an exclusive advisory lock that is held until Close, so two
// processes running Store cycles on the same file never interleave.
type Store struct {
	path string
	lk   *lock.Lock
}

// LockPath returns the sidecar lock file used for the manifest at path.
func LockPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".lock")
}

// Open locks the manifest at path for a read-modify-write cycle.
func Open(path string) (*Store, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}
	lk, err := lock.Acquire(LockPath(path))
	if err != nil {
		return nil, &Error{Kind: ErrIO, Path: path, Err: err}
	}
	// The file may have been removed while we waited for the lock.
	if err := checkFile(path); err != nil {
		_ = lk.Release()
		return nil, err
	}
	return &Store{path: path, lk: lk}, nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Error{Kind: ErrNotFound, Path: path, Err: err}
		}
		return &Error{Kind: ErrIO, Path: path, Err: err}
	}
	if info.IsDir() {
		return &Error{Kind: ErrIO, Path: path, Err: errors.New("is a directory")}
	}
	return nil
}

// Load reads and decodes the whole manifest.
func (s *Store) Load() (*Manifest, error) {
	if s.lk == nil {
		return nil, &Error{Kind: ErrIO, Path: s.path, Err: errClosed}
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &Error{Kind: ErrIO, Path: s.path, Err: err}
	}
	m, err := decode(data)
	if err != nil {
		return nil, &Error{Kind: ErrMalformed, Path: s.path, Err: err}
	}
	return m, nil
}

// Persist replaces the manifest with the encoding of m. The new content is
// written to a temporary file and renamed over the old one, so readers and
// crashes see either the previous manifest or the new one, never a mix.
func (s *Store) Persist(m *Manifest) error {
	if s.lk == nil {
		return &Error{Kind: ErrIO, Path: s.path, Err: errClosed}
	}
	data, err := Encode(m)
	if err != nil {
		return &Error{Kind: ErrIO, Path: s.path, Err: err}
	}
	perm := defaultPerm
	if info, err := os.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := fileutil.WriteAtomic(s.path, data, perm); err != nil {
		return &Error{Kind: ErrIO, Path: s.path, Err: err}
	}
	return nil
}

// Close releases the lock. It is safe to call more than once.
func (s *Store) Close() error {
	if s.lk == nil {
		return nil
	}
	err := s.lk.Release()
	s.lk = nil
	if err != nil {
		return &Error{Kind: ErrIO, Path: s.path, Err: err}
	}
	return nil
}

// Load reads a manifest without taking the store lock. Persist replaces
// the file by rename, so Load sees one complete version even while a
// writer is active. Read-only commands use it so they never create the
// lock file.
func Load(path string) (*Manifest, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // manifest path from project root
	if err != nil {
		return nil, &Error{Kind: ErrIO, Path: path, Err: err}
	}
	m, err := decode(data)
	if err != nil {
		return nil, &Error{Kind: ErrMalformed, Path: path, Err: err}
	}
	return m, nil
}

// Busy reports whether another process holds the store lock for the
// manifest at path. A missing lock file means nobody ever locked it.
func Busy(path string) (bool, error) {
	lp := LockPath(path)
	if !fileutil.Exists(lp) {
		return false, nil
	}
	lk, err := lock.TryAcquire(lp)
	if errors.Is(err, lock.ErrLocked) {
		return true, nil
	}
	if err != nil {
		return false, &Error{Kind: ErrIO, Path: path, Err: err}
	}
	if err := lk.Release(); err != nil {
		return false, &Error{Kind: ErrIO, Path: path, Err: err}
	}
	return false, nil
}

// Create writes m to a new file at path. It fails with ErrExists rather
// than touching a manifest that is already there.
func Create(path string, m *Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return &Error{Kind: ErrIO, Path: path, Err: err}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, defaultPerm) //nolint:gosec // manifest needs to be readable
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &Error{Kind: ErrExists, Path: path}
		}
		return &Error{Kind: ErrIO, Path: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return &Error{Kind: ErrIO, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return &Error{Kind: ErrIO, Path: path, Err: err}
	}
	return nil
}
