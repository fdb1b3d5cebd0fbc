package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrIO marks filesystem failures. Callers wrap it next to the OS error so
// both errors.Is(err, ErrIO) and errors.Is(err, fs.ErrNotExist) hold.
var ErrIO = errors.New("i/o error")

// WriteAtomic writes data to a temporary file next to path and renames it
// into place. On any failure path is left untouched and the temp file is removed.
func WriteAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, "."+base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		committed = true
		return err
	}
	committed = true
	return nil
}

// Exists reports whether path exists. Errors other than "not exist" count as existing.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
