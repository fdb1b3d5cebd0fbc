//go:build !(darwin || dragonfly || freebsd || illumos || linux || netbsd || openbsd || windows)

package lock

import (
	"errors"
	"os"
)

func lockFile(*os.File, bool) error {
	return errors.ErrUnsupported
}

func unlockFile(*os.File) error {
	return nil
}
