package shell

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/wishshell/wish/core/sys"
)

// findExecutable reports whether the file at path exists and is
// executable by someone.
func findExecutable(vos sys.OS, file string) error {
	d, err := vos.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return sys.ErrNotFound
	case err != nil:
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the registry's
// directories, in order. The first directory holding an executable
// match wins and later directories are never consulted; directories
// that error or hold a non-executable match are skipped. The name is
// always joined to a registry directory, so names containing a slash
// get no special treatment.
func LookPath(vos sys.OS, paths *PathList, file string) (string, error) {
	for _, dir := range paths.Dirs() {
		path := filepath.Join(dir, file)
		if err := findExecutable(vos, path); err == nil {
			return path, nil
		}
	}
	return "", sys.ErrNotFound
}
