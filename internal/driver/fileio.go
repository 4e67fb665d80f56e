package driver

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeAtomic replaces path with data through a temp file in the same
// directory, so the target is never observed half written.
func writeAtomic(path string, data []byte, mode os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".anchorpatch-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp) //nolint:errcheck
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close() //nolint:errcheck
		return err
	}
	if err = f.Chmod(mode); err != nil {
		_ = f.Close() //nolint:errcheck
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, path)
}

// copyFile copies src over dst keeping src's permissions.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return writeAtomic(dst, data, info.Mode().Perm())
}
