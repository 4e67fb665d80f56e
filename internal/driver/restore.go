package driver

import (
	"errors"
	"fmt"
	"os"
)

// Restore copies the backup of path back over path.
func Restore(path, suffix string) (string, error) {
	backup := BackupPath(path, suffix)
	if _, err := os.Stat(backup); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return backup, fmt.Errorf("%w: %s", ErrNoBackup, backup)
		}
		return backup, fmt.Errorf("%w %s: %w", ErrRead, backup, err)
	}
	if err := copyFile(backup, path); err != nil {
		return backup, fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	return backup, nil
}
