package driver

import "errors"

// Hard failures. Anchor misses never surface here.
var (
	ErrRead     = errors.New("read bundle")
	ErrBackup   = errors.New("backup bundle")
	ErrWrite    = errors.New("write bundle")
	ErrNoBackup = errors.New("no backup found")
)
