package config

import (
	"os"
	"path/filepath"
)

const lockFileName = "config.lock"

// FileLock serializes config writers across kolam processes.
// It locks a sibling lock file rather than the config file itself.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a new FileLock for the given path.
// The lock file will be created in the same directory as the given path.
func NewFileLock(path string) *FileLock {
	lockPath := filepath.Join(filepath.Dir(path), lockFileName)
	return &FileLock{
		path: lockPath,
	}
}
