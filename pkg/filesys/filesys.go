// Package filesys provides the directory-creation helper the record
// store needs to stand up its data directory on first write.
package filesys

import (
	"errors"
	"os"
)

var ErrIsNotDir = errors.New("path isn't a directory")

// CreateDir creates a directory at the specified path with the given permissions.
//
// If the directory already exists:
//   - If 'force' is true, it proceeds without error.
//   - If 'force' is false, it returns an error.
//
// It also returns an error if the existing path is a file (not a directory).
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	// Get file information for the given path.
	stat, err := os.Stat(dirPath)
	// If 'force' is false and the path exists, report that it already
	// exists; any other stat failure is returned as is.
	if !force {
		if err == nil {
			return os.ErrExist
		}
		if !os.IsNotExist(err) {
			return err
		}
	}

	// If the path exists and it's not a directory, return an error.
	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	// Create all necessary parent directories if they don't exist, with the specified permissions.
	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	// Change the permissions of the newly created directory to 0755 (rwxr-xr-x).
	return os.Chmod(dirPath, 0755)
}
