// Package fsutil holds small filesystem helpers shared by the publish pipeline.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
)

// Exists reports whether a filesystem entry currently exists at path.
// A merely-missing path is (false, nil); any other stat failure (permission,
// I/O) is a genuine error and propagates instead of being mapped to "absent".
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
