package gnuplot

import (
	"fmt"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteFile writes the script to path atomically: the script goes to a temporary
// file in the same directory, which is synced and renamed over path. On any
// failure the temporary file is removed and path is untouched.
func WriteFile(path, script string) error {
	if err := renameio.WriteFile(path, []byte(script), 0644,
		renameio.WithTempDir(filepath.Dir(path))); err != nil {
		return fmt.Errorf("write script %s: %w", path, err)
	}
	return nil
}
