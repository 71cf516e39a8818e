//go:build unix

package tmpfd

import (
	"fmt"
	"os"
)

// createFallback creates a named temporary file in dir and unlinks it
// immediately, while the handle is still open.
func createFallback(dir string) (*os.File, error) {
	f, err := os.CreateTemp(dir, "tmpfd-")
	if err != nil {
		return nil, err
	}

	if rmErr := os.Remove(f.Name()); rmErr != nil {
		_ = f.Close()
		return nil, fmt.Errorf("unlinking temporary file: %w", rmErr)
	}

	return f, nil
}
