//go:build unix && !linux

package tmpfd

import "os"

// create opens an unlinked intermediate file in dir using the portable
// create-then-unlink sequence.
func create(dir string) (*os.File, error) {
	return createFallback(dir)
}
