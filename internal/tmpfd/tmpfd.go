//go:build unix

// Package tmpfd creates anonymous read-write temporary files. A file
// returned by New has no directory entry, so the operating system reclaims
// its backing storage as soon as the last descriptor referencing it is
// closed.
package tmpfd

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// New returns an open read-write file backed by anonymous storage in the
// system's temporary directory. The file is empty, positioned at offset
// zero, and unreachable by any path lookup. The caller owns the returned
// descriptor and is responsible for closing it.
func New() (*os.File, error) {
	f, err := create(os.TempDir())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return detach(f)
}

// detach duplicates f's descriptor so the result stays valid after f is
// closed. The duplicate has to exist before f is released; closing f first
// would destroy the only reference to the backing file.
func detach(f *os.File) (*os.File, error) {
	fd, err := unix.FcntlInt(f.Fd(), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("duplicating descriptor: %w", err)
	}

	return os.NewFile(uintptr(fd), ""), nil
}
