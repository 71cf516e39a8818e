package tmpfd

import (
	"errors"
	"os"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

const permissions = 0o600

var tmpfileUnsupported atomic.Bool

// create opens an unlinked intermediate file in dir. On reasonably modern
// Linux (3.11 and above) O_TMPFILE produces an invisible file directly,
// without a directory entry that would have to be removed afterwards.
func create(dir string) (*os.File, error) {
	if tmpfileUnsupported.Load() {
		return createFallback(dir)
	}

	fd, err := unix.Open(dir, unix.O_RDWR|unix.O_TMPFILE|unix.O_CLOEXEC, permissions)
	if err == nil {
		return os.NewFile(uintptr(fd), ""), nil
	}

	if errors.Is(err, syscall.EISDIR) || errors.Is(err, syscall.EOPNOTSUPP) {
		// The filesystem backing dir does not support O_TMPFILE.
		// Remember that and skip future attempts.
		tmpfileUnsupported.Store(true)

		return createFallback(dir)
	}

	return nil, &os.PathError{Op: "open", Path: dir, Err: err}
}
