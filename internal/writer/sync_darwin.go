//go:build darwin

package writer

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile performs file descriptor sync.
//
// On macOS, F_FULLFSYNC asks the drive to flush its own cache as well; plain
// fsync is the fallback for filesystems that reject it.
func syncFile(f *os.File) error {
	fd := f.Fd()
	if _, err := unix.FcntlInt(fd, unix.F_FULLFSYNC, 0); err == nil {
		return nil
	}
	return unix.Fsync(int(fd))
}
