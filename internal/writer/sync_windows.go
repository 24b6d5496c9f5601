//go:build windows

package writer

import (
	"os"

	"golang.org/x/sys/windows"
)

// syncFile flushes file data and metadata using FlushFileBuffers.
func syncFile(f *os.File) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
