//go:build unix

package mmfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/wasmkit/pkg/types"
)

// Open maps the file at path into memory.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.IOError("open", err)
	}
	defer f.Close() // the mapping outlives the descriptor

	info, err := f.Stat()
	if err != nil {
		return nil, types.IOError("stat", err)
	}
	size := info.Size()
	if size == 0 {
		return &Mapping{data: []byte{}}, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, types.IOError("map", fmt.Errorf("file too large to map (%d bytes)", size))
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, types.IOError("map", err)
	}
	return &Mapping{data: data, unmap: unix.Munmap}, nil
}
