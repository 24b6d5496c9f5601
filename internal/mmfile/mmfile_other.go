//go:build !unix

package mmfile

import (
	"os"

	"github.com/joshuapare/wasmkit/pkg/types"
)

// Open reads the entire file where mmap is not used.
func Open(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.IOError("read", err)
	}
	return &Mapping{data: data}, nil
}
