// Package mmfile maps wasm binaries read-only into memory for inspection.
package mmfile

import (
	"bytes"

	"github.com/joshuapare/wasmkit/pkg/types"
)

// Mapping is a read-only view of a whole file. The view is valid until Close.
type Mapping struct {
	data  []byte
	unmap func([]byte) error
}

// Bytes returns the mapped contents. The slice must not be modified or used
// after Close.
func (m *Mapping) Bytes() []byte { return m.data }

// Len returns the size of the mapping.
func (m *Mapping) Len() int { return len(m.data) }

// Reader returns a fresh reader over the mapped contents.
func (m *Mapping) Reader() *bytes.Reader { return bytes.NewReader(m.data) }

// Close releases the mapping. Calling Close more than once is a no-op.
func (m *Mapping) Close() error {
	data := m.data
	m.data = nil
	if data == nil || m.unmap == nil {
		return nil
	}
	if err := m.unmap(data); err != nil {
		return types.IOError("unmap", err)
	}
	return nil
}
