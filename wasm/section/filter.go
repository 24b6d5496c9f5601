// Package section rewrites the section list of a wasm binary: it strips
// custom sections by name while copying everything else verbatim, and
// appends new custom sections.
package section

import (
	"errors"
	"io"

	"github.com/joshuapare/wasmkit/pkg/types"
	"github.com/joshuapare/wasmkit/wasm"
)

// Stats summarizes a Strip pass.
type Stats struct {
	Sections     int   `json:"sections"`      // top-level sections seen, custom or not
	Removed      int   `json:"removed"`       // custom sections dropped
	BytesRead    int64 `json:"bytes_read"`    // input bytes consumed
	BytesWritten int64 `json:"bytes_written"` // bytes forwarded to the output
}

// Filter decides, event by event, whether raw input bytes reach the output.
//
// A top-level custom section whose name equals the target is dropped along
// with all of its content. Everything else, including nested binaries in
// their entirety, is forwarded unmodified. Custom sections inside nested
// binaries are never dropped: the enclosing section's size has already been
// written by the time they are seen.
type Filter struct {
	name     string
	w        io.Writer
	dropping bool
	stats    Stats
}

// NewFilter returns a Filter removing custom sections called name and
// writing the rest to w.
func NewFilter(name string, w io.Writer) *Filter {
	return &Filter{name: name, w: w}
}

// Stats returns the counters accumulated so far.
func (f *Filter) Stats() Stats { return f.stats }

// Apply forwards or drops raw, the bytes of ev.
func (f *Filter) Apply(ev wasm.Event, raw []byte) error {
	f.stats.BytesRead += int64(len(raw))

	switch ev.Payload.Kind {
	case wasm.KindCustomSection:
		if ev.Depth == 0 {
			f.stats.Sections++
			f.dropping = ev.Payload.Name == f.name
			if f.dropping {
				f.stats.Removed++
			}
		}
	case wasm.KindSection, wasm.KindNested:
		if ev.Depth == 0 {
			f.stats.Sections++
			f.dropping = false
		}
	case wasm.KindVersion, wasm.KindEnd:
		f.dropping = false
	}

	if f.dropping || len(raw) == 0 {
		return nil
	}
	n, err := f.w.Write(raw)
	f.stats.BytesWritten += int64(n)
	if err != nil {
		return types.IOError("write output", err)
	}
	return nil
}

// Strip copies the wasm binary read from r to w, leaving out every top-level
// custom section called name. Binaries without such a section are copied
// byte for byte.
func Strip(name string, r io.Reader, w io.Writer) (Stats, error) {
	rd := wasm.NewReader(r)
	f := NewFilter(name, w)
	for {
		ev, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return f.Stats(), nil
		}
		if err != nil {
			return f.Stats(), err
		}
		if err := f.Apply(ev, rd.Raw()); err != nil {
			return f.Stats(), err
		}
		rd.Drain()
	}
}
