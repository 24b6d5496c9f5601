package section

import (
	"errors"
	"io"

	"github.com/joshuapare/wasmkit/internal/format"
	"github.com/joshuapare/wasmkit/wasm"
)

// Info describes one section found by List.
type Info struct {
	Depth    int    `json:"depth"`
	Offset   uint64 `json:"offset"`
	ID       byte   `json:"id"`
	Kind     string `json:"kind"`
	Name     string `json:"name,omitempty"`
	Size     uint32 `json:"size"`
	Nested   bool   `json:"nested,omitempty"`
	Encoding string `json:"encoding"`
}

// List returns every section of the binary read from r, including those of
// nested binaries, in file order.
func List(r io.Reader) ([]Info, error) {
	rd := wasm.NewReader(r)
	var (
		out  []Info
		encs []wasm.Encoding
	)
	for {
		ev, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		rd.Drain()

		p := ev.Payload
		switch p.Kind {
		case wasm.KindVersion:
			encs = append(encs[:ev.Depth], p.Encoding)
		case wasm.KindSection, wasm.KindCustomSection, wasm.KindNested:
			enc := encs[ev.Depth]
			out = append(out, Info{
				Depth:    ev.Depth,
				Offset:   p.Offset,
				ID:       p.ID,
				Kind:     format.SectionName(p.ID, enc == wasm.EncodingComponent),
				Name:     p.Name,
				Size:     p.Size,
				Nested:   p.Kind == wasm.KindNested,
				Encoding: enc.String(),
			})
		}
	}
}
