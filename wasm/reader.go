package wasm

import (
	"errors"
	"io"
	"slices"

	"github.com/joshuapare/wasmkit/internal/format"
	"github.com/joshuapare/wasmkit/pkg/types"
)

// ErrNotDrained is returned by Next when the previous event's bytes have not
// been released with Drain.
var ErrNotDrained = errors.New("wasm: previous event not drained")

// maxEmptyReads bounds how many consecutive (0, nil) reads Next tolerates.
const maxEmptyReads = 100

// Event is one parsed unit together with the nesting depth it was parsed at.
// The unit's raw bytes are available from Reader.Raw until Drain is called.
type Event struct {
	Consumed int
	Payload  Payload
	Depth    int
}

// Reader drives a Parser over an io.Reader.
//
// It owns a staging buffer holding input the parser has not consumed yet and
// a stack of suspended parsers, one per nested binary currently open. The
// buffer only ever grows by what the active parser asks for, so memory stays
// bounded by the largest custom section name or MaxChunk, whichever is
// larger, regardless of input size or nesting depth.
//
// Typical use:
//
//	rd := wasm.NewReader(f)
//	for {
//	    ev, err := rd.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    process(ev, rd.Raw())
//	    rd.Drain()
//	}
type Reader struct {
	r       io.Reader
	parser  *Parser
	stack   []*Parser
	buf     []byte
	eof     bool
	done    bool
	pending int
	held    bool
}

// NewReader returns a Reader parsing a top-level binary from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, parser: NewParser()}
}

// Depth returns the number of nested binaries currently open.
func (d *Reader) Depth() int { return len(d.stack) }

// Buffered returns the number of staged input bytes, including those of an
// undrained event.
func (d *Reader) Buffered() int { return len(d.buf) }

// Next parses the next event. Nested binaries are entered and left
// transparently: a KindNested event switches parsing to the nested region
// and the region's KindEnd resumes the enclosing binary. After the KindEnd
// of the top-level binary, Next returns io.EOF.
func (d *Reader) Next() (Event, error) {
	if d.held {
		return Event{}, ErrNotDrained
	}
	if d.done {
		return Event{}, io.EOF
	}

	var chunk Chunk
	for {
		var err error
		chunk, err = d.parser.Parse(d.buf, d.eof)
		if err != nil {
			return Event{}, err
		}
		if chunk.Need == 0 {
			break
		}
		if err := d.fill(chunk.Need); err != nil {
			return Event{}, err
		}
	}

	ev := Event{Consumed: chunk.Consumed, Payload: chunk.Payload, Depth: len(d.stack)}
	switch chunk.Payload.Kind {
	case KindNested:
		d.stack = append(d.stack, d.parser)
		d.parser = chunk.Payload.Parser
	case KindEnd:
		if n := len(d.stack); n > 0 {
			d.parser = d.stack[n-1]
			d.stack[n-1] = nil
			d.stack = d.stack[:n-1]
		} else {
			d.done = true
		}
	}
	d.pending = chunk.Consumed
	d.held = true
	return ev, nil
}

// Raw returns the bytes of the last event. The slice is only valid until
// Drain.
func (d *Reader) Raw() []byte {
	return d.buf[:d.pending]
}

// Drain releases the bytes of the last event. It must be called exactly once
// between two calls to Next.
func (d *Reader) Drain() {
	n := copy(d.buf, d.buf[d.pending:])
	d.buf = d.buf[:n]
	d.pending = 0
	d.held = false
}

// fill appends n zeroed bytes to the buffer, reads into them, and truncates
// the buffer to what was actually read.
func (d *Reader) fill(n int) error {
	if d.eof {
		return types.Malformed("malformed wasm binary", format.ErrTruncated)
	}
	for range maxEmptyReads {
		l := len(d.buf)
		d.buf = slices.Grow(d.buf, n)[:l+n]
		clear(d.buf[l:])

		m, err := d.r.Read(d.buf[l:])
		d.buf = d.buf[:l+m]
		if errors.Is(err, io.EOF) {
			d.eof = true
			return nil
		}
		if err != nil {
			return types.IOError("read input", err)
		}
		if m > 0 {
			return nil
		}
	}
	return types.IOError("read input", io.ErrNoProgress)
}
