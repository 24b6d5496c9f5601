// Package writer exposes sinks for wasm emission.
package writer

import (
	"io"
	"os"

	"github.com/joshuapare/wasmkit/pkg/types"
)

// OutputFile is an output file that removes itself unless committed.
//
// Pair Create with a deferred Abandon:
//
//	out, err := writer.Create(path)
//	if err != nil {
//	    return err
//	}
//	defer out.Abandon()
//	// ... write ...
//	f, err := out.Commit()
//
// Abandon is a no-op once Commit has succeeded, so every return path before
// the commit leaves nothing at path. An OutputFile is not safe for
// concurrent use.
type OutputFile struct {
	f    *os.File
	path string
}

var (
	_ io.ReadWriteSeeker = (*OutputFile)(nil)
	_ io.ReaderAt        = (*OutputFile)(nil)
	_ io.WriterAt        = (*OutputFile)(nil)
)

// Create creates or truncates the file at path and returns an armed handle.
func Create(path string) (*OutputFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, types.IOError("create output file", err)
	}
	return &OutputFile{f: f, path: path}, nil
}

// Path returns the path the handle was created with.
func (o *OutputFile) Path() string { return o.path }

// Armed reports whether the file will be removed by Abandon.
func (o *OutputFile) Armed() bool { return o.f != nil }

// Commit flushes the file to stable storage, disarms removal permanently and
// hands the open file to the caller, who becomes responsible for closing it.
//
// If the flush fails the handle stays armed and the error is returned, so a
// deferred Abandon still removes the file.
func (o *OutputFile) Commit() (*os.File, error) {
	if o.f == nil {
		return nil, os.ErrClosed
	}
	if err := syncFile(o.f); err != nil {
		return nil, types.IOError("sync output file", err)
	}
	f := o.f
	o.f = nil
	return f, nil
}

// Abandon closes the file and removes it from disk, ignoring close and
// remove errors. Calling Abandon after Commit or a second time does nothing.
func (o *OutputFile) Abandon() {
	if o.f == nil {
		return
	}
	_ = o.f.Close()
	_ = os.Remove(o.path)
	o.f = nil
}

func (o *OutputFile) Read(p []byte) (int, error) {
	if o.f == nil {
		return 0, os.ErrClosed
	}
	return o.f.Read(p)
}

func (o *OutputFile) Write(p []byte) (int, error) {
	if o.f == nil {
		return 0, os.ErrClosed
	}
	return o.f.Write(p)
}

func (o *OutputFile) Seek(offset int64, whence int) (int64, error) {
	if o.f == nil {
		return 0, os.ErrClosed
	}
	return o.f.Seek(offset, whence)
}

func (o *OutputFile) ReadAt(p []byte, off int64) (int, error) {
	if o.f == nil {
		return 0, os.ErrClosed
	}
	return o.f.ReadAt(p, off)
}

func (o *OutputFile) WriteAt(p []byte, off int64) (int, error) {
	if o.f == nil {
		return 0, os.ErrClosed
	}
	return o.f.WriteAt(p, off)
}

// ReadFrom lets io.Copy into an OutputFile use the file's fast paths.
func (o *OutputFile) ReadFrom(r io.Reader) (int64, error) {
	if o.f == nil {
		return 0, os.ErrClosed
	}
	return o.f.ReadFrom(r)
}
