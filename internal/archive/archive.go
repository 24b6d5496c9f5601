// Package archive prepares the tar payload embedded into a wasm binary.
package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joshuapare/wasmkit/pkg/types"
)

// Payload is a prepared tar stream of known size, positioned at its start.
type Payload struct {
	f    *os.File
	size int64
	temp bool
}

// Size returns the length of the tar stream in bytes.
func (p *Payload) Size() int64 { return p.size }

// Read reads from the tar stream.
func (p *Payload) Read(b []byte) (int, error) { return p.f.Read(b) }

// Close releases the payload, removing it if it was built from a directory.
func (p *Payload) Close() error {
	err := p.f.Close()
	if p.temp {
		_ = os.Remove(p.f.Name())
	}
	return err
}

// Prepare returns the payload for path. A directory is archived into a
// temporary tar file; any other file must already be a tar archive and is
// checked with Validate before use.
func Prepare(path string) (*Payload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, types.IOError("stat payload", err)
	}

	var p *Payload
	if info.IsDir() {
		f, err := os.CreateTemp("", "wasmkit-payload-*.tar")
		if err != nil {
			return nil, types.IOError("create payload archive", err)
		}
		p = &Payload{f: f, temp: true}
		if err := WriteTree(f, path); err != nil {
			_ = p.Close()
			return nil, err
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, types.IOError("open payload archive", err)
		}
		p = &Payload{f: f}
		if err := Validate(f); err != nil {
			_ = p.Close()
			return nil, types.InvalidArchive(path, err)
		}
	}

	// Measure, then rewind for the caller.
	if p.size, err = p.f.Seek(0, io.SeekEnd); err == nil {
		_, err = p.f.Seek(0, io.SeekStart)
	}
	if err != nil {
		_ = p.Close()
		return nil, types.IOError("measure payload", err)
	}
	return p, nil
}

// WriteTree writes a tar archive of every entry below root to w. The root
// itself is not included; names are relative to root with forward slashes.
// Entries are visited in lexical order, so the same tree always yields the
// same entry order.
func WriteTree(w io.Writer, root string) error {
	tw := tar.NewWriter(w)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		// Skip the root directory itself
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return addEntry(tw, path, filepath.ToSlash(rel), d)
	})
	if err != nil {
		return types.IOError("archive "+root, err)
	}
	if err := tw.Close(); err != nil {
		return types.IOError("archive "+root, err)
	}
	return nil
}

func addEntry(tw *tar.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	var link string
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return err
		}
	}
	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	hdr.Name = name
	if info.IsDir() {
		hdr.Name += "/"
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		// Read-only file handle; close errors are exotic.
		_ = f.Close()
	}()
	if _, err := io.CopyN(tw, f, hdr.Size); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Validate scans the tar entry list read from r. Entry contents are skipped,
// not verified.
func Validate(r io.Reader) error {
	tr := tar.NewReader(r)
	for {
		_, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
