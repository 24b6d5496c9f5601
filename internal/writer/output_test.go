package writer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/wasmkit/pkg/types"
)

func TestOutputFileRemovedWhenAbandoned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wasm")

	out, err := Create(path)
	require.NoError(t, err)
	require.FileExists(t, path)
	require.True(t, out.Armed())

	_, err = out.Write([]byte("partial"))
	require.NoError(t, err)

	out.Abandon()
	assert.NoFileExists(t, path)
	assert.False(t, out.Armed())
}

func TestOutputFileRetainedAfterCommit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wasm")

	out, err := Create(path)
	require.NoError(t, err)
	_, err = out.Write([]byte("complete"))
	require.NoError(t, err)

	f, err := out.Commit()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// A deferred Abandon after a successful commit must not remove the file.
	out.Abandon()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "complete", string(data))
}

func TestOutputFileDeferredGuard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wasm")
	errBoom := errors.New("boom")

	run := func() error {
		out, err := Create(path)
		if err != nil {
			return err
		}
		defer out.Abandon()
		if _, err := out.Write([]byte{0x00, 'a', 's', 'm'}); err != nil {
			return err
		}
		return errBoom
	}

	require.ErrorIs(t, run(), errBoom)
	assert.NoFileExists(t, path)
}

func TestOutputFileTruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wasm")
	require.NoError(t, os.WriteFile(path, []byte("previous contents"), 0o644))

	out, err := Create(path)
	require.NoError(t, err)
	defer out.Abandon()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestOutputFilePassThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wasm")
	out, err := Create(path)
	require.NoError(t, err)
	defer out.Abandon()

	assert.Equal(t, path, out.Path())

	n, err := io.Copy(out, strings.NewReader("hello world"))
	require.NoError(t, err)
	assert.EqualValues(t, 11, n)

	_, err = out.WriteAt([]byte("W"), 6)
	require.NoError(t, err)

	got := make([]byte, 5)
	_, err = out.ReadAt(got, 6)
	require.NoError(t, err)
	assert.Equal(t, "World", string(got))

	pos, err := out.Seek(0, io.SeekStart)
	require.NoError(t, err)
	assert.Zero(t, pos)

	all, err := io.ReadAll(out)
	require.NoError(t, err)
	assert.Equal(t, "hello World", string(all))
}

func TestOutputFileClosedOperations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wasm")
	out, err := Create(path)
	require.NoError(t, err)
	out.Abandon()
	out.Abandon()

	_, err = out.Write([]byte{1})
	assert.ErrorIs(t, err, os.ErrClosed)
	_, err = out.Read(make([]byte, 1))
	assert.ErrorIs(t, err, os.ErrClosed)
	_, err = out.Seek(0, io.SeekEnd)
	assert.ErrorIs(t, err, os.ErrClosed)
	_, err = out.Commit()
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestCreateFailureIsIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.wasm")

	_, err := Create(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)
	assert.NoFileExists(t, path)
}
