package section

import (
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/wasmkit/internal/buf"
	"github.com/joshuapare/wasmkit/internal/format"
	"github.com/joshuapare/wasmkit/pkg/types"
)

// EncodeHeader returns everything of a custom section that precedes its
// content: the id byte, the section size, the name length and the name.
//
// The section size covers the name length prefix, the name and contentLen
// content bytes, so the content length must be known up front. It fails with
// an ErrKindOverflow error when the size does not fit a varuint32.
func EncodeHeader(name string, contentLen int64) ([]byte, error) {
	if contentLen < 0 {
		return nil, types.Usage(fmt.Sprintf("negative content length %d", contentLen))
	}
	cl, ok := buf.Int64ToInt(contentLen)
	if !ok {
		return nil, types.Overflow(fmt.Sprintf("content length %d does not fit in int", contentLen))
	}

	nameLen := format.AppendUvarint(nil, uint64(len(name)))
	size, ok := buf.SumOverflowSafe(len(nameLen), len(name), cl)
	if !ok {
		return nil, types.Overflow(fmt.Sprintf("section size overflows int (name %d bytes, content %d bytes)", len(name), contentLen))
	}
	if uint64(size) > format.MaxSectionSize {
		return nil, types.Overflow(fmt.Sprintf("section size %d exceeds the wasm limit of %d", size, uint64(format.MaxSectionSize)))
	}

	hdr := make([]byte, 0, format.SectionHeaderMaxSize+len(nameLen)+len(name))
	hdr = append(hdr, format.SectionCustom)
	hdr = format.AppendUvarint(hdr, uint64(size))
	hdr = append(hdr, nameLen...)
	hdr = append(hdr, name...)
	return hdr, nil
}

// Append writes a custom section called name whose content is the next
// contentLen bytes of content. It returns the number of bytes written.
//
// No byte is written when the header cannot be encoded. A content reader
// that ends early yields an ErrKindIO error wrapping io.ErrUnexpectedEOF.
func Append(w io.Writer, name string, content io.Reader, contentLen int64) (int64, error) {
	hdr, err := EncodeHeader(name, contentLen)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(hdr)
	if err != nil {
		return int64(n), types.IOError("write section header", err)
	}

	copied, err := io.CopyN(w, content, contentLen)
	total := int64(n) + copied
	if errors.Is(err, io.EOF) {
		return total, types.IOError(fmt.Sprintf("copy section content (%d of %d bytes)", copied, contentLen), io.ErrUnexpectedEOF)
	}
	if err != nil {
		return total, types.IOError("copy section content", err)
	}
	return total, nil
}
