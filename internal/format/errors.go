package format

import "errors"

var (
	// ErrSignatureMismatch indicates the preamble did not start with Magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the input ended before a structure was complete.
	ErrTruncated = errors.New("format: truncated input")
	// ErrUnsupported indicates a version/layer combination we do not handle.
	ErrUnsupported = errors.New("format: unsupported version")
	// ErrVarintTooLong indicates a varuint32 spanning more than five bytes.
	ErrVarintTooLong = errors.New("format: varint too long")
	// ErrVarintOverflow indicates a varuint32 whose value exceeds 32 bits.
	ErrVarintOverflow = errors.New("format: varint overflows u32")
	// ErrBounds indicates a size field overruns its enclosing region.
	ErrBounds = errors.New("format: size out of bounds")
)

// ErrUnexpectedEncoding indicates a nested binary of the wrong kind, such as
// a component inside a core module section.
var ErrUnexpectedEncoding = errors.New("format: unexpected binary kind")
