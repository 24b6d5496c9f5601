package format

import "encoding/binary"

// Variable-length integer utilities.
//
// Wasm encodes sizes and counts as unsigned LEB128: seven payload bits per
// byte, least-significant group first, high bit set on every byte but the
// last. This is exactly the encoding produced by encoding/binary's Uvarint
// functions, so encoding delegates to them. Decoding is hand-written because
// the streaming parser needs to distinguish "not enough bytes yet" from a
// malformed value, and wasm caps a varuint32 at five bytes.

// MaxVarU32Len is the maximum number of bytes in a varuint32.
const MaxVarU32Len = 5

// AppendUvarint appends v as unsigned LEB128.
func AppendUvarint(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}

// ReadU32 decodes a varuint32 from the front of b.
//
// It returns the value and the number of bytes it occupied. When b ends
// before the final byte of the value, ReadU32 returns n == 0 and a nil error
// so the caller can ask for more input.
func ReadU32(b []byte) (v uint32, n int, err error) {
	var shift uint
	for i := range MaxVarU32Len {
		if i >= len(b) {
			return 0, 0, nil
		}
		c := b[i]
		if i == MaxVarU32Len-1 {
			if c&0x80 != 0 {
				return 0, 0, ErrVarintTooLong
			}
			if c > 0x0f {
				return 0, 0, ErrVarintOverflow
			}
		}
		v |= uint32(c&0x7f) << shift
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
		shift += 7
	}
	// unreachable: the fifth byte either terminates or errors
	return 0, 0, ErrVarintTooLong
}
