// Package leb128 implements the unsigned LEB128 encoding used by DEX files.
package leb128

import "errors"

// MaxLen is the maximum number of bytes a 32-bit ULEB128 value occupies.
const MaxLen = 5

// ErrTruncated is returned when the input ends inside an encoded value.
var ErrTruncated = errors.New("leb128: truncated value")

// Decode reads one ULEB128 value from the front of b and returns it
// together with the number of bytes consumed. At most MaxLen bytes are
// read and never more than len(b).
//
// The high bits of the fifth byte are not validated: garbage there is
// folded into the result the same way the Dalvik reader does it.
func Decode(b []byte) (uint32, int, error) {
	var result uint32
	for i := 0; i < MaxLen; i++ {
		if i >= len(b) {
			return 0, 0, ErrTruncated
		}
		cur := b[i]
		if i == MaxLen-1 {
			// Lenient: all eight bits of the last byte are shifted in.
			result |= uint32(cur) << 28
			return result, MaxLen, nil
		}
		result |= uint32(cur&0x7f) << (7 * i)
		if cur < 0x80 {
			return result, i + 1, nil
		}
	}
	return result, MaxLen, nil
}

// EncodedLength returns the number of bytes Append emits for v.
func EncodedLength(v uint32) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// Append appends the canonical encoding of v to dst.
func Append(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Encode returns the canonical encoding of v.
func Encode(v uint32) []byte {
	return Append(make([]byte, 0, EncodedLength(v)), v)
}
