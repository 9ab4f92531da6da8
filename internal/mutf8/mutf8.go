// Package mutf8 converts DEX "modified UTF-8" string data to standard UTF-8.
//
// Modified UTF-8 differs from UTF-8 in two ways: U+0000 is written as the
// two-byte sequence C0 80, and supplementary characters are written as a
// pair of three-byte encoded UTF-16 surrogates. See
// https://source.android.com/docs/core/runtime/dex-format#mutf-8
package mutf8

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoder is a transform.Transformer rewriting modified UTF-8 into UTF-8.
// Bytes that are neither a C0 80 pair nor a surrogate sequence are copied
// through unchanged; lone surrogates become U+FFFD.
type Decoder struct{ transform.NopResetter }

// NewDecoder returns a transformer that turns modified UTF-8 into valid
// UTF-8, replacing anything still malformed with U+FFFD.
func NewDecoder() transform.Transformer {
	return transform.Chain(Decoder{}, unicode.UTF8.NewDecoder())
}

// Decode converts b to a valid UTF-8 string.
func Decode(b []byte) string {
	if isASCII(b) {
		return string(b)
	}
	out, _, err := transform.Bytes(NewDecoder(), b)
	if err != nil {
		// Neither transformer reports errors on complete input.
		return string(b)
	}
	return string(out)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

func isCont(c byte) bool { return c&0xc0 == 0x80 }

// surrogate decodes a three-byte encoded surrogate at b[0:3].
func surrogate(b []byte) (rune, bool) {
	if b[0] != 0xed || !isCont(b[1]) || !isCont(b[2]) || b[1] < 0xa0 {
		return 0, false
	}
	return rune(b[0]&0x0f)<<12 | rune(b[1]&0x3f)<<6 | rune(b[2]&0x3f), true
}

// Transform implements transform.Transformer.
func (Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]

		switch {
		case c == 0xc0:
			if nSrc+1 >= len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if nSrc+1 < len(src) && src[nSrc+1] == 0x80 {
				if nDst >= len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				dst[nDst] = 0
				nDst++
				nSrc += 2
				continue
			}

		case c == 0xed:
			if nSrc+3 > len(src) {
				if !atEOF {
					return nDst, nSrc, transform.ErrShortSrc
				}
				break
			}
			hi, ok := surrogate(src[nSrc:])
			if !ok {
				break
			}
			if hi >= 0xdc00 {
				// Low surrogate with no preceding high half.
				if nDst+3 > len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				nDst += utf8.EncodeRune(dst[nDst:], utf8.RuneError)
				nSrc += 3
				continue
			}
			if nSrc+6 > len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			r := utf8.RuneError
			size := 3
			if nSrc+6 <= len(src) {
				if lo, ok := surrogate(src[nSrc+3:]); ok && lo >= 0xdc00 {
					r = 0x10000 + (hi-0xd800)<<10 + (lo - 0xdc00)
					size = 6
				}
			}
			if nDst+utf8.RuneLen(r) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += utf8.EncodeRune(dst[nDst:], r)
			nSrc += size
			continue
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}
