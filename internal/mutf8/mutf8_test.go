package mutf8

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"ascii", []byte("Lcom/example/Main;"), "Lcom/example/Main;"},
		{"empty", nil, ""},
		{"encoded nul", []byte("a\xc0\x80b"), "a\x00b"},
		{"two byte", []byte("caf\xc3\xa9"), "café"},
		{"bmp three byte", []byte("\xe4\xb8\xad"), "中"},
		{"surrogate pair", []byte("x\xed\xa0\xbd\xed\xb8\x80y"), "x\U0001F600y"},
		{"lone low surrogate", []byte("\xed\xb8\x80"), "�"},
		{"lone high surrogate", []byte("\xed\xa0\xbdz"), "�z"},
		{"high followed by non surrogate", []byte("\xed\xa0\xbd\xe4\xb8\xad"), "�中"},
		{"invalid byte", []byte("a\xffb"), "a�b"},
		{"bare c0", []byte("a\xc0"), "a�"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Decode(tt.in))
		})
	}
}

func TestDecoderStreamsOneByteAtATime(t *testing.T) {
	in := []byte("\xed\xa0\xbd\xed\xb8\x80-\xc0\x80-\xe4\xb8\xad")
	r := transform.NewReader(iotest.OneByteReader(bytes.NewReader(in)), NewDecoder())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "\U0001F600-\x00-中", string(out))
}

func TestDecoderSmallDestination(t *testing.T) {
	src := []byte("\xed\xa0\xbd\xed\xb8\x80")
	dst := make([]byte, 2)
	nDst, nSrc, err := Decoder{}.Transform(dst, src, true)
	require.ErrorIs(t, err, transform.ErrShortDst)
	require.Zero(t, nDst)
	require.Zero(t, nSrc)
}
