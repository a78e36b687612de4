package encoding_test

import (
	"testing"

	"github.com/chaisql/amf3/internal/encoding"
	errs "github.com/chaisql/amf3/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestU29(t *testing.T) {
	tests := []struct {
		n   uint32
		enc []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x81, 0x00}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x81, 0x80, 0x00}},
		{0x1fffff, []byte{0xff, 0xff, 0x7f}},
		{0x200000, []byte{0x80, 0xc0, 0x80, 0x00}},
		{0x0fffffff, []byte{0xbf, 0xff, 0xff, 0xff}},
		{encoding.MaxU29, []byte{0xff, 0xff, 0xff, 0xff}},
	}

	for _, test := range tests {
		enc := encoding.EncodeU29(nil, test.n)
		require.Equal(t, test.enc, enc, "encoding %#x", test.n)

		n, read, err := encoding.DecodeU29(enc)
		require.NoError(t, err)
		require.Equal(t, test.n, n)
		require.Equal(t, len(enc), read)
	}
}

func TestU29RoundTrip(t *testing.T) {
	// walk the whole range with a stride that hits every length class
	for n := uint32(0); n <= encoding.MaxU29; n += 9973 {
		enc := encoding.EncodeU29(nil, n)

		got, read, err := encoding.DecodeU29(enc)
		require.NoError(t, err)
		require.Equal(t, n, got)
		require.Equal(t, len(enc), read)

		var minimal int
		switch {
		case n < 1<<7:
			minimal = 1
		case n < 1<<14:
			minimal = 2
		case n < 1<<21:
			minimal = 3
		default:
			minimal = 4
		}
		require.Equal(t, minimal, len(enc), "value %#x", n)
	}
}

func TestU29FourthByteIsFull(t *testing.T) {
	// the fourth byte has its high bit set but must not be treated as a continuation
	n, read, err := encoding.DecodeU29([]byte{0x80, 0x80, 0x80, 0xff, 0x42})
	require.NoError(t, err)
	require.Equal(t, uint32(0xff), n)
	require.Equal(t, 4, read)
}

func TestU29Truncated(t *testing.T) {
	for _, b := range [][]byte{
		nil,
		{0x80},
		{0xff, 0xff},
		{0xff, 0xff, 0xff},
	} {
		_, _, err := encoding.DecodeU29(b)
		require.ErrorIs(t, err, errs.ErrTruncated, "input %x", b)
	}
}

func TestU29OutOfRange(t *testing.T) {
	require.Panics(t, func() {
		encoding.EncodeU29(nil, encoding.MaxU29+1)
	})
}

func TestInt29(t *testing.T) {
	tests := []struct {
		x   int32
		enc []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff}},
		{encoding.MaxInt29, []byte{0xbf, 0xff, 0xff, 0xff}},
		{encoding.MinInt29, []byte{0xc0, 0x80, 0x80, 0x00}},
		{-256, []byte{0xff, 0xff, 0xff, 0x00}},
	}

	for _, test := range tests {
		enc := encoding.EncodeInt29(nil, test.x)
		require.Equal(t, test.enc, enc, "encoding %d", test.x)

		n, _, err := encoding.DecodeU29(enc)
		require.NoError(t, err)
		require.Equal(t, test.x, encoding.DecodeInt29(n))
	}

	require.True(t, encoding.FitsInt29(encoding.MaxInt29))
	require.False(t, encoding.FitsInt29(encoding.MaxInt29+1))
	require.True(t, encoding.FitsInt29(encoding.MinInt29))
	require.False(t, encoding.FitsInt29(encoding.MinInt29-1))
	require.Panics(t, func() { encoding.EncodeInt29(nil, encoding.MaxInt29+1) })
}

func TestHeaders(t *testing.T) {
	require.Equal(t, []byte{0x00}, encoding.EncodeRef(nil, 0))
	require.Equal(t, []byte{0x04}, encoding.EncodeRef(nil, 2))
	require.Equal(t, []byte{0x07}, encoding.EncodeInline(nil, 3))
	require.Equal(t, []byte{encoding.EmptyString}, encoding.EncodeInline(nil, 0))

	inline, n := encoding.SplitHeader(0x07)
	require.True(t, inline)
	require.Equal(t, uint32(3), n)

	inline, n = encoding.SplitHeader(0x04)
	require.False(t, inline)
	require.Equal(t, uint32(2), n)
}
