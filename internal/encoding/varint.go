package encoding

import (
	"fmt"

	errs "github.com/chaisql/amf3/internal/errors"
	"github.com/cockroachdb/errors"
)

const (
	// MaxU29 is the largest value a U29 can hold.
	MaxU29 = 1<<29 - 1

	// MaxInlineLength is the largest length or index that fits
	// next to the reference flag in a U29.
	MaxInlineLength = MaxU29 >> 1

	// MinInt29 and MaxInt29 bound the integers carried by the integer marker.
	MinInt29 = -1 << 28
	MaxInt29 = 1<<28 - 1
)

// EncodeU29 appends the variable length encoding of n to dst.
// The first three bytes carry 7 bits each with 0x80 as a continuation flag,
// a fourth byte carries 8 bits. It panics if n doesn't fit in 29 bits.
func EncodeU29(dst []byte, n uint32) []byte {
	switch {
	case n < 1<<7:
		return append(dst, byte(n))
	case n < 1<<14:
		return append(dst, byte(n>>7)|0x80, byte(n)&0x7f)
	case n < 1<<21:
		return append(dst, byte(n>>14)|0x80, byte(n>>7)|0x80, byte(n)&0x7f)
	case n <= MaxU29:
		return append(dst, byte(n>>22)|0x80, byte(n>>15)|0x80, byte(n>>8)|0x80, byte(n))
	}

	panic(fmt.Sprintf("value %d out of range for U29", n))
}

// DecodeU29 decodes a U29 from the beginning of b and returns it along
// with the number of bytes read.
func DecodeU29(b []byte) (uint32, int, error) {
	var n uint32

	for i := 0; i < 3; i++ {
		if i >= len(b) {
			return 0, 0, errors.WithStack(errs.ErrTruncated)
		}

		n = n<<7 | uint32(b[i]&0x7f)
		if b[i]&0x80 == 0 {
			return n, i + 1, nil
		}
	}

	if len(b) < 4 {
		return 0, 0, errors.WithStack(errs.ErrTruncated)
	}

	return n<<8 | uint32(b[3]), 4, nil
}

// EncodeInt29 appends an integer in the range [MinInt29, MaxInt29]
// as a U29, negative values wrapping around at 29 bits.
func EncodeInt29(dst []byte, x int32) []byte {
	if x < MinInt29 || x > MaxInt29 {
		panic(fmt.Sprintf("value %d out of range for int29", x))
	}

	return EncodeU29(dst, uint32(x)&MaxU29)
}

// DecodeInt29 reinterprets a U29 as a 29-bit two's complement integer.
func DecodeInt29(n uint32) int32 {
	if n&(1<<28) != 0 {
		return int32(n) - 1<<29
	}

	return int32(n)
}

// FitsInt29 reports whether x can be carried by the integer marker.
func FitsInt29(x int64) bool {
	return x >= MinInt29 && x <= MaxInt29
}

// EncodeRef appends the reference form of a header: the index with the low bit cleared.
func EncodeRef(dst []byte, index uint32) []byte {
	return EncodeU29(dst, index<<1)
}

// EncodeInline appends the literal form of a header: the length
// or count with the low bit set.
func EncodeInline(dst []byte, n uint32) []byte {
	return EncodeU29(dst, n<<1|1)
}

// SplitHeader splits a ref-or-literal header into its flag and payload.
func SplitHeader(h uint32) (inline bool, n uint32) {
	return h&1 == 1, h >> 1
}
