package encoding

import (
	"math"

	errs "github.com/chaisql/amf3/internal/errors"
	"github.com/cockroachdb/errors"
)

// EncodeFloat64 appends x as 8 big-endian bytes.
func EncodeFloat64(dst []byte, x float64) []byte {
	return write8(dst, math.Float64bits(x))
}

// DecodeFloat64 reads 8 big-endian bytes as an IEEE-754 double.
func DecodeFloat64(b []byte) (float64, error) {
	if len(b) < 8 {
		return 0, errors.WithStack(errs.ErrTruncated)
	}

	return math.Float64frombits(DecodeUint64(b)), nil
}

func DecodeUint64(b []byte) uint64 {
	return (uint64(b[0]) << 56) |
		(uint64(b[1]) << 48) |
		(uint64(b[2]) << 40) |
		(uint64(b[3]) << 32) |
		(uint64(b[4]) << 24) |
		(uint64(b[5]) << 16) |
		(uint64(b[6]) << 8) |
		uint64(b[7])
}
