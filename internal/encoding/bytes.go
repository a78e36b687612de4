package encoding

import (
	errs "github.com/chaisql/amf3/internal/errors"
	"github.com/cockroachdb/errors"
)

// EncodeStringLiteral appends the literal form of s: its inline length
// followed by the raw bytes. The caller checks that len(s) fits.
func EncodeStringLiteral(dst []byte, s string) []byte {
	dst = EncodeInline(dst, uint32(len(s)))
	return append(dst, s...)
}

// ReadBytes returns the first n bytes of b without copying.
func ReadBytes(b []byte, n int) ([]byte, error) {
	if n < 0 || n > len(b) {
		return nil, errors.WithStack(errs.ErrTruncated)
	}

	return b[:n:n], nil
}
