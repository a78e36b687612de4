package types

import (
	"math"
	"strconv"
)

var _ Value = NewDoubleValue(0)

type DoubleValue float64

// NewDoubleValue returns a double value.
func NewDoubleValue(x float64) DoubleValue {
	return DoubleValue(x)
}

func (v DoubleValue) V() any {
	return float64(v)
}

func (v DoubleValue) Type() Type {
	return TypeDouble
}

func (v DoubleValue) String() string {
	return string(appendDouble(nil, float64(v)))
}

// MarshalJSON always keeps a fraction or an exponent so that the number reads back
// as a double. NaN and infinities have no JSON form and render as null.
func (v DoubleValue) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}

	return appendDouble(nil, f), nil
}

func appendDouble(dst []byte, f float64) []byte {
	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 {
		if abs < 1e-6 || abs >= 1e15 {
			fmt = 'e'
		}
	}

	// By default the precision is -1 to use the smallest number of digits.
	// See https://pkg.go.dev/strconv#FormatFloat
	prec := -1
	// if the number is round, add .0
	if fmt == 'f' && float64(int64(f)) == f {
		prec = 1
	}
	return strconv.AppendFloat(dst, f, fmt, prec, 64)
}
