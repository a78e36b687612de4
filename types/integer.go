package types

import (
	"strconv"

	"github.com/chaisql/amf3/internal/encoding"
)

const (
	// MinInteger and MaxInteger bound the values an integer can carry on the wire.
	// Encoders write anything outside of this range as a double.
	MinInteger = encoding.MinInt29
	MaxInteger = encoding.MaxInt29
)

var _ Value = NewIntegerValue(0)

type IntegerValue int32

// NewIntegerValue returns an integer value.
func NewIntegerValue(x int32) IntegerValue {
	return IntegerValue(x)
}

// NewNumberValue returns an integer if x fits in 29 bits, a double otherwise.
func NewNumberValue(x int64) Value {
	if encoding.FitsInt29(x) {
		return IntegerValue(x)
	}

	return DoubleValue(x)
}

func (v IntegerValue) V() any {
	return int32(v)
}

func (v IntegerValue) Type() Type {
	return TypeInteger
}

// InRange reports whether v can be written with the integer marker.
func (v IntegerValue) InRange() bool {
	return encoding.FitsInt29(int64(v))
}

func (v IntegerValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v IntegerValue) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(v), 10), nil
}
