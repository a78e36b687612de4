package types

import (
	"fmt"
)

func AsBool(v Value) bool {
	return bool(v.(BooleanValue))
}

func AsInt32(v Value) int32 {
	return int32(v.(IntegerValue))
}

// AsFloat64 returns the number held by an integer or a double.
func AsFloat64(v Value) float64 {
	switch x := v.(type) {
	case IntegerValue:
		return float64(x)
	case DoubleValue:
		return float64(x)
	}

	panic(fmt.Sprintf("cannot convert %s to float64", v.Type()))
}

func AsString(v Value) string {
	return string(v.(StringValue))
}

func AsDate(v Value) *DateValue {
	return v.(*DateValue)
}

func AsArray(v Value) *ArrayValue {
	return v.(*ArrayValue)
}

// IsNull returns true for both null and undefined.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}

	t := v.Type()
	return t == TypeNull || t == TypeUndefined
}
