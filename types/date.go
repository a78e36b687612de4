package types

import (
	"math"
	"time"

	"github.com/golang-module/carbon/v2"
)

var _ Value = NewDateValue(0)

// DateValue holds a date as milliseconds since the Unix epoch.
// Dates are tracked by identity: two *DateValue are the same date on the
// wire only if they are the same pointer.
type DateValue struct {
	Millis float64
}

// NewDateValue returns a date from milliseconds since the Unix epoch.
func NewDateValue(ms float64) *DateValue {
	return &DateValue{Millis: ms}
}

// NewDateValueFromTime returns a date from t, truncated to the millisecond.
func NewDateValueFromTime(t time.Time) *DateValue {
	return &DateValue{Millis: float64(t.UnixMilli())}
}

func (v *DateValue) V() any {
	return v.Millis
}

func (v *DateValue) Type() Type {
	return TypeDate
}

// Valid reports whether the date denotes a point in time.
// Runtimes use NaN for invalid dates.
func (v *DateValue) Valid() bool {
	return !math.IsNaN(v.Millis) && !math.IsInf(v.Millis, 0)
}

// Time returns the date as a time.Time in UTC.
func (v *DateValue) Time() time.Time {
	return time.UnixMilli(int64(v.Millis)).UTC()
}

func (v *DateValue) String() string {
	if !v.Valid() {
		return "Invalid Date"
	}

	return v.carbon().ToRfc3339MilliString()
}

// MarshalJSON renders the date as {"$date": "<RFC 3339 timestamp>"}.
func (v *DateValue) MarshalJSON() ([]byte, error) {
	if !v.Valid() {
		return []byte(`{"$date":null}`), nil
	}

	dst := append([]byte(nil), `{"$date":`...)
	dst = appendJSONString(dst, v.carbon().ToRfc3339MilliString())
	return append(dst, '}'), nil
}

func (v *DateValue) carbon() carbon.Carbon {
	return carbon.CreateFromTimestampMilli(int64(v.Millis), carbon.UTC)
}
