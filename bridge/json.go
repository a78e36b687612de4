package bridge

import (
	"math"

	"github.com/buger/jsonparser"
	"github.com/chaisql/amf3/types"
	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"
)

// JSON converts values to and from JSON documents.
//
// Arrays without named properties become JSON arrays, the others become objects
// holding the properties followed by the items keyed by their index. Dates are
// written as {"$date": "<RFC 3339>"}. Undefined becomes null. None of these can be
// told apart when parsing the document back, except for dates.
type JSON struct{}

var _ Runtime[[]byte] = JSON{}

func (JSON) ToRuntime(v types.Value) ([]byte, error) {
	return MarshalJSON(v)
}

func (JSON) FromRuntime(data []byte) (types.Value, error) {
	return ParseJSON(data)
}

// MarshalJSON renders v as JSON. A nil value renders as null.
func MarshalJSON(v types.Value) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	return v.MarshalJSON()
}

// ParseJSON parses a JSON document into a value. Object members keep
// the order in which they appear in the document.
func ParseJSON(data []byte) (types.Value, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid JSON")
	}

	return parseJSONValue(dataType, value)
}

func parseJSONValue(dataType jsonparser.ValueType, data []byte) (types.Value, error) {
	switch dataType {
	case jsonparser.Null:
		return types.NewNullValue(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, err
		}
		return types.NewBooleanValue(b), nil
	case jsonparser.Number:
		i, err := jsonparser.ParseInt(data)
		if err != nil {
			// not an integer or too big for an int64
			f, err := jsonparser.ParseFloat(data)
			if err != nil {
				return nil, err
			}

			return types.NewDoubleValue(f), nil
		}

		return types.NewNumberValue(i), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		return types.NewStringValue(s), nil
	case jsonparser.Array:
		return parseJSONArray(data)
	case jsonparser.Object:
		return parseJSONObject(data)
	}

	return nil, errors.Errorf("unexpected JSON value %q", data)
}

func parseJSONArray(data []byte) (types.Value, error) {
	a := types.NewArrayValue()

	var err error
	_, perr := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, _ error) {
		if err != nil {
			return
		}

		var v types.Value
		v, err = parseJSONValue(dataType, value)
		if err != nil {
			return
		}

		a.Append(v)
	})
	if err != nil {
		return nil, err
	}
	if perr != nil {
		return nil, perr
	}

	return a, nil
}

type jsonMember struct {
	key      string
	value    []byte
	dataType jsonparser.ValueType
}

func parseJSONObject(data []byte) (types.Value, error) {
	var members []jsonMember
	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		k, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}

		members = append(members, jsonMember{key: k, value: value, dataType: dataType})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(members) == 1 && members[0].key == "$date" {
		return parseJSONDate(members[0])
	}

	a := types.NewArrayValue()
	for _, m := range members {
		if m.key == "" {
			return nil, errors.New("empty property name")
		}

		v, err := parseJSONValue(m.dataType, m.value)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", m.key)
		}
		a.Set(m.key, v)
	}

	return a, nil
}

func parseJSONDate(m jsonMember) (types.Value, error) {
	switch m.dataType {
	case jsonparser.Null:
		return types.NewDateValue(math.NaN()), nil
	case jsonparser.Number:
		ms, err := jsonparser.ParseFloat(m.value)
		if err != nil {
			return nil, err
		}
		return types.NewDateValue(ms), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(m.value)
		if err != nil {
			return nil, err
		}

		c := carbon.Parse(s, carbon.UTC)
		if c.Error != nil {
			return nil, errors.Wrapf(c.Error, "invalid date %q", s)
		}
		return types.NewDateValue(float64(c.TimestampMilli())), nil
	}

	return nil, errors.Errorf("invalid date %q", m.value)
}
