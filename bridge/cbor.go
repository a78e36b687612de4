package bridge

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/chaisql/amf3/types"
	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bridge: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// epoch-based date/time
const cborTagEpoch = 1

// undefined simple value
var cborUndefined = cbor.RawMessage{0xf7}

// CBOR converts values to and from canonical CBOR documents.
//
// Arrays without named properties become CBOR arrays, the others become maps
// where items are keyed by their index. Dates are tagged epoch times in seconds.
// Undefined is written as the CBOR undefined value and read back as null.
// Arrays are copied: a tree where an array contains itself cannot be converted,
// and arrays shared by many parents fail once they are copied too many times.
type CBOR struct{}

var _ Runtime[[]byte] = CBOR{}

func (CBOR) ToRuntime(v types.Value) ([]byte, error) {
	return MarshalCBOR(v)
}

func (CBOR) FromRuntime(data []byte) (types.Value, error) {
	return UnmarshalCBOR(data)
}

// MarshalCBOR renders v as canonical CBOR.
func MarshalCBOR(v types.Value) ([]byte, error) {
	c := toCBOR{
		visiting: make(map[*types.ArrayValue]struct{}),
	}

	x, err := c.convert(v)
	if err != nil {
		return nil, err
	}

	return cborEncMode.Marshal(x)
}

type toCBOR struct {
	visiting map[*types.ArrayValue]struct{}
	budget   types.CopyBudget
}

func (c *toCBOR) convert(v types.Value) (any, error) {
	switch t := v.(type) {
	case nil, types.NullValue:
		return nil, nil
	case types.UndefinedValue:
		return cborUndefined, nil
	case types.BooleanValue:
		return bool(t), nil
	case types.IntegerValue:
		return int64(t), nil
	case types.DoubleValue:
		return float64(t), nil
	case types.StringValue:
		return string(t), nil
	case *types.DateValue:
		if t == nil {
			return nil, nil
		}
		if !t.Valid() {
			return nil, errors.WithStack(ErrInvalidDate)
		}
		return cbor.Tag{Number: cborTagEpoch, Content: t.Millis / 1000}, nil
	case *types.ArrayValue:
		if t == nil {
			return nil, nil
		}
		return c.convertArray(t)
	case types.ReferenceValue:
		return nil, errors.Errorf("cannot convert unresolved reference %s", t)
	}

	return nil, errors.Errorf("unsupported value of type %T", v)
}

func (c *toCBOR) convertArray(a *types.ArrayValue) (any, error) {
	if _, ok := c.visiting[a]; ok {
		return nil, errors.WithStack(ErrCycle)
	}
	if err := c.budget.Charge(a); err != nil {
		return nil, err
	}
	c.visiting[a] = struct{}{}
	defer delete(c.visiting, a)

	if len(a.Associative) == 0 {
		items := make([]any, 0, len(a.Dense))
		for i, v := range a.Dense {
			x, err := c.convert(v)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			items = append(items, x)
		}
		return items, nil
	}

	m := make(map[any]any, len(a.Associative)+len(a.Dense))
	for _, p := range a.Associative {
		x, err := c.convert(p.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", p.Key)
		}
		m[p.Key] = x
	}
	for i, v := range a.Dense {
		x, err := c.convert(v)
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", i)
		}
		m[uint64(i)] = x
	}

	return m, nil
}

// UnmarshalCBOR parses a CBOR document into a value. Map entries with string keys
// become named properties sorted by name. Entries with integer keys 0 to n-1 become
// items, any other integer key is turned into a named property.
func UnmarshalCBOR(data []byte) (types.Value, error) {
	var x any
	if err := cbor.Unmarshal(data, &x); err != nil {
		return nil, errors.Wrap(err, "invalid CBOR")
	}

	return fromCBOR(x)
}

func fromCBOR(x any) (types.Value, error) {
	switch t := x.(type) {
	case nil:
		return types.NewNullValue(), nil
	case bool:
		return types.NewBooleanValue(t), nil
	case uint64:
		return integer(t), nil
	case int64:
		return integer(t), nil
	case float64:
		return types.NewDoubleValue(t), nil
	case string:
		return types.NewStringValue(t), nil
	case []byte:
		return types.NewStringValue(string(t)), nil
	case time.Time:
		return types.NewDateValue(math.Round(float64(t.UnixNano()) / 1e6)), nil
	case cbor.Tag:
		return fromCBORTag(t)
	case []any:
		a := &types.ArrayValue{
			Dense: make([]types.Value, 0, len(t)),
		}
		for i, e := range t {
			v, err := fromCBOR(e)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			a.Dense = append(a.Dense, v)
		}
		return a, nil
	case map[any]any:
		return fromCBORMap(t)
	}

	return nil, errors.Errorf("unsupported CBOR value of type %T", x)
}

func fromCBORTag(t cbor.Tag) (types.Value, error) {
	if t.Number != cborTagEpoch {
		return nil, errors.Errorf("unsupported CBOR tag %d", t.Number)
	}

	var secs float64
	switch c := t.Content.(type) {
	case uint64:
		secs = float64(c)
	case int64:
		secs = float64(c)
	case float64:
		secs = c
	default:
		return nil, errors.Errorf("invalid epoch time of type %T", t.Content)
	}

	return types.NewDateValue(math.Round(secs * 1000)), nil
}

func fromCBORMap(m map[any]any) (types.Value, error) {
	props := make(map[string]any)
	items := make(map[uint64]any)

	for k, e := range m {
		switch key := k.(type) {
		case string:
			if key == "" {
				return nil, errors.New("empty property name")
			}
			props[key] = e
		case uint64:
			items[key] = e
		case int64:
			props[strconv.FormatInt(key, 10)] = e
		default:
			return nil, errors.Errorf("unsupported CBOR map key of type %T", k)
		}
	}

	// items must be contiguous from 0, the others are properties
	n := uint64(0)
	for ; ; n++ {
		if _, ok := items[n]; !ok {
			break
		}
	}
	for k, e := range items {
		if k >= n {
			props[strconv.FormatUint(k, 10)] = e
		}
	}

	keys := maps.Keys(props)
	slices.Sort(keys)

	a := types.NewArrayValue()
	for _, k := range keys {
		v, err := fromCBOR(props[k])
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", k)
		}
		a.Set(k, v)
	}
	for i := uint64(0); i < n; i++ {
		v, err := fromCBOR(items[i])
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", i)
		}
		a.Append(v)
	}

	return a, nil
}
