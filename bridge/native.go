package bridge

import (
	"math"
	"time"

	"github.com/chaisql/amf3/types"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrInvalidDate is returned when converting a date that doesn't denote
// a point in time to a runtime that has no way to represent it.
var ErrInvalidDate = errors.New("invalid date")

// UndefinedType is the type of Undefined.
type UndefinedType struct{}

// Undefined is the Go value of the undefined value.
// Null maps to nil.
var Undefined = UndefinedType{}

// A Prop is a named property of an Object.
type Prop struct {
	Key   string
	Value any
}

// An Object is an array with named properties. Props keep their insertion order.
type Object struct {
	Props []Prop
	Items []any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{}
}

// Set replaces the value of the property key, or adds it at the end.
func (o *Object) Set(key string, v any) *Object {
	for i := range o.Props {
		if o.Props[i].Key == key {
			o.Props[i].Value = v
			return o
		}
	}

	o.Props = append(o.Props, Prop{Key: key, Value: v})
	return o
}

// Get returns the value of the property key.
func (o *Object) Get(key string) (any, bool) {
	for _, p := range o.Props {
		if p.Key == key {
			return p.Value, true
		}
	}

	return nil, false
}

// Append adds items after the existing ones.
func (o *Object) Append(items ...any) *Object {
	o.Items = append(o.Items, items...)
	return o
}

// Native converts values to plain Go values:
//
//	undefined        Undefined
//	null             nil
//	boolean          bool
//	integer          int32
//	double           float64
//	string           string
//	date             time.Time
//	array            []any, or *Object if it has named properties
//
// Arrays shared in a tree are converted once, so that identity survives
// the conversion in both directions, cycles included.
type Native struct{}

var _ Runtime[any] = Native{}

func (Native) ToRuntime(v types.Value) (any, error) {
	c := toNative{
		seen: make(map[*types.ArrayValue]any),
	}
	return c.convert(v)
}

func (Native) FromRuntime(h any) (types.Value, error) {
	c := fromNative{
		objects: make(map[*Object]*types.ArrayValue),
		slices:  make(map[sliceKey]*types.ArrayValue),
	}
	return c.convert(h)
}

type toNative struct {
	seen map[*types.ArrayValue]any
}

func (c *toNative) convert(v types.Value) (any, error) {
	switch t := v.(type) {
	case nil, types.NullValue:
		return nil, nil
	case types.UndefinedValue:
		return Undefined, nil
	case types.BooleanValue:
		return bool(t), nil
	case types.IntegerValue:
		return int32(t), nil
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
		return t.Time(), nil
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

func (c *toNative) convertArray(a *types.ArrayValue) (any, error) {
	if h, ok := c.seen[a]; ok {
		return h, nil
	}

	if len(a.Associative) == 0 {
		// registered before being filled so that cycles resolve to the same slice
		items := make([]any, len(a.Dense))
		c.seen[a] = items
		for i, v := range a.Dense {
			h, err := c.convert(v)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			items[i] = h
		}
		return items, nil
	}

	o := &Object{
		Props: make([]Prop, 0, len(a.Associative)),
	}
	c.seen[a] = o
	for _, p := range a.Associative {
		h, err := c.convert(p.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", p.Key)
		}
		o.Props = append(o.Props, Prop{Key: p.Key, Value: h})
	}
	for i, v := range a.Dense {
		h, err := c.convert(v)
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", i)
		}
		o.Items = append(o.Items, h)
	}

	return o, nil
}

type fromNative struct {
	objects map[*Object]*types.ArrayValue
	slices map[sliceKey]*types.ArrayValue
}

func (c *fromNative) convert(h any) (types.Value, error) {
	switch x := h.(type) {
	case nil:
		return types.NewNullValue(), nil
	case UndefinedType:
		return types.NewUndefinedValue(), nil
	case types.Value:
		return x, nil
	case bool:
		return types.NewBooleanValue(x), nil
	case int:
		return integer(x), nil
	case int8:
		return integer(x), nil
	case int16:
		return integer(x), nil
	case int32:
		return integer(x), nil
	case int64:
		return integer(x), nil
	case uint:
		return integer(x), nil
	case uint8:
		return integer(x), nil
	case uint16:
		return integer(x), nil
	case uint32:
		return integer(x), nil
	case uint64:
		return integer(x), nil
	case float32:
		return double(x), nil
	case float64:
		return double(x), nil
	case string:
		return types.NewStringValue(x), nil
	case time.Time:
		return types.NewDateValueFromTime(x), nil
	case *time.Time:
		if x == nil {
			return types.NewNullValue(), nil
		}
		return types.NewDateValueFromTime(*x), nil
	case []any:
		return c.convertSlice(x)
	case *Object:
		if x == nil {
			return types.NewNullValue(), nil
		}
		return c.convertObject(x)
	case Object:
		return c.convertObject(&x)
	case map[string]any:
		return c.convertMap(x)
	}

	return nil, errors.Errorf("unsupported value of type %T", h)
}

func integer[T constraints.Integer](x T) types.Value {
	if x > 0 && uint64(x) > math.MaxInt64 {
		return types.NewDoubleValue(float64(x))
	}

	return types.NewNumberValue(int64(x))
}

func double[T constraints.Float](x T) types.Value {
	return types.NewDoubleValue(float64(x))
}

// sliceKey identifies a slice by its first element and its length,
// so that two views sharing a backing array stay distinct.
type sliceKey struct {
	first *any
	n     int
}

func (c *fromNative) convertSlice(s []any) (types.Value, error) {
	var key sliceKey
	if len(s) > 0 {
		key = sliceKey{first: &s[0], n: len(s)}
		if a, ok := c.slices[key]; ok {
			return a, nil
		}
	}

	a := &types.ArrayValue{
		Dense: make([]types.Value, len(s)),
	}
	if len(s) > 0 {
		c.slices[key] = a
	}

	for i, h := range s {
		v, err := c.convert(h)
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", i)
		}
		a.Dense[i] = v
	}

	return a, nil
}

func (c *fromNative) convertObject(o *Object) (types.Value, error) {
	if a, ok := c.objects[o]; ok {
		return a, nil
	}

	a := types.NewArrayValue()
	c.objects[o] = a

	for _, p := range o.Props {
		if p.Key == "" {
			return nil, errors.New("empty property name")
		}

		v, err := c.convert(p.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", p.Key)
		}
		a.Set(p.Key, v)
	}

	for i, h := range o.Items {
		v, err := c.convert(h)
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", i)
		}
		a.Append(v)
	}

	return a, nil
}

// convertMap converts a map into an array with named properties, sorted by name.
func (c *fromNative) convertMap(m map[string]any) (types.Value, error) {
	keys := maps.Keys(m)
	slices.Sort(keys)

	a := types.NewArrayValue()
	for _, k := range keys {
		if k == "" {
			return nil, errors.New("empty property name")
		}

		v, err := c.convert(m[k])
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", k)
		}
		a.Set(k, v)
	}

	return a, nil
}
