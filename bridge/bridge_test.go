package bridge_test

import (
	"math"
	"testing"
	"time"

	"github.com/chaisql/amf3"
	"github.com/chaisql/amf3/bridge"
	"github.com/chaisql/amf3/types"
	"github.com/stretchr/testify/require"
)

func TestNativeToRuntime(t *testing.T) {
	shared := types.NewArrayValue(types.NewIntegerValue(1))
	v := types.NewArrayValue(
		types.NewUndefinedValue(),
		types.NewNullValue(),
		types.NewBooleanValue(true),
		types.NewIntegerValue(-3),
		types.NewDoubleValue(2.5),
		types.NewStringValue("foo"),
		types.NewDateValue(1609495559123),
		shared,
		shared,
		types.NewArrayValue().Set("a", types.NewStringValue("b")).Append(types.NewNullValue()),
	)

	h, err := bridge.Native{}.ToRuntime(v)
	require.NoError(t, err)

	items, ok := h.([]any)
	require.True(t, ok)
	require.Len(t, items, 10)
	require.Equal(t, bridge.Undefined, items[0])
	require.Nil(t, items[1])
	require.Equal(t, true, items[2])
	require.Equal(t, int32(-3), items[3])
	require.Equal(t, 2.5, items[4])
	require.Equal(t, "foo", items[5])
	require.Equal(t, time.Date(2021, 1, 1, 10, 5, 59, 123e6, time.UTC), items[6])
	require.Equal(t, []any{int32(1)}, items[7])

	// shared arrays are converted once
	first, second := items[7].([]any), items[8].([]any)
	require.Same(t, &first[0], &second[0])

	obj, ok := items[9].(*bridge.Object)
	require.True(t, ok)
	require.Equal(t, []bridge.Prop{{Key: "a", Value: "b"}}, obj.Props)
	require.Equal(t, []any{nil}, obj.Items)
}

func TestNativeErrors(t *testing.T) {
	_, err := bridge.Native{}.ToRuntime(types.NewDateValue(math.NaN()))
	require.ErrorIs(t, err, bridge.ErrInvalidDate)

	_, err = bridge.Native{}.ToRuntime(types.NewReferenceValue(types.TypeString, 0))
	require.Error(t, err)

	_, err = bridge.Native{}.FromRuntime(struct{}{})
	require.Error(t, err)

	_, err = bridge.Native{}.FromRuntime(bridge.NewObject().Set("", 1))
	require.Error(t, err)
}

func TestNativeFromRuntime(t *testing.T) {
	ts := time.Date(2021, 1, 1, 10, 5, 59, 123e6, time.UTC)

	tests := []struct {
		name string
		h    any
		want types.Value
	}{
		{"nil", nil, types.NewNullValue()},
		{"undefined", bridge.Undefined, types.NewUndefinedValue()},
		{"bool", false, types.NewBooleanValue(false)},
		{"int", 42, types.NewIntegerValue(42)},
		{"int64 too big", int64(1 << 40), types.NewDoubleValue(1 << 40)},
		{"uint64 max", uint64(math.MaxUint64), types.NewDoubleValue(math.MaxUint64)},
		{"uint8", uint8(200), types.NewIntegerValue(200)},
		{"float32", float32(0.5), types.NewDoubleValue(0.5)},
		{"string", "foo", types.NewStringValue("foo")},
		{"time", ts, types.NewDateValue(1609495559123)},
		{"value", types.NewStringValue("bar"), types.NewStringValue("bar")},
		{"slice", []any{1, "a"}, types.NewArrayValue(types.NewIntegerValue(1), types.NewStringValue("a"))},
		{"object", bridge.NewObject().Set("k", 1.5).Append(nil), types.NewArrayValue(types.NewNullValue()).Set("k", types.NewDoubleValue(1.5))},
		{"map", map[string]any{"b": 2, "a": 1}, types.NewArrayValue().Set("a", types.NewIntegerValue(1)).Set("b", types.NewIntegerValue(2))},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := bridge.Native{}.FromRuntime(test.h)
			require.NoError(t, err)
			require.True(t, types.Equal(test.want, got), "want %s, got %s", test.want, got)
		})
	}
}

func TestNativeCycles(t *testing.T) {
	o := bridge.NewObject().Set("name", "root")
	o.Append(o)

	v, err := bridge.Native{}.FromRuntime(o)
	require.NoError(t, err)

	a := types.AsArray(v)
	require.Same(t, a, a.Dense[0])

	// the cycle survives the codec
	data, err := amf3.Encode(a)
	require.NoError(t, err)

	decoded, err := amf3.Decode(data)
	require.NoError(t, err)

	h, err := bridge.Native{}.ToRuntime(decoded)
	require.NoError(t, err)

	back := h.(*bridge.Object)
	require.Same(t, back, back.Items[0])
	name, ok := back.Get("name")
	require.True(t, ok)
	require.Equal(t, "root", name)
}

func TestRuntimeSlices(t *testing.T) {
	values := []types.Value{types.NewIntegerValue(1), types.NewStringValue("x")}

	hs, err := bridge.ToRuntime[any](bridge.Native{}, values)
	require.NoError(t, err)
	require.Equal(t, []any{int32(1), "x"}, hs)

	back, err := bridge.FromRuntime[any](bridge.Native{}, hs)
	require.NoError(t, err)
	require.Equal(t, values, back)

	_, err = bridge.FromRuntime[any](bridge.Native{}, []any{1, make(chan int)})
	require.ErrorContains(t, err, "value 1")
}

// sharedChain decodes a message where every array holds the previous one twice.
func sharedChain(t *testing.T, levels int) types.Value {
	t.Helper()

	data := []byte{0x09, 0x03, 0x01, 0x04, 0x01}
	for i := 0; i < levels; i++ {
		ref := byte(i << 1)
		data = append(data, 0x09, 0x05, 0x01, 0x09, ref, 0x09, ref)
	}

	values, err := amf3.DecodeMessage(data)
	require.NoError(t, err)
	return values[len(values)-1]
}

func TestSharedArrays(t *testing.T) {
	v := sharedChain(t, 2)

	data, err := bridge.MarshalJSON(v)
	require.NoError(t, err)
	require.JSONEq(t, `[[[1],[1]],[[1],[1]]]`, string(data))

	data, err = bridge.MarshalCBOR(v)
	require.NoError(t, err)
	require.Equal(t, []byte{0x82, 0x82, 0x81, 0x01, 0x81, 0x01, 0x82, 0x81, 0x01, 0x81, 0x01}, data)

	v = sharedChain(t, 40)

	_, err = bridge.MarshalJSON(v)
	require.ErrorIs(t, err, bridge.ErrTooManyCopies)

	_, err = bridge.MarshalCBOR(v)
	require.ErrorIs(t, err, bridge.ErrTooManyCopies)

	// the native runtime keeps sharing instead of copying
	h, err := bridge.Native{}.ToRuntime(v)
	require.NoError(t, err)
	top := h.([]any)
	require.Len(t, top, 2)
}

func TestNativeSliceViews(t *testing.T) {
	x := []any{int32(1), int32(2)}

	v, err := bridge.Native{}.FromRuntime([]any{x[:1], x[:2], x[:2]})
	require.NoError(t, err)

	a := types.AsArray(v)
	require.Len(t, types.AsArray(a.Dense[0]).Dense, 1)
	require.Len(t, types.AsArray(a.Dense[1]).Dense, 2)
	require.Same(t, a.Dense[1], a.Dense[2])
}
