package bridge_test

import (
	"math"
	"testing"

	"github.com/chaisql/amf3/bridge"
	"github.com/chaisql/amf3/types"
	"github.com/stretchr/testify/require"
)

func TestCBORRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    types.Value
	}{
		{"null", types.NewNullValue()},
		{"bool", types.NewBooleanValue(true)},
		{"integer", types.NewIntegerValue(-100000)},
		{"double", types.NewDoubleValue(math.Pi)},
		{"integral double", types.NewDoubleValue(2)},
		{"string", types.NewStringValue("日本語")},
		{"date", types.NewDateValue(1609495559123)},
		{"dense", types.NewArrayValue(types.NewIntegerValue(1), types.NewStringValue("a"))},
		{"mixed", types.NewArrayValue(types.NewNullValue(), types.NewIntegerValue(2)).
			Set("a", types.NewBooleanValue(false)).
			Set("b", types.NewArrayValue()),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := bridge.CBOR{}.ToRuntime(test.v)
			require.NoError(t, err)

			got, err := bridge.CBOR{}.FromRuntime(data)
			require.NoError(t, err)
			require.True(t, types.Equal(test.v, got), "want %s, got %s", test.v, got)
		})
	}
}

func TestCBORCanonical(t *testing.T) {
	a := types.NewArrayValue().Set("b", types.NewIntegerValue(1)).Set("a", types.NewIntegerValue(2))
	b := types.NewArrayValue().Set("a", types.NewIntegerValue(2)).Set("b", types.NewIntegerValue(1))

	da, err := bridge.MarshalCBOR(a)
	require.NoError(t, err)
	db, err := bridge.MarshalCBOR(b)
	require.NoError(t, err)
	require.Equal(t, da, db)

	require.Equal(t, []byte{0x82, 0x01, 0x61, 'a'}, mustCBOR(t, types.NewArrayValue(types.NewIntegerValue(1), types.NewStringValue("a"))))
	require.Equal(t, []byte{0xf7}, mustCBOR(t, types.NewUndefinedValue()))
}

func mustCBOR(t *testing.T, v types.Value) []byte {
	t.Helper()

	data, err := bridge.MarshalCBOR(v)
	require.NoError(t, err)
	return data
}

func TestCBORErrors(t *testing.T) {
	a := types.NewArrayValue()
	a.Append(a)

	_, err := bridge.MarshalCBOR(a)
	require.ErrorIs(t, err, bridge.ErrCycle)

	_, err = bridge.MarshalCBOR(types.NewDateValue(math.NaN()))
	require.ErrorIs(t, err, bridge.ErrInvalidDate)

	_, err = bridge.UnmarshalCBOR([]byte{0xff})
	require.Error(t, err)
}
