package amf3_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/chaisql/amf3"
	"github.com/chaisql/amf3/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBatch(t *testing.T) {
	var batch [][]types.Value
	for i := 0; i < 50; i++ {
		s := types.NewStringValue(fmt.Sprintf("msg-%d", i))
		batch = append(batch, []types.Value{
			s,
			s,
			types.NewArrayValue(types.NewIntegerValue(int32(i))).Set("name", s),
		})
	}

	msgs, err := amf3.EncodeBatch(context.Background(), batch, nil)
	require.NoError(t, err)
	require.Len(t, msgs, len(batch))

	// every message starts its own string table
	for i, msg := range msgs {
		lit := 2 + len(fmt.Sprintf("msg-%d", i))
		require.Equal(t, byte(0x06), msg[0])
		require.Equal(t, byte(1), msg[1]&1)
		require.Equal(t, []byte{0x06, 0x00}, msg[lit:lit+2])
	}

	got, err := amf3.DecodeBatch(context.Background(), msgs, nil)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(batch, got))
}

func TestDecodeBatchError(t *testing.T) {
	msgs := [][]byte{{0x01}, {0x06, 0x00}, {0x02}}

	_, err := amf3.DecodeBatch(context.Background(), msgs, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "message 1")
}

func TestBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := amf3.DecodeBatch(ctx, [][]byte{{0x01}}, nil)
	require.ErrorIs(t, err, context.Canceled)

	_, err = amf3.EncodeBatch(ctx, [][]types.Value{{types.NewNullValue()}}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
