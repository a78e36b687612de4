package amf3

import (
	"context"
	"runtime"

	"github.com/chaisql/amf3/types"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// DecodeBatch decodes independent messages concurrently. Each message has
// its own reference tables. The result at index i holds the values of msgs[i].
// It stops at the first error or when ctx is done.
func DecodeBatch(ctx context.Context, msgs [][]byte, opts *Options) ([][]types.Value, error) {
	d := NewDecoder(opts)
	out := make([][]types.Value, len(msgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range msgs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			values, err := d.DecodeMessage(msgs[i])
			if err != nil {
				return errors.Wrapf(err, "message %d", i)
			}

			out[i] = values
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// EncodeBatch encodes each list of values into its own message, concurrently.
func EncodeBatch(ctx context.Context, batch [][]types.Value, opts *Options) ([][]byte, error) {
	e := NewEncoder(opts)
	out := make([][]byte, len(batch))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range batch {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			msg, err := e.EncodeMessage(batch[i]...)
			if err != nil {
				return errors.Wrapf(err, "message %d", i)
			}

			out[i] = msg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
