package xarray

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Clone returns an owned deep copy of a with the same capacity and the same
// live elements, whether a owns its storage or borrows it. It is the way to
// get a mutable Array out of a foreign one.
func (a *Array[T]) Clone() *Array[T] {
	out := &Array[T]{size: a.size}
	if len(a.buf) > 0 {
		out.buf = make([]T, len(a.buf))
		copy(out.buf, a.buf[:a.size])
	}
	return out
}

// CloneAll clones a set of parallel columns concurrently. The result keeps
// the order of cols. The columns are only read.
func CloneAll[T any](ctx context.Context, cols ...*Array[T]) ([]*Array[T], error) {
	for i, c := range cols {
		if c == nil {
			return nil, fmt.Errorf("xarray: column %d: %w", i, ErrNilArray)
		}
	}
	out := make([]*Array[T], len(cols))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range cols {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = c.Clone()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
