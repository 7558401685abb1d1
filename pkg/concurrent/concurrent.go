package concurrent

import (
	"context"

	"github.com/zeusync/collision/pkg/sequence"
	"golang.org/x/sync/errgroup"
)

// ForEach runs action for each element of the iterator, at most limit at a
// time (limit <= 0 means unbounded). It waits for every started goroutine and
// returns the first error. The context handed to action is cancelled when
// any action fails or ctx is done; no new elements are pulled after that.
func ForEach[T any](ctx context.Context, i *sequence.Iterator[T], limit int, action func(context.Context, T) error) error {
	errGroup, groupCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		errGroup.SetLimit(limit)
	}

	next, stop := i.Pull()
	defer stop()

	for {
		if groupCtx.Err() != nil {
			break
		}

		value, valid := next()
		if !valid {
			break
		}

		errGroup.Go(func() error {
			return action(groupCtx, value)
		})
	}

	if err := errGroup.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Map applies mapFn to every element concurrently and returns the results in
// iteration order. On error the partial results are discarded.
func Map[T any, R any](ctx context.Context, i *sequence.Iterator[T], limit int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	in := i.Collect()
	out := make([]R, len(in))

	err := ForEach(ctx, indexed(in), limit, func(ctx context.Context, e entry[T]) error {
		r, err := mapFn(ctx, e.value)
		if err != nil {
			return err
		}
		out[e.index] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type entry[T any] struct {
	index int
	value T
}

func indexed[T any](data []T) *sequence.Iterator[entry[T]] {
	return sequence.FromSeq(func(yield func(entry[T]) bool) {
		for idx, v := range data {
			if !yield(entry[T]{index: idx, value: v}) {
				return
			}
		}
	})
}
