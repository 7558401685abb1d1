package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/collision/pkg/sequence"
)

func TestForEachVisitsAll(t *testing.T) {
	var sum atomic.Int64
	err := ForEach(context.Background(), sequence.From([]int{1, 2, 3, 4, 5}), 2, func(_ context.Context, v int) error {
		sum.Add(int64(v))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), sum.Load())
}

func TestForEachRespectsLimit(t *testing.T) {
	var running, peak atomic.Int32
	err := ForEach(context.Background(), sequence.From(make([]int, 64)), 3, func(_ context.Context, _ int) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestForEachReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := ForEach(context.Background(), sequence.From([]int{1, 2, 3}), 1, func(_ context.Context, v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestForEachCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := ForEach(ctx, sequence.From([]int{1, 2, 3}), 0, func(_ context.Context, _ int) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestMapPreservesOrder(t *testing.T) {
	out, err := Map(context.Background(), sequence.From([]int{3, 1, 2}), 0, func(_ context.Context, v int) (int, error) {
		return v * 10, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{30, 10, 20}, out)

	_, err = Map(context.Background(), sequence.From([]int{1}), 0, func(_ context.Context, _ int) (int, error) {
		return 0, errors.New("nope")
	})
	assert.Error(t, err)
}
