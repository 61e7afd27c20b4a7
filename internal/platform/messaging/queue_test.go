package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialQueueRunsTasksInOrder(t *testing.T) {
	queue := NewSerialQueue(4)
	ctx, cancel := context.WithCancel(context.Background())

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		require.NoError(t, queue.Do(func() {
			order = append(order, i)
			if i == 3 {
				cancel()
			}
		}))
	}

	err := queue.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestSerialQueueDoFailsWhenFull(t *testing.T) {
	queue := NewSerialQueue(1)

	require.NoError(t, queue.Do(func() {}))
	err := queue.Do(func() {})
	require.ErrorIs(t, err, ErrQueueFull)
}

func TestSerialQueueDefaultsBufferSize(t *testing.T) {
	queue := NewSerialQueue(0)

	for i := 0; i < 128; i++ {
		require.NoError(t, queue.Do(func() {}))
	}
	require.ErrorIs(t, queue.Do(func() {}), ErrQueueFull)
}
