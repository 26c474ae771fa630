package resilience

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkhead_RunsTasks(t *testing.T) {
	b := NewBulkhead(3)

	var count atomic.Int32
	for range 10 {
		require.NoError(t, b.Go(context.Background(), func() { count.Add(1) }))
	}

	b.Close()
	b.Wait()
	assert.EqualValues(t, 10, count.Load())
}

func TestBulkhead_CapsConcurrency(t *testing.T) {
	b := NewBulkhead(2)
	release := make(chan struct{})

	for range 2 {
		require.NoError(t, b.Go(context.Background(), func() { <-release }))
	}
	assert.Equal(t, 2, b.InFlight())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, b.Go(ctx, func() {}), context.DeadlineExceeded)

	close(release)
	b.Wait()
	assert.Zero(t, b.InFlight())
}

func TestBulkhead_GoAfterClose(t *testing.T) {
	b := NewBulkhead(1)
	b.Close()
	b.Close()

	assert.ErrorIs(t, b.Go(context.Background(), func() {}), ErrBulkheadClosed)
}

func TestBulkhead_CloseUnblocksWaiters(t *testing.T) {
	b := NewBulkhead(1)
	release := make(chan struct{})
	require.NoError(t, b.Go(context.Background(), func() { <-release }))

	errCh := make(chan error, 1)
	go func() { errCh <- b.Go(context.Background(), func() {}) }()

	time.Sleep(10 * time.Millisecond)
	b.Close()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrBulkheadClosed)
	case <-time.After(time.Second):
		t.Fatal("waiter not released")
	}
	close(release)
	b.Wait()
}
