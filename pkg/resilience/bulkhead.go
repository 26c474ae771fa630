package resilience

import (
	"context"
	"errors"
	"sync"
)

var ErrBulkheadClosed = errors.New("bulkhead is closed")

// Bulkhead runs each task on its own goroutine while capping how many run at
// once. Suited to long-lived tasks such as connection handlers.
type Bulkhead struct {
	slots chan struct{}
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

func NewBulkhead(limit int) *Bulkhead {
	return &Bulkhead{
		slots: make(chan struct{}, max(limit, 1)),
		done:  make(chan struct{}),
	}
}

// Go waits for a free slot and starts task. It returns ctx.Err() or
// ErrBulkheadClosed when no slot could be taken.
func (b *Bulkhead) Go(ctx context.Context, task func()) error {
	select {
	case <-b.done:
		return ErrBulkheadClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return ErrBulkheadClosed
	case b.slots <- struct{}{}:
	}

	b.wg.Add(1)
	go func() {
		defer func() {
			<-b.slots
			b.wg.Done()
		}()
		task()
	}()
	return nil
}

// InFlight returns the number of running tasks.
func (b *Bulkhead) InFlight() int {
	return len(b.slots)
}

// Close stops accepting tasks. Running tasks are not interrupted.
func (b *Bulkhead) Close() {
	b.once.Do(func() { close(b.done) })
}

// Wait blocks until every started task has returned.
func (b *Bulkhead) Wait() {
	b.wg.Wait()
}
