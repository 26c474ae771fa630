package service

import (
	"context"
	"time"
)

// minPeriod is the shortest interval runPeriodic accepts.
const minPeriod = 10 * time.Millisecond

// runPeriodic calls fn after initialDelay and then every interval until ctx
// is done. Runs never overlap: the next tick is only consumed after fn returns.
// Intervals below minPeriod are raised to it.
func runPeriodic(ctx context.Context, initialDelay, interval time.Duration, fn func(context.Context)) {
	interval = max(interval, minPeriod)

	timer := time.NewTimer(initialDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
		fn(ctx)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
