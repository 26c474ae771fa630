package service

import (
	"context"
	"time"

	"github.com/anthanhphan/go-disk-register/pkg/membership"
	"github.com/anthanhphan/gosdk/logger"
)

// healthService evicts members that fail a health check.
type healthService struct {
	core *NodeServiceImpl
}

// newHealthService creates the health checking use-case service.
func newHealthService(core *NodeServiceImpl) *healthService {
	return &healthService{core: core}
}

// startWorker runs health-check rounds until context cancellation.
func (s *healthService) startWorker(ctx context.Context, warmup, interval time.Duration) {
	runPeriodic(ctx, warmup, interval, func(ctx context.Context) {
		s.checkOnce(ctx)
	})
}

// checkOnce checks every other member once. A single failed check removes
// the member.
func (s *healthService) checkOnce(ctx context.Context) []membership.Node {
	var evicted []membership.Node

	for _, member := range s.core.registry.Others() {
		if ctx.Err() != nil {
			break
		}

		if _, err := s.core.peers.GetFamily(ctx, member); err != nil {
			if s.core.registry.Remove(member) {
				logger.Warnw("Node unreachable, removing from family", "node", member.String(), "error", err.Error())
				evicted = append(evicted, member)
			}
		}
	}

	return evicted
}
