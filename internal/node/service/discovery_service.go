package service

import (
	"context"

	"github.com/anthanhphan/go-disk-register/pkg/membership"
	"github.com/anthanhphan/gosdk/logger"
)

// discoveryService bootstraps membership by joining the well-known ports
// below our own.
type discoveryService struct {
	core *NodeServiceImpl
}

// newDiscoveryService creates the discovery use-case service.
func newDiscoveryService(core *NodeServiceImpl) *discoveryService {
	return &discoveryService{core: core}
}

// discover calls Join on every port in [basePort, self.Port) on our host and
// merges each returned view. Unreachable candidates are skipped silently.
func (s *discoveryService) discover(ctx context.Context, basePort int) int {
	self := s.core.registry.Self()
	answered := 0

	for p := basePort; p < self.Port; p++ {
		if ctx.Err() != nil {
			break
		}

		target := membership.NewNode(self.Host, p)
		view, err := s.core.peers.Join(ctx, target, self)
		if err != nil {
			logger.Debugw("Discovery candidate unavailable", "target", target.String(), "error", err.Error())
			continue
		}

		answered++
		s.core.registry.AddAll(view)
		logger.Infow("Joined through node", "target", target.String(), "family_size", s.core.registry.Len())
	}

	return answered
}
