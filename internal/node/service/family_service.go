package service

import (
	"context"

	"github.com/anthanhphan/go-disk-register/pkg/membership"
	"github.com/anthanhphan/gosdk/logger"
)

// familyService answers membership RPCs from other nodes.
type familyService struct {
	core *NodeServiceImpl
}

// newFamilyService creates the family use-case service.
func newFamilyService(core *NodeServiceImpl) *familyService {
	return &familyService{core: core}
}

// join adds caller to the registry and returns the full view.
func (s *familyService) join(ctx context.Context, caller membership.Node) []membership.Node {
	if s.core.registry.Add(caller) {
		// A rejoining node may have restarted on the same address.
		s.core.peers.Forget(caller)
		logger.Infow("Node joined family", "node", caller.String(), "family_size", s.core.registry.Len())
	}
	return s.core.registry.Snapshot()
}

func (s *familyService) view(ctx context.Context) []membership.Node {
	return s.core.registry.Snapshot()
}
