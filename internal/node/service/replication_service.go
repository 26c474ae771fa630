package service

import (
	"context"
	"fmt"

	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/go-disk-register/pkg/membership"
	"github.com/anthanhphan/gosdk/logger"
)

// replicationService fans client writes out to tolerance-many peers and
// commits them on the leader.
type replicationService struct {
	core *NodeServiceImpl
}

// newReplicationService creates the replication use-case service.
func newReplicationService(core *NodeServiceImpl) *replicationService {
	return &replicationService{core: core}
}

// handleSet stores text on up to tolerance peers picked round-robin, one at a
// time. The write commits locally iff at least one peer acknowledged it, or
// there is no other member at all.
func (s *replicationService) handleSet(ctx context.Context, id int32, text string) error {
	self := s.core.registry.Self()
	others := s.core.registry.Others()
	selected := s.core.selector.Select(others, s.core.tolerance)

	successful := s.replicate(ctx, selected, id, text)

	if len(successful) == 0 && len(others) > 0 {
		logger.Warnw("SET failed, replication failed",
			"id", id,
			"selected", len(selected),
			"members", len(others))
		return port.ErrReplicationFailed
	}

	if err := s.core.store.Put(ctx, id, text); err != nil {
		logger.Errorw("SET failed, local commit failed", "id", id, "error", err.Error())
		return fmt.Errorf("%w: %v", port.ErrLocalStore, err)
	}

	holders := make([]membership.Node, 0, len(successful)+1)
	holders = append(holders, successful...)
	holders = append(holders, self)
	s.core.locations.Register(id, holders)

	logger.Infow("SET successful", "id", id, "replicas", len(successful), "tolerance", s.core.tolerance)
	return nil
}

// replicate issues a store call to each target in order and returns those
// that acknowledged. A failing peer never aborts the others.
func (s *replicationService) replicate(ctx context.Context, targets []membership.Node, id int32, text string) []membership.Node {
	successful := make([]membership.Node, 0, len(targets))
	for _, peer := range targets {
		if err := s.core.peers.Store(ctx, peer, id, text); err != nil {
			logger.Warnw("Failed to store at member", "id", id, "member", peer.String(), "error", err.Error())
			continue
		}
		logger.Debugw("Replicated message", "id", id, "member", peer.String())
		successful = append(successful, peer)
	}
	return successful
}
