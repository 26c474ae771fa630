package service

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/gosdk/logger"
)

// readRouterService serves client reads on the leader.
type readRouterService struct {
	core *NodeServiceImpl
}

// newReadRouterService creates the read routing use-case service.
func newReadRouterService(core *NodeServiceImpl) *readRouterService {
	return &readRouterService{core: core}
}

// handleGet checks the local store first, then asks the recorded holders in
// registration order. The first non-empty answer wins.
func (s *readRouterService) handleGet(ctx context.Context, id int32) (string, error) {
	text, err := s.core.store.Get(ctx, id)
	if err == nil {
		logger.Debugw("GET served locally", "id", id)
		return text, nil
	}
	if !errors.Is(err, port.ErrMessageNotFound) {
		logger.Warnw("Local read failed, falling back to holders", "id", id, "error", err.Error())
	}

	holders, ok := s.core.locations.Holders(id)
	if !ok {
		return "", port.ErrMessageNotFound
	}

	self := s.core.registry.Self()
	for _, holder := range holders {
		if holder == self {
			continue
		}

		text, err := s.core.peers.Retrieve(ctx, holder, id)
		if err != nil {
			logger.Warnw("Failed to retrieve from member", "id", id, "member", holder.String(), "error", err.Error())
			continue
		}
		if text == "" {
			continue
		}

		logger.Debugw("GET served by member", "id", id, "member", holder.String())
		return text, nil
	}

	logger.Infow("GET failed, not found on any holder", "id", id, "holders", len(holders))
	return "", port.ErrMessageNotFound
}
