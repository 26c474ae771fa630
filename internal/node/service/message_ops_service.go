package service

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/gosdk/logger"
)

// messageOpsService handles store/retrieve calls against the local store.
type messageOpsService struct {
	core *NodeServiceImpl
}

// newMessageOpsService creates the message operations use-case service.
func newMessageOpsService(core *NodeServiceImpl) *messageOpsService {
	return &messageOpsService{core: core}
}

// storeMessage writes a replicated message to the local store.
func (s *messageOpsService) storeMessage(ctx context.Context, id int32, text string) error {
	if err := s.core.store.Put(ctx, id, text); err != nil {
		logger.Errorw("Store failed", "id", id, "error", err.Error())
		return err
	}
	logger.Infow("Stored replicated message", "id", id)
	return nil
}

// retrieveMessage reads a message from the local store.
func (s *messageOpsService) retrieveMessage(ctx context.Context, id int32) (string, error) {
	text, err := s.core.store.Get(ctx, id)
	if err != nil && !errors.Is(err, port.ErrMessageNotFound) {
		logger.Warnw("Retrieve failed", "id", id, "error", err.Error())
	}
	return text, err
}
